package models

import "time"

// KYCRecord stores the outcome of one identity verification attempt,
// one record per investor session. Only the verification decision
// function mutates it.
type KYCRecord struct {
	Base
	Verified bool `gorm:"not null;default:false" json:"verified"`

	// Submitted personal information. The national id is stored as a
	// bcrypt hash; the raw value never touches the database.
	FullName       string `gorm:"not null" json:"full_name"`
	Email          string `gorm:"not null" json:"email"`
	Phone          string `gorm:"not null" json:"phone"`
	Address        string `gorm:"not null" json:"address"`
	DateOfBirth    string `gorm:"not null" json:"date_of_birth"`
	NationalIDHash string `gorm:"not null" json:"-"`
	Occupation     string `json:"occupation,omitempty"`
	AnnualIncome   string `json:"annual_income,omitempty"`

	// Document presence flags (file names; content is held by the
	// upload collaborator, not this service).
	IDDocument   string `json:"id_document,omitempty"`
	AddressProof string `json:"address_proof,omitempty"`
	IncomeProof  string `json:"income_proof,omitempty"`

	VerifiedAt      *time.Time `json:"verified_at,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
}
