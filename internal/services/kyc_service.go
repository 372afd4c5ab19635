package services

import (
	"errors"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "proptoken/internal/errors"
	"proptoken/internal/models"
)

// rejectionReason is the single reason reported for any failed
// verification. The review process never discloses which rule failed.
const rejectionReason = "Document quality insufficient or information mismatch"

// kycService handles identity verification.
type kycService struct {
	db       *gorm.DB
	passGate func() bool
}

// NewKYCService creates a new KYCServicer. passGate simulates the manual
// document review outcome; inject a constant function in tests.
func NewKYCService(db *gorm.DB, passGate func() bool) KYCServicer {
	return &kycService{db: db, passGate: passGate}
}

// RandomPassGate returns a review gate that passes with the given
// probability.
func RandomPassGate(passRate float64, rng *rand.Rand) func() bool {
	return func() bool { return rng.Float64() < passRate }
}

// DecideVerification applies the verification rules to a submission:
// all required personal fields present, both required documents present,
// and the review gate passed. On failure the reason is always the same
// fixed message.
func DecideVerification(sub KYCSubmission, gatePassed bool) (bool, string) {
	fieldsComplete := sub.FullName != "" &&
		sub.Email != "" &&
		sub.Phone != "" &&
		sub.Address != "" &&
		sub.DateOfBirth != "" &&
		sub.NationalID != ""
	docsComplete := sub.IDDocument != "" && sub.AddressProof != ""

	if fieldsComplete && docsComplete && gatePassed {
		return true, ""
	}
	return false, rejectionReason
}

// Verify runs one verification attempt and persists its outcome. A
// rejected submission still produces a record; only the caller decides
// whether a rejected record grants a session.
func (s *kycService) Verify(sub KYCSubmission) (*models.KYCRecord, error) {
	verified, reason := DecideVerification(sub, s.passGate())

	record := &models.KYCRecord{
		Verified:        verified,
		FullName:        sub.FullName,
		Email:           sub.Email,
		Phone:           sub.Phone,
		Address:         sub.Address,
		DateOfBirth:     sub.DateOfBirth,
		Occupation:      sub.Occupation,
		AnnualIncome:    sub.AnnualIncome,
		IDDocument:      sub.IDDocument,
		AddressProof:    sub.AddressProof,
		IncomeProof:     sub.IncomeProof,
		RejectionReason: reason,
	}

	if sub.NationalID != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(sub.NationalID), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		record.NationalIDHash = string(hash)
	}

	if verified {
		now := time.Now()
		record.VerifiedAt = &now
	}

	if err := s.db.Create(record).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return record, nil
}

// GetRecordByID retrieves a verification record.
func (s *kycService) GetRecordByID(id string) (*models.KYCRecord, error) {
	var record models.KYCRecord
	if err := s.db.Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrKYCNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &record, nil
}
