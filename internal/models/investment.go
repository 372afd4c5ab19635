package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Investment is one entry in the append-only investment ledger. Rows are
// written exactly once per successful allocation and never updated;
// insertion order is chronological order.
type Investment struct {
	Base
	PropertyID   string `gorm:"type:uuid;not null" json:"property_id"`
	PropertyCode string `gorm:"not null;index" json:"property_code"`
	PropertyName string `gorm:"not null" json:"property_name"`
	KYCRecordID  string `gorm:"type:uuid;not null;index" json:"kyc_record_id"`

	Amount           int64           `gorm:"type:bigint;not null" json:"amount"`
	TokensReceived   decimal.Decimal `gorm:"type:numeric;not null" json:"tokens_received"`
	OwnershipPercent decimal.Decimal `gorm:"type:numeric;not null" json:"ownership_percent"`
	PlatformFee      decimal.Decimal `gorm:"type:numeric;not null" json:"platform_fee"`
	NetInvestment    decimal.Decimal `gorm:"type:numeric;not null" json:"net_investment"`

	// ReturnRate is the property's expected annual return at the moment of
	// investment, frozen here so later catalog edits cannot rewrite history.
	ReturnRate float64   `gorm:"not null" json:"return_rate"`
	InvestedAt time.Time `gorm:"not null" json:"invested_at"`

	// Relationships
	Property Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
}
