package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"proptoken/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestProperty creates a fully available listing with a round
// token price of 10000 per token.
func CreateTestProperty(t *testing.T, db *gorm.DB) *models.Property {
	t.Helper()
	return CreateTestPropertyWithSupply(t, db, 10000000, 1000)
}

// CreateTestPropertyWithSupply creates a listing with the given price and
// token supply, all tokens available.
func CreateTestPropertyWithSupply(t *testing.T, db *gorm.DB, price, tokensSupply int64) *models.Property {
	t.Helper()

	n := nextID()
	property := &models.Property{
		Code:            fmt.Sprintf("PROP_T%03d", n),
		Name:            fmt.Sprintf("Test Tower %d", n),
		Location:        "Karachi",
		Price:           price,
		Currency:        "PKR",
		ROI:             15.5,
		TokensSupply:    tokensSupply,
		TokensAvailable: decimal.NewFromInt(tokensSupply),
		PropertyType:    models.PropertyTypeResidential,
		YearBuilt:       2020,
		SquareFeet:      5000,
	}
	if err := db.Create(property).Error; err != nil {
		t.Fatalf("failed to create test property: %v", err)
	}
	return property
}

// CreateVerifiedKYC creates a verification record that passed review.
func CreateVerifiedKYC(t *testing.T, db *gorm.DB) *models.KYCRecord {
	t.Helper()

	now := time.Now()
	n := nextID()
	record := &models.KYCRecord{
		Verified:       true,
		FullName:       fmt.Sprintf("Test Investor %d", n),
		Email:          fmt.Sprintf("investor%d@test.com", n),
		Phone:          "+92-300-1234567",
		Address:        "House 1, Street 2, Karachi",
		DateOfBirth:    "1990-01-01",
		NationalIDHash: "test-hash",
		IDDocument:     "id.png",
		AddressProof:   "bill.png",
		VerifiedAt:     &now,
	}
	if err := db.Create(record).Error; err != nil {
		t.Fatalf("failed to create verified kyc record: %v", err)
	}
	return record
}

// CreateRejectedKYC creates a verification record that failed review.
func CreateRejectedKYC(t *testing.T, db *gorm.DB) *models.KYCRecord {
	t.Helper()

	n := nextID()
	record := &models.KYCRecord{
		Verified:        false,
		FullName:        fmt.Sprintf("Test Investor %d", n),
		Email:           fmt.Sprintf("investor%d@test.com", n),
		Phone:           "+92-300-1234567",
		Address:         "House 1, Street 2, Karachi",
		DateOfBirth:     "1990-01-01",
		NationalIDHash:  "test-hash",
		IDDocument:      "id.png",
		AddressProof:    "bill.png",
		RejectionReason: "Document quality insufficient or information mismatch",
	}
	if err := db.Create(record).Error; err != nil {
		t.Fatalf("failed to create rejected kyc record: %v", err)
	}
	return record
}

// CreateTestInvestment creates one ledger entry for the given investor
// and property.
func CreateTestInvestment(t *testing.T, db *gorm.DB, kycID string, property *models.Property, amount int64) *models.Investment {
	t.Helper()

	amountDec := decimal.NewFromInt(amount)
	tokens := amountDec.Div(property.TokenPrice())
	fee := amountDec.Mul(decimal.NewFromFloat(0.02))
	inv := &models.Investment{
		PropertyID:       property.ID,
		PropertyCode:     property.Code,
		PropertyName:     property.Name,
		KYCRecordID:      kycID,
		Amount:           amount,
		TokensReceived:   tokens,
		OwnershipPercent: tokens.Div(decimal.NewFromInt(property.TokensSupply)).Mul(decimal.NewFromInt(100)),
		PlatformFee:      fee,
		NetInvestment:    amountDec.Sub(fee),
		ReturnRate:       property.ROI,
		InvestedAt:       time.Now(),
	}
	if err := db.Create(inv).Error; err != nil {
		t.Fatalf("failed to create test investment: %v", err)
	}
	return inv
}
