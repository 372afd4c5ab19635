package services

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"proptoken/internal/models"
	"proptoken/internal/pagination"
	"proptoken/internal/testutil"
)

func TestInvest(t *testing.T) {
	t.Run("allocates_tokens", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvestmentService(db, 100000, 0.02)

		// Price 10,000,000 over 1,000 tokens: token price 10,000.
		property := testutil.CreateTestProperty(t, db)
		record := testutil.CreateVerifiedKYC(t, db)

		inv, err := svc.Invest(record.ID, property.Code, 500000)
		testutil.AssertNoError(t, err)

		if !inv.TokensReceived.Equal(decimal.NewFromInt(50)) {
			t.Errorf("expected 50 tokens, got %s", inv.TokensReceived)
		}
		if !inv.OwnershipPercent.Equal(decimal.NewFromInt(5)) {
			t.Errorf("expected 5%% ownership, got %s", inv.OwnershipPercent)
		}
		if !inv.PlatformFee.Equal(decimal.NewFromInt(10000)) {
			t.Errorf("expected fee 10000, got %s", inv.PlatformFee)
		}
		if !inv.NetInvestment.Equal(decimal.NewFromInt(490000)) {
			t.Errorf("expected net 490000, got %s", inv.NetInvestment)
		}
		if !inv.PlatformFee.Add(inv.NetInvestment).Equal(decimal.NewFromInt(inv.Amount)) {
			t.Error("fee plus net must equal the gross amount exactly")
		}
		if inv.ReturnRate != property.ROI {
			t.Errorf("expected frozen return rate %v, got %v", property.ROI, inv.ReturnRate)
		}

		var updated models.Property
		db.First(&updated, "id = ?", property.ID)
		if !updated.TokensAvailable.Equal(decimal.NewFromInt(950)) {
			t.Errorf("expected 950 tokens left, got %s", updated.TokensAvailable)
		}
	})

	t.Run("fractional_tokens", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvestmentService(db, 100000, 0.02)

		property := testutil.CreateTestProperty(t, db)
		record := testutil.CreateVerifiedKYC(t, db)

		inv, err := svc.Invest(record.ID, property.Code, 125000)
		testutil.AssertNoError(t, err)

		if !inv.TokensReceived.Equal(decimal.RequireFromString("12.5")) {
			t.Errorf("expected 12.5 tokens, got %s", inv.TokensReceived)
		}
	})

	t.Run("below_minimum", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvestmentService(db, 100000, 0.02)

		property := testutil.CreateTestProperty(t, db)
		record := testutil.CreateVerifiedKYC(t, db)

		_, err := svc.Invest(record.ID, property.Code, 99999)
		testutil.AssertAppError(t, err, "INVALID_AMOUNT")
	})

	t.Run("above_property_price", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvestmentService(db, 100000, 0.02)

		property := testutil.CreateTestProperty(t, db)
		record := testutil.CreateVerifiedKYC(t, db)

		_, err := svc.Invest(record.ID, property.Code, property.Price+1)
		testutil.AssertAppError(t, err, "INVALID_AMOUNT")
	})

	t.Run("unknown_property", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvestmentService(db, 100000, 0.02)

		record := testutil.CreateVerifiedKYC(t, db)

		_, err := svc.Invest(record.ID, "PROP_999", 500000)
		testutil.AssertAppError(t, err, "PROPERTY_NOT_FOUND")
	})

	t.Run("unverified_investor", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvestmentService(db, 100000, 0.02)

		property := testutil.CreateTestProperty(t, db)
		record := testutil.CreateRejectedKYC(t, db)

		_, err := svc.Invest(record.ID, property.Code, 500000)
		testutil.AssertAppError(t, err, "KYC_NOT_VERIFIED")
	})

	t.Run("unknown_investor", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvestmentService(db, 100000, 0.02)

		property := testutil.CreateTestProperty(t, db)

		_, err := svc.Invest("00000000-0000-0000-0000-000000000000", property.Code, 500000)
		testutil.AssertAppError(t, err, "KYC_NOT_FOUND")
	})

	t.Run("insufficient_tokens", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvestmentService(db, 100000, 0.02)

		// Token price 10,000 with only 10 tokens remaining.
		property := testutil.CreateTestPropertyWithSupply(t, db, 10000000, 1000)
		db.Model(property).Update("tokens_available", decimal.NewFromInt(10))
		record := testutil.CreateVerifiedKYC(t, db)

		_, err := svc.Invest(record.ID, property.Code, 500000)
		testutil.AssertAppError(t, err, "TOKENS_UNAVAILABLE")

		// Failed allocation leaves no ledger entry and no decrement.
		var count int64
		db.Model(&models.Investment{}).Count(&count)
		if count != 0 {
			t.Errorf("expected empty ledger after failed allocation, got %d rows", count)
		}
		var after models.Property
		db.First(&after, "id = ?", property.ID)
		if !after.TokensAvailable.Equal(decimal.NewFromInt(10)) {
			t.Errorf("expected availability unchanged at 10, got %s", after.TokensAvailable)
		}
	})

	t.Run("concurrent_allocations_never_oversubscribe", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvestmentService(db, 100000, 0.02)

		// 100 tokens at 10,000 each: room for exactly two 500,000 buys.
		property := testutil.CreateTestPropertyWithSupply(t, db, 10000000, 1000)
		db.Model(property).Update("tokens_available", decimal.NewFromInt(100))
		record := testutil.CreateVerifiedKYC(t, db)

		var wg sync.WaitGroup
		results := make([]error, 4)
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, results[i] = svc.Invest(record.ID, property.Code, 500000)
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range results {
			if err == nil {
				succeeded++
			}
		}
		if succeeded > 2 {
			t.Errorf("oversubscribed: %d of 4 concurrent buys succeeded for 100 tokens", succeeded)
		}

		var after models.Property
		db.First(&after, "id = ?", property.ID)
		if after.TokensAvailable.IsNegative() {
			t.Errorf("availability went negative: %s", after.TokensAvailable)
		}
	})
}

func TestGetInvestments(t *testing.T) {
	t.Run("lists_own_ledger", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvestmentService(db, 100000, 0.02)

		property := testutil.CreateTestProperty(t, db)
		mine := testutil.CreateVerifiedKYC(t, db)
		other := testutil.CreateVerifiedKYC(t, db)
		testutil.CreateTestInvestment(t, db, mine.ID, property, 200000)
		testutil.CreateTestInvestment(t, db, mine.ID, property, 300000)
		testutil.CreateTestInvestment(t, db, other.ID, property, 400000)

		page, err := svc.GetInvestments(mine.ID, pagination.PageRequest{})
		testutil.AssertNoError(t, err)

		if page.TotalItems != 2 {
			t.Fatalf("expected 2 ledger entries, got %d", page.TotalItems)
		}
		for _, inv := range page.Data {
			if inv.KYCRecordID != mine.ID {
				t.Errorf("leaked another investor's entry %s", inv.ID)
			}
		}
	})

	t.Run("empty_ledger", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvestmentService(db, 100000, 0.02)

		record := testutil.CreateVerifiedKYC(t, db)
		page, err := svc.GetInvestments(record.ID, pagination.PageRequest{})
		testutil.AssertNoError(t, err)

		if page.TotalItems != 0 || len(page.Data) != 0 {
			t.Errorf("expected empty page, got %d items", page.TotalItems)
		}
	})
}

func TestGetInvestmentByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvestmentService(db, 100000, 0.02)

		property := testutil.CreateTestProperty(t, db)
		record := testutil.CreateVerifiedKYC(t, db)
		created := testutil.CreateTestInvestment(t, db, record.ID, property, 200000)

		got, err := svc.GetInvestmentByID(record.ID, created.ID)
		testutil.AssertNoError(t, err)
		if got.ID != created.ID {
			t.Errorf("expected investment %s, got %s", created.ID, got.ID)
		}
	})

	t.Run("other_investors_entry", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvestmentService(db, 100000, 0.02)

		property := testutil.CreateTestProperty(t, db)
		owner := testutil.CreateVerifiedKYC(t, db)
		intruder := testutil.CreateVerifiedKYC(t, db)
		created := testutil.CreateTestInvestment(t, db, owner.ID, property, 200000)

		_, err := svc.GetInvestmentByID(intruder.ID, created.ID)
		testutil.AssertAppError(t, err, "INVESTMENT_NOT_FOUND")
	})
}

func TestGetPortfolio(t *testing.T) {
	t.Run("aggregates_positions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvestmentService(db, 100000, 0.02)

		first := testutil.CreateTestProperty(t, db)
		second := testutil.CreateTestProperty(t, db)
		record := testutil.CreateVerifiedKYC(t, db)
		testutil.CreateTestInvestment(t, db, record.ID, first, 200000)
		testutil.CreateTestInvestment(t, db, record.ID, first, 300000)
		testutil.CreateTestInvestment(t, db, record.ID, second, 400000)

		portfolio, err := svc.GetPortfolio(record.ID)
		testutil.AssertNoError(t, err)

		if portfolio.TotalInvested != 900000 {
			t.Errorf("expected total invested 900000, got %d", portfolio.TotalInvested)
		}
		if len(portfolio.Positions) != 2 {
			t.Fatalf("expected 2 positions, got %d", len(portfolio.Positions))
		}

		var firstPos *PortfolioPosition
		for i := range portfolio.Positions {
			if portfolio.Positions[i].PropertyCode == first.Code {
				firstPos = &portfolio.Positions[i]
			}
		}
		if firstPos == nil {
			t.Fatalf("no position for %s", first.Code)
		}
		if firstPos.TotalAmount != 500000 || firstPos.Investments != 2 {
			t.Errorf("expected 500000 over 2 entries, got %d over %d",
				firstPos.TotalAmount, firstPos.Investments)
		}

		// Positions own 5% and 4% of their properties
		if !portfolio.AverageOwnership.Equal(decimal.NewFromFloat(4.5)) {
			t.Errorf("expected average ownership 4.5, got %s", portfolio.AverageOwnership)
		}
	})

	t.Run("empty", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvestmentService(db, 100000, 0.02)

		record := testutil.CreateVerifiedKYC(t, db)
		portfolio, err := svc.GetPortfolio(record.ID)
		testutil.AssertNoError(t, err)

		if portfolio.TotalInvested != 0 || len(portfolio.Positions) != 0 {
			t.Errorf("expected an empty portfolio, got %+v", portfolio)
		}
	})
}
