package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "proptoken/internal/errors"
	"proptoken/internal/models"
	"proptoken/internal/pagination"
)

// investmentService handles the allocation engine and the ledger.
type investmentService struct {
	db            *gorm.DB
	minimumTicket int64
	feeRate       decimal.Decimal
}

// NewInvestmentService creates a new InvestmentServicer with the
// platform's investment bounds and fee rate.
func NewInvestmentService(db *gorm.DB, minimumTicket int64, feeRate float64) InvestmentServicer {
	return &investmentService{
		db:            db,
		minimumTicket: minimumTicket,
		feeRate:       decimal.NewFromFloat(feeRate),
	}
}

// Invest allocates tokens of a property to a verified investor. The
// availability check, the token decrement, and the ledger append happen
// in one transaction, so concurrent investors can never oversubscribe a
// property: the decrement is guarded by the remaining balance and loses
// the race cleanly instead of going negative.
func (s *investmentService) Invest(kycID, propertyCode string, amount int64) (*models.Investment, error) {
	var record models.KYCRecord
	if err := s.db.Where("id = ?", kycID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrKYCNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !record.Verified {
		return nil, apperrors.ErrKYCNotVerified
	}

	var investment *models.Investment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var property models.Property
		if err := tx.Where("code = ?", propertyCode).First(&property).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrPropertyNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if amount < s.minimumTicket {
			return apperrors.WithMessage(apperrors.ErrInvalidAmount,
				fmt.Sprintf("minimum investment is %d %s", s.minimumTicket, property.Currency))
		}
		if amount > property.Price {
			return apperrors.WithMessage(apperrors.ErrInvalidAmount,
				fmt.Sprintf("investment cannot exceed the property price of %d %s", property.Price, property.Currency))
		}

		amountDec := decimal.NewFromInt(amount)
		tokens := amountDec.Div(property.TokenPrice())
		if tokens.GreaterThan(property.TokensAvailable) {
			return apperrors.ErrTokensUnavailable
		}

		// Guarded decrement: a concurrent allocation that drained the
		// balance first leaves zero rows affected.
		res := tx.Model(&models.Property{}).
			Where("id = ? AND tokens_available >= ?", property.ID, tokens).
			UpdateColumn("tokens_available", gorm.Expr("tokens_available - ?", tokens))
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrTokensUnavailable
		}

		fee := amountDec.Mul(s.feeRate)
		investment = &models.Investment{
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
		if err := tx.Create(investment).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return investment, nil
}

// GetInvestments retrieves a paginated slice of an investor's ledger,
// newest first.
func (s *investmentService) GetInvestments(kycID string, page pagination.PageRequest) (*pagination.PageResponse[models.Investment], error) {
	page.Defaults()

	base := s.db.Model(&models.Investment{}).Where("kyc_record_id = ?", kycID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var investments []models.Investment
	if err := base.Order("invested_at DESC").Scopes(pagination.Paginate(page)).Find(&investments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(investments, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetInvestmentByID retrieves one ledger entry, scoped to the investor.
func (s *investmentService) GetInvestmentByID(kycID, investmentID string) (*models.Investment, error) {
	var investment models.Investment
	if err := s.db.Where("id = ? AND kyc_record_id = ?", investmentID, kycID).First(&investment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvestmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &investment, nil
}

// GetPortfolio aggregates an investor's ledger into per-property
// positions plus overall totals.
func (s *investmentService) GetPortfolio(kycID string) (*PortfolioSummary, error) {
	var investments []models.Investment
	if err := s.db.Where("kyc_record_id = ?", kycID).Order("invested_at").Find(&investments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := &PortfolioSummary{Positions: []PortfolioPosition{}}
	index := make(map[string]int)
	for _, inv := range investments {
		summary.TotalInvested += inv.Amount
		summary.TotalFees = summary.TotalFees.Add(inv.PlatformFee)
		summary.TotalTokens = summary.TotalTokens.Add(inv.TokensReceived)

		i, ok := index[inv.PropertyCode]
		if !ok {
			i = len(summary.Positions)
			index[inv.PropertyCode] = i
			summary.Positions = append(summary.Positions, PortfolioPosition{
				PropertyCode: inv.PropertyCode,
				PropertyName: inv.PropertyName,
			})
		}
		pos := &summary.Positions[i]
		pos.TotalAmount += inv.Amount
		pos.TotalTokens = pos.TotalTokens.Add(inv.TokensReceived)
		pos.OwnershipPercent = pos.OwnershipPercent.Add(inv.OwnershipPercent)
		pos.Investments++
	}

	if len(summary.Positions) > 0 {
		var total decimal.Decimal
		for _, pos := range summary.Positions {
			total = total.Add(pos.OwnershipPercent)
		}
		summary.AverageOwnership = total.Div(decimal.NewFromInt(int64(len(summary.Positions))))
	}

	return summary, nil
}
