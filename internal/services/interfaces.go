package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"proptoken/internal/analytics"
	"proptoken/internal/models"
	"proptoken/internal/pagination"
)

// PropertyFilter holds optional filter parameters for listing the catalog.
type PropertyFilter struct {
	Location     *string
	PropertyType *models.PropertyType
	MinPrice     *int64
	MaxPrice     *int64
	MinROI       *float64
}

// PropertyDetails carries the optional descriptive attributes of a listing.
type PropertyDetails struct {
	Currency    string
	YearBuilt   int
	SquareFeet  int
	Description string
	ImageURL    string
}

// PropertyServicer defines the contract for catalog business logic.
type PropertyServicer interface {
	RegisterProperty(name, location string, price int64, roi float64, tokensSupply int64, propertyType models.PropertyType, details PropertyDetails) (*models.Property, error)
	ListProperties(page pagination.PageRequest, filter PropertyFilter) (*pagination.PageResponse[models.Property], error)
	GetPropertyByCode(code string) (*models.Property, error)
	SeedDemoCatalog() (int, error)
}

// KYCSubmission is one identity verification attempt: personal information
// plus the names of the uploaded documents.
type KYCSubmission struct {
	FullName     string
	Email        string
	Phone        string
	Address      string
	DateOfBirth  string
	NationalID   string
	Occupation   string
	AnnualIncome string

	IDDocument   string
	AddressProof string
	IncomeProof  string
}

// KYCServicer defines the contract for identity verification.
type KYCServicer interface {
	Verify(sub KYCSubmission) (*models.KYCRecord, error)
	GetRecordByID(id string) (*models.KYCRecord, error)
}

// PortfolioPosition aggregates an investor's ledger entries for one property.
type PortfolioPosition struct {
	PropertyCode     string          `json:"property_code"`
	PropertyName     string          `json:"property_name"`
	TotalAmount      int64           `json:"total_amount"`
	TotalTokens      decimal.Decimal `json:"total_tokens"`
	OwnershipPercent decimal.Decimal `json:"ownership_percent"`
	Investments      int             `json:"investments"`
}

// PortfolioSummary is an investor's full holdings breakdown.
type PortfolioSummary struct {
	TotalInvested    int64               `json:"total_invested"`
	TotalFees        decimal.Decimal     `json:"total_fees"`
	TotalTokens      decimal.Decimal     `json:"total_tokens"`
	AverageOwnership decimal.Decimal     `json:"average_ownership"`
	Positions        []PortfolioPosition `json:"positions"`
}

// InvestmentServicer defines the contract for the allocation engine and
// the investment ledger.
type InvestmentServicer interface {
	Invest(kycID, propertyCode string, amount int64) (*models.Investment, error)
	GetInvestments(kycID string, page pagination.PageRequest) (*pagination.PageResponse[models.Investment], error)
	GetInvestmentByID(kycID, investmentID string) (*models.Investment, error)
	GetPortfolio(kycID string) (*PortfolioSummary, error)
}

// MarketDataServicer defines the contract for the synthetic historical
// return series used by the analytics pipeline.
type MarketDataServicer interface {
	// Generate draws one observation per property per month inside the window.
	Generate(propertyCodes []string, start, end time.Time) []analytics.Observation
	// GenerateHistory draws the default five-year, twenty-property window.
	GenerateHistory() []analytics.Observation
}

// StageStatus describes the outcome of one model stage of a report.
type StageStatus string

const (
	StageCompleted        StageStatus = "completed"
	StageInsufficientData StageStatus = "insufficient_data"
	StageFailed           StageStatus = "failed"
)

// ForecastStage is the trend-and-seasonality forecast section of a report.
type ForecastStage struct {
	Status      StageStatus               `json:"status"`
	Points      []analytics.ForecastPoint `json:"points,omitempty"`
	ResidualStd float64                   `json:"residual_std,omitempty"`
}

// BoostedStage is the gradient-boosted regression section of a report.
type BoostedStage struct {
	Status StageStatus              `json:"status"`
	Result *analytics.BoostedResult `json:"result,omitempty"`
}

// LinearStage is the linear trend section of a report.
type LinearStage struct {
	Status StageStatus             `json:"status"`
	Result *analytics.LinearResult `json:"result,omitempty"`
}

// AnalyticsReport is the full output of one analytics run over the
// filtered observation set.
type AnalyticsReport struct {
	Observations  int                       `json:"observations"`
	TopProperties []analytics.PropertyRank  `json:"top_properties"`
	LocationStats []analytics.LocationStats `json:"location_stats"`
	Forecast      ForecastStage             `json:"forecast"`
	Boosted       BoostedStage              `json:"boosted"`
	Linear        LinearStage               `json:"linear"`
}

// AnalyticsServicer defines the contract for the ROI analytics pipeline.
type AnalyticsServicer interface {
	RunReport(ctx context.Context, criteria analytics.FilterCriteria) (*AnalyticsReport, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(kycRecordID, action, entityType, entityID, ipAddress string, details map[string]interface{})
}
