package models

import "github.com/shopspring/decimal"

// PropertyType represents the usage class of a tokenized property.
type PropertyType string

const (
	PropertyTypeResidential PropertyType = "Residential"
	PropertyTypeCommercial  PropertyType = "Commercial"
	PropertyTypeMixedUse    PropertyType = "Mixed-Use"
)

// Property represents a tokenized real-estate listing. Everything except
// TokensAvailable is immutable after registration; TokensAvailable only
// decreases, inside the same transaction that appends to the ledger.
type Property struct {
	Base
	Code            string          `gorm:"not null;uniqueIndex" json:"code"`
	Name            string          `gorm:"not null" json:"name"`
	Location        string          `gorm:"not null" json:"location"`
	Price           int64           `gorm:"type:bigint;not null" json:"price"`
	Currency        string          `gorm:"not null;default:'PKR'" json:"currency"`
	ROI             float64         `gorm:"not null" json:"roi"`
	TokensSupply    int64           `gorm:"type:bigint;not null" json:"tokens_supply"`
	TokensAvailable decimal.Decimal `gorm:"type:numeric;not null" json:"tokens_available"`
	PropertyType    PropertyType    `gorm:"not null" json:"property_type"`
	YearBuilt       int             `json:"year_built"`
	SquareFeet      int             `json:"square_feet"`
	Description     string          `json:"description"`
	ImageURL        string          `json:"image_url,omitempty"`
}

// TokenPrice returns price / tokens_supply. The quotient is fixed at
// registration time because both operands are immutable.
func (p *Property) TokenPrice() decimal.Decimal {
	return decimal.NewFromInt(p.Price).Div(decimal.NewFromInt(p.TokensSupply))
}
