package services

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "proptoken/internal/errors"
	"proptoken/internal/models"
	"proptoken/internal/pagination"
)

// demoLocations are the cities the demo catalog and the synthetic market
// data draw from.
var demoLocations = []string{
	"Karachi", "Lahore", "Islamabad", "Rawalpindi", "Faisalabad",
	"Multan", "Peshawar", "Quetta", "Gujranwala", "Sialkot",
}

// demoPropertyNames seeds the demo catalog, one listing per name.
var demoPropertyNames = []string{
	"Centaurus Mall", "Bahria Town Plaza", "DHA Phase 5 Tower", "Gulberg Heights",
	"Clifton Beach Resort", "F-8 Commercial Complex", "Model Town Plaza", "Defence Tower",
	"Blue Area Office Complex", "Garden City Residency", "Lucky One Mall", "Dolmen City",
	"Emporium Mall Tower", "Packages Mall Complex", "Fortress Square", "Giga Mall",
	"Centaurus Residency", "Bahria Icon Tower", "DHA Phase 2 Plaza", "Gulberg Greens",
}

// propertyService handles catalog business logic.
type propertyService struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewPropertyService creates a new PropertyServicer. The random source
// drives demo catalog generation and is injectable for deterministic tests.
func NewPropertyService(db *gorm.DB, rng *rand.Rand) PropertyServicer {
	return &propertyService{db: db, rng: rng}
}

// RegisterProperty validates and stores a new listing. The property code
// is assigned sequentially and all tokens start available.
func (s *propertyService) RegisterProperty(name, location string, price int64, roi float64, tokensSupply int64, propertyType models.PropertyType, details PropertyDetails) (*models.Property, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "property name is required")
	}
	if location == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "property location is required")
	}
	if price <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "property price must be positive")
	}
	if roi < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "expected return cannot be negative")
	}
	if tokensSupply <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "token supply must be positive")
	}
	switch propertyType {
	case models.PropertyTypeResidential, models.PropertyTypeCommercial, models.PropertyTypeMixedUse:
	default:
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "unknown property type")
	}

	currency := details.Currency
	if currency == "" {
		currency = "PKR"
	}

	property := &models.Property{
		Name:            name,
		Location:        location,
		Price:           price,
		Currency:        currency,
		ROI:             roi,
		TokensSupply:    tokensSupply,
		TokensAvailable: decimal.NewFromInt(tokensSupply),
		PropertyType:    propertyType,
		YearBuilt:       details.YearBuilt,
		SquareFeet:      details.SquareFeet,
		Description:     details.Description,
		ImageURL:        details.ImageURL,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		code, err := nextPropertyCode(tx)
		if err != nil {
			return err
		}
		property.Code = code
		if err := tx.Create(property).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return property, nil
}

// ListProperties retrieves a paginated catalog page, optionally filtered.
func (s *propertyService) ListProperties(page pagination.PageRequest, filter PropertyFilter) (*pagination.PageResponse[models.Property], error) {
	page.Defaults()

	base := s.db.Model(&models.Property{})
	if filter.Location != nil && *filter.Location != "" {
		base = base.Where("location = ?", *filter.Location)
	}
	if filter.PropertyType != nil && *filter.PropertyType != "" {
		base = base.Where("property_type = ?", *filter.PropertyType)
	}
	if filter.MinPrice != nil {
		base = base.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		base = base.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.MinROI != nil {
		base = base.Where("roi >= ?", *filter.MinROI)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var properties []models.Property
	if err := base.Order("code").Scopes(pagination.Paginate(page)).Find(&properties).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(properties, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetPropertyByCode retrieves a single listing by its public code.
func (s *propertyService) GetPropertyByCode(code string) (*models.Property, error) {
	var property models.Property
	if err := s.db.Where("code = ?", code).First(&property).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPropertyNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &property, nil
}

// SeedDemoCatalog populates an empty catalog with twenty demo listings
// and reports how many were created. A non-empty catalog is left alone.
func (s *propertyService) SeedDemoCatalog() (int, error) {
	var count int64
	if err := s.db.Model(&models.Property{}).Count(&count).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return 0, nil
	}

	types := []models.PropertyType{
		models.PropertyTypeResidential,
		models.PropertyTypeCommercial,
		models.PropertyTypeMixedUse,
	}

	properties := make([]models.Property, 0, len(demoPropertyNames))
	for i, name := range demoPropertyNames {
		supply := int64(s.rng.Intn(9001) + 1000)
		properties = append(properties, models.Property{
			Code:            fmt.Sprintf("PROP_%03d", i+1),
			Name:            name,
			Location:        demoLocations[s.rng.Intn(len(demoLocations))],
			Price:           int64(s.rng.Intn(45000001) + 5000000),
			Currency:        "PKR",
			ROI:             roundRate(12 + s.rng.Float64()*18),
			TokensSupply:    supply,
			TokensAvailable: decimal.NewFromInt(supply),
			PropertyType:    types[s.rng.Intn(len(types))],
			YearBuilt:       s.rng.Intn(25) + 2000,
			SquareFeet:      s.rng.Intn(48001) + 2000,
			Description: fmt.Sprintf("Premium %s property in %s. Modern amenities, prime location, excellent investment opportunity.",
				types[s.rng.Intn(len(types))], demoLocations[s.rng.Intn(len(demoLocations))]),
			ImageURL: fmt.Sprintf("https://picsum.photos/400/300?random=%d", i),
		})
	}

	if err := s.db.Create(&properties).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return len(properties), nil
}

// nextPropertyCode assigns the next sequential PROP_ code within the
// caller's transaction.
func nextPropertyCode(tx *gorm.DB) (string, error) {
	var count int64
	if err := tx.Model(&models.Property{}).Unscoped().Count(&count).Error; err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return fmt.Sprintf("PROP_%03d", count+1), nil
}

// roundRate rounds a percentage to two decimal places for display.
func roundRate(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
