package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "proptoken/internal/errors"
	"proptoken/internal/models"
	"proptoken/internal/pagination"
	"proptoken/internal/services"
)

// PropertyHandler handles catalog requests.
type PropertyHandler struct {
	propertyService services.PropertyServicer
}

// NewPropertyHandler creates a new PropertyHandler.
func NewPropertyHandler(propertyService services.PropertyServicer) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

// RegisterPropertyRequest represents the request payload for registering a listing.
type RegisterPropertyRequest struct {
	Name         string              `json:"name" binding:"required,min=1,max=200"`
	Location     string              `json:"location" binding:"required,min=1,max=100"`
	Price        int64               `json:"price" binding:"required,gt=0"`
	Currency     string              `json:"currency" binding:"omitempty,iso4217"`
	ROI          float64             `json:"roi" binding:"gte=0"`
	TokensSupply int64               `json:"tokens_supply" binding:"required,gt=0"`
	PropertyType models.PropertyType `json:"property_type" binding:"required,property_type"`
	YearBuilt    int                 `json:"year_built" binding:"omitempty,gte=1800"`
	SquareFeet   int                 `json:"square_feet" binding:"omitempty,gt=0"`
	Description  string              `json:"description" binding:"max=2000"`
	ImageURL     string              `json:"image_url" binding:"omitempty,url"`
}

// ListPropertiesQuery represents the catalog filter query parameters.
type ListPropertiesQuery struct {
	pagination.PageRequest
	Location     string  `form:"location"`
	PropertyType string  `form:"property_type" binding:"omitempty,property_type"`
	MinPrice     int64   `form:"min_price" binding:"omitempty,gt=0"`
	MaxPrice     int64   `form:"max_price" binding:"omitempty,gt=0"`
	MinROI       float64 `form:"min_roi" binding:"omitempty,gte=0"`
}

// RegisterProperty handles registering a new listing.
// @Summary     Register property
// @Description Register a new tokenized listing in the catalog
// @Tags        properties
// @Accept      json
// @Produce     json
// @Param       request body RegisterPropertyRequest true "Listing details"
// @Success     201 {object} models.Property "Property created"
// @Failure     400 {object} ErrorResponse "Invalid attributes"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /properties [post]
func (h *PropertyHandler) RegisterProperty(c *gin.Context) {
	var req RegisterPropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	property, err := h.propertyService.RegisterProperty(
		req.Name, req.Location, req.Price, req.ROI, req.TokensSupply, req.PropertyType,
		services.PropertyDetails{
			Currency:    req.Currency,
			YearBuilt:   req.YearBuilt,
			SquareFeet:  req.SquareFeet,
			Description: req.Description,
			ImageURL:    req.ImageURL,
		},
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"property": property})
}

// ListProperties handles listing the catalog.
// @Summary     List properties
// @Description Get a paginated catalog page, optionally filtered by location, type, price and return
// @Tags        properties
// @Produce     json
// @Param       page          query int     false "Page number (default 1)"
// @Param       page_size     query int     false "Items per page (default 20, max 100)"
// @Param       location      query string  false "Exact location match"
// @Param       property_type query string  false "Residential, Commercial or Mixed-Use"
// @Param       min_price     query int     false "Minimum price"
// @Param       max_price     query int     false "Maximum price"
// @Param       min_roi       query number  false "Minimum expected return"
// @Success     200 {object} pagination.PageResponse[models.Property] "Paginated catalog"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /properties [get]
func (h *PropertyHandler) ListProperties(c *gin.Context) {
	var query ListPropertiesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.PropertyFilter{}
	if query.Location != "" {
		filter.Location = &query.Location
	}
	if query.PropertyType != "" {
		propertyType := models.PropertyType(query.PropertyType)
		filter.PropertyType = &propertyType
	}
	if query.MinPrice > 0 {
		filter.MinPrice = &query.MinPrice
	}
	if query.MaxPrice > 0 {
		filter.MaxPrice = &query.MaxPrice
	}
	if query.MinROI > 0 {
		filter.MinROI = &query.MinROI
	}

	page, err := h.propertyService.ListProperties(query.PageRequest, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetProperty handles fetching one listing by code.
// @Summary     Get property
// @Description Get a single listing by its public code
// @Tags        properties
// @Produce     json
// @Param       code path string true "Property code"
// @Success     200 {object} models.Property "Property"
// @Failure     404 {object} ErrorResponse "Property not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /properties/{code} [get]
func (h *PropertyHandler) GetProperty(c *gin.Context) {
	property, err := h.propertyService.GetPropertyByCode(c.Param("code"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"property": property})
}
