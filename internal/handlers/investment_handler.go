package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "proptoken/internal/errors"
	"proptoken/internal/invoice"
	"proptoken/internal/metrics"
	"proptoken/internal/pagination"
	"proptoken/internal/services"
)

// InvestmentHandler handles allocation and ledger requests.
type InvestmentHandler struct {
	investmentService services.InvestmentServicer
	kycService        services.KYCServicer
	auditService      services.AuditServicer
}

// NewInvestmentHandler creates a new InvestmentHandler.
func NewInvestmentHandler(investmentService services.InvestmentServicer, kycService services.KYCServicer, auditService services.AuditServicer) *InvestmentHandler {
	return &InvestmentHandler{
		investmentService: investmentService,
		kycService:        kycService,
		auditService:      auditService,
	}
}

// CreateInvestmentRequest represents the request payload for investing.
type CreateInvestmentRequest struct {
	PropertyCode string `json:"property_code" binding:"required"`
	Amount       int64  `json:"amount" binding:"required,gt=0"`
}

// CreateInvestment handles allocating tokens to the authenticated investor.
// @Summary     Invest
// @Description Allocate property tokens against an investment amount
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateInvestmentRequest true "Allocation request"
// @Success     201 {object} models.Investment "Ledger entry"
// @Failure     400 {object} ErrorResponse "Amount outside the allowed bounds"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Identity not verified"
// @Failure     404 {object} ErrorResponse "Property not found"
// @Failure     409 {object} ErrorResponse "Not enough tokens available"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments [post]
func (h *InvestmentHandler) CreateInvestment(c *gin.Context) {
	kycID, err := getKYCID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	investment, err := h.investmentService.Invest(kycID, req.PropertyCode, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	metrics.RecordInvestment(investment.Amount)
	h.auditService.Log(kycID, "CREATE_INVESTMENT", "investment", investment.ID, c.ClientIP(),
		map[string]interface{}{"property_code": req.PropertyCode, "amount": req.Amount})

	c.JSON(http.StatusCreated, gin.H{"investment": investment})
}

// ListInvestments handles listing the authenticated investor's ledger.
// @Summary     List investments
// @Description Get a paginated slice of the investor's ledger, newest first
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Investment] "Paginated ledger"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments [get]
func (h *InvestmentHandler) ListInvestments(c *gin.Context) {
	kycID, err := getKYCID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.investmentService.GetInvestments(kycID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetPortfolio handles the investor's aggregated holdings breakdown.
// @Summary     Portfolio
// @Description Get the investor's per-property positions and totals
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.PortfolioSummary "Portfolio"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /portfolio [get]
func (h *InvestmentHandler) GetPortfolio(c *gin.Context) {
	kycID, err := getKYCID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	portfolio, err := h.investmentService.GetPortfolio(kycID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"portfolio": portfolio})
}

// GetInvoice handles rendering a PDF invoice for one ledger entry.
// @Summary     Investment invoice
// @Description Download the PDF invoice for one of the investor's ledger entries
// @Tags        investments
// @Produce     application/pdf
// @Security    BearerAuth
// @Param       id path string true "Investment ID"
// @Success     200 {file} file "PDF invoice"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id}/invoice [get]
func (h *InvestmentHandler) GetInvoice(c *gin.Context) {
	kycID, err := getKYCID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investment, err := h.investmentService.GetInvestmentByID(kycID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	investorName := ""
	if record, err := h.kycService.GetRecordByID(kycID); err == nil {
		investorName = record.FullName
	}

	data, err := invoice.Generate(investment, investorName)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice_%s.pdf", investment.ID))
	c.Data(http.StatusOK, "application/pdf", data)
}
