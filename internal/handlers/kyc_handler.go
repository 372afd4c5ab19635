package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "proptoken/internal/errors"
	"proptoken/internal/metrics"
	"proptoken/internal/middleware"
	"proptoken/internal/services"
)

// KYCHandler handles identity verification requests.
type KYCHandler struct {
	kycService   services.KYCServicer
	auditService services.AuditServicer
}

// NewKYCHandler creates a new KYCHandler.
func NewKYCHandler(kycService services.KYCServicer, auditService services.AuditServicer) *KYCHandler {
	return &KYCHandler{kycService: kycService, auditService: auditService}
}

// VerifyKYCRequest represents the request payload for identity verification.
type VerifyKYCRequest struct {
	FullName     string `json:"full_name" binding:"required,min=1,max=200"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone" binding:"required,min=7,max=30"`
	Address      string `json:"address" binding:"required,min=1,max=500"`
	DateOfBirth  string `json:"date_of_birth" binding:"required"`
	NationalID   string `json:"national_id" binding:"required,min=5,max=50"`
	Occupation   string `json:"occupation" binding:"max=100"`
	AnnualIncome string `json:"annual_income" binding:"max=50"`

	IDDocument   string `json:"id_document" binding:"required"`
	AddressProof string `json:"address_proof" binding:"required"`
	IncomeProof  string `json:"income_proof"`
}

// VerificationResponse represents the outcome of a verification attempt.
type VerificationResponse struct {
	Verified        bool   `json:"verified"`
	RecordID        string `json:"record_id"`
	Token           string `json:"token,omitempty"`
	RejectionReason string `json:"rejection_reason,omitempty"`
}

// VerifyKYC handles one identity verification attempt.
// @Summary     Verify identity
// @Description Submit personal information and documents for verification; a session token is issued on success
// @Tags        kyc
// @Accept      json
// @Produce     json
// @Param       request body VerifyKYCRequest true "Submission"
// @Success     200 {object} VerificationResponse "Verification outcome"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /kyc/verify [post]
func (h *KYCHandler) VerifyKYC(c *gin.Context) {
	var req VerifyKYCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	record, err := h.kycService.Verify(services.KYCSubmission{
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		DateOfBirth:  req.DateOfBirth,
		NationalID:   req.NationalID,
		Occupation:   req.Occupation,
		AnnualIncome: req.AnnualIncome,
		IDDocument:   req.IDDocument,
		AddressProof: req.AddressProof,
		IncomeProof:  req.IncomeProof,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	metrics.RecordKYCVerification(record.Verified)
	h.auditService.Log(record.ID, "KYC_VERIFICATION", "kyc_record", record.ID, c.ClientIP(),
		map[string]interface{}{"verified": record.Verified})

	resp := VerificationResponse{
		Verified:        record.Verified,
		RecordID:        record.ID,
		RejectionReason: record.RejectionReason,
	}
	if record.Verified {
		token, err := middleware.GenerateSessionToken(record)
		if err != nil {
			respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
			return
		}
		resp.Token = token
	}

	c.JSON(http.StatusOK, resp)
}

// GetStatus handles fetching the authenticated investor's verification record.
// @Summary     Verification status
// @Description Get the verification record behind the current session
// @Tags        kyc
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.KYCRecord "Verification record"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Record not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /kyc/status [get]
func (h *KYCHandler) GetStatus(c *gin.Context) {
	kycID, err := getKYCID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	record, err := h.kycService.GetRecordByID(kycID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"record": record})
}
