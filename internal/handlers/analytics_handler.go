package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"proptoken/internal/analytics"
	apperrors "proptoken/internal/errors"
	"proptoken/internal/metrics"
	"proptoken/internal/services"
)

// AnalyticsHandler handles ROI analytics requests.
type AnalyticsHandler struct {
	analyticsService services.AnalyticsServicer
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService services.AnalyticsServicer) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// ReportRequest represents the optional filter criteria for a report run.
type ReportRequest struct {
	Locations []string   `json:"locations"`
	Start     *time.Time `json:"start"`
	End       *time.Time `json:"end"`
	MinROI    float64    `json:"min_roi" binding:"gte=0"`
}

// RunReport handles generating a full analytics report.
// @Summary     Run analytics report
// @Description Generate a fresh synthetic history, filter it, and run the ranking, statistics and model stages
// @Tags        analytics
// @Accept      json
// @Produce     json
// @Param       request body ReportRequest false "Filter criteria"
// @Success     200 {object} services.AnalyticsReport "Report"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /analytics/report [post]
func (h *AnalyticsHandler) RunReport(c *gin.Context) {
	var req ReportRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
	}

	criteria := analytics.FilterCriteria{
		Locations: req.Locations,
		MinRate:   req.MinROI,
	}
	if req.Start != nil {
		criteria.Start = *req.Start
	}
	if req.End != nil {
		criteria.End = *req.End
	}

	start := time.Now()
	report, err := h.analyticsService.RunReport(c.Request.Context(), criteria)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	metrics.ObserveAnalyticsReport(start)

	c.JSON(http.StatusOK, gin.H{"report": report})
}
