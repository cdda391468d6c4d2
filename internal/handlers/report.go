package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	apierrors "github.com/habitloop/habit-tracking-api/internal/errors"
	"github.com/habitloop/habit-tracking-api/internal/middleware"
	"github.com/habitloop/habit-tracking-api/internal/services"
)

// ReportHandler serves the weekly and daily summary reports and the
// motivation endpoint.
type ReportHandler struct {
	reportService     *services.ReportService
	motivationService *services.MotivationService
	loc               *time.Location
}

func NewReportHandler(reportService *services.ReportService, motivationService *services.MotivationService, loc *time.Location) *ReportHandler {
	return &ReportHandler{
		reportService:     reportService,
		motivationService: motivationService,
		loc:               loc,
	}
}

// GetWeeklySummary returns the report for the week containing the date.
func (h *ReportHandler) GetWeeklySummary(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	summary, err := h.reportService.GetWeeklySummary(userID, queryDate(c, h.loc))
	if err != nil {
		respondReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetDailySummary returns the single-day report.
func (h *ReportHandler) GetDailySummary(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	summary, err := h.reportService.GetDailySummary(userID, queryDate(c, h.loc))
	if err != nil {
		respondReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetDailyProgress returns the day's completion stats with a motivational
// message matched to the completion percentage.
func (h *ReportHandler) GetDailyProgress(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	summary, err := h.motivationService.GetDailyProgressSummary(userID, queryDate(c, h.loc))
	if err != nil {
		respondReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func respondReportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidDate):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
