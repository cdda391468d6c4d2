package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/habitloop/habit-tracking-api/internal/dto"
	apierrors "github.com/habitloop/habit-tracking-api/internal/errors"
	"github.com/habitloop/habit-tracking-api/internal/middleware"
	"github.com/habitloop/habit-tracking-api/internal/models"
	"github.com/habitloop/habit-tracking-api/internal/services"
	"github.com/habitloop/habit-tracking-api/internal/utils"
)

// DailyLogHandler serves the daily log sync endpoint, per-log updates and
// group progress queries.
type DailyLogHandler struct {
	dailyLogService *services.DailyLogService
	loc             *time.Location
}

func NewDailyLogHandler(dailyLogService *services.DailyLogService, loc *time.Location) *DailyLogHandler {
	return &DailyLogHandler{
		dailyLogService: dailyLogService,
		loc:             loc,
	}
}

// queryDate resolves the date query parameter, defaulting to today in loc.
func queryDate(c *gin.Context, loc *time.Location) string {
	date := c.Query("date")
	if date == "" {
		date = utils.FormatDate(time.Now().In(loc))
	}
	return date
}

// SyncDailyLogs materializes the current user's logs for the requested
// date and returns the enriched set. Repeated calls are safe; dates
// outside the sync window degrade to a plain read.
func (h *DailyLogHandler) SyncDailyLogs(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	date := queryDate(c, h.loc)
	logs, err := h.dailyLogService.SyncDailyLogsForUser(userID, date)
	if err != nil {
		respondDailyLogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":       date,
		"daily_logs": dto.ToDailyLogDTOs(logs),
	})
}

// ListDailyLogs returns the current user's logs for a date without
// generating anything.
func (h *DailyLogHandler) ListDailyLogs(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	date := queryDate(c, h.loc)
	logs, err := h.dailyLogService.GetDailyLogsByUserID(userID, date)
	if err != nil {
		respondDailyLogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":       date,
		"daily_logs": dto.ToDailyLogDTOs(logs),
	})
}

// UpdateDailyLog adjusts the schedule fields of one of the user's logs.
func (h *DailyLogHandler) UpdateDailyLog(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type UpdateDailyLogRequest struct {
		StartTime       *string `json:"start_time"`
		DurationMinutes *int    `json:"duration_minutes" binding:"omitempty,min=1"`
	}

	var req UpdateDailyLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	log, err := h.dailyLogService.UpdateDailyLog(c.Param("id"), userID, req.StartTime, req.DurationMinutes)
	if err != nil {
		respondDailyLogError(c, err)
		return
	}

	c.JSON(http.StatusOK, log)
}

// DeleteDailyLog removes a single occurrence from the user's day. The
// removal sticks: re-syncing the same date does not resurrect the log.
func (h *DailyLogHandler) DeleteDailyLog(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.dailyLogService.SoftDeleteDailyLog(c.Param("id"), userID); err != nil {
		respondDailyLogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Daily log deleted successfully",
	})
}

// UpdateProgress sets a log's status and, for timer items, the accumulated
// seconds.
func (h *DailyLogHandler) UpdateProgress(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type UpdateProgressRequest struct {
		Status       string `json:"status" binding:"required,oneof=pending inprogress completed failed skipped"`
		TimerSeconds *int   `json:"timer_seconds" binding:"omitempty,min=0"`
	}

	var req UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	log, err := h.dailyLogService.UpsertDailyLogProgress(c.Param("id"), userID, models.DailyLogStatus(req.Status), req.TimerSeconds)
	if err != nil {
		respondDailyLogError(c, err)
		return
	}

	c.JSON(http.StatusOK, log)
}

// GetGroupProgress returns the roster completion view for a collaborative
// session item on a date. Access is enforced by RequireItemAccess.
func (h *DailyLogHandler) GetGroupProgress(c *gin.Context) {
	date := queryDate(c, h.loc)
	progress, err := h.dailyLogService.GetGroupProgress(c.Param("id"), date)
	if err != nil {
		respondDailyLogError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

func respondDailyLogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidDate):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrDailyLogNotFound),
		errors.Is(err, services.ErrSessionItemNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
