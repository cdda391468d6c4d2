package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/habitloop/habit-tracking-api/internal/errors"
	"github.com/habitloop/habit-tracking-api/internal/middleware"
	"github.com/habitloop/habit-tracking-api/internal/models"
	"github.com/habitloop/habit-tracking-api/internal/services"
)

// SessionHandler serves weekly sessions, their items and collaborator
// invitations.
type SessionHandler struct {
	sessionService *services.SessionService
}

func NewSessionHandler(sessionService *services.SessionService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
	}
}

// CreateSession creates a weekly session for the current user.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateSessionRequest struct {
		Name        string  `json:"name" binding:"required"`
		Description *string `json:"description"`
		DayOfWeek   *int    `json:"day_of_week" binding:"required"`
	}

	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	session, err := h.sessionService.CreateSession(services.CreateSessionInput{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		DayOfWeek:   *req.DayOfWeek,
	})
	if err != nil {
		respondSessionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

// ListSessions returns the current user's weekly sessions with items.
func (h *SessionHandler) ListSessions(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	sessions, err := h.sessionService.ListSessions(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch weekly sessions")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessions": sessions,
	})
}

// UpdateSession applies a partial update to a session owned by the user.
func (h *SessionHandler) UpdateSession(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type UpdateSessionRequest struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		DayOfWeek   *int    `json:"day_of_week"`
	}

	var req UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	session, err := h.sessionService.UpdateSession(c.Param("id"), userID, services.UpdateSessionInput{
		Name:        req.Name,
		Description: req.Description,
		DayOfWeek:   req.DayOfWeek,
	})
	if err != nil {
		respondSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// DeleteSession soft deletes a session owned by the user.
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.sessionService.DeleteSession(c.Param("id"), userID); err != nil {
		respondSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Weekly session deleted successfully",
	})
}

// CreateItem adds an item to a weekly session owned by the user.
func (h *SessionHandler) CreateItem(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateItemRequest struct {
		HabitMasterID   string `json:"habit_master_id" binding:"required"`
		StartTime       string `json:"start_time" binding:"required"`
		DurationMinutes int    `json:"duration_minutes" binding:"required,min=1"`
		Type            string `json:"type" binding:"omitempty,oneof=task timer"`
		GoalType        string `json:"goal_type" binding:"omitempty,oneof=individual collaborative"`
	}

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.sessionService.CreateItem(services.CreateItemInput{
		WeeklySessionID: c.Param("id"),
		UserID:          userID,
		HabitMasterID:   req.HabitMasterID,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		Type:            models.SessionItemType(req.Type),
		GoalType:        models.GoalType(req.GoalType),
	})
	if err != nil {
		respondSessionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// DeleteItem soft deletes a session item owned by the user.
func (h *SessionHandler) DeleteItem(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.sessionService.DeleteItem(c.Param("id"), userID); err != nil {
		respondSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Session item deleted successfully",
	})
}

// AddCollaborator invites an email address to a session item.
func (h *SessionHandler) AddCollaborator(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type AddCollaboratorRequest struct {
		Email string `json:"email" binding:"required,email"`
	}

	var req AddCollaboratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.sessionService.AddCollaboratorByEmail(services.AddCollaboratorInput{
		SessionItemID: c.Param("id"),
		InviterUserID: userID,
		Email:         req.Email,
	})
	if err != nil {
		respondSessionError(c, err)
		return
	}

	status := http.StatusCreated
	if result.AlreadyExists {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{
		"collaborator":   result.Collaborator,
		"already_exists": result.AlreadyExists,
	})
}

// UpdateCollaboratorStatus answers or leaves an invitation.
func (h *SessionHandler) UpdateCollaboratorStatus(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type UpdateCollaboratorRequest struct {
		Status string `json:"status" binding:"required,oneof=accepted rejected left"`
	}

	var req UpdateCollaboratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	collab, err := h.sessionService.UpdateCollaboratorStatus(c.Param("id"), models.CollaboratorStatus(req.Status), userID)
	if err != nil {
		respondSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, collab)
}

func respondSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrSessionNotFound),
		errors.Is(err, services.ErrSessionItemNotFound),
		errors.Is(err, services.ErrCollaboratorNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotSessionOwner):
		// Hide other users' sessions instead of confirming they exist.
		apierrors.NotFound(c, services.ErrSessionNotFound.Error())
	case errors.Is(err, services.ErrNotInvitee):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrInvalidDayOfWeek),
		errors.Is(err, services.ErrInvalidStatusTransition):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
