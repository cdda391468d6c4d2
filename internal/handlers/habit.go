package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/habitloop/habit-tracking-api/internal/errors"
	"github.com/habitloop/habit-tracking-api/internal/middleware"
	"github.com/habitloop/habit-tracking-api/internal/services"
	"github.com/habitloop/habit-tracking-api/internal/utils"
)

type HabitHandler struct {
	habitService *services.HabitService
}

func NewHabitHandler(habitService *services.HabitService) *HabitHandler {
	return &HabitHandler{
		habitService: habitService,
	}
}

// CreateHabit creates a new habit master for the current user.
func (h *HabitHandler) CreateHabit(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateHabitRequest struct {
		Name        string  `json:"name" binding:"required"`
		Description *string `json:"description"`
		Category    *string `json:"category"`
		Icon        *string `json:"icon"`
		IconColor   *string `json:"icon_color"`
	}

	var req CreateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	habit, err := h.habitService.CreateHabit(services.CreateHabitInput{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Icon:        req.Icon,
		IconColor:   req.IconColor,
	})
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusCreated, habit)
}

// ListHabits returns the current user's habit masters, paginated.
func (h *HabitHandler) ListHabits(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)

	habits, total, err := h.habitService.ListHabits(userID, params.Offset, params.Limit)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch habits")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"habits": habits,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetHabit returns one of the current user's habits.
func (h *HabitHandler) GetHabit(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	habit, err := h.habitService.GetHabit(c.Param("id"), userID)
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}

// UpdateHabit applies a partial update to one of the current user's habits.
func (h *HabitHandler) UpdateHabit(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type UpdateHabitRequest struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Category    *string `json:"category"`
		Icon        *string `json:"icon"`
		IconColor   *string `json:"icon_color"`
	}

	var req UpdateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	habit, err := h.habitService.UpdateHabit(c.Param("id"), userID, services.UpdateHabitInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Icon:        req.Icon,
		IconColor:   req.IconColor,
	})
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}

// DeleteHabit soft deletes one of the current user's habits.
func (h *HabitHandler) DeleteHabit(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.habitService.DeleteHabit(c.Param("id"), userID); err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Habit deleted successfully",
	})
}

func respondHabitError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrHabitNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrHabitNameRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotHabitOwner):
		// Hide other users' habits instead of confirming they exist.
		apierrors.NotFound(c, services.ErrHabitNotFound.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
