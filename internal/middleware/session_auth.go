package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/habitloop/habit-tracking-api/internal/database"
	apierrors "github.com/habitloop/habit-tracking-api/internal/errors"
	"github.com/habitloop/habit-tracking-api/internal/models"
)

// RequireSessionAccess checks that the weekly session in the :id parameter
// exists and is owned by the current user, and stores it in the context.
func RequireSessionAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("id")
		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var session models.WeeklySession
		if err := database.GetDB().First(&session, "id = ?", sessionID).Error; err != nil {
			apierrors.NotFound(c, "Weekly session not found")
			c.Abort()
			return
		}

		// Return 404 instead of 403 to avoid leaking session existence
		if session.UserID != userID {
			apierrors.NotFound(c, "Weekly session not found")
			c.Abort()
			return
		}

		c.Set("weekly_session", session)
		c.Next()
	}
}

// RequireItemAccess checks that the session item in the :id parameter
// exists and that the current user either owns its parent session or sits
// on its roster, and stores the item in the context.
func RequireItemAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID := c.Param("id")
		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var item models.SessionItem
		if err := database.GetDB().
			Preload("WeeklySession").
			First(&item, "id = ?", itemID).Error; err != nil {
			apierrors.NotFound(c, "Session item not found")
			c.Abort()
			return
		}

		if item.WeeklySession.UserID != userID {
			var collab models.SessionCollaborator
			err := database.GetDB().
				Where("session_item_id = ? AND collaborator_user_id = ? AND status = ?",
					itemID, userID, models.CollaboratorStatusAccepted).
				First(&collab).Error
			if err != nil {
				apierrors.NotFound(c, "Session item not found")
				c.Abort()
				return
			}
		}

		c.Set("session_item", item)
		c.Next()
	}
}
