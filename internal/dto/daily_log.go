package dto

import (
	"time"

	"github.com/habitloop/habit-tracking-api/internal/models"
	"github.com/habitloop/habit-tracking-api/internal/services"
)

// CollaboratorDTO represents a roster member in API responses
type CollaboratorDTO struct {
	ID                 string                    `json:"id"`
	CollaboratorUserID *string                   `json:"collaborator_user_id"`
	Email              string                    `json:"email"`
	Status             models.CollaboratorStatus `json:"status"`
	Role               models.CollaboratorRole   `json:"role"`
	InvitedAt          time.Time                 `json:"invited_at"`
	JoinedAt           *time.Time                `json:"joined_at"`
	User               *UserDTO                  `json:"user,omitempty"`
}

// SessionItemDTO represents a session item in API responses
type SessionItemDTO struct {
	ID              string                 `json:"id"`
	WeeklySessionID string                 `json:"weekly_session_id"`
	HabitMasterID   string                 `json:"habit_master_id"`
	StartTime       string                 `json:"start_time"`
	DurationMinutes int                    `json:"duration_minutes"`
	Type            models.SessionItemType `json:"type"`
	GoalType        models.GoalType        `json:"goal_type"`
	HabitMaster     *models.HabitMaster    `json:"habit_master,omitempty"`
	Collaborators   []CollaboratorDTO      `json:"collaborators,omitempty"`
}

// DailyLogDTO represents a daily log in API responses, carrying the
// denormalized schedule snapshot plus the live session item relations and,
// for collaborative goals, the group progress.
type DailyLogDTO struct {
	ID                 string                  `json:"id"`
	UserID             string                  `json:"user_id"`
	Date               string                  `json:"date"`
	WeeklySessionID    *string                 `json:"weekly_session_id"`
	SessionItemID      string                  `json:"session_item_id"`
	SessionName        *string                 `json:"session_name"`
	SessionDescription *string                 `json:"session_description"`
	SessionItemType    models.SessionItemType  `json:"session_item_type"`
	StartTime          *string                 `json:"start_time"`
	DurationMinutes    *int                    `json:"duration_minutes"`
	Status             models.DailyLogStatus   `json:"status"`
	StatusUpdatedAt    *time.Time              `json:"status_updated_at"`
	TimerSeconds       int                     `json:"timer_seconds"`
	SessionItem        *SessionItemDTO         `json:"session_item,omitempty"`
	GroupProgress      *services.GroupProgress `json:"group_progress,omitempty"`
}

// ToCollaboratorDTO converts a SessionCollaborator model to CollaboratorDTO
func ToCollaboratorDTO(collab models.SessionCollaborator) CollaboratorDTO {
	dto := CollaboratorDTO{
		ID:                 collab.ID,
		CollaboratorUserID: collab.CollaboratorUserID,
		Email:              collab.Email,
		Status:             collab.Status,
		Role:               collab.Role,
		InvitedAt:          collab.InvitedAt,
		JoinedAt:           collab.JoinedAt,
	}
	if collab.User != nil {
		user := ToUserDTO(*collab.User)
		dto.User = &user
	}
	return dto
}

// ToSessionItemDTO converts a SessionItem model to SessionItemDTO
func ToSessionItemDTO(item models.SessionItem) SessionItemDTO {
	dto := SessionItemDTO{
		ID:              item.ID,
		WeeklySessionID: item.WeeklySessionID,
		HabitMasterID:   item.HabitMasterID,
		StartTime:       item.StartTime,
		DurationMinutes: item.DurationMinutes,
		Type:            item.Type,
		GoalType:        item.GoalType,
	}
	if item.HabitMaster.ID != "" {
		habit := item.HabitMaster
		dto.HabitMaster = &habit
	}
	for _, collab := range item.Collaborators {
		dto.Collaborators = append(dto.Collaborators, ToCollaboratorDTO(collab))
	}
	return dto
}

// ToDailyLogDTO converts an enriched daily log to its response shape
func ToDailyLogDTO(entry services.DailyLogWithGroup) DailyLogDTO {
	log := entry.Log
	dto := DailyLogDTO{
		ID:                 log.ID,
		UserID:             log.UserID,
		Date:               log.Date,
		WeeklySessionID:    log.WeeklySessionID,
		SessionItemID:      log.SessionItemID,
		SessionName:        log.SessionName,
		SessionDescription: log.SessionDescription,
		SessionItemType:    log.SessionItemType,
		StartTime:          log.StartTime,
		DurationMinutes:    log.DurationMinutes,
		Status:             log.Status,
		StatusUpdatedAt:    log.StatusUpdatedAt,
		TimerSeconds:       log.TimerSeconds,
		GroupProgress:      entry.GroupProgress,
	}
	if log.SessionItem.ID != "" {
		item := ToSessionItemDTO(log.SessionItem)
		dto.SessionItem = &item
	}
	return dto
}

// ToDailyLogDTOs converts a slice of enriched daily logs
func ToDailyLogDTOs(entries []services.DailyLogWithGroup) []DailyLogDTO {
	out := make([]DailyLogDTO, 0, len(entries))
	for _, entry := range entries {
		out = append(out, ToDailyLogDTO(entry))
	}
	return out
}
