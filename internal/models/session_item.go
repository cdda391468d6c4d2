package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionItemType string

const (
	SessionItemTypeTask  SessionItemType = "task"
	SessionItemTypeTimer SessionItemType = "timer"
)

type GoalType string

const (
	GoalTypeIndividual    GoalType = "individual"
	GoalTypeCollaborative GoalType = "collaborative"
)

type SessionItem struct {
	ID              string          `gorm:"type:varchar(36);primarykey" json:"id"`
	WeeklySessionID string          `gorm:"type:varchar(36);index;not null" json:"weekly_session_id"`
	HabitMasterID   string          `gorm:"type:varchar(36);index;not null" json:"habit_master_id"`
	StartTime       string          `gorm:"type:varchar(5);not null" json:"start_time"` // HH:MM
	DurationMinutes int             `gorm:"not null" json:"duration_minutes"`
	Type            SessionItemType `gorm:"type:varchar(20);not null;default:'task'" json:"type"`
	GoalType        GoalType        `gorm:"type:varchar(20);not null;default:'individual'" json:"goal_type"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relations
	WeeklySession WeeklySession         `gorm:"foreignKey:WeeklySessionID" json:"weekly_session,omitempty"`
	HabitMaster   HabitMaster           `gorm:"foreignKey:HabitMasterID" json:"habit_master,omitempty"`
	Collaborators []SessionCollaborator `gorm:"foreignKey:SessionItemID" json:"collaborators,omitempty"`
}

func (i *SessionItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
