package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WeeklySession struct {
	ID          string         `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID      string         `gorm:"type:varchar(36);index;not null" json:"user_id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description *string        `gorm:"type:text" json:"description"`
	DayOfWeek   int            `gorm:"not null;index" json:"day_of_week"` // 0 (Sunday) to 6 (Saturday)
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User         User          `gorm:"foreignKey:UserID" json:"-"`
	SessionItems []SessionItem `gorm:"foreignKey:WeeklySessionID" json:"session_items,omitempty"`
}

func (s *WeeklySession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
