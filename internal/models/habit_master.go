package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HabitMaster struct {
	ID          string         `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID      string         `gorm:"type:varchar(36);index;not null" json:"user_id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description *string        `gorm:"type:text" json:"description"`
	Category    *string        `gorm:"type:varchar(100)" json:"category"`
	Icon        *string        `gorm:"type:varchar(100)" json:"icon"`
	IconColor   *string        `gorm:"type:varchar(20)" json:"icon_color"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User         User          `gorm:"foreignKey:UserID" json:"-"`
	SessionItems []SessionItem `gorm:"foreignKey:HabitMasterID" json:"-"`
}

func (h *HabitMaster) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}
