package models

import "time"

// MotivationalMessage is a curated message shown for a completion-rate
// range, e.g. [0,30) encouragement vs. [100,100] celebration.
// IsActive is a pointer so that writing an explicit false is not swallowed
// by the column default.
type MotivationalMessage struct {
	ID            uint64    `gorm:"primarykey" json:"id"`
	Message       string    `gorm:"type:text;not null" json:"message"`
	MinPercentage int       `gorm:"not null;default:0" json:"min_percentage"`
	MaxPercentage int       `gorm:"not null;default:100" json:"max_percentage"`
	IsActive      *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
