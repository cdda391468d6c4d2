package models

import (
	"time"

	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationTypeCollabInvite   NotificationType = "COLLAB_INVITE"
	NotificationTypeCollabAccepted NotificationType = "COLLAB_ACCEPTED"
	NotificationTypeSystemInfo     NotificationType = "SYSTEM_INFO"
)

type Notification struct {
	ID        uint64           `gorm:"primarykey" json:"id"`
	UserID    string           `gorm:"type:varchar(36);index;not null" json:"user_id"`
	Type      NotificationType `gorm:"type:varchar(30);not null" json:"type"`
	Title     string           `gorm:"type:varchar(255);not null" json:"title"`
	Message   string           `gorm:"type:text;not null" json:"message"`
	IsRead    bool             `gorm:"not null;default:false" json:"is_read"`
	Metadata  *string          `gorm:"type:text" json:"metadata"` // JSON: {"session_item_id": "...", "actor_name": "..."}
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	DeletedAt gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
