package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DailyLogStatus string

const (
	DailyLogStatusPending    DailyLogStatus = "pending"
	DailyLogStatusInProgress DailyLogStatus = "inprogress"
	DailyLogStatusCompleted  DailyLogStatus = "completed"
	DailyLogStatusFailed     DailyLogStatus = "failed"
	DailyLogStatusSkipped    DailyLogStatus = "skipped"
)

// DailyLog is the materialized per-user, per-date instance of a session
// item. Session name, description, type, start time and duration are
// copied at creation so later schedule edits never rewrite history.
//
// The unique index on (user_id, date, session_item_id) is the idempotency
// key for sync: concurrent sync calls race to insert and the loser's row
// is dropped by the store, not by application logic.
type DailyLog struct {
	ID                 string          `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID             string          `gorm:"type:varchar(36);not null;uniqueIndex:idx_daily_logs_user_date_item" json:"user_id"`
	Date               string          `gorm:"type:varchar(10);not null;uniqueIndex:idx_daily_logs_user_date_item" json:"date"` // YYYY-MM-DD
	WeeklySessionID    *string         `gorm:"type:varchar(36)" json:"weekly_session_id"`
	SessionItemID      string          `gorm:"type:varchar(36);not null;index;uniqueIndex:idx_daily_logs_user_date_item" json:"session_item_id"`
	SessionName        *string         `gorm:"type:varchar(255)" json:"session_name"`
	SessionDescription *string         `gorm:"type:text" json:"session_description"`
	SessionItemType    SessionItemType `gorm:"type:varchar(20)" json:"session_item_type"`
	StartTime          *string         `gorm:"type:varchar(5)" json:"start_time"`
	DurationMinutes    *int            `json:"duration_minutes"`
	Status             DailyLogStatus  `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	StatusUpdatedAt    *time.Time      `json:"status_updated_at"`
	TimerSeconds       int             `gorm:"not null;default:0" json:"timer_seconds"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	DeletedAt          gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relations
	User        User        `gorm:"foreignKey:UserID" json:"-"`
	SessionItem SessionItem `gorm:"foreignKey:SessionItemID" json:"session_item,omitempty"`
}

func (l *DailyLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
