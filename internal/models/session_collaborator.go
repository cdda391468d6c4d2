package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CollaboratorStatus string

const (
	CollaboratorStatusInvited  CollaboratorStatus = "invited"
	CollaboratorStatusAccepted CollaboratorStatus = "accepted"
	CollaboratorStatusRejected CollaboratorStatus = "rejected"
	CollaboratorStatusLeft     CollaboratorStatus = "left"
)

type CollaboratorRole string

const (
	CollaboratorRoleOwner  CollaboratorRole = "owner"
	CollaboratorRoleMember CollaboratorRole = "member"
)

// SessionCollaborator links a session item to a member of its roster.
// CollaboratorUserID stays null for invitees who have not registered yet;
// it is backfilled when the invitee accepts or first logs in.
type SessionCollaborator struct {
	ID                 string             `gorm:"type:varchar(36);primarykey" json:"id"`
	SessionItemID      string             `gorm:"type:varchar(36);not null;uniqueIndex:idx_collaborators_item_email" json:"session_item_id"`
	CollaboratorUserID *string            `gorm:"type:varchar(36);index" json:"collaborator_user_id"`
	Email              string             `gorm:"type:varchar(255);not null;uniqueIndex:idx_collaborators_item_email" json:"email"`
	Status             CollaboratorStatus `gorm:"type:varchar(20);not null;default:'invited'" json:"status"`
	Role               CollaboratorRole   `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	InvitedAt          time.Time          `json:"invited_at"`
	JoinedAt           *time.Time         `json:"joined_at"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
	DeletedAt          gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relations
	SessionItem SessionItem `gorm:"foreignKey:SessionItemID" json:"session_item,omitempty"`
	User        *User       `gorm:"foreignKey:CollaboratorUserID" json:"user,omitempty"`
}

func (c *SessionCollaborator) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.InvitedAt.IsZero() {
		c.InvitedAt = time.Now()
	}
	return nil
}
