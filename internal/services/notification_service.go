package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/habitloop/habit-tracking-api/internal/models"
	"github.com/habitloop/habit-tracking-api/internal/repository"
	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationService records and serves in-app notifications.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// NotifyCollabInvite records an invitation notification for the invitee.
// Notification delivery is best effort: a failure is logged, never
// propagated into the inviting call.
func (s *NotificationService) NotifyCollabInvite(userID, sessionItemID, inviterName string) {
	s.create(&models.Notification{
		UserID:   userID,
		Type:     models.NotificationTypeCollabInvite,
		Title:    "Collaboration invite",
		Message:  fmt.Sprintf("%s invited you to a shared habit", inviterName),
		Metadata: collabMetadata(sessionItemID, inviterName),
	})
}

// NotifyCollabAccepted records an acceptance notification for the item owner.
func (s *NotificationService) NotifyCollabAccepted(ownerUserID, sessionItemID, accepterName string) {
	s.create(&models.Notification{
		UserID:   ownerUserID,
		Type:     models.NotificationTypeCollabAccepted,
		Title:    "Invitation accepted",
		Message:  fmt.Sprintf("%s joined your shared habit", accepterName),
		Metadata: collabMetadata(sessionItemID, accepterName),
	})
}

func (s *NotificationService) create(n *models.Notification) {
	if err := s.notificationRepo.Create(n); err != nil {
		log.Printf("failed to create notification for user %s: %v", n.UserID, err)
	}
}

// collabMetadata serializes the shared metadata payload for collaboration
// notifications. actor_name is whoever triggered the event: the inviter on
// an invite, the accepter on an acceptance.
func collabMetadata(sessionItemID, actorName string) *string {
	raw, err := json.Marshal(map[string]string{
		"session_item_id": sessionItemID,
		"actor_name":      actorName,
	})
	if err != nil {
		return nil
	}
	meta := string(raw)
	return &meta
}

// ListNotifications lists the user's notifications, newest first.
func (s *NotificationService) ListNotifications(userID string) ([]models.Notification, error) {
	return s.notificationRepo.ListByUser(userID)
}

// UnreadCount counts the user's unread notifications.
func (s *NotificationService) UnreadCount(userID string) (int64, error) {
	return s.notificationRepo.UnreadCount(userID)
}

// MarkRead marks one of the user's notifications as read.
func (s *NotificationService) MarkRead(id uint64, userID string) error {
	if err := s.notificationRepo.MarkRead(id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

// MarkAllRead marks all of the user's notifications as read.
func (s *NotificationService) MarkAllRead(userID string) error {
	return s.notificationRepo.MarkAllRead(userID)
}
