package services

import (
	"encoding/json"
	"testing"

	"github.com/habitloop/habit-tracking-api/internal/database"
	"github.com/habitloop/habit-tracking-api/internal/models"
	"github.com/habitloop/habit-tracking-api/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupNotificationService(t *testing.T) (*gorm.DB, *NotificationService) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{}, &models.Notification{})
	require.NoError(t, err)

	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db, NewNotificationService(repository.NewNotificationRepository(db))
}

func TestNotifyCollabInvite(t *testing.T) {
	db, svc := setupNotificationService(t)
	user := createTestUser(t, db, "Bob", "bob@example.com")

	svc.NotifyCollabInvite(user.ID, "item-1", "Alice")

	notifications, err := svc.ListNotifications(user.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.Equal(t, models.NotificationTypeCollabInvite, notifications[0].Type)
	require.False(t, notifications[0].IsRead)

	require.NotNil(t, notifications[0].Metadata)
	var meta map[string]string
	require.NoError(t, json.Unmarshal([]byte(*notifications[0].Metadata), &meta))
	require.Equal(t, "item-1", meta["session_item_id"])
	require.Equal(t, "Alice", meta["actor_name"])
}

func TestNotifyCollabAccepted_MetadataNamesTheAccepter(t *testing.T) {
	db, svc := setupNotificationService(t)
	owner := createTestUser(t, db, "Alice", "alice@example.com")

	svc.NotifyCollabAccepted(owner.ID, "item-1", "Dave")

	notifications, err := svc.ListNotifications(owner.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.Equal(t, models.NotificationTypeCollabAccepted, notifications[0].Type)

	require.NotNil(t, notifications[0].Metadata)
	var meta map[string]string
	require.NoError(t, json.Unmarshal([]byte(*notifications[0].Metadata), &meta))
	require.Equal(t, "Dave", meta["actor_name"])
}

func TestMarkRead(t *testing.T) {
	db, svc := setupNotificationService(t)
	user := createTestUser(t, db, "Bob", "bob@example.com")
	other := createTestUser(t, db, "Carol", "carol@example.com")

	svc.NotifyCollabInvite(user.ID, "item-1", "Alice")
	svc.NotifyCollabAccepted(user.ID, "item-1", "Dave")

	count, err := svc.UnreadCount(user.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)

	notifications, err := svc.ListNotifications(user.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 2)

	// Another user cannot mark someone else's notification read.
	err = svc.MarkRead(notifications[0].ID, other.ID)
	require.ErrorIs(t, err, ErrNotificationNotFound)

	require.NoError(t, svc.MarkRead(notifications[0].ID, user.ID))
	count, err = svc.UnreadCount(user.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	require.NoError(t, svc.MarkAllRead(user.ID))
	count, err = svc.UnreadCount(user.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), count)
}
