package services

import (
	"testing"

	"github.com/habitloop/habit-tracking-api/internal/database"
	"github.com/habitloop/habit-tracking-api/internal/models"
	"github.com/habitloop/habit-tracking-api/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupMotivationTestEnv(t *testing.T) (*gorm.DB, *MotivationService) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.HabitMaster{},
		&models.WeeklySession{},
		&models.SessionItem{},
		&models.DailyLog{},
		&models.MotivationalMessage{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	// No API key: AI generation is skipped entirely.
	service := NewMotivationService(
		repository.NewMotivationRepository(db),
		repository.NewReportRepository(db),
		"",
	)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db, service
}

func TestGetMessage_PicksCuratedMessageForBand(t *testing.T) {
	db, service := setupMotivationTestEnv(t)

	active, inactive := true, false
	require.NoError(t, db.Create(&models.MotivationalMessage{
		Message:       "Halfway there, keep moving!",
		MinPercentage: 30,
		MaxPercentage: 70,
		IsActive:      &active,
	}).Error)
	// Inactive rows never surface.
	retired := models.MotivationalMessage{
		Message:       "retired copy",
		MinPercentage: 0,
		MaxPercentage: 100,
		IsActive:      &inactive,
	}
	require.NoError(t, db.Create(&retired).Error)

	// The explicit false must survive the column default.
	var stored models.MotivationalMessage
	require.NoError(t, db.First(&stored, "id = ?", retired.ID).Error)
	require.NotNil(t, stored.IsActive)
	require.False(t, *stored.IsActive)

	require.Equal(t, "Halfway there, keep moving!", service.GetMessage(50))
}

func TestGetMessage_OmittedActiveFlagDefaultsToActive(t *testing.T) {
	db, service := setupMotivationTestEnv(t)

	require.NoError(t, db.Create(&models.MotivationalMessage{
		Message:       "Nice pace today!",
		MinPercentage: 0,
		MaxPercentage: 100,
	}).Error)

	require.Equal(t, "Nice pace today!", service.GetMessage(50))
}

func TestGetMessage_StaticFallbacks(t *testing.T) {
	_, service := setupMotivationTestEnv(t)

	// Empty messages table: the hardcoded fallbacks kick in per band.
	require.Equal(t, "Outstanding! Goal achieved.", service.GetMessage(100))
	require.Equal(t, "Let's take the first step!", service.GetMessage(0))
	require.Equal(t, "Keep going! You're making progress.", service.GetMessage(42))
}

func TestGetDailyProgressSummary(t *testing.T) {
	db, service := setupMotivationTestEnv(t)
	user := createTestUser(t, db, "Alice", "alice@example.com")

	seedLog(t, db, user.ID, "2025-06-15", "Health", "07:00", 30, models.DailyLogStatusCompleted)
	seedLog(t, db, user.ID, "2025-06-15", "Health", "08:00", 20, models.DailyLogStatusPending)

	summary, err := service.GetDailyProgressSummary(user.ID, "2025-06-15")
	require.NoError(t, err)

	require.Equal(t, "2025-06-15", summary.Date)
	require.Equal(t, int64(2), summary.Stats.Total)
	require.Equal(t, int64(1), summary.Stats.Completed)
	require.Equal(t, int64(1), summary.Stats.Remaining)
	require.Equal(t, 50, summary.Stats.Percentage)
	require.NotEmpty(t, summary.Motivation.Message)
	require.Equal(t, "info", summary.Motivation.ColorInfo)
}
