package services

import (
	"testing"
	"time"

	"github.com/habitloop/habit-tracking-api/internal/database"
	"github.com/habitloop/habit-tracking-api/internal/models"
	"github.com/habitloop/habit-tracking-api/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type reportTestEnv struct {
	db      *gorm.DB
	service *ReportService
}

func setupReportTestEnv(t *testing.T) reportTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.HabitMaster{},
		&models.WeeklySession{},
		&models.SessionItem{},
		&models.SessionCollaborator{},
		&models.DailyLog{},
		&models.MotivationalMessage{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	reportRepo := repository.NewReportRepository(db)
	motivationService := NewMotivationService(repository.NewMotivationRepository(db), reportRepo, "")
	service := NewReportService(reportRepo, motivationService, time.UTC)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return reportTestEnv{db: db, service: service}
}

// seedLog inserts a daily log with its habit/session/item chain so the
// joined reports have something to aggregate.
func seedLog(t *testing.T, db *gorm.DB, userID, date, category, startTime string, duration int, status models.DailyLogStatus) models.DailyLog {
	t.Helper()

	habit := models.HabitMaster{UserID: userID, Name: category + " habit", Category: &category}
	require.NoError(t, db.Create(&habit).Error)

	session := models.WeeklySession{UserID: userID, Name: "Routine", DayOfWeek: 0}
	require.NoError(t, db.Create(&session).Error)

	item := models.SessionItem{
		WeeklySessionID: session.ID,
		HabitMasterID:   habit.ID,
		StartTime:       startTime,
		DurationMinutes: duration,
		Type:            models.SessionItemTypeTask,
	}
	require.NoError(t, db.Create(&item).Error)

	now := time.Now()
	log := models.DailyLog{
		UserID:          userID,
		Date:            date,
		WeeklySessionID: &session.ID,
		SessionItemID:   item.ID,
		SessionName:     &session.Name,
		SessionItemType: item.Type,
		StartTime:       &item.StartTime,
		DurationMinutes: &item.DurationMinutes,
		Status:          status,
		StatusUpdatedAt: &now,
	}
	require.NoError(t, db.Create(&log).Error)
	return log
}

func TestGetWeeklySummary(t *testing.T) {
	env := setupReportTestEnv(t)
	user := createTestUser(t, env.db, "Alice", "alice@example.com")

	// Two completed on the reference date, one of them pending, one
	// completed two days earlier.
	seedLog(t, env.db, user.ID, "2025-06-15", "Health", "07:00", 30, models.DailyLogStatusCompleted)
	seedLog(t, env.db, user.ID, "2025-06-15", "Health", "08:00", 20, models.DailyLogStatusCompleted)
	seedLog(t, env.db, user.ID, "2025-06-15", "Study", "21:00", 60, models.DailyLogStatusPending)
	seedLog(t, env.db, user.ID, "2025-06-13", "Study", "19:00", 45, models.DailyLogStatusCompleted)

	summary, err := env.service.GetWeeklySummary(user.ID, "2025-06-15")
	require.NoError(t, err)

	require.Equal(t, "2025-06-15", summary.Meta.ReferenceDate)
	require.Equal(t, int64(2), summary.Meta.TotalCompletedToday)
	require.Equal(t, 67, summary.Meta.CompletionRateToday)

	// Seven zero-filled points ending at the reference date.
	require.Len(t, summary.WeeklyActivity.Dates, 7)
	require.Equal(t, "2025-06-09", summary.WeeklyActivity.Dates[0])
	require.Equal(t, "2025-06-15", summary.WeeklyActivity.Dates[6])
	require.Equal(t, []int64{0, 0, 0, 0, 1, 0, 2}, summary.WeeklyActivity.Data)
	require.Len(t, summary.WeeklyActivity.Labels, 7)
	require.Equal(t, "Sun", summary.WeeklyActivity.Labels[6])

	// Health leads the category pie.
	require.NotEmpty(t, summary.CategoryDistribution)
	require.Equal(t, "Health", summary.CategoryDistribution[0].Name)
	require.Equal(t, int64(2), summary.CategoryDistribution[0].Value)

	// Only days with scheduled work show up in the heatmap.
	require.Len(t, summary.ConsistencyHeatmap, 2)
	byDate := map[string]int{}
	for _, entry := range summary.ConsistencyHeatmap {
		byDate[entry.Date] = entry.Score
	}
	require.Equal(t, 10, byDate["2025-06-13"])
	require.Equal(t, 7, byDate["2025-06-15"])
}

func TestGetWeeklySummary_InvalidDate(t *testing.T) {
	env := setupReportTestEnv(t)

	_, err := env.service.GetWeeklySummary("user-1", "last tuesday")
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestGetDailySummary(t *testing.T) {
	env := setupReportTestEnv(t)
	user := createTestUser(t, env.db, "Alice", "alice@example.com")

	seedLog(t, env.db, user.ID, "2025-06-15", "Health", "07:00", 30, models.DailyLogStatusCompleted)
	seedLog(t, env.db, user.ID, "2025-06-15", "Health", "09:30", 90, models.DailyLogStatusCompleted)
	seedLog(t, env.db, user.ID, "2025-06-15", "Study", "22:00", 15, models.DailyLogStatusSkipped)

	summary, err := env.service.GetDailySummary(user.ID, "2025-06-15")
	require.NoError(t, err)

	require.Equal(t, 67, summary.Achievement.CompletionRate)
	require.Equal(t, int64(3), summary.Achievement.TotalTasks)
	require.Equal(t, int64(2), summary.Achievement.CompletedTasks)
	require.Equal(t, int64(135), summary.Achievement.TotalFocusMinutes)

	// Every status and type key is present, zeroed when unused.
	require.Equal(t, int64(2), summary.StatusBreakdown.ByStatus[models.DailyLogStatusCompleted])
	require.Equal(t, int64(1), summary.StatusBreakdown.ByStatus[models.DailyLogStatusSkipped])
	require.Equal(t, int64(0), summary.StatusBreakdown.ByStatus[models.DailyLogStatusFailed])
	require.Equal(t, int64(3), summary.StatusBreakdown.ByType[models.SessionItemTypeTask])
	require.Equal(t, int64(0), summary.StatusBreakdown.ByType[models.SessionItemTypeTimer])

	// Both completions fell in the morning.
	require.NotNil(t, summary.TimeInsights.MostProductiveTime)
	require.Equal(t, "morning", string(*summary.TimeInsights.MostProductiveTime))
	require.NotNil(t, summary.TimeInsights.LongestActivity)
	require.Equal(t, 90, summary.TimeInsights.LongestActivity.DurationMinutes)

	// No collaborative work: empty list, quote still present.
	require.Empty(t, summary.Social.Collaborators)
	require.NotEmpty(t, summary.Social.DailyQuote)
	require.Equal(t, "info", summary.Social.QuoteColorInfo)
}

func TestGetDailySummary_EmptyDay(t *testing.T) {
	env := setupReportTestEnv(t)
	user := createTestUser(t, env.db, "Alice", "alice@example.com")

	summary, err := env.service.GetDailySummary(user.ID, "2025-06-15")
	require.NoError(t, err)

	require.Equal(t, 0, summary.Achievement.CompletionRate)
	require.Equal(t, int64(0), summary.Achievement.TotalTasks)
	require.Nil(t, summary.TimeInsights.MostProductiveTime)
	require.Nil(t, summary.TimeInsights.LongestActivity)
	require.Equal(t, "neutral", summary.Social.QuoteColorInfo)
}
