package repository

import (
	"github.com/habitloop/habit-tracking-api/internal/models"
	"gorm.io/gorm"
)

// GormReportRepository is a GORM implementation of ReportRepository
type GormReportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &GormReportRepository{db: db}
}

func (r *GormReportRepository) userDayQuery(userID, date string) *gorm.DB {
	return r.db.
		Model(&models.DailyLog{}).
		Where("user_id = ? AND date = ?", userID, date)
}

// DayTotals returns total and completed log counts for (userID, date)
func (r *GormReportRepository) DayTotals(userID, date string) (int64, int64, error) {
	var total, completed int64
	if err := r.userDayQuery(userID, date).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	err := r.userDayQuery(userID, date).
		Where("status = ?", models.DailyLogStatusCompleted).
		Count(&completed).Error
	return total, completed, err
}

// CompletedByDate counts completed logs per date within [start, end]
func (r *GormReportRepository) CompletedByDate(userID, start, end string) ([]DateCount, error) {
	var rows []DateCount
	err := r.db.
		Model(&models.DailyLog{}).
		Select("date, count(*) as count").
		Where("user_id = ? AND date >= ? AND date <= ? AND status = ?",
			userID, start, end, models.DailyLogStatusCompleted).
		Group("date").
		Scan(&rows).Error
	return rows, err
}

// CompletionByDate returns total and completed counts per date within [start, end]
func (r *GormReportRepository) CompletionByDate(userID, start, end string) ([]DateCompletion, error) {
	var rows []DateCompletion
	err := r.db.
		Model(&models.DailyLog{}).
		Select("date, count(*) as total, sum(case when status = ? then 1 else 0 end) as completed",
			models.DailyLogStatusCompleted).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Group("date").
		Order("date ASC").
		Scan(&rows).Error
	return rows, err
}

// CompletedByCategory counts completed logs per habit category within [start, end]
func (r *GormReportRepository) CompletedByCategory(userID, start, end string) ([]CategoryCount, error) {
	var rows []CategoryCount
	err := r.db.
		Model(&models.DailyLog{}).
		Select("coalesce(habit_masters.category, 'Uncategorized') as category, count(*) as count").
		Joins("INNER JOIN session_items ON session_items.id = daily_logs.session_item_id").
		Joins("INNER JOIN habit_masters ON habit_masters.id = session_items.habit_master_id").
		Where("daily_logs.user_id = ? AND daily_logs.date >= ? AND daily_logs.date <= ? AND daily_logs.status = ?",
			userID, start, end, models.DailyLogStatusCompleted).
		Group("habit_masters.category").
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}

// StatusCounts counts the user's logs by status for a date
func (r *GormReportRepository) StatusCounts(userID, date string) (map[models.DailyLogStatus]int64, error) {
	var rows []struct {
		Status models.DailyLogStatus
		Count  int64
	}
	err := r.userDayQuery(userID, date).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.DailyLogStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// TypeCounts counts the user's logs by session item type for a date
func (r *GormReportRepository) TypeCounts(userID, date string) (map[models.SessionItemType]int64, error) {
	var rows []struct {
		SessionItemType models.SessionItemType
		Count           int64
	}
	err := r.userDayQuery(userID, date).
		Select("session_item_type, count(*) as count").
		Group("session_item_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.SessionItemType]int64, len(rows))
	for _, row := range rows {
		counts[row.SessionItemType] = row.Count
	}
	return counts, nil
}

// FocusMinutes sums duration minutes over the user's logs for a date
func (r *GormReportRepository) FocusMinutes(userID, date string) (int64, error) {
	var total int64
	err := r.userDayQuery(userID, date).
		Select("coalesce(sum(duration_minutes), 0)").
		Scan(&total).Error
	return total, err
}

// CompletedStartTimes lists start times of completed logs for a date
func (r *GormReportRepository) CompletedStartTimes(userID, date string) ([]string, error) {
	var times []string
	err := r.userDayQuery(userID, date).
		Where("status = ? AND start_time IS NOT NULL", models.DailyLogStatusCompleted).
		Pluck("start_time", &times).Error
	return times, err
}

// Longest returns the user's longest activity for a date, nil if none
func (r *GormReportRepository) Longest(userID, date string) (*LongestActivity, error) {
	var row LongestActivity
	err := r.db.
		Model(&models.DailyLog{}).
		Select("daily_logs.session_item_id, coalesce(habit_masters.name, 'Unknown Activity') as name, daily_logs.duration_minutes").
		Joins("LEFT JOIN session_items ON session_items.id = daily_logs.session_item_id").
		Joins("LEFT JOIN habit_masters ON habit_masters.id = session_items.habit_master_id").
		Where("daily_logs.user_id = ? AND daily_logs.date = ? AND daily_logs.duration_minutes IS NOT NULL",
			userID, date).
		Order("daily_logs.duration_minutes DESC").
		Limit(1).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.SessionItemID == "" {
		return nil, nil
	}
	return &row, nil
}

// Collaborators aggregates accepted collaborators on the user's
// collaborative logs for a date. The user's own roster row is excluded.
func (r *GormReportRepository) Collaborators(userID, date string) ([]CollaboratorActivity, error) {
	var rows []struct {
		UserID  string
		Name    string
		Email   string
		Picture *string
		Status  models.DailyLogStatus
	}
	err := r.db.
		Model(&models.DailyLog{}).
		Select("users.id as user_id, users.name, users.email, users.picture, daily_logs.status").
		Joins("INNER JOIN session_items ON session_items.id = daily_logs.session_item_id").
		Joins("INNER JOIN session_collaborators ON session_collaborators.session_item_id = session_items.id").
		Joins("INNER JOIN users ON users.id = session_collaborators.collaborator_user_id").
		Where("daily_logs.user_id = ? AND daily_logs.date = ?", userID, date).
		Where("session_items.goal_type = ?", models.GoalTypeCollaborative).
		Where("session_collaborators.status = ? AND session_collaborators.deleted_at IS NULL",
			models.CollaboratorStatusAccepted).
		Where("session_collaborators.collaborator_user_id != ?", userID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byUser := make(map[string]*CollaboratorActivity)
	var order []string
	for _, row := range rows {
		entry, ok := byUser[row.UserID]
		if !ok {
			entry = &CollaboratorActivity{
				UserID:  row.UserID,
				Name:    row.Name,
				Email:   row.Email,
				Picture: row.Picture,
			}
			byUser[row.UserID] = entry
			order = append(order, row.UserID)
		}
		if row.Status == models.DailyLogStatusCompleted {
			entry.CompletedTogether++
		}
	}

	out := make([]CollaboratorActivity, 0, len(order))
	for _, id := range order {
		out = append(out, *byUser[id])
	}
	return out, nil
}
