package repository

import (
	"github.com/habitloop/habit-tracking-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDailyLogRepository is a GORM implementation of DailyLogRepository
type GormDailyLogRepository struct {
	db *gorm.DB
}

// NewDailyLogRepository creates a new DailyLogRepository
func NewDailyLogRepository(db *gorm.DB) DailyLogRepository {
	return &GormDailyLogRepository{db: db}
}

// ListByUserAndDate lists a user's logs for a date
func (r *GormDailyLogRepository) ListByUserAndDate(userID, date string) ([]models.DailyLog, error) {
	var logs []models.DailyLog
	err := r.db.
		Where("user_id = ? AND date = ?", userID, date).
		Find(&logs).Error
	return logs, err
}

// ListByUserAndDateEnriched lists a user's logs for a date joined with
// session item, habit master and active collaborators
func (r *GormDailyLogRepository) ListByUserAndDateEnriched(userID, date string) ([]models.DailyLog, error) {
	var logs []models.DailyLog
	err := r.db.
		Preload("SessionItem").
		Preload("SessionItem.HabitMaster").
		Preload("SessionItem.Collaborators").
		Preload("SessionItem.Collaborators.User").
		Where("user_id = ? AND date = ?", userID, date).
		Order("weekly_session_id ASC, start_time ASC").
		Find(&logs).Error
	return logs, err
}

// ListByItemAndDate lists all users' logs for a session item on a date
func (r *GormDailyLogRepository) ListByItemAndDate(sessionItemID, date string) ([]models.DailyLog, error) {
	var logs []models.DailyLog
	err := r.db.
		Where("session_item_id = ? AND date = ?", sessionItemID, date).
		Find(&logs).Error
	return logs, err
}

// CreateIgnoringDuplicates inserts logs, letting the unique index on
// (user_id, date, session_item_id) drop rows a concurrent sync already
// wrote. The store is the arbiter; losing the race is not an error.
func (r *GormDailyLogRepository) CreateIgnoringDuplicates(logs []models.DailyLog) error {
	if len(logs) == 0 {
		return nil
	}
	return r.db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&logs).Error
}

// FindByID finds a daily log by ID
func (r *GormDailyLogRepository) FindByID(id string) (*models.DailyLog, error) {
	var log models.DailyLog
	if err := r.db.First(&log, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

// Update updates a daily log
func (r *GormDailyLogRepository) Update(log *models.DailyLog) error {
	return r.db.Save(log).Error
}

// UpdateOwned updates schedule fields of a log owned by userID and returns
// the updated row
func (r *GormDailyLogRepository) UpdateOwned(id, userID string, startTime *string, durationMinutes *int) (*models.DailyLog, error) {
	updates := map[string]interface{}{}
	if startTime != nil {
		updates["start_time"] = *startTime
	}
	if durationMinutes != nil {
		updates["duration_minutes"] = *durationMinutes
	}

	if len(updates) > 0 {
		result := r.db.
			Model(&models.DailyLog{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}

	var log models.DailyLog
	if err := r.db.First(&log, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

// DeleteOwned soft deletes a log owned by userID
func (r *GormDailyLogRepository) DeleteOwned(id, userID string) error {
	result := r.db.
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.DailyLog{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
