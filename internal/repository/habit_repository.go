package repository

import (
	"github.com/habitloop/habit-tracking-api/internal/models"
	"gorm.io/gorm"
)

// GormHabitRepository is a GORM implementation of HabitRepository
type GormHabitRepository struct {
	db *gorm.DB
}

// NewHabitRepository creates a new HabitRepository
func NewHabitRepository(db *gorm.DB) HabitRepository {
	return &GormHabitRepository{db: db}
}

// Create creates a new habit master
func (r *GormHabitRepository) Create(habit *models.HabitMaster) error {
	return r.db.Create(habit).Error
}

// FindByID finds a habit master by ID
func (r *GormHabitRepository) FindByID(id string) (*models.HabitMaster, error) {
	var habit models.HabitMaster
	if err := r.db.First(&habit, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &habit, nil
}

// ListByUser retrieves a user's habit masters with pagination
func (r *GormHabitRepository) ListByUser(userID string, offset, limit int) ([]models.HabitMaster, int64, error) {
	query := r.db.Model(&models.HabitMaster{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var habits []models.HabitMaster
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&habits).Error; err != nil {
		return nil, 0, err
	}

	return habits, total, nil
}

// Update updates a habit master
func (r *GormHabitRepository) Update(habit *models.HabitMaster) error {
	return r.db.Save(habit).Error
}

// Delete soft deletes a habit master. Daily logs keep their denormalized
// snapshot, so history is unaffected.
func (r *GormHabitRepository) Delete(id string) error {
	return r.db.Delete(&models.HabitMaster{}, "id = ?", id).Error
}
