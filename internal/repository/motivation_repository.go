package repository

import (
	"github.com/habitloop/habit-tracking-api/internal/models"
	"gorm.io/gorm"
)

// GormMotivationRepository is a GORM implementation of MotivationRepository
type GormMotivationRepository struct {
	db *gorm.DB
}

// NewMotivationRepository creates a new MotivationRepository
func NewMotivationRepository(db *gorm.DB) MotivationRepository {
	return &GormMotivationRepository{db: db}
}

// ListEligible lists active messages whose percentage range covers p
func (r *GormMotivationRepository) ListEligible(p int) ([]models.MotivationalMessage, error) {
	var messages []models.MotivationalMessage
	err := r.db.
		Where("is_active = ? AND min_percentage <= ? AND max_percentage >= ?", true, p, p).
		Find(&messages).Error
	return messages, err
}
