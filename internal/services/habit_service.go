package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/habitloop/habit-tracking-api/internal/models"
	"github.com/habitloop/habit-tracking-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrHabitNotFound     = errors.New("habit not found")
	ErrHabitNameRequired = errors.New("habit name is required")
	ErrNotHabitOwner     = errors.New("only the habit owner can perform this action")
)

// HabitService handles habit master business logic.
type HabitService struct {
	habitRepo repository.HabitRepository
}

// NewHabitService creates a new HabitService.
func NewHabitService(habitRepo repository.HabitRepository) *HabitService {
	return &HabitService{habitRepo: habitRepo}
}

// CreateHabitInput represents input for creating a habit master.
type CreateHabitInput struct {
	UserID      string
	Name        string
	Description *string
	Category    *string
	Icon        *string
	IconColor   *string
}

// CreateHabit creates a habit master.
func (s *HabitService) CreateHabit(input CreateHabitInput) (*models.HabitMaster, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrHabitNameRequired
	}

	habit := &models.HabitMaster{
		UserID:      input.UserID,
		Name:        name,
		Description: input.Description,
		Category:    input.Category,
		Icon:        input.Icon,
		IconColor:   input.IconColor,
	}
	if err := s.habitRepo.Create(habit); err != nil {
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}
	return habit, nil
}

// GetHabit retrieves one of the user's habits.
func (s *HabitService) GetHabit(id, userID string) (*models.HabitMaster, error) {
	habit, err := s.habitRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHabitNotFound
		}
		return nil, fmt.Errorf("failed to find habit: %w", err)
	}
	if habit.UserID != userID {
		// Hide existence of other users' habits.
		return nil, ErrHabitNotFound
	}
	return habit, nil
}

// ListHabits lists the user's habits with pagination.
func (s *HabitService) ListHabits(userID string, offset, limit int) ([]models.HabitMaster, int64, error) {
	return s.habitRepo.ListByUser(userID, offset, limit)
}

// UpdateHabitInput represents a partial habit update.
type UpdateHabitInput struct {
	Name        *string
	Description *string
	Category    *string
	Icon        *string
	IconColor   *string
}

// UpdateHabit updates one of the user's habits.
func (s *HabitService) UpdateHabit(id, userID string, input UpdateHabitInput) (*models.HabitMaster, error) {
	habit, err := s.GetHabit(id, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrHabitNameRequired
		}
		habit.Name = name
	}
	if input.Description != nil {
		habit.Description = input.Description
	}
	if input.Category != nil {
		habit.Category = input.Category
	}
	if input.Icon != nil {
		habit.Icon = input.Icon
	}
	if input.IconColor != nil {
		habit.IconColor = input.IconColor
	}

	if err := s.habitRepo.Update(habit); err != nil {
		return nil, fmt.Errorf("failed to update habit: %w", err)
	}
	return habit, nil
}

// DeleteHabit soft deletes one of the user's habits. Historical daily logs
// keep their snapshot so reports are unaffected.
func (s *HabitService) DeleteHabit(id, userID string) error {
	if _, err := s.GetHabit(id, userID); err != nil {
		return err
	}
	if err := s.habitRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	return nil
}
