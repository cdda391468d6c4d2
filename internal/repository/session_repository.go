package repository

import (
	"github.com/habitloop/habit-tracking-api/internal/models"
	"gorm.io/gorm"
)

// GormSessionRepository is a GORM implementation of SessionRepository
type GormSessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &GormSessionRepository{db: db}
}

// CreateSession creates a new weekly session
func (r *GormSessionRepository) CreateSession(session *models.WeeklySession) error {
	return r.db.Create(session).Error
}

// FindSessionByID finds a weekly session by ID with optional preloading
func (r *GormSessionRepository) FindSessionByID(id string, preload ...string) (*models.WeeklySession, error) {
	var session models.WeeklySession
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&session, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// ListSessionsByUser lists a user's weekly sessions with their items
func (r *GormSessionRepository) ListSessionsByUser(userID string) ([]models.WeeklySession, error) {
	var sessions []models.WeeklySession
	err := r.db.
		Preload("SessionItems").
		Preload("SessionItems.HabitMaster").
		Where("user_id = ?", userID).
		Order("day_of_week ASC, created_at ASC").
		Find(&sessions).Error
	return sessions, err
}

// ListSessionsByUserAndDay lists a user's weekly sessions bound to the
// given day of week, each with its non-deleted items
func (r *GormSessionRepository) ListSessionsByUserAndDay(userID string, dayOfWeek int) ([]models.WeeklySession, error) {
	var sessions []models.WeeklySession
	err := r.db.
		Preload("SessionItems").
		Where("user_id = ? AND day_of_week = ?", userID, dayOfWeek).
		Find(&sessions).Error
	return sessions, err
}

// UpdateSession updates a weekly session
func (r *GormSessionRepository) UpdateSession(session *models.WeeklySession) error {
	return r.db.Save(session).Error
}

// DeleteSession soft deletes a weekly session and its items
func (r *GormSessionRepository) DeleteSession(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("weekly_session_id = ?", id).Delete(&models.SessionItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.WeeklySession{}, "id = ?", id).Error
	})
}

// CreateItem creates a session item
func (r *GormSessionRepository) CreateItem(item *models.SessionItem) error {
	return r.db.Create(item).Error
}

// FindItemByID finds a session item by ID with optional preloading
func (r *GormSessionRepository) FindItemByID(id string, preload ...string) (*models.SessionItem, error) {
	var item models.SessionItem
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem soft deletes a session item. Existing daily logs keep their
// snapshot and stay visible in history.
func (r *GormSessionRepository) DeleteItem(id string) error {
	return r.db.Delete(&models.SessionItem{}, "id = ?", id).Error
}

// CreateCollaborator creates a collaborator row
func (r *GormSessionRepository) CreateCollaborator(collab *models.SessionCollaborator) error {
	return r.db.Create(collab).Error
}

// FindCollaboratorByID finds a collaborator by ID
func (r *GormSessionRepository) FindCollaboratorByID(id string) (*models.SessionCollaborator, error) {
	var collab models.SessionCollaborator
	if err := r.db.First(&collab, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &collab, nil
}

// FindCollaboratorByItemAndEmail finds the active collaborator row for
// (sessionItemID, email), if any
func (r *GormSessionRepository) FindCollaboratorByItemAndEmail(sessionItemID, email string) (*models.SessionCollaborator, error) {
	var collab models.SessionCollaborator
	err := r.db.
		Where("session_item_id = ? AND email = ?", sessionItemID, email).
		First(&collab).Error
	if err != nil {
		return nil, err
	}
	return &collab, nil
}

// UpdateCollaborator updates a collaborator row
func (r *GormSessionRepository) UpdateCollaborator(collab *models.SessionCollaborator) error {
	return r.db.Save(collab).Error
}

// ListAcceptedCollaborationsByUser lists accepted collaborator rows for a
// user, each with its session item and the item's parent session
func (r *GormSessionRepository) ListAcceptedCollaborationsByUser(userID string) ([]models.SessionCollaborator, error) {
	var collabs []models.SessionCollaborator
	err := r.db.
		Preload("SessionItem").
		Preload("SessionItem.WeeklySession").
		Where("collaborator_user_id = ? AND status = ?", userID, models.CollaboratorStatusAccepted).
		Find(&collabs).Error
	return collabs, err
}

// ListRosterByItem lists accepted collaborator rows for a session item,
// each joined with its user
func (r *GormSessionRepository) ListRosterByItem(sessionItemID string) ([]models.SessionCollaborator, error) {
	var collabs []models.SessionCollaborator
	err := r.db.
		Preload("User").
		Where("session_item_id = ? AND status = ?", sessionItemID, models.CollaboratorStatusAccepted).
		Order("invited_at ASC").
		Find(&collabs).Error
	return collabs, err
}

// ListPendingInvitationsByEmail lists invited rows with no linked user for
// the given email
func (r *GormSessionRepository) ListPendingInvitationsByEmail(email string) ([]models.SessionCollaborator, error) {
	var collabs []models.SessionCollaborator
	err := r.db.
		Where("email = ? AND status = ? AND collaborator_user_id IS NULL", email, models.CollaboratorStatusInvited).
		Find(&collabs).Error
	return collabs, err
}

// LinkCollaboratorUser backfills the user ID on a collaborator row
func (r *GormSessionRepository) LinkCollaboratorUser(collabID, userID string) error {
	return r.db.
		Model(&models.SessionCollaborator{}).
		Where("id = ?", collabID).
		Update("collaborator_user_id", userID).Error
}
