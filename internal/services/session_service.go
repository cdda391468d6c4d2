package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/habitloop/habit-tracking-api/internal/models"
	"github.com/habitloop/habit-tracking-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrSessionNotFound         = errors.New("weekly session not found")
	ErrNotSessionOwner         = errors.New("only the session owner can perform this action")
	ErrInvalidDayOfWeek        = errors.New("day_of_week must be between 0 (Sunday) and 6 (Saturday)")
	ErrCollaboratorNotFound    = errors.New("collaborator not found")
	ErrNotInvitee              = errors.New("only the invited user can respond to this invitation")
	ErrInvalidStatusTransition = errors.New("invalid collaborator status transition")
)

// SessionService handles weekly sessions, their items and the collaborator
// invitation lifecycle.
type SessionService struct {
	sessionRepo         repository.SessionRepository
	userRepo            repository.UserRepository
	notificationService *NotificationService
}

// NewSessionService creates a new SessionService.
func NewSessionService(sessionRepo repository.SessionRepository, userRepo repository.UserRepository, notificationService *NotificationService) *SessionService {
	return &SessionService{
		sessionRepo:         sessionRepo,
		userRepo:            userRepo,
		notificationService: notificationService,
	}
}

// CreateSessionInput represents input for creating a weekly session.
type CreateSessionInput struct {
	UserID      string
	Name        string
	Description *string
	DayOfWeek   int
}

// CreateSession creates a weekly session bound to one day of week.
func (s *SessionService) CreateSession(input CreateSessionInput) (*models.WeeklySession, error) {
	if input.DayOfWeek < 0 || input.DayOfWeek > 6 {
		return nil, ErrInvalidDayOfWeek
	}

	session := &models.WeeklySession{
		UserID:      input.UserID,
		Name:        input.Name,
		Description: input.Description,
		DayOfWeek:   input.DayOfWeek,
	}
	if err := s.sessionRepo.CreateSession(session); err != nil {
		return nil, fmt.Errorf("failed to create weekly session: %w", err)
	}
	return session, nil
}

// ListSessions lists the user's weekly sessions with their items.
func (s *SessionService) ListSessions(userID string) ([]models.WeeklySession, error) {
	return s.sessionRepo.ListSessionsByUser(userID)
}

// UpdateSessionInput represents a partial weekly session update.
type UpdateSessionInput struct {
	Name        *string
	Description *string
	DayOfWeek   *int
}

// UpdateSession updates a weekly session owned by userID.
func (s *SessionService) UpdateSession(id, userID string, input UpdateSessionInput) (*models.WeeklySession, error) {
	session, err := s.findOwnedSession(id, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		session.Name = *input.Name
	}
	if input.Description != nil {
		session.Description = input.Description
	}
	if input.DayOfWeek != nil {
		if *input.DayOfWeek < 0 || *input.DayOfWeek > 6 {
			return nil, ErrInvalidDayOfWeek
		}
		session.DayOfWeek = *input.DayOfWeek
	}

	if err := s.sessionRepo.UpdateSession(session); err != nil {
		return nil, fmt.Errorf("failed to update weekly session: %w", err)
	}
	return session, nil
}

// DeleteSession soft deletes a weekly session owned by userID. Already
// materialized daily logs keep their snapshot.
func (s *SessionService) DeleteSession(id, userID string) error {
	if _, err := s.findOwnedSession(id, userID); err != nil {
		return err
	}
	if err := s.sessionRepo.DeleteSession(id); err != nil {
		return fmt.Errorf("failed to delete weekly session: %w", err)
	}
	return nil
}

func (s *SessionService) findOwnedSession(id, userID string) (*models.WeeklySession, error) {
	session, err := s.sessionRepo.FindSessionByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to find weekly session: %w", err)
	}
	if session.UserID != userID {
		return nil, ErrNotSessionOwner
	}
	return session, nil
}

// CreateItemInput represents input for adding an item to a weekly session.
type CreateItemInput struct {
	WeeklySessionID string
	UserID          string
	HabitMasterID   string
	StartTime       string
	DurationMinutes int
	Type            models.SessionItemType
	GoalType        models.GoalType
}

// CreateItem adds a scheduled occurrence to a weekly session. The creator
// is auto-enrolled as an accepted owner collaborator so collaborative
// rosters always contain at least the owner.
func (s *SessionService) CreateItem(input CreateItemInput) (*models.SessionItem, error) {
	if _, err := s.findOwnedSession(input.WeeklySessionID, input.UserID); err != nil {
		return nil, err
	}

	owner, err := s.userRepo.FindByID(input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find item creator: %w", err)
	}

	item := &models.SessionItem{
		WeeklySessionID: input.WeeklySessionID,
		HabitMasterID:   input.HabitMasterID,
		StartTime:       input.StartTime,
		DurationMinutes: input.DurationMinutes,
		Type:            input.Type,
		GoalType:        input.GoalType,
	}
	if item.Type == "" {
		item.Type = models.SessionItemTypeTask
	}
	if item.GoalType == "" {
		item.GoalType = models.GoalTypeIndividual
	}

	if err := s.sessionRepo.CreateItem(item); err != nil {
		return nil, fmt.Errorf("failed to create session item: %w", err)
	}

	now := time.Now()
	ownerID := owner.ID
	enrollment := &models.SessionCollaborator{
		SessionItemID:      item.ID,
		CollaboratorUserID: &ownerID,
		Email:              owner.Email,
		Status:             models.CollaboratorStatusAccepted,
		Role:               models.CollaboratorRoleOwner,
		JoinedAt:           &now,
	}
	if err := s.sessionRepo.CreateCollaborator(enrollment); err != nil {
		return nil, fmt.Errorf("failed to enroll item owner: %w", err)
	}

	return item, nil
}

// DeleteItem soft deletes a session item owned by userID.
func (s *SessionService) DeleteItem(id, userID string) error {
	item, err := s.sessionRepo.FindItemByID(id, "WeeklySession")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSessionItemNotFound
		}
		return fmt.Errorf("failed to find session item: %w", err)
	}
	if item.WeeklySession.UserID != userID {
		return ErrNotSessionOwner
	}
	if err := s.sessionRepo.DeleteItem(id); err != nil {
		return fmt.Errorf("failed to delete session item: %w", err)
	}
	return nil
}

// AddCollaboratorInput represents an email invitation to a session item.
type AddCollaboratorInput struct {
	SessionItemID string
	InviterUserID string
	Email         string
}

// AddCollaboratorResult reports the invitation outcome.
type AddCollaboratorResult struct {
	Collaborator  *models.SessionCollaborator
	AlreadyExists bool
}

// AddCollaboratorByEmail invites an email address to a session item. If the
// address belongs to a registered user the row is linked and the user is
// notified immediately; otherwise the invitation waits for signup and is
// linked at first login.
func (s *SessionService) AddCollaboratorByEmail(input AddCollaboratorInput) (*AddCollaboratorResult, error) {
	item, err := s.sessionRepo.FindItemByID(input.SessionItemID, "WeeklySession")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionItemNotFound
		}
		return nil, fmt.Errorf("failed to find session item: %w", err)
	}
	if item.WeeklySession.UserID != input.InviterUserID {
		return nil, ErrNotSessionOwner
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	if existing, err := s.sessionRepo.FindCollaboratorByItemAndEmail(input.SessionItemID, email); err == nil {
		return &AddCollaboratorResult{Collaborator: existing, AlreadyExists: true}, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing collaborator: %w", err)
	}

	collab := &models.SessionCollaborator{
		SessionItemID: input.SessionItemID,
		Email:         email,
		Status:        models.CollaboratorStatusInvited,
		Role:          models.CollaboratorRoleMember,
	}

	invitee, err := s.userRepo.FindByEmail(email)
	if err == nil {
		inviteeID := invitee.ID
		collab.CollaboratorUserID = &inviteeID
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up invitee: %w", err)
	}

	if err := s.sessionRepo.CreateCollaborator(collab); err != nil {
		return nil, fmt.Errorf("failed to create collaborator: %w", err)
	}

	if invitee != nil && s.notificationService != nil {
		inviter, err := s.userRepo.FindByID(input.InviterUserID)
		inviterName := "Someone"
		if err == nil {
			inviterName = inviter.Name
		}
		s.notificationService.NotifyCollabInvite(invitee.ID, input.SessionItemID, inviterName)
	}

	return &AddCollaboratorResult{Collaborator: collab}, nil
}

// UpdateCollaboratorStatus applies one invitation lifecycle transition:
// invited -> accepted|rejected, accepted -> left. Accepting backfills the
// user link and join time, and notifies the item owner.
func (s *SessionService) UpdateCollaboratorStatus(collabID string, status models.CollaboratorStatus, userID string) (*models.SessionCollaborator, error) {
	collab, err := s.sessionRepo.FindCollaboratorByID(collabID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollaboratorNotFound
		}
		return nil, fmt.Errorf("failed to find collaborator: %w", err)
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if collab.CollaboratorUserID != nil {
		if *collab.CollaboratorUserID != userID {
			return nil, ErrNotInvitee
		}
	} else if !strings.EqualFold(collab.Email, user.Email) {
		return nil, ErrNotInvitee
	}

	if !validCollaboratorTransition(collab.Status, status) {
		return nil, ErrInvalidStatusTransition
	}

	collab.Status = status
	if status == models.CollaboratorStatusAccepted {
		now := time.Now()
		collab.JoinedAt = &now
		if collab.CollaboratorUserID == nil {
			collab.CollaboratorUserID = &user.ID
		}
	}

	if err := s.sessionRepo.UpdateCollaborator(collab); err != nil {
		return nil, fmt.Errorf("failed to update collaborator: %w", err)
	}

	if status == models.CollaboratorStatusAccepted && s.notificationService != nil {
		if item, err := s.sessionRepo.FindItemByID(collab.SessionItemID, "WeeklySession"); err == nil {
			s.notificationService.NotifyCollabAccepted(item.WeeklySession.UserID, collab.SessionItemID, user.Name)
		}
	}

	return collab, nil
}

func validCollaboratorTransition(from, to models.CollaboratorStatus) bool {
	switch from {
	case models.CollaboratorStatusInvited:
		return to == models.CollaboratorStatusAccepted || to == models.CollaboratorStatusRejected
	case models.CollaboratorStatusAccepted:
		return to == models.CollaboratorStatusLeft
	default:
		return false
	}
}
