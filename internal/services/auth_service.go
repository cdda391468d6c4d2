package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/habitloop/habit-tracking-api/internal/constants"
	"github.com/habitloop/habit-tracking-api/internal/models"
	"github.com/habitloop/habit-tracking-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo            repository.UserRepository
	sessionRepo         repository.SessionRepository
	notificationService *NotificationService
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, notificationService *NotificationService) *AuthService {
	return &AuthService{
		userRepo:            userRepo,
		sessionRepo:         sessionRepo,
		notificationService: notificationService,
	}
}

// SignupInput represents the required information to create a new user.
type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// Signup creates a new user.
func (s *AuthService) Signup(input SignupInput) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" || email == "" {
		return nil, fmt.Errorf("name and email are required")
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns the authenticated user. Pending
// collaboration invitations addressed to the login email are linked to the
// account here, which is how invitations sent before signup catch up.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.linkPendingInvitations(user); err != nil {
		return nil, err
	}

	return user, nil
}

// linkPendingInvitations backfills the user ID onto invited collaborator
// rows matching the user's email and notifies the user about each.
func (s *AuthService) linkPendingInvitations(user *models.User) error {
	pending, err := s.sessionRepo.ListPendingInvitationsByEmail(user.Email)
	if err != nil {
		return fmt.Errorf("failed to load pending invitations: %w", err)
	}

	for _, collab := range pending {
		if err := s.sessionRepo.LinkCollaboratorUser(collab.ID, user.ID); err != nil {
			return fmt.Errorf("failed to link invitation %s: %w", collab.ID, err)
		}
		if s.notificationService != nil {
			s.notificationService.NotifyCollabInvite(user.ID, collab.SessionItemID, s.inviterName(collab.SessionItemID))
		}
	}
	return nil
}

// inviterName resolves the owner of the item's parent session, the user who
// sent the invitation.
func (s *AuthService) inviterName(sessionItemID string) string {
	item, err := s.sessionRepo.FindItemByID(sessionItemID, "WeeklySession.User")
	if err != nil || item.WeeklySession.User.Name == "" {
		return "Someone"
	}
	return item.WeeklySession.User.Name
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}
