package repository

import (
	"github.com/habitloop/habit-tracking-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}

// HabitRepository defines the interface for habit master data access
type HabitRepository interface {
	// Create creates a new habit master
	Create(habit *models.HabitMaster) error

	// FindByID finds a habit master by ID
	FindByID(id string) (*models.HabitMaster, error)

	// ListByUser retrieves a user's habit masters with pagination
	ListByUser(userID string, offset, limit int) ([]models.HabitMaster, int64, error)

	// Update updates a habit master
	Update(habit *models.HabitMaster) error

	// Delete soft deletes a habit master
	Delete(id string) error
}

// SessionRepository defines the interface for weekly session, session item
// and collaborator data access
type SessionRepository interface {
	// CreateSession creates a new weekly session
	CreateSession(session *models.WeeklySession) error

	// FindSessionByID finds a weekly session by ID
	FindSessionByID(id string, preload ...string) (*models.WeeklySession, error)

	// ListSessionsByUser lists a user's weekly sessions with their items
	ListSessionsByUser(userID string) ([]models.WeeklySession, error)

	// ListSessionsByUserAndDay lists a user's weekly sessions bound to the
	// given day of week (0=Sunday), each with its non-deleted items
	ListSessionsByUserAndDay(userID string, dayOfWeek int) ([]models.WeeklySession, error)

	// UpdateSession updates a weekly session
	UpdateSession(session *models.WeeklySession) error

	// DeleteSession soft deletes a weekly session
	DeleteSession(id string) error

	// CreateItem creates a session item
	CreateItem(item *models.SessionItem) error

	// FindItemByID finds a session item by ID
	FindItemByID(id string, preload ...string) (*models.SessionItem, error)

	// DeleteItem soft deletes a session item
	DeleteItem(id string) error

	// CreateCollaborator creates a collaborator row
	CreateCollaborator(collab *models.SessionCollaborator) error

	// FindCollaboratorByID finds a collaborator by ID
	FindCollaboratorByID(id string) (*models.SessionCollaborator, error)

	// FindCollaboratorByItemAndEmail finds the active collaborator row for
	// (sessionItemID, email), if any
	FindCollaboratorByItemAndEmail(sessionItemID, email string) (*models.SessionCollaborator, error)

	// UpdateCollaborator updates a collaborator row
	UpdateCollaborator(collab *models.SessionCollaborator) error

	// ListAcceptedCollaborationsByUser lists accepted collaborator rows for
	// a user, each with its session item and the item's parent session
	ListAcceptedCollaborationsByUser(userID string) ([]models.SessionCollaborator, error)

	// ListRosterByItem lists accepted collaborator rows for a session item,
	// each joined with its user
	ListRosterByItem(sessionItemID string) ([]models.SessionCollaborator, error)

	// ListPendingInvitationsByEmail lists invited rows with no linked user
	// for the given email
	ListPendingInvitationsByEmail(email string) ([]models.SessionCollaborator, error)

	// LinkCollaboratorUser backfills the user ID on a collaborator row
	LinkCollaboratorUser(collabID, userID string) error
}

// DailyLogRepository defines the interface for daily log data access
type DailyLogRepository interface {
	// ListByUserAndDate lists a user's logs for a date
	ListByUserAndDate(userID, date string) ([]models.DailyLog, error)

	// ListByUserAndDateEnriched lists a user's logs for a date joined with
	// session item, habit master and active collaborators, ordered by
	// (weekly_session_id, start_time)
	ListByUserAndDateEnriched(userID, date string) ([]models.DailyLog, error)

	// ListByItemAndDate lists all users' logs for a session item on a date
	ListByItemAndDate(sessionItemID, date string) ([]models.DailyLog, error)

	// CreateIgnoringDuplicates inserts logs, silently skipping rows that
	// collide with the (user_id, date, session_item_id) unique index
	CreateIgnoringDuplicates(logs []models.DailyLog) error

	// FindByID finds a daily log by ID
	FindByID(id string) (*models.DailyLog, error)

	// Update updates a daily log
	Update(log *models.DailyLog) error

	// UpdateOwned updates schedule fields of a log owned by userID and
	// returns the updated row
	UpdateOwned(id, userID string, startTime *string, durationMinutes *int) (*models.DailyLog, error)

	// DeleteOwned soft deletes a log owned by userID
	DeleteOwned(id, userID string) error
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	// Create creates a notification
	Create(n *models.Notification) error

	// ListByUser lists a user's notifications, newest first
	ListByUser(userID string) ([]models.Notification, error)

	// UnreadCount counts a user's unread notifications
	UnreadCount(userID string) (int64, error)

	// MarkRead marks one of the user's notifications as read
	MarkRead(id uint64, userID string) error

	// MarkAllRead marks all of the user's notifications as read
	MarkAllRead(userID string) error
}

// MotivationRepository defines the interface for motivational message access
type MotivationRepository interface {
	// ListEligible lists active messages whose percentage range covers p
	ListEligible(p int) ([]models.MotivationalMessage, error)
}

// DateCount pairs a date with a row count.
type DateCount struct {
	Date  string
	Count int64
}

// DateCompletion carries total and completed counts for one date.
type DateCompletion struct {
	Date      string
	Total     int64
	Completed int64
}

// CategoryCount pairs a habit category with a completed count.
type CategoryCount struct {
	Category string
	Count    int64
}

// LongestActivity names the day's longest scheduled activity.
type LongestActivity struct {
	SessionItemID   string
	Name            string
	DurationMinutes int
}

// CollaboratorActivity aggregates shared work with one collaborator.
type CollaboratorActivity struct {
	UserID            string
	Name              string
	Email             string
	Picture           *string
	CompletedTogether int
}

// ReportRepository defines the read-side aggregation queries over daily logs
type ReportRepository interface {
	// DayTotals returns total and completed log counts for (userID, date)
	DayTotals(userID, date string) (total, completed int64, err error)

	// CompletedByDate counts completed logs per date within [start, end]
	CompletedByDate(userID, start, end string) ([]DateCount, error)

	// CompletionByDate returns total and completed counts per date within
	// [start, end]
	CompletionByDate(userID, start, end string) ([]DateCompletion, error)

	// CompletedByCategory counts completed logs per habit category within
	// [start, end]
	CompletedByCategory(userID, start, end string) ([]CategoryCount, error)

	// StatusCounts counts the user's logs by status for a date
	StatusCounts(userID, date string) (map[models.DailyLogStatus]int64, error)

	// TypeCounts counts the user's logs by session item type for a date
	TypeCounts(userID, date string) (map[models.SessionItemType]int64, error)

	// FocusMinutes sums duration minutes over the user's logs for a date
	FocusMinutes(userID, date string) (int64, error)

	// CompletedStartTimes lists start times of completed logs for a date
	CompletedStartTimes(userID, date string) ([]string, error)

	// Longest returns the user's longest activity for a date, nil if none
	Longest(userID, date string) (*LongestActivity, error)

	// Collaborators aggregates accepted collaborators on the user's
	// collaborative logs for a date
	Collaborators(userID, date string) ([]CollaboratorActivity, error)
}
