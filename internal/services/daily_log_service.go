package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/habitloop/habit-tracking-api/internal/models"
	"github.com/habitloop/habit-tracking-api/internal/repository"
	"github.com/habitloop/habit-tracking-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrInvalidDate         = errors.New("invalid date, expected YYYY-MM-DD")
	ErrDailyLogNotFound    = errors.New("daily log not found")
	ErrSessionItemNotFound = errors.New("session item not found")
)

// DailyLogService materializes daily logs from weekly schedules and tracks
// per-user and group completion state.
type DailyLogService struct {
	dailyLogRepo repository.DailyLogRepository
	sessionRepo  repository.SessionRepository
	loc          *time.Location
	now          func() time.Time
}

// NewDailyLogService creates a new DailyLogService. loc is the timezone in
// which "today" is evaluated for the sync window.
func NewDailyLogService(dailyLogRepo repository.DailyLogRepository, sessionRepo repository.SessionRepository, loc *time.Location) *DailyLogService {
	return &DailyLogService{
		dailyLogRepo: dailyLogRepo,
		sessionRepo:  sessionRepo,
		loc:          loc,
		now:          time.Now,
	}
}

// DailyLogWithGroup pairs a daily log with the group progress of its
// session item when the item is a collaborative goal.
type DailyLogWithGroup struct {
	Log           models.DailyLog
	GroupProgress *GroupProgress
}

// GroupMemberProgress is one roster member's state for a date.
type GroupMemberProgress struct {
	UserID      string                `json:"user_id"`
	Name        string                `json:"name"`
	Email       string                `json:"email"`
	Picture     *string               `json:"picture"`
	Status      models.DailyLogStatus `json:"status"`
	CompletedAt *time.Time            `json:"completed_at"`
}

// GroupProgressSummary aggregates completion across a roster.
type GroupProgressSummary struct {
	TotalMembers     int  `json:"total_members"`
	CompletedMembers int  `json:"completed_members"`
	Percentage       int  `json:"percentage"`
	IsGroupComplete  bool `json:"is_group_complete"`
}

// GroupProgress is the full group view of a collaborative session item on
// one date.
type GroupProgress struct {
	SessionItemID string                `json:"session_item_id"`
	Date          string                `json:"date"`
	Summary       GroupProgressSummary  `json:"summary"`
	Members       []GroupMemberProgress `json:"members"`
}

// SyncDailyLogsForUser guarantees the user's logs for date reflect their
// own weekly schedule and their accepted collaborations, then returns the
// enriched log set. Safe to call repeatedly and concurrently for the same
// key: generation is additive only, the existing-log set is a fast-path
// dedup, and the store's unique index settles races.
//
// Dates outside the {today, tomorrow} window never generate logs; the call
// degrades to a read so historical queries stay side-effect free.
func (s *DailyLogService) SyncDailyLogsForUser(userID, date string) ([]DailyLogWithGroup, error) {
	if !utils.IsValidDate(date) {
		return nil, ErrInvalidDate
	}

	existing, err := s.dailyLogRepo.ListByUserAndDate(userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing logs: %w", err)
	}

	seen := make(map[string]struct{}, len(existing))
	for _, log := range existing {
		seen[log.SessionItemID] = struct{}{}
	}

	if utils.WithinSyncWindow(date, s.now().In(s.loc)) {
		if err := s.generateLogs(userID, date, seen); err != nil {
			return nil, err
		}
	}

	return s.GetDailyLogsByUserID(userID, date)
}

// generateLogs inserts missing logs for date from both schedule sources.
// seen holds session item IDs that already have an active log.
func (s *DailyLogService) generateLogs(userID, date string, seen map[string]struct{}) error {
	dayOfWeek, err := utils.DayOfWeek(date, s.loc)
	if err != nil {
		return ErrInvalidDate
	}

	// Source A: sessions the user owns for this weekday.
	ownSessions, err := s.sessionRepo.ListSessionsByUserAndDay(userID, dayOfWeek)
	if err != nil {
		return fmt.Errorf("failed to load weekly sessions: %w", err)
	}

	ownSessionIDs := make(map[string]struct{}, len(ownSessions))
	var newLogs []models.DailyLog
	for _, session := range ownSessions {
		ownSessionIDs[session.ID] = struct{}{}
		for _, item := range session.SessionItems {
			if _, ok := seen[item.ID]; ok {
				continue
			}
			newLogs = append(newLogs, buildLogSnapshot(userID, date, session, item))
			seen[item.ID] = struct{}{}
		}
	}

	// Source B: items the user collaborates on. Own sessions take
	// precedence, so anything whose parent session is in source A is
	// skipped rather than doubled.
	collabs, err := s.sessionRepo.ListAcceptedCollaborationsByUser(userID)
	if err != nil {
		return fmt.Errorf("failed to load collaborations: %w", err)
	}

	for _, collab := range collabs {
		item := collab.SessionItem
		session := item.WeeklySession
		if item.ID == "" || session.ID == "" {
			// item or parent session soft-deleted
			continue
		}
		if session.DayOfWeek != dayOfWeek {
			continue
		}
		if _, ok := ownSessionIDs[session.ID]; ok {
			continue
		}
		if _, ok := seen[item.ID]; ok {
			continue
		}
		newLogs = append(newLogs, buildLogSnapshot(userID, date, session, item))
		seen[item.ID] = struct{}{}
	}

	if err := s.dailyLogRepo.CreateIgnoringDuplicates(newLogs); err != nil {
		return fmt.Errorf("failed to create daily logs: %w", err)
	}
	return nil
}

// buildLogSnapshot copies the schedule fields into a new pending log so the
// log stays immutable history when the schedule is later edited.
func buildLogSnapshot(userID, date string, session models.WeeklySession, item models.SessionItem) models.DailyLog {
	sessionID := session.ID
	sessionName := session.Name
	startTime := item.StartTime
	duration := item.DurationMinutes
	return models.DailyLog{
		UserID:             userID,
		Date:               date,
		WeeklySessionID:    &sessionID,
		SessionItemID:      item.ID,
		SessionName:        &sessionName,
		SessionDescription: session.Description,
		SessionItemType:    item.Type,
		StartTime:          &startTime,
		DurationMinutes:    &duration,
		Status:             models.DailyLogStatusPending,
	}
}

// GetDailyLogsByUserID returns the user's logs for date, enriched with the
// session item, habit and collaborator relations, plus group progress for
// collaborative items. Read-only; never generates.
func (s *DailyLogService) GetDailyLogsByUserID(userID, date string) ([]DailyLogWithGroup, error) {
	if !utils.IsValidDate(date) {
		return nil, ErrInvalidDate
	}

	logs, err := s.dailyLogRepo.ListByUserAndDateEnriched(userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load daily logs: %w", err)
	}

	out := make([]DailyLogWithGroup, 0, len(logs))
	for _, log := range logs {
		entry := DailyLogWithGroup{Log: log}
		if log.SessionItem.GoalType == models.GoalTypeCollaborative {
			progress, err := s.GetGroupProgress(log.SessionItemID, date)
			if err != nil && !errors.Is(err, ErrSessionItemNotFound) {
				return nil, err
			}
			entry.GroupProgress = progress
		}
		out = append(out, entry)
	}
	return out, nil
}

// UpdateDailyLog adjusts the schedule fields of one of the user's logs.
func (s *DailyLogService) UpdateDailyLog(id, userID string, startTime *string, durationMinutes *int) (*models.DailyLog, error) {
	log, err := s.dailyLogRepo.UpdateOwned(id, userID, startTime, durationMinutes)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDailyLogNotFound
		}
		return nil, fmt.Errorf("failed to update daily log: %w", err)
	}
	return log, nil
}

// SoftDeleteDailyLog removes a one-off occurrence from the user's day.
func (s *DailyLogService) SoftDeleteDailyLog(id, userID string) error {
	if err := s.dailyLogRepo.DeleteOwned(id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDailyLogNotFound
		}
		return fmt.Errorf("failed to delete daily log: %w", err)
	}
	return nil
}

// UpsertDailyLogProgress sets a log's status and stamps the transition
// time. timerSeconds is applied when provided (timer items). Only the
// log's owner may record progress, even on collaborative items.
func (s *DailyLogService) UpsertDailyLogProgress(dailyLogID, userID string, status models.DailyLogStatus, timerSeconds *int) (*models.DailyLog, error) {
	log, err := s.dailyLogRepo.FindByID(dailyLogID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDailyLogNotFound
		}
		return nil, fmt.Errorf("failed to find daily log: %w", err)
	}
	if log.UserID != userID {
		return nil, ErrDailyLogNotFound
	}

	now := s.now()
	log.Status = status
	log.StatusUpdatedAt = &now
	if timerSeconds != nil {
		log.TimerSeconds = *timerSeconds
	}

	if err := s.dailyLogRepo.Update(log); err != nil {
		return nil, fmt.Errorf("failed to update progress: %w", err)
	}
	return log, nil
}

// GetGroupProgress aggregates the roster's completion for a collaborative
// session item on date. The roster is the accepted collaborator list; a
// member with no log yet simply has not synced and reports pending.
func (s *DailyLogService) GetGroupProgress(sessionItemID, date string) (*GroupProgress, error) {
	if !utils.IsValidDate(date) {
		return nil, ErrInvalidDate
	}

	if _, err := s.sessionRepo.FindItemByID(sessionItemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionItemNotFound
		}
		return nil, fmt.Errorf("failed to find session item: %w", err)
	}

	roster, err := s.sessionRepo.ListRosterByItem(sessionItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	logs, err := s.dailyLogRepo.ListByItemAndDate(sessionItemID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load logs: %w", err)
	}

	logsByUser := make(map[string]models.DailyLog, len(logs))
	for _, log := range logs {
		logsByUser[log.UserID] = log
	}

	members := make([]GroupMemberProgress, 0, len(roster))
	completed := 0
	for _, collab := range roster {
		if collab.CollaboratorUserID == nil {
			continue
		}
		member := GroupMemberProgress{
			UserID: *collab.CollaboratorUserID,
			Email:  collab.Email,
			Status: models.DailyLogStatusPending,
		}
		if collab.User != nil {
			member.Name = collab.User.Name
			member.Picture = collab.User.Picture
		}
		if log, ok := logsByUser[member.UserID]; ok {
			member.Status = log.Status
			if log.Status == models.DailyLogStatusCompleted {
				member.CompletedAt = log.StatusUpdatedAt
			}
		}
		if member.Status == models.DailyLogStatusCompleted {
			completed++
		}
		members = append(members, member)
	}

	total := len(members)
	percentage := 0
	if total > 0 {
		percentage = int(math.Round(float64(completed) / float64(total) * 100))
	}

	return &GroupProgress{
		SessionItemID: sessionItemID,
		Date:          date,
		Summary: GroupProgressSummary{
			TotalMembers:     total,
			CompletedMembers: completed,
			Percentage:       percentage,
			IsGroupComplete:  total > 0 && completed == total,
		},
		Members: members,
	}, nil
}
