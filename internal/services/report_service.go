package services

import (
	"fmt"
	"math"
	"time"

	"github.com/habitloop/habit-tracking-api/internal/models"
	"github.com/habitloop/habit-tracking-api/internal/repository"
	"github.com/habitloop/habit-tracking-api/internal/utils"
)

// ReportService builds the read-only rollups over daily logs.
type ReportService struct {
	reportRepo        repository.ReportRepository
	motivationService *MotivationService
	loc               *time.Location
}

// NewReportService creates a new ReportService.
func NewReportService(reportRepo repository.ReportRepository, motivationService *MotivationService, loc *time.Location) *ReportService {
	return &ReportService{
		reportRepo:        reportRepo,
		motivationService: motivationService,
		loc:               loc,
	}
}

// ReportMeta summarizes the reference date.
type ReportMeta struct {
	ReferenceDate       string `json:"reference_date"`
	TotalCompletedToday int64  `json:"total_completed_today"`
	CompletionRateToday int    `json:"completion_rate_today"`
}

// WeeklyActivity is rolling 7-day completed counts for a bar chart.
type WeeklyActivity struct {
	Labels []string `json:"labels"`
	Dates  []string `json:"dates"`
	Data   []int64  `json:"data"`
}

// CategorySlice is one pie chart slice.
type CategorySlice struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// HeatmapEntry is a (date, 0-10 score) pair for a calendar chart.
type HeatmapEntry struct {
	Date  string `json:"date"`
	Score int    `json:"score"`
}

// WeeklySummary is the full weekly report.
type WeeklySummary struct {
	Meta                 ReportMeta      `json:"meta"`
	WeeklyActivity       WeeklyActivity  `json:"weekly_activity"`
	CategoryDistribution []CategorySlice `json:"category_distribution"`
	ConsistencyHeatmap   []HeatmapEntry  `json:"consistency_heatmap"`
}

// GetWeeklySummary builds the weekly report for (userID, date).
func (s *ReportService) GetWeeklySummary(userID, date string) (*WeeklySummary, error) {
	if !utils.IsValidDate(date) {
		return nil, ErrInvalidDate
	}

	meta, err := s.getMeta(userID, date)
	if err != nil {
		return nil, err
	}
	activity, err := s.getWeeklyActivity(userID, date)
	if err != nil {
		return nil, err
	}
	categories, err := s.getCategoryDistribution(userID, date)
	if err != nil {
		return nil, err
	}
	heatmap, err := s.getConsistencyHeatmap(userID, date)
	if err != nil {
		return nil, err
	}

	return &WeeklySummary{
		Meta:                 *meta,
		WeeklyActivity:       *activity,
		CategoryDistribution: categories,
		ConsistencyHeatmap:   heatmap,
	}, nil
}

func (s *ReportService) getMeta(userID, date string) (*ReportMeta, error) {
	total, completed, err := s.reportRepo.DayTotals(userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load day totals: %w", err)
	}
	return &ReportMeta{
		ReferenceDate:       date,
		TotalCompletedToday: completed,
		CompletionRateToday: ratePercent(completed, total),
	}, nil
}

func (s *ReportService) getWeeklyActivity(userID, date string) (*WeeklyActivity, error) {
	dates, err := utils.DateRange(date, 7, s.loc)
	if err != nil {
		return nil, err
	}

	counts, err := s.reportRepo.CompletedByDate(userID, dates[0], dates[len(dates)-1])
	if err != nil {
		return nil, fmt.Errorf("failed to load weekly activity: %w", err)
	}

	byDate := make(map[string]int64, len(counts))
	for _, row := range counts {
		byDate[row.Date] = row.Count
	}

	// Zero-fill so the chart always has 7 points.
	activity := &WeeklyActivity{Dates: dates}
	for _, d := range dates {
		t, err := utils.ParseCalendarDate(d, s.loc)
		if err != nil {
			return nil, err
		}
		activity.Labels = append(activity.Labels, utils.DayNames[int(t.Weekday())])
		activity.Data = append(activity.Data, byDate[d])
	}
	return activity, nil
}

func (s *ReportService) getCategoryDistribution(userID, date string) ([]CategorySlice, error) {
	dates, err := utils.DateRange(date, 7, s.loc)
	if err != nil {
		return nil, err
	}

	counts, err := s.reportRepo.CompletedByCategory(userID, dates[0], dates[len(dates)-1])
	if err != nil {
		return nil, fmt.Errorf("failed to load category distribution: %w", err)
	}

	slices := make([]CategorySlice, 0, len(counts))
	for _, row := range counts {
		slices = append(slices, CategorySlice{Name: row.Category, Value: row.Count})
	}
	return slices, nil
}

func (s *ReportService) getConsistencyHeatmap(userID, date string) ([]HeatmapEntry, error) {
	start, end, err := utils.MonthRange(date, s.loc)
	if err != nil {
		return nil, err
	}

	rows, err := s.reportRepo.CompletionByDate(userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load heatmap: %w", err)
	}

	// Days without any scheduled task are omitted rather than scored zero.
	heatmap := make([]HeatmapEntry, 0, len(rows))
	for _, row := range rows {
		if row.Total == 0 {
			continue
		}
		score := int(math.Round(float64(row.Completed) / float64(row.Total) * 10))
		heatmap = append(heatmap, HeatmapEntry{Date: row.Date, Score: score})
	}
	return heatmap, nil
}

// Achievement summarizes one day's completion.
type Achievement struct {
	CompletionRate    int   `json:"completion_rate"`
	TotalTasks        int64 `json:"total_tasks"`
	CompletedTasks    int64 `json:"completed_tasks"`
	TotalFocusMinutes int64 `json:"total_focus_minutes"`
}

// StatusBreakdown counts one day's logs by status and type.
type StatusBreakdown struct {
	ByStatus map[models.DailyLogStatus]int64  `json:"by_status"`
	ByType   map[models.SessionItemType]int64 `json:"by_type"`
}

// LongestActivity names the day's longest scheduled activity.
type LongestActivity struct {
	SessionItemID   string `json:"session_item_id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
}

// TimeInsights reports when the user completed work during the day.
type TimeInsights struct {
	MostProductiveTime      *utils.TimePeriod `json:"most_productive_time"`
	MostProductiveTimeLabel *string           `json:"most_productive_time_label"`
	LongestActivity         *LongestActivity  `json:"longest_activity"`
}

// CollaboratorSummary is a collaborator the user worked with on the day.
type CollaboratorSummary struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	Picture           *string `json:"picture"`
	CompletedTogether int     `json:"completed_together"`
}

// SocialContext carries collaborators and the daily motivational quote.
type SocialContext struct {
	Collaborators  []CollaboratorSummary `json:"collaborators"`
	DailyQuote     string                `json:"daily_quote"`
	QuoteColorInfo string                `json:"quote_color_info"`
}

// DailySummary is the full daily report.
type DailySummary struct {
	Date            string          `json:"date"`
	Achievement     Achievement     `json:"achievement"`
	StatusBreakdown StatusBreakdown `json:"status_breakdown"`
	TimeInsights    TimeInsights    `json:"time_insights"`
	Social          SocialContext   `json:"social"`
}

// GetDailySummary builds the daily report for (userID, date).
func (s *ReportService) GetDailySummary(userID, date string) (*DailySummary, error) {
	if !utils.IsValidDate(date) {
		return nil, ErrInvalidDate
	}

	achievement, err := s.getAchievement(userID, date)
	if err != nil {
		return nil, err
	}
	breakdown, err := s.getStatusBreakdown(userID, date)
	if err != nil {
		return nil, err
	}
	insights, err := s.getTimeInsights(userID, date)
	if err != nil {
		return nil, err
	}
	social, err := s.getSocialContext(userID, date, achievement.CompletionRate)
	if err != nil {
		return nil, err
	}

	return &DailySummary{
		Date:            date,
		Achievement:     *achievement,
		StatusBreakdown: *breakdown,
		TimeInsights:    *insights,
		Social:          *social,
	}, nil
}

func (s *ReportService) getAchievement(userID, date string) (*Achievement, error) {
	total, completed, err := s.reportRepo.DayTotals(userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load day totals: %w", err)
	}
	focus, err := s.reportRepo.FocusMinutes(userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load focus minutes: %w", err)
	}
	return &Achievement{
		CompletionRate:    ratePercent(completed, total),
		TotalTasks:        total,
		CompletedTasks:    completed,
		TotalFocusMinutes: focus,
	}, nil
}

func (s *ReportService) getStatusBreakdown(userID, date string) (*StatusBreakdown, error) {
	statusCounts, err := s.reportRepo.StatusCounts(userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load status counts: %w", err)
	}
	typeCounts, err := s.reportRepo.TypeCounts(userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load type counts: %w", err)
	}

	byStatus := map[models.DailyLogStatus]int64{
		models.DailyLogStatusPending:    0,
		models.DailyLogStatusInProgress: 0,
		models.DailyLogStatusCompleted:  0,
		models.DailyLogStatusFailed:     0,
		models.DailyLogStatusSkipped:    0,
	}
	for status, count := range statusCounts {
		if _, ok := byStatus[status]; ok {
			byStatus[status] = count
		}
	}

	byType := map[models.SessionItemType]int64{
		models.SessionItemTypeTask:  0,
		models.SessionItemTypeTimer: 0,
	}
	for itemType, count := range typeCounts {
		if _, ok := byType[itemType]; ok {
			byType[itemType] = count
		}
	}

	return &StatusBreakdown{ByStatus: byStatus, ByType: byType}, nil
}

func (s *ReportService) getTimeInsights(userID, date string) (*TimeInsights, error) {
	startTimes, err := s.reportRepo.CompletedStartTimes(userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load completed start times: %w", err)
	}

	periodCounts := map[utils.TimePeriod]int{}
	for _, t := range startTimes {
		periodCounts[utils.GetTimePeriod(t)]++
	}

	var best *utils.TimePeriod
	bestCount := 0
	for _, period := range []utils.TimePeriod{utils.PeriodMorning, utils.PeriodAfternoon, utils.PeriodEvening, utils.PeriodNight} {
		if count := periodCounts[period]; count > bestCount {
			bestCount = count
			p := period
			best = &p
		}
	}

	insights := &TimeInsights{MostProductiveTime: best}
	if best != nil {
		label := utils.PeriodLabels[*best]
		insights.MostProductiveTimeLabel = &label
	}

	longest, err := s.reportRepo.Longest(userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load longest activity: %w", err)
	}
	if longest != nil {
		insights.LongestActivity = &LongestActivity{
			SessionItemID:   longest.SessionItemID,
			Name:            longest.Name,
			DurationMinutes: longest.DurationMinutes,
		}
	}
	return insights, nil
}

func (s *ReportService) getSocialContext(userID, date string, completionRate int) (*SocialContext, error) {
	rows, err := s.reportRepo.Collaborators(userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load collaborators: %w", err)
	}

	collaborators := make([]CollaboratorSummary, 0, len(rows))
	for _, row := range rows {
		collaborators = append(collaborators, CollaboratorSummary{
			ID:                row.UserID,
			Name:              row.Name,
			Email:             row.Email,
			Picture:           row.Picture,
			CompletedTogether: row.CompletedTogether,
		})
	}

	quote := s.motivationService.GetMessage(completionRate)

	return &SocialContext{
		Collaborators:  collaborators,
		DailyQuote:     quote,
		QuoteColorInfo: colorInfoForRate(completionRate),
	}, nil
}

func ratePercent(completed, total int64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

func colorInfoForRate(percentage int) string {
	switch {
	case percentage == 100:
		return "success"
	case percentage > 0:
		return "info"
	default:
		return "neutral"
	}
}
