package utils

import (
	"fmt"
	"time"

	"github.com/habitloop/habit-tracking-api/internal/constants"
)

// DayNames maps time.Weekday ordinals (Sunday=0) to short labels.
var DayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// ParseCalendarDate parses a YYYY-MM-DD string as a calendar date in loc.
// Parsing the string as an ISO instant would shift the day near midnight
// in non-UTC timezones, so the components are assembled explicitly.
func ParseCalendarDate(date string, loc *time.Location) (time.Time, error) {
	var year, month, day int
	if _, err := fmt.Sscanf(date, "%4d-%2d-%2d", &year, &month, &day); err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc), nil
}

// FormatDate renders a time as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// IsValidDate reports whether date is a well-formed YYYY-MM-DD string.
func IsValidDate(date string) bool {
	_, err := time.Parse(constants.DateFormat, date)
	return err == nil
}

// DayOfWeek returns 0 (Sunday) to 6 (Saturday) for a YYYY-MM-DD date.
func DayOfWeek(date string, loc *time.Location) (int, error) {
	t, err := ParseCalendarDate(date, loc)
	if err != nil {
		return 0, err
	}
	return int(t.Weekday()), nil
}

// WithinSyncWindow reports whether date is today or tomorrow relative to
// now. Log generation is restricted to this window; anything outside it
// degrades to a read.
func WithinSyncWindow(date string, now time.Time) bool {
	today := FormatDate(now)
	tomorrow := FormatDate(now.AddDate(0, 0, 1))
	return date == today || date == tomorrow
}

// DateRange returns the last n dates ending at referenceDate, inclusive,
// in ascending order.
func DateRange(referenceDate string, n int, loc *time.Location) ([]string, error) {
	ref, err := ParseCalendarDate(referenceDate, loc)
	if err != nil {
		return nil, err
	}
	dates := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		dates = append(dates, FormatDate(ref.AddDate(0, 0, -i)))
	}
	return dates, nil
}

// MonthRange returns the first and last dates of referenceDate's month.
func MonthRange(referenceDate string, loc *time.Location) (string, string, error) {
	ref, err := ParseCalendarDate(referenceDate, loc)
	if err != nil {
		return "", "", err
	}
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, -1)
	return FormatDate(start), FormatDate(end), nil
}

// TimePeriod buckets an HH:MM start time into a named day period.
type TimePeriod string

const (
	PeriodMorning   TimePeriod = "morning"
	PeriodAfternoon TimePeriod = "afternoon"
	PeriodEvening   TimePeriod = "evening"
	PeriodNight     TimePeriod = "night"
)

// PeriodLabels maps a period to its display label.
var PeriodLabels = map[TimePeriod]string{
	PeriodMorning:   "Morning (06:00 - 12:00)",
	PeriodAfternoon: "Afternoon (12:00 - 17:00)",
	PeriodEvening:   "Evening (17:00 - 21:00)",
	PeriodNight:     "Night (21:00 - 06:00)",
}

// GetTimePeriod classifies an HH:MM string. Malformed input counts as night.
func GetTimePeriod(startTime string) TimePeriod {
	var hour, minute int
	if _, err := fmt.Sscanf(startTime, "%2d:%2d", &hour, &minute); err != nil {
		return PeriodNight
	}
	switch {
	case hour >= 6 && hour < 12:
		return PeriodMorning
	case hour >= 12 && hour < 17:
		return PeriodAfternoon
	case hour >= 17 && hour < 21:
		return PeriodEvening
	default:
		return PeriodNight
	}
}

// LoadLocation resolves an IANA timezone name, falling back to the
// process-local zone when name is empty or unknown.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Local
	}
	return loc
}
