package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseCalendarDate_KeepsLocalDay(t *testing.T) {
	// In a UTC+9 zone, parsing "2025-06-15" as an ISO instant would land
	// on June 14 local time. The calendar parser must not shift the day.
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	parsed, err := ParseCalendarDate("2025-06-15", tokyo)
	require.NoError(t, err)
	require.Equal(t, 2025, parsed.Year())
	require.Equal(t, time.June, parsed.Month())
	require.Equal(t, 15, parsed.Day())
	require.Equal(t, tokyo, parsed.Location())
}

func TestParseCalendarDate_RejectsMalformed(t *testing.T) {
	utc := time.UTC
	for _, input := range []string{"", "not-a-date", "2025-13-01", "2025-00-10", "2025-01-42"} {
		_, err := ParseCalendarDate(input, utc)
		require.Error(t, err, "input %q", input)
	}
}

func TestIsValidDate(t *testing.T) {
	require.True(t, IsValidDate("2025-06-15"))
	require.False(t, IsValidDate("2025-02-30"))
	require.False(t, IsValidDate("15-06-2025"))
	require.False(t, IsValidDate(""))
}

func TestDayOfWeek(t *testing.T) {
	// 2025-06-15 is a Sunday.
	day, err := DayOfWeek("2025-06-15", time.UTC)
	require.NoError(t, err)
	require.Equal(t, 0, day)

	day, err = DayOfWeek("2025-06-21", time.UTC)
	require.NoError(t, err)
	require.Equal(t, 6, day)
}

func TestWithinSyncWindow(t *testing.T) {
	now := time.Date(2025, time.June, 15, 10, 30, 0, 0, time.UTC)

	require.True(t, WithinSyncWindow("2025-06-15", now), "today")
	require.True(t, WithinSyncWindow("2025-06-16", now), "tomorrow")
	require.False(t, WithinSyncWindow("2025-06-14", now), "yesterday")
	require.False(t, WithinSyncWindow("2025-06-17", now), "day after tomorrow")
	require.False(t, WithinSyncWindow("2000-01-01", now), "far past")
}

func TestWithinSyncWindow_MonthBoundary(t *testing.T) {
	now := time.Date(2025, time.June, 30, 23, 0, 0, 0, time.UTC)
	require.True(t, WithinSyncWindow("2025-06-30", now))
	require.True(t, WithinSyncWindow("2025-07-01", now))
	require.False(t, WithinSyncWindow("2025-07-02", now))
}

func TestDateRange(t *testing.T) {
	dates, err := DateRange("2025-06-15", 7, time.UTC)
	require.NoError(t, err)
	require.Equal(t, []string{
		"2025-06-09", "2025-06-10", "2025-06-11", "2025-06-12",
		"2025-06-13", "2025-06-14", "2025-06-15",
	}, dates)
}

func TestMonthRange(t *testing.T) {
	start, end, err := MonthRange("2025-02-10", time.UTC)
	require.NoError(t, err)
	require.Equal(t, "2025-02-01", start)
	require.Equal(t, "2025-02-28", end)
}

func TestGetTimePeriod(t *testing.T) {
	require.Equal(t, PeriodMorning, GetTimePeriod("06:00"))
	require.Equal(t, PeriodMorning, GetTimePeriod("11:59"))
	require.Equal(t, PeriodAfternoon, GetTimePeriod("12:00"))
	require.Equal(t, PeriodEvening, GetTimePeriod("17:30"))
	require.Equal(t, PeriodNight, GetTimePeriod("21:00"))
	require.Equal(t, PeriodNight, GetTimePeriod("03:15"))
	require.Equal(t, PeriodNight, GetTimePeriod("bogus"))
}
