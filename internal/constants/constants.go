package constants

// ContextKeyUserID is the gin context / session key holding the
// authenticated user's ID.
const ContextKeyUserID = "user_id"

// SessionCookieName is the name of the session cookie.
const SessionCookieName = "habit_session"

// MinPasswordLength is the minimum accepted password length at signup.
const MinPasswordLength = 8

// DateFormat is the wire format for calendar dates (YYYY-MM-DD).
const DateFormat = "2006-01-02"

// TimeFormat is the wire format for session item start times (HH:MM).
const TimeFormat = "15:04"

// Pagination limits
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
