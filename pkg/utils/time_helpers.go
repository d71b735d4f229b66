package utils

import "time"

// DateOnly truncates a timestamp to midnight in its own location. All
// business-date comparisons (batch send/receive/cancel dates) go through
// this so time-of-day never leaks into date logic.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Today returns the server-local current date at midnight.
func Today() time.Time {
	return DateOnly(time.Now())
}
