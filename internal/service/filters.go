package service

import "time"

// LogFilter selects session events by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "LOGIN", "LOGIN_FAILED", "TOKEN_INVALIDATED", "FETCH_ERROR", "PARSE_ERROR"
}

// ReadingFilter selects stored readings.
type ReadingFilter struct {
	From  time.Time
	To    time.Time
	Limit int // 0 means repository default
}
