package models

import "time"

// Session event types.
const (
	EventLogin            = "LOGIN"
	EventLoginFailed      = "LOGIN_FAILED"
	EventTokenInvalidated = "TOKEN_INVALIDATED"
	EventFetchError       = "FETCH_ERROR"
	EventParseError       = "PARSE_ERROR"
)

// SessionEvent is a single entry of the vendor session log.
type SessionEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // LOGIN | LOGIN_FAILED | TOKEN_INVALIDATED | FETCH_ERROR | PARSE_ERROR
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
