package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"uhoo_bridge/internal/models"
	"uhoo_bridge/internal/repository"
)

var (
	ErrInvalidTimeRange = errors.New("invalid time range: from must be <= to")
	ErrUnknownEventType = errors.New("unknown event type")
)

var knownEventTypes = map[string]struct{}{
	models.EventLogin:            {},
	models.EventLoginFailed:      {},
	models.EventTokenInvalidated: {},
	models.EventFetchError:       {},
	models.EventParseError:       {},
}

type EventLogService struct {
	eventRepo repository.EventRepo
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

// validRange reports whether from <= to; an open bound always passes.
func validRange(from, to time.Time) bool {
	return from.IsZero() || to.IsZero() || !from.After(to)
}

// List returns session events matching the filter, oldest first.
func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.SessionEvent, error) {
	from, to := toUTC(f.From), toUTC(f.To)
	if !validRange(from, to) {
		return nil, ErrInvalidTimeRange
	}
	typ := strings.ToUpper(strings.TrimSpace(f.Type))
	if typ != "" {
		if _, ok := knownEventTypes[typ]; !ok {
			return nil, ErrUnknownEventType
		}
	}
	return s.eventRepo.List(ctx, from, to, typ)
}
