package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"uhoo_bridge/internal/models"
)

func TestEventLogService_List_NormalizesFilter(t *testing.T) {
	repo := &fakeEventRepo{events: []models.SessionEvent{{EventID: "e1", Type: models.EventLogin}}}
	svc := NewEventLogService(repo)

	loc := time.FixedZone("UTC+3", 3*3600)
	from := time.Date(2025, 1, 2, 10, 0, 0, 0, loc)
	to := time.Date(2025, 1, 2, 12, 0, 0, 0, loc)

	got, err := svc.List(context.Background(), LogFilter{From: from, To: to, Type: "  parse_error "})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(got) != 1 || got[0].EventID != "e1" {
		t.Fatalf("unexpected events: %+v", got)
	}
	if repo.gotType != models.EventParseError {
		t.Errorf("type = %q, want %q", repo.gotType, models.EventParseError)
	}
	if repo.gotFrom.Location() != time.UTC || !repo.gotFrom.Equal(from) {
		t.Errorf("from not converted to UTC: %v", repo.gotFrom)
	}
	if repo.gotTo.Location() != time.UTC || !repo.gotTo.Equal(to) {
		t.Errorf("to not converted to UTC: %v", repo.gotTo)
	}
}

func TestEventLogService_List_Errors(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name   string
		filter LogFilter
		want   error
	}{
		{name: "from after to", filter: LogFilter{From: now, To: now.Add(-time.Minute)}, want: ErrInvalidTimeRange},
		{name: "unknown type", filter: LogFilter{Type: "HEAT"}, want: ErrUnknownEventType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeEventRepo{}
			_, err := NewEventLogService(repo).List(context.Background(), tt.filter)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if repo.listCalls != 0 {
				t.Fatalf("repository must not be queried")
			}
		})
	}
}

func TestEventLogService_List_OpenBounds(t *testing.T) {
	repo := &fakeEventRepo{}
	if _, err := NewEventLogService(repo).List(context.Background(), LogFilter{}); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if !repo.gotFrom.IsZero() || !repo.gotTo.IsZero() || repo.gotType != "" {
		t.Fatalf("open filter must pass zero values, got %v %v %q", repo.gotFrom, repo.gotTo, repo.gotType)
	}
}

func TestEventLogService_List_PropagatesRepoError(t *testing.T) {
	repo := &fakeEventRepo{err: errors.New("db down")}
	if _, err := NewEventLogService(repo).List(context.Background(), LogFilter{}); err == nil || err.Error() != "db down" {
		t.Fatalf("expected db down, got %v", err)
	}
}
