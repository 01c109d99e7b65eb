package service

import (
	"context"
	"time"

	"uhoo_bridge/internal/models"
)

// Snapshotter is the read side of the accessory registry.
type Snapshotter interface {
	Snapshot() models.AccessoryState
}

type MonitoringService struct {
	accessory Snapshotter
}

func NewMonitoringService(a Snapshotter) *MonitoringService {
	return &MonitoringService{accessory: a}
}

// GetState returns the values currently published on the accessory. Before the first
// successful reading the air quality is UNKNOWN and the value map is empty.
func (s *MonitoringService) GetState(ctx context.Context) (models.AccessoryState, error) {
	if err := ctx.Err(); err != nil {
		return models.AccessoryState{}, err
	}
	st := s.accessory.Snapshot()
	st.UpdatedAt = toUTC(st.UpdatedAt)
	return st, nil
}

// toUTC normalizes non-zero time to UTC, preserving zero values.
func toUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
