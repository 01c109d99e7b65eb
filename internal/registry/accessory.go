// Package registry holds the characteristic values published for the air quality accessory.
package registry

import (
	"sync"
	"time"

	"uhoo_bridge/internal/models"
)

// Accessory is an in-memory characteristic table. Writers never read back.
type Accessory struct {
	name string
	now  func() time.Time

	mu        sync.RWMutex
	values    map[models.Characteristic]float64
	updatedAt time.Time
}

// NewAccessory returns an empty accessory with the given display name.
func NewAccessory(name string) *Accessory {
	return &Accessory{
		name:   name,
		now:    time.Now,
		values: make(map[models.Characteristic]float64),
	}
}

// SetValue records the latest value of one characteristic.
func (a *Accessory) SetValue(kind models.Characteristic, value float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.values[kind] = value
	a.updatedAt = a.now().UTC()
}

// Snapshot returns a copy of every published value.
func (a *Accessory) Snapshot() models.AccessoryState {
	a.mu.RLock()
	defer a.mu.RUnlock()

	values := make(map[models.Characteristic]float64, len(a.values))
	for k, v := range a.values {
		values[k] = v
	}
	quality := models.AirQualityUnknown
	if v, ok := a.values[models.CharAirQuality]; ok {
		quality = models.AirQuality(v)
	}
	return models.AccessoryState{
		Name:       a.name,
		AirQuality: quality.String(),
		Values:     values,
		UpdatedAt:  a.updatedAt,
	}
}
