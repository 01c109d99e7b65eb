package registry

import (
	"sync"
	"testing"
	"time"

	"uhoo_bridge/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestAccessory_EmptySnapshot(t *testing.T) {
	a := NewAccessory("Living room")
	st := a.Snapshot()

	assert.Equal(t, "Living room", st.Name)
	assert.Equal(t, "UNKNOWN", st.AirQuality)
	assert.Empty(t, st.Values)
	assert.True(t, st.UpdatedAt.IsZero())
}

func TestAccessory_SetValueAndSnapshotCopy(t *testing.T) {
	fixed := time.Date(2025, 3, 1, 10, 0, 0, 0, time.FixedZone("X", 3600))
	a := NewAccessory("uHoo")
	a.now = func() time.Time { return fixed }

	a.SetValue(models.CharAirQuality, float64(models.AirQualityGood))
	a.SetValue(models.CharCarbonDioxideLevel, 700)

	st := a.Snapshot()
	assert.Equal(t, "GOOD", st.AirQuality)
	assert.Equal(t, 700.0, st.Values[models.CharCarbonDioxideLevel])
	assert.Equal(t, fixed.UTC(), st.UpdatedAt)

	st.Values[models.CharCarbonDioxideLevel] = 1
	assert.Equal(t, 700.0, a.Snapshot().Values[models.CharCarbonDioxideLevel], "snapshot must not alias internal state")
}

func TestAccessory_ConcurrentWriters(t *testing.T) {
	a := NewAccessory("uHoo")
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a.SetValue(models.CharCurrentTemperature, float64(i))
			_ = a.Snapshot()
		}(i)
	}
	wg.Wait()
	assert.Len(t, a.Snapshot().Values, 1)
}
