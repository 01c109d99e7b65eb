package uhoo

import (
	"errors"
	"fmt"

	"uhoo_bridge/internal/models"
)

type userInfoResponse struct {
	UID string `json:"uId"`
}

type verifyEmailResponse struct {
	Code string `json:"code"`
}

type loginResponse struct {
	RefreshToken string `json:"refreshToken"`
}

// consumerDataResponse is the body of /v1/allconsumerdata. Only the first device counts.
type consumerDataResponse struct {
	Devices []struct {
		Data *deviceData `json:"data"`
	} `json:"devices"`
}

type metric struct {
	Value *float64 `json:"value"`
}

type deviceData struct {
	CO2      *metric `json:"co2"`
	CO       *metric `json:"co"`
	NO2      *metric `json:"no2"`
	Ozone    *metric `json:"ozone"`
	VOC      *metric `json:"voc"`
	Dust     *metric `json:"dust"`
	Temp     *metric `json:"temp"`
	Humidity *metric `json:"humidity"`
}

var errNoDevices = errors.New("no devices in response")

// toReading converts the first device into a reading. Any missing metric fails the whole
// conversion so a reading is never built from partial data.
func (r consumerDataResponse) toReading() (models.Reading, error) {
	if len(r.Devices) == 0 || r.Devices[0].Data == nil {
		return models.Reading{}, errNoDevices
	}
	d := r.Devices[0].Data

	var (
		out     models.Reading
		missing []string
	)
	for _, f := range []struct {
		name string
		m    *metric
		dst  *float64
	}{
		{"co2", d.CO2, &out.CO2},
		{"co", d.CO, &out.CO},
		{"no2", d.NO2, &out.NO2},
		{"ozone", d.Ozone, &out.Ozone},
		{"voc", d.VOC, &out.VOC},
		{"dust", d.Dust, &out.Dust},
		{"temp", d.Temp, &out.Temperature},
		{"humidity", d.Humidity, &out.Humidity},
	} {
		if f.m == nil || f.m.Value == nil {
			missing = append(missing, f.name)
			continue
		}
		*f.dst = *f.m.Value
	}
	if len(missing) > 0 {
		return models.Reading{}, fmt.Errorf("missing metrics %v", missing)
	}
	return out, nil
}
