package models

import "time"

// Reading is one snapshot of the first device on the uHoo account.
type Reading struct {
	ID          int64     `json:"id,omitempty"`
	CO          float64   `json:"co"`       // ppm
	CO2         float64   `json:"co2"`      // ppm
	NO2         float64   `json:"no2"`      // ppb
	Ozone       float64   `json:"ozone"`    // ppb
	VOC         float64   `json:"voc"`      // ppb
	Dust        float64   `json:"dust"`     // PM2.5, µg/m³
	Temperature float64   `json:"temp"`     // °C
	Humidity    float64   `json:"humidity"` // %RH
	ObservedAt  time.Time `json:"observed_at"`
}
