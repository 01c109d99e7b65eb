package models

import "time"

// Characteristic identifies a value published to the accessory registry.
type Characteristic string

const (
	CharAirQuality              Characteristic = "air_quality"
	CharCarbonMonoxideLevel     Characteristic = "carbon_monoxide_level"
	CharCarbonMonoxideDetected  Characteristic = "carbon_monoxide_detected"
	CharCarbonDioxideLevel      Characteristic = "carbon_dioxide_level"
	CharCarbonDioxideDetected   Characteristic = "carbon_dioxide_detected"
	CharNitrogenDioxideDensity  Characteristic = "nitrogen_dioxide_density"
	CharOzoneDensity            Characteristic = "ozone_density"
	CharVOCDensity              Characteristic = "voc_density"
	CharPM25Density             Characteristic = "pm2_5_density"
	CharCurrentTemperature      Characteristic = "current_temperature"
	CharCurrentRelativeHumidity Characteristic = "current_relative_humidity"
)

// AirQuality is the HomeKit air quality ordinal.
type AirQuality int

const (
	AirQualityUnknown   AirQuality = 0
	AirQualityExcellent AirQuality = 1
	AirQualityGood      AirQuality = 2
	AirQualityFair      AirQuality = 3
	AirQualityInferior  AirQuality = 4
	AirQualityPoor      AirQuality = 5
)

func (q AirQuality) String() string {
	switch q {
	case AirQualityExcellent:
		return "EXCELLENT"
	case AirQualityGood:
		return "GOOD"
	case AirQualityFair:
		return "FAIR"
	case AirQualityInferior:
		return "INFERIOR"
	case AirQualityPoor:
		return "POOR"
	default:
		return "UNKNOWN"
	}
}

// CO2 thresholds, exclusive upper bounds in ppm.
const (
	co2ExcellentBelow = 650
	co2GoodBelow      = 800
	co2FairBelow      = 920

	// CO2DetectedAbove is the ppm level above which CO2 is reported as detected.
	CO2DetectedAbove = 1000
)

// AirQualityFromCO2 maps a CO2 concentration onto the air quality ordinal.
func AirQualityFromCO2(ppm float64) AirQuality {
	switch {
	case ppm < co2ExcellentBelow:
		return AirQualityExcellent
	case ppm < co2GoodBelow:
		return AirQualityGood
	case ppm < co2FairBelow:
		return AirQualityFair
	default:
		return AirQualityPoor
	}
}

// Detected renders a boolean detection flag as the 0/1 characteristic value.
func Detected(v bool) float64 {
	if v {
		return 1
	}
	return 0
}

// Characteristics expands a reading into every value published to the registry.
func (r Reading) Characteristics() map[Characteristic]float64 {
	return map[Characteristic]float64{
		CharAirQuality:              float64(AirQualityFromCO2(r.CO2)),
		CharNitrogenDioxideDensity:  r.NO2,
		CharOzoneDensity:            r.Ozone,
		CharVOCDensity:              r.VOC,
		CharPM25Density:             r.Dust,
		CharCarbonMonoxideLevel:     r.CO,
		CharCarbonMonoxideDetected:  Detected(r.CO > 0),
		CharCarbonDioxideLevel:      r.CO2,
		CharCarbonDioxideDetected:   Detected(r.CO2 > CO2DetectedAbove),
		CharCurrentTemperature:      r.Temperature,
		CharCurrentRelativeHumidity: r.Humidity,
	}
}

// AccessoryState is the registry snapshot exposed by the local API.
type AccessoryState struct {
	Name       string                     `json:"name"`
	AirQuality string                     `json:"air_quality"`
	Values     map[Characteristic]float64 `json:"values"`
	UpdatedAt  time.Time                  `json:"updated_at"`
}
