package models

import "testing"

func TestAirQualityFromCO2_Boundaries(t *testing.T) {
	cases := []struct {
		ppm  float64
		want AirQuality
	}{
		{0, AirQualityExcellent},
		{649, AirQualityExcellent},
		{650, AirQualityGood},
		{799, AirQualityGood},
		{800, AirQualityFair},
		{919, AirQualityFair},
		{920, AirQualityPoor},
		{5000, AirQualityPoor},
	}
	for _, tc := range cases {
		if got := AirQualityFromCO2(tc.ppm); got != tc.want {
			t.Errorf("AirQualityFromCO2(%v): want %v, got %v", tc.ppm, tc.want, got)
		}
	}
}

func TestReading_Characteristics(t *testing.T) {
	r := Reading{CO: 0, CO2: 1001, NO2: 3, Ozone: 4, VOC: 5, Dust: 6, Temperature: 21.5, Humidity: 40}
	got := r.Characteristics()

	if len(got) != 11 {
		t.Fatalf("expected 11 characteristics, got %d", len(got))
	}
	if got[CharAirQuality] != float64(AirQualityPoor) {
		t.Errorf("air quality: want %v, got %v", AirQualityPoor, got[CharAirQuality])
	}
	if got[CharCarbonMonoxideDetected] != 0 {
		t.Errorf("CO detected must be 0 for co=0")
	}
	if got[CharCarbonDioxideDetected] != 1 {
		t.Errorf("CO2 detected must be 1 above 1000 ppm")
	}
	if got[CharPM25Density] != 6 || got[CharCurrentTemperature] != 21.5 || got[CharCurrentRelativeHumidity] != 40 {
		t.Errorf("unexpected values: %+v", got)
	}

	r = Reading{CO: 0.5, CO2: 1000}
	got = r.Characteristics()
	if got[CharCarbonMonoxideDetected] != 1 {
		t.Errorf("CO detected must be 1 for co>0")
	}
	if got[CharCarbonDioxideDetected] != 0 {
		t.Errorf("CO2 detected must be 0 at exactly 1000 ppm")
	}
}

func TestAirQuality_String(t *testing.T) {
	if AirQualityGood.String() != "GOOD" || AirQualityUnknown.String() != "UNKNOWN" {
		t.Fatalf("unexpected names: %s %s", AirQualityGood, AirQualityUnknown)
	}
}
