package model

import "time"

// WeatherObservation is a point-in-time weather reading for a named location.
type WeatherObservation struct {
	Location    string    `json:"location"`
	Temperature float64   `json:"temperature"` // °C
	Conditions  string    `json:"conditions"`
	Humidity    float64   `json:"humidity"`
	WindSpeed   float64   `json:"windSpeed"`
	Visibility  float64   `json:"visibility"` // meters
	Timestamp   time.Time `json:"timestamp"`
}

// WeatherImpact summarises how an observation affects safety, speed and fuel.
//
// SpeedReduction and FuelEfficiency keep the display strings ("15%",
// "10% reduction"); the *Pct fields carry the same values as numbers and are
// what the engine computes with.
type WeatherImpact struct {
	SafetyScore                float64  `json:"safetyScore"`
	SpeedReduction             string   `json:"speedReduction"`
	SpeedReductionPct          float64  `json:"speedReductionPct"`
	FuelEfficiency             string   `json:"fuelEfficiency"`
	FuelEfficiencyReductionPct float64  `json:"fuelEfficiencyReductionPct"`
	Recommendations            []string `json:"recommendations"`
}

// WeatherReport is an observation together with its computed impact.
type WeatherReport struct {
	WeatherObservation
	Impact WeatherImpact `json:"impact"`
}
