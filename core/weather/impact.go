// Package weather turns weather observations into driving impact summaries.
//
// Rules are evaluated in a fixed order. Each triggered rule lowers the safety
// score and appends a recommendation. The speed and fuel fields are replaced,
// not combined, by later rules, so the last applicable rule wins.
package weather

import (
	"fmt"
	"math"
	"strings"

	"github.com/kilianp07/adaptivelog/core/model"
)

const (
	// SafetyFloor is the lowest safety score ever reported.
	SafetyFloor = 50

	FreezingBelow    = 0.0    // °C
	HotAbove         = 30.0   // °C
	HighWindAbove    = 20.0   // wind speed units
	LowVisibilityLow = 5000.0 // meters
)

const (
	RecIcy        = "Icy conditions - use winter tires"
	RecHot        = "Hot weather - check engine temperature"
	RecWetRoads   = "Wet roads - increase following distance"
	RecSnow       = "Snowy conditions - use chains if required"
	RecHighWind   = "High winds - secure loads properly"
	RecVisibility = "Reduced visibility - use caution"
)

type impactBuilder struct {
	safety float64
	impact model.WeatherImpact
}

func (b *impactBuilder) penalize(points float64, rec string) {
	b.safety -= points
	b.impact.Recommendations = append(b.impact.Recommendations, rec)
}

func (b *impactBuilder) setSpeed(pct float64) {
	b.impact.SpeedReductionPct = pct
	b.impact.SpeedReduction = formatPercent(pct)
}

func (b *impactBuilder) setFuel(pct float64) {
	b.impact.FuelEfficiencyReductionPct = pct
	b.impact.FuelEfficiency = formatPercent(pct) + " reduction"
}

// ComputeImpact derives the impact of obs. It is deterministic.
func ComputeImpact(obs model.WeatherObservation) model.WeatherImpact {
	b := &impactBuilder{safety: 100, impact: model.WeatherImpact{Recommendations: []string{}}}
	b.setSpeed(0)
	b.setFuel(0)

	if obs.Temperature < FreezingBelow {
		b.penalize(20, RecIcy)
		b.setSpeed(15)
		b.setFuel(10)
	} else if obs.Temperature > HotAbove {
		b.penalize(10, RecHot)
		b.setFuel(5)
	}

	if ConditionsMention(obs.Conditions, "rain") {
		b.penalize(15, RecWetRoads)
		b.setSpeed(10)
	} else if ConditionsMention(obs.Conditions, "snow") {
		b.penalize(25, RecSnow)
		b.setSpeed(20)
	}

	if obs.WindSpeed > HighWindAbove {
		b.penalize(10, RecHighWind)
	}

	if obs.Visibility < LowVisibilityLow {
		b.penalize(15, RecVisibility)
		b.setSpeed(15)
	}

	b.impact.SafetyScore = math.Max(SafetyFloor, b.safety)
	return b.impact
}

// Report bundles obs with its computed impact.
func Report(obs model.WeatherObservation) model.WeatherReport {
	return model.WeatherReport{WeatherObservation: obs, Impact: ComputeImpact(obs)}
}

// ConditionsMention reports whether the free-text conditions contain keyword,
// ignoring case.
func ConditionsMention(conditions, keyword string) bool {
	return strings.Contains(strings.ToLower(conditions), strings.ToLower(keyword))
}

func formatPercent(pct float64) string {
	return fmt.Sprintf("%g%%", pct)
}
