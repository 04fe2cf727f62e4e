package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/adaptivelog/core/model"
	"github.com/kilianp07/adaptivelog/core/signals"
	"github.com/kilianp07/adaptivelog/core/weather"
)

var morning = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func newTestEngine(hours, detour int, at time.Time) *Engine {
	return NewEngine(signals.FixedTelemetry{Hours: hours, Detour: detour}, signals.NewManualClock(at))
}

func peterbilt() model.Truck {
	return model.Truck{
		ID:               "7821",
		Name:             "Peterbilt 579",
		Capacity:         48000,
		CurrentLoad:      42000,
		Status:           model.StatusEnRoute,
		Location:         model.Coordinates{Lat: 41.8781, Lng: -87.6298},
		FuelEfficiency:   6.5,
		MaintenanceScore: 92,
		CurrentRoute:     &model.Route{Start: "Dallas, TX", End: "Chicago, IL", Distance: 967},
	}
}

func impactOf(obs model.WeatherObservation) *model.WeatherImpact {
	imp := weather.ComputeImpact(obs)
	return &imp
}

func TestLoadFeasibilityTiers(t *testing.T) {
	e := newTestEngine(6, 90, morning)
	cases := []struct {
		load  float64
		tier  model.FeasibilityTier
		score int
	}{
		{0, model.FeasibilityHigh, 100},
		{85, model.FeasibilityHigh, 100},
		{85.01, model.FeasibilityMedium, 75},
		{95, model.FeasibilityMedium, 75},
		{95.5, model.FeasibilityLow, 60},
		{100, model.FeasibilityLow, 60},
		{100.1, model.FeasibilityInfeasible, 0},
		{150, model.FeasibilityInfeasible, 0},
	}
	for _, c := range cases {
		tr := model.Truck{Capacity: 100, CurrentLoad: c.load}
		got := e.LoadFeasibility(tr)
		assert.Equal(t, c.tier, got.Feasibility, "load %v", c.load)
		assert.Equal(t, c.score, got.Score, "load %v", c.load)
		assert.InDelta(t, c.load, got.Utilization, 1e-9)
	}
}

func TestLoadFeasibilityScenario(t *testing.T) {
	got := newTestEngine(6, 90, morning).LoadFeasibility(peterbilt())
	assert.Equal(t, 87.5, got.Utilization)
	assert.Equal(t, model.FeasibilityMedium, got.Feasibility)
	assert.Equal(t, 75, got.Score)
}

func TestETA(t *testing.T) {
	e := newTestEngine(6, 90, morning)
	tr := peterbilt()

	t.Run("no inputs", func(t *testing.T) {
		eta := e.ETA(tr, nil, nil)
		assert.Equal(t, "14h 53m", eta.Base)
		assert.Equal(t, "±35min", eta.Confidence)
		assert.Equal(t, "65.0", eta.AdjustedSpeed)
		assert.Equal(t, 35, eta.ConfidenceMinutes)
	})

	t.Run("traffic only", func(t *testing.T) {
		eta := e.ETA(tr, &model.TrafficObservation{CongestionLevel: 20}, nil)
		assert.Equal(t, "18h 36m", eta.Base)
		assert.Equal(t, "±25min", eta.Confidence)
		assert.Equal(t, "52.0", eta.AdjustedSpeed)
	})

	t.Run("traffic and weather", func(t *testing.T) {
		imp := impactOf(model.WeatherObservation{Temperature: 20, Conditions: "Light Rain", Visibility: 10000})
		eta := e.ETA(tr, &model.TrafficObservation{CongestionLevel: 20}, imp)
		assert.Equal(t, "20h 40m", eta.Base)
		assert.Equal(t, "±15min", eta.Confidence)
		assert.Equal(t, "46.8", eta.AdjustedSpeed)
		assert.InDelta(t, 20.6624, eta.Hours, 1e-4)
	})

	t.Run("minutes round without carrying into hours", func(t *testing.T) {
		short := tr.Clone()
		short.CurrentRoute.Distance = NominalSpeed * 2.999
		eta := e.ETA(short, nil, nil)
		assert.Equal(t, "2h 60m", eta.Base)
	})

	t.Run("gridlock is not applicable", func(t *testing.T) {
		eta := e.ETA(tr, &model.TrafficObservation{CongestionLevel: 100}, nil)
		assert.False(t, eta.Applicable())
	})
}

func TestETANoRouteIsNotApplicable(t *testing.T) {
	e := newTestEngine(6, 90, morning)
	tr := peterbilt()
	tr.CurrentRoute = nil
	imp := impactOf(model.WeatherObservation{Conditions: "Snow", Visibility: 100})
	for _, traffic := range []*model.TrafficObservation{nil, {CongestionLevel: 40}} {
		for _, w := range []*model.WeatherImpact{nil, imp} {
			eta := e.ETA(tr, traffic, w)
			assert.False(t, eta.Applicable())
			assert.Equal(t, model.NotApplicable, eta.Base)
		}
	}
}

func TestFuelCost(t *testing.T) {
	e := newTestEngine(6, 90, morning)
	tr := peterbilt()

	assert.InDelta(t, 659.29, e.FuelCost(tr, nil), 0.01)

	cold := impactOf(model.WeatherObservation{Temperature: -3, Visibility: 10000})
	assert.InDelta(t, 732.55, e.FuelCost(tr, cold), 0.01)

	clearSky := impactOf(model.WeatherObservation{Temperature: 20, Visibility: 10000})
	assert.InDelta(t, 659.29, e.FuelCost(tr, clearSky), 0.01)

	empty := tr.Clone()
	empty.CurrentLoad = 0
	assert.InDelta(t, 967/6.5*FuelPrice, e.FuelCost(empty, nil), 1e-9)
}

func TestFuelCostNoRouteIsZero(t *testing.T) {
	e := newTestEngine(6, 90, morning)
	tr := peterbilt()
	tr.CurrentRoute = nil
	assert.Zero(t, e.FuelCost(tr, nil))
	assert.Zero(t, e.FuelCost(tr, impactOf(model.WeatherObservation{Temperature: -10})))
}

func TestPenaltyRisk(t *testing.T) {
	rush := time.Date(2026, 5, 4, 17, 30, 0, 0, time.UTC)
	evening := time.Date(2026, 5, 4, 20, 0, 0, 0, time.UTC)
	bad := &model.WeatherImpact{SafetyScore: 65}
	good := &model.WeatherImpact{SafetyScore: 100}
	late := &model.TrafficObservation{DelayMinutes: 45}
	onTime := &model.TrafficObservation{DelayMinutes: 30}

	cases := []struct {
		name    string
		at      time.Time
		traffic *model.TrafficObservation
		impact  *model.WeatherImpact
		want    model.PenaltyRisk
	}{
		{"nothing", morning, nil, nil, model.PenaltyRisk{Level: model.RiskLow}},
		{"delay and weather", morning, late, bad, model.PenaltyRisk{Level: model.RiskHigh, Amount: 1200}},
		{"delay in rush hour", rush, late, good, model.PenaltyRisk{Level: model.RiskMedium, Amount: 450}},
		{"all three", rush, late, bad, model.PenaltyRisk{Level: model.RiskHigh, Amount: 1200}},
		{"weather in rush hour", rush, onTime, bad, model.PenaltyRisk{Level: model.RiskMedium, Amount: 450}},
		{"weather only", morning, nil, bad, model.PenaltyRisk{Level: model.RiskLow}},
		{"delay of 30 is not late", morning, onTime, good, model.PenaltyRisk{Level: model.RiskLow}},
		{"delay only", morning, late, nil, model.PenaltyRisk{Level: model.RiskMedium, Amount: 450}},
		{"8pm is after rush hour", evening, late, nil, model.PenaltyRisk{Level: model.RiskMedium, Amount: 450}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := newTestEngine(6, 90, c.at)
			assert.Equal(t, c.want, e.PenaltyRisk(peterbilt(), c.traffic, c.impact))
		})
	}
}

func TestPenaltyRiskRushHourBounds(t *testing.T) {
	tr := peterbilt()
	late := &model.TrafficObservation{DelayMinutes: 60}
	bad := &model.WeatherImpact{SafetyScore: 50}
	for hour := 0; hour < 24; hour++ {
		e := newTestEngine(6, 90, time.Date(2026, 5, 4, hour, 0, 0, 0, time.UTC))
		// 50 for the delay plus 20 in rush hour never crosses the high band.
		assert.Equal(t, model.RiskMedium, e.PenaltyRisk(tr, late, nil).Level, "hour %d", hour)
		withWeather := e.PenaltyRisk(tr, nil, bad)
		if hour >= 16 && hour <= 19 {
			assert.Equal(t, model.RiskMedium, withWeather.Level, "hour %d", hour)
		} else {
			assert.Equal(t, model.RiskLow, withWeather.Level, "hour %d", hour)
		}
	}
}

func TestPenaltyRiskOnlyEnRoute(t *testing.T) {
	e := newTestEngine(6, 90, time.Date(2026, 5, 4, 18, 0, 0, 0, time.UTC))
	late := &model.TrafficObservation{DelayMinutes: 120}
	bad := &model.WeatherImpact{SafetyScore: 50}
	for _, st := range []model.TruckStatus{model.StatusLoading, model.StatusAvailable} {
		tr := peterbilt()
		tr.Status = st
		assert.Equal(t, model.PenaltyRisk{Level: model.RiskLow, Amount: 0}, e.PenaltyRisk(tr, late, bad), st)
	}
}

func TestSafetyScoreBreakdown(t *testing.T) {
	e := newTestEngine(10, 90, morning)
	imp := impactOf(model.WeatherObservation{Temperature: 20, Conditions: "Rain", Visibility: 10000})
	got := e.SafetyScore(peterbilt(), &model.TrafficObservation{CongestionLevel: 60}, imp)

	assert.Equal(t, 70, got.Score)
	assert.Equal(t, "Fair", got.Rating)
	require.Len(t, got.Factors, 4)
	assert.Equal(t, []string{FactorWeather, FactorMaintenance, FactorTraffic, FactorFatigue},
		[]string{got.Factors[0].Factor, got.Factors[1].Factor, got.Factors[2].Factor, got.Factors[3].Factor})
	assert.Equal(t, 85.0, got.Factors[0].Impact)
	assert.Equal(t, []string{weather.RecWetRoads}, got.Factors[0].Details)
	assert.Equal(t, 92.0, got.Factors[1].Impact)
	assert.Equal(t, 70.0, got.Factors[2].Impact)
	assert.Equal(t, []string{"60% congestion level"}, got.Factors[2].Details)
	assert.Equal(t, 80.0, got.Factors[3].Impact)
	assert.Equal(t, []string{"Driver has been on duty for 10 hours"}, got.Factors[3].Details)
}

func TestSafetyScoreConditionalFactors(t *testing.T) {
	e := newTestEngine(8, 90, morning)
	got := e.SafetyScore(peterbilt(), &model.TrafficObservation{CongestionLevel: 50}, nil)
	require.Len(t, got.Factors, 1)
	assert.Equal(t, FactorMaintenance, got.Factors[0].Factor)
	assert.Equal(t, 92, got.Score)
	assert.Equal(t, "Excellent", got.Rating)
}

func TestSafetyScoreFatigueFloor(t *testing.T) {
	e := newTestEngine(14, 90, morning)
	tr := peterbilt()
	tr.MaintenanceScore = 100
	got := e.SafetyScore(tr, nil, nil)
	assert.Equal(t, 50, got.Score)
	assert.Equal(t, "Poor", got.Rating)
}

func TestSafetyScoreNeverAbove100(t *testing.T) {
	for hours := signals.MinDriverHours; hours <= signals.MaxDriverHours; hours++ {
		e := newTestEngine(hours, 90, morning)
		tr := peterbilt()
		tr.MaintenanceScore = 100
		got := e.SafetyScore(tr, &model.TrafficObservation{CongestionLevel: 10}, &model.WeatherImpact{SafetyScore: 100})
		assert.LessOrEqual(t, got.Score, 100)
	}
}

func TestSafetyScoreRoundsAndRatesUnrounded(t *testing.T) {
	e := newTestEngine(6, 90, morning)
	tr := peterbilt()
	tr.MaintenanceScore = 89.6
	got := e.SafetyScore(tr, nil, nil)
	assert.Equal(t, 90, got.Score)
	assert.Equal(t, "Good", got.Rating)
}

func TestEcoScore(t *testing.T) {
	rain := &model.WeatherObservation{Conditions: "Light RAIN"}
	sunny := &model.WeatherObservation{Conditions: "Sunny"}

	t.Run("peterbilt in rain", func(t *testing.T) {
		got := newTestEngine(6, 85, morning).EcoScore(peterbilt(), rain)
		assert.Equal(t, 80, got.Score)
		assert.Equal(t, "Good", got.Rating)
		assert.Empty(t, got.Improvements)
	})

	t.Run("efficient empty truck without route", func(t *testing.T) {
		tr := model.Truck{Capacity: 45000, FuelEfficiency: 7.8}
		got := newTestEngine(6, 70, morning).EcoScore(tr, sunny)
		assert.Equal(t, 95, got.Score)
		assert.Equal(t, "Excellent", got.Rating)
		assert.Equal(t, []string{SuggestCombineLoads}, got.Improvements)
	})

	t.Run("everything wrong", func(t *testing.T) {
		tr := peterbilt()
		tr.FuelEfficiency = 5
		tr.CurrentLoad = 14400
		got := newTestEngine(6, 75, morning).EcoScore(tr, rain)
		assert.Equal(t, 60, got.Score)
		assert.Equal(t, "Needs Improvement", got.Rating)
		assert.Equal(t, []string{SuggestUpgradeVehicle, SuggestCombineLoads, SuggestOptimizeRoute}, got.Improvements)
	})

	t.Run("clamped at 100", func(t *testing.T) {
		tr := model.Truck{Capacity: 100, CurrentLoad: 95, FuelEfficiency: 9}
		got := newTestEngine(6, 70, morning).EcoScore(tr, nil)
		assert.Equal(t, 100, got.Score)
	})

	t.Run("efficiency between 6 and 7 is neutral", func(t *testing.T) {
		tr := model.Truck{Capacity: 100, CurrentLoad: 60, FuelEfficiency: 7}
		got := newTestEngine(6, 70, morning).EcoScore(tr, nil)
		assert.Equal(t, 100, got.Score)
		assert.Empty(t, got.Improvements)
	})
}

func TestEcoScoreAlwaysClamped(t *testing.T) {
	rain := &model.WeatherObservation{Conditions: "rain"}
	for _, eff := range []float64{3, 6.5, 9} {
		for _, load := range []float64{0, 50, 95, 130} {
			for _, detour := range []int{signals.MinDetourEfficiency, signals.MaxDetourEfficiency} {
				tr := peterbilt()
				tr.FuelEfficiency = eff
				tr.Capacity = 100
				tr.CurrentLoad = load
				got := newTestEngine(6, detour, morning).EcoScore(tr, rain)
				assert.GreaterOrEqual(t, got.Score, 50)
				assert.LessOrEqual(t, got.Score, 100)
			}
		}
	}
}

func TestAnalyze(t *testing.T) {
	e := newTestEngine(6, 90, morning)
	report := weather.Report(model.WeatherObservation{Location: "Chicago", Temperature: 20, Conditions: "Cloudy", Visibility: 10000})
	traffic := &model.TrafficObservation{CongestionLevel: 20, DelayMinutes: 10}

	got := e.Analyze(peterbilt(), traffic, &report)
	assert.Equal(t, model.FeasibilityMedium, got.LoadFeasibility.Feasibility)
	assert.Equal(t, "18h 36m", got.ETA.Base)
	assert.Equal(t, "±15min", got.ETA.Confidence)
	assert.InDelta(t, 659.29, got.FuelCost, 0.01)
	assert.Equal(t, model.RiskLow, got.PenaltyRisk.Level)
	assert.Equal(t, 92, got.SafetyScore.Score)
	assert.Equal(t, 90, got.EcoScore.Score)

	bare := e.Analyze(peterbilt(), nil, nil)
	assert.Equal(t, "±35min", bare.ETA.Confidence)
	require.Len(t, bare.SafetyScore.Factors, 1)
}

func TestNewEngineDefaults(t *testing.T) {
	e := NewEngine(nil, nil)
	require.NotNil(t, e.telemetry)
	require.NotNil(t, e.clock)
	got := e.SafetyScore(peterbilt(), nil, nil)
	assert.LessOrEqual(t, got.Score, 92)
}

func TestRatings(t *testing.T) {
	assert.Equal(t, "Excellent", SafetyRating(90))
	assert.Equal(t, "Good", SafetyRating(89.99))
	assert.Equal(t, "Fair", SafetyRating(70))
	assert.Equal(t, "Poor", SafetyRating(69.9))
	assert.Equal(t, "Good", EcoRating(80))
	assert.Equal(t, "Average", EcoRating(79))
	assert.Equal(t, "Needs Improvement", EcoRating(50))
}
