package analytics

import (
	"fmt"
	"math"
	"strconv"

	"github.com/kilianp07/adaptivelog/core/model"
	"github.com/kilianp07/adaptivelog/core/signals"
	"github.com/kilianp07/adaptivelog/core/weather"
)

// Engine constants. They are part of the scoring contract, not configuration.
const (
	NominalSpeed      = 65.0 // mph
	FuelPrice         = 3.85 // currency per gallon
	LoadPenaltyFactor = 0.15

	BaseConfidenceMinutes    = 15
	MissingInputConfidenceUp = 10

	RushHourStart = 16
	RushHourEnd   = 19
)

// Safety factor labels, in breakdown order.
const (
	FactorWeather     = "Weather Conditions"
	FactorMaintenance = "Vehicle Maintenance"
	FactorTraffic     = "Traffic Congestion"
	FactorFatigue     = "Driver Fatigue"
)

// Eco improvement suggestions.
const (
	SuggestUpgradeVehicle = "Consider upgrading to more fuel-efficient vehicle"
	SuggestCombineLoads   = "Low load efficiency - consider combining loads"
	SuggestOptimizeRoute  = "Route could be optimized for fuel efficiency"
)

// Engine combines a truck with weather and traffic into operational metrics.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	telemetry signals.Telemetry
	clock     signals.Clock
}

// NewEngine returns an Engine reading simulated telemetry from tel and the
// time of day from clock. Nil arguments fall back to randomly sampled
// telemetry and the system clock.
func NewEngine(tel signals.Telemetry, clock signals.Clock) *Engine {
	if tel == nil {
		tel = signals.NewSampledTelemetry(signals.NewRandSampler(0))
	}
	if clock == nil {
		clock = signals.SystemClock{}
	}
	return &Engine{telemetry: tel, clock: clock}
}

// Analyze computes every metric for t. traffic and report may be nil.
func (e *Engine) Analyze(t model.Truck, traffic *model.TrafficObservation, report *model.WeatherReport) model.Analytics {
	var (
		impact *model.WeatherImpact
		obs    *model.WeatherObservation
	)
	if report != nil {
		impact = &report.Impact
		obs = &report.WeatherObservation
	}
	return model.Analytics{
		LoadFeasibility: e.LoadFeasibility(t),
		ETA:             e.ETA(t, traffic, impact),
		FuelCost:        e.FuelCost(t, impact),
		PenaltyRisk:     e.PenaltyRisk(t, traffic, impact),
		SafetyScore:     e.SafetyScore(t, traffic, impact),
		EcoScore:        e.EcoScore(t, obs),
	}
}

// LoadFeasibility grades the utilization of t. Tier boundaries are exclusive
// on the lower side.
func (e *Engine) LoadFeasibility(t model.Truck) model.LoadFeasibility {
	u := t.Utilization()
	res := model.LoadFeasibility{Utilization: u, Feasibility: model.FeasibilityHigh, Score: 100}
	switch {
	case u > 100:
		res.Feasibility, res.Score = model.FeasibilityInfeasible, 0
	case u > 95:
		res.Feasibility, res.Score = model.FeasibilityLow, 60
	case u > 85:
		res.Feasibility, res.Score = model.FeasibilityMedium, 75
	}
	return res
}

// ETA estimates the remaining driving time for the current route.
func (e *Engine) ETA(t model.Truck, traffic *model.TrafficObservation, impact *model.WeatherImpact) model.ETA {
	if !t.HasRoute() {
		return model.NotApplicableETA()
	}
	speed := NominalSpeed
	if traffic != nil {
		speed *= 1 - traffic.CongestionLevel/100
	}
	if impact != nil {
		speed *= 1 - impact.SpeedReductionPct/100
	}
	if speed <= 0 {
		return model.NotApplicableETA()
	}

	hours := t.CurrentRoute.Distance / speed
	h := math.Floor(hours)
	// Minutes are rounded independently of the hour, so "2h 60m" is a valid
	// result.
	m := math.Round((hours - h) * 60)

	confidence := BaseConfidenceMinutes
	if traffic == nil {
		confidence += MissingInputConfidenceUp
	}
	if impact == nil {
		confidence += MissingInputConfidenceUp
	}

	return model.ETA{
		Base:              fmt.Sprintf("%dh %dm", int(h), int(m)),
		Confidence:        fmt.Sprintf("±%dmin", confidence),
		AdjustedSpeed:     strconv.FormatFloat(speed, 'f', 1, 64),
		Hours:             hours,
		ConfidenceMinutes: confidence,
	}
}

// FuelCost prices the fuel needed for the current route. Heavier loads and
// adverse weather degrade fuel efficiency.
func (e *Engine) FuelCost(t model.Truck, impact *model.WeatherImpact) float64 {
	if !t.HasRoute() {
		return 0
	}
	eff := t.FuelEfficiency
	if impact != nil {
		eff *= 1 - impact.FuelEfficiencyReductionPct/100
	}
	eff *= 1 - t.LoadRatio()*LoadPenaltyFactor
	if eff <= 0 {
		return 0
	}
	gallons := t.CurrentRoute.Distance / eff
	return gallons * FuelPrice
}

// PenaltyRisk estimates exposure to late delivery penalties. Only trucks en
// route carry risk.
func (e *Engine) PenaltyRisk(t model.Truck, traffic *model.TrafficObservation, impact *model.WeatherImpact) model.PenaltyRisk {
	if t.Status != model.StatusEnRoute {
		return model.PenaltyRisk{Level: model.RiskLow, Amount: 0}
	}
	risk := 0
	if traffic != nil && traffic.DelayMinutes > 30 {
		risk += 50
	}
	if impact != nil && impact.SafetyScore < 70 {
		risk += 30
	}
	if hour := e.clock.Now().Hour(); hour >= RushHourStart && hour <= RushHourEnd {
		risk += 20
	}
	switch {
	case risk > 70:
		return model.PenaltyRisk{Level: model.RiskHigh, Amount: 1200}
	case risk > 40:
		return model.PenaltyRisk{Level: model.RiskMedium, Amount: 450}
	default:
		return model.PenaltyRisk{Level: model.RiskLow, Amount: 0}
	}
}

// SafetyScore is the weakest of the contributing factors. The breakdown is
// ordered weather, maintenance, traffic, fatigue; traffic and fatigue only
// appear when they apply.
func (e *Engine) SafetyScore(t model.Truck, traffic *model.TrafficObservation, impact *model.WeatherImpact) model.SafetyScore {
	score := 100.0
	factors := []model.SafetyFactor{}

	if impact != nil {
		score = math.Min(score, impact.SafetyScore)
		details := append([]string{}, impact.Recommendations...)
		factors = append(factors, model.SafetyFactor{Factor: FactorWeather, Impact: impact.SafetyScore, Details: details})
	}

	score = math.Min(score, t.MaintenanceScore)
	factors = append(factors, model.SafetyFactor{
		Factor:  FactorMaintenance,
		Impact:  t.MaintenanceScore,
		Details: []string{"Regular maintenance up to date"},
	})

	if traffic != nil && traffic.CongestionLevel > 50 {
		ti := 100 - traffic.CongestionLevel/2
		score = math.Min(score, ti)
		factors = append(factors, model.SafetyFactor{
			Factor:  FactorTraffic,
			Impact:  ti,
			Details: []string{fmt.Sprintf("%g%% congestion level", traffic.CongestionLevel)},
		})
	}

	if hours := e.telemetry.DriverHours(t); hours > 8 {
		fatigue := math.Max(50, 100-float64(hours-8)*10)
		score = math.Min(score, fatigue)
		factors = append(factors, model.SafetyFactor{
			Factor:  FactorFatigue,
			Impact:  fatigue,
			Details: []string{fmt.Sprintf("Driver has been on duty for %d hours", hours)},
		})
	}

	return model.SafetyScore{Score: int(math.Round(score)), Rating: SafetyRating(score), Factors: factors}
}

// EcoScore rates fuel efficiency, load usage, route directness and weather.
// The result is clamped to [50,100].
func (e *Engine) EcoScore(t model.Truck, obs *model.WeatherObservation) model.EcoScore {
	score := 100.0
	improvements := []string{}

	switch {
	case t.FuelEfficiency < 6:
		score -= 20
		improvements = append(improvements, SuggestUpgradeVehicle)
	case t.FuelEfficiency > 7:
		score += 10
	}

	switch ratio := t.LoadRatio(); {
	case ratio < 0.5:
		score -= 15
		improvements = append(improvements, SuggestCombineLoads)
	case ratio > 0.9:
		score += 5
	}

	if t.HasRoute() {
		detour := float64(e.telemetry.DetourEfficiency(t))
		score = math.Min(score, detour)
		if detour < 80 {
			improvements = append(improvements, SuggestOptimizeRoute)
		}
	}

	if obs != nil && weather.ConditionsMention(obs.Conditions, "rain") {
		score -= 5
	}

	score = math.Max(50, math.Min(100, score))
	return model.EcoScore{Score: int(math.Round(score)), Rating: EcoRating(score), Improvements: improvements}
}
