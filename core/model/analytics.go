package model

import (
	"encoding/json"
	"time"
)

// NotApplicable is reported for route dependent metrics of trucks without a route.
const NotApplicable = "N/A"

// FeasibilityTier classifies how safely a load fits the truck.
type FeasibilityTier string

const (
	FeasibilityHigh       FeasibilityTier = "high"
	FeasibilityMedium     FeasibilityTier = "medium"
	FeasibilityLow        FeasibilityTier = "low"
	FeasibilityInfeasible FeasibilityTier = "infeasible"
)

// LoadFeasibility is the load tier derived from utilization.
type LoadFeasibility struct {
	Utilization float64         `json:"utilization"`
	Feasibility FeasibilityTier `json:"feasibility"`
	Score       int             `json:"score"`
}

// ETA is an arrival estimate. The zero Base or NotApplicable marks a truck
// without a usable route; such values marshal as the plain string "N/A".
type ETA struct {
	Base          string `json:"base"`
	Confidence    string `json:"confidence"`
	AdjustedSpeed string `json:"adjustedSpeed"`

	Hours             float64 `json:"-"`
	ConfidenceMinutes int     `json:"-"`
}

// NotApplicableETA is the sentinel returned when no estimate can be made.
func NotApplicableETA() ETA { return ETA{Base: NotApplicable} }

// Applicable reports whether the estimate carries a duration.
func (e ETA) Applicable() bool { return e.Base != "" && e.Base != NotApplicable }

type etaFields ETA

func (e ETA) MarshalJSON() ([]byte, error) {
	if !e.Applicable() {
		return json.Marshal(NotApplicable)
	}
	return json.Marshal(etaFields(e))
}

func (e *ETA) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*e = NotApplicableETA()
		return nil
	}
	var f etaFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*e = ETA(f)
	return nil
}

// RiskLevel grades the exposure to contractual delay penalties.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// PenaltyRisk is the expected penalty tier and amount.
type PenaltyRisk struct {
	Level  RiskLevel `json:"level"`
	Amount float64   `json:"amount"`
}

// SafetyFactor is one contributor to the safety score.
type SafetyFactor struct {
	Factor  string   `json:"factor"`
	Impact  float64  `json:"impact"`
	Details []string `json:"details"`
}

// SafetyScore is the lowest contributing factor with its breakdown.
type SafetyScore struct {
	Score   int            `json:"score"`
	Rating  string         `json:"rating"`
	Factors []SafetyFactor `json:"factors"`
}

// EcoScore rates environmental efficiency.
type EcoScore struct {
	Score        int      `json:"score"`
	Rating       string   `json:"rating"`
	Improvements []string `json:"improvements"`
}

// Analytics groups the derived metrics of one truck.
type Analytics struct {
	LoadFeasibility LoadFeasibility `json:"loadFeasibility"`
	ETA             ETA             `json:"eta"`
	FuelCost        float64         `json:"fuelCost"`
	PenaltyRisk     PenaltyRisk     `json:"penaltyRisk"`
	SafetyScore     SafetyScore     `json:"safetyScore"`
	EcoScore        EcoScore        `json:"ecoScore"`
}

// AnalyticsBundle is a truck snapshot with its analytics and the inputs used.
type AnalyticsBundle struct {
	Truck
	Analytics   Analytics           `json:"analytics"`
	Weather     *WeatherReport      `json:"weather"`
	Traffic     *TrafficObservation `json:"traffic"`
	RequestID   string              `json:"requestId,omitempty"`
	GeneratedAt time.Time           `json:"generatedAt"`
}
