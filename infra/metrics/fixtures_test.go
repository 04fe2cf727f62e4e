package metrics

import (
	"time"

	coremetrics "github.com/kilianp07/adaptivelog/core/metrics"
	"github.com/kilianp07/adaptivelog/core/model"
)

var recordTime = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func sampleRecord() coremetrics.AnalyticsRecord {
	return coremetrics.AnalyticsRecord{
		TruckID: "7821",
		Status:  model.StatusEnRoute,
		Analytics: model.Analytics{
			LoadFeasibility: model.LoadFeasibility{Utilization: 87.5, Feasibility: model.FeasibilityMedium, Score: 75},
			ETA:             model.ETA{Base: "18h 36m", Confidence: "±15min", AdjustedSpeed: "52.0", Hours: 18.5962},
			FuelCost:        659.2938,
			PenaltyRisk:     model.PenaltyRisk{Level: model.RiskHigh, Amount: 1200},
			SafetyScore:     model.SafetyScore{Score: 70, Rating: "Fair"},
			EcoScore:        model.EcoScore{Score: 80, Rating: "Good"},
		},
		WeatherSafety: 85,
		HasTraffic:    true,
		Duration:      20 * time.Millisecond,
		Time:          recordTime,
	}
}
