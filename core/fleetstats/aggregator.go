// Package fleetstats builds the dashboard fleet summary.
//
// The summary has three parts: sampled placeholder KPIs flagged as
// simulated, reference figures from configuration, and figures observed on
// the roster.
package fleetstats

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/adaptivelog/core/model"
	"github.com/kilianp07/adaptivelog/core/signals"
)

// Sampled ranges, inclusive.
const (
	UtilizationMin, UtilizationMax                 = 85, 94
	EmptyMilesReductionMin, EmptyMilesReductionMax = 35, 44
	RevenuePerTripMin, RevenuePerTripMax           = 1150, 1349
	AIRecommendationsMin, AIRecommendationsMax     = 12, 16
)

// DefaultStatic returns the built-in reference figures.
func DefaultStatic() model.StaticFleetKPIs {
	return model.StaticFleetKPIs{
		ActiveTrucks:      14,
		TotalTrucks:       16,
		LoadsToday:        28,
		DelayedDeliveries: 2,
		FuelSavings:       1250,
		CO2Reduction:      8.5,
	}
}

// Aggregator computes FleetStats.
type Aggregator struct {
	sampler signals.Sampler
	clock   signals.Clock
	static  model.StaticFleetKPIs
}

// NewAggregator builds an aggregator. Nil sampler or clock fall back to a
// time seeded sampler and the system clock.
func NewAggregator(sampler signals.Sampler, clock signals.Clock, static model.StaticFleetKPIs) *Aggregator {
	if sampler == nil {
		sampler = signals.NewRandSampler(0)
	}
	if clock == nil {
		clock = signals.SystemClock{}
	}
	return &Aggregator{sampler: sampler, clock: clock, static: static}
}

// Stats returns the summary for the given roster.
func (a *Aggregator) Stats(trucks []model.Truck) model.FleetStats {
	return model.FleetStats{
		SimulatedFleetKPIs: a.Simulated(),
		StaticFleetKPIs:    a.static,
		Observed:           Observe(trucks),
		GeneratedAt:        a.clock.Now(),
	}
}

// Simulated samples the placeholder KPIs.
func (a *Aggregator) Simulated() model.SimulatedFleetKPIs {
	return model.SimulatedFleetKPIs{
		Simulated:           true,
		Utilization:         a.sampler.Between(UtilizationMin, UtilizationMax),
		EmptyMilesReduction: a.sampler.Between(EmptyMilesReductionMin, EmptyMilesReductionMax),
		RevenuePerTrip:      a.sampler.Between(RevenuePerTripMin, RevenuePerTripMax),
		AIRecommendations:   a.sampler.Between(AIRecommendationsMin, AIRecommendationsMax),
	}
}

// Observe summarises the roster. Means are zero for an empty roster.
func Observe(trucks []model.Truck) model.ObservedFleetKPIs {
	obs := model.ObservedFleetKPIs{
		Trucks:             len(trucks),
		ByStatus:           map[model.TruckStatus]int{},
		OverloadedTruckIDs: []string{},
	}
	if len(trucks) == 0 {
		return obs
	}
	util := make([]float64, len(trucks))
	maint := make([]float64, len(trucks))
	for i, t := range trucks {
		obs.ByStatus[t.Status]++
		util[i] = t.Utilization()
		maint[i] = t.MaintenanceScore
		if t.LoadRatio() > 1 {
			obs.OverloadedTruckIDs = append(obs.OverloadedTruckIDs, t.ID)
		}
	}
	sort.Strings(obs.OverloadedTruckIDs)
	obs.MeanUtilization = stat.Mean(util, nil)
	obs.MeanMaintenance = stat.Mean(maint, nil)
	return obs
}
