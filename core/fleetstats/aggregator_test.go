package fleetstats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/adaptivelog/core/fleet"
	"github.com/kilianp07/adaptivelog/core/model"
	"github.com/kilianp07/adaptivelog/core/signals"
)

func TestSimulatedBounds(t *testing.T) {
	lo := NewAggregator(signals.MinSampler, nil, DefaultStatic()).Simulated()
	hi := NewAggregator(signals.MaxSampler, nil, DefaultStatic()).Simulated()

	assert.True(t, lo.Simulated)
	assert.Equal(t, model.SimulatedFleetKPIs{Simulated: true, Utilization: 85, EmptyMilesReduction: 35, RevenuePerTrip: 1150, AIRecommendations: 12}, lo)
	assert.Equal(t, model.SimulatedFleetKPIs{Simulated: true, Utilization: 94, EmptyMilesReduction: 44, RevenuePerTrip: 1349, AIRecommendations: 16}, hi)
}

func TestSimulatedRandomStaysInRange(t *testing.T) {
	a := NewAggregator(signals.NewRandSampler(42), nil, DefaultStatic())
	for i := 0; i < 200; i++ {
		s := a.Simulated()
		assert.True(t, s.Utilization >= 85 && s.Utilization <= 94)
		assert.True(t, s.EmptyMilesReduction >= 35 && s.EmptyMilesReduction <= 44)
		assert.True(t, s.RevenuePerTrip >= 1150 && s.RevenuePerTrip <= 1349)
		assert.True(t, s.AIRecommendations >= 12 && s.AIRecommendations <= 16)
	}
}

func TestStats(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	a := NewAggregator(signals.MinSampler, signals.NewManualClock(now), DefaultStatic())
	st := a.Stats(fleet.DefaultTrucks())

	assert.Equal(t, 14, st.ActiveTrucks)
	assert.Equal(t, 16, st.TotalTrucks)
	assert.Equal(t, 8.5, st.CO2Reduction)
	assert.Equal(t, now, st.GeneratedAt)

	assert.Equal(t, 3, st.Observed.Trucks)
	assert.Equal(t, 1, st.Observed.ByStatus[model.StatusEnRoute])
	assert.Equal(t, 1, st.Observed.ByStatus[model.StatusLoading])
	assert.Equal(t, 1, st.Observed.ByStatus[model.StatusAvailable])
	// (87.5 + 90.476 + 0) / 3
	assert.InDelta(t, 59.325, st.Observed.MeanUtilization, 1e-3)
	assert.InDelta(t, 91.667, st.Observed.MeanMaintenance, 1e-3)
	assert.Empty(t, st.Observed.OverloadedTruckIDs)
}

func TestObserveOverloadedAndEmpty(t *testing.T) {
	obs := Observe([]model.Truck{
		{ID: "b", Capacity: 100, CurrentLoad: 120, MaintenanceScore: 80, Status: model.StatusLoading},
		{ID: "a", Capacity: 100, CurrentLoad: 101, MaintenanceScore: 60, Status: model.StatusLoading},
	})
	require.Equal(t, []string{"a", "b"}, obs.OverloadedTruckIDs)
	assert.InDelta(t, 110.5, obs.MeanUtilization, 1e-9)
	assert.Equal(t, 2, obs.ByStatus[model.StatusLoading])

	empty := Observe(nil)
	assert.Zero(t, empty.Trucks)
	assert.Zero(t, empty.MeanUtilization)
	assert.NotNil(t, empty.OverloadedTruckIDs)
}
