package model

import "time"

// SimulatedFleetKPIs are placeholder figures sampled within fixed ranges until
// live telemetry is available. Simulated is always true.
type SimulatedFleetKPIs struct {
	Simulated           bool `json:"simulated"`
	Utilization         int  `json:"utilization"`
	EmptyMilesReduction int  `json:"emptyMilesReduction"`
	RevenuePerTrip      int  `json:"revenuePerTrip"`
	AIRecommendations   int  `json:"aiRecommendations"`
}

// StaticFleetKPIs are reference figures provided by configuration.
type StaticFleetKPIs struct {
	ActiveTrucks      int     `json:"activeTrucks"`
	TotalTrucks       int     `json:"totalTrucks"`
	LoadsToday        int     `json:"loadsToday"`
	DelayedDeliveries int     `json:"delayedDeliveries"`
	FuelSavings       float64 `json:"fuelSavings"`
	CO2Reduction      float64 `json:"co2Reduction"`
}

// ObservedFleetKPIs are derived from the roster currently loaded.
type ObservedFleetKPIs struct {
	Trucks             int                 `json:"trucks"`
	ByStatus           map[TruckStatus]int `json:"byStatus"`
	MeanUtilization    float64             `json:"meanUtilization"`
	MeanMaintenance    float64             `json:"meanMaintenance"`
	OverloadedTruckIDs []string            `json:"overloadedTruckIds"`
}

// FleetStats is the dashboard summary. Simulated and static fields are
// flattened to keep the dashboard wire shape.
type FleetStats struct {
	SimulatedFleetKPIs
	StaticFleetKPIs
	Observed    ObservedFleetKPIs `json:"observed"`
	GeneratedAt time.Time         `json:"generatedAt"`
}
