package model

import (
	"errors"
	"fmt"
)

// TruckStatus is the operational state of a truck.
type TruckStatus string

const (
	StatusAvailable TruckStatus = "available"
	StatusLoading   TruckStatus = "loading"
	StatusEnRoute   TruckStatus = "en_route"
)

// Valid reports whether s is one of the known statuses.
func (s TruckStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusLoading, StatusEnRoute:
		return true
	default:
		return false
	}
}

// Coordinates is a WGS84 position.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Route is the leg a truck is currently planned on.
type Route struct {
	Start     string   `json:"start"`
	End       string   `json:"end"`
	Distance  float64  `json:"distance"` // miles
	Waypoints []string `json:"waypoints"`
}

// String describes the route for logs and traffic lookups.
func (r Route) String() string {
	return fmt.Sprintf("%s -> %s", r.Start, r.End)
}

// TruckMetrics holds lifetime counters reported by the truck.
type TruckMetrics struct {
	TotalMiles   float64 `json:"totalMiles"`
	AvgSpeed     float64 `json:"avgSpeed"`
	FuelConsumed float64 `json:"fuelConsumed"`
	CO2Emitted   float64 `json:"co2Emitted"`
}

// Truck is a fleet vehicle. Trucks are owned and mutated by the roster; the
// analytics engine only reads snapshots of them.
type Truck struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	Driver      string      `json:"driver"`
	Destination string      `json:"destination"`
	Capacity    float64     `json:"capacity"`    // lbs
	CurrentLoad float64     `json:"currentLoad"` // lbs, may exceed capacity
	Status      TruckStatus `json:"status"`
	Location    Coordinates `json:"location"`

	FuelEfficiency   float64 `json:"fuelEfficiency"` // miles per gallon
	MaintenanceScore float64 `json:"maintenanceScore"`

	// CurrentRoute is nil when the truck has no planned leg; route dependent
	// metrics then resolve to "not applicable".
	CurrentRoute *Route        `json:"currentRoute"`
	Metrics      *TruckMetrics `json:"metrics,omitempty"`
}

// Validate checks that the truck record can be scored.
func (t Truck) Validate() error {
	var errs []error
	if t.ID == "" {
		errs = append(errs, errors.New("id is required"))
	}
	if t.Capacity <= 0 {
		errs = append(errs, errors.New("capacity must be positive"))
	}
	if t.CurrentLoad < 0 {
		errs = append(errs, errors.New("current load must not be negative"))
	}
	if t.FuelEfficiency <= 0 {
		errs = append(errs, errors.New("fuel efficiency must be positive"))
	}
	if t.MaintenanceScore < 0 || t.MaintenanceScore > 100 {
		errs = append(errs, errors.New("maintenance score must be within [0,100]"))
	}
	if !t.Status.Valid() {
		errs = append(errs, fmt.Errorf("unknown status %q", t.Status))
	}
	if t.CurrentRoute != nil && t.CurrentRoute.Distance <= 0 {
		errs = append(errs, errors.New("route distance must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("truck %s: %w", t.ID, errors.Join(errs...))
	}
	return nil
}

// LoadRatio returns currentLoad/capacity. A zero capacity yields 0.
func (t Truck) LoadRatio() float64 {
	if t.Capacity <= 0 {
		return 0
	}
	return t.CurrentLoad / t.Capacity
}

// Utilization returns the load ratio as a percentage.
func (t Truck) Utilization() float64 {
	return t.LoadRatio() * 100
}

// HasRoute reports whether the truck is planned on a leg.
func (t Truck) HasRoute() bool {
	return t.CurrentRoute != nil
}

// InTransit reports whether traffic should be considered for the truck.
func (t Truck) InTransit() bool {
	return t.Status == StatusEnRoute && t.HasRoute()
}

// Clone returns a deep copy so callers can't mutate roster state.
func (t Truck) Clone() Truck {
	c := t
	if t.CurrentRoute != nil {
		r := *t.CurrentRoute
		r.Waypoints = append([]string(nil), t.CurrentRoute.Waypoints...)
		c.CurrentRoute = &r
	}
	if t.Metrics != nil {
		m := *t.Metrics
		c.Metrics = &m
	}
	return c
}
