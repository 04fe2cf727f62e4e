// Package locations maps truck coordinates to the named places weather is
// looked up for.
package locations

import (
	"math"

	"github.com/kilianp07/adaptivelog/core/model"
)

const (
	// Unknown is returned for coordinates outside the table.
	Unknown = "Unknown Location"
	// Tolerance is the per-axis match window in degrees.
	Tolerance = 1e-4
)

// Place is a named point.
type Place struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// DefaultPlaces is the built-in lookup table.
func DefaultPlaces() []Place {
	return []Place{
		{Name: "Chicago", Lat: 41.8781, Lng: -87.6298},
		{Name: "Dallas", Lat: 32.7767, Lng: -96.797},
		{Name: "Denver", Lat: 39.7392, Lng: -104.9903},
	}
}

// Resolver is immutable after construction.
type Resolver struct {
	places []Place
}

// NewResolver uses places, or DefaultPlaces when empty.
func NewResolver(places []Place) *Resolver {
	if len(places) == 0 {
		places = DefaultPlaces()
	}
	return &Resolver{places: append([]Place(nil), places...)}
}

// Name returns the first place within Tolerance of c, or Unknown.
func (r *Resolver) Name(c model.Coordinates) string {
	for _, p := range r.places {
		if math.Abs(p.Lat-c.Lat) <= Tolerance && math.Abs(p.Lng-c.Lng) <= Tolerance {
			return p.Name
		}
	}
	return Unknown
}

// Places returns a copy of the table.
func (r *Resolver) Places() []Place {
	return append([]Place(nil), r.places...)
}
