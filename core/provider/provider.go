// Package provider declares where weather and traffic observations come from.
//
// Implementations register themselves by type name (see infra/simulated) and
// are selected through configuration.
package provider

import (
	"context"

	"github.com/kilianp07/adaptivelog/core/factory"
	"github.com/kilianp07/adaptivelog/core/model"
)

// WeatherProvider returns the current weather for a named location.
type WeatherProvider interface {
	Weather(ctx context.Context, location string) (model.WeatherObservation, error)
}

// TrafficProvider returns current traffic on a route.
type TrafficProvider interface {
	Traffic(ctx context.Context, route model.Route) (model.TrafficObservation, error)
}

// WeatherFunc adapts a function to WeatherProvider.
type WeatherFunc func(ctx context.Context, location string) (model.WeatherObservation, error)

func (f WeatherFunc) Weather(ctx context.Context, location string) (model.WeatherObservation, error) {
	return f(ctx, location)
}

// TrafficFunc adapts a function to TrafficProvider.
type TrafficFunc func(ctx context.Context, route model.Route) (model.TrafficObservation, error)

func (f TrafficFunc) Traffic(ctx context.Context, route model.Route) (model.TrafficObservation, error) {
	return f(ctx, route)
}

var (
	weatherRegistry = factory.NewRegistry[WeatherProvider]()
	trafficRegistry = factory.NewRegistry[TrafficProvider]()
)

// RegisterWeather adds a weather provider factory identified by name.
func RegisterWeather(name string, f factory.Factory[WeatherProvider]) error {
	return weatherRegistry.Register(name, f)
}

// RegisterTraffic adds a traffic provider factory identified by name.
func RegisterTraffic(name string, f factory.Factory[TrafficProvider]) error {
	return trafficRegistry.Register(name, f)
}

// NewWeather builds the weather provider described by cfg.
func NewWeather(cfg factory.ModuleConfig) (WeatherProvider, error) {
	return weatherRegistry.Create(cfg)
}

// NewTraffic builds the traffic provider described by cfg.
func NewTraffic(cfg factory.ModuleConfig) (TrafficProvider, error) {
	return trafficRegistry.Create(cfg)
}

// WeatherTypes lists registered weather provider names.
func WeatherTypes() []string { return weatherRegistry.Names() }

// TrafficTypes lists registered traffic provider names.
func TrafficTypes() []string { return trafficRegistry.Names() }
