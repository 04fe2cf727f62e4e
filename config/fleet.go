package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kilianp07/adaptivelog/core/factory"
	"github.com/kilianp07/adaptivelog/core/fleet"
	"github.com/kilianp07/adaptivelog/core/fleetstats"
	"github.com/kilianp07/adaptivelog/core/model"
	"github.com/kilianp07/adaptivelog/core/weathercache"
)

// FleetConfig is the truck roster.
type FleetConfig struct {
	Trucks []model.Truck `json:"trucks"`
}

func (c *FleetConfig) SetDefaults() {
	if len(c.Trucks) == 0 {
		c.Trucks = fleet.DefaultTrucks()
	}
}

func (c FleetConfig) Validate() error {
	var errs []error
	seen := make(map[string]bool, len(c.Trucks))
	for i, t := range c.Trucks {
		if err := t.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("fleet.trucks[%d]: %w", i, err))
		}
		if seen[t.ID] {
			errs = append(errs, fmt.Errorf("fleet.trucks[%d]: duplicate id %s", i, t.ID))
		}
		seen[t.ID] = true
	}
	return errors.Join(errs...)
}

// WeatherConfig selects the weather provider and the cache freshness.
type WeatherConfig struct {
	Provider        factory.ModuleConfig `json:"provider"`
	CacheTTLSeconds int                  `json:"cache_ttl_seconds"`
}

func (c *WeatherConfig) SetDefaults() {
	if c.Provider.Type == "" {
		c.Provider.Type = "simulated"
	}
	if c.CacheTTLSeconds <= 0 {
		c.CacheTTLSeconds = int(weathercache.DefaultTTL / time.Second)
	}
}

func (c WeatherConfig) Validate() error {
	if c.Provider.Type == "" {
		return errors.New("weather.provider.type is required")
	}
	return nil
}

// CacheTTL returns CacheTTLSeconds as a duration.
func (c WeatherConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// TrafficConfig selects the traffic provider.
type TrafficConfig struct {
	Provider factory.ModuleConfig `json:"provider"`
}

func (c *TrafficConfig) SetDefaults() {
	if c.Provider.Type == "" {
		c.Provider.Type = "simulated"
	}
}

func (c TrafficConfig) Validate() error {
	if c.Provider.Type == "" {
		return errors.New("traffic.provider.type is required")
	}
	return nil
}

// StatsConfig holds the reference fleet figures shown on the dashboard.
type StatsConfig struct {
	Static model.StaticFleetKPIs `json:"static"`
}

func (c *StatsConfig) SetDefaults() {
	if c.Static == (model.StaticFleetKPIs{}) {
		c.Static = fleetstats.DefaultStatic()
	}
}

// SignalsConfig seeds the simulated telemetry and fleet KPIs.
type SignalsConfig struct {
	// Seed makes simulated values reproducible; 0 seeds from the clock.
	Seed int64 `json:"seed"`
}
