package simulated

import (
	"github.com/kilianp07/adaptivelog/core/factory"
	"github.com/kilianp07/adaptivelog/core/model"
	"github.com/kilianp07/adaptivelog/core/provider"
	"github.com/kilianp07/adaptivelog/core/signals"
)

// Type names under which the providers register.
const (
	TypeSimulated = "simulated"
	TypeStatic    = "static"
)

// SamplerConf configures the simulated providers.
type SamplerConf struct {
	// Seed makes the sequence reproducible; 0 seeds from the clock.
	Seed int64 `json:"seed"`
}

func init() {
	_ = provider.RegisterWeather(TypeSimulated, func(conf map[string]any) (provider.WeatherProvider, error) {
		var c SamplerConf
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewWeather(signals.NewRandSampler(c.Seed), nil), nil
	})
	_ = provider.RegisterTraffic(TypeSimulated, func(conf map[string]any) (provider.TrafficProvider, error) {
		var c SamplerConf
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewTraffic(signals.NewRandSampler(c.Seed)), nil
	})
	_ = provider.RegisterWeather(TypeStatic, func(conf map[string]any) (provider.WeatherProvider, error) {
		var obs model.WeatherObservation
		if err := factory.Decode(conf, &obs); err != nil {
			return nil, err
		}
		return NewStaticWeather(obs), nil
	})
	_ = provider.RegisterTraffic(TypeStatic, func(conf map[string]any) (provider.TrafficProvider, error) {
		var obs model.TrafficObservation
		if err := factory.Decode(conf, &obs); err != nil {
			return nil, err
		}
		return NewStaticTraffic(obs), nil
	})
}
