package simulated

import (
	"context"

	"github.com/kilianp07/adaptivelog/core/model"
)

// StaticWeather always returns the same observation, relabelled with the
// requested location.
type StaticWeather struct {
	obs model.WeatherObservation
}

func NewStaticWeather(obs model.WeatherObservation) *StaticWeather {
	return &StaticWeather{obs: obs}
}

func (s *StaticWeather) Weather(ctx context.Context, location string) (model.WeatherObservation, error) {
	if err := ctx.Err(); err != nil {
		return model.WeatherObservation{}, err
	}
	obs := s.obs
	obs.Location = location
	return obs, nil
}

// StaticTraffic always returns the same observation for any route.
type StaticTraffic struct {
	obs model.TrafficObservation
}

func NewStaticTraffic(obs model.TrafficObservation) *StaticTraffic {
	return &StaticTraffic{obs: obs}
}

func (s *StaticTraffic) Traffic(ctx context.Context, route model.Route) (model.TrafficObservation, error) {
	if err := ctx.Err(); err != nil {
		return model.TrafficObservation{}, err
	}
	obs := s.obs
	obs.Route = route.String()
	return obs, nil
}
