package simulated

import (
	"context"

	"github.com/kilianp07/adaptivelog/core/model"
	"github.com/kilianp07/adaptivelog/core/signals"
)

// Conditions the simulated weather provider picks from.
var Conditions = []string{"Sunny", "Partly Cloudy", "Cloudy", "Light Rain"}

// Weather generates random observations.
type Weather struct {
	sampler signals.Sampler
	clock   signals.Clock
}

// NewWeather returns a generator drawing from s. A nil clock uses wall time.
func NewWeather(s signals.Sampler, clock signals.Clock) *Weather {
	if clock == nil {
		clock = signals.SystemClock{}
	}
	return &Weather{sampler: s, clock: clock}
}

func (w *Weather) Weather(ctx context.Context, location string) (model.WeatherObservation, error) {
	if err := ctx.Err(); err != nil {
		return model.WeatherObservation{}, err
	}
	return model.WeatherObservation{
		Location:    location,
		Temperature: float64(w.sampler.Between(15, 30)),
		Conditions:  signals.Pick(w.sampler, Conditions),
		Humidity:    float64(w.sampler.Between(40, 85)),
		WindSpeed:   float64(w.sampler.Between(5, 25)),
		Visibility:  float64(w.sampler.Between(5, 15) * 1000),
		Timestamp:   w.clock.Now(),
	}, nil
}
