package simulated

import (
	"context"

	"github.com/kilianp07/adaptivelog/core/model"
	"github.com/kilianp07/adaptivelog/core/signals"
)

// Traffic generates random traffic observations.
type Traffic struct {
	sampler signals.Sampler
}

func NewTraffic(s signals.Sampler) *Traffic {
	return &Traffic{sampler: s}
}

func (t *Traffic) Traffic(ctx context.Context, route model.Route) (model.TrafficObservation, error) {
	if err := ctx.Err(); err != nil {
		return model.TrafficObservation{}, err
	}
	return model.TrafficObservation{
		Route:           route.String(),
		CongestionLevel: float64(t.sampler.Between(10, 60)),
		AverageSpeed:    float64(t.sampler.Between(45, 70)),
		Incidents:       t.sampler.Between(0, 3),
		DelayMinutes:    float64(t.sampler.Between(5, 45)),
	}, nil
}
