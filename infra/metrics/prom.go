package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/adaptivelog/core/metrics"
	"github.com/kilianp07/adaptivelog/core/model"
)

// PromSink exposes analytics results as Prometheus metrics. Per-truck values
// are gauges holding the latest result.
type PromSink struct {
	requests  *prometheus.CounterVec
	duration  prometheus.Histogram
	safety    *prometheus.GaugeVec
	eco       *prometheus.GaugeVec
	fuelCost  *prometheus.GaugeVec
	util      *prometheus.GaugeVec
	penalty   *prometheus.GaugeVec
	etaHours  *prometheus.GaugeVec
	cache     *prometheus.CounterVec
	providers *prometheus.CounterVec
	fleet     *prometheus.GaugeVec
}

// NewPromSink registers the metrics on the default registerer. The /metrics
// endpoint is served separately, see StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers the metrics on reg, reusing collectors
// that are already registered. A nil reg uses the default registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	truck := []string{"truck_id"}
	s := &PromSink{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adaptivelog_analytics_total",
			Help: "Analytics computations by truck status",
		}, []string{"status"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "adaptivelog_analytics_duration_seconds",
			Help:    "Time to fetch observations and compute analytics",
			Buckets: prometheus.DefBuckets,
		}),
		safety:   gaugeVec("adaptivelog_truck_safety_score", "Latest safety score per truck", truck),
		eco:      gaugeVec("adaptivelog_truck_eco_score", "Latest eco score per truck", truck),
		fuelCost: gaugeVec("adaptivelog_truck_fuel_cost", "Latest route fuel cost per truck", truck),
		util:     gaugeVec("adaptivelog_truck_load_utilization_percent", "Current load over capacity per truck", truck),
		penalty:  gaugeVec("adaptivelog_truck_penalty_amount", "Latest penalty exposure per truck", truck),
		etaHours: gaugeVec("adaptivelog_truck_eta_hours", "Latest route ETA in hours per truck", truck),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adaptivelog_weather_cache_lookups_total",
			Help: "Weather cache lookups by result",
		}, []string{"result"}),
		providers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adaptivelog_provider_errors_total",
			Help: "Observation provider failures",
		}, []string{"provider"}),
		fleet: gaugeVec("adaptivelog_fleet_trucks", "Trucks on the roster by status", []string{"status"}),
	}

	var err error
	if s.requests, err = registerOrReuse(reg, s.requests); err != nil {
		return nil, err
	}
	if s.duration, err = registerOrReuse(reg, s.duration); err != nil {
		return nil, err
	}
	for _, g := range []**prometheus.GaugeVec{&s.safety, &s.eco, &s.fuelCost, &s.util, &s.penalty, &s.etaHours, &s.fleet} {
		if *g, err = registerOrReuse(reg, *g); err != nil {
			return nil, err
		}
	}
	if s.cache, err = registerOrReuse(reg, s.cache); err != nil {
		return nil, err
	}
	if s.providers, err = registerOrReuse(reg, s.providers); err != nil {
		return nil, err
	}
	return s, nil
}

func gaugeVec(name, help string, labels []string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: name, Help: help}, labels)
}

// registerOrReuse registers c, or returns the collector already registered
// under the same descriptor.
func registerOrReuse[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (s *PromSink) RecordAnalytics(rec coremetrics.AnalyticsRecord) error {
	s.requests.WithLabelValues(string(rec.Status)).Inc()
	if rec.Duration > 0 {
		s.duration.Observe(rec.Duration.Seconds())
	}
	a := rec.Analytics
	s.safety.WithLabelValues(rec.TruckID).Set(float64(a.SafetyScore.Score))
	s.eco.WithLabelValues(rec.TruckID).Set(float64(a.EcoScore.Score))
	s.fuelCost.WithLabelValues(rec.TruckID).Set(a.FuelCost)
	s.util.WithLabelValues(rec.TruckID).Set(a.LoadFeasibility.Utilization)
	s.penalty.WithLabelValues(rec.TruckID).Set(a.PenaltyRisk.Amount)
	if a.ETA.Applicable() {
		s.etaHours.WithLabelValues(rec.TruckID).Set(a.ETA.Hours)
	} else {
		s.etaHours.DeleteLabelValues(rec.TruckID)
	}
	return nil
}

func (s *PromSink) RecordCacheLookup(ev coremetrics.CacheLookup) error {
	result := "miss"
	if ev.Hit {
		result = "hit"
	}
	s.cache.WithLabelValues(result).Inc()
	return nil
}

func (s *PromSink) RecordProviderFailure(ev coremetrics.ProviderFailure) error {
	s.providers.WithLabelValues(ev.Provider).Inc()
	return nil
}

// RecordFleetStats sets the per-status roster gauge.
func (s *PromSink) RecordFleetStats(stats model.FleetStats) error {
	for _, st := range []model.TruckStatus{model.StatusAvailable, model.StatusLoading, model.StatusEnRoute} {
		s.fleet.WithLabelValues(string(st)).Set(float64(stats.Observed.ByStatus[st]))
	}
	return nil
}
