package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/adaptivelog/config"
	"github.com/kilianp07/adaptivelog/core/analytics"
	"github.com/kilianp07/adaptivelog/core/events"
	"github.com/kilianp07/adaptivelog/core/fleet"
	"github.com/kilianp07/adaptivelog/core/fleetstats"
	"github.com/kilianp07/adaptivelog/core/locations"
	coremetrics "github.com/kilianp07/adaptivelog/core/metrics"
	"github.com/kilianp07/adaptivelog/core/model"
	coremon "github.com/kilianp07/adaptivelog/core/monitoring"
	"github.com/kilianp07/adaptivelog/core/provider"
	"github.com/kilianp07/adaptivelog/core/recommendation"
	"github.com/kilianp07/adaptivelog/core/signals"
	"github.com/kilianp07/adaptivelog/core/weather"
	"github.com/kilianp07/adaptivelog/core/weathercache"
	"github.com/kilianp07/adaptivelog/infra/logger"
	"github.com/kilianp07/adaptivelog/infra/metrics"
	"github.com/kilianp07/adaptivelog/infra/monitoring"
	"github.com/kilianp07/adaptivelog/infra/mqtt"
	_ "github.com/kilianp07/adaptivelog/infra/simulated" // registers providers
	"github.com/kilianp07/adaptivelog/infra/telemetry"
	"github.com/kilianp07/adaptivelog/internal/eventbus"
)

// ErrTruckNotFound is returned when no truck has the requested id.
var ErrTruckNotFound = errors.New("truck not found")

// Deps are the collaborators of a Service. Nil fields get defaults in
// NewWithDeps, except Weather and Traffic which are required.
type Deps struct {
	Store       fleet.Store
	Resolver    *locations.Resolver
	Cache       *weathercache.Cache[model.WeatherObservation]
	Weather     provider.WeatherProvider
	Traffic     provider.TrafficProvider
	Engine      *analytics.Engine
	Stats       *fleetstats.Aggregator
	Catalog     *recommendation.Catalog
	Bus         eventbus.Bus[events.Event]
	Sink        coremetrics.MetricsSink
	Logger      logger.Logger
	Clock       signals.Clock
	MQTT        mqtt.Config
	PromAddr    string
	Telemetry   signals.Telemetry
	// StateIngest subscribes to truck state updates on the MQTT broker.
	StateIngest telemetry.Config
}

// Service answers truck analytics, weather and fleet queries.
type Service struct {
	store    fleet.Store
	resolver *locations.Resolver
	cache    *weathercache.Cache[model.WeatherObservation]
	weather  provider.WeatherProvider
	traffic  provider.TrafficProvider
	engine   *analytics.Engine
	stats    *fleetstats.Aggregator
	catalog  *recommendation.Catalog
	bus      eventbus.Bus[events.Event]
	sink     coremetrics.MetricsSink
	log      logger.Logger
	clock    signals.Clock
	mqttCfg  mqtt.Config
	ingest   telemetry.Config
	promAddr string
}

// New builds a Service from configuration. It installs the Sentry monitor
// when a DSN is configured.
func New(cfg *config.Config) (*Service, error) {
	if err := logger.SetLevel(cfg.Logging.Level); err != nil {
		return nil, err
	}
	mon, err := monitoring.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		return nil, fmt.Errorf("sentry: %w", err)
	}
	coremon.Init(mon)

	wp, err := provider.NewWeather(cfg.Weather.Provider)
	if err != nil {
		return nil, fmt.Errorf("weather provider: %w", err)
	}
	tp, err := provider.NewTraffic(cfg.Traffic.Provider)
	if err != nil {
		return nil, fmt.Errorf("traffic provider: %w", err)
	}
	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}

	clock := signals.SystemClock{}
	sampler := signals.NewRandSampler(cfg.Signals.Seed)
	return NewWithDeps(Deps{
		Store:       fleet.NewMemoryStore(cfg.Fleet.Trucks...),
		Resolver:    locations.NewResolver(cfg.Locations),
		Cache:       weathercache.New[model.WeatherObservation](cfg.Weather.CacheTTL(), clock),
		Weather:     wp,
		Traffic:     tp,
		Stats:       fleetstats.NewAggregator(sampler, clock, cfg.Stats.Static),
		Catalog:     recommendation.NewCatalog(cfg.Recommendations),
		Sink:        sink,
		Clock:       clock,
		MQTT:        cfg.MQTT,
		PromAddr:    cfg.Metrics.PrometheusAddr,
		Telemetry:   signals.NewSampledTelemetry(sampler),
		StateIngest: cfg.Telemetry,
	})
}

// NewWithDeps builds a Service from explicit collaborators.
func NewWithDeps(d Deps) (*Service, error) {
	if d.Weather == nil || d.Traffic == nil {
		return nil, errors.New("weather and traffic providers are required")
	}
	if d.Clock == nil {
		d.Clock = signals.SystemClock{}
	}
	if d.Store == nil {
		d.Store = fleet.NewMemoryStore(fleet.DefaultTrucks()...)
	}
	if d.Resolver == nil {
		d.Resolver = locations.NewResolver(locations.DefaultPlaces())
	}
	if d.Cache == nil {
		d.Cache = weathercache.New[model.WeatherObservation](weathercache.DefaultTTL, d.Clock)
	}
	if d.Engine == nil {
		d.Engine = analytics.NewEngine(d.Telemetry, d.Clock)
	}
	if d.Stats == nil {
		d.Stats = fleetstats.NewAggregator(signals.NewRandSampler(0), d.Clock, fleetstats.DefaultStatic())
	}
	if d.Catalog == nil {
		d.Catalog = recommendation.NewCatalog(nil)
	}
	if d.Bus == nil {
		d.Bus = eventbus.NewTyped[events.Event]()
	}
	if d.Sink == nil {
		d.Sink = coremetrics.NopSink{}
	}
	if d.Logger == nil {
		d.Logger = logger.New("service")
	}
	return &Service{
		store:    d.Store,
		resolver: d.Resolver,
		cache:    d.Cache,
		weather:  d.Weather,
		traffic:  d.Traffic,
		engine:   d.Engine,
		stats:    d.Stats,
		catalog:  d.Catalog,
		bus:      d.Bus,
		sink:     d.Sink,
		log:      d.Logger,
		clock:    d.Clock,
		mqttCfg:  d.MQTT,
		ingest:   d.StateIngest,
		promAddr: d.PromAddr,
	}, nil
}

// Bus returns the event bus analytics and cache events are published on.
func (s *Service) Bus() eventbus.Bus[events.Event] { return s.bus }

// TruckAnalytics computes the analytics bundle of one truck. Provider
// failures leave the matching observation absent; only an unknown id or a
// cancelled context is an error.
func (s *Service) TruckAnalytics(ctx context.Context, id string) (model.AnalyticsBundle, error) {
	if err := ctx.Err(); err != nil {
		return model.AnalyticsBundle{}, err
	}
	start := s.clock.Now()
	t, ok := s.store.Get(id)
	if !ok {
		return model.AnalyticsBundle{}, fmt.Errorf("%w: %s", ErrTruckNotFound, id)
	}

	var report *model.WeatherReport
	obs, err := s.observeWeather(ctx, s.resolver.Name(t.Location))
	if err != nil {
		if ctx.Err() != nil {
			return model.AnalyticsBundle{}, ctx.Err()
		}
		s.providerFailed(events.ProviderWeather, t.ID, err)
	} else {
		r := weather.Report(obs)
		report = &r
	}

	var traffic *model.TrafficObservation
	if t.InTransit() {
		tr, err := s.traffic.Traffic(ctx, *t.CurrentRoute)
		if err != nil {
			if ctx.Err() != nil {
				return model.AnalyticsBundle{}, ctx.Err()
			}
			s.providerFailed(events.ProviderTraffic, t.ID, err)
		} else {
			traffic = &tr
		}
	}

	now := s.clock.Now()
	b := model.AnalyticsBundle{
		Truck:       t,
		Analytics:   s.engine.Analyze(t, traffic, report),
		Weather:     report,
		Traffic:     traffic,
		RequestID:   uuid.NewString(),
		GeneratedAt: now.UTC(),
	}
	s.bus.Publish(events.AnalyticsEvent{Bundle: b, Duration: now.Sub(start), Time: now})
	return b, nil
}

// AllAnalytics computes bundles for every truck matching f, ordered by id.
func (s *Service) AllAnalytics(ctx context.Context, f fleet.Filter) ([]model.AnalyticsBundle, error) {
	trucks := s.store.List(f)
	out := make([]model.AnalyticsBundle, 0, len(trucks))
	for _, t := range trucks {
		b, err := s.TruckAnalytics(ctx, t.ID)
		if err != nil {
			return nil, fmt.Errorf("analytics %s: %w", t.ID, err)
		}
		out = append(out, b)
	}
	return out, nil
}

// Weather returns the cached or freshly fetched report for location.
func (s *Service) Weather(ctx context.Context, location string) (model.WeatherReport, error) {
	obs, err := s.observeWeather(ctx, location)
	if err != nil {
		return model.WeatherReport{}, fmt.Errorf("weather %s: %w", location, err)
	}
	return weather.Report(obs), nil
}

func (s *Service) observeWeather(ctx context.Context, location string) (model.WeatherObservation, error) {
	obs, hit, err := s.cache.GetOrFetch(ctx, weathercache.Key(location), func(ctx context.Context) (model.WeatherObservation, error) {
		return s.weather.Weather(ctx, location)
	})
	s.bus.Publish(events.CacheEvent{Location: location, Hit: hit, Time: s.clock.Now()})
	return obs, err
}

func (s *Service) providerFailed(name, truckID string, err error) {
	s.log.Warnf("%s provider failed for truck %s: %v", name, truckID, err)
	coremon.CaptureException(err, map[string]string{"module": "service", "provider": name, "truck_id": truckID})
	s.bus.Publish(events.ProviderErrorEvent{Provider: name, TruckID: truckID, Err: err, Time: s.clock.Now()})
}

// Trucks lists the roster entries matching f.
func (s *Service) Trucks(f fleet.Filter) []model.Truck { return s.store.List(f) }

// FleetStats builds the dashboard summary and records it on sinks that
// support it.
func (s *Service) FleetStats() model.FleetStats {
	stats := s.stats.Stats(s.store.List(fleet.Filter{}))
	if rec, ok := s.sink.(coremetrics.FleetStatsRecorder); ok {
		if err := rec.RecordFleetStats(stats); err != nil {
			s.log.Warnf("record fleet stats: %v", err)
		}
	}
	return stats
}

// Recommendations returns the advisory catalog.
func (s *Service) Recommendations() []model.Recommendation { return s.catalog.List() }

// Run starts the metrics collector and, when configured, the MQTT reporter,
// the truck state ingestor and the Prometheus endpoint. It blocks until ctx is cancelled.
func (s *Service) Run(ctx context.Context) error {
	collected := metrics.StartEventCollector(ctx, s.bus, s.sink)

	if s.mqttCfg.Enabled() {
		rep, err := mqtt.NewReporter(s.mqttCfg)
		if err != nil {
			return fmt.Errorf("mqtt reporter: %w", err)
		}
		defer rep.Disconnect()
		go rep.Run(ctx, s.bus)
	}
	if s.ingest.Enabled && s.mqttCfg.Enabled() {
		ing, err := telemetry.NewIngestor(s.mqttCfg, s.ingest, s.store, prometheus.DefaultRegisterer)
		if err != nil {
			return fmt.Errorf("telemetry ingestor: %w", err)
		}
		go func() {
			if err := ing.Start(ctx); err != nil {
				s.log.Errorf("telemetry ingestor: %v", err)
			}
		}()
	}
	if s.promAddr != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
				coremon.CaptureException(err, map[string]string{"module": "prom_server"})
			}
		}()
	}

	s.log.Infof("service running with %d trucks", len(s.store.List(fleet.Filter{})))
	<-ctx.Done()
	<-collected
	return nil
}

// Close releases the bus and flushes pending monitor events.
func (s *Service) Close() error {
	s.bus.Close()
	if c, ok := s.sink.(interface{ Close() }); ok {
		c.Close()
	}
	coremon.Flush(2 * time.Second)
	return nil
}
