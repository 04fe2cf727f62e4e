package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/adaptivelog/core/metrics"
	"github.com/kilianp07/adaptivelog/core/model"
	"github.com/kilianp07/adaptivelog/infra/logger"
)

// Measurement names written by InfluxSink.
const (
	MeasurementAnalytics = "truck_analytics"
	MeasurementCache     = "weather_cache_lookup"
	MeasurementProvider  = "provider_error"
	MeasurementFleet     = "fleet_stats"
)

// InfluxSink writes analytics results to InfluxDB using the blocking write API.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	timeout  time.Duration
	log      logger.Logger
}

// InfluxConfig locates the bucket to write to.
type InfluxConfig struct {
	URL    string `json:"url"`
	Token  string `json:"token"`
	Org    string `json:"org"`
	Bucket string `json:"bucket"`
}

// NewInfluxSink creates a sink for cfg. A trailing /api/v2/write on the URL
// is accepted.
func NewInfluxSink(cfg InfluxConfig) *InfluxSink {
	base := strings.TrimSuffix(cfg.URL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		timeout:  5 * time.Second,
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback checks the server health and returns a NopSink
// when it is unreachable or unhealthy.
func NewInfluxSinkWithFallback(cfg InfluxConfig) coremetrics.MetricsSink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }

func (s *InfluxSink) write(p *write.Point) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.writeAPI.WritePoint(ctx, p)
}

// analyticsPoint builds the truck_analytics point for rec. eta_hours is
// omitted when the ETA is not applicable.
func analyticsPoint(rec coremetrics.AnalyticsRecord) *write.Point {
	a := rec.Analytics
	p := write.NewPointWithMeasurement(MeasurementAnalytics).
		AddTag("truck_id", rec.TruckID).
		AddTag("status", string(rec.Status)).
		AddTag("feasibility", string(a.LoadFeasibility.Feasibility)).
		AddTag("risk_level", string(a.PenaltyRisk.Level)).
		AddTag("has_traffic", strconv.FormatBool(rec.HasTraffic)).
		AddField("utilization", round3(a.LoadFeasibility.Utilization)).
		AddField("fuel_cost", round3(a.FuelCost)).
		AddField("penalty_amount", round3(a.PenaltyRisk.Amount)).
		AddField("safety_score", a.SafetyScore.Score).
		AddField("eco_score", a.EcoScore.Score).
		AddField("weather_safety", round3(rec.WeatherSafety))
	if a.ETA.Applicable() {
		p.AddField("eta_hours", round3(a.ETA.Hours))
	}
	return p.SetTime(rec.Time)
}

func (s *InfluxSink) RecordAnalytics(rec coremetrics.AnalyticsRecord) error {
	return s.write(analyticsPoint(rec))
}

func (s *InfluxSink) RecordCacheLookup(ev coremetrics.CacheLookup) error {
	p := write.NewPointWithMeasurement(MeasurementCache).
		AddTag("location", ev.Location).
		AddTag("hit", strconv.FormatBool(ev.Hit)).
		AddField("count", 1).
		SetTime(ev.Time)
	return s.write(p)
}

func (s *InfluxSink) RecordProviderFailure(ev coremetrics.ProviderFailure) error {
	p := write.NewPointWithMeasurement(MeasurementProvider).
		AddTag("provider", ev.Provider)
	if ev.TruckID != "" {
		p = p.AddTag("truck_id", ev.TruckID)
	}
	p = p.AddField("error", ev.Error).SetTime(ev.Time)
	return s.write(p)
}

func (s *InfluxSink) RecordFleetStats(stats model.FleetStats) error {
	p := write.NewPointWithMeasurement(MeasurementFleet).
		AddTag("simulated", strconv.FormatBool(stats.Simulated)).
		AddField("utilization", stats.Utilization).
		AddField("revenue_per_trip", stats.RevenuePerTrip).
		AddField("trucks", stats.Observed.Trucks).
		AddField("mean_utilization", round3(stats.Observed.MeanUtilization)).
		AddField("mean_maintenance", round3(stats.Observed.MeanMaintenance)).
		SetTime(stats.GeneratedAt)
	return s.write(p)
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
