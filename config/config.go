package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/adaptivelog/core/locations"
	"github.com/kilianp07/adaptivelog/core/metrics"
	"github.com/kilianp07/adaptivelog/core/model"
	"github.com/kilianp07/adaptivelog/infra/mqtt"
	"github.com/kilianp07/adaptivelog/infra/telemetry"
)

// EnvPrefix prefixes environment overrides. K_SERVER__ADDR sets server.addr.
const EnvPrefix = "K_"

type Config struct {
	Server          ServerConfig           `json:"server"`
	Logging         LoggingConfig          `json:"logging"`
	Fleet           FleetConfig            `json:"fleet"`
	Locations       []locations.Place      `json:"locations"`
	Weather         WeatherConfig          `json:"weather"`
	Traffic         TrafficConfig          `json:"traffic"`
	Stats           StatsConfig            `json:"stats"`
	Recommendations []model.Recommendation `json:"recommendations"`
	Signals         SignalsConfig          `json:"signals"`
	Metrics         metrics.Config         `json:"metrics"`
	MQTT            mqtt.Config            `json:"mqtt"`
	Telemetry       telemetry.Config       `json:"telemetry"`
	Sentry          SentryConfig           `json:"sentry"`
}

// Load reads the file at path, applies K_ environment overrides, fills
// defaults and validates. An empty path loads defaults and environment only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	cfg.SetDefaults()
	return &cfg
}

func parserFor(path string) (koanf.Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
}

// SetDefaults fills every section.
func (c *Config) SetDefaults() {
	c.Server.SetDefaults()
	c.Logging.SetDefaults()
	c.Fleet.SetDefaults()
	if len(c.Locations) == 0 {
		c.Locations = locations.DefaultPlaces()
	}
	c.Weather.SetDefaults()
	c.Traffic.SetDefaults()
	c.Stats.SetDefaults()
	c.Metrics.SetDefaults()
	c.MQTT.SetDefaults()
	c.Telemetry.SetDefaults()
}

// Validate checks every section and reports all problems at once.
func (c *Config) Validate() error {
	errs := []error{
		c.Server.Validate(),
		c.Logging.Validate(),
		c.Fleet.Validate(),
		c.Weather.Validate(),
		c.Traffic.Validate(),
		c.Metrics.Validate(),
		c.MQTT.Validate(),
	}
	if c.Telemetry.Enabled && !c.MQTT.Enabled() {
		errs = append(errs, errors.New("telemetry.enabled requires mqtt.broker"))
	}
	for i, p := range c.Locations {
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("locations[%d]: name is required", i))
		}
	}
	return errors.Join(errs...)
}
