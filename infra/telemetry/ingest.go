// Package telemetry applies truck state updates received over MQTT to the
// fleet roster.
package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/adaptivelog/core/fleet"
	"github.com/kilianp07/adaptivelog/core/model"
	"github.com/kilianp07/adaptivelog/infra/logger"
	infmqtt "github.com/kilianp07/adaptivelog/infra/mqtt"
)

// ErrUnknownTruck is returned for updates about trucks not in the roster.
var ErrUnknownTruck = errors.New("unknown truck")

// StateUpdate is the payload of a state message. Nil fields are left
// unchanged.
type StateUpdate struct {
	TruckID          string             `json:"truck_id"`
	Status           *model.TruckStatus `json:"status"`
	CurrentLoad      *float64           `json:"current_load"`
	Location         *model.Coordinates `json:"location"`
	MaintenanceScore *float64           `json:"maintenance_score"`
	Destination      *string            `json:"destination"`
	TS               *int64             `json:"ts"`
}

// Apply merges u into the roster entry and stores it. The merged truck must
// still validate.
func Apply(store fleet.Store, u StateUpdate) (model.Truck, error) {
	t, ok := store.Get(u.TruckID)
	if !ok {
		return model.Truck{}, fmt.Errorf("%w: %s", ErrUnknownTruck, u.TruckID)
	}
	if u.Status != nil {
		t.Status = *u.Status
	}
	if u.CurrentLoad != nil {
		t.CurrentLoad = *u.CurrentLoad
	}
	if u.Location != nil {
		t.Location = *u.Location
	}
	if u.MaintenanceScore != nil {
		t.MaintenanceScore = *u.MaintenanceScore
	}
	if u.Destination != nil {
		t.Destination = *u.Destination
	}
	if err := t.Validate(); err != nil {
		return model.Truck{}, err
	}
	store.Set(t)
	return t, nil
}

type subscriber interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Subscribe(topic string, qos byte, callback paho.MessageHandler) paho.Token
}

var newSubscriber = func(opts *paho.ClientOptions) subscriber {
	return paho.NewClient(opts)
}

// Ingestor subscribes to truck state topics and updates the roster.
type Ingestor struct {
	cli   subscriber
	cfg   Config
	store fleet.Store
	log   logger.Logger

	received    *prometheus.CounterVec
	lastApplied prometheus.Gauge
}

// NewIngestor connects a dedicated client using the broker settings of
// mqttCfg. Metrics are registered on reg.
func NewIngestor(mqttCfg infmqtt.Config, cfg Config, store fleet.Store, reg prometheus.Registerer) (*Ingestor, error) {
	cfg.SetDefaults()
	mqttCfg.SetDefaults()
	opts, err := infmqtt.NewClientOptions(mqttCfg)
	if err != nil {
		return nil, err
	}
	opts.SetClientID(mqttCfg.ClientID + "-telemetry")
	cli := newSubscriber(opts)
	if token := cli.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("telemetry connect %s: %w", mqttCfg.Broker, token.Error())
	}
	return newIngestor(cli, cfg, store, reg)
}

func newIngestor(cli subscriber, cfg Config, store fleet.Store, reg prometheus.Registerer) (*Ingestor, error) {
	received := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "adaptivelog_truck_state_messages_total",
		Help: "Truck state messages by outcome",
	}, []string{"result"})
	last := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "adaptivelog_truck_state_last_applied_timestamp_seconds",
		Help: "Unix time of the last applied truck state update",
	})
	if reg != nil {
		for _, c := range []prometheus.Collector{received, last} {
			if err := reg.Register(c); err != nil {
				var are prometheus.AlreadyRegisteredError
				if !errors.As(err, &are) {
					return nil, err
				}
			}
		}
	}
	return &Ingestor{cli: cli, cfg: cfg, store: store, log: logger.New("telemetry"), received: received, lastApplied: last}, nil
}

// Start subscribes and blocks until ctx is done.
func (i *Ingestor) Start(ctx context.Context) error {
	topic := i.cfg.Topic()
	if token := i.cli.Subscribe(topic, i.cfg.QoS, i.onMessage); token.Wait() && token.Error() != nil {
		return fmt.Errorf("subscribe %s: %w", topic, token.Error())
	}
	i.log.Infof("ingesting truck state from %s", topic)
	<-ctx.Done()
	if i.cli.IsConnected() {
		i.cli.Disconnect(250)
	}
	return nil
}

func (i *Ingestor) onMessage(_ paho.Client, msg paho.Message) {
	if err := i.handle(msg.Topic(), msg.Payload()); err != nil {
		i.log.Warnf("truck state from %s: %v", msg.Topic(), err)
	}
}

func (i *Ingestor) handle(topic string, payload []byte) error {
	var u StateUpdate
	if err := json.Unmarshal(payload, &u); err != nil {
		i.received.WithLabelValues("invalid").Inc()
		return err
	}
	if u.TruckID == "" {
		u.TruckID = lastLevel(topic)
	}
	if _, err := Apply(i.store, u); err != nil {
		i.received.WithLabelValues("rejected").Inc()
		return err
	}
	ts := time.Now()
	if u.TS != nil {
		ts = time.Unix(*u.TS, 0)
	}
	i.received.WithLabelValues("applied").Inc()
	i.lastApplied.Set(float64(ts.Unix()))
	return nil
}

func lastLevel(topic string) string {
	parts := strings.Split(topic, "/")
	return parts[len(parts)-1]
}
