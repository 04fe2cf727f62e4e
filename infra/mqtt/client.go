package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/kilianp07/adaptivelog/core/events"
	"github.com/kilianp07/adaptivelog/core/model"
	coremon "github.com/kilianp07/adaptivelog/core/monitoring"
	coremqtt "github.com/kilianp07/adaptivelog/core/mqtt"
	"github.com/kilianp07/adaptivelog/infra/logger"
	"github.com/kilianp07/adaptivelog/internal/eventbus"
)

// pahoClient is the subset of paho.Client the reporter uses.
type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// Reporter publishes analytics bundles to an MQTT broker.
type Reporter struct {
	cli        pahoClient
	prefix     string
	qos        byte
	retain     bool
	maxRetries int
	backoff    time.Duration
	now        func() time.Time
	logger     logger.Logger
}

var _ coremqtt.Publisher = (*Reporter)(nil)

// NewReporter connects to the broker described by cfg.
func NewReporter(cfg Config) (*Reporter, error) {
	cfg.SetDefaults()
	opts, err := NewClientOptions(cfg)
	if err != nil {
		return nil, err
	}
	log := logger.New("mqtt_reporter")
	opts.OnConnect = func(paho.Client) { log.Infof("MQTT connected to %s", cfg.Broker) }
	opts.OnConnectionLost = func(_ paho.Client, err error) { log.Errorf("connection lost: %v", err) }
	opts.OnReconnecting = func(paho.Client, *paho.ClientOptions) { log.Warnf("reconnecting to MQTT broker") }

	c := newMQTTClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", cfg.Broker, token.Error())
	}
	return &Reporter{
		cli:        c,
		prefix:     cfg.TopicPrefix,
		qos:        cfg.QoS,
		retain:     cfg.Retain,
		maxRetries: cfg.MaxRetries,
		backoff:    cfg.Backoff(),
		now:        time.Now,
		logger:     log,
	}, nil
}

// PublishAnalytics publishes b on <prefix>/<truckID>/analytics, retrying with
// exponential backoff. Failures are reported to the monitor.
func (r *Reporter) PublishAnalytics(ctx context.Context, b model.AnalyticsBundle) (string, error) {
	msg := coremqtt.AnalyticsMessage{
		MessageID:   uuid.NewString(),
		TruckID:     b.ID,
		PublishedAt: r.now().UTC(),
		Bundle:      b,
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("encode analytics for %s: %w", b.ID, err)
	}
	topic := coremqtt.AnalyticsTopic(r.prefix, b.ID)

	var publishErr error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		token := r.cli.Publish(topic, r.qos, r.retain, payload)
		token.Wait()
		if publishErr = token.Error(); publishErr == nil {
			r.logger.Debugf("published %s to %s", msg.MessageID, topic)
			return msg.MessageID, nil
		}
		r.logger.Warnf("publish attempt %d to %s failed: %v", attempt+1, topic, publishErr)
		if attempt == r.maxRetries {
			break
		}
		select {
		case <-ctx.Done():
			publishErr = ctx.Err()
			attempt = r.maxRetries
		case <-time.After(r.backoff * time.Duration(1<<attempt)):
		}
	}
	err = fmt.Errorf("%w: %s: %w", coremqtt.ErrPublishFailed, topic, publishErr)
	coremon.CaptureException(err, map[string]string{"module": "mqtt", "truck_id": b.ID})
	return "", err
}

// Run publishes every analytics event from bus until ctx is done or the bus
// is closed.
func (r *Reporter) Run(ctx context.Context, bus eventbus.Bus[events.Event]) {
	sub := bus.Subscribe()
	defer bus.Unsubscribe(sub)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub:
			if !ok {
				return
			}
			ae, isAnalytics := ev.(events.AnalyticsEvent)
			if !isAnalytics {
				continue
			}
			if _, err := r.PublishAnalytics(ctx, ae.Bundle); err != nil {
				r.logger.Errorf("report analytics for %s: %v", ae.Bundle.ID, err)
			}
		}
	}
}

// Disconnect gracefully closes the MQTT connection.
func (r *Reporter) Disconnect() {
	if r.cli != nil && r.cli.IsConnected() {
		r.cli.Disconnect(250)
	}
}
