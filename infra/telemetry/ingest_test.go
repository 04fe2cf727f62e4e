package telemetry

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/adaptivelog/core/fleet"
	"github.com/kilianp07/adaptivelog/core/model"
	infmqtt "github.com/kilianp07/adaptivelog/infra/mqtt"
)

type token struct{ err error }

func (t token) Wait() bool                     { return true }
func (t token) WaitTimeout(time.Duration) bool { return true }
func (t token) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t token) Error() error { return t.err }

type fakeSubscriber struct {
	mu         sync.Mutex
	connectErr error
	topic      string
	qos        byte
	handler    paho.MessageHandler
	connected  bool
}

func (f *fakeSubscriber) IsConnected() bool { return f.connected }
func (f *fakeSubscriber) Connect() paho.Token {
	f.connected = f.connectErr == nil
	return token{err: f.connectErr}
}
func (f *fakeSubscriber) Disconnect(uint) { f.connected = false }
func (f *fakeSubscriber) Subscribe(topic string, qos byte, h paho.MessageHandler) paho.Token {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.topic, f.qos, f.handler = topic, qos, h
	return token{}
}

func (f *fakeSubscriber) subscribed() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.topic
}

func ptr[T any](v T) *T { return &v }

func TestApply(t *testing.T) {
	store := fleet.NewMemoryStore(fleet.DefaultTrucks()...)
	got, err := Apply(store, StateUpdate{
		TruckID:     "3390",
		Status:      ptr(model.StatusLoading),
		CurrentLoad: ptr(30000.0),
		Location:    &model.Coordinates{Lat: 32.7767, Lng: -96.797},
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusLoading, got.Status)

	stored, ok := store.Get("3390")
	require.True(t, ok)
	assert.Equal(t, 30000.0, stored.CurrentLoad)
	assert.Equal(t, 32.7767, stored.Location.Lat)
	assert.Equal(t, 95.0, stored.MaintenanceScore)
}

func TestApplyRejects(t *testing.T) {
	store := fleet.NewMemoryStore(fleet.DefaultTrucks()...)

	_, err := Apply(store, StateUpdate{TruckID: "0001"})
	assert.ErrorIs(t, err, ErrUnknownTruck)

	_, err = Apply(store, StateUpdate{TruckID: "7821", MaintenanceScore: ptr(140.0)})
	require.Error(t, err)
	stored, _ := store.Get("7821")
	assert.Equal(t, 92.0, stored.MaintenanceScore)
}

func TestHandleCountsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	store := fleet.NewMemoryStore(fleet.DefaultTrucks()...)
	ing, err := newIngestor(&fakeSubscriber{}, Config{StatePrefix: "fleet/state"}, store, reg)
	require.NoError(t, err)

	require.NoError(t, ing.handle("fleet/state/4512", []byte(`{"status":"en_route","ts":1767225600}`)))
	assert.Error(t, ing.handle("fleet/state/4512", []byte(`{not json`)))
	assert.Error(t, ing.handle("fleet/state/9999", []byte(`{}`)))

	assert.Equal(t, 1.0, testutil.ToFloat64(ing.received.WithLabelValues("applied")))
	assert.Equal(t, 1.0, testutil.ToFloat64(ing.received.WithLabelValues("invalid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(ing.received.WithLabelValues("rejected")))
	assert.Equal(t, 1767225600.0, testutil.ToFloat64(ing.lastApplied))

	tr, _ := store.Get("4512")
	assert.Equal(t, model.StatusEnRoute, tr.Status)
}

func TestNewIngestorReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := newIngestor(&fakeSubscriber{}, Config{}, fleet.NewMemoryStore(), reg)
	require.NoError(t, err)
	_, err = newIngestor(&fakeSubscriber{}, Config{}, fleet.NewMemoryStore(), reg)
	require.NoError(t, err)
}

func useFake(t *testing.T, f *fakeSubscriber) {
	t.Helper()
	prev := newSubscriber
	newSubscriber = func(*paho.ClientOptions) subscriber { return f }
	t.Cleanup(func() { newSubscriber = prev })
}

func TestStartSubscribesUntilCancelled(t *testing.T) {
	fake := &fakeSubscriber{}
	useFake(t, fake)
	ing, err := NewIngestor(infmqtt.Config{Broker: "tcp://localhost:1883"}, Config{QoS: 1}, fleet.NewMemoryStore(fleet.DefaultTrucks()...), prometheus.NewRegistry())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ing.Start(ctx) }()

	require.Eventually(t, func() bool { return fake.subscribed() != "" }, time.Second, 10*time.Millisecond)
	assert.Equal(t, "adaptivelog/state/+", fake.subscribed())
	cancel()
	require.NoError(t, <-done)
	assert.False(t, fake.IsConnected())
}

func TestNewIngestorConnectError(t *testing.T) {
	useFake(t, &fakeSubscriber{connectErr: errors.New("refused")})
	_, err := NewIngestor(infmqtt.Config{Broker: "tcp://localhost:1883"}, Config{}, fleet.NewMemoryStore(), nil)
	assert.ErrorContains(t, err, "refused")
}
