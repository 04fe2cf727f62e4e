// Package mqtt defines how analytics results are pushed to a message broker.
package mqtt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kilianp07/adaptivelog/core/model"
)

// ErrPublishFailed wraps the last broker error once retries are exhausted.
var ErrPublishFailed = errors.New("mqtt publish failed")

// Publisher sends analytics bundles to the broker and returns the message id.
type Publisher interface {
	PublishAnalytics(ctx context.Context, b model.AnalyticsBundle) (messageID string, err error)
}

// AnalyticsMessage is the payload published for each bundle.
type AnalyticsMessage struct {
	MessageID   string                `json:"messageId"`
	TruckID     string                `json:"truckId"`
	PublishedAt time.Time             `json:"publishedAt"`
	Bundle      model.AnalyticsBundle `json:"bundle"`
}

// AnalyticsTopic is the topic bundles for truckID are published on.
func AnalyticsTopic(prefix, truckID string) string {
	if prefix == "" {
		return fmt.Sprintf("%s/analytics", truckID)
	}
	return fmt.Sprintf("%s/%s/analytics", prefix, truckID)
}

// NopPublisher drops every bundle.
type NopPublisher struct{}

func (NopPublisher) PublishAnalytics(context.Context, model.AnalyticsBundle) (string, error) {
	return "", nil
}
