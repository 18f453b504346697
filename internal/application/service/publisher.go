package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type ChangeType string

const (
	ChangeCreated ChangeType = "created"
	ChangeUpdated ChangeType = "updated"
	ChangeDeleted ChangeType = "deleted"
)

// ChangeEvent announces a successful write to a portfolio record.
type ChangeEvent struct {
	EventType  ChangeType `json:"event_type"`
	Resource   string     `json:"resource"`
	ResourceID uuid.UUID  `json:"resource_id"`
	ProfileID  uuid.UUID  `json:"profile_id"`
	OccurredAt time.Time  `json:"occurred_at"`
}

type EventPublisher interface {
	Publish(ctx context.Context, evt ChangeEvent) error
	Close() error
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ChangeEvent) error { return nil }
func (NopPublisher) Close() error { return nil }

// PublishChange sends evt in the background. Failures are logged and never
// reach the caller, whose write has already succeeded.
func PublishChange(ctx context.Context, pub EventPublisher, log logger.Logger, evt ChangeEvent) {
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = time.Now().UTC()
	}
	go func() {
		if err := pub.Publish(context.WithoutCancel(ctx), evt); err != nil {
			log.Warn("Failed to publish change event",
				zap.String("resource", evt.Resource),
				zap.String("resource_id", evt.ResourceID.String()),
				zap.String("event_type", string(evt.EventType)),
				zap.Error(err),
			)
		}
	}()
}
