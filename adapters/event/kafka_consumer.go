package event

import (
	"context"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/internal/application/service"
	"github.com/khoahotran/portfolio-api/internal/config"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

// ChangeHandler processes one decoded change event.
type ChangeHandler func(ctx context.Context, evt service.ChangeEvent) error

// MessageReader is the part of *kafka.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

const (
	defaultMaxAttempts = 3
	defaultRetryDelay  = time.Second
)

type ChangeConsumer struct {
	reader      MessageReader
	handler     ChangeHandler
	logger      logger.Logger
	maxAttempts int
	retryDelay  time.Duration
}

func NewKafkaReader(cfg config.Config) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    TopicPortfolioEvents,
		GroupID:  cfg.Kafka.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}

func NewChangeConsumer(reader MessageReader, handler ChangeHandler, log logger.Logger) *ChangeConsumer {
	return &ChangeConsumer{
		reader:      reader,
		handler:     handler,
		logger:      log,
		maxAttempts: defaultMaxAttempts,
		retryDelay:  defaultRetryDelay,
	}
}

// Run consumes until ctx is cancelled. Undecodable messages are committed
// and skipped. A failing handler is retried in place with a linear backoff;
// after maxAttempts the message is logged and committed.
func (c *ChangeConsumer) Run(ctx context.Context) error {
	c.logger.Info("Worker listening", zap.String("topic", TopicPortfolioEvents))
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			c.logger.Error("Failed to read message from Kafka", err)
			continue
		}

		evt, err := DecodeChange(msg)
		if err != nil {
			c.logger.Warn("Skipping malformed change event", zap.String("key", string(msg.Key)), zap.Error(err))
			c.commit(ctx, msg)
			continue
		}

		c.logger.Info("Processing change event",
			zap.String("resource", evt.Resource),
			zap.String("event_type", string(evt.EventType)),
			zap.String("profile_id", evt.ProfileID.String()),
		)
		if err := c.handle(ctx, evt); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.logger.Error("Dropping change event after retries", err,
				zap.String("resource_id", evt.ResourceID.String()),
				zap.Int("attempts", c.maxAttempts),
			)
		}
		c.commit(ctx, msg)
	}
}

// handle runs the handler up to maxAttempts times, stopping early when ctx ends.
func (c *ChangeConsumer) handle(ctx context.Context, evt service.ChangeEvent) error {
	var err error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err = c.handler(ctx, evt); err == nil {
			return nil
		}
		if attempt == c.maxAttempts {
			break
		}
		c.logger.Warn("Change event handler failed, retrying",
			zap.Int("attempt", attempt),
			zap.String("resource_id", evt.ResourceID.String()),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * c.retryDelay):
		}
	}
	return err
}

func (c *ChangeConsumer) Close() error { return c.reader.Close() }

func (c *ChangeConsumer) commit(ctx context.Context, msg kafka.Message) {
	if err := c.reader.CommitMessages(context.WithoutCancel(ctx), msg); err != nil {
		c.logger.Error("Failed to commit message", err)
	}
}
