package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/internal/application/service"
	"github.com/khoahotran/portfolio-api/internal/config"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

const TopicPortfolioEvents = "portfolio.events"

// KafkaPublisher writes change events to the portfolio topic, keyed by
// profile so that one profile's events stay ordered within a partition.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger logger.Logger
}

func NewKafkaPublisher(cfg config.Config, log logger.Logger) (*KafkaPublisher, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  TopicPortfolioEvents,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           50 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}

	log.Info("Initialize Kafka Producer successfully.", zap.Strings("brokers", brokers), zap.String("topic", TopicPortfolioEvents))
	return &KafkaPublisher{writer: writer, logger: log}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, evt service.ChangeEvent) error {
	msg, err := EncodeChange(evt)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write %s event: %w", evt.Resource, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	err := p.writer.Close()
	p.logger.Info("Closed Kafka Producer")
	return err
}

// EncodeChange renders evt as a Kafka message.
func EncodeChange(evt service.ChangeEvent) (kafka.Message, error) {
	value, err := json.Marshal(evt)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal change event: %w", err)
	}
	return kafka.Message{
		Key:   []byte(evt.ProfileID.String()),
		Value: value,
		Time:  evt.OccurredAt,
	}, nil
}

// DecodeChange parses a message produced by EncodeChange.
func DecodeChange(msg kafka.Message) (service.ChangeEvent, error) {
	var evt service.ChangeEvent
	if err := json.Unmarshal(msg.Value, &evt); err != nil {
		return evt, fmt.Errorf("unmarshal change event: %w", err)
	}
	return evt, nil
}
