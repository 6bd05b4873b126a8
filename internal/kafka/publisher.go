package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"sgpj-client/internal/logging"
	"sgpj-client/internal/models"
)

type Config struct {
	Broker  string
	Topic   string
	GroupID string
}

// MessageWriter is the part of *kafkago.Writer the publisher uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher emits reminder events keyed by reminder key, so every event
// for one reminder lands on the same partition.
type Publisher struct {
	writer MessageWriter
	logger *logging.Logger
}

func NewPublisher(cfg Config, logger *logging.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Broker),
		Topic:        cfg.Topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}
	return NewPublisherWithWriter(w, logger)
}

func NewPublisherWithWriter(w MessageWriter, logger *logging.Logger) *Publisher {
	return &Publisher{writer: w, logger: logger}
}

func (p *Publisher) Publish(ctx context.Context, task models.Task) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to encode reminder %s: %w", task.Key, err)
	}
	msg := kafkago.Message{
		Key:   []byte(task.Key),
		Value: payload,
		Time:  task.Timestamp,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish reminder %s: %w", task.Key, err)
	}
	p.logger.Debugf("Published reminder %s", task.Key)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
