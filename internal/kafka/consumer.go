package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"

	kafkago "github.com/segmentio/kafka-go"

	"sgpj-client/internal/logging"
	"sgpj-client/internal/models"
)

// Queue accepts decoded reminders. *services.Service implements it.
type Queue interface {
	Enqueue(ctx context.Context, task models.Task) bool
}

// MessageReader is the part of *kafkago.Reader the consumer uses.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafkago.Message, error)
	Close() error
}

type Consumer struct {
	reader MessageReader
	queue  Queue
	logger *logging.Logger
}

func NewConsumer(cfg Config, queue Queue, logger *logging.Logger) *Consumer {
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{cfg.Broker},
		GroupID:     cfg.GroupID,
		Topic:       cfg.Topic,
		StartOffset: kafkago.FirstOffset,
	})
	return NewConsumerWithReader(r, queue, logger)
}

func NewConsumerWithReader(r MessageReader, queue Queue, logger *logging.Logger) *Consumer {
	return &Consumer{reader: r, queue: queue, logger: logger}
}

// Start reads until ctx is done or the reader is closed.
func (c *Consumer) Start(ctx context.Context, wg *sync.WaitGroup) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.logger.Infof("Kafka consumer started")
		for {
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, io.EOF) {
					c.logger.Infof("Kafka consumer stopped")
					return
				}
				c.logger.Errorf("Read message failed: %v", err)
				continue
			}
			c.handle(ctx, msg)
		}
	}()
}

func (c *Consumer) handle(ctx context.Context, msg kafkago.Message) {
	var task models.Task
	if err := json.Unmarshal(msg.Value, &task); err != nil {
		c.logger.Errorf("Unmarshal message failed: %v", err)
		return
	}
	if task.Key == "" || task.Subject == "" {
		c.logger.Errorf("Invalid message at offset %d: missing key or subject", msg.Offset)
		return
	}
	task.Source = models.SourceKafka
	if c.queue.Enqueue(ctx, task) {
		c.logger.Infof("Processed Kafka message %s", task.Key)
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
