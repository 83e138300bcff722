package kafka

import (
	"context"
	"strings"
	"time"

	"github.com/IBM/sarama"
	"github.com/go-playground/validator/v10"

	"bakery-dispatch/internal/logx"
	"bakery-dispatch/internal/service/orders"
)

// HandleFunc processes a single orders.Event from Kafka
type HandleFunc func(context.Context, orders.Event) error

var newConsumerGroup = sarama.NewConsumerGroup

const defaultBackoff = time.Second

// Consumer wraps a Sarama consumer group and dispatches events to a handler.
// A handler error other than PermanentError leaves the message uncommitted for redelivery.
type Consumer struct {
	group    sarama.ConsumerGroup
	topic    string
	handler  HandleFunc
	logger   logx.Logger
	validate *validator.Validate
	backoff  time.Duration
}

// NewConsumer creates a new Kafka consumer. It returns nil, nil when Kafka is not configured.
func NewConsumer(logger logx.Logger, brokers []string, groupID, topic string, h HandleFunc) (*Consumer, error) {
	if logger == nil {
		logger = logx.Nop()
	}
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" || strings.TrimSpace(groupID) == "" {
		logger.Info("kafka consumer disabled")
		return nil, nil
	}

	cfg := sarama.NewConfig()
	cfg.Consumer.Offsets.Initial = sarama.OffsetOldest

	group, err := newConsumerGroup(brokers, groupID, cfg)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		group:    group,
		topic:    topic,
		handler:  h,
		logger:   logger,
		validate: validator.New(),
		backoff:  defaultBackoff,
	}, nil
}

// Run consumes until ctx is done.
func (c *Consumer) Run(ctx context.Context) error {
	if c == nil {
		return nil
	}

	h := &groupHandler{c: c}
	for {
		if err := c.group.Consume(ctx, []string{c.topic}, h); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Error("kafka consume error", logx.String("topic", c.topic), logx.Err(err))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.backoff):
			}
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// Close leaves the consumer group.
func (c *Consumer) Close() error {
	if c == nil {
		return nil
	}
	return c.group.Close()
}

type groupHandler struct{ c *Consumer }

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *groupHandler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		ev, err := decodeEvent(h.c.validate, msg.Value)
		if err == nil {
			err = h.c.handler(sess.Context(), ev)
		}
		if err != nil && !IsPermanent(err) {
			h.c.logger.Error("kafka handle failed, will redeliver",
				logx.Int64("offset", msg.Offset),
				logx.Int64("order_id", ev.OrderID),
				logx.String("status", ev.Status),
				logx.Err(err),
			)
			return err
		}
		if err != nil {
			h.c.logger.Warn("kafka message skipped",
				logx.Int64("offset", msg.Offset),
				logx.Err(err),
			)
		}
		sess.MarkMessage(msg, "")
	}
	return nil
}
