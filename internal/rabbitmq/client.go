package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/mareknov/lab-strava/internal/config"
	"github.com/mareknov/lab-strava/internal/messaging/payloads"
)

const publishTimeout = 5 * time.Second

// channel: подмножество *amqp.Channel, нужное для публикации
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Client публикует доменные события в durable-очередь RabbitMQ
type Client struct {
	conn      *amqp.Connection
	channel   channel
	queueName string
	logger    *slog.Logger
}

// NewClient подключается к RabbitMQ, открывает канал и объявляет очередь событий
func NewClient(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	conn, err := amqp.Dial(cfg.RabbitMQ.RabbitMQURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	// идемпотентно: существующая очередь не пересоздается
	q, err := ch.QueueDeclare(
		cfg.RabbitMQ.RabbitMQQueueName, // name
		true,                           // durable
		false,                          // delete when unused
		false,                          // exclusive
		false,                          // no-wait
		nil,                            // arguments
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare a queue: %w", err)
	}

	logger.Info("RabbitMQ publisher ready", "queue", q.Name, "messages", q.Messages)

	return &Client{
		conn:      conn,
		channel:   ch,
		queueName: q.Name,
		logger:    logger,
	}, nil
}

// PublishEvent реализует ports.EventPublisher
func (c *Client) PublishEvent(ctx context.Context, event payloads.DomainEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event to JSON: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = c.channel.PublishWithContext(
		publishCtx,
		"",          // exchange
		c.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Type:         string(event.EventType),
			MessageId:    event.EntityID.String(),
			Timestamp:    event.OccurredAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.EventType, err)
	}

	c.logger.Debug("event published", "queue", c.queueName, "event_type", event.EventType, "entity_id", event.EntityID)
	return nil
}

// Close закрывает канал и соединение RabbitMQ
func (c *Client) Close() {
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			c.logger.Error("error closing RabbitMQ channel", "error", err)
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			c.logger.Error("error closing RabbitMQ connection", "error", err)
			return
		}
	}
	c.logger.Info("RabbitMQ connection closed")
}

// NoopPublisher используется, когда RABBITMQ_URL не задан
type NoopPublisher struct{}

func (NoopPublisher) PublishEvent(context.Context, payloads.DomainEvent) error {
	return nil
}
