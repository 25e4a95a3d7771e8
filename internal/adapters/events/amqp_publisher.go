// Package events publishes domain events to RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/propease_crm/internal/core/domain"
	"github.com/SscSPs/propease_crm/internal/core/ports/outbound"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	exchangeType   = "topic"
	publishTimeout = 5 * time.Second
	appID          = "propease-crm"
)

// AMQPPublisher sends every event to a durable topic exchange, routed by
// event type (e.g. "booking.created").
type AMQPPublisher struct {
	exchange string
	conn     *amqp.Connection

	mu      sync.Mutex
	channel *amqp.Channel
}

var _ outbound.EventPublisher = (*AMQPPublisher)(nil)

// NewAMQPPublisher dials url and declares the exchange.
func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	if exchange == "" {
		return nil, fmt.Errorf("amqp publisher: exchange name is required")
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp publisher: failed to dial broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp publisher: failed to open a channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, exchangeType, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("amqp publisher: failed to declare exchange %q: %w", exchange, err)
	}
	return &AMQPPublisher{exchange: exchange, conn: conn, channel: ch}, nil
}

// Message builds the AMQP message for an event.
func Message(event domain.Event) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("amqp publisher: failed to encode %s event: %w", event.Type, err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		Type:         string(event.Type),
		AppId:        appID,
		Body:         body,
	}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, event domain.Event) error {
	msg, err := Message(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	// amqp channels are not safe for concurrent publishing.
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel == nil || p.conn.IsClosed() {
		return fmt.Errorf("amqp publisher: connection is closed")
	}
	if err := p.channel.PublishWithContext(ctx, p.exchange, string(event.Type), false, false, msg); err != nil {
		return fmt.Errorf("amqp publisher: failed to publish %s: %w", event.Type, err)
	}
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var firstErr error
	if p.channel != nil {
		firstErr = p.channel.Close()
		p.channel = nil
	}
	if err := p.conn.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// LogPublisher writes events to a logger. It is used when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

var _ outbound.EventPublisher = (*LogPublisher)(nil)

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event domain.Event) error {
	p.logger.InfoContext(ctx, "Domain event",
		slog.String("event_type", string(event.Type)),
		slog.String("entity_id", event.EntityID),
		slog.String("actor_id", event.ActorID),
		slog.Time("occurred_at", event.OccurredAt))
	return nil
}

func (p *LogPublisher) Close() error { return nil }
