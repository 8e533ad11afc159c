// Package broker publishes listing events to downstream consumers.
package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/abodeconnect/marketplace-api/internal/core/domain"
)

const (
	defaultQueue   = "listing.events"
	publishTimeout = 5 * time.Second
)

// Dial opens a connection to the broker at url.
func Dial(url string) (*amqp.Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	return conn, nil
}

// AMQPPublisher publishes each listing event as a persistent JSON message on
// a durable queue.
type AMQPPublisher struct {
	conn  *amqp.Connection
	queue string
}

// NewAMQPPublisher creates a publisher for queue. An empty queue name selects
// defaultQueue.
func NewAMQPPublisher(conn *amqp.Connection, queue string) *AMQPPublisher {
	if queue == "" {
		queue = defaultQueue
	}
	return &AMQPPublisher{conn: conn, queue: queue}
}

func (p *AMQPPublisher) Publish(ctx context.Context, ev domain.ListingEvent) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel: %w", err)
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	msg, err := newMessage(ev)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		return fmt.Errorf("publish listing event: %w", err)
	}
	return nil
}

func newMessage(ev domain.ListingEvent) (amqp.Publishing, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal listing event: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.ID,
		Type:         string(ev.Type),
		Timestamp:    ev.OccurredAt,
		Body:         payload,
	}, nil
}
