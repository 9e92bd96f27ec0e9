package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Publisher delivers commit events.
type Publisher interface {
	PublishCommitted(ctx context.Context, event CommitEvent) error
}

// NewPublisher returns an AMQP publisher for url, or a publisher that drops
// every event when url is empty.
func NewPublisher(url string, log zerolog.Logger) Publisher {
	if url == "" {
		log.Info().Msg("RABBITMQ_URL not set, commit events disabled")
		return Nop{}
	}
	return &AMQPPublisher{
		url: url,
		log: log.With().Str("component", "event_publisher").Logger(),
	}
}

// Nop discards events.
type Nop struct{}

func (Nop) PublishCommitted(context.Context, CommitEvent) error { return nil }

// AMQPPublisher publishes persistent JSON messages on the default exchange.
// Commits are infrequent, so each publish uses its own connection.
type AMQPPublisher struct {
	url string
	log zerolog.Logger
}

// PublishCommitted declares the durable commit queue and publishes event on it.
func (p *AMQPPublisher) PublishCommitted(ctx context.Context, event CommitEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(CommittedQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	err = ch.PublishWithContext(ctx, "", CommittedQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}

	p.log.Debug().Str("activity_id", event.ActivityID).Msg("Commit event published")
	return nil
}
