package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher sends domain messages to RabbitMQ. Each publish dials a fresh
// connection; booking traffic in a back office is low enough that holding
// a long-lived channel is not worth the reconnect handling. Errors are
// logged and returned so callers can ignore failures without interrupting
// the main request flow.
type Publisher struct {
	url string
}

// NewPublisher returns a Publisher that dials the given AMQP URL.
func NewPublisher(url string) *Publisher { return &Publisher{url: url} }

// Publish declares the durable queue and sends the payload as persistent
// JSON. It never panics; any error is logged and returned.
func (p *Publisher) Publish(ctx context.Context, queueName string, payload any) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare so publish works before any consumer started.
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", queueName, err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish to %s failed: %v", queueName, err)
		return err
	}
	return nil
}
