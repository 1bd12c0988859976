package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// StartBookingConsumer connects to RabbitMQ and consumes both booking
// queues, appending one human-readable line per message to
// logs/booking.log. It runs a reconnect loop with capped backoff and
// never returns under normal operation; failed messages are rejected
// without requeue so a bad payload cannot wedge the queue.
func StartBookingConsumer(url string) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Printf("booking-consumer: dial failed: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := consumeLoop(conn); err != nil {
			log.Printf("booking-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("booking-consumer: set QoS failed: %v", err)
	}

	merged := make(chan amqp.Delivery)
	for _, name := range []string{BookingCreatedQueue, BookingCancelledQueue} {
		if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
			return fmt.Errorf("queue declare %s: %w", name, err)
		}
		msgs, err := ch.Consume(name, "", false, false, false, false, nil)
		if err != nil {
			return fmt.Errorf("queue consume %s: %w", name, err)
		}
		queueName := name
		go func() {
			for d := range msgs {
				d.Headers = setQueueHeader(d.Headers, queueName)
				merged <- d
			}
		}()
	}

	for d := range merged {
		name, _ := d.Headers["x-source-queue"].(string)
		if err := handleMessage(name, d.Body); err != nil {
			log.Printf("booking-consumer: handle message failed: %v", err)
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func setQueueHeader(h amqp.Table, name string) amqp.Table {
	if h == nil {
		h = amqp.Table{}
	}
	h["x-source-queue"] = name
	return h
}

func handleMessage(queueName string, body []byte) error {
	var line string
	switch queueName {
	case BookingCancelledQueue:
		var ev BookingCancelled
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("unmarshal: %w", err)
		}
		line = fmt.Sprintf("[%s] Booking cancelled | booking_id=%d | customer_id=%d | event_id=%d | seats=%d\n",
			ev.CancelledAt, ev.BookingID, ev.CustomerID, ev.EventID, ev.Seats)
	default:
		var ev BookingCreated
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("unmarshal: %w", err)
		}
		line = fmt.Sprintf("[%s] Booking created | booking_id=%d | customer=%q | event=%q | seats=%d | amount=%.2f\n",
			ev.BookedAt, ev.BookingID, ev.CustomerName, ev.EventTitle, ev.Seats, ev.Amount)
	}

	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(filepath.Join("logs", "booking.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}
