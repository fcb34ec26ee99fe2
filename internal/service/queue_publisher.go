// This file provides the RabbitMQ publisher for domain events.  Errors
// are logged and returned so callers can ignore failures without
// interrupting the sale that triggered them.
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"cinema-box-office/internal/queue"
)

// SalePublisher publishes a TicketsSoldEvent after a committed sale.
// BookingService treats a nil publisher as "events disabled".
type SalePublisher interface {
	PublishTicketsSold(ctx context.Context, event queue.TicketsSoldEvent) error
}

// AMQPPublisher publishes events to RabbitMQ.  Each publish dials a
// fresh connection; the box office sells a handful of tickets per
// minute, so connection churn is not a concern and a dropped broker
// never leaves a stale channel behind.
type AMQPPublisher struct {
	url string
}

// NewAMQPPublisher returns a publisher for the given broker URL.
func NewAMQPPublisher(url string) *AMQPPublisher {
	return &AMQPPublisher{url: url}
}

// PublishTicketsSold publishes the event to the tickets.sold queue.
// Messages are marked persistent so they survive broker restarts.  Any
// error is logged and returned; the caller decides whether to care.
func (p *AMQPPublisher) PublishTicketsSold(ctx context.Context, event queue.TicketsSoldEvent) error {
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

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(queue.SalesQueueName, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queue.SalesQueueName, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
