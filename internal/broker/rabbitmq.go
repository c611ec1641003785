package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

// RideExchange is the topic exchange ride and payment events are published to.
const RideExchange = "ride_topic"

// Publisher publishes JSON events to a RabbitMQ topic exchange.
type Publisher struct {
	conn     *amqp091.Connection
	mu       sync.Mutex
	ch       *amqp091.Channel
	exchange string
}

// NewPublisher dials RabbitMQ and declares the ride exchange.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		RideExchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", RideExchange, err)
	}

	log.Printf("Connected to RabbitMQ, exchange %s ready", RideExchange)

	return &Publisher{conn: conn, ch: ch, exchange: RideExchange}, nil
}

// Publish marshals body and publishes it as a persistent message under routingKey.
func (p *Publisher) Publish(ctx context.Context, routingKey string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", routingKey, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	return p.ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    time.Now(),
		Body:         data,
	})
}

// Close closes the channel and connection.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.Close(); err != nil {
		log.Printf("failed to close RabbitMQ channel: %v", err)
	}
	return p.conn.Close()
}
