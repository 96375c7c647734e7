package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

const RoutingKeyNotificationCreated = "notification.created"

type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

type NotificationCreated struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	ActionURL string    `json:"action_url"`
	CreatedAt time.Time `json:"created_at"`
}

type amqpChannel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type AMQPPublisher struct {
	channel  amqpChannel
	exchange string
}

func NewAMQPPublisher(channel amqpChannel, exchange string) *AMQPPublisher {
	return &AMQPPublisher{channel: channel, exchange: exchange}
}

func (p *AMQPPublisher) Publish(_ context.Context, routingKey string, message any) error {
	const op = "events.Publish"
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = p.channel.Publish(
		p.exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Dial connects to the broker and declares the topic exchange events are published to.
func Dial(url, exchange string) (*AMQPPublisher, func() error, error) {
	const op = "events.Dial"
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	closeFn := func() error {
		_ = ch.Close()
		return conn.Close()
	}
	return NewAMQPPublisher(ch, exchange), closeFn, nil
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, any) error {
	return nil
}
