package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"foodorder/internal/core/domain/model/outbox"
	"foodorder/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

// OrdersExchange is the durable topic exchange order events go to. Routing keys are
// "order.<status>", so consumers can bind to "order.*" or a single status.
const OrdersExchange = "orders_topic"

// amqpChannel is the part of *amqp.Channel the publisher uses.
type amqpChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type RabbitMQPublisher struct {
	conn *amqp.Connection
	ch   amqpChannel
}

var _ ports.EventPublisher = (*RabbitMQPublisher)(nil)

// DialRabbitMQ connects to url and declares the exchange.
func DialRabbitMQ(url string) (*RabbitMQPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	p, err := newRabbitMQPublisher(ch)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	p.conn = conn
	return p, nil
}

func newRabbitMQPublisher(ch amqpChannel) (*RabbitMQPublisher, error) {
	if err := ch.ExchangeDeclare(OrdersExchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare %s: %w", OrdersExchange, err)
	}
	return &RabbitMQPublisher{ch: ch}, nil
}

// Publish sends the event as a persistent JSON message.
func (p *RabbitMQPublisher) Publish(ctx context.Context, event outbox.OrderEventPayload) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	err = p.ch.PublishWithContext(ctx, OrdersExchange, RoutingKey(event), false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Type:         event.Type,
		MessageId:    fmt.Sprintf("%s-%d-%s", event.Type, event.OrderID, event.Status),
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}
	return nil
}

func (p *RabbitMQPublisher) Close() error {
	err := p.ch.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// RoutingKey is "order.<status>".
func RoutingKey(event outbox.OrderEventPayload) string {
	return "order." + event.Status
}
