// Package events announces listing changes on a RabbitMQ queue so that
// downstream consumers (search indexers, notifiers) can refresh their copies.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/streadway/amqp"

	"github.com/UShishir5355t/real-estate-mvp/utils"
)

const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"

	DefaultQueue = "properties_queue"
)

type PropertyMessage struct {
	Action     string    `json:"action"`
	PropertyID string    `json:"property_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	PublishProperty(ctx context.Context, action, propertyID string) error
}

type RabbitMQPublisher struct {
	mu         sync.Mutex
	connection *amqp.Connection
	channel    *amqp.Channel
	queueName  string
}

func NewRabbitMQPublisher(rabbitURL, queueName string) (*RabbitMQPublisher, error) {
	if queueName == "" {
		queueName = DefaultQueue
	}

	conn, err := amqp.Dial(rabbitURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	utils.Logger.Infof("RabbitMQ publisher ready on queue %s", queueName)
	return &RabbitMQPublisher{connection: conn, channel: ch, queueName: queueName}, nil
}

func (p *RabbitMQPublisher) PublishProperty(ctx context.Context, action, propertyID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(PropertyMessage{
		Action:     action,
		PropertyID: propertyID,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.channel.Publish(
		"",          // default exchange
		p.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
}

func (p *RabbitMQPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.channel.Close(); err != nil {
		p.connection.Close()
		return err
	}
	return p.connection.Close()
}

// Nop drops every message; it is used when no broker is configured.
type Nop struct{}

func (Nop) PublishProperty(context.Context, string, string) error { return nil }
