// Package rabbitmq publishes delivery status-change events to a topic
// exchange. Consumers (driver trip lists, requester order views) refresh
// from these events instead of polling.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

const exchangeName = "dispatch.events"

// statusChangedMessage is the wire shape of one status-change event.
type statusChangedMessage struct {
	DeliveryID int64     `json:"deliveryId"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	DriverID   *int64    `json:"driverId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// StatusPublisher implements ports.EventPublisher over a RabbitMQ topic
// exchange. Publish failures are logged and swallowed: the business
// operation has already committed by the time an event is emitted.
type StatusPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	log     *slog.Logger
}

// NewStatusPublisher dials the broker, opens a publishing channel, and
// declares the topic exchange.
func NewStatusPublisher(url string, logger *slog.Logger) (*StatusPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial failed: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel open failed: %w", err)
	}

	if err = channel.ExchangeDeclare(
		exchangeName,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq exchange declare failed: %w", err)
	}

	return &StatusPublisher{
		conn:    conn,
		channel: channel,
		log:     logger.With("component", "rabbitmq-publisher"),
	}, nil
}

// PublishStatusChanged emits one event with routing key
// "delivery.status_changed.<to-status>".
func (p *StatusPublisher) PublishStatusChanged(ctx context.Context, event ports.StatusChangedEvent) error {
	message := statusChangedMessage{
		DeliveryID: event.DeliveryID.Int64(),
		From:       event.From.String(),
		To:         event.To.String(),
		OccurredAt: event.OccurredAt,
	}
	if event.DriverID != nil {
		driverID := event.DriverID.Int64()
		message.DriverID = &driverID
	}

	body, err := json.Marshal(message)
	if err != nil {
		p.log.Error("marshal status event", "error", err, "deliveryId", message.DeliveryID)
		return err
	}

	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	routingKey := "delivery.status_changed." + event.To.String()
	if err = p.channel.PublishWithContext(publishCtx,
		exchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
		},
	); err != nil {
		p.log.Error("publish status event", "error", err,
			"deliveryId", message.DeliveryID, "routingKey", routingKey)
		return err
	}

	return nil
}

// Close releases the channel and connection.
func (p *StatusPublisher) Close() {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
