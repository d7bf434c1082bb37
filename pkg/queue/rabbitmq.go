package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"clubhub/pkg/config"
	"clubhub/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	BookingExchange     = "bookings"
	PaymentExchange     = "payments"
	SettlementQueueName = "settlement_events"
	SettlementKey       = "settlement"
)

// SettlementMessage is the wire shape of an asynchronous payment confirmation.
type SettlementMessage struct {
	EventID    string `json:"event_id"`
	Kind       string `json:"kind"`
	MemberID   string `json:"member_id"`
	PackageID  string `json:"package_id,omitempty"`
	PaymentRef string `json:"payment_ref,omitempty"`
	BookingID  string `json:"booking_id,omitempty"`
}

type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQUser,
		cfg.RabbitMQPassword,
		cfg.RabbitMQHost,
		cfg.RabbitMQPort,
	)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	// Exchange for booking lifecycle events we publish
	err = channel.ExchangeDeclare(
		BookingExchange, // name
		"topic",         // type
		true,            // durable
		false,           // auto-deleted
		false,           // internal
		false,           // no-wait
		nil,             // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare booking exchange: %w", err)
	}

	// Exchange + queue for payment settlement events we consume
	err = channel.ExchangeDeclare(
		PaymentExchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare payment exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		SettlementQueueName, // name
		true,                // durable
		false,               // delete when unused
		false,               // exclusive
		false,               // no-wait
		nil,                 // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare settlement queue: %w", err)
	}

	err = channel.QueueBind(
		SettlementQueueName,
		SettlementKey,
		PaymentExchange,
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind settlement queue: %w", err)
	}

	log.Info("Connected to RabbitMQ at %s:%s", cfg.RabbitMQHost, cfg.RabbitMQPort)

	return &Client{
		conn:    conn,
		channel: channel,
		logger:  log,
	}, nil
}

// PublishBookingEvent publishes a booking lifecycle event
// (booking.confirmed, booking.cancelled, booking.completed).
func (c *Client) PublishBookingEvent(ctx context.Context, routingKey string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = c.channel.PublishWithContext(ctx,
		BookingExchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// ConsumeSettlements delivers settlement messages to the handler until the
// channel closes. Messages the handler rejects are requeued once via nack.
func (c *Client) ConsumeSettlements(handler func(SettlementMessage) error) error {
	deliveries, err := c.channel.Consume(
		SettlementQueueName,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to start settlement consumer: %w", err)
	}

	go func() {
		for d := range deliveries {
			var msg SettlementMessage
			if err := json.Unmarshal(d.Body, &msg); err != nil {
				c.logger.Error("Malformed settlement message, dropping: %v", err)
				d.Nack(false, false)
				continue
			}

			if err := handler(msg); err != nil {
				c.logger.Error("Failed to process settlement %s: %v", msg.EventID, err)
				d.Nack(false, !d.Redelivered)
				continue
			}

			d.Ack(false)
		}
	}()

	return nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			return err
		}
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
