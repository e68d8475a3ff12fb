package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const publisherAppID = "dashboard"

// Channel is the subset of *amqp.Channel used for publishing.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

var _ Channel = (*amqp.Channel)(nil)

// AMQPPublisher publishes JSON events to a durable topic exchange.
type AMQPPublisher struct {
	open     func() (Channel, error)
	exchange string
	log      *zap.Logger
}

// Dial connects to the broker and declares the exchange. The returned close
// function releases the connection.
func Dial(url, exchange string, log *zap.Logger) (*AMQPPublisher, func() error, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("dial amqp: %w", err)
	}

	open := func() (Channel, error) {
		ch, err := conn.Channel()
		if err != nil {
			return nil, err
		}
		return ch, nil
	}

	p, err := NewAMQPPublisher(open, exchange, log)
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return p, conn.Close, nil
}

func NewAMQPPublisher(open func() (Channel, error), exchange string, log *zap.Logger) (*AMQPPublisher, error) {
	if exchange == "" {
		return nil, errors.New("amqp exchange name cannot be empty")
	}
	if log == nil {
		log = zap.NewNop()
	}

	ch, err := open()
	if err != nil {
		return nil, fmt.Errorf("open channel for exchange declaration: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange %q: %w", exchange, err)
	}
	log.Info("amqp exchange ready", zap.String("exchange", exchange))

	return &AMQPPublisher{
		open:     open,
		exchange: exchange,
		log:      log.With(zap.String("component", "amqp_publisher")),
	}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, e EntityEvent) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ch, err := p.open()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	key := e.RoutingKey()
	err = ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		AppId:        publisherAppID,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", key, err)
	}

	p.log.Debug("event published", zap.String("routing_key", key), zap.Int64("id", e.ID))
	return nil
}
