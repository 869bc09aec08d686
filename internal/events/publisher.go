// Package events publishes ledger changes to an AMQP exchange.
package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/MrJamesThe3rd/pocket/internal/watch"
)

const publishTimeout = 5 * time.Second

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// Publisher sends one Message per change. It implements watch.Sink.
type Publisher struct {
	conn       *amqp091.Connection
	channel    channel
	source     string
	exchange   string
	routingKey string
}

var _ watch.Sink = (*Publisher)(nil)

// Dial connects to url and declares a durable direct exchange.
func Dial(url, source, exchange, routingKey string) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange, // name
		"direct", // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()

		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	p := newPublisher(ch, source, exchange, routingKey)
	p.conn = conn

	return p, nil
}

func newPublisher(ch channel, source, exchange, routingKey string) *Publisher {
	return &Publisher{
		channel:    ch,
		source:     source,
		exchange:   exchange,
		routingKey: routingKey,
	}
}

func (p *Publisher) Publish(ctx context.Context, c watch.Change) error {
	msg := NewMessage(p.source, c)

	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,   // exchange
		p.routingKey, // routing key
		false,        // mandatory
		false,        // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    msg.Timestamp,
			Type:         msg.Table + "." + msg.Op,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	slog.InfoContext(ctx, "published ledger change",
		"table", msg.Table,
		"op", msg.Op,
		"ids", len(msg.IDs),
		"exchange", p.exchange)

	return nil
}

func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}

	if p.conn != nil {
		return p.conn.Close()
	}

	return nil
}
