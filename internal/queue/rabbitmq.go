package queue

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/streadway/amqp"
)

// RabbitPublisher publishes session updates on a topic exchange.
type RabbitPublisher struct {
	conn     *amqp.Connection
	exchange string
}

func DialRabbitPublisher(url, exchange string) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errors.Wrap(err, "error connecting to RabbitMQ")
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "error opening rabbitmq channel")
	}
	defer ch.Close()
	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // kind
		true,     // durable
		false,    // auto-delete
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		conn.Close()
		return nil, errors.Wrapf(err, "failed to declare exchange %s", exchange)
	}
	return &RabbitPublisher{conn: conn, exchange: exchange}, nil
}

func (p *RabbitPublisher) PublishUpdate(ctx context.Context, update SessionUpdate) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	body, err := json.Marshal(update)
	if err != nil {
		return errors.Wrap(err, "failed to marshal session update")
	}

	return ch.Publish(
		p.exchange,
		routingKey(update.SessionID),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

func (p *RabbitPublisher) Close() error {
	return p.conn.Close()
}

// RabbitConsumer reads session messages from a durable queue. Each worker
// owns one consumer and therefore one connection.
type RabbitConsumer struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	msgs <-chan amqp.Delivery
}

func DialRabbitConsumer(url, queueName string) (*RabbitConsumer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errors.Wrap(err, "error dialling rabbitmq")
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "error connecting to rabbitmq channel")
	}
	_, err = ch.QueueDeclare(
		queueName, // queue name
		true,      // durable (survives broker restarts)
		false,     // auto-delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		conn.Close()
		return nil, errors.Wrapf(err, "failed to declare queue %s", queueName)
	}

	msgs, err := ch.Consume(
		queueName, // queue name
		"",        // consumer tag
		true,      // auto-ack
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "error consuming rabbitmq message")
	}
	return &RabbitConsumer{conn: conn, ch: ch, msgs: msgs}, nil
}

func (c *RabbitConsumer) Next(ctx context.Context) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case msg, ok := <-c.msgs:
		if !ok {
			return nil, ErrClosed
		}
		return msg.Body, nil
	}
}

func (c *RabbitConsumer) Close() error {
	c.ch.Close()
	return c.conn.Close()
}
