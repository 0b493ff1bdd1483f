package config

import (
	"context"
	"errors"

	amqp "github.com/rabbitmq/amqp091-go"
	log "github.com/sirupsen/logrus"
)

type Consumer struct {
	channel *amqp.Channel
	queue   string
}

func NewConsumer(queueName string) (*Consumer, error) {
	if RabbitMQ == nil {
		return nil, errors.New("RabbitMQ connection not initialized")
	}
	ch, err := RabbitMQ.Channel()
	if err != nil {
		return nil, err
	}

	q, err := ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	)
	if err != nil {
		return nil, err
	}
	if err := ch.Qos(GetEnvInt("RABBITMQ_PREFETCH", 10), 0, false); err != nil {
		return nil, err
	}

	return &Consumer{channel: ch, queue: q.Name}, nil
}

// Consume delivers messages to handler until ctx is cancelled or the
// delivery channel closes. A failed message is requeued once; failing again
// on redelivery it is dropped (or dead-lettered when the queue has a DLX).
func (c *Consumer) Consume(ctx context.Context, handler func([]byte) error) error {
	msgs, err := c.channel.Consume(
		c.queue,
		"",    // consumer
		false, // autoAck
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,   // args
	)
	if err != nil {
		return err
	}

	log.Infof("Consumer is running on queue %s", c.queue)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				return errors.New("delivery channel closed")
			}
			settle(msg, handler(msg.Body))
		}
	}
}

func settle(msg amqp.Delivery, err error) {
	if err == nil {
		_ = msg.Ack(false)
		return
	}
	if msg.Redelivered {
		log.WithFields(log.Fields{
			"message_id": msg.MessageId,
			"body":       string(msg.Body),
		}).Errorf("Handle msg failed on redelivery, dropping: %v", err)
		_ = msg.Nack(false, false)
		return
	}
	log.Errorf("Handle msg failed, requeueing: %v", err)
	_ = msg.Nack(false, true)
}

func (c *Consumer) Close() error {
	return c.channel.Close()
}
