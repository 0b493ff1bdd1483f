package config

import (
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	log "github.com/sirupsen/logrus"
)

var RabbitMQ *amqp.Connection

// RewardEventsQueue is the queue reward workflow events are published to.
func RewardEventsQueue() string {
	return GetEnv("REWARD_EVENTS_QUEUE", "reward_events")
}

// RabbitMQConfigured reports whether a broker host is set.
func RabbitMQConfigured() bool {
	return GetEnv("RABBITMQ_HOST", "") != ""
}

// InitRabbitMQ connects to RabbitMQ with retry logic
func InitRabbitMQ() error {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		GetEnv("RABBITMQ_USER", "guest"),
		GetEnv("RABBITMQ_PASSWORD", "guest"),
		GetEnv("RABBITMQ_HOST", "localhost"),
		GetEnv("RABBITMQ_PORT", "5672"),
	)

	maxRetries := GetEnvInt("RABBITMQ_MAX_RETRIES", 10)
	retryDelay := 3 * time.Second

	var err error
	for i := 0; i < maxRetries; i++ {
		var conn *amqp.Connection
		conn, err = amqp.Dial(url)
		if err == nil {
			RabbitMQ = conn
			log.Infof("Successfully connected to RabbitMQ at %s", GetEnv("RABBITMQ_HOST", "localhost"))
			return nil
		}

		if i < maxRetries-1 {
			log.Warnf("Failed to connect to RabbitMQ (attempt %d/%d): %v. Retrying in %v...", i+1, maxRetries, err, retryDelay)
			time.Sleep(retryDelay)
		}
	}

	return fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", maxRetries, err)
}

// CloseRabbitMQ closes the shared connection if open.
func CloseRabbitMQ() {
	if RabbitMQ != nil && !RabbitMQ.IsClosed() {
		if err := RabbitMQ.Close(); err != nil {
			log.Warnf("Failed to close RabbitMQ connection: %v", err)
		}
	}
}
