package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"shoguntrade/internal/handlers/business"
	"shoguntrade/pkg/config"

	log "github.com/sirupsen/logrus"
)

func main() {
	config.LoadEnv()
	config.InitLogger("")
	log.SetFormatter(&log.JSONFormatter{})

	config.InitDB()

	if err := config.InitRabbitMQ(); err != nil {
		log.Fatal(err)
	}
	defer config.CloseRabbitMQ()

	queue := config.RewardEventsQueue()
	consumer, err := config.NewConsumer(queue)
	if err != nil {
		log.Fatal("Failed to create consumer: ", err)
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{"queue": queue}).Info("Payout worker started, waiting for reward events...")

	err = consumer.Consume(ctx, func(msg []byte) error {
		return business.HandlePayoutEvent(ctx, config.DB, msg)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Consumer stopped: %v", err)
	}
	log.Info("Payout worker stopped")
}
