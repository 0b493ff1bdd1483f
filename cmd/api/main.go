package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"shoguntrade/internal/handlers"
	"shoguntrade/internal/handlers/business"
	"shoguntrade/internal/realtime"
	"shoguntrade/internal/routes"
	"shoguntrade/pkg/config"

	log "github.com/sirupsen/logrus"
)

func main() {
	config.LoadEnv()
	config.InitLogger("")

	if config.JWTSecretIsDefault() {
		log.Warn("JWT_SECRET not set, using the development key")
	}

	config.InitDB()

	fees, err := config.LoadFeePolicy()
	if err != nil {
		log.Fatalf("Failed to load fee policy: %v", err)
	}

	hub := realtime.NewHub()
	publishers := business.Fanout{hub}

	// RabbitMQ is optional; without it events only reach the websocket feed.
	if config.RabbitMQConfigured() {
		if err := config.InitRabbitMQ(); err != nil {
			log.Fatal(err)
		}
		defer config.CloseRabbitMQ()

		publisher, err := config.NewPublisher()
		if err != nil {
			log.Fatalf("Failed to create publisher: %v", err)
		}
		defer publisher.Close()
		publishers = append(publishers, business.QueuePublisher{Sender: publisher, Queue: config.RewardEventsQueue()})
		log.Info("RabbitMQ initialized successfully")
	} else {
		log.Info("RabbitMQ not configured, skipping initialization")
	}

	handlers.InitRewardService(fees, publishers)

	srv := &http.Server{
		Addr:              ":" + config.GetEnv("PORT", "8080"),
		Handler:           routes.SetupRouter(hub),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Infof("API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server:", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Graceful shutdown failed: %v", err)
	}
}
