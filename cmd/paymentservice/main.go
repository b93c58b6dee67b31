package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/rookgm/foodorder/config"
	"github.com/rookgm/foodorder/internal/handler/message"
	"github.com/rookgm/foodorder/internal/logger"
	"github.com/rookgm/foodorder/internal/messaging"
	"github.com/rookgm/foodorder/internal/repository"
	"github.com/rookgm/foodorder/internal/repository/postgres"
	"github.com/rookgm/foodorder/internal/service"
	"github.com/rookgm/foodorder/internal/worker"
	"go.uber.org/zap"
)

const (
	consumerGroup = "payment-service"
	consumerName  = "payment-service-1"
)

func main() {

	// create new config
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Log.Sync()

	// create context cancelled on shutdown signal
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// initialize database
	db, err := postgres.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Log.Fatal("Error initializing database", zap.Error(err))
	}
	defer db.Close()

	// migrate database
	if err := db.Migrate(); err != nil {
		logger.Log.Fatal("Error migrating database", zap.Error(err))
	}

	// outbound messaging
	publisher := messaging.NewPublisher(cfg.BrokerAddr)
	defer publisher.Close()
	dispatcher := messaging.NewDispatcher(publisher)

	// dependency injection
	paymentRepo := repository.NewPaymentRepository(db)
	paymentService := service.NewPaymentService(paymentRepo)
	requestHandler := message.NewPaymentRequestHandler(paymentService, dispatcher)

	consumer := messaging.NewConsumer(cfg.BrokerAddr, consumerGroup, consumerName)
	defer consumer.Close()

	logger.Log.Info("Running payment service", zap.String("broker", cfg.BrokerAddr))

	processor := worker.NewMessageProcessor(consumer, messaging.TopicPaymentRequest, requestHandler)
	if err := processor.Run(ctx); err != nil {
		logger.Log.Fatal("Error running service", zap.Error(err))
	}
}
