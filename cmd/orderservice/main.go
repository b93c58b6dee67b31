package main

import (
	"context"
	"encoding/hex"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/rookgm/foodorder/config"
	handler "github.com/rookgm/foodorder/internal/handler/http"
	"github.com/rookgm/foodorder/internal/handler/message"
	"github.com/rookgm/foodorder/internal/logger"
	"github.com/rookgm/foodorder/internal/messaging"
	"github.com/rookgm/foodorder/internal/middleware"
	"github.com/rookgm/foodorder/internal/repository"
	"github.com/rookgm/foodorder/internal/repository/postgres"
	"github.com/rookgm/foodorder/internal/service"
	"github.com/rookgm/foodorder/internal/worker"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const authTokenKey = "9c1185a5c5e9fc54612808977ee8f548"

const (
	consumerGroup = "order-service"
	consumerName  = "order-service-1"
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

	tokenKey, err := hex.DecodeString(authTokenKey)
	if err != nil {
		logger.Log.Fatal("Error extracting token key", zap.Error(err))
	}

	// outbound messaging
	publisher := messaging.NewPublisher(cfg.BrokerAddr)
	defer publisher.Close()
	dispatcher := messaging.NewDispatcher(publisher)

	// dependency injection
	// order
	orderRepo := repository.NewOrderRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	restaurantRepo := repository.NewRestaurantRepository(db)
	orderService := service.NewOrderService(orderRepo, customerRepo, restaurantRepo)
	orderHandler := handler.NewOrderHandler(orderService, dispatcher)

	// saga response handlers
	paymentStep := service.NewOrderPaymentStep(orderRepo)
	approvalStep := service.NewOrderApprovalStep(orderRepo)
	paymentRespHandler := message.NewPaymentResponseHandler(paymentStep, dispatcher)
	approvalRespHandler := message.NewApprovalResponseHandler(approvalStep, dispatcher)

	consumer := messaging.NewConsumer(cfg.BrokerAddr, consumerGroup, consumerName)
	defer consumer.Close()

	router := chi.NewRouter()

	router.Use(middleware.Logging(logger.Log))

	// routes that require authentication
	router.Group(func(group chi.Router) {
		group.Use(handler.Auth(tokenKey))
		group.Post("/api/orders", orderHandler.CreateOrder())
		group.Get("/api/orders/{trackingID}", orderHandler.TrackOrder())
	})

	srv := &http.Server{Addr: cfg.ServerAddr, Handler: router}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Log.Info("Running server", zap.String("addr", cfg.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return srv.Shutdown(context.Background())
	})

	g.Go(func() error {
		return worker.NewMessageProcessor(consumer, messaging.TopicPaymentResponse, paymentRespHandler).Run(gctx)
	})

	g.Go(func() error {
		return worker.NewMessageProcessor(consumer, messaging.TopicApprovalResponse, approvalRespHandler).Run(gctx)
	})

	if err := g.Wait(); err != nil {
		logger.Log.Fatal("Error running service", zap.Error(err))
	}
}
