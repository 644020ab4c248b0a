package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crm-service/config"
	"crm-service/internal/api"
	"crm-service/internal/apiclient"
	"crm-service/internal/broker"
	"crm-service/internal/joblog"
	"crm-service/internal/redisclient"
	"crm-service/internal/service"
	"crm-service/internal/store"
	"crm-service/internal/util"
	"crm-service/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting CRM service")

	tp, err := util.InitTracer("crm-service", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	db, err := store.NewStore(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Database connected")

	if err := db.Migrate(context.Background()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Redis connected")

	producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicCRM)
	defer producer.Close()
	log.Println("Kafka producer initialized")

	eventPublisher := broker.NewEventPublisher(producer)

	customerService := service.NewCustomerService(db, eventPublisher)
	productService := service.NewProductService(db, redisClient, eventPublisher)
	orderService := service.NewOrderService(db, db, db, eventPublisher)

	heartbeatLog, err := joblog.Open(cfg.Jobs.HeartbeatLog)
	if err != nil {
		log.Fatalf("Failed to open heartbeat log: %v", err)
	}
	defer heartbeatLog.Close()

	lowStockLog, err := joblog.Open(cfg.Jobs.LowStockLog)
	if err != nil {
		log.Fatalf("Failed to open low-stock log: %v", err)
	}
	defer lowStockLog.Close()

	// The heartbeat probes the externally visible endpoint; the low-stock
	// sweep is co-located and calls the service layer directly.
	probe := apiclient.New(cfg.API.BaseURL)
	heartbeatWorker := worker.NewHeartbeatWorker(probe, heartbeatLog)
	lowStockWorker := worker.NewLowStockWorker(productService, lowStockLog)

	scheduler, err := worker.NewScheduler(
		cfg.Jobs.HeartbeatCron, cfg.Jobs.LowStockCron,
		heartbeatWorker, lowStockWorker)
	if err != nil {
		log.Fatalf("Failed to set up job scheduler: %v", err)
	}
	scheduler.Start()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	handler := api.NewHandler(customerService, productService, orderService)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	scheduler.Stop()

	log.Println("Server exited")
}
