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

	"retention-analytics/config"
	"retention-analytics/internal/analytics"
	"retention-analytics/internal/api"
	"retention-analytics/internal/broker"
	"retention-analytics/internal/redisclient"
	"retention-analytics/internal/service"
	"retention-analytics/internal/store"
	"retention-analytics/internal/util"
	"retention-analytics/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()

	params := analytics.Params{
		DeliveredStatus: cfg.Analytics.DeliveredStatus,
		ShortWindowDays: cfg.Analytics.ShortWindowDays,
		TopCategoriesN:  cfg.Analytics.TopCategoriesN,
	}
	if err := params.Validate(); err != nil {
		log.Fatalf("Invalid analytics configuration: %v", err)
	}

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting retention analytics service")

	tp, err := util.InitTracer("retention-analytics", cfg.Observ.JaegerEndpoint)
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

	cache, err := redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
		time.Duration(cfg.Redis.TTLHours)*time.Hour)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer cache.Close()
	log.Println("Redis connected")

	producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicReports)
	defer producer.Close()
	log.Println("Kafka producer initialized")

	eventPublisher := broker.NewEventPublisher(producer)

	analyticsService, err := service.NewAnalyticsService(db, cache, eventPublisher, params)
	if err != nil {
		log.Fatalf("Failed to create analytics service: %v", err)
	}

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	refreshConsumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicReports, cfg.Kafka.ConsumerGroup)
	refreshWorker := worker.NewRefreshWorker(refreshConsumer, analyticsService)
	go func() {
		if err := refreshWorker.Start(workerCtx); err != nil {
			log.Printf("Refresh worker error: %v", err)
		}
	}()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	handler := api.NewHandler(analyticsService, cfg.Analytics.MinCohortSize, cfg.Analytics.MaxMonthIndex)
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

	workerCancel()
	refreshWorker.Stop()

	log.Println("Server exited")
}
