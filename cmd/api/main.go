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

	"github.com/exposure-verify-api/internal/application/delivery"
	"github.com/exposure-verify-api/internal/config"
	"github.com/exposure-verify-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/exposure-verify-api/internal/infrastructure/jwt"
	"github.com/exposure-verify-api/internal/infrastructure/proxy"
	snsinfra "github.com/exposure-verify-api/internal/infrastructure/sns"
	sqsinfra "github.com/exposure-verify-api/internal/infrastructure/sqs"
	twilioinfra "github.com/exposure-verify-api/internal/infrastructure/twilio"
	transporthttp "github.com/exposure-verify-api/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient, err := dynamo.NewClient(context.Background(), cfg)
	if err != nil {
		log.Fatalf("dynamodb client: %v", err)
	}
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// JWT provider (optional — graceful fallback if keys are missing).
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
	} else {
		log.Printf("WARN: JWT provider not available, issuance is unauthenticated: %v", err)
	}

	deliveryRouter := buildDeliveryRouter(cfg)
	log.Printf("delivery strategy: %s", deliveryRouter.Strategy())

	metricRepo, err := dynamo.NewMetricRepo(dynamoClient, cfg.DynamoTables.Metrics, cfg.MetricsOrigin, cfg.MetricsTimezone)
	if err != nil {
		log.Fatalf("metrics repo: %v", err)
	}

	deps := &transporthttp.Deps{
		VerificationRepo: dynamo.NewVerificationRepo(dynamoClient, cfg.DynamoTables.Verifications),
		MetricRepo:       metricRepo,
		DeliveryRouter:   deliveryRouter,
		JWTProvider:      jwtProvider,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}

// buildDeliveryRouter wires the single configured delivery strategy.
// Precedence: issue proxy > delivery queue > direct SMS provider.
func buildDeliveryRouter(cfg *config.Config) *delivery.Router {
	deps := delivery.RouterDeps{SMSTemplate: cfg.SMSTemplate}

	switch {
	case cfg.IssueProxyURL != "":
		deps.Proxy = proxy.NewClient(cfg.IssueProxyURL)
	case cfg.DeliveryQueueURL != "":
		queue, err := sqsinfra.NewQueue(cfg)
		if err != nil {
			log.Fatalf("delivery queue: %v", err)
		}
		deps.Queue = queue
	case cfg.EnableSNS:
		sender, err := snsinfra.NewSender(cfg)
		if err != nil {
			log.Fatalf("sns sender: %v", err)
		}
		deps.SMS = sender
	default:
		deps.SMS = twilioinfra.NewSender(cfg)
	}

	return delivery.NewRouter(deps)
}
