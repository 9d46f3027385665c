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

	"github.com/estate-api/internal/config"
	"github.com/estate-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/estate-api/internal/infrastructure/jwt"
	redisinfra "github.com/estate-api/internal/infrastructure/redis"
	s3infra "github.com/estate-api/internal/infrastructure/s3"
	"github.com/estate-api/internal/infrastructure/sns"
	transporthttp "github.com/estate-api/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// Redis holds the short-lived OTP records.
	redisClient := redisinfra.NewClient(cfg)
	otpStore := redisinfra.NewOTPStore(redisClient)

	// Session signing requires a secret; refuse to start without one.
	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		log.Fatalf("JWT provider: %v", err)
	}

	// S3 store for profile images and property media.
	s3Client := s3infra.NewClient(cfg)
	s3Store := s3infra.NewStore(s3Client, cfg.S3BucketName)

	smsSender, err := sns.NewSender(cfg)
	if err != nil {
		log.Fatalf("SNS sender: %v", err)
	}

	deps := &transporthttp.Deps{
		CustomerRepo: dynamo.NewCustomerRepo(dynamoClient, cfg.DynamoTables.Customers),
		AgentRepo:    dynamo.NewAgentRepo(dynamoClient, cfg.DynamoTables.Agents),
		BuilderRepo:  dynamo.NewBuilderRepo(dynamoClient, cfg.DynamoTables.Builders),
		PropertyRepo: dynamo.NewPropertyRepo(dynamoClient, cfg.DynamoTables.Properties),
		InquiryRepo:  dynamo.NewInquiryRepo(dynamoClient, cfg.DynamoTables.Inquiries),
		OTPStore:     otpStore,
		S3Store:      s3Store,
		SMSSender:    smsSender,
		JWTProvider:  jwtProvider,
		DynamoPing: func(ctx context.Context) error {
			return dynamo.Ping(ctx, dynamoClient)
		},
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
