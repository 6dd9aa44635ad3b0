package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/staff-portal/internal/config"
	"github.com/staff-portal/internal/infrastructure/dynamo"
	jwtinfra "github.com/staff-portal/internal/infrastructure/jwt"
	s3infra "github.com/staff-portal/internal/infrastructure/s3"
	"github.com/staff-portal/internal/infrastructure/sns"
	"github.com/staff-portal/internal/portal"
	transporthttp "github.com/staff-portal/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, reading from environment")
	}

	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dynamoClient, err := dynamo.NewClient(ctx, cfg)
	if err != nil {
		fatal("dynamodb client", err)
	}
	// Creates the tables when they don't exist.
	dynamo.Bootstrap(ctx, dynamoClient, cfg.DynamoTables)

	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		fatal("jwt provider", err)
	}

	s3Client, err := s3infra.NewClient(ctx, cfg)
	if err != nil {
		fatal("s3 client", err)
	}

	// SMS is optional; report status changes go unannounced without it.
	var smsSender sns.SMSSender
	if sender, err := sns.NewSender(ctx, cfg); err == nil {
		smsSender = sender
	} else {
		slog.Warn("sns sender not available", "err", err)
	}

	deps := &transporthttp.Deps{
		UserRepo:         dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users),
		SessionRepo:      dynamo.NewSessionRepo(dynamoClient, cfg.DynamoTables.Sessions),
		NotificationRepo: dynamo.NewNotificationRepo(dynamoClient, cfg.DynamoTables.Notifications),
		ReportRepo:       dynamo.NewReportRepo(dynamoClient, cfg.DynamoTables.Reports),
		RecordRepo: dynamo.NewRecordRepo(dynamoClient,
			cfg.DynamoTables.Salaries, cfg.DynamoTables.Expenses, cfg.DynamoTables.Performance),
		Statements:      s3infra.NewStore(s3Client, cfg.S3BucketName, cfg.StatementTTL),
		RenderStatement: portal.RenderStatement,
		SMSSender:       smsSender,
		JWTProvider:     jwtProvider,
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      transporthttp.NewRouter(ctx, cfg, deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("api starting", "port", cfg.AppPort, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal("server error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down api")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		fatal("forced shutdown", err)
	}
	slog.Info("api stopped")
}

func fatal(msg string, err error) {
	slog.Error(msg, "err", err)
	os.Exit(1)
}
