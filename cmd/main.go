package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"

	"rental-assistant/handler"
	"rental-assistant/internal/assistant"
	"rental-assistant/internal/auth"
	"rental-assistant/internal/config"
	"rental-assistant/internal/integrations/paramstore"
	"rental-assistant/internal/observability"
	"rental-assistant/internal/repository"
	"rental-assistant/internal/usecase"
)

func main() {
	ctx := context.Background()

	// ---- Configuration (read only here) ----
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	if err := cfg.ValidateLambda(); err != nil {
		slog.Error("invalid config", "err", err)
		os.Exit(1)
	}
	logger := observability.NewLogger(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)

	// Spans are flushed synchronously, so the Lambda never exits with
	// buffered spans.
	if _, err := observability.InitTracing("rental-assistant", cfg.TracingEnabled, os.Stdout); err != nil {
		logger.Error("failed to init tracing", "err", err)
		os.Exit(1)
	}

	// ---- AWS SDK config ----
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		logger.Error("failed to load AWS config", "err", err)
		os.Exit(1)
	}

	// ---- Clients ----
	store, err := repository.New(awsdynamodb.NewFromConfig(awsCfg), cfg.StateTable, repository.WithRetention(cfg.Retention))
	if err != nil {
		logger.Error("failed to create conversation store", "err", err)
		os.Exit(1)
	}

	var secret auth.SecretSource = auth.StaticSecret(cfg.JWTSecret)
	if cfg.JWTSecret == "" {
		ssmClient, err := paramstore.New(awsssm.NewFromConfig(awsCfg))
		if err != nil {
			logger.Error("failed to create SSM client", "err", err)
			os.Exit(1)
		}
		param, err := paramstore.NewParameter(ssmClient, cfg.ParamPrefix, cfg.JWTSecretParam)
		if err != nil {
			logger.Error("failed to configure signing secret", "err", err)
			os.Exit(1)
		}
		secret = param
	}
	verifier, err := auth.NewVerifier(secret, auth.WithIssuer(cfg.JWTIssuer))
	if err != nil {
		logger.Error("failed to create token verifier", "err", err)
		os.Exit(1)
	}

	// ---- Handler ----
	svc, err := usecase.NewConversationService(
		usecase.NewSessionResolver(verifier, logger),
		store,
		assistant.NewEngine(),
		cfg.MaxMessageLength,
		logger,
	)
	if err != nil {
		logger.Error("failed to create conversation service", "err", err)
		os.Exit(1)
	}

	h, err := handler.NewHandler(svc, logger)
	if err != nil {
		logger.Error("failed to create handler", "err", err)
		os.Exit(1)
	}

	lambda.Start(h.Handle)
}
