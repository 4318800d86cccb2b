package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	defaultRetentionDays    = 30
	defaultMaxMessageLength = 500
	defaultPort             = "8080"
	defaultJWTSecretParam   = "auth/jwt_secret"
	defaultSweepSchedule    = "@every 1h"
)

type Config struct {
	// StateTable is the DynamoDB table holding conversations.
	StateTable string
	// ParamPrefix is the SSM path prefix for secrets.
	ParamPrefix    string
	JWTSecretParam string
	// JWTSecret is a literal signing secret; it takes precedence over SSM.
	JWTSecret string
	JWTIssuer string

	// Retention is the sliding expiry window of a conversation.
	Retention        time.Duration
	MaxMessageLength int

	Port          string
	SweepSchedule string
	CORSOrigins   []string
	LogLevel      slog.Level

	// TracingEnabled writes OpenTelemetry spans to stdout.
	TracingEnabled bool
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getIntEnv(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("config: %s must be a positive integer, got %q", key, v)
	}
	return n, nil
}

func getBoolEnv(key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "":
		return def
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func getListEnv(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// Load reads the environment. Values needed only by one binary are checked
// by that binary's Validate call.
func Load() (Config, error) {
	retentionDays, err := getIntEnv("RETENTION_DAYS", defaultRetentionDays)
	if err != nil {
		return Config{}, err
	}
	maxLen, err := getIntEnv("MAX_MESSAGE_LENGTH", defaultMaxMessageLength)
	if err != nil {
		return Config{}, err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(getEnv("LOG_LEVEL", "INFO"))); err != nil {
		return Config{}, fmt.Errorf("config: LOG_LEVEL: %w", err)
	}

	cfg := Config{
		StateTable:       getEnv("STATE_TABLE", ""),
		ParamPrefix:      strings.TrimRight(getEnv("PARAM_PREFIX", ""), "/"),
		JWTSecretParam:   getEnv("JWT_SECRET_PARAM", defaultJWTSecretParam),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTIssuer:        getEnv("JWT_ISSUER", ""),
		Retention:        time.Duration(retentionDays) * 24 * time.Hour,
		MaxMessageLength: maxLen,
		Port:             getEnv("PORT", defaultPort),
		SweepSchedule:    getEnv("SWEEP_SCHEDULE", defaultSweepSchedule),
		CORSOrigins:      getListEnv("CORS_ORIGINS", []string{"*"}),
		LogLevel:         level,
		TracingEnabled:   getBoolEnv("OTEL_ENABLED", false),
	}
	return cfg, nil
}

// ValidateLambda checks what the Lambda entrypoint needs.
func (c Config) ValidateLambda() error {
	if c.StateTable == "" {
		return errors.New("config: STATE_TABLE is required")
	}
	if c.JWTSecret == "" && c.ParamPrefix == "" {
		return errors.New("config: PARAM_PREFIX is required when JWT_SECRET is not set")
	}
	return nil
}

// ValidateDevServer checks what the local dev server needs.
func (c Config) ValidateDevServer() error {
	if c.Port == "" {
		return errors.New("config: PORT is required")
	}
	if _, err := cron.ParseStandard(c.SweepSchedule); err != nil {
		return fmt.Errorf("config: SWEEP_SCHEDULE %q: %w", c.SweepSchedule, err)
	}
	return nil
}
