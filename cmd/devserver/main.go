package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"rental-assistant/handler"
	"rental-assistant/internal/assistant"
	"rental-assistant/internal/auth"
	"rental-assistant/internal/config"
	"rental-assistant/internal/domain"
	"rental-assistant/internal/observability"
	"rental-assistant/internal/repository"
	"rental-assistant/internal/usecase"
)

const devSecret = "dev-only-secret"

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	if err := cfg.ValidateDevServer(); err != nil {
		slog.Error("invalid config", "err", err)
		os.Exit(1)
	}
	logger := observability.NewLogger(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)

	shutdownTracing, err := observability.InitTracing("rental-assistant-dev", cfg.TracingEnabled, os.Stderr)
	if err != nil {
		logger.Error("failed to init tracing", "err", err)
		os.Exit(1)
	}

	secret := cfg.JWTSecret
	if secret == "" {
		logger.Warn("JWT_SECRET not set, using the built-in development secret")
		secret = devSecret
	}
	verifier, err := auth.NewVerifier(auth.StaticSecret(secret), auth.WithIssuer(cfg.JWTIssuer))
	if err != nil {
		logger.Error("failed to create token verifier", "err", err)
		os.Exit(1)
	}

	// --- Store + TTL sweep ---
	store := repository.NewMemoryStore(cfg.Retention)
	sweeper := cron.New()
	if _, err := sweeper.AddFunc(cfg.SweepSchedule, func() {
		if n := store.Sweep(time.Now()); n > 0 {
			logger.Info("expired conversations swept", "count", n)
		}
	}); err != nil {
		logger.Error("failed to schedule sweep", "err", err)
		os.Exit(1)
	}

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

	// --- Router ---
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Session-Id", "X-Correlation-Id"},
		ExposedHeaders: []string{"X-Correlation-Id"},
	}))

	r.Get("/assistant/conversation", h.ServeHTTP)
	r.Delete("/assistant/conversation", h.ServeHTTP)
	r.Post("/assistant/messages", h.ServeHTTP)
	r.Post("/dev/token", devToken(verifier))

	r.Get("/ping", ping)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		sweeper.Start()
		<-gctx.Done()
		<-sweeper.Stop().Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return shutdownTracing(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}

func ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}

type devTokenRequest struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

// devToken mints a short-lived token so the web UI can exercise the
// signed-in flow locally.
func devToken(v *auth.Verifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in devTokenRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, `{"error":"INVALID_INPUT"}`, http.StatusBadRequest)
			return
		}
		role := domain.RoleStudent
		if in.Role != "" {
			parsed, ok := domain.ParseCallerRole(in.Role)
			if !ok {
				http.Error(w, `{"error":"INVALID_INPUT","reason":"unknown_role"}`, http.StatusBadRequest)
				return
			}
			role = parsed
		}
		token, err := v.Sign(r.Context(), in.UserID, role, time.Hour)
		if err != nil {
			http.Error(w, `{"error":"INVALID_INPUT"}`, http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"token": token})
	}
}
