package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/kodomo-labs/kodomo/internal/handler"
	"github.com/kodomo-labs/kodomo/internal/repository/sqlite"
	"github.com/kodomo-labs/kodomo/internal/service"
)

func main() {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	logOpts := &slog.HandlerOptions{Level: slog.LevelInfo}
	logger := slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	))
	slog.SetDefault(logger)

	port := envOrDefault("PORT", "8080")
	dbPath := envOrDefault("DATABASE_PATH", "kodomo.db")
	baseURL := envOrDefault("BASE_URL", "http://localhost:"+port)
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if len(jwtSecret) < 32 {
		slog.Error("JWT_SECRET must be at least 32 characters for HMAC-SHA256 security")
		os.Exit(1)
	}

	bcryptCost := 12
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			slog.Error("invalid BCRYPT_COST", "error", err)
			os.Exit(1)
		}
		if parsed < 4 || parsed > 14 {
			slog.Error("BCRYPT_COST must be between 4 and 14", "value", parsed)
			os.Exit(1)
		}
		bcryptCost = parsed
	}

	db, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied")

	clock := clockwork.NewRealClock()

	authService := service.NewAuthService(db.Users(), jwtSecret, bcryptCost)
	childService := service.NewChildService(db.Children())
	tvLoginService := service.NewTVLoginService(db.TVLogins(), clock)
	progressService := service.NewProgressService(db.Progress(), db.ActivityLogs(), clock)
	badgeService := service.NewBadgeService(db.Badges(), db.ActivityLogs(), db.Progress(), db.Schedules(), clock)
	scheduleService := service.NewScheduleService(db.Schedules(), db.ActivityLogs(), clock)
	flashService := service.NewFlashService(progressService, db.ActivityLogs(), badgeService, logger)
	runner := service.NewRunner(clock, service.NewClipCue(clock))

	// Seed the badge catalog (idempotent).
	if err := badgeService.SeedDefinitions(context.Background()); err != nil {
		slog.Error("failed to seed badge definitions", "error", err)
		os.Exit(1)
	}
	slog.Info("badge definitions seeded")

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, handler.Services{
		Auth:      authService,
		Children:  childService,
		TVLogins:  tvLoginService,
		Progress:  progressService,
		Flash:     flashService,
		Badges:    badgeService,
		Schedules: scheduleService,
		Runner:    runner,
		Clock:     clock,
		BaseURL:   baseURL,
	})

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler.SecurityHeaders(mux),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
