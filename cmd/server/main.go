package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"

	"github.com/PiWizard3852/Wayve/internal/app"
	"github.com/PiWizard3852/Wayve/internal/auth"
	"github.com/PiWizard3852/Wayve/internal/config"
	"github.com/PiWizard3852/Wayve/internal/database"
	"github.com/PiWizard3852/Wayve/internal/domain"
	"github.com/PiWizard3852/Wayve/internal/logging"
	"github.com/PiWizard3852/Wayve/internal/mailer"
	"github.com/PiWizard3852/Wayve/internal/metrics"
	"github.com/PiWizard3852/Wayve/internal/redis"
	"github.com/PiWizard3852/Wayve/internal/server"
)

func setupConfig() *config.Config {
	// Missing .env is fine; the environment itself may carry everything.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.RunMigrations(ctx, db); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	return db
}

func setupRedis(cfg *config.Config) *goredis.Client {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	return client
}

func setupMailer(cfg *config.Config) domain.Mailer {
	if cfg.SMTPHost == "" {
		slog.Warn("SMTP not configured, verification mails are logged instead of sent")
		return mailer.Noop{}
	}

	m, err := mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom, cfg.BaseURL)
	if err != nil {
		slog.Error("Failed to create SMTP mailer", "error", err)
		os.Exit(1)
	}
	return m
}

func runGracefulShutdown(srv *server.Server) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	pool := setupDB(cfg)
	defer pool.Close()

	// Redis is optional: without it votes are simply never debounced.
	var redisClient *goredis.Client
	var debouncer domain.VoteDebouncer
	if cfg.RedisURL != "" {
		redisClient = setupRedis(cfg)
		defer func() { _ = redisClient.Close() }()
		debouncer = redis.NewDebouncer(redisClient)
	}

	registry := metrics.NewRegistry()
	voteMetrics := metrics.NewVoteMetrics(registry)

	userRepo := database.NewUserRepo(pool)
	postRepo := database.NewPostRepo(pool)
	commentRepo := database.NewCommentRepo(pool)
	voteRepo := database.NewVoteRepo(pool)
	followRepo := database.NewFollowRepo(pool)
	verificationRepo := database.NewVerificationRepo(pool)

	appSvc := app.NewService(
		userRepo, postRepo, commentRepo, voteRepo, followRepo, verificationRepo,
		setupMailer(cfg), debouncer, voteMetrics, clock,
	)

	sessions := auth.NewSessions(cfg.AuthSecret, cfg.IsProduction(), clock)

	srv := server.NewServer(cfg, appSvc, sessions, pool, redisClient, registry)

	done := runGracefulShutdown(srv)

	slog.Info("Server starting", "port", cfg.Port)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
