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

	"takeout/cmd"
	httpin "takeout/internal/adapters/in/http"
	"takeout/internal/adapters/out/geo"
	"takeout/internal/adapters/out/kafka"
	"takeout/internal/adapters/out/postgres/migrations"
	redisq "takeout/internal/adapters/out/redis"
	"takeout/internal/adapters/out/stripe"
	"takeout/internal/adapters/out/websocket"
	"takeout/internal/jobs"
	"takeout/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg, err := cmd.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("takeout stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg cmd.Config, logger *slog.Logger) error {
	if err := migrations.Apply(ctx, cfg.DSN()); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	gormDB, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	queue, err := redisq.NewDelayQueue(rdb, redisq.DefaultKey, cfg.ReaperLease, logger)
	if err != nil {
		return err
	}

	publisher, err := kafka.NewPublisher(kafka.NewWriter(kafka.ParseBrokers(cfg.KafkaBrokers), cfg.KafkaOrderDispatchedTopic))
	if err != nil {
		return err
	}
	defer publisher.Close()

	gateway, err := stripe.NewGateway(stripe.Config{
		SecretKey:     cfg.StripeSecretKey,
		WebhookSecret: cfg.StripeWebhookSecret,
		Currency:      cfg.PaymentCurrency,
	})
	if err != nil {
		return err
	}
	geoClient, err := geo.NewClient(geo.Config{BaseURL: cfg.GeoBaseURL, AccessKey: cfg.GeoAccessKey})
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	hub := websocket.NewHub(cfg.WSSendBuffer, logger, m)
	defer hub.Close()

	app, err := cmd.NewCompositionRoot(cfg, gormDB, cmd.Dependencies{
		Gateway:   gateway,
		Geo:       geoClient,
		Timeouts:  queue,
		Notifier:  hub,
		Publisher: publisher,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	reaper := jobs.NewTimeoutReaperJob(queue, app.CreateTimeoutCancelCommandHandler(), cfg.ReaperBatchSize, logger, m)
	jobManager := jobs.NewJobManager(reaper)
	if err := jobManager.StartAll(); err != nil {
		return fmt.Errorf("start jobs: %w", err)
	}
	defer jobManager.StopAll()

	auth, err := httpin.NewAuthenticator(cfg.JWTSecret)
	if err != nil {
		return err
	}
	server, err := httpin.NewServer(app.HTTPHandlers(), httpin.Options{
		Captures: gateway,
		Realtime: hub,
		Auth:     auth,
		Metrics:  m,
		Gatherer: registry,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(cfg.EchoLogLevel())
	if err := server.Register(ctx, e); err != nil {
		return fmt.Errorf("register routes: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	logger.Info("takeout started", "port", cfg.HTTPPort)

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
