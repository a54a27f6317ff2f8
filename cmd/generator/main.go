package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"events_rss/internal/config"
	"events_rss/internal/feed"
	"events_rss/internal/fetch"
	"events_rss/internal/notify"
	"events_rss/internal/relocate"
	"events_rss/internal/render"
	"events_rss/internal/scheduler"
	"events_rss/internal/service"
	"events_rss/internal/source/stuttgart"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// Setup logger
	logger := setupLogger("info")

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	tz, err := time.LoadLocation(cfg.Source.Timezone)
	if err != nil {
		logger.Error("failed to load timezone", "error", err)
		os.Exit(1)
	}

	// Initialize the scraping pipeline
	fetcher := fetch.New(fetch.Config{
		Timeout:        cfg.Source.Timeout,
		MaxAttempts:    cfg.Source.Retry.MaxAttempts,
		InitialBackoff: cfg.Source.Retry.InitialBackoff,
		MaxBackoff:     cfg.Source.Retry.MaxBackoff,
	}, logger)

	src := stuttgart.New(stuttgart.Config{
		BaseURL:         cfg.Source.BaseURL,
		CategoryParam:   cfg.Source.CategoryParam,
		DefaultImageURL: cfg.Source.DefaultImageURL,
		Timezone:        tz,
	}, fetcher, logger)

	renderer, err := render.New()
	if err != nil {
		logger.Error("failed to initialize renderer", "error", err)
		os.Exit(1)
	}

	store := feed.NewStore(cfg.Output.Directory)

	mover := relocate.New(relocate.Config{
		SourceDir:         cfg.Output.Directory,
		DestinationFolder: cfg.Output.DestinationFolder,
		Enabled:           cfg.Output.EnableMove,
	}, logger)

	// Initialize the feed reader notifier
	var notifier service.Notifier
	switch cfg.Notify.Backend {
	case "nextcloud":
		notifier = notify.NewNextcloud(notify.NextcloudConfig{
			BaseURL:  cfg.Notify.Nextcloud.BaseURL,
			Username: cfg.Notify.Nextcloud.Username,
			Password: cfg.Notify.Nextcloud.Password,
			Timeout:  cfg.Notify.Nextcloud.Timeout,
		}, logger)
	case "amqp":
		amqpNotifier, err := notify.NewAMQP(notify.AMQPConfig{
			URL:        cfg.Notify.AMQP.URL,
			Exchange:   cfg.Notify.AMQP.Exchange,
			RoutingKey: cfg.Notify.AMQP.RoutingKey,
			QueueName:  cfg.Notify.AMQP.QueueName,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer amqpNotifier.Close()
		notifier = amqpNotifier
	}

	generator := service.New(
		src,
		renderer,
		store,
		mover,
		notifier,
		logger,
		service.Config{
			Feeds:         cfg.Feeds,
			HorizonDays:   cfg.Source.HorizonDays,
			ChannelLink:   cfg.Output.ChannelLink,
			Copyright:     cfg.Output.Copyright,
			FeedURLPrefix: cfg.Notify.FeedURLPrefix,
		},
	)

	sched := scheduler.NewScheduler(generator, cfg.Schedule.Interval, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	logger.Info("starting events rss generator",
		"feeds", len(cfg.Feeds),
		"horizon_days", cfg.Source.HorizonDays,
		"interval", cfg.Schedule.Interval,
	)

	if err := sched.Start(ctx); err != nil && err != context.Canceled {
		logger.Error("scheduler error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
