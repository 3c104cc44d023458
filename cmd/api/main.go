package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pageza/healthtracker/backend/config"
	"github.com/pageza/healthtracker/backend/internal/database"
	"github.com/pageza/healthtracker/backend/internal/server"
	"github.com/pageza/healthtracker/backend/internal/service"
	"github.com/pageza/healthtracker/backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewDevelopment().Fatalw("failed to load configuration", "error", err)
	}

	log := logger.New(cfg.LogLevel)
	if cfg.Env == config.Development {
		log = logger.NewDevelopment()
	}
	defer func() { _ = log.Sync() }()

	for _, w := range cfg.Warnings {
		log.Warnw("configuration warning", "warning", w)
	}

	if err := run(cfg, log); err != nil {
		log.Fatalw("server error", "error", err)
	}
	log.Infow("server stopped")
}

func run(cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()

	if err := database.RunMigrations(db, log); err != nil {
		return err
	}

	var components server.Components

	if cfg.RedisEnabled() {
		client, err := database.NewRedisClient(cfg, log)
		if err != nil {
			// Rate limiting and the redis analysis cache are optional.
			log.Warnw("redis unavailable, continuing without it", "error", err)
		} else {
			components.Redis = client
			defer client.Close()
		}
	}

	if cfg.S3Enabled() {
		s3Config, err := config.NewS3Config(ctx, cfg.S3BucketName, cfg.AWSRegion)
		if err != nil {
			log.Warnw("S3 unavailable, storing photos inline", "error", err)
		} else {
			components.Photos = service.NewS3PhotoStore(s3Config)
		}
	}

	handler, err := server.NewApp(cfg, db, components, log)
	if err != nil {
		return err
	}

	log.Infow("starting server",
		"env", cfg.Env,
		"db_driver", cfg.DBDriver,
		"ai_provider", cfg.AIProvider,
		"redis", components.Redis != nil,
		"s3", components.Photos != nil,
	)
	return server.New(cfg, handler, log).Run(ctx)
}
