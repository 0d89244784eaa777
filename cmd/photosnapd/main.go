package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"photosnap/internal/config"
	"photosnap/internal/inference"
	"photosnap/internal/logging"
	"photosnap/internal/server"
	"photosnap/internal/spaces"
	"photosnap/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	logging.Init(cfg.Log.Level)

	if cfg.Inference.AccessKey == "" {
		log.Warn().Msg("PHOTOSNAP_INFERENCE_ACCESS_KEY not set; generation requests will fail")
	}
	if cfg.Spaces.Key == "" || cfg.Spaces.Secret == "" {
		log.Warn().Msg("Spaces credentials not set; uploads will fail")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracing, err := telemetry.Init(ctx, "photosnapd")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize tracing")
	}
	defer tracing.Shutdown(context.Background())

	generator := inference.New(
		cfg.Inference.BaseURL,
		cfg.Inference.AccessKey,
		inference.WithPolling(cfg.Inference.PollInterval, cfg.Inference.PollTimeout),
	)

	uploader, err := spaces.New(ctx, spaces.Config{
		Bucket:   cfg.Spaces.Bucket,
		Region:   cfg.Spaces.Region,
		Endpoint: cfg.Spaces.SpacesEndpoint(),
		Key:      cfg.Spaces.Key,
		Secret:   cfg.Spaces.Secret,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure Spaces client")
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      server.New(generator, uploader, cfg.Inference.DefaultModel).Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("photosnapd listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server exited")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
