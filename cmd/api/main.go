package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Ramesh-Sakthivel-18/Gen-Jewels/internal/auth"
	"github.com/Ramesh-Sakthivel-18/Gen-Jewels/internal/diffusion"
	"github.com/Ramesh-Sakthivel-18/Gen-Jewels/internal/http/handlers"
	"github.com/Ramesh-Sakthivel-18/Gen-Jewels/internal/http/httpapi"
	"github.com/Ramesh-Sakthivel-18/Gen-Jewels/internal/infra"
	"github.com/Ramesh-Sakthivel-18/Gen-Jewels/internal/infra/geoip"
	"github.com/Ramesh-Sakthivel-18/Gen-Jewels/internal/providers/prompt"
	"github.com/Ramesh-Sakthivel-18/Gen-Jewels/internal/providers/vision"
	"github.com/Ramesh-Sakthivel-18/Gen-Jewels/internal/storage"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()
	if err := infra.EnsureSchema(ctx, dbpool); err != nil {
		logger.Fatal().Err(err).Msg("failed to ensure schema")
	}

	store, err := storage.NewFileStore(cfg.StorageDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to prepare storage directory")
	}

	authSvc, err := auth.NewService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure auth")
	}

	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip database unavailable, country enrichment disabled")
		resolver = nil
	}

	synthesizer := prompt.NewGroqSynthesizer(prompt.GroqOptions{
		APIKey:         cfg.GroqAPIKey,
		BaseURL:        cfg.GroqBaseURL,
		PromptModel:    cfg.GroqPromptModel,
		TransformModel: cfg.GroqDNAModel,
		OnFallback: func(reason string, err error) {
			logger.Warn().Str("reason", reason).Err(err).Msg("prompt provider fell back to static synthesis")
		},
	})
	extractor := vision.NewGroqExtractor(vision.GroqOptions{
		APIKey:  cfg.GroqAPIKey,
		BaseURL: cfg.GroqBaseURL,
		Model:   cfg.GroqVisionModel,
		OnFallback: func(reason string, err error) {
			logger.Warn().Str("reason", reason).Err(err).Msg("vision provider fell back to generic description")
		},
	})
	renderer := diffusion.NewClient(diffusion.ClientOptions{
		BaseURL: cfg.DiffusionBaseURL,
		LoRA:    cfg.DiffusionLoRA,
	})
	worker := diffusion.NewWorker(renderer, store, logger)

	app := &handlers.App{
		SQL:            infra.NewSQLRunner(dbpool, logger),
		Logger:         logger,
		Auth:           authSvc,
		Synthesizer:    synthesizer,
		Extractor:      extractor,
		Generator:      worker,
		StorageBaseURL: cfg.StorageBaseURL,
	}

	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:          logger,
		Auth:            authSvc,
		GeoResolver:     resolver,
		CORSOrigins:     cfg.CORSOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
		StorageDir:      store.BasePath(),
		StorageBaseURL:  cfg.StorageBaseURL,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
