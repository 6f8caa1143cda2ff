package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"emoticare/internal/adapter/repo"
	"emoticare/internal/assemble"
	httpapi "emoticare/internal/http"
	"emoticare/internal/http/handlers"
	"emoticare/internal/infra"
	"emoticare/internal/infra/geoip"
	"emoticare/internal/middleware"
	"emoticare/internal/parse"
	"emoticare/internal/prompt"
	"emoticare/internal/providers/gemini"
	"emoticare/internal/providers/heygen"
	"emoticare/internal/storage"
)

func main() {
	// Load .env (optional)
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()

	geminiClient, err := gemini.NewClient(gemini.Options{
		APIKey:      cfg.GeminiAPIKey,
		BaseURL:     cfg.GeminiBaseURL,
		Model:       cfg.GeminiModel,
		VisionModel: cfg.GeminiVisionModel,
		Logger:      &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build gemini client")
	}

	app := &handlers.App{
		Logger:             logger,
		Cfg:                cfg,
		Gemini:             geminiClient,
		Builder:            prompt.NewBuilder(),
		SupportParser:      parse.NewSupportParser(&logger),
		PrescriptionParser: parse.NewPrescriptionParser(&logger),
		SurgeryParser:      parse.NewSurgeryParser(&logger),
		WoundParser:        parse.NewWoundParser(&logger),
		Assembler:          assemble.New(cfg.HighUrgencyThreshold),
	}

	if cfg.VideoEnabled() {
		heygenClient, err := heygen.NewClient(heygen.Options{
			APIKey:  cfg.HeyGenAPIKey,
			BaseURL: cfg.HeyGenBaseURL,
			Logger:  &logger,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to build heygen client")
		}
		app.HeyGen = heygenClient
	} else {
		logger.Warn().Msg("HEYGEN_API_KEY not set, video routes disabled")
	}

	if cfg.StorageEnabled() {
		store, err := storage.NewSpacesStore(ctx, storage.SpacesOptions{
			AccessKey: cfg.SpacesAccessKey,
			SecretKey: cfg.SpacesSecretKey,
			Region:    cfg.SpacesRegion,
			Bucket:    cfg.SpacesBucket,
			Endpoint:  cfg.SpacesEndpoint,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to build object store")
		}
		app.Archiver = storage.NewVideoArchiver(store, logger)
	}

	if cfg.DatabaseURL != "" {
		dbpool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect database")
		}
		defer dbpool.Close()
		app.Medications = repo.NewMedicationRepository(infra.NewSQLRunner(dbpool, logger))
	}

	var country middleware.CountryLookup
	if cfg.GeoIPDBPath != "" {
		resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
		if err != nil {
			logger.Warn().Err(err).Msg("geoip database unavailable, falling back to headers")
		} else {
			defer resolver.Close()
			country = resolver.CountryCode
		}
	}

	router := httpapi.NewRouter(app, country)
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
