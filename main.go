package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/raushankrgupta/glow-studio/api"
	"github.com/raushankrgupta/glow-studio/config"
	"github.com/raushankrgupta/glow-studio/store"
	"github.com/raushankrgupta/glow-studio/studio"
	"github.com/raushankrgupta/glow-studio/utils"
	"github.com/rs/zerolog"
)

func main() {
	config.LoadConfig()
	zerolog.TimeFieldFormat = time.RFC3339
	utils.Log = zerolog.New(os.Stdout).With().Timestamp().Str("service", "glow-studio").Logger()
	log := utils.Log

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize MongoDB
	mongoClient, err := utils.ConnectMongo(ctx, config.MongoURI)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer mongoClient.Disconnect(context.Background())

	// Profile changes fan out over Redis when it is configured
	var bus *store.ProfileBus
	if config.RedisAddr != "" {
		bus, err = store.NewProfileBus(ctx, config.RedisAddr, config.RedisChannelPrefix, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer bus.Close()
	} else {
		log.Warn().Msg("REDIS_ADDR not set, profile changes will not reach other sessions")
	}

	profiles := store.NewProfiles(mongoClient.Database(config.DBName), bus, log)
	if err := profiles.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to create indexes")
	}

	local, err := store.OpenLocalStore(config.LocalStoreDir, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open local store")
	}
	defer local.Close()

	blobs, err := utils.NewS3Store(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize S3")
	}

	gemini, err := utils.NewGeminiClient(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Gemini")
	}
	defer gemini.Close()

	deps := studio.Deps{
		Vision:   gemini,
		Blobs:    blobs,
		Profiles: profiles,
		Local:    local,
		Log:      log,
	}
	if bus != nil {
		deps.Updates = bus
	}
	studios := studio.NewManager(deps)
	defer studios.Close()

	server := &api.API{
		Studios:       studios,
		Users:         profiles,
		Tutorial:      local,
		SendWelcome:   utils.SendWelcomeEmail,
		SendResetCode: utils.SendResetCodeEmail,
		RateLimit:     config.RateLimitPerMinute,
	}
	mux := http.NewServeMux()
	server.Routes(mux)

	srv := &http.Server{
		Addr:              ":" + config.Port,
		Handler:           utils.CORSMiddleware(utils.LatencyMiddleware(mux)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", config.Port).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
