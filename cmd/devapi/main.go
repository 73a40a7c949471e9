package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/signage-console/internal/config"
	"github.com/Nixie-Tech-LLC/signage-console/internal/db"
	"github.com/Nixie-Tech-LLC/signage-console/internal/http/devapi"
	"github.com/Nixie-Tech-LLC/signage-console/internal/notify"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatal().Err(err).Msg("could not read .env")
	}
	cfg, err := config.LoadDevAPI()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	config.SetupLogger(cfg.Environment, cfg.LogLevel)
	if !cfg.Development() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := initStore(cfg)
	if err := seedAdmin(ctx, cfg, store); err != nil {
		log.Fatal().Err(err).Msg("could not seed admin user")
	}

	notifier := initNotifier(cfg)
	defer notifier.Close()

	router := devapi.NewRouter(devapi.Deps{
		Store:       store,
		Storage:     initStorage(cfg),
		Notifier:    notifier,
		JWTSecret:   cfg.JWTSecret,
		TokenExpiry: cfg.TokenExpiry,
		CORSOrigins: cfg.CORSOrigins,
		UploadDir:   localUploadDir(cfg),
	})

	srv := &http.Server{Addr: cfg.ServerAddress, Handler: router, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		log.Info().Str("address", cfg.ServerAddress).Msg("devapi listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}

// initStore uses postgres when DATABASE_URL is set and an in-memory store otherwise.
func initStore(cfg *config.DevAPI) db.Store {
	if cfg.DatabaseURL == "" {
		log.Warn().Msg("DATABASE_URL not set, records live in memory")
		return db.NewMemoryStore()
	}
	conn, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect")
	}
	if err := db.RunMigrations(conn, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}
	return db.NewStore(conn)
}

func initNotifier(cfg *config.DevAPI) notify.Notifier {
	if cfg.MQTTBrokerURL == "" {
		return notify.Nop{}
	}
	n, err := notify.Connect(cfg.MQTTBrokerURL, cfg.MQTTClientID)
	if err != nil {
		// status changes still work without the broker
		log.Error().Err(err).Str("broker", cfg.MQTTBrokerURL).Msg("MQTT unavailable, notifications disabled")
		return notify.Nop{}
	}
	return n
}
