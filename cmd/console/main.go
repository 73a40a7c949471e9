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

	"github.com/Nixie-Tech-LLC/signage-console/internal/backend"
	"github.com/Nixie-Tech-LLC/signage-console/internal/config"
	"github.com/Nixie-Tech-LLC/signage-console/internal/http/web"
	"github.com/Nixie-Tech-LLC/signage-console/internal/http/webui"
	"github.com/Nixie-Tech-LLC/signage-console/internal/session"
)

const pruneEvery = 10 * time.Minute

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatal().Err(err).Msg("could not read .env")
	}
	cfg, err := config.LoadConsole()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	config.SetupLogger(cfg.Environment, cfg.LogLevel)
	if !cfg.Development() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	credentials, closeStore := initCredentialStore(ctx, cfg)
	defer closeStore()

	client := backend.New(cfg.APIURL, backend.WithTimeout(cfg.APITimeout))
	manager := session.NewManager(client, credentials)
	go pruneSessions(ctx, manager, cfg.SessionIdle)

	router := webui.NewRouter(webui.Deps{
		Client:  client,
		Manager: manager,
		Cookies: web.NewCookieStore(cfg.SessionSecret, web.CookieOptions{
			Secure: cfg.CookieSecure,
			MaxAge: int(cfg.TokenTTL / time.Second),
		}),
	})

	srv := &http.Server{Addr: cfg.ServerAddress, Handler: router, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		log.Info().Str("address", cfg.ServerAddress).Str("api", cfg.APIURL).Msg("console listening")
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

// pruneSessions forgets idle console sessions until ctx ends.
func pruneSessions(ctx context.Context, manager *session.Manager, idle time.Duration) {
	if idle <= 0 {
		return
	}
	ticker := time.NewTicker(pruneEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := manager.Prune(idle); n > 0 {
				log.Debug().Int("pruned", n).Int("active", manager.Len()).Msg("pruned idle sessions")
			}
		}
	}
}
