package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/signage-console/internal/config"
	"github.com/Nixie-Tech-LLC/signage-console/internal/redis"
	"github.com/Nixie-Tech-LLC/signage-console/internal/session"
)

// initCredentialStore selects where session tokens are kept. The returned func releases it.
func initCredentialStore(ctx context.Context, cfg *config.Console) (session.CredentialStore, func()) {
	if cfg.CredentialStore != config.StoreRedis {
		log.Info().Msg("using in-memory credential store")
		return session.NewMemoryStore(), func() {}
	}

	rdb, err := redis.Connect(ctx, cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect")
	}
	return session.NewRedisStore(rdb, cfg.TokenTTL), func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("closing redis")
		}
	}
}
