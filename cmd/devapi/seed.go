package main

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/signage-console/internal/config"
	"github.com/Nixie-Tech-LLC/signage-console/internal/db"
	authapi "github.com/Nixie-Tech-LLC/signage-console/internal/http/api/auth/endpoints"
	"github.com/Nixie-Tech-LLC/signage-console/internal/model"
)

// seedAdmin creates the configured admin account unless it already exists.
func seedAdmin(ctx context.Context, cfg *config.DevAPI, store db.Store) error {
	if cfg.SeedAdminUsername == "" {
		return nil
	}
	_, err := store.GetUserByUsername(ctx, cfg.SeedAdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return err
	}

	_, err = authapi.CreateAccount(ctx, store, model.User{
		Username: cfg.SeedAdminUsername,
		Email:    cfg.SeedAdminUsername + "@localhost",
		FullName: "Administrator",
		Role:     "admin",
		IsActive: true,
	}, cfg.SeedAdminPassword)
	if err != nil {
		return err
	}
	log.Info().Str("username", cfg.SeedAdminUsername).Msg("seeded admin user")
	return nil
}
