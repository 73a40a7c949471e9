package db

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/signage-console/internal/model"
)

const userColumns = `id, username, email, full_name, role, is_active, hashed_password, created_at`

// CreateUser inserts u; username and email are unique.
func (s *pgStore) CreateUser(ctx context.Context, u model.User) (model.User, error) {
	var out model.User
	query := `
	INSERT INTO users (username, email, full_name, role, is_active, hashed_password, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, now())
	RETURNING ` + userColumns + `;`
	if err := s.db.GetContext(ctx, &out, query, u.Username, u.Email, u.FullName, u.Role, u.IsActive, u.HashedPassword); err != nil {
		log.Error().Err(err).Str("username", u.Username).Msg("failed to create user")
		return model.User{}, mapErr(err)
	}
	return out, nil
}

func (s *pgStore) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	var u model.User
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1;`
	if err := s.db.GetContext(ctx, &u, query, username); err != nil {
		return model.User{}, mapErr(err)
	}
	return u, nil
}
