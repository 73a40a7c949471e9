package db

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/signage-console/internal/model"
)

const contentColumns = `id, title, type, url, description, duration`

func (s *pgStore) ListContents(ctx context.Context) ([]model.Content, error) {
	all := []model.Content{}
	query := `SELECT ` + contentColumns + ` FROM contents ORDER BY id;`
	if err := s.db.SelectContext(ctx, &all, query); err != nil {
		log.Error().Err(err).Msg("failed to list contents")
		return nil, err
	}
	return all, nil
}

func (s *pgStore) GetContent(ctx context.Context, id int) (model.Content, error) {
	var c model.Content
	query := `SELECT ` + contentColumns + ` FROM contents WHERE id = $1;`
	if err := s.db.GetContext(ctx, &c, query, id); err != nil {
		return model.Content{}, mapErr(err)
	}
	return c, nil
}

func (s *pgStore) CreateContent(ctx context.Context, c model.Content) (model.Content, error) {
	var out model.Content
	query := `
	INSERT INTO contents (title, type, url, description, duration)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING ` + contentColumns + `;`
	if err := s.db.GetContext(ctx, &out, query, c.Title, c.Type, c.URL, c.Description, c.Duration); err != nil {
		log.Error().Err(err).Msg("failed to create content")
		return model.Content{}, mapErr(err)
	}
	return out, nil
}

func (s *pgStore) UpdateContent(ctx context.Context, id int, c model.Content) (model.Content, error) {
	var out model.Content
	query := `
	UPDATE contents
	SET title = $2, type = $3, url = $4, description = $5, duration = $6
	WHERE id = $1
	RETURNING ` + contentColumns + `;`
	if err := s.db.GetContext(ctx, &out, query, id, c.Title, c.Type, c.URL, c.Description, c.Duration); err != nil {
		return model.Content{}, mapErr(err)
	}
	return out, nil
}

func (s *pgStore) DeleteContent(ctx context.Context, id int) error {
	return s.execOne(ctx, `DELETE FROM contents WHERE id = $1;`, id)
}
