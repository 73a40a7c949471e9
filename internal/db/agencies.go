package db

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/signage-console/internal/model"
)

const agencyColumns = `id, name, ip_address, orientation, hibernation_enabled, hibernation_start, hibernation_end`

func (s *pgStore) ListAgencies(ctx context.Context) ([]model.Agency, error) {
	all := []model.Agency{}
	query := `SELECT ` + agencyColumns + ` FROM agencies ORDER BY id;`
	if err := s.db.SelectContext(ctx, &all, query); err != nil {
		log.Error().Err(err).Msg("failed to list agencies")
		return nil, err
	}
	return all, nil
}

func (s *pgStore) GetAgency(ctx context.Context, id int) (model.Agency, error) {
	var a model.Agency
	query := `SELECT ` + agencyColumns + ` FROM agencies WHERE id = $1;`
	if err := s.db.GetContext(ctx, &a, query, id); err != nil {
		return model.Agency{}, mapErr(err)
	}
	return a, nil
}

func (s *pgStore) CreateAgency(ctx context.Context, a model.Agency) (model.Agency, error) {
	var out model.Agency
	query := `
	INSERT INTO agencies (name, ip_address, orientation, hibernation_enabled, hibernation_start, hibernation_end)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING ` + agencyColumns + `;`
	if err := s.db.GetContext(ctx, &out, query,
		a.Name, a.IPAddress, a.Orientation, a.HibernationEnabled, a.HibernationStart, a.HibernationEnd,
	); err != nil {
		log.Error().Err(err).Msg("failed to create agency")
		return model.Agency{}, mapErr(err)
	}
	return out, nil
}

func (s *pgStore) UpdateAgency(ctx context.Context, id int, a model.Agency) (model.Agency, error) {
	var out model.Agency
	query := `
	UPDATE agencies
	SET name = $2, ip_address = $3, orientation = $4,
	hibernation_enabled = $5, hibernation_start = $6, hibernation_end = $7
	WHERE id = $1
	RETURNING ` + agencyColumns + `;`
	if err := s.db.GetContext(ctx, &out, query,
		id, a.Name, a.IPAddress, a.Orientation, a.HibernationEnabled, a.HibernationStart, a.HibernationEnd,
	); err != nil {
		return model.Agency{}, mapErr(err)
	}
	return out, nil
}

func (s *pgStore) DeleteAgency(ctx context.Context, id int) error {
	return s.execOne(ctx, `DELETE FROM agencies WHERE id = $1;`, id)
}
