package db

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/signage-console/internal/model"
)

const scheduleColumns = `id, content_id, agency_id, start_time, end_time, days_of_week, priority, is_active`

func (s *pgStore) ListSchedules(ctx context.Context) ([]model.Schedule, error) {
	all := []model.Schedule{}
	query := `SELECT ` + scheduleColumns + ` FROM schedules ORDER BY id;`
	if err := s.db.SelectContext(ctx, &all, query); err != nil {
		log.Error().Err(err).Msg("failed to list schedules")
		return nil, err
	}
	return all, nil
}

func (s *pgStore) GetSchedule(ctx context.Context, id int) (model.Schedule, error) {
	var sc model.Schedule
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE id = $1;`
	if err := s.db.GetContext(ctx, &sc, query, id); err != nil {
		return model.Schedule{}, mapErr(err)
	}
	return sc, nil
}

func (s *pgStore) CreateSchedule(ctx context.Context, sc model.Schedule) (model.Schedule, error) {
	var out model.Schedule
	query := `
	INSERT INTO schedules (content_id, agency_id, start_time, end_time, days_of_week, priority, is_active)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING ` + scheduleColumns + `;`
	if err := s.db.GetContext(ctx, &out, query,
		sc.ContentID, sc.AgencyID, sc.StartTime, sc.EndTime, sc.DaysOfWeek, sc.Priority, sc.IsActive,
	); err != nil {
		log.Error().Err(err).Msg("failed to create schedule")
		return model.Schedule{}, mapErr(err)
	}
	return out, nil
}

func (s *pgStore) UpdateSchedule(ctx context.Context, id int, sc model.Schedule) (model.Schedule, error) {
	var out model.Schedule
	query := `
	UPDATE schedules
	SET content_id = $2, agency_id = $3, start_time = $4, end_time = $5,
	days_of_week = $6, priority = $7, is_active = $8
	WHERE id = $1
	RETURNING ` + scheduleColumns + `;`
	if err := s.db.GetContext(ctx, &out, query,
		id, sc.ContentID, sc.AgencyID, sc.StartTime, sc.EndTime, sc.DaysOfWeek, sc.Priority, sc.IsActive,
	); err != nil {
		return model.Schedule{}, mapErr(err)
	}
	return out, nil
}

func (s *pgStore) DeleteSchedule(ctx context.Context, id int) error {
	return s.execOne(ctx, `DELETE FROM schedules WHERE id = $1;`, id)
}
