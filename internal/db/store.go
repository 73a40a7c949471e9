// Package db persists the development backend's records: users, agencies, contents,
// schedules and devices. Store has a PostgreSQL and an in-memory implementation.
package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Nixie-Tech-LLC/signage-console/internal/model"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
	ErrInUse     = errors.New("record is still referenced")
)

type Store interface {
	CreateUser(ctx context.Context, u model.User) (model.User, error)
	GetUserByUsername(ctx context.Context, username string) (model.User, error)

	ListAgencies(ctx context.Context) ([]model.Agency, error)
	GetAgency(ctx context.Context, id int) (model.Agency, error)
	CreateAgency(ctx context.Context, a model.Agency) (model.Agency, error)
	UpdateAgency(ctx context.Context, id int, a model.Agency) (model.Agency, error)
	// DeleteAgency fails with ErrInUse while devices or schedules point at it.
	DeleteAgency(ctx context.Context, id int) error

	ListContents(ctx context.Context) ([]model.Content, error)
	GetContent(ctx context.Context, id int) (model.Content, error)
	CreateContent(ctx context.Context, c model.Content) (model.Content, error)
	UpdateContent(ctx context.Context, id int, c model.Content) (model.Content, error)
	// DeleteContent fails with ErrInUse while schedules point at it.
	DeleteContent(ctx context.Context, id int) error

	ListSchedules(ctx context.Context) ([]model.Schedule, error)
	GetSchedule(ctx context.Context, id int) (model.Schedule, error)
	CreateSchedule(ctx context.Context, s model.Schedule) (model.Schedule, error)
	UpdateSchedule(ctx context.Context, id int, s model.Schedule) (model.Schedule, error)
	DeleteSchedule(ctx context.Context, id int) error

	ListDevices(ctx context.Context) ([]model.Device, error)
	GetDevice(ctx context.Context, id int) (model.Device, error)
	CreateDevice(ctx context.Context, d model.Device) (model.Device, error)
	UpdateDevice(ctx context.Context, id int, d model.Device) (model.Device, error)
	DeleteDevice(ctx context.Context, id int) error
	SetDeviceStatus(ctx context.Context, id int, status model.DeviceStatus, seen time.Time) (model.Device, error)
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore(conn *sqlx.DB) Store {
	return &pgStore{db: conn}
}

// mapErr folds driver errors into the package's sentinel errors.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return ErrDuplicate
		case "23503":
			return ErrInUse
		}
	}
	return err
}

// execOne runs a statement that must touch exactly one row.
func (s *pgStore) execOne(ctx context.Context, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return mapErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
