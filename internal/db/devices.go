package db

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/signage-console/internal/model"
)

const deviceColumns = `id, name, agency_id, ip_address, mac_address, status, last_seen, version`

func (s *pgStore) ListDevices(ctx context.Context) ([]model.Device, error) {
	all := []model.Device{}
	query := `SELECT ` + deviceColumns + ` FROM devices ORDER BY id;`
	if err := s.db.SelectContext(ctx, &all, query); err != nil {
		log.Error().Err(err).Msg("failed to list devices")
		return nil, err
	}
	return all, nil
}

func (s *pgStore) GetDevice(ctx context.Context, id int) (model.Device, error) {
	var d model.Device
	query := `SELECT ` + deviceColumns + ` FROM devices WHERE id = $1;`
	if err := s.db.GetContext(ctx, &d, query, id); err != nil {
		return model.Device{}, mapErr(err)
	}
	return d, nil
}

// CreateDevice inserts d; ip_address is unique.
func (s *pgStore) CreateDevice(ctx context.Context, d model.Device) (model.Device, error) {
	var out model.Device
	query := `
	INSERT INTO devices (name, agency_id, ip_address, mac_address, status, last_seen, version)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING ` + deviceColumns + `;`
	if err := s.db.GetContext(ctx, &out, query,
		d.Name, d.AgencyID, d.IPAddress, d.MACAddress, d.Status, d.LastSeen, d.Version,
	); err != nil {
		log.Error().Err(err).Msg("failed to create device")
		return model.Device{}, mapErr(err)
	}
	return out, nil
}

func (s *pgStore) UpdateDevice(ctx context.Context, id int, d model.Device) (model.Device, error) {
	var out model.Device
	query := `
	UPDATE devices
	SET name = $2, agency_id = $3, ip_address = $4, mac_address = $5,
	status = $6, last_seen = $7, version = $8
	WHERE id = $1
	RETURNING ` + deviceColumns + `;`
	if err := s.db.GetContext(ctx, &out, query,
		id, d.Name, d.AgencyID, d.IPAddress, d.MACAddress, d.Status, d.LastSeen, d.Version,
	); err != nil {
		return model.Device{}, mapErr(err)
	}
	return out, nil
}

func (s *pgStore) DeleteDevice(ctx context.Context, id int) error {
	return s.execOne(ctx, `DELETE FROM devices WHERE id = $1;`, id)
}

// SetDeviceStatus changes only the status and stamps last_seen.
func (s *pgStore) SetDeviceStatus(ctx context.Context, id int, status model.DeviceStatus, seen time.Time) (model.Device, error) {
	var out model.Device
	query := `
	UPDATE devices SET status = $2, last_seen = $3
	WHERE id = $1
	RETURNING ` + deviceColumns + `;`
	if err := s.db.GetContext(ctx, &out, query, id, status, seen); err != nil {
		return model.Device{}, mapErr(err)
	}
	return out, nil
}
