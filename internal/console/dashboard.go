package console

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/Nixie-Tech-LLC/signage-console/internal/backend"
	"github.com/Nixie-Tech-LLC/signage-console/internal/model"
)

const statsError = "Erro ao carregar estatísticas"

// Lister is the read side of a collection.
type Lister[T any] interface {
	List(ctx context.Context, creds *backend.Credentials) ([]T, error)
}

// Sources feeds the dashboard counters.
type Sources struct {
	Agencies  Lister[model.Agency]
	Contents  Lister[model.Content]
	Schedules Lister[model.Schedule]
	Devices   Lister[model.Device]
}

type Stats struct {
	Agencies      int
	Contents      int
	Schedules     int
	OnlineDevices int
}

// Dashboard is the summary screen. Stats stay zero when any fetch fails.
type Dashboard struct {
	Stats   Stats
	Error   string
	Expired bool
}

// LoadStats fetches the four collections concurrently. It is all-or-nothing.
func LoadStats(ctx context.Context, creds *backend.Credentials, src Sources) (Stats, error) {
	var (
		agencies  []model.Agency
		contents  []model.Content
		schedules []model.Schedule
		devices   []model.Device
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { agencies, err = src.Agencies.List(gctx, creds); return })
	g.Go(func() (err error) { contents, err = src.Contents.List(gctx, creds); return })
	g.Go(func() (err error) { schedules, err = src.Schedules.List(gctx, creds); return })
	g.Go(func() (err error) { devices, err = src.Devices.List(gctx, creds); return })
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}

	online := 0
	for _, d := range devices {
		if d.Status == model.DeviceOnline {
			online++
		}
	}
	return Stats{
		Agencies:      len(agencies),
		Contents:      len(contents),
		Schedules:     len(schedules),
		OnlineDevices: online,
	}, nil
}

func LoadDashboard(ctx context.Context, creds *backend.Credentials, src Sources) Dashboard {
	stats, err := LoadStats(ctx, creds, src)
	if err != nil {
		log.Error().Err(err).Msg("could not load dashboard stats")
		return Dashboard{Error: backend.Detail(err, statsError), Expired: backend.IsUnauthorized(err)}
	}
	return Dashboard{Stats: stats}
}

// BackendSources wires the dashboard to the REST client.
func BackendSources(c *backend.Client) Sources {
	return Sources{
		Agencies:  c.Agencies(),
		Contents:  c.Contents(),
		Schedules: c.Schedules(),
		Devices:   c.Devices(),
	}
}
