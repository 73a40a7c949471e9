package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/signage-console/internal/model"
)

func TestMemoryCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	a, err := s.CreateAgency(ctx, model.Agency{Name: "Centro"})
	require.NoError(t, err)
	b, err := s.CreateAgency(ctx, model.Agency{Name: "Norte"})
	require.NoError(t, err)
	assert.Equal(t, 1, a.ID)
	assert.Equal(t, 2, b.ID)

	upd, err := s.UpdateAgency(ctx, b.ID, model.Agency{Name: "Norte II", ID: 99})
	require.NoError(t, err)
	assert.Equal(t, b.ID, upd.ID)

	list, err := s.ListAgencies(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Norte II", list[1].Name)

	_, err = s.UpdateAgency(ctx, 42, model.Agency{})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeleteAgency(ctx, 42), ErrNotFound)
}

func TestMemoryReferences(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	a, _ := s.CreateAgency(ctx, model.Agency{Name: "Centro"})
	c, _ := s.CreateContent(ctx, model.Content{Title: "Promo", Type: model.ContentLink, Duration: 30})
	sc, _ := s.CreateSchedule(ctx, model.Schedule{ContentID: c.ID, AgencyID: a.ID, Priority: 1})

	assert.ErrorIs(t, s.DeleteContent(ctx, c.ID), ErrInUse)
	assert.ErrorIs(t, s.DeleteAgency(ctx, a.ID), ErrInUse)

	require.NoError(t, s.DeleteSchedule(ctx, sc.ID))
	assert.NoError(t, s.DeleteContent(ctx, c.ID))
	assert.NoError(t, s.DeleteAgency(ctx, a.ID))
}

func TestMemoryDeviceIPUnique(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	d, err := s.CreateDevice(ctx, model.Device{Name: "a", AgencyID: 1, IPAddress: "10.0.0.1"})
	require.NoError(t, err)
	_, err = s.CreateDevice(ctx, model.Device{Name: "b", AgencyID: 1, IPAddress: "10.0.0.1"})
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = s.UpdateDevice(ctx, d.ID, model.Device{Name: "a2", AgencyID: 1, IPAddress: "10.0.0.1"})
	assert.NoError(t, err)

	seen := time.Now()
	got, err := s.SetDeviceStatus(ctx, d.ID, model.DeviceOnline, seen)
	require.NoError(t, err)
	assert.Equal(t, model.DeviceOnline, got.Status)
	assert.Equal(t, "a2", got.Name)
}

func TestMemoryUsers(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	u, err := s.CreateUser(ctx, model.User{Username: "admin", Email: "admin@example.com"})
	require.NoError(t, err)
	assert.False(t, u.CreatedAt.IsZero())

	_, err = s.CreateUser(ctx, model.User{Username: "other", Email: "admin@example.com"})
	assert.ErrorIs(t, err, ErrDuplicate)

	got, err := s.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	_, err = s.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}
