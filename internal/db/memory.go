package db

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/Nixie-Tech-LLC/signage-console/internal/model"
)

// table is an id-keyed collection with its own sequence.
type table[T any] struct {
	rows   map[int]T
	next   int
	withID func(T, int) T
}

func newTable[T any](withID func(T, int) T) *table[T] {
	return &table[T]{rows: map[int]T{}, withID: withID}
}

func (t *table[T]) list() []T {
	out := make([]T, 0, len(t.rows))
	for _, id := range slices.Sorted(maps.Keys(t.rows)) {
		out = append(out, t.rows[id])
	}
	return out
}

func (t *table[T]) get(id int) (T, error) {
	v, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return v, nil
}

func (t *table[T]) insert(v T) T {
	t.next++
	v = t.withID(v, t.next)
	t.rows[t.next] = v
	return v
}

func (t *table[T]) replace(id int, v T) (T, error) {
	if _, ok := t.rows[id]; !ok {
		var zero T
		return zero, ErrNotFound
	}
	v = t.withID(v, id)
	t.rows[id] = v
	return v, nil
}

func (t *table[T]) remove(id int) error {
	if _, ok := t.rows[id]; !ok {
		return ErrNotFound
	}
	delete(t.rows, id)
	return nil
}

func (t *table[T]) exists(match func(T) bool) bool {
	for _, v := range t.rows {
		if match(v) {
			return true
		}
	}
	return false
}

// memStore keeps everything in process memory. It enforces the same uniqueness and
// reference rules as the PostgreSQL schema.
type memStore struct {
	mu        sync.RWMutex
	users     *table[model.User]
	agencies  *table[model.Agency]
	contents  *table[model.Content]
	schedules *table[model.Schedule]
	devices   *table[model.Device]
	now       func() time.Time
}

var _ Store = (*memStore)(nil)

func NewMemoryStore() Store {
	return &memStore{
		users:     newTable(func(u model.User, id int) model.User { u.ID = id; return u }),
		agencies:  newTable(func(a model.Agency, id int) model.Agency { a.ID = id; return a }),
		contents:  newTable(func(c model.Content, id int) model.Content { c.ID = id; return c }),
		schedules: newTable(func(s model.Schedule, id int) model.Schedule { s.ID = id; return s }),
		devices:   newTable(func(d model.Device, id int) model.Device { d.ID = id; return d }),
		now:       time.Now,
	}
}

func (m *memStore) CreateUser(_ context.Context, u model.User) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.users.exists(func(x model.User) bool { return x.Username == u.Username || x.Email == u.Email }) {
		return model.User{}, ErrDuplicate
	}
	u.CreatedAt = m.now().UTC()
	return m.users.insert(u), nil
}

func (m *memStore) GetUserByUsername(_ context.Context, username string) (model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users.rows {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, ErrNotFound
}

func (m *memStore) ListAgencies(context.Context) ([]model.Agency, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.agencies.list(), nil
}

func (m *memStore) GetAgency(_ context.Context, id int) (model.Agency, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.agencies.get(id)
}

func (m *memStore) CreateAgency(_ context.Context, a model.Agency) (model.Agency, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.agencies.insert(a), nil
}

func (m *memStore) UpdateAgency(_ context.Context, id int, a model.Agency) (model.Agency, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.agencies.replace(id, a)
}

func (m *memStore) DeleteAgency(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.agencies.get(id); err != nil {
		return err
	}
	if m.devices.exists(func(d model.Device) bool { return d.AgencyID == id }) ||
		m.schedules.exists(func(s model.Schedule) bool { return s.AgencyID == id }) {
		return ErrInUse
	}
	return m.agencies.remove(id)
}

func (m *memStore) ListContents(context.Context) ([]model.Content, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.contents.list(), nil
}

func (m *memStore) GetContent(_ context.Context, id int) (model.Content, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.contents.get(id)
}

func (m *memStore) CreateContent(_ context.Context, c model.Content) (model.Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.contents.insert(c), nil
}

func (m *memStore) UpdateContent(_ context.Context, id int, c model.Content) (model.Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.contents.replace(id, c)
}

func (m *memStore) DeleteContent(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.contents.get(id); err != nil {
		return err
	}
	if m.schedules.exists(func(s model.Schedule) bool { return s.ContentID == id }) {
		return ErrInUse
	}
	return m.contents.remove(id)
}

func (m *memStore) ListSchedules(context.Context) ([]model.Schedule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.schedules.list(), nil
}

func (m *memStore) GetSchedule(_ context.Context, id int) (model.Schedule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.schedules.get(id)
}

func (m *memStore) CreateSchedule(_ context.Context, s model.Schedule) (model.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.schedules.insert(s), nil
}

func (m *memStore) UpdateSchedule(_ context.Context, id int, s model.Schedule) (model.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.schedules.replace(id, s)
}

func (m *memStore) DeleteSchedule(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.schedules.remove(id)
}

func (m *memStore) ListDevices(context.Context) ([]model.Device, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.devices.list(), nil
}

func (m *memStore) GetDevice(_ context.Context, id int) (model.Device, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.devices.get(id)
}

func (m *memStore) ipTaken(ip string, except int) bool {
	return m.devices.exists(func(d model.Device) bool { return d.IPAddress == ip && d.ID != except })
}

func (m *memStore) CreateDevice(_ context.Context, d model.Device) (model.Device, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ipTaken(d.IPAddress, 0) {
		return model.Device{}, ErrDuplicate
	}
	return m.devices.insert(d), nil
}

func (m *memStore) UpdateDevice(_ context.Context, id int, d model.Device) (model.Device, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ipTaken(d.IPAddress, id) {
		return model.Device{}, ErrDuplicate
	}
	return m.devices.replace(id, d)
}

func (m *memStore) DeleteDevice(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.devices.remove(id)
}

func (m *memStore) SetDeviceStatus(_ context.Context, id int, status model.DeviceStatus, seen time.Time) (model.Device, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, err := m.devices.get(id)
	if err != nil {
		return model.Device{}, err
	}
	d.Status = status
	d.LastSeen = &seen
	m.devices.rows[id] = d
	return d, nil
}
