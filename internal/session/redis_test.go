package session

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/signage-console/internal/redis"
)

// fakeRedis answers the few commands RedisStore sends from an in-process map.
type fakeRedis struct {
	goredis.Cmdable

	mu      sync.Mutex
	values  map[string]string
	ttls    map[string]time.Duration
	failGet error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *goredis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGet != nil {
		return goredis.NewStringResult("", f.failGet)
	}
	v, ok := f.values[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value.(string)
	f.ttls[key] = expiration
	return goredis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *goredis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := f.values[k]; ok {
			delete(f.values, k)
			n++
		}
	}
	return goredis.NewIntResult(n, nil)
}

// Eval only understands the compare-and-delete script.
func (f *fakeRedis) Eval(ctx context.Context, script string, keys []string, args ...any) *goredis.Cmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if script != discardScript || len(keys) != 1 || len(args) != 1 {
		return goredis.NewCmdResult(nil, errors.New("unexpected script"))
	}
	if f.values[keys[0]] == args[0].(string) {
		delete(f.values, keys[0])
		return goredis.NewCmdResult(int64(1), nil)
	}
	return goredis.NewCmdResult(int64(0), nil)
}

func TestRedisStoreKeysAndTTL(t *testing.T) {
	rdb := newFakeRedis()
	store := NewRedisStore(rdb, 30*time.Minute)

	_, err := store.Load(t.Context(), "abc")
	assert.ErrorIs(t, err, ErrNoCredential)

	require.NoError(t, store.Save(t.Context(), "abc", "tok"))
	assert.Equal(t, "tok", rdb.values["console:token:abc"])
	assert.Equal(t, 30*time.Minute, rdb.ttls["console:token:abc"])

	token, err := store.Load(t.Context(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "tok", token)

	require.NoError(t, store.Clear(t.Context(), "abc"))
	_, err = store.Load(t.Context(), "abc")
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestRedisStoreDiscardOnlyMatching(t *testing.T) {
	rdb := newFakeRedis()
	store := NewRedisStore(rdb, 0)
	require.NoError(t, store.Save(t.Context(), "abc", "fresh"))

	require.NoError(t, store.Discard(t.Context(), "abc", "stale"))
	token, err := store.Load(t.Context(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "fresh", token)

	require.NoError(t, store.Discard(t.Context(), "abc", "fresh"))
	_, err = store.Load(t.Context(), "abc")
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestRedisStoreLoadError(t *testing.T) {
	rdb := newFakeRedis()
	rdb.failGet = errors.New("connection refused")
	store := NewRedisStore(rdb, 0)

	_, err := store.Load(t.Context(), "abc")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoCredential)
}

// needs a reachable redis; REDIS_ADDRESS=localhost:6379 go test ./internal/session
func TestRedisStoreRoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_ADDRESS")
	if addr == "" {
		t.Skip("REDIS_ADDRESS not set")
	}
	rdb, err := redis.Connect(t.Context(), addr, os.Getenv("REDIS_USERNAME"), os.Getenv("REDIS_PASSWORD"))
	require.NoError(t, err)
	defer rdb.Close()

	store := NewRedisStore(rdb, time.Minute)
	key := "test-" + t.Name()

	_, err = store.Load(t.Context(), key)
	assert.ErrorIs(t, err, ErrNoCredential)

	require.NoError(t, store.Save(t.Context(), key, "tok"))
	token, err := store.Load(t.Context(), key)
	require.NoError(t, err)
	assert.Equal(t, "tok", token)

	require.NoError(t, store.Discard(t.Context(), key, "other"))
	_, err = store.Load(t.Context(), key)
	require.NoError(t, err)

	require.NoError(t, store.Clear(t.Context(), key))
	_, err = store.Load(t.Context(), key)
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Load(t.Context(), "k")
	assert.ErrorIs(t, err, ErrNoCredential)

	require.NoError(t, store.Save(t.Context(), "k", "tok"))
	token, err := store.Load(t.Context(), "k")
	require.NoError(t, err)
	assert.Equal(t, "tok", token)

	require.NoError(t, store.Discard(t.Context(), "k", "other"))
	token, err = store.Load(t.Context(), "k")
	require.NoError(t, err)
	assert.Equal(t, "tok", token)

	require.NoError(t, store.Clear(t.Context(), "k"))
	_, err = store.Load(t.Context(), "k")
	assert.ErrorIs(t, err, ErrNoCredential)
}
