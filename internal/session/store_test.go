package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	customError "github.com/yanuaran892/perpusmpn1sedati/pkg/errors"
)

type memoryClient struct {
	values map[string]string
	ttls   map[string]time.Duration
	err    error
}

func newMemoryClient() *memoryClient {
	return &memoryClient{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memoryClient) Get(_ context.Context, key string) *redis.StringCmd {
	if m.err != nil {
		return redis.NewStringResult("", m.err)
	}
	v, ok := m.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *memoryClient) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if m.err != nil {
		return redis.NewStatusResult("", m.err)
	}
	m.values[key] = string(value.([]byte))
	m.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (m *memoryClient) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := m.values[k]; ok {
			delete(m.values, k)
			n++
		}
	}
	return redis.NewIntResult(n, m.err)
}

func TestRedisStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	client := newMemoryClient()
	store := NewRedisStore(client)

	s := New(RoleStudent, "20231001", "Budi", time.Now(), time.Hour)
	require.NoError(t, store.Persist(ctx, s))
	assert.InDelta(t, time.Hour.Seconds(), client.ttls[keyPrefix+s.ID].Seconds(), 5)

	loaded, err := store.Load(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.Subject, loaded.Subject)
	assert.Equal(t, RoleStudent, loaded.Role)
	assert.False(t, loaded.IsAdmin())

	require.NoError(t, store.Clear(ctx, s.ID))

	_, err = store.Load(ctx, s.ID)
	assert.Equal(t, customError.ErrCodeUnauthorized, customError.Code(err))
}

func TestRedisStore_PersistExpired(t *testing.T) {
	store := NewRedisStore(newMemoryClient())
	s := New(RoleAdmin, "1", "Admin", time.Now().Add(-2*time.Hour), time.Hour)

	err := store.Persist(context.Background(), s)
	assert.Equal(t, customError.ErrCodeUnauthorized, customError.Code(err))
}

func TestRedisStore_BackendFailure(t *testing.T) {
	client := newMemoryClient()
	client.err = errors.New("connection refused")
	store := NewRedisStore(client)

	_, err := store.Load(context.Background(), "abc")
	assert.Equal(t, customError.ErrCodeCacheError, customError.Code(err))

	err = store.Clear(context.Background(), "abc")
	assert.Equal(t, customError.ErrCodeCacheError, customError.Code(err))
}

func TestRedisStore_CorruptSession(t *testing.T) {
	client := newMemoryClient()
	client.values[keyPrefix+"abc"] = "{not json"

	_, err := NewRedisStore(client).Load(context.Background(), "abc")
	assert.Equal(t, customError.ErrCodeCacheError, customError.Code(err))
}
