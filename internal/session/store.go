// Package session keeps logged-in users in redis. A session is created by
// Persist at login, read by Load on every authenticated request and
// removed by Clear at logout; an access token is only honoured while its
// session exists.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	customError "github.com/yanuaran892/perpusmpn1sedati/pkg/errors"
)

const (
	RoleAdmin   = "admin"
	RoleStudent = "siswa"
)

const keyPrefix = "session:"

// Session is what the server remembers about one login.
type Session struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Subject   string    `json:"subject"`
	Name      string    `json:"name"`
	Username  string    `json:"username,omitempty"`
	AdminID   int64     `json:"admin_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// New starts a session for subject that expires after ttl.
func New(role, subject, name string, now time.Time, ttl time.Duration) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Role:      role,
		Subject:   subject,
		Name:      name,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// IsAdmin reports whether the session belongs to library staff.
func (s *Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// Store is the session lifecycle.
type Store interface {
	Load(ctx context.Context, id string) (*Session, error)
	Persist(ctx context.Context, s *Session) error
	Clear(ctx context.Context, id string) error
}

// Client is the subset of *redis.Client the store needs.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type RedisStore struct {
	client Client
}

func NewRedisStore(client Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Load(ctx context.Context, id string) (*Session, error) {
	data, err := r.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, customError.WrapUnauthorized("session has ended, please log in again")
		}
		return nil, customError.WrapCacheError(err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, customError.WrapCacheError(fmt.Errorf("decoding session %s: %w", id, err))
	}

	return &s, nil
}

// Persist writes s with a TTL matching its remaining lifetime.
func (r *RedisStore) Persist(ctx context.Context, s *Session) error {
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return customError.WrapUnauthorized("session already expired")
	}

	data, err := json.Marshal(s)
	if err != nil {
		return customError.WrapCacheError(err)
	}

	if err := r.client.Set(ctx, keyPrefix+s.ID, data, ttl).Err(); err != nil {
		return customError.WrapCacheError(err)
	}

	return nil
}

func (r *RedisStore) Clear(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return customError.WrapCacheError(err)
	}
	return nil
}
