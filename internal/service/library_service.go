package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yanuaran892/perpusmpn1sedati/internal/domain"
	"github.com/yanuaran892/perpusmpn1sedati/internal/repository"
)

const libraryStatusKey = "library:status"

// Cache is the subset of *redis.Client used for read-through caching.
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// LibraryService reads and sets the open/closed switch.
type LibraryService struct {
	settings repository.SettingsRepository
	cache    Cache
	ttl      time.Duration
	audit    auditor
	logger   *slog.Logger
}

func NewLibraryService(
	settings repository.SettingsRepository,
	admins repository.AdminRepository,
	cache Cache,
	ttl time.Duration,
	logger *slog.Logger,
) *LibraryService {
	return &LibraryService{
		settings: settings,
		cache:    cache,
		ttl:      ttl,
		audit:    auditor{admins: admins, logger: logger},
		logger:   logger,
	}
}

// Status returns the current switch, from cache when possible. A cache
// failure falls back to the table.
func (s *LibraryService) Status(ctx context.Context) (*domain.LibraryStatus, error) {
	if cached, ok := s.fromCache(ctx); ok {
		return cached, nil
	}

	status, err := s.settings.GetLibraryStatus(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(status); err == nil {
		if err := s.cache.Set(ctx, libraryStatusKey, data, s.ttl).Err(); err != nil {
			s.logger.Warn("caching library status failed", "error", err)
		}
	}

	return status, nil
}

func (s *LibraryService) fromCache(ctx context.Context) (*domain.LibraryStatus, bool) {
	data, err := s.cache.Get(ctx, libraryStatusKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("reading library status cache failed", "error", err)
		}
		return nil, false
	}

	var status domain.LibraryStatus
	if err := json.Unmarshal(data, &status); err != nil {
		s.logger.Warn("decoding cached library status failed", "error", err)
		return nil, false
	}
	return &status, true
}

// SetStatus writes the switch and drops the cached copy.
func (s *LibraryService) SetStatus(ctx context.Context, actor domain.Actor, req domain.LibraryStatusRequest) (*domain.LibraryStatus, error) {
	status := &domain.LibraryStatus{Status: req.Status, Note: req.Note}
	if err := s.settings.SetLibraryStatus(ctx, status); err != nil {
		return nil, err
	}

	if err := s.cache.Del(ctx, libraryStatusKey).Err(); err != nil {
		s.logger.Warn("invalidating library status cache failed", "error", err)
	}

	s.audit.record(ctx, actor, "set_library_status", fmt.Sprintf("status=%s keterangan=%q", req.Status, req.Note))
	return status, nil
}
