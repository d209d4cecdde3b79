package reference

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"flipper/internal/domain/entity"
	"flipper/internal/infrastructure/persistence"
	"flipper/pkg/contextx"
	"flipper/pkg/logx"
)

const (
	defaultTTL      = 10 * time.Minute
	cleanupInterval = time.Hour
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type Repository interface {
	Put(ctx context.Context, key string, ref entity.HistoricalReference) error
	// Find returns persistence.ErrNotFound for a confirmed miss.
	Find(ctx context.Context, key string) (entity.HistoricalReference, error)
}

// Store looks up historical references in the repository with an in-process
// cache in front. Unknown keys resolve to the global default.
type Store struct {
	repo     Repository
	cache    *cache.Cache
	fallback entity.HistoricalReference
}

func NewStore(repo Repository) *Store {
	return &Store{
		repo:     repo,
		cache:    cache.New(defaultTTL, cleanupInterval),
		fallback: DefaultReference(),
	}
}

func (s *Store) WithTTL(ttl time.Duration) *Store {
	s.cache = cache.New(ttl, cleanupInterval)
	return s
}

// Seed writes the references into the repository and drops cached entries.
func (s *Store) Seed(ctx context.Context, refs map[string]entity.HistoricalReference) error {
	for key, ref := range refs {
		if err := s.repo.Put(ctx, key, ref); err != nil {
			return fmt.Errorf("repo.Put %s: %w", key, err)
		}
	}

	s.cache.Flush()

	logger(ctx).Info("historical references seeded", "count", len(refs))

	return nil
}

// Lookup never fails. A read failure resolves to the default for this call
// only; just hits and confirmed misses are cached.
func (s *Store) Lookup(ctx context.Context, productKey string) entity.HistoricalReference {
	if cached, ok := s.cache.Get(productKey); ok {
		if ref, ok := cached.(entity.HistoricalReference); ok {
			return ref
		}
	}

	ref, err := s.repo.Find(ctx, productKey)
	switch {
	case err == nil:
	case errors.Is(err, persistence.ErrNotFound):
		ref = s.fallback
	default:
		logger(ctx).Warn("reference read failed, using default",
			logx.FieldKey, productKey,
			logx.Error(err),
		)
		return s.fallback
	}

	s.cache.Set(productKey, ref, cache.DefaultExpiration)

	return ref
}
