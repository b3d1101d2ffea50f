package cartstore

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"golang-marketplace-backend/internal/cart"
	"golang-marketplace-backend/pkg/cache"
)

// DefaultKeyPrefix scopes all persisted cart blobs.
const DefaultKeyPrefix = "food_delivery_cart"

// RedisStore keeps one session's cart as a single JSON blob under a
// fixed key. Reads and writes are synchronous in the mutation path;
// every failure degrades to the empty state (Load) or an in-memory-only
// session (Save) and is logged, never propagated.
type RedisStore struct {
	cache *cache.RedisCache
	key   string
}

func NewRedisStore(c *cache.RedisCache, sessionID string) *RedisStore {
	return &RedisStore{
		cache: c,
		key:   DefaultKeyPrefix + ":" + sessionID,
	}
}

func (s *RedisStore) Load() cart.State {
	raw, err := s.cache.GetRaw(context.Background(), s.key)
	if err != nil {
		if err != redis.Nil {
			logrus.WithError(err).WithField("key", s.key).Warn("cartstore: load failed, starting empty")
		}
		return cart.EmptyState()
	}

	state, ok := Decode(raw)
	if !ok {
		logrus.WithField("key", s.key).Warn("cartstore: discarding malformed persisted cart")
		return cart.EmptyState()
	}
	return state
}

func (s *RedisStore) Save(state cart.State) {
	blob, err := Encode(state)
	if err != nil {
		logrus.WithError(err).WithField("key", s.key).Warn("cartstore: encode failed, keeping in-memory state only")
		return
	}
	if err := s.cache.SetRaw(context.Background(), s.key, blob, 0); err != nil {
		logrus.WithError(err).WithField("key", s.key).Warn("cartstore: save failed, keeping in-memory state only")
	}
}

// RedisFactory builds per-session stores sharing one Redis client.
type RedisFactory struct {
	cache *cache.RedisCache
}

func NewRedisFactory(c *cache.RedisCache) *RedisFactory {
	return &RedisFactory{cache: c}
}

func (f *RedisFactory) StoreFor(sessionID string) cart.Store {
	return NewRedisStore(f.cache, sessionID)
}
