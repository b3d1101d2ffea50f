package cartstore

import (
	"sync"

	"github.com/sirupsen/logrus"

	"golang-marketplace-backend/internal/cart"
)

// MemoryStore holds one session's cart blob in process memory. It backs
// tests and the degraded mode used when Redis is unreachable; carts are
// lost on restart, which mirrors the persistence-degradation contract.
type MemoryStore struct {
	mu   sync.Mutex
	blob []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() cart.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.blob == nil {
		return cart.EmptyState()
	}
	state, ok := Decode(s.blob)
	if !ok {
		logrus.Warn("cartstore: discarding malformed in-memory cart")
		return cart.EmptyState()
	}
	return state
}

func (s *MemoryStore) Save(state cart.State) {
	blob, err := Encode(state)
	if err != nil {
		logrus.WithError(err).Warn("cartstore: encode failed, dropping save")
		return
	}

	s.mu.Lock()
	s.blob = blob
	s.mu.Unlock()
}

// SeedRaw overwrites the stored blob without validation. Test hook for
// exercising malformed persisted input.
func (s *MemoryStore) SeedRaw(blob []byte) {
	s.mu.Lock()
	s.blob = blob
	s.mu.Unlock()
}

// MemoryFactory keeps one MemoryStore per session id.
type MemoryFactory struct {
	mu     sync.Mutex
	stores map[string]*MemoryStore
}

func NewMemoryFactory() *MemoryFactory {
	return &MemoryFactory{stores: make(map[string]*MemoryStore)}
}

func (f *MemoryFactory) StoreFor(sessionID string) cart.Store {
	f.mu.Lock()
	defer f.mu.Unlock()

	store, ok := f.stores[sessionID]
	if !ok {
		store = NewMemoryStore()
		f.stores[sessionID] = store
	}
	return store
}
