package services

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pedalpath/server/internal/lib/route"
	"github.com/pedalpath/server/internal/lib/units"
)

// defaultStoreLimit bounds the in-memory route store. Routes are kept
// only so follow-up requests (detail view, KML export) can find them;
// the oldest entries age out first.
const defaultStoreLimit = 256

// StoredRoute is one generated route held for retrieval by ID.
type StoredRoute struct {
	ID        string
	Result    *route.Result
	Units     units.System
	CreatedAt time.Time
}

// Store is a bounded in-memory route registry keyed by generated IDs.
// Safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	routes map[string]*StoredRoute
	order  []string
	limit  int
}

// NewStore creates a store holding at most limit routes; limit <= 0
// selects the default bound.
func NewStore(limit int) *Store {
	if limit <= 0 {
		limit = defaultStoreLimit
	}
	return &Store{
		routes: make(map[string]*StoredRoute),
		limit:  limit,
	}
}

// Put registers a result and returns its new ID.
func (s *Store) Put(result *route.Result, system units.System) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.routes[id] = &StoredRoute{
		ID:        id,
		Result:    result,
		Units:     system,
		CreatedAt: time.Now(),
	}
	s.order = append(s.order, id)

	for len(s.order) > s.limit {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.routes, oldest)
	}
	return id
}

// Get looks up a stored route by ID.
func (s *Store) Get(id string) (*StoredRoute, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.routes[id]
	return stored, ok
}

// Len reports the number of stored routes.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.routes)
}
