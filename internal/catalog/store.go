package catalog

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/meshsim/meshsim/internal/trace"
)

// Store is the in-memory entity directory plus trace archive.
//
// Entities are held per type in insertion order. Single-writer: no internal
// locking; concurrent writes require external coordination.
type Store struct {
	entities map[string]map[string]Entity
	order    map[string][]string

	traces    []*trace.Trace
	byTraceID map[string]*trace.Trace

	now    func() time.Time
	logger *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock substitutes the timestamp source. Tests pin it.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) { s.logger = logger }
}

// NewStore creates an empty directory.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		entities:  make(map[string]map[string]Entity),
		order:     make(map[string][]string),
		byTraceID: make(map[string]*trace.Trace),
		now:       func() time.Time { return time.Now().UTC() },
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put inserts or replaces an entity and returns the stored record. A blank
// ID gets a generated one. CreatedAt is set on first insert and preserved on
// replacement; UpdatedAt always moves forward.
func (s *Store) Put(e Entity) Entity {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	now := s.now()
	e.UpdatedAt = now

	bucket, ok := s.entities[e.Type]
	if !ok {
		bucket = make(map[string]Entity)
		s.entities[e.Type] = bucket
	}

	if existing, found := bucket[e.ID]; found {
		e.CreatedAt = existing.CreatedAt
	} else {
		e.CreatedAt = now
		s.order[e.Type] = append(s.order[e.Type], e.ID)
	}

	bucket[e.ID] = e.clone()
	return e
}

// Get returns the entity of the given type and id.
func (s *Store) Get(entityType, id string) (Entity, bool) {
	e, ok := s.entities[entityType][id]
	if !ok {
		return Entity{}, false
	}
	return e.clone(), true
}

// All returns every entity of the given type in insertion order.
func (s *Store) All(entityType string) []Entity {
	ids := s.order[entityType]
	out := make([]Entity, 0, len(ids))
	for _, id := range ids {
		if e, ok := s.entities[entityType][id]; ok {
			out = append(out, e.clone())
		}
	}
	return out
}

// Delete removes an entity. Returns false when it was not present.
func (s *Store) Delete(entityType, id string) bool {
	bucket, ok := s.entities[entityType]
	if !ok {
		return false
	}
	if _, found := bucket[id]; !found {
		return false
	}
	delete(bucket, id)

	ids := s.order[entityType]
	for i, existing := range ids {
		if existing == id {
			s.order[entityType] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return true
}

// Count returns how many entities of the given type are stored.
func (s *Store) Count(entityType string) int {
	return len(s.entities[entityType])
}

// Overview returns per-type entity counts plus the archived trace count.
func (s *Store) Overview() map[string]int {
	out := make(map[string]int, len(s.entities)+1)
	for entityType, bucket := range s.entities {
		out[entityType] = len(bucket)
	}
	out["trace"] = len(s.traces)
	return out
}

// NameOf resolves an entity's display name. Satisfies the graph store's name
// lookup contract.
func (s *Store) NameOf(entityType, id string) (string, bool) {
	e, ok := s.entities[entityType][id]
	if !ok || e.Name == "" {
		return "", false
	}
	return e.Name, true
}

// PlatformOf resolves the name of the platform owning a service, following
// the service's platform_id attribute.
func (s *Store) PlatformOf(serviceID string) (string, bool) {
	e, ok := s.Get(TypeService, serviceID)
	if !ok {
		return "", false
	}
	platformID := e.StringAttr("platform_id")
	if platformID == "" {
		return "", false
	}
	return s.NameOf(TypePlatform, platformID)
}
