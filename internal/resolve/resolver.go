// Package resolve memoizes graph queries behind a TTL cache so repeated
// lookups for hot entities skip the BFS walks. Invalidation is explicit, by
// entity id, driven by whoever mutates the graph.
package resolve

import (
	"log/slog"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/meshsim/meshsim/internal/graph"
)

// Mode selects which query a resolution runs.
type Mode string

const (
	ModeDirect      Mode = "direct"
	ModeTransitive  Mode = "transitive"
	ModeBlastRadius Mode = "blast-radius"
)

// DefaultTTL is how long a cached resolution stays valid.
const DefaultTTL = 60 * time.Second

// Resolution is one cached query result. Exactly one of the result fields is
// populated, matching the requested mode.
type Resolution struct {
	ServiceID  string                       `json:"service_id"`
	Mode       Mode                         `json:"mode"`
	Direct     []graph.DependencyEdge       `json:"direct,omitempty"`
	Transitive []graph.TransitiveDependency `json:"transitive,omitempty"`
	Blast      *graph.BlastRadiusResult     `json:"blast,omitempty"`
}

// Resolver caches graph resolutions with TTL eviction.
//
// Single-threaded like the rest of the engine: the hit/resolution counters
// are unsynchronized.
type Resolver struct {
	graph       *graph.Store
	cache       *expirable.LRU[string, *Resolution]
	ttl         time.Duration
	resolutions int
	hits        int
	logger      *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithTTL overrides the cache entry lifetime.
func WithTTL(ttl time.Duration) ResolverOption {
	return func(r *Resolver) { r.ttl = ttl }
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) { r.logger = logger }
}

// NewResolver creates a Resolver over the given graph.
func NewResolver(g *graph.Store, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		graph:  g,
		ttl:    DefaultTTL,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	// Size 0 keeps the cache unbounded; TTL is the only eviction pressure.
	r.cache = expirable.NewLRU[string, *Resolution](0, nil, r.ttl)
	return r
}

// Resolve returns the graph resolution for an entity, from cache when fresh.
// Unrecognized modes fall back to a direct lookup.
func (r *Resolver) Resolve(id string, mode Mode) *Resolution {
	key := id + ":" + string(mode)
	if cached, ok := r.cache.Get(key); ok {
		r.hits++
		return cached
	}
	r.resolutions++

	res := &Resolution{ServiceID: id, Mode: mode}
	switch mode {
	case ModeTransitive:
		res.Transitive = r.graph.TransitiveDependencies(id, 0)
	case ModeBlastRadius:
		blast := r.graph.BlastRadius(id)
		res.Blast = &blast
	default:
		res.Direct = r.graph.DependenciesOf(id)
	}

	r.cache.Add(key, res)
	return res
}

// Invalidate drops every cached resolution for an entity, across all modes.
// Returns how many entries were removed.
func (r *Resolver) Invalidate(id string) int {
	prefix := id + ":"
	removed := 0
	for _, key := range r.cache.Keys() {
		if strings.HasPrefix(key, prefix) && r.cache.Remove(key) {
			removed++
		}
	}
	r.logger.Debug("resolution cache invalidated", "entity_id", id, "entries", removed)
	return removed
}

// InvalidateAll clears the whole cache.
func (r *Resolver) InvalidateAll() {
	r.cache.Purge()
	r.logger.Debug("resolution cache fully invalidated")
}

// Stats reports cache effectiveness.
type Stats struct {
	TotalResolutions int     `json:"total_resolutions"`
	CacheHits        int     `json:"cache_hits"`
	CacheSize        int     `json:"cache_size"`
	HitRate          float64 `json:"hit_rate"`
}

// Stats returns the resolver's counters. The hit-rate denominator is floored
// at 1 so a fresh resolver reports 0 rather than NaN.
func (r *Resolver) Stats() Stats {
	denom := r.resolutions + r.hits
	if denom < 1 {
		denom = 1
	}
	return Stats{
		TotalResolutions: r.resolutions,
		CacheHits:        r.hits,
		CacheSize:        r.cache.Len(),
		HitRate:          float64(r.hits) / float64(denom),
	}
}
