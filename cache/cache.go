package cache

import (
	"sort"
	"time"

	"github.com/goliatone/go-tenant-cache/internal/snapshotstore"
)

// Option configures optional SnapshotCache behavior.
type Option func(*settings)

type settings struct {
	now func() time.Time
}

// WithClock overrides the clock used to stamp and expire entries.
// Intended for tests that need deterministic TTL behavior.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

// SnapshotCache holds at most one fresh, full snapshot of entity type T per
// tenant. Snapshots expire lazily after the configured TTL and can be
// explicitly invalidated by write paths. All methods are safe for concurrent
// use; none of them perform I/O.
type SnapshotCache[T any] struct {
	store *snapshotstore.Store[T]
	ttl   time.Duration
	now   func() time.Time
}

// New constructs a snapshot cache from the provided configuration.
// The configuration is validated; an invalid TTL is the only failure mode.
func New[T any](cfg Config, opts ...Option) (*SnapshotCache[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := settings{now: time.Now}
	for _, opt := range opts {
		opt(&s)
	}

	return &SnapshotCache[T]{
		store: snapshotstore.New[T](cfg.TTL, s.now),
		ttl:   cfg.TTL,
		now:   s.now,
	}, nil
}

// Get returns the cached snapshot for the tenant, or false on a miss.
// An entry older than the TTL is treated as a miss and removed as a side
// effect. The returned slice is the cached snapshot itself, not a copy;
// callers must not mutate it in place.
func (c *SnapshotCache[T]) Get(tenantID string) ([]T, bool) {
	return c.store.Get(tenantID)
}

// Set unconditionally overwrites the tenant's snapshot with data, stamped at
// the current time. This is the only path by which a tenant transitions to
// fresh cached data. Data must be the complete, already decrypted dataset for
// the tenant, never a filtered or paginated view.
func (c *SnapshotCache[T]) Set(tenantID string, data []T) {
	c.store.Set(tenantID, data)
}

// Invalidate removes the tenant's snapshot, if present. Every mutation path
// for the entity kind must call this after the write is durably applied; it
// is the only consistency mechanism between writes and cached reads.
func (c *SnapshotCache[T]) Invalidate(tenantID string) {
	c.store.Delete(tenantID)
}

// Clear removes the snapshots of all tenants. Meant for global resets such as
// test teardown, not for request-serving code paths.
func (c *SnapshotCache[T]) Clear() {
	c.store.Clear()
}

// Len reports how many tenant entries are physically present, including stale
// entries that no Get has observed yet.
func (c *SnapshotCache[T]) Len() int {
	return c.store.Len()
}

// TTL returns the fixed time-to-live this cache was constructed with.
func (c *SnapshotCache[T]) TTL() time.Duration {
	return c.ttl
}

// Stats reports the number of cached tenants and, per tenant, the entry count
// and age of the snapshot. Output is sorted by tenant ID. Purely
// introspective; must not be used for correctness decisions.
func (c *SnapshotCache[T]) Stats() Stats {
	entries := c.store.Entries()
	now := c.now()

	stats := Stats{
		Tenants:   len(entries),
		PerTenant: make([]TenantStats, 0, len(entries)),
	}
	for _, e := range entries {
		age := now.Sub(e.CachedAt)
		stats.PerTenant = append(stats.PerTenant, TenantStats{
			TenantID: e.TenantID,
			Entries:  len(e.Data),
			CachedAt: e.CachedAt,
			Age:      age,
			Stale:    age > c.ttl,
		})
	}
	sort.Slice(stats.PerTenant, func(i, j int) bool {
		return stats.PerTenant[i].TenantID < stats.PerTenant[j].TenantID
	})
	return stats
}
