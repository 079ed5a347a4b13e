package snapshotstore

import (
	"time"

	"github.com/puzpuzpuz/xsync/v3"
)

// Entry is one tenant's snapshot together with the bookkeeping the stats
// surface reports. TenantID is carried inside the entry (in addition to being
// the map key) so that Range-based introspection does not need the key.
type Entry[T any] struct {
	TenantID string
	Data     []T
	CachedAt time.Time
}

// Store holds at most one full snapshot per tenant with a fixed TTL.
//
// Expiry is lazy: an entry that outlives the TTL stays in the map until the
// next Get observes it, at which point it is deleted and reported as a miss.
// There is no background sweep and no size bound.
type Store[T any] struct {
	entries *xsync.MapOf[string, Entry[T]]
	ttl     time.Duration
	now     func() time.Time
}

// New creates a store with the given TTL. The now function is the clock used
// for stamping and expiring entries; pass nil for the wall clock.
func New[T any](ttl time.Duration, now func() time.Time) *Store[T] {
	if now == nil {
		now = time.Now
	}
	return &Store[T]{
		entries: xsync.NewMapOf[string, Entry[T]](),
		ttl:     ttl,
		now:     now,
	}
}

// Get returns the snapshot for the tenant, or false when no fresh entry
// exists. A stale entry is removed as a side effect and reported as a miss.
//
// The expiry check and the delete run inside a single Compute so a reader
// that observed a stale entry can never delete a fresh entry written
// concurrently for the same tenant.
func (s *Store[T]) Get(tenantID string) ([]T, bool) {
	var (
		data []T
		hit  bool
	)
	s.entries.Compute(tenantID, func(e Entry[T], loaded bool) (Entry[T], bool) {
		if !loaded {
			return e, true
		}
		if s.now().Sub(e.CachedAt) > s.ttl {
			// Lazily reclaim the stale entry.
			return e, true
		}
		data, hit = e.Data, true
		return e, false
	})
	return data, hit
}

// Set unconditionally replaces the tenant's entry with a new snapshot stamped
// at the current time. Calling Set again with the same data resets the TTL.
func (s *Store[T]) Set(tenantID string, data []T) {
	s.entries.Store(tenantID, Entry[T]{
		TenantID: tenantID,
		Data:     data,
		CachedAt: s.now(),
	})
}

// Delete removes the tenant's entry. No-op when absent.
func (s *Store[T]) Delete(tenantID string) {
	s.entries.Delete(tenantID)
}

// Clear removes every entry for every tenant.
func (s *Store[T]) Clear() {
	s.entries.Clear()
}

// Len reports the number of physically present entries, stale ones included.
func (s *Store[T]) Len() int {
	return s.entries.Size()
}

// Entries copies out every physically present entry for introspection.
func (s *Store[T]) Entries() []Entry[T] {
	out := make([]Entry[T], 0, s.entries.Size())
	s.entries.Range(func(_ string, e Entry[T]) bool {
		out = append(out, e)
		return true
	})
	return out
}
