// Package cache provides a generic, per-tenant, TTL-based snapshot cache.
//
// # Overview
//
// SnapshotCache[T] holds at most one full snapshot of entity type T per
// tenant. It generalizes the cache that multi-tenant resolver code otherwise
// reimplements once per entity kind: cache the complete decrypted dataset for
// a tenant, expire it after a fixed TTL, and drop it explicitly whenever a
// mutation touches that tenant's data.
//
// The cache is a leaf component. It performs no I/O, never sees ciphertext,
// and has no failure modes; the fetch-on-miss and decryption steps belong to
// the calling resolver (see the resolvercache package).
//
// # Basic Usage
//
//	members, err := cache.New[entity.Member](cache.DefaultConfig())
//	if err != nil {
//		return err
//	}
//
//	// Read side
//	if snapshot, ok := members.Get(tenantID); ok {
//		return snapshot, nil
//	}
//	snapshot := fetchAndDecrypt(ctx, tenantID) // caller-owned
//	members.Set(tenantID, snapshot)
//
//	// Write side, after the mutation is durably applied
//	members.Invalidate(tenantID)
//
// # Expiry Model
//
// Expiry is lazy. An entry that outlives the TTL stays in the map until the
// next Get for that tenant observes it, at which point it is deleted and the
// call reports a miss. There is no background sweep: a tenant that stops
// being queried leaves its last snapshot in memory until Invalidate or Clear
// removes it. Stats reports such entries with Stale set.
//
// # Concurrency
//
// All operations are safe for concurrent use and are plain map operations
// guarded by the underlying concurrent map. Two concurrent misses for the
// same tenant may both trigger an independent fetch followed by Set; this
// duplicated work is accepted rather than prevented with a per-tenant fetch
// lock, because the staleness tolerance is already coarse.
//
// An Invalidate racing a Set for the same tenant has last-writer-wins
// semantics. A Set fed by a fetch that started before an invalidating
// mutation can therefore transiently reinstate pre-mutation data until the
// TTL or the next invalidation clears it. This staleness window is part of
// the contract, not a bug.
//
// # Snapshot Ownership
//
// Get returns the cached slice itself rather than a defensive copy. Callers
// narrow the snapshot (search, filters, pagination) by building their own
// derived slices and must not mutate the returned one in place.
//
// # See Also
//
// For the read-through layer that populates this cache, see the
// resolvercache package. For per-entity-kind instance wiring, see pkg/di.
package cache
