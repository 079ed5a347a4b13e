// Package resolvercache implements the read-through layer in front of the
// per-tenant snapshot caches.
//
// # Overview
//
// A CachedResolver[R, T] owns everything the cache itself deliberately does
// not do: fetching the raw tenant dataset from the repository boundary,
// decrypting each record, storing the complete snapshot, and invalidating it
// after mutations. One resolver instance exists per entity kind (member,
// family, care plan, discipleship plan), each backed by its own
// cache.SnapshotCache.
//
// # Read Path
//
//	resolver := resolvercache.New(entity.KindMember, fetcher, decryptor, members)
//
//	snapshot, err := resolver.List(ctx, tenantID)
//
// List fails fast with ErrMissingTenant before touching the cache, serves a
// fresh snapshot from the cache when one exists, and otherwise runs
// fetch -> decrypt -> Set -> return. A fetch or decrypt failure propagates
// wrapped and never calls Set, so the cache stays in its prior state and the
// next read retries the full path.
//
// # Write Path
//
//	err := resolver.Mutate(ctx, tenantID, func(ctx context.Context) error {
//		return repo.Update(ctx, record)
//	})
//
// Mutate invalidates the tenant's snapshot only after the mutation op has
// durably applied. Whole-snapshot invalidation is the only consistency
// mechanism: there is no versioning and no partial patching of cached data,
// because entities carry derived fields that are expensive to patch and
// cheap to refetch at per-tenant dataset sizes.
//
// # Concurrency
//
// Resolvers add no locking of their own; concurrent misses for the same
// tenant may duplicate the fetch + decrypt work, and a Set fed by a fetch
// that started before an invalidating write can transiently reinstate
// pre-mutation data until the TTL clears it. Both races are accepted, see
// the cache package documentation.
//
// # Repository Adapter
//
// ListerFetcher bridges a go-repository-bun lister to the Fetcher contract
// by filtering on the tenant column. For a plain bun-backed implementation
// of the same contract, see the bunstore package.
package resolvercache
