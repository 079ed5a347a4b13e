package cache

import "time"

// TenantStats describes one tenant's cached snapshot for diagnostics.
type TenantStats struct {
	// TenantID is the tenant the snapshot belongs to.
	TenantID string `json:"tenant_id"`

	// Entries is the number of records in the snapshot.
	Entries int `json:"entries"`

	// CachedAt is when the snapshot was stored.
	CachedAt time.Time `json:"cached_at"`

	// Age is how long ago the snapshot was stored, per the cache clock.
	Age time.Duration `json:"age"`

	// Stale reports whether the snapshot has outlived the TTL but has not
	// been reclaimed yet because no Get has observed it.
	Stale bool `json:"stale"`
}

// Stats is the introspection output of a SnapshotCache. It reflects the
// physical contents of the map at the time of the call, including entries
// that are already past their TTL.
type Stats struct {
	// Tenants is the number of tenants with a physically present entry.
	Tenants int `json:"tenants"`

	// PerTenant holds one TenantStats per cached tenant, sorted by tenant ID.
	PerTenant []TenantStats `json:"per_tenant"`
}
