// Package bunstore provides a bun-backed implementation of the resolver's
// fetch boundary: the complete encrypted dataset for one tenant and one
// entity kind, read from the shared entity_records table.
package bunstore

import (
	"context"
	"fmt"

	"github.com/goliatone/go-tenant-cache/entity"
	"github.com/goliatone/go-tenant-cache/resolvercache"
	"github.com/uptrace/bun"
)

// Interface assertion to keep the fetch boundary honest.
var _ resolvercache.Fetcher[entity.EncryptedRecord] = (*Fetcher)(nil)

// Fetcher loads encrypted records for one entity kind. It never decrypts;
// ciphertext flows to the pii layer untouched.
type Fetcher struct {
	db   bun.IDB
	kind string
}

// New creates a fetcher for the given entity kind.
func New(db bun.IDB, kind string) *Fetcher {
	return &Fetcher{db: db, kind: kind}
}

// FetchAllForTenant implements resolvercache.Fetcher. Results are ordered by
// record ID so snapshots are deterministic across refetches.
func (f *Fetcher) FetchAllForTenant(ctx context.Context, tenantID string) ([]entity.EncryptedRecord, error) {
	var records []entity.EncryptedRecord
	err := f.db.NewSelect().
		Model(&records).
		Where("er.tenant_id = ?", tenantID).
		Where("er.kind = ?", f.kind).
		Order("er.id").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("bunstore: select %s records for tenant %s: %w", f.kind, tenantID, err)
	}
	return records, nil
}
