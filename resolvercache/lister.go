package resolvercache

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
)

// TenantColumn is the column the lister adapter scopes reads by.
const TenantColumn = "tenant_id"

// Lister is the narrow slice of a go-repository-bun repository the adapter
// needs. Accepting only List keeps fakes small and keeps the resolver from
// depending on the full repository surface.
type Lister[T any] interface {
	List(ctx context.Context, criteria ...repository.SelectCriteria) ([]T, int, error)
}

// ListerFetcher adapts a repository lister to the Fetcher contract, scoping
// every read to a single tenant. The reported total is discarded: snapshots
// are always the full tenant dataset, so the record count is the total.
type ListerFetcher[T any] struct {
	lister Lister[T]
}

// Interface assertion so adapter drift fails at compile time.
var _ Fetcher[any] = (*ListerFetcher[any])(nil)

// NewListerFetcher wraps a repository lister.
func NewListerFetcher[T any](lister Lister[T]) *ListerFetcher[T] {
	return &ListerFetcher[T]{lister: lister}
}

// FetchAllForTenant implements Fetcher.
func (f *ListerFetcher[T]) FetchAllForTenant(ctx context.Context, tenantID string) ([]T, error) {
	records, _, err := f.lister.List(ctx, repository.SelectBy(TenantColumn, "=", tenantID))
	if err != nil {
		return nil, err
	}
	return records, nil
}
