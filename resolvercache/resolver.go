package resolvercache

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-tenant-cache/cache"
	"go.uber.org/zap"
)

// ErrMissingTenant is returned when a resolver operation is invoked without a
// tenant identifier. Resolvers fail fast before touching the cache or the
// underlying store.
var ErrMissingTenant = errors.New("resolvercache: missing tenant identifier")

// Fetcher loads the complete raw dataset for one tenant from the underlying
// store. This is the repository boundary; it may fail with a data-access
// error, which the resolver propagates without caching anything.
type Fetcher[R any] interface {
	FetchAllForTenant(ctx context.Context, tenantID string) ([]R, error)
}

// FetcherFunc adapts a plain function to the Fetcher interface.
type FetcherFunc[R any] func(ctx context.Context, tenantID string) ([]R, error)

// FetchAllForTenant implements Fetcher.
func (f FetcherFunc[R]) FetchAllForTenant(ctx context.Context, tenantID string) ([]R, error) {
	return f(ctx, tenantID)
}

// Decryptor converts one raw record into its decrypted entity form.
type Decryptor[R, T any] interface {
	Decrypt(record R) (T, error)
}

// DecryptorFunc adapts a plain function to the Decryptor interface.
type DecryptorFunc[R, T any] func(record R) (T, error)

// Decrypt implements Decryptor.
func (f DecryptorFunc[R, T]) Decrypt(record R) (T, error) {
	return f(record)
}

// Option configures optional resolver behavior.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger attaches a structured logger. Defaults to a nop logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// CachedResolver is the read-through layer in front of a SnapshotCache. It
// owns the fetch-on-miss and decryption steps the cache deliberately does not
// perform, and the invalidation hook every mutation path must go through.
type CachedResolver[R, T any] struct {
	kind      string
	fetcher   Fetcher[R]
	decryptor Decryptor[R, T]
	snapshots *cache.SnapshotCache[T]
	logger    *zap.Logger
}

// New wires a fetcher, a decryptor, and a snapshot cache into a resolver for
// one entity kind. The kind string only labels errors and log lines.
func New[R, T any](kind string, fetcher Fetcher[R], decryptor Decryptor[R, T], snapshots *cache.SnapshotCache[T], opts ...Option) *CachedResolver[R, T] {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &CachedResolver[R, T]{
		kind:      kind,
		fetcher:   fetcher,
		decryptor: decryptor,
		snapshots: snapshots,
		logger:    o.logger.With(zap.String("kind", kind)),
	}
}

// Kind returns the entity kind label this resolver was constructed with.
func (r *CachedResolver[R, T]) Kind() string {
	return r.kind
}

// List returns the full decrypted snapshot for the tenant, serving it from
// the cache when fresh and running fetch + decrypt + cache on a miss. Any
// narrowing (search terms, filters, pagination) is the caller's job, applied
// to the returned snapshot.
func (r *CachedResolver[R, T]) List(ctx context.Context, tenantID string) ([]T, error) {
	if tenantID == "" {
		return nil, ErrMissingTenant
	}
	if snapshot, ok := r.snapshots.Get(tenantID); ok {
		return snapshot, nil
	}
	return r.fetchAndCache(ctx, tenantID)
}

// Refresh drops the tenant's snapshot and re-runs the read-through path,
// for callers that must observe the underlying store immediately (e.g. after
// a bulk import) rather than waiting out the TTL.
func (r *CachedResolver[R, T]) Refresh(ctx context.Context, tenantID string) ([]T, error) {
	if tenantID == "" {
		return nil, ErrMissingTenant
	}
	r.snapshots.Invalidate(tenantID)
	return r.fetchAndCache(ctx, tenantID)
}

// Invalidate drops the tenant's snapshot so the next read re-fetches.
func (r *CachedResolver[R, T]) Invalidate(tenantID string) {
	r.snapshots.Invalidate(tenantID)
	r.logger.Debug("snapshot invalidated", zap.String("tenant_id", tenantID))
}

// Mutate runs op and invalidates the tenant's snapshot only after op has
// succeeded. Create, update, and delete paths route through here so the
// write-side half of the consistency contract lives in one place. When op
// fails the snapshot is left untouched.
func (r *CachedResolver[R, T]) Mutate(ctx context.Context, tenantID string, op func(context.Context) error) error {
	if tenantID == "" {
		return ErrMissingTenant
	}
	if err := op(ctx); err != nil {
		return err
	}
	r.Invalidate(tenantID)
	return nil
}

// fetchAndCache runs the miss path: fetch all raw records for the tenant,
// decrypt each one, then cache the complete snapshot. Set is never called
// when fetch or any decrypt fails, leaving the cache in its prior state.
func (r *CachedResolver[R, T]) fetchAndCache(ctx context.Context, tenantID string) ([]T, error) {
	records, err := r.fetcher.FetchAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("resolvercache: fetch %s records for tenant %s: %w", r.kind, tenantID, err)
	}

	snapshot := make([]T, 0, len(records))
	for _, record := range records {
		decrypted, err := r.decryptor.Decrypt(record)
		if err != nil {
			return nil, fmt.Errorf("resolvercache: decrypt %s record for tenant %s: %w", r.kind, tenantID, err)
		}
		snapshot = append(snapshot, decrypted)
	}

	r.snapshots.Set(tenantID, snapshot)
	r.logger.Debug("snapshot cached",
		zap.String("tenant_id", tenantID),
		zap.Int("records", len(snapshot)),
	)
	return snapshot, nil
}
