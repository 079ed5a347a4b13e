package resolvercache

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/goliatone/go-tenant-cache/cache"
)

type testMember struct {
	ID   string
	Name string
}

// rawMember simulates the encrypted row shape a repository would return.
type rawMember struct {
	ID      string
	Payload string
}

// mockFetcher tracks fetch calls per tenant and serves canned raw records.
type mockFetcher struct {
	mu      sync.Mutex
	calls   []string
	records map[string][]rawMember
	err     error
}

func (m *mockFetcher) FetchAllForTenant(ctx context.Context, tenantID string) ([]rawMember, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, tenantID)
	if m.err != nil {
		return nil, m.err
	}
	return m.records[tenantID], nil
}

func (m *mockFetcher) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// mockDecryptor converts raw records, optionally failing on a chosen ID.
type mockDecryptor struct {
	mu     sync.Mutex
	calls  int
	failID string
}

func (m *mockDecryptor) Decrypt(record rawMember) (testMember, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.failID != "" && record.ID == m.failID {
		return testMember{}, errors.New("bad ciphertext")
	}
	return testMember{ID: record.ID, Name: record.Payload}, nil
}

func newTestResolver(t *testing.T, fetcher *mockFetcher, decryptor *mockDecryptor) (*CachedResolver[rawMember, testMember], *cache.SnapshotCache[testMember]) {
	t.Helper()
	snapshots, err := cache.New[testMember](cache.DefaultConfig())
	if err != nil {
		t.Fatalf("cache.New() failed: %v", err)
	}
	resolver := New("member", fetcher, decryptor, snapshots, WithLogger(zaptest.NewLogger(t)))
	return resolver, snapshots
}

func TestList_MissingTenant(t *testing.T) {
	resolver, _ := newTestResolver(t, &mockFetcher{}, &mockDecryptor{})

	if _, err := resolver.List(context.Background(), ""); !errors.Is(err, ErrMissingTenant) {
		t.Errorf("expected ErrMissingTenant, got %v", err)
	}
	if err := resolver.Mutate(context.Background(), "", func(context.Context) error { return nil }); !errors.Is(err, ErrMissingTenant) {
		t.Errorf("expected ErrMissingTenant from Mutate, got %v", err)
	}
	if _, err := resolver.Refresh(context.Background(), ""); !errors.Is(err, ErrMissingTenant) {
		t.Errorf("expected ErrMissingTenant from Refresh, got %v", err)
	}
}

func TestList_ReadThrough(t *testing.T) {
	fetcher := &mockFetcher{records: map[string][]rawMember{
		"tenant-1": {{ID: "m1", Payload: "Ada"}, {ID: "m2", Payload: "Ben"}},
	}}
	decryptor := &mockDecryptor{}
	resolver, _ := newTestResolver(t, fetcher, decryptor)

	want := []testMember{{ID: "m1", Name: "Ada"}, {ID: "m2", Name: "Ben"}}

	// First call is a miss: fetch + decrypt + cache.
	got, err := resolver.List(context.Background(), "tenant-1")
	if err != nil {
		t.Fatalf("first List failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if fetcher.callCount() != 1 {
		t.Fatalf("expected 1 fetch, got %d", fetcher.callCount())
	}

	// Second call is served from the snapshot.
	got, err = resolver.List(context.Background(), "tenant-1")
	if err != nil {
		t.Fatalf("second List failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected cached %v, got %v", want, got)
	}
	if fetcher.callCount() != 1 {
		t.Errorf("expected snapshot hit, fetcher called %d times", fetcher.callCount())
	}
}

func TestList_EmptyTenantDatasetIsCached(t *testing.T) {
	fetcher := &mockFetcher{records: map[string][]rawMember{}}
	resolver, _ := newTestResolver(t, fetcher, &mockDecryptor{})

	got, err := resolver.List(context.Background(), "tenant-empty")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty snapshot, got %v", got)
	}

	// An empty dataset is a valid snapshot, not a miss.
	if _, err := resolver.List(context.Background(), "tenant-empty"); err != nil {
		t.Fatalf("second List failed: %v", err)
	}
	if fetcher.callCount() != 1 {
		t.Errorf("expected empty snapshot to be cached, fetcher called %d times", fetcher.callCount())
	}
}

func TestList_FetchErrorLeavesCacheUntouched(t *testing.T) {
	fetchErr := errors.New("connection refused")
	fetcher := &mockFetcher{err: fetchErr}
	resolver, snapshots := newTestResolver(t, fetcher, &mockDecryptor{})

	_, err := resolver.List(context.Background(), "tenant-1")
	if !errors.Is(err, fetchErr) {
		t.Fatalf("expected wrapped fetch error, got %v", err)
	}
	if !strings.Contains(err.Error(), "member") || !strings.Contains(err.Error(), "tenant-1") {
		t.Errorf("expected error to name kind and tenant, got %q", err)
	}
	if snapshots.Len() != 0 {
		t.Error("Set must not be called when the fetch fails")
	}

	// Once the store recovers, the next read retries the full path.
	fetcher.err = nil
	fetcher.records = map[string][]rawMember{"tenant-1": {{ID: "m1", Payload: "Ada"}}}
	got, err := resolver.List(context.Background(), "tenant-1")
	if err != nil || len(got) != 1 {
		t.Fatalf("expected recovery fetch to succeed, got %v err=%v", got, err)
	}
	if fetcher.callCount() != 2 {
		t.Errorf("expected 2 fetches, got %d", fetcher.callCount())
	}
}

func TestList_DecryptErrorLeavesCacheUntouched(t *testing.T) {
	fetcher := &mockFetcher{records: map[string][]rawMember{
		"tenant-1": {{ID: "m1", Payload: "Ada"}, {ID: "m2", Payload: "Ben"}},
	}}
	decryptor := &mockDecryptor{failID: "m2"}
	resolver, snapshots := newTestResolver(t, fetcher, decryptor)

	if _, err := resolver.List(context.Background(), "tenant-1"); err == nil {
		t.Fatal("expected decrypt error")
	}
	if snapshots.Len() != 0 {
		t.Error("Set must not be called with a partially decrypted snapshot")
	}
}

func TestMutate_InvalidatesOnSuccess(t *testing.T) {
	fetcher := &mockFetcher{records: map[string][]rawMember{
		"tenant-1": {{ID: "m1", Payload: "Ada"}},
	}}
	resolver, _ := newTestResolver(t, fetcher, &mockDecryptor{})

	if _, err := resolver.List(context.Background(), "tenant-1"); err != nil {
		t.Fatalf("List failed: %v", err)
	}

	fetcher.records["tenant-1"] = append(fetcher.records["tenant-1"], rawMember{ID: "m2", Payload: "Ben"})
	err := resolver.Mutate(context.Background(), "tenant-1", func(context.Context) error {
		return nil
	})
	if err != nil {
		t.Fatalf("Mutate failed: %v", err)
	}

	got, err := resolver.List(context.Background(), "tenant-1")
	if err != nil {
		t.Fatalf("List after Mutate failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected refetched snapshot with 2 records, got %v", got)
	}
	if fetcher.callCount() != 2 {
		t.Errorf("expected 2 fetches, got %d", fetcher.callCount())
	}
}

func TestMutate_FailedWriteKeepsSnapshot(t *testing.T) {
	fetcher := &mockFetcher{records: map[string][]rawMember{
		"tenant-1": {{ID: "m1", Payload: "Ada"}},
	}}
	resolver, _ := newTestResolver(t, fetcher, &mockDecryptor{})

	if _, err := resolver.List(context.Background(), "tenant-1"); err != nil {
		t.Fatalf("List failed: %v", err)
	}

	writeErr := errors.New("constraint violation")
	err := resolver.Mutate(context.Background(), "tenant-1", func(context.Context) error {
		return writeErr
	})
	if !errors.Is(err, writeErr) {
		t.Fatalf("expected write error, got %v", err)
	}

	// An unapplied write must not force a refetch.
	if _, err := resolver.List(context.Background(), "tenant-1"); err != nil {
		t.Fatalf("List after failed Mutate failed: %v", err)
	}
	if fetcher.callCount() != 1 {
		t.Errorf("expected snapshot to survive a failed write, fetcher called %d times", fetcher.callCount())
	}
}

func TestRefresh_BypassesSnapshot(t *testing.T) {
	fetcher := &mockFetcher{records: map[string][]rawMember{
		"tenant-1": {{ID: "m1", Payload: "Ada"}},
	}}
	resolver, _ := newTestResolver(t, fetcher, &mockDecryptor{})

	if _, err := resolver.List(context.Background(), "tenant-1"); err != nil {
		t.Fatalf("List failed: %v", err)
	}

	fetcher.records["tenant-1"] = []rawMember{{ID: "m1", Payload: "Ada"}, {ID: "m2", Payload: "Ben"}}
	got, err := resolver.Refresh(context.Background(), "tenant-1")
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected Refresh to observe the new dataset, got %v", got)
	}
	if fetcher.callCount() != 2 {
		t.Errorf("expected 2 fetches, got %d", fetcher.callCount())
	}
}

func TestResolver_FuncAdapters(t *testing.T) {
	snapshots, err := cache.New[testMember](cache.Config{TTL: time.Minute})
	if err != nil {
		t.Fatalf("cache.New() failed: %v", err)
	}

	fetcher := FetcherFunc[rawMember](func(ctx context.Context, tenantID string) ([]rawMember, error) {
		return []rawMember{{ID: "m1", Payload: "Ada"}}, nil
	})
	decryptor := DecryptorFunc[rawMember, testMember](func(record rawMember) (testMember, error) {
		return testMember{ID: record.ID, Name: record.Payload}, nil
	})

	resolver := New("member", fetcher, decryptor, snapshots)
	got, err := resolver.List(context.Background(), "tenant-1")
	if err != nil || len(got) != 1 || got[0].Name != "Ada" {
		t.Errorf("func adapters misbehaved: %v err=%v", got, err)
	}
	if resolver.Kind() != "member" {
		t.Errorf("expected kind member, got %q", resolver.Kind())
	}
}
