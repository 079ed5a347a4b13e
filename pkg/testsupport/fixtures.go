// Package testsupport provides fixtures and helpers shared by the cache,
// resolver, and storage tests: deterministic entity builders, sealed record
// construction, a manual clock for TTL scenarios, and JSON fixture loading.
package testsupport

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-tenant-cache/entity"
	"github.com/goliatone/go-tenant-cache/pii"
)

// Clock is a manually advanced clock for deterministic TTL tests.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock creates a clock frozen at start.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now returns the current frozen time. Pass this method as the cache clock.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// TestKey returns a deterministic 32-byte key for pii.NewCipher.
func TestKey() []byte {
	key := make([]byte, pii.KeySize)
	for i := range key {
		key[i] = byte(i)
	}
	return key
}

// NewCipher creates a Cipher from TestKey, failing the test on error.
func NewCipher(t *testing.T) *pii.Cipher {
	t.Helper()
	cipher, err := pii.NewCipher(TestKey())
	if err != nil {
		t.Fatalf("failed to create test cipher: %v", err)
	}
	return cipher
}

// Members returns n member fixtures belonging to the tenant, with unique IDs
// and deterministic PII fields.
func Members(tenantID string, n int) []entity.Member {
	members := make([]entity.Member, n)
	for i := range members {
		members[i] = entity.Member{
			ID:        uuid.NewString(),
			TenantID:  tenantID,
			FirstName: fmt.Sprintf("First%02d", i),
			LastName:  fmt.Sprintf("Last%02d", i),
			Email:     fmt.Sprintf("member%02d@example.com", i),
			Phone:     fmt.Sprintf("+1-555-01%02d", i),
			Status:    "active",
		}
	}
	return members
}

// Families returns n family fixtures belonging to the tenant.
func Families(tenantID string, n int) []entity.Family {
	families := make([]entity.Family, n)
	for i := range families {
		families[i] = entity.Family{
			ID:       uuid.NewString(),
			TenantID: tenantID,
			Name:     fmt.Sprintf("Family %02d", i),
		}
	}
	return families
}

// SealRecord seals v into an encrypted record row, failing the test on error.
func SealRecord(t *testing.T, cipher *pii.Cipher, id, tenantID, kind string, v any) entity.EncryptedRecord {
	t.Helper()
	ciphertext, err := cipher.Seal(v)
	if err != nil {
		t.Fatalf("failed to seal %s record %s: %v", kind, id, err)
	}
	return entity.EncryptedRecord{
		ID:         id,
		TenantID:   tenantID,
		Kind:       kind,
		Ciphertext: ciphertext,
	}
}

// SealMembers seals each member into an encrypted record row keyed by the
// member's own ID.
func SealMembers(t *testing.T, cipher *pii.Cipher, members []entity.Member) []entity.EncryptedRecord {
	t.Helper()
	records := make([]entity.EncryptedRecord, 0, len(members))
	for _, m := range members {
		records = append(records, SealRecord(t, cipher, m.ID, m.TenantID, entity.KindMember, m))
	}
	return records
}

// LoadFixture loads raw test data from a fixture file.
// The path is relative to the test package directory.
func LoadFixture(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to load fixture from %s: %v", path, err)
	}
	return data
}

// LoadFixtureJSON loads JSON test data from a fixture file and unmarshals it.
// The path is relative to the test package directory.
func LoadFixtureJSON(t *testing.T, path string, dest interface{}) {
	t.Helper()

	data := LoadFixture(t, path)
	if err := json.Unmarshal(data, dest); err != nil {
		t.Fatalf("failed to unmarshal JSON fixture from %s: %v", path, err)
	}
}

// FixturePath constructs a path to a fixture file relative to the testdata
// directory.
func FixturePath(filename string) string {
	return filepath.Join("testdata", filename)
}
