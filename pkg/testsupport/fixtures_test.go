package testsupport

import (
	"testing"
	"time"

	"github.com/goliatone/go-tenant-cache/entity"
)

func TestClock(t *testing.T) {
	start := time.Unix(1000, 0)
	clock := NewClock(start)

	if !clock.Now().Equal(start) {
		t.Errorf("expected frozen start time, got %v", clock.Now())
	}

	clock.Advance(90 * time.Second)
	if got := clock.Now(); !got.Equal(start.Add(90 * time.Second)) {
		t.Errorf("expected advanced time, got %v", got)
	}
}

func TestMembersBuilder(t *testing.T) {
	members := Members("tenant-1", 3)

	if len(members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(members))
	}
	seen := map[string]bool{}
	for _, m := range members {
		if m.TenantID != "tenant-1" {
			t.Errorf("member %s has wrong tenant %q", m.ID, m.TenantID)
		}
		if m.ID == "" || seen[m.ID] {
			t.Errorf("member IDs must be unique and non-empty, got %q", m.ID)
		}
		seen[m.ID] = true
	}
}

func TestSealMembers_Roundtrip(t *testing.T) {
	cipher := NewCipher(t)
	members := Members("tenant-1", 2)

	records := SealMembers(t, cipher, members)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	for i, rec := range records {
		if rec.ID != members[i].ID || rec.TenantID != "tenant-1" || rec.Kind != entity.KindMember {
			t.Errorf("record %d metadata mismatch: %+v", i, rec)
		}
		var got entity.Member
		if err := cipher.Open(rec.Ciphertext, &got); err != nil {
			t.Fatalf("failed to open record %d: %v", i, err)
		}
		if got != members[i] {
			t.Errorf("record %d: expected %+v, got %+v", i, members[i], got)
		}
	}
}

func TestLoadFixtureJSON(t *testing.T) {
	var members []entity.Member
	LoadFixtureJSON(t, FixturePath("members.json"), &members)

	if len(members) != 2 {
		t.Fatalf("expected 2 fixture members, got %d", len(members))
	}
	if members[0].TenantID != "tenant-fixture" || members[0].FirstName != "Ada" {
		t.Errorf("unexpected first fixture member: %+v", members[0])
	}
}
