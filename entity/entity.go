package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Entity kind discriminators. One snapshot cache instance exists per kind.
const (
	KindMember           = "member"
	KindFamily           = "family"
	KindCarePlan         = "care_plan"
	KindDiscipleshipPlan = "discipleship_plan"
)

// Member is a decrypted church member record, including the PII fields that
// are stored encrypted at rest.
type Member struct {
	ID        string `json:"id" msgpack:"id"`
	TenantID  string `json:"tenant_id" msgpack:"tenant_id"`
	FirstName string `json:"first_name" msgpack:"first_name"`
	LastName  string `json:"last_name" msgpack:"last_name"`
	Email     string `json:"email" msgpack:"email"`
	Phone     string `json:"phone" msgpack:"phone"`
	Status    string `json:"status" msgpack:"status"`
	FamilyID  string `json:"family_id" msgpack:"family_id"`
}

// Family groups members of one household.
type Family struct {
	ID        string   `json:"id" msgpack:"id"`
	TenantID  string   `json:"tenant_id" msgpack:"tenant_id"`
	Name      string   `json:"name" msgpack:"name"`
	MemberIDs []string `json:"member_ids" msgpack:"member_ids"`
}

// CarePlan tracks pastoral care for one member.
type CarePlan struct {
	ID       string    `json:"id" msgpack:"id"`
	TenantID string    `json:"tenant_id" msgpack:"tenant_id"`
	MemberID string    `json:"member_id" msgpack:"member_id"`
	Title    string    `json:"title" msgpack:"title"`
	Assignee string    `json:"assignee" msgpack:"assignee"`
	Status   string    `json:"status" msgpack:"status"`
	DueDate  time.Time `json:"due_date" msgpack:"due_date"`
}

// DiscipleshipPlan tracks a member's discipleship progression.
type DiscipleshipPlan struct {
	ID        string    `json:"id" msgpack:"id"`
	TenantID  string    `json:"tenant_id" msgpack:"tenant_id"`
	MemberID  string    `json:"member_id" msgpack:"member_id"`
	Mentor    string    `json:"mentor" msgpack:"mentor"`
	Stage     string    `json:"stage" msgpack:"stage"`
	StartedAt time.Time `json:"started_at" msgpack:"started_at"`
}

// EncryptedRecord is the raw row the repository layer returns before
// decryption: an opaque ciphertext payload plus the metadata columns needed
// for tenant scoping. All entity kinds share one metadata-driven table with
// Kind as the discriminator.
type EncryptedRecord struct {
	bun.BaseModel `bun:"table:entity_records,alias:er"`

	ID         string `bun:"id,pk"`
	TenantID   string `bun:"tenant_id,notnull"`
	Kind       string `bun:"kind,notnull"`
	Ciphertext []byte `bun:"ciphertext,notnull"`
}
