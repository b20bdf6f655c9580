package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestIdentity_Anonymous(t *testing.T) {
	uid, oid := 5, 9

	if !(Identity{}).Anonymous() {
		t.Fatal("zero identity must be anonymous")
	}
	if (Identity{UserID: &uid}).Anonymous() {
		t.Fatal("identity with user id is not anonymous")
	}
	if (Identity{OrgID: &oid}).Anonymous() {
		t.Fatal("identity with org id is not anonymous")
	}
	// Profile fields alone do not make an identity scoped.
	if !(Identity{Email: "x@y.test", Role: "admin"}).Anonymous() {
		t.Fatal("identity without tenant refs must stay anonymous")
	}
}

// The wire field names are part of the public contract; clients key on the
// snake_case names, and never-set optional fields serialize as null.
func TestVendor_WireShape(t *testing.T) {
	v := Vendor{ID: 1, Name: "Acme", Category: "Tools", CreatedAt: time.Date(2025, 6, 21, 12, 0, 0, 0, time.UTC)}

	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(raw)
	for _, key := range []string{`"id"`, `"name"`, `"category"`, `"contact_email"`, `"phone_number"`, `"address"`, `"created_at"`, `"user_id"`, `"org_id"`} {
		if !strings.Contains(body, key) {
			t.Fatalf("missing %s in %s", key, body)
		}
	}
	if !strings.Contains(body, `"contact_email":null`) {
		t.Fatalf("unset optional field should serialize as null: %s", body)
	}
	if !strings.Contains(body, `"created_at":"2025-06-21T12:00:00Z"`) {
		t.Fatalf("created_at should be RFC 3339: %s", body)
	}
}
