// Package store implements the in-process vendor collection backing the
// active request path. It is the only stateful component in the service:
// a process-wide slice of vendors guarded by a mutex, reinitialized to its
// seed data on every restart. Nothing here touches disk.
//
// Identifier assignment is deliberately 1 + max(existing ids), recomputed on
// every insert. After deleting the record with the highest id, that id is
// handed out again to the next insert. Callers that need never-reused ids
// must not rely on this store.
package store

import (
	"sync"
	"time"

	"github.com/vendstack/vendor-api/internal/domain"
)

// VendorInput carries the caller-supplied fields for an insert. The store
// assigns ID and CreatedAt itself; owner references are fixed here and never
// touched again by Update.
type VendorInput struct {
	Name         string
	Category     string
	ContactEmail *string
	PhoneNumber  *string
	Address      *string
	UserID       *int
	OrgID        *int
}

// VendorPatch is a partial update. Nil fields are left unchanged; non-nil
// fields replace the stored value. ID, CreatedAt, UserID and OrgID cannot be
// patched.
type VendorPatch struct {
	Name         *string
	Category     *string
	ContactEmail *string
	PhoneNumber  *string
	Address      *string
}

// Memory is an in-process vendor store. All operations are single critical
// sections, so no partial mutation is ever visible to a concurrent request.
// Safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	vendors []domain.Vendor

	// now is the clock used for CreatedAt stamps; replaceable in tests.
	now func() time.Time
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{now: time.Now}
}

// NewMemorySeeded returns a store preloaded with the sample vendors the
// service ships with. Seed records have fixed timestamps so list ordering is
// deterministic across restarts.
func NewMemorySeeded() *Memory {
	s := NewMemory()
	s.vendors = seedVendors()
	return s
}

// List returns a snapshot copy of all vendors in insertion order. Mutating
// the returned slice does not affect the store.
func (s *Memory) List() []domain.Vendor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Vendor, len(s.vendors))
	copy(out, s.vendors)
	return out
}

// Get returns the vendor with the given id, or ok=false when absent.
func (s *Memory) Get(id int) (domain.Vendor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, v := range s.vendors {
		if v.ID == id {
			return v, true
		}
	}
	return domain.Vendor{}, false
}

// Insert appends a new vendor, assigning the next id and the creation
// timestamp, and returns the stored record.
func (s *Memory) Insert(in VendorInput) domain.Vendor {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := domain.Vendor{
		ID:           s.nextIDLocked(),
		Name:         in.Name,
		Category:     in.Category,
		ContactEmail: in.ContactEmail,
		PhoneNumber:  in.PhoneNumber,
		Address:      in.Address,
		CreatedAt:    s.now().UTC(),
		UserID:       in.UserID,
		OrgID:        in.OrgID,
	}
	s.vendors = append(s.vendors, v)
	return v
}

// Update shallow-merges the patch over the stored record, keeping the
// original id, owner references and creation timestamp. It returns ok=false
// when the id is absent.
func (s *Memory) Update(id int, patch VendorPatch) (domain.Vendor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.vendors {
		if s.vendors[i].ID != id {
			continue
		}
		v := s.vendors[i]
		if patch.Name != nil {
			v.Name = *patch.Name
		}
		if patch.Category != nil {
			v.Category = *patch.Category
		}
		if patch.ContactEmail != nil {
			v.ContactEmail = patch.ContactEmail
		}
		if patch.PhoneNumber != nil {
			v.PhoneNumber = patch.PhoneNumber
		}
		if patch.Address != nil {
			v.Address = patch.Address
		}
		s.vendors[i] = v
		return v, true
	}
	return domain.Vendor{}, false
}

// Remove deletes the vendor with the given id and returns the removed
// record, or ok=false when the id is absent.
func (s *Memory) Remove(id int) (domain.Vendor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.vendors {
		if s.vendors[i].ID == id {
			removed := s.vendors[i]
			s.vendors = append(s.vendors[:i], s.vendors[i+1:]...)
			return removed, true
		}
	}
	return domain.Vendor{}, false
}

// nextIDLocked computes 1 + max(existing ids), or 1 on an empty store.
// Caller must hold mu.
func (s *Memory) nextIDLocked() int {
	maxID := 0
	for _, v := range s.vendors {
		if v.ID > maxID {
			maxID = v.ID
		}
	}
	return maxID + 1
}

// strp is a convenience for building seed records.
func strp(s string) *string { return &s }

// seedVendors returns the hard-coded sample records the service starts with.
func seedVendors() []domain.Vendor {
	return []domain.Vendor{
		{
			ID:           1,
			Name:         "ABC Supplies",
			Category:     "Office Supplies",
			ContactEmail: strp("info@abcsupplies.com"),
			PhoneNumber:  strp("123-456-7890"),
			Address:      strp("123 Main St, City, Country"),
			CreatedAt:    time.Date(2025, 6, 21, 12, 0, 0, 0, time.UTC),
		},
		{
			ID:           2,
			Name:         "XYZ Technologies",
			Category:     "IT Services",
			ContactEmail: strp("contact@xyztech.com"),
			PhoneNumber:  strp("987-654-3210"),
			Address:      strp("456 Tech Ave, City, Country"),
			CreatedAt:    time.Date(2025, 6, 21, 12, 30, 0, 0, time.UTC),
		},
		{
			ID:           3,
			Name:         "Global Logistics",
			Category:     "Shipping",
			ContactEmail: strp("support@globallogistics.com"),
			PhoneNumber:  strp("555-789-1234"),
			Address:      strp("789 Shipping Lane, Port City, Country"),
			CreatedAt:    time.Date(2025, 6, 21, 13, 0, 0, 0, time.UTC),
		},
		{
			ID:           4,
			Name:         "Quick Print Solutions",
			Category:     "Office Supplies",
			ContactEmail: strp("orders@quickprint.com"),
			PhoneNumber:  strp("444-333-2222"),
			Address:      strp("101 Print Blvd, Downtown, Country"),
			CreatedAt:    time.Date(2025, 6, 21, 14, 10, 0, 0, time.UTC),
		},
	}
}
