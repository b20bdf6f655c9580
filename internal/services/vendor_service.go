// Package services – VendorService
//
// This file implements the VendorService, the tenant-scoping layer between
// HTTP handlers and the vendor store. It applies the caller's identity
// context as an independent-AND filter (user and org constraints, when
// present, must both pass), orders listings by creation time, and enforces
// the authorize-then-act pattern on mutations. Service-level errors
// (ErrVendorNotFound) are returned for predictable cases so handlers can map
// them to HTTP results consistently.
package services

import (
	"context"
	"sort"

	"github.com/vendstack/vendor-api/internal/domain"
	"github.com/vendstack/vendor-api/internal/store"
)

// VendorStore is the persistence contract the service depends on. The
// in-process store.Memory satisfies it; a relational implementation can be
// swapped in without touching handlers or the service itself.
type VendorStore interface {
	List() []domain.Vendor
	Get(id int) (domain.Vendor, bool)
	Insert(in store.VendorInput) domain.Vendor
	Update(id int, patch store.VendorPatch) (domain.Vendor, bool)
	Remove(id int) (domain.Vendor, bool)
}

// CreateVendorInput carries the fields a caller may supply when creating a
// vendor. Name and Category are validated at the transport layer; the
// optional contact fields stay nil when not supplied.
type CreateVendorInput struct {
	Name         string
	Category     string
	ContactEmail *string
	PhoneNumber  *string
	Address      *string
}

// UpdateVendorInput is a partial update of the mutable vendor fields. Nil
// means "not supplied, keep the stored value". Owner references and the
// creation timestamp are not updatable.
type UpdateVendorInput struct {
	Name         *string
	Category     *string
	ContactEmail *string
	PhoneNumber  *string
	Address      *string
}

// VendorService implements the vendor use-cases on top of a VendorStore.
// All methods take the caller's identity context; an anonymous identity
// disables filtering and ownership checks entirely.
//
// The store methods are synchronous in-memory operations, but every method
// accepts a context so a future blocking persistence layer keeps the same
// interface.
type VendorService struct {
	Store VendorStore
}

// NewVendorService returns a VendorService bound to the given store.
func NewVendorService(s VendorStore) *VendorService {
	return &VendorService{Store: s}
}

// List returns all vendors visible to the identity, most recently created
// first. When the identity carries a user and/or org reference, only vendors
// whose owner references match every supplied constraint are returned; a
// vendor created anonymously (nil owner) never matches a constrained scope.
//
// The sort is stable: vendors with equal timestamps keep their store order.
func (s *VendorService) List(_ context.Context, id domain.Identity) ([]domain.Vendor, error) {
	vendors := s.Store.List()

	if !id.Anonymous() {
		filtered := vendors[:0]
		for _, v := range vendors {
			if scopeMatches(v, id) {
				filtered = append(filtered, v)
			}
		}
		vendors = filtered
	}

	sort.SliceStable(vendors, func(i, j int) bool {
		return vendors[i].CreatedAt.After(vendors[j].CreatedAt)
	})
	return vendors, nil
}

// Get returns the vendor with the given id, or ErrVendorNotFound when it
// does not exist or fails the identity's ownership constraints. Both
// constraints are checked independently: a supplied user id must equal the
// vendor's owning user AND a supplied org id must equal its owning org.
func (s *VendorService) Get(_ context.Context, vendorID int, id domain.Identity) (*domain.Vendor, error) {
	v, ok := s.Store.Get(vendorID)
	if !ok {
		return nil, ErrVendorNotFound
	}
	if !scopeMatches(v, id) {
		// Deliberately the same outcome as "does not exist".
		return nil, ErrVendorNotFound
	}
	return &v, nil
}

// Create inserts a new vendor owned by the identity's user/org references
// (nil for anonymous callers) and returns the stored record.
func (s *VendorService) Create(_ context.Context, in CreateVendorInput, id domain.Identity) (*domain.Vendor, error) {
	v := s.Store.Insert(store.VendorInput{
		Name:         in.Name,
		Category:     in.Category,
		ContactEmail: in.ContactEmail,
		PhoneNumber:  in.PhoneNumber,
		Address:      in.Address,
		UserID:       id.UserID,
		OrgID:        id.OrgID,
	})
	return &v, nil
}

// Update authorizes via Get with the same identity scoping, then merges the
// supplied mutable fields over the stored record. Identity, owner references
// and the creation timestamp are preserved. Returns ErrVendorNotFound when
// the vendor is absent or out of scope.
func (s *VendorService) Update(ctx context.Context, vendorID int, in UpdateVendorInput, id domain.Identity) (*domain.Vendor, error) {
	if _, err := s.Get(ctx, vendorID, id); err != nil {
		return nil, err
	}

	v, ok := s.Store.Update(vendorID, store.VendorPatch{
		Name:         in.Name,
		Category:     in.Category,
		ContactEmail: in.ContactEmail,
		PhoneNumber:  in.PhoneNumber,
		Address:      in.Address,
	})
	if !ok {
		return nil, ErrVendorNotFound
	}
	return &v, nil
}

// Delete authorizes via Get with the same identity scoping, then removes the
// vendor, returning the removed record. Returns ErrVendorNotFound when the
// vendor is absent or out of scope. A removed id is never resurrected by the
// service, though the store may hand it out again (see store package doc).
func (s *VendorService) Delete(ctx context.Context, vendorID int, id domain.Identity) (*domain.Vendor, error) {
	if _, err := s.Get(ctx, vendorID, id); err != nil {
		return nil, err
	}

	v, ok := s.Store.Remove(vendorID)
	if !ok {
		return nil, ErrVendorNotFound
	}
	return &v, nil
}

// scopeMatches applies the independent-AND tenant check: each constraint the
// identity carries must match the vendor's corresponding owner reference.
// An anonymous identity matches everything.
func scopeMatches(v domain.Vendor, id domain.Identity) bool {
	if id.UserID != nil && (v.UserID == nil || *v.UserID != *id.UserID) {
		return false
	}
	if id.OrgID != nil && (v.OrgID == nil || *v.OrgID != *id.OrgID) {
		return false
	}
	return true
}
