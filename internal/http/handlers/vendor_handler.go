// Vendor HTTP handlers.
//
// This file exposes the REST endpoints for the vendor resource:
//   - GET    /api/vendors       (list)
//   - GET    /api/vendors/:id   (fetch one)
//   - POST   /api/vendors       (create)
//   - PUT    /api/vendors/:id   (partial update)
//   - DELETE /api/vendors/:id   (delete)
//
// Handlers are transport-thin: they parse input, read the request's identity
// context, delegate to the vendor service, and translate results into the
// response envelope. Not-found and not-authorized are deliberately the same
// 404 outcome, and 500 bodies carry only a fixed per-operation message.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vendstack/vendor-api/internal/domain"
	"github.com/vendstack/vendor-api/internal/http/middleware"
	"github.com/vendstack/vendor-api/internal/services"
)

// VendorService defines the vendor operations consumed by HTTP handlers.
//
// Implementations must be safe for concurrent use and must apply the
// identity context as a scoping filter, never as an access gate.
type VendorService interface {
	// List returns vendors visible to the identity, newest first.
	List(ctx context.Context, id domain.Identity) ([]domain.Vendor, error)
	// Get returns one vendor, or services.ErrVendorNotFound when absent or
	// out of scope.
	Get(ctx context.Context, vendorID int, id domain.Identity) (*domain.Vendor, error)
	// Create inserts a vendor owned by the identity's user/org references.
	Create(ctx context.Context, in services.CreateVendorInput, id domain.Identity) (*domain.Vendor, error)
	// Update merges the supplied mutable fields after an ownership check.
	Update(ctx context.Context, vendorID int, in services.UpdateVendorInput, id domain.Identity) (*domain.Vendor, error)
	// Delete removes a vendor after an ownership check.
	Delete(ctx context.Context, vendorID int, id domain.Identity) (*domain.Vendor, error)
}

// Handlers groups the vendor HTTP endpoints. It depends on the abstract
// service interface to keep transport concerns separate from business logic.
type Handlers struct {
	vendorSvc VendorService
}

// New constructs a Handlers instance bound to the given vendor service.
func New(vendorSvc VendorService) *Handlers {
	return &Handlers{vendorSvc: vendorSvc}
}

// CreateVendorRequest is the JSON payload for creating a vendor. Name and
// category are required; the remaining fields are optional contact details.
type CreateVendorRequest struct {
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	ContactEmail *string `json:"contact_email"`
	PhoneNumber  *string `json:"phone_number"`
	Address      *string `json:"address"`
}

// UpdateVendorRequest is the JSON payload for updating a vendor. Every field
// is optional; omitted fields keep their stored values. An explicit JSON
// null is treated the same as omission, so a stored optional field cannot be
// cleared through this endpoint. Identity, owner references and the creation
// timestamp cannot be changed.
type UpdateVendorRequest struct {
	Name         *string `json:"name"`
	Category     *string `json:"category"`
	ContactEmail *string `json:"contact_email"`
	PhoneNumber  *string `json:"phone_number"`
	Address      *string `json:"address"`
}

// ListVendors handles GET /api/vendors. The response includes a count
// alongside the data array. With an identity context present, only vendors
// owned by the caller's user/org are listed.
func (h *Handlers) ListVendors(c *gin.Context) {
	vendors, err := h.vendorSvc.List(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error while fetching vendors", err)
		return
	}
	okList(c, vendors, len(vendors))
}

// GetVendor handles GET /api/vendors/:id.
func (h *Handlers) GetVendor(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		// A non-numeric id can never match a record.
		fail(c, http.StatusNotFound, "Vendor not found", nil)
		return
	}

	v, err := h.vendorSvc.Get(c.Request.Context(), id, middleware.IdentityFrom(c))
	if err != nil {
		if errors.Is(err, services.ErrVendorNotFound) {
			fail(c, http.StatusNotFound, "Vendor not found", nil)
			return
		}
		fail(c, http.StatusInternalServerError, "Server error while fetching vendor", err)
		return
	}
	ok(c, http.StatusOK, v)
}

// CreateVendor handles POST /api/vendors. Missing name or category yields a
// 400 without touching the store.
func (h *Handlers) CreateVendor(c *gin.Context) {
	var req CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if req.Name == "" || req.Category == "" {
		fail(c, http.StatusBadRequest, "Please provide name and category for the vendor", nil)
		return
	}

	v, err := h.vendorSvc.Create(c.Request.Context(), services.CreateVendorInput{
		Name:         req.Name,
		Category:     req.Category,
		ContactEmail: req.ContactEmail,
		PhoneNumber:  req.PhoneNumber,
		Address:      req.Address,
	}, middleware.IdentityFrom(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error while creating vendor", err)
		return
	}
	ok(c, http.StatusCreated, v)
}

// UpdateVendor handles PUT /api/vendors/:id. The ownership check and the
// existence check share one 404 outcome.
func (h *Handlers) UpdateVendor(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "Vendor not found or you do not have permission to update it", nil)
		return
	}

	var req UpdateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	v, err := h.vendorSvc.Update(c.Request.Context(), id, services.UpdateVendorInput{
		Name:         req.Name,
		Category:     req.Category,
		ContactEmail: req.ContactEmail,
		PhoneNumber:  req.PhoneNumber,
		Address:      req.Address,
	}, middleware.IdentityFrom(c))
	if err != nil {
		if errors.Is(err, services.ErrVendorNotFound) {
			fail(c, http.StatusNotFound, "Vendor not found or you do not have permission to update it", nil)
			return
		}
		fail(c, http.StatusInternalServerError, "Server error while updating vendor", err)
		return
	}
	ok(c, http.StatusOK, v)
}

// DeleteVendor handles DELETE /api/vendors/:id. Success returns a message
// and an empty data object rather than the removed record.
func (h *Handlers) DeleteVendor(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "Vendor not found or you do not have permission to delete it", nil)
		return
	}

	if _, err := h.vendorSvc.Delete(c.Request.Context(), id, middleware.IdentityFrom(c)); err != nil {
		if errors.Is(err, services.ErrVendorNotFound) {
			fail(c, http.StatusNotFound, "Vendor not found or you do not have permission to delete it", nil)
			return
		}
		fail(c, http.StatusInternalServerError, "Server error while deleting vendor", err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "Vendor deleted successfully",
		Data:    gin.H{},
	})
}
