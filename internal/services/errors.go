// Package services defines the business logic for vendor records. This file
// centralizes service-level error values so they can be consistently returned
// by service methods and mapped to HTTP responses at the handler layer.
package services

import "errors"

var (
	// ErrVendorNotFound indicates that the requested vendor does not exist
	// or is not visible to the caller's identity context. The two cases are
	// intentionally indistinguishable: a caller must not be able to tell
	// "absent" from "owned by another tenant".
	ErrVendorNotFound = errors.New("vendor not found")
)
