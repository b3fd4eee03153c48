// Package repository contains the repository interfaces and related errors.
package repository

import "errors"

// Repository errors define common error conditions across all repositories.

var (
	// ErrCarrierNotFound is returned when a carrier cannot be found by code.
	ErrCarrierNotFound = errors.New("carrier not found")

	// ErrDuplicateCarrier is returned when a catalog is seeded with
	// two carriers sharing a code.
	ErrDuplicateCarrier = errors.New("carrier code already exists")
)

// IsNotFoundError checks if the error is a not found error.
//
// Parameters:
//   - err: error to check
//
// Returns:
//   - bool: true if the error indicates a resource was not found
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrCarrierNotFound)
}
