// Package repository contains the repository interfaces (ports) for data access.
package repository

import (
	"context"

	"github.com/hapkiduki/dimweight/internal/domain/entity"
)

// CarrierRepository defines the interface for looking up carrier billing profiles.
// Profiles are fixed; the repository is read-only.
//
// Example usage:
//
//	repo := memory.NewCarrierRepository()
//	carrier, err := repo.GetByCode(ctx, entity.CarrierUPS)
type CarrierRepository interface {
	// List returns every carrier profile in display order.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//
	// Returns:
	//   - []entity.Carrier: all carriers
	//   - error: any error encountered during retrieval
	List(ctx context.Context) ([]entity.Carrier, error)

	// GetByCode retrieves a carrier profile by its code.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - code: the carrier code
	//
	// Returns:
	//   - entity.Carrier: the carrier profile
	//   - error: ErrCarrierNotFound if no carrier has that code
	GetByCode(ctx context.Context, code entity.CarrierCode) (entity.Carrier, error)
}
