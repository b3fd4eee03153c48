// Package memory provides in-memory implementations of repository interfaces.
package memory

import (
	"context"
	"fmt"

	"github.com/hapkiduki/dimweight/internal/domain/entity"
	"github.com/hapkiduki/dimweight/internal/domain/repository"
)

// CarrierRepository serves a fixed carrier catalog.
// It is immutable after construction and safe for concurrent use.
type CarrierRepository struct {
	carriers []entity.Carrier
	byCode   map[entity.CarrierCode]entity.Carrier
}

// Ensure CarrierRepository implements repository.CarrierRepository.
var _ repository.CarrierRepository = (*CarrierRepository)(nil)

// NewCarrierRepository creates a repository seeded with entity.DefaultCarriers.
func NewCarrierRepository() *CarrierRepository {
	repo, err := NewCarrierRepositoryWith(entity.DefaultCarriers())
	if err != nil {
		panic(err)
	}
	return repo
}

// NewCarrierRepositoryWith creates a repository seeded with the given carriers,
// keeping their order.
//
// Returns:
//   - *CarrierRepository: the repository
//   - error: a carrier validation error, or ErrDuplicateCarrier if two carriers share a code
func NewCarrierRepositoryWith(carriers []entity.Carrier) (*CarrierRepository, error) {
	list := make([]entity.Carrier, 0, len(carriers))
	byCode := make(map[entity.CarrierCode]entity.Carrier, len(carriers))
	for _, c := range carriers {
		carrier, err := entity.NewCarrier(c.Code, c.Name, c.Divisor, c.Policy)
		if err != nil {
			return nil, fmt.Errorf("carrier %q: %w", c.Code, err)
		}
		if _, exists := byCode[carrier.Code]; exists {
			return nil, fmt.Errorf("%w: %s", repository.ErrDuplicateCarrier, carrier.Code)
		}
		byCode[carrier.Code] = carrier
		list = append(list, carrier)
	}

	return &CarrierRepository{
		carriers: list,
		byCode:   byCode,
	}, nil
}

func (r *CarrierRepository) List(ctx context.Context) ([]entity.Carrier, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	list := make([]entity.Carrier, len(r.carriers))
	copy(list, r.carriers)
	return list, nil
}

func (r *CarrierRepository) GetByCode(ctx context.Context, code entity.CarrierCode) (entity.Carrier, error) {
	if err := ctx.Err(); err != nil {
		return entity.Carrier{}, err
	}
	c, ok := r.byCode[code]
	if !ok {
		return entity.Carrier{}, fmt.Errorf("%w: %s", repository.ErrCarrierNotFound, code)
	}
	return c, nil
}
