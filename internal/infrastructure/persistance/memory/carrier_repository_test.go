package memory_test

import (
	"context"
	"testing"

	"github.com/hapkiduki/dimweight/internal/domain/entity"
	"github.com/hapkiduki/dimweight/internal/domain/repository"
	"github.com/hapkiduki/dimweight/internal/infrastructure/persistance/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCarrierRepository_List(t *testing.T) {
	repo := memory.NewCarrierRepository()

	carriers, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultCarriers(), carriers)

	// callers cannot modify the catalog through the returned slice
	carriers[0].Name = "changed"
	again, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "UPS", again[0].Name)
}

func TestCarrierRepository_GetByCode(t *testing.T) {
	repo := memory.NewCarrierRepository()

	c, err := repo.GetByCode(context.Background(), entity.CarrierFirstmile)
	require.NoError(t, err)
	assert.Equal(t, "Firstmile", c.Name)
	assert.Equal(t, entity.PostalDivisor, c.Divisor)

	_, err = repo.GetByCode(context.Background(), "dhl")
	require.ErrorIs(t, err, repository.ErrCarrierNotFound)
	assert.True(t, repository.IsNotFoundError(err))
	assert.Contains(t, err.Error(), "dhl")
}

func TestCarrierRepository_CancelledContext(t *testing.T) {
	repo := memory.NewCarrierRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.List(ctx)
	require.ErrorIs(t, err, context.Canceled)

	_, err = repo.GetByCode(ctx, entity.CarrierUPS)
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewCarrierRepositoryWith(t *testing.T) {
	custom := []entity.Carrier{
		{Code: "dhl", Name: "DHL", Divisor: 139, Policy: entity.PolicyAlwaysDimensional},
		{Code: entity.CarrierUSPS, Name: "USPS", Divisor: 166, Policy: entity.PolicyOverCubicFoot},
	}

	repo, err := memory.NewCarrierRepositoryWith(custom)
	require.NoError(t, err)

	carriers, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, custom, carriers)

	_, err = memory.NewCarrierRepositoryWith(append(custom, custom[0]))
	require.ErrorIs(t, err, repository.ErrDuplicateCarrier)
}

func TestNewCarrierRepositoryWith_InvalidCarrier(t *testing.T) {
	tests := []struct {
		name    string
		carrier entity.Carrier
		want    error
	}{
		{
			name:    "zero divisor",
			carrier: entity.Carrier{Code: "dhl", Name: "DHL", Policy: entity.PolicyAlwaysDimensional},
			want:    entity.ErrInvalidCarrierDivisor,
		},
		{
			name:    "missing name",
			carrier: entity.Carrier{Code: "dhl", Divisor: 139, Policy: entity.PolicyAlwaysDimensional},
			want:    entity.ErrInvalidCarrierName,
		},
		{
			name:    "unknown policy",
			carrier: entity.Carrier{Code: "dhl", Name: "DHL", Divisor: 139, Policy: "sometimes"},
			want:    entity.ErrUnknownBillingPolicy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, err := memory.NewCarrierRepositoryWith([]entity.Carrier{tt.carrier})
			require.ErrorIs(t, err, tt.want)
			assert.Nil(t, repo)
		})
	}
}
