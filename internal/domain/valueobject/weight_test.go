package valueobject_test

import (
	"math"
	"testing"

	"github.com/hapkiduki/dimweight/internal/domain/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeightUnit(t *testing.T) {
	tests := []struct {
		in      string
		want    valueobject.WeightUnit
		wantErr bool
	}{
		{in: "pounds", want: valueobject.Pounds},
		{in: "LBS", want: valueobject.Pounds},
		{in: " lb ", want: valueobject.Pounds},
		{in: "ounces", want: valueobject.Ounces},
		{in: "oz", want: valueobject.Ounces},
		{in: "kg", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := valueobject.ParseWeightUnit(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, valueobject.ErrUnknownWeightUnit)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUnitSelection_Resolve(t *testing.T) {
	tests := []struct {
		name    string
		sel     valueobject.UnitSelection
		want    valueobject.WeightUnit
		wantErr bool
	}{
		{name: "pounds only", sel: valueobject.UnitSelection{Pounds: true}, want: valueobject.Pounds},
		{name: "ounces only", sel: valueobject.UnitSelection{Ounces: true}, want: valueobject.Ounces},
		{name: "neither", sel: valueobject.UnitSelection{}, wantErr: true},
		{name: "both", sel: valueobject.UnitSelection{Pounds: true, Ounces: true}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.sel.Resolve()
			if tt.wantErr {
				require.ErrorIs(t, err, valueobject.ErrAmbiguousUnit)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewWeight(t *testing.T) {
	_, err := valueobject.NewWeight(-1, valueobject.Pounds)
	require.ErrorIs(t, err, valueobject.ErrNegativeWeight)

	_, err = valueobject.NewWeight(math.NaN(), valueobject.Pounds)
	require.ErrorIs(t, err, valueobject.ErrInvalidWeight)

	_, err = valueobject.NewWeight(math.Inf(1), valueobject.Ounces)
	require.ErrorIs(t, err, valueobject.ErrInvalidWeight)

	_, err = valueobject.NewWeight(1, "stone")
	require.ErrorIs(t, err, valueobject.ErrUnknownWeightUnit)

	w, err := valueobject.NewWeight(0, valueobject.Pounds)
	require.NoError(t, err)
	assert.Zero(t, w.Value)
}

func TestWeight_Pounds(t *testing.T) {
	tests := []struct {
		name     string
		weight   valueobject.Weight
		pounds   float64
		billable int64
	}{
		{name: "whole pounds", weight: valueobject.Weight{Value: 15, Unit: valueobject.Pounds}, pounds: 15, billable: 15},
		{name: "fractional pounds round up", weight: valueobject.Weight{Value: 2.1, Unit: valueobject.Pounds}, pounds: 2.1, billable: 3},
		{name: "ounces convert once", weight: valueobject.Weight{Value: 32, Unit: valueobject.Ounces}, pounds: 2, billable: 2},
		{name: "ounces round up", weight: valueobject.Weight{Value: 24, Unit: valueobject.Ounces}, pounds: 1.5, billable: 2},
		{name: "zero", weight: valueobject.Weight{Value: 0, Unit: valueobject.Ounces}, pounds: 0, billable: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.pounds, tt.weight.Pounds(), 1e-9)
			assert.Equal(t, tt.billable, tt.weight.BillablePounds())
		})
	}
}

func TestWeight_Format(t *testing.T) {
	tests := []struct {
		weight valueobject.Weight
		want   string
	}{
		{weight: valueobject.Weight{Value: 15, Unit: valueobject.Pounds}, want: "15 lbs"},
		{weight: valueobject.Weight{Value: 2.5, Unit: valueobject.Pounds}, want: "2.5 lbs"},
		{weight: valueobject.Weight{Value: 12, Unit: valueobject.Ounces}, want: "12 oz"},
		{weight: valueobject.Weight{Value: 0.125, Unit: valueobject.Ounces}, want: "0.125 oz"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.weight.Format())
			assert.Equal(t, tt.want, tt.weight.String())
		})
	}

	assert.Equal(t, "13 lbs", valueobject.FormatPounds(13))
}
