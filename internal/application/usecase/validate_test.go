package usecase_test

import (
	"errors"
	"testing"

	"github.com/hapkiduki/dimweight/internal/application/usecase"
	"github.com/hapkiduki/dimweight/internal/domain/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func input(l, w, h, weight string, unit valueobject.WeightUnit) usecase.CalculateInput {
	return usecase.CalculateInput{
		LengthText:       l,
		WidthText:        w,
		HeightText:       h,
		ActualWeightText: weight,
		Unit:             unit,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		in        usecase.CalculateInput
		wantKind  error
		wantField usecase.Field
	}{
		{
			name: "valid pounds",
			in:   input("20", "10", "10", "15", valueobject.Pounds),
		},
		{
			name: "zero is a valid number",
			in:   input("0", "0", "0", "0", valueobject.Ounces),
		},
		{
			name: "surrounding whitespace is ignored",
			in:   input(" 20 ", "10\t", "10", " 2.5", valueobject.Pounds),
		},
		{
			name:      "missing unit",
			in:        input("20", "10", "10", "15", ""),
			wantKind:  usecase.ErrMissingUnit,
			wantField: usecase.FieldUnit,
		},
		{
			name:      "missing unit wins over bad numbers",
			in:        input("abc", "", "x", "y", ""),
			wantKind:  usecase.ErrMissingUnit,
			wantField: usecase.FieldUnit,
		},
		{
			name:      "non-numeric weight",
			in:        input("20", "10", "10", "abc", valueobject.Pounds),
			wantKind:  usecase.ErrInvalidNumber,
			wantField: usecase.FieldActualWeight,
		},
		{
			name:      "empty length",
			in:        input("", "10", "10", "15", valueobject.Pounds),
			wantKind:  usecase.ErrInvalidNumber,
			wantField: usecase.FieldLength,
		},
		{
			name:      "first bad field is reported",
			in:        input("20", "ten", "x", "15", valueobject.Pounds),
			wantKind:  usecase.ErrInvalidNumber,
			wantField: usecase.FieldWidth,
		},
		{
			name:      "infinity is not finite",
			in:        input("20", "10", "Inf", "15", valueobject.Pounds),
			wantKind:  usecase.ErrInvalidNumber,
			wantField: usecase.FieldHeight,
		},
		{
			name:      "NaN is not finite",
			in:        input("20", "10", "10", "NaN", valueobject.Pounds),
			wantKind:  usecase.ErrInvalidNumber,
			wantField: usecase.FieldActualWeight,
		},
		{
			name:      "negative weight",
			in:        input("20", "10", "10", "-1", valueobject.Pounds),
			wantKind:  usecase.ErrInvalidNumber,
			wantField: usecase.FieldActualWeight,
		},
		{
			name:     "width longer than length",
			in:       input("5", "10", "3", "15", valueobject.Pounds),
			wantKind: usecase.ErrInvalidGeometry,
		},
		{
			name:     "height longer than length",
			in:       input("10", "5", "11", "15", valueobject.Pounds),
			wantKind: usecase.ErrInvalidGeometry,
		},
		{
			name:      "numbers are checked before geometry",
			in:        input("5", "10", "3", "abc", valueobject.Pounds),
			wantKind:  usecase.ErrInvalidNumber,
			wantField: usecase.FieldActualWeight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, err := usecase.Validate(tt.in)
			if tt.wantKind == nil {
				require.NoError(t, err)
				assert.Equal(t, tt.in.Unit, valid.Weight.Unit)
				return
			}

			require.ErrorIs(t, err, tt.wantKind)
			verr, ok := usecase.AsValidationError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestValidate_ParsesValues(t *testing.T) {
	valid, err := usecase.Validate(input("20", "10.5", "0.25", "32", valueobject.Ounces))
	require.NoError(t, err)

	assert.Equal(t, valueobject.Dimensions{Length: 20, Width: 10.5, Height: 0.25}, valid.Dimensions)
	assert.Equal(t, valueobject.Weight{Value: 32, Unit: valueobject.Ounces}, valid.Weight)
}

func TestValidationError_Messages(t *testing.T) {
	tests := []struct {
		in      usecase.CalculateInput
		code    string
		message string
	}{
		{
			in:      input("20", "10", "10", "15", ""),
			code:    "MISSING_UNIT",
			message: "Please select either pounds or ounces for the actual weight.",
		},
		{
			in:      input("20", "10", "10", "abc", valueobject.Pounds),
			code:    "INVALID_NUMBER",
			message: "Please provide valid inputs for length, width, height, and actual weight.",
		},
		{
			in:      input("5", "10", "3", "15", valueobject.Pounds),
			code:    "INVALID_GEOMETRY",
			message: "Error: Length must be greater than or equal to both height and width.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			_, err := usecase.Validate(tt.in)
			verr, ok := usecase.AsValidationError(err)
			require.True(t, ok)
			assert.Equal(t, tt.code, verr.Code())
			assert.Equal(t, tt.message, verr.Message())
		})
	}
}

func TestValidationError_UnwrapsCause(t *testing.T) {
	_, err := usecase.Validate(input("20", "10", "10", "-3", valueobject.Pounds))
	require.Error(t, err)

	assert.True(t, errors.Is(err, usecase.ErrInvalidNumber))
	assert.True(t, errors.Is(err, valueobject.ErrNegativeMeasurement))
	assert.Contains(t, err.Error(), "actual-weight")
}

func TestParseMeasurement(t *testing.T) {
	v, err := usecase.ParseMeasurement("1e2")
	require.NoError(t, err)
	assert.Equal(t, 100.0, v)

	_, err = usecase.ParseMeasurement("   ")
	require.Error(t, err)

	_, err = usecase.ParseMeasurement("12abc")
	require.Error(t, err)
}
