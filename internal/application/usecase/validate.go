package usecase

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/hapkiduki/dimweight/internal/domain/entity"
	"github.com/hapkiduki/dimweight/internal/domain/valueobject"
)

// CalculateInput is one snapshot of the calculator form.
type CalculateInput struct {
	// LengthText, WidthText and HeightText are the raw dimension fields, in inches.
	LengthText string
	WidthText  string
	HeightText string

	// ActualWeightText is the raw actual weight field.
	ActualWeightText string

	// Unit is the selected weight unit; empty when no exclusive choice was made.
	Unit valueobject.WeightUnit

	// Carrier optionally restricts the result to a single carrier.
	Carrier entity.CarrierCode
}

// ValidInput is a calculation input that passed every validation rule.
type ValidInput struct {
	Dimensions valueobject.Dimensions
	Weight     valueobject.Weight
}

// Validate applies the validation rules in order and stops at the first failure:
//  1. a weight unit is selected
//  2. every numeric field parses as a finite, non-negative number
//  3. length is the longest side
//
// Returns:
//   - ValidInput: the parsed dimensions and weight
//   - error: *ValidationError describing the failed rule
func Validate(in CalculateInput) (ValidInput, error) {
	if !in.Unit.IsValid() {
		return ValidInput{}, newValidationError(ErrMissingUnit, FieldUnit, string(in.Unit), nil)
	}

	fields := []struct {
		field Field
		text  string
	}{
		{FieldLength, in.LengthText},
		{FieldWidth, in.WidthText},
		{FieldHeight, in.HeightText},
		{FieldActualWeight, in.ActualWeightText},
	}

	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := ParseMeasurement(f.text)
		if err != nil {
			return ValidInput{}, newValidationError(ErrInvalidNumber, f.field, f.text, err)
		}
		values[i] = v
	}

	dims, err := valueobject.NewDimensions(values[0], values[1], values[2])
	if err != nil {
		if errors.Is(err, valueobject.ErrInvalidGeometry) {
			return ValidInput{}, newValidationError(ErrInvalidGeometry, "", "", err)
		}
		return ValidInput{}, newValidationError(ErrInvalidNumber, "", "", err)
	}

	weight, err := valueobject.NewWeight(values[3], in.Unit)
	if err != nil {
		return ValidInput{}, newValidationError(ErrInvalidNumber, FieldActualWeight, in.ActualWeightText, err)
	}

	return ValidInput{Dimensions: dims, Weight: weight}, nil
}

// errNotANumber is the cause reported for empty or non-finite input.
var errNotANumber = errors.New("not a finite number")

// ParseMeasurement parses a raw field value. Surrounding whitespace is ignored;
// empty, non-numeric, infinite and negative values are rejected. Zero is valid.
func ParseMeasurement(text string) (float64, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, errNotANumber
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNotANumber
	}
	if v < 0 {
		return 0, valueobject.ErrNegativeMeasurement
	}
	return v, nil
}
