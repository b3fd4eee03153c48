// Package valueobject contains value objects that represent concepts without identity.
package valueobject

import (
	"errors"
	"fmt"
	"math"
)

// CubicFoot is the volume of one cubic foot in cubic inches.
// Postal carriers only apply dimensional pricing above it.
const CubicFoot = 1728.0

// Dimension errors define domain-specific error conditions for package geometry.
var (
	ErrNegativeMeasurement = errors.New("measurement cannot be negative")
	ErrInvalidGeometry     = errors.New("length must be greater than or equal to both height and width")
	ErrInvalidDivisor      = errors.New("dimensional divisor must be positive")
)

// Dimensions represents the physical dimensions of a package.
// All measurements are in inches and length is always the longest side.
type Dimensions struct {
	// Length in inches.
	Length float64 `json:"length"`

	// Width in inches.
	Width float64 `json:"width"`

	// Height in inches.
	Height float64 `json:"height"`
}

// NewDimensions creates a new Dimensions value object.
// The long side must be entered as length; it is never swapped silently.
//
// Parameters:
//   - length: Length in inches
//   - width: Width in inches
//   - height: Height in inches
//
// Returns:
//   - Dimensions: new Dimensions value object
//   - error: ErrNegativeMeasurement or ErrInvalidGeometry
func NewDimensions(length, width, height float64) (Dimensions, error) {
	if length < 0 || width < 0 || height < 0 {
		return Dimensions{}, ErrNegativeMeasurement
	}
	if length < width || length < height {
		return Dimensions{}, ErrInvalidGeometry
	}

	return Dimensions{
		Length: length,
		Width:  width,
		Height: height,
	}, nil
}

// CubicSize calculates the volume in cubic inches.
//
// Returns:
//   - float64: volume in in³
func (d Dimensions) CubicSize() float64 {
	return d.Length * d.Width * d.Height
}

// ExceedsCubicFoot reports whether the package is larger than one cubic foot.
func (d Dimensions) ExceedsCubicFoot() bool {
	return d.CubicSize() > CubicFoot
}

// DimensionalWeight calculates the dimensional weight in whole pounds,
// rounded up, for the given carrier divisor.
//
// Parameters:
//   - divisor: the carrier's DIM factor (e.g., 139 or 166)
//
// Returns:
//   - int64: dimensional weight in pounds
func (d Dimensions) DimensionalWeight(divisor float64) int64 {
	return DimensionalWeight(d.CubicSize(), divisor)
}

// DimensionalWeight returns ceil(cubicSize / divisor) in pounds.
// A non-positive divisor yields zero; use DimensionalWeightSafe to detect it.
func DimensionalWeight(cubicSize, divisor float64) int64 {
	w, err := DimensionalWeightSafe(cubicSize, divisor)
	if err != nil {
		return 0
	}
	return w
}

// DimensionalWeightSafe returns ceil(cubicSize / divisor) with error handling.
//
// Returns:
//   - int64: dimensional weight in pounds
//   - error: ErrInvalidDivisor if divisor is not positive
func DimensionalWeightSafe(cubicSize, divisor float64) (int64, error) {
	if divisor <= 0 {
		return 0, ErrInvalidDivisor
	}
	return int64(math.Ceil(cubicSize / divisor)), nil
}

// String returns a formatted string representation.
//
// Returns:
//   - string: formatted dimensions (e.g., "20x10x10 in")
func (d Dimensions) String() string {
	return fmt.Sprintf("%sx%sx%s in", FormatNumber(d.Length), FormatNumber(d.Width), FormatNumber(d.Height))
}
