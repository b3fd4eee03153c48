// Package valueobject contains value objects that represent concepts without identity.
// Value objects are immutable and compared by their attributes rather than identity.
// They encapsulate validation logic and ensure data integrity.
//
// Value Objects follow these principles:
//   - Immutability: Once created, they cannot be changed.
//   - Equality: Two value objects are equal if all their attributes are equal.
//   - Self-validation: They validate their own data upon creation.
//   - Side-effect free: Methods returns new instances rather than modifying state
package valueobject

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// WeightUnit represents the unit an actual weight was entered in.
type WeightUnit string

// Supported weight units.
const (
	Pounds WeightUnit = "pounds"
	Ounces WeightUnit = "ounces"
)

// OuncesPerPound is the number of ounces in one pound.
const OuncesPerPound = 16.0

// Weight errors define domain-specific error conditions.
var (
	ErrUnknownWeightUnit = errors.New("weight unit must be pounds or ounces")
	ErrAmbiguousUnit     = errors.New("exactly one of pounds or ounces must be selected")
	ErrNegativeWeight    = errors.New("weight cannot be negative")
	ErrInvalidWeight     = errors.New("weight must be a finite number")
)

// ParseWeightUnit resolves a unit name. Common abbreviations are accepted.
//
// Parameters:
//   - s: unit name (e.g., "pounds", "lbs", "oz")
//
// Returns:
//   - WeightUnit: the resolved unit
//   - error: ErrUnknownWeightUnit if s names neither unit
func ParseWeightUnit(s string) (WeightUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pounds", "pound", "lbs", "lb":
		return Pounds, nil
	case "ounces", "ounce", "oz":
		return Ounces, nil
	default:
		return "", ErrUnknownWeightUnit
	}
}

// IsValid checks if the unit is one of the supported units.
func (u WeightUnit) IsValid() bool {
	return u == Pounds || u == Ounces
}

// Symbol returns the display suffix for the unit.
//
// Returns:
//   - string: "lbs" or "oz"
func (u WeightUnit) Symbol() string {
	if u == Ounces {
		return "oz"
	}
	return "lbs"
}

// UnitSelection is the state of the pounds/ounces checkbox pair.
type UnitSelection struct {
	// Pounds is true when the pounds box is checked.
	Pounds bool `json:"pounds"`

	// Ounces is true when the ounces box is checked.
	Ounces bool `json:"ounces"`
}

// Resolve returns the single selected unit.
//
// Returns:
//   - WeightUnit: the selected unit
//   - error: ErrAmbiguousUnit when zero or both boxes are checked
func (s UnitSelection) Resolve() (WeightUnit, error) {
	switch {
	case s.Pounds && !s.Ounces:
		return Pounds, nil
	case s.Ounces && !s.Pounds:
		return Ounces, nil
	default:
		return "", ErrAmbiguousUnit
	}
}

// Weight represents an actual package weight as entered, tagged with its unit.
//
// Example usage:
//
//	w, _ := valueobject.NewWeight(24, valueobject.Ounces)
//	w.Pounds()         // 1.5
//	w.BillablePounds() // 2
type Weight struct {
	// Value is the weight as entered, not rounded or converted.
	Value float64 `json:"value"`

	// Unit the value was entered in.
	Unit WeightUnit `json:"unit"`
}

// NewWeight creates a new Weight value object.
//
// Parameters:
//   - value: weight as entered (must be finite and non-negative)
//   - unit: the unit the value is expressed in
//
// Returns:
//   - Weight: the created Weight value object
//   - error: ErrInvalidWeight, ErrNegativeWeight or ErrUnknownWeightUnit
func NewWeight(value float64, unit WeightUnit) (Weight, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Weight{}, ErrInvalidWeight
	}
	if value < 0 {
		return Weight{}, ErrNegativeWeight
	}
	if !unit.IsValid() {
		return Weight{}, ErrUnknownWeightUnit
	}
	return Weight{Value: value, Unit: unit}, nil
}

// Pounds converts the weight to pounds.
//
// Returns:
//   - float64: weight in pounds
func (w Weight) Pounds() float64 {
	if w.Unit == Ounces {
		return w.Value / OuncesPerPound
	}
	return w.Value
}

// BillablePounds returns the weight in pounds rounded up to the next whole pound.
// Carriers bill in whole-pound increments.
func (w Weight) BillablePounds() int64 {
	return int64(math.Ceil(w.Pounds()))
}

// Format renders the weight exactly as entered, with its unit suffix.
//
// Returns:
//   - string: formatted weight (e.g., "2.5 lbs", "12 oz")
func (w Weight) Format() string {
	return FormatWeight(w.Value, w.Unit)
}

// String implements fmt.Stringer.
func (w Weight) String() string {
	return w.Format()
}

// FormatWeight renders a value with the suffix of the given unit.
func FormatWeight(value float64, unit WeightUnit) string {
	return fmt.Sprintf("%s %s", FormatNumber(value), unit.Symbol())
}

// FormatPounds renders a whole-pound weight (e.g., "15 lbs").
func FormatPounds(pounds int64) string {
	return fmt.Sprintf("%d lbs", pounds)
}

// FormatNumber renders a number with the fewest digits that represent it exactly.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
