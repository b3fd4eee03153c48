// Package entity contains the core bussiness entities of the domain layer.
package entity

import (
	"errors"
	"math"
	"strings"

	"github.com/hapkiduki/dimweight/internal/domain/valueobject"
)

// Carrier errors define domain-specific error conditions for carriers.
var (
	ErrInvalidCarrierCode    = errors.New("carrier code cannot be empty")
	ErrInvalidCarrierName    = errors.New("carrier name cannot be empty")
	ErrInvalidCarrierDivisor = errors.New("carrier divisor must be positive")
	ErrUnknownBillingPolicy  = errors.New("unknown billing policy")
)

// CarrierCode identifies a carrier.
type CarrierCode string

const (
	CarrierUPS       CarrierCode = "ups"       // United Parcel Service
	CarrierFedEx     CarrierCode = "fedex"     // FedEx
	CarrierUSPS      CarrierCode = "usps"      // United States Postal Service
	CarrierFirstmile CarrierCode = "firstmile" // Firstmile
)

// Dimensional divisors (cubic inches per pound).
const (
	ParcelDivisor = 139.0
	PostalDivisor = 166.0
)

// MinimumDimensionalPounds is the actual weight a package must exceed
// before postal carriers consider dimensional weight.
const MinimumDimensionalPounds = 1.0

// ParseCarrierCode normalizes a carrier code (e.g., "UPS", " FedEx ").
func ParseCarrierCode(s string) CarrierCode {
	return CarrierCode(strings.ToLower(strings.TrimSpace(s)))
}

// BillingPolicy decides when dimensional weight is compared against actual weight.
type BillingPolicy string

const (
	// PolicyAlwaysDimensional bills ceil(max(actual, dim)) for every package.
	PolicyAlwaysDimensional BillingPolicy = "always_dimensional"

	// PolicyOverCubicFoot bills max(actual, dim) only for packages over one cubic foot
	// that weigh more than MinimumDimensionalPounds, and the actual weight otherwise.
	PolicyOverCubicFoot BillingPolicy = "over_cubic_foot"
)

// IsValid checks if the policy is known.
func (p BillingPolicy) IsValid() bool {
	return p == PolicyAlwaysDimensional || p == PolicyOverCubicFoot
}

// Carrier is a fixed carrier billing profile.
type Carrier struct {
	// Code is the unique carrier identifier
	Code CarrierCode `json:"code"`

	// Name is the display name of the carrier
	Name string `json:"name"`

	// Divisor is the dimensional weight divisor in cubic inches per pound
	Divisor float64 `json:"divisor"`

	// Policy decides when dimensional weight applies
	Policy BillingPolicy `json:"policy"`
}

// NewCarrier creates a new Carrier profile.
//
// Parameters:
//   - code: carrier identifier (required)
//   - name: display name (required)
//   - divisor: dimensional weight divisor (must be positive)
//   - policy: billing policy
//
// Returns:
//   - Carrier: newly created Carrier
//   - error: Validation error if input is invalid
func NewCarrier(code CarrierCode, name string, divisor float64, policy BillingPolicy) (Carrier, error) {
	if code == "" {
		return Carrier{}, ErrInvalidCarrierCode
	}
	if name == "" {
		return Carrier{}, ErrInvalidCarrierName
	}
	if divisor <= 0 {
		return Carrier{}, ErrInvalidCarrierDivisor
	}
	if !policy.IsValid() {
		return Carrier{}, ErrUnknownBillingPolicy
	}

	return Carrier{
		Code:    code,
		Name:    name,
		Divisor: divisor,
		Policy:  policy,
	}, nil
}

// DefaultCarriers returns the supported carrier profiles in display order.
func DefaultCarriers() []Carrier {
	return []Carrier{
		{Code: CarrierUPS, Name: "UPS", Divisor: ParcelDivisor, Policy: PolicyAlwaysDimensional},
		{Code: CarrierFedEx, Name: "FedEx", Divisor: ParcelDivisor, Policy: PolicyAlwaysDimensional},
		{Code: CarrierUSPS, Name: "USPS", Divisor: PostalDivisor, Policy: PolicyOverCubicFoot},
		{Code: CarrierFirstmile, Name: "Firstmile", Divisor: PostalDivisor, Policy: PolicyOverCubicFoot},
	}
}

// DimensionalWeight returns the package's dimensional weight in pounds for this carrier.
func (c Carrier) DimensionalWeight(d valueobject.Dimensions) int64 {
	return d.DimensionalWeight(c.Divisor)
}

// DimensionalApplies reports whether dimensional weight takes part in billing.
//
// Parameters:
//   - d: package dimensions
//   - w: actual weight
//
// Returns:
//   - bool: true if billed weight is compared against dimensional weight
func (c Carrier) DimensionalApplies(d valueobject.Dimensions, w valueobject.Weight) bool {
	if c.Policy == PolicyOverCubicFoot {
		return d.ExceedsCubicFoot() && w.Pounds() > MinimumDimensionalPounds
	}
	return true
}

// BilledWeight computes the chargeable weight in whole pounds.
//
// Parameters:
//   - d: package dimensions
//   - w: actual weight, in either unit
//
// Returns:
//   - int64: billed weight in pounds
func (c Carrier) BilledWeight(d valueobject.Dimensions, w valueobject.Weight) int64 {
	dim := c.DimensionalWeight(d)

	if c.Policy == PolicyOverCubicFoot {
		// actual weight keeps the whole-pound precision it was rounded to
		actual := w.BillablePounds()
		if c.DimensionalApplies(d, w) && dim > actual {
			return dim
		}
		return actual
	}

	return int64(math.Ceil(math.Max(w.Pounds(), float64(dim))))
}

// Quote is the billing breakdown of one package for one carrier.
type Quote struct {
	// Carrier the quote was computed for
	Carrier Carrier `json:"carrier"`

	// Actual is the weight as entered
	Actual valueobject.Weight `json:"actual"`

	// DimensionalWeight in pounds
	DimensionalWeight int64 `json:"dimensional_weight"`

	// DimensionalApplies is false when the carrier ignores dimensional weight for this package
	DimensionalApplies bool `json:"dimensional_applies"`

	// BilledWeight in pounds
	BilledWeight int64 `json:"billed_weight"`
}

// Quote computes the full billing breakdown for a package.
func (c Carrier) Quote(d valueobject.Dimensions, w valueobject.Weight) Quote {
	return Quote{
		Carrier:            c,
		Actual:             w,
		DimensionalWeight:  c.DimensionalWeight(d),
		DimensionalApplies: c.DimensionalApplies(d, w),
		BilledWeight:       c.BilledWeight(d, w),
	}
}

// ActualDisplay renders the actual weight as entered.
func (q Quote) ActualDisplay() string {
	return q.Actual.Format()
}

// DimensionalDisplay renders the dimensional weight, or "N/A" when it does not apply.
func (q Quote) DimensionalDisplay() string {
	if !q.DimensionalApplies {
		return NotApplicable
	}
	return valueobject.FormatPounds(q.DimensionalWeight)
}

// BilledDisplay renders the billed weight in pounds.
func (q Quote) BilledDisplay() string {
	return valueobject.FormatPounds(q.BilledWeight)
}

// NotApplicable is displayed in place of a dimensional weight the carrier ignores.
const NotApplicable = "N/A"
