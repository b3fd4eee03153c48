// Package usecase implements the application operations of the calculator:
// validating a form snapshot, computing billed weights per carrier and
// building the live preview shown while the user types.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hapkiduki/dimweight/internal/application/port"
	"github.com/hapkiduki/dimweight/internal/domain/entity"
	"github.com/hapkiduki/dimweight/internal/domain/repository"
	"github.com/hapkiduki/dimweight/internal/domain/valueobject"
)

// Metric names recorded by the calculator.
const (
	MetricCalculations        = "calculations_total"
	MetricBilledWeight        = "billed_weight_pounds"
	MetricCalculationDuration = "calculation_duration_seconds"
)

// CalculateResult is the per-carrier breakdown of one package.
type CalculateResult struct {
	// Dimensions of the package in inches
	Dimensions valueobject.Dimensions

	// Actual is the weight as entered
	Actual valueobject.Weight

	// CubicSize in cubic inches
	CubicSize float64

	// Quotes holds one entry per carrier, in catalog order
	Quotes []entity.Quote
}

// Quote returns the quote of a single carrier.
func (r *CalculateResult) Quote(code entity.CarrierCode) (entity.Quote, bool) {
	for _, q := range r.Quotes {
		if q.Carrier.Code == code {
			return q, true
		}
	}
	return entity.Quote{}, false
}

// Calculator computes billed weights. It holds no per-calculation state;
// every call is independent.
type Calculator struct {
	carriers repository.CarrierRepository
	logger   port.Logger
	metrics  port.Metrics
}

// NewCalculator creates a new Calculator.
//
// Parameters:
//   - carriers: carrier catalog
//   - logger: logger, may be nil
//   - metrics: metrics recorder, may be nil
//
// Returns:
//   - *Calculator: the calculator
func NewCalculator(carriers repository.CarrierRepository, logger port.Logger, metrics port.Metrics) *Calculator {
	if logger == nil {
		logger = port.NopLogger{}
	}
	if metrics == nil {
		metrics = port.NopMetrics{}
	}
	return &Calculator{
		carriers: carriers,
		logger:   logger,
		metrics:  metrics,
	}
}

// Calculate validates the input and computes the billing breakdown for every
// carrier (or the requested one).
//
// Parameters:
//   - ctx: request context
//   - in: the raw form snapshot
//
// Returns:
//   - *CalculateResult: the per-carrier breakdown
//   - error: *ValidationError for bad input, repository.ErrCarrierNotFound
//     for an unknown carrier filter
func (c *Calculator) Calculate(ctx context.Context, in CalculateInput) (*CalculateResult, error) {
	start := time.Now()
	log := c.logger.WithContext(ctx)

	valid, err := Validate(in)
	if err != nil {
		verr, _ := AsValidationError(err)
		c.metrics.Counter(MetricCalculations, 1, map[string]string{"outcome": strings.ToLower(verr.Code())})
		log.Debug("Calculation input rejected",
			"code", verr.Code(),
			"field", string(verr.Field),
			"error", err,
		)
		return nil, err
	}

	carriers, err := c.resolveCarriers(ctx, in.Carrier)
	if err != nil {
		if repository.IsNotFoundError(err) {
			c.metrics.Counter(MetricCalculations, 1, map[string]string{"outcome": "unknown_carrier"})
		}
		return nil, err
	}

	result := &CalculateResult{
		Dimensions: valid.Dimensions,
		Actual:     valid.Weight,
		CubicSize:  valid.Dimensions.CubicSize(),
		Quotes:     make([]entity.Quote, 0, len(carriers)),
	}
	for _, carrier := range carriers {
		q := carrier.Quote(valid.Dimensions, valid.Weight)
		result.Quotes = append(result.Quotes, q)

		c.metrics.Histogram(MetricBilledWeight, float64(q.BilledWeight), map[string]string{"carrier": string(carrier.Code)})
		log.Debug("Carrier quote",
			"carrier", carrier.Code,
			"dim_lbs", q.DimensionalWeight,
			"dim_applies", q.DimensionalApplies,
			"billed_lbs", q.BilledWeight,
		)
	}

	c.metrics.Counter(MetricCalculations, 1, map[string]string{"outcome": "ok"})
	c.metrics.Timing(MetricCalculationDuration, time.Since(start), nil)
	log.Info("Billed weight calculated",
		"dimensions", valid.Dimensions.String(),
		"cubic_size", result.CubicSize,
		"actual_weight", valid.Weight.Format(),
		"carriers", len(result.Quotes),
	)

	return result, nil
}

func (c *Calculator) resolveCarriers(ctx context.Context, code entity.CarrierCode) ([]entity.Carrier, error) {
	if code == "" {
		carriers, err := c.carriers.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list carriers: %w", err)
		}
		return carriers, nil
	}

	carrier, err := c.carriers.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return []entity.Carrier{carrier}, nil
}

// FieldEcho mirrors the raw form fields next to the inputs.
// Empty fields are shown as "0".
type FieldEcho struct {
	Length       string
	Width        string
	Height       string
	ActualWeight string
}

// PreviewResult is what the form shows while the user is typing.
type PreviewResult struct {
	// Echo repeats the raw fields
	Echo FieldEcho

	// ActualDisplay is the formatted actual weight; empty until the
	// weight parses and a unit is selected
	ActualDisplay string

	// Result is set when the snapshot is a complete, valid input
	Result *CalculateResult

	// Invalid is set when the snapshot fails validation
	Invalid *ValidationError
}

// Preview re-runs the calculation for an in-progress form snapshot.
// Validation failures are part of the preview, not errors.
//
// Returns:
//   - *PreviewResult: the preview
//   - error: only for failures unrelated to the input (e.g., unknown carrier)
func (c *Calculator) Preview(ctx context.Context, in CalculateInput) (*PreviewResult, error) {
	preview := &PreviewResult{
		Echo: FieldEcho{
			Length:       echo(in.LengthText),
			Width:        echo(in.WidthText),
			Height:       echo(in.HeightText),
			ActualWeight: echo(in.ActualWeightText),
		},
	}

	if in.Unit.IsValid() {
		if v, err := ParseMeasurement(in.ActualWeightText); err == nil {
			preview.ActualDisplay = valueobject.FormatWeight(v, in.Unit)
		}
	}

	result, err := c.Calculate(ctx, in)
	if err != nil {
		if verr, ok := AsValidationError(err); ok {
			preview.Invalid = verr
			return preview, nil
		}
		return nil, err
	}
	preview.Result = result
	return preview, nil
}

func echo(text string) string {
	if text == "" {
		return "0"
	}
	return text
}

// IsValidationError reports whether err is a *ValidationError.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
