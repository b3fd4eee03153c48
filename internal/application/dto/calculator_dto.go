package dto

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/hapkiduki/dimweight/internal/application/usecase"
	"github.com/hapkiduki/dimweight/internal/domain/entity"
	"github.com/hapkiduki/dimweight/internal/domain/valueobject"
)

// FieldText is a raw form field. It decodes from JSON strings, JSON numbers
// and form values alike, keeping the text exactly as sent.
type FieldText string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FieldText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FieldText(s)
		return nil
	}
	*f = FieldText(data)
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler (form decoding).
func (f *FieldText) UnmarshalText(text []byte) error {
	*f = FieldText(text)
	return nil
}

// Checkbox is an HTML checkbox state. Browsers send "on" for checked boxes.
type Checkbox bool

// UnmarshalText implements encoding.TextUnmarshaler (form decoding).
func (c *Checkbox) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "on", "true", "1", "yes", "checked":
		*c = true
	default:
		*c = false
	}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler. Accepts booleans and strings.
func (c *Checkbox) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*c = Checkbox(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return c.UnmarshalText([]byte(s))
}

// CalculateRequest is the calculator form as submitted.
// The unit is given either by name or by the pounds/ounces checkbox pair.
type CalculateRequest struct {
	// Length in inches
	Length FieldText `json:"length" form:"length"`

	// Width in inches
	Width FieldText `json:"width" form:"width"`

	// Height in inches
	Height FieldText `json:"height" form:"height"`

	// ActualWeight as entered
	ActualWeight FieldText `json:"actual_weight" form:"actual-weight"`

	// Unit name: pounds, lbs, ounces or oz
	Unit string `json:"unit,omitempty" form:"unit"`

	// Pounds checkbox
	Pounds Checkbox `json:"pounds,omitempty" form:"pounds"`

	// Ounces checkbox
	Ounces Checkbox `json:"ounces,omitempty" form:"ounces"`
}

// Bind implements render.Binder.
func (req *CalculateRequest) Bind(r *http.Request) error {
	req.Unit = strings.TrimSpace(req.Unit)
	return nil
}

// WeightUnit resolves the unit selection. An unknown name or an ambiguous
// checkbox pair resolves to the empty unit.
func (req *CalculateRequest) WeightUnit() valueobject.WeightUnit {
	if req.Unit != "" {
		unit, err := valueobject.ParseWeightUnit(req.Unit)
		if err != nil {
			return ""
		}
		return unit
	}

	unit, err := valueobject.UnitSelection{Pounds: bool(req.Pounds), Ounces: bool(req.Ounces)}.Resolve()
	if err != nil {
		return ""
	}
	return unit
}

// ToInput converts the request to a calculation input.
//
// Parameters:
//   - carrier: optional carrier filter
//
// Returns:
//   - usecase.CalculateInput: the calculation input
func (req *CalculateRequest) ToInput(carrier string) usecase.CalculateInput {
	return usecase.CalculateInput{
		LengthText:       string(req.Length),
		WidthText:        string(req.Width),
		HeightText:       string(req.Height),
		ActualWeightText: string(req.ActualWeight),
		Unit:             req.WeightUnit(),
		Carrier:          entity.ParseCarrierCode(carrier),
	}
}

// CarrierResult is one row of the carrier table.
type CarrierResult struct {
	// Code is the carrier identifier
	Code string `json:"code"`

	// Name is the carrier display name
	Name string `json:"name"`

	// ActualWeight as entered (e.g., "15 lbs")
	ActualWeight string `json:"actual_weight"`

	// DimensionalWeight (e.g., "15 lbs" or "N/A").
	// USPS and Firstmile report "N/A" in either unit whenever the package is
	// not over one cubic foot or weighs one pound or less, since billing
	// ignores dimensional weight there (8x6x4 in at 2 lbs shows "N/A").
	DimensionalWeight string `json:"dim_weight"`

	// BilledWeight (e.g., "15 lbs")
	BilledWeight string `json:"billed_weight"`

	// DimensionalWeightLbs is omitted when dimensional weight does not apply
	DimensionalWeightLbs *int64 `json:"dim_weight_lbs,omitempty"`

	// BilledWeightLbs is the billed weight in whole pounds
	BilledWeightLbs int64 `json:"billed_weight_lbs"`
}

// NewCarrierResult maps a quote to a table row.
func NewCarrierResult(q entity.Quote) CarrierResult {
	row := CarrierResult{
		Code:              string(q.Carrier.Code),
		Name:              q.Carrier.Name,
		ActualWeight:      q.ActualDisplay(),
		DimensionalWeight: q.DimensionalDisplay(),
		BilledWeight:      q.BilledDisplay(),
		BilledWeightLbs:   q.BilledWeight,
	}
	if q.DimensionalApplies {
		dim := q.DimensionalWeight
		row.DimensionalWeightLbs = &dim
	}
	return row
}

// CalculateResponse is the filled carrier table.
type CalculateResponse struct {
	// Message is the status line shown above the table
	Message string `json:"message"`

	// Dimensions of the package in inches
	Dimensions valueobject.Dimensions `json:"dimensions"`

	// CubicSize in cubic inches
	CubicSize float64 `json:"cubic_size"`

	// Unit the actual weight was entered in
	Unit valueobject.WeightUnit `json:"unit"`

	// Carriers holds one row per carrier, in display order
	Carriers []CarrierResult `json:"carriers"`
}

// NewCalculateResponse maps a calculation result to its response.
func NewCalculateResponse(result *usecase.CalculateResult) CalculateResponse {
	rows := make([]CarrierResult, 0, len(result.Quotes))
	for _, q := range result.Quotes {
		rows = append(rows, NewCarrierResult(q))
	}
	return CalculateResponse{
		Message:    usecase.MessageCalculated,
		Dimensions: result.Dimensions,
		CubicSize:  result.CubicSize,
		Unit:       result.Actual.Unit,
		Carriers:   rows,
	}
}

// NewCalculationErrorResponse maps a validation failure to an error response.
func NewCalculationErrorResponse(verr *usecase.ValidationError) APIResponse[any] {
	return NewValidationErrorResponse[any](verr.Code(), verr.Message(), []ValidationError{
		NewFieldError(verr),
	})
}

// NewFieldError maps a validation failure to a field error.
func NewFieldError(verr *usecase.ValidationError) ValidationError {
	fe := ValidationError{
		Field:   string(verr.Field),
		Message: verr.Error(),
	}
	if verr.Value != "" {
		fe.Value = verr.Value
	}
	return fe
}

// FieldEcho repeats the raw inputs next to the form.
type FieldEcho struct {
	Length       string `json:"length"`
	Width        string `json:"width"`
	Height       string `json:"height"`
	ActualWeight string `json:"actual_weight"`
}

// PreviewResponse is the live preview of an in-progress form.
type PreviewResponse struct {
	// Echo repeats the raw inputs
	Echo FieldEcho `json:"echo"`

	// ActualWeight is the formatted actual weight, once it parses
	ActualWeight string `json:"actual_weight,omitempty"`

	// Message is the status line, either the success or the validation message
	Message string `json:"message"`

	// Result is the carrier table when the form is complete and valid
	Result *CalculateResponse `json:"result,omitempty"`

	// Error describes why no table could be computed
	Error *APIError `json:"error,omitempty"`
}

// NewPreviewResponse maps a preview to its response.
func NewPreviewResponse(p *usecase.PreviewResult) PreviewResponse {
	resp := PreviewResponse{
		Echo: FieldEcho{
			Length:       p.Echo.Length,
			Width:        p.Echo.Width,
			Height:       p.Echo.Height,
			ActualWeight: p.Echo.ActualWeight,
		},
		ActualWeight: p.ActualDisplay,
	}

	if p.Result != nil {
		table := NewCalculateResponse(p.Result)
		resp.Result = &table
		resp.Message = table.Message
	}
	if p.Invalid != nil {
		resp.Message = p.Invalid.Message()
		resp.Error = &APIError{
			Code:             p.Invalid.Code(),
			Message:          p.Invalid.Message(),
			ValidationErrors: []ValidationError{NewFieldError(p.Invalid)},
		}
	}
	return resp
}

// CarrierProfile describes a carrier billing profile.
type CarrierProfile struct {
	Code    string  `json:"code"`
	Name    string  `json:"name"`
	Divisor float64 `json:"divisor"`
	Policy  string  `json:"policy"`
}

// NewCarrierProfiles maps carriers to their profiles.
func NewCarrierProfiles(carriers []entity.Carrier) []CarrierProfile {
	profiles := make([]CarrierProfile, 0, len(carriers))
	for _, c := range carriers {
		profiles = append(profiles, CarrierProfile{
			Code:    string(c.Code),
			Name:    c.Name,
			Divisor: c.Divisor,
			Policy:  string(c.Policy),
		})
	}
	return profiles
}
