package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/hapkiduki/dimweight/internal/application/dto"
	"github.com/hapkiduki/dimweight/internal/application/usecase"
	"github.com/hapkiduki/dimweight/internal/domain/entity"
	"github.com/hapkiduki/dimweight/internal/domain/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateRequest_DecodeJSON(t *testing.T) {
	body := `{"length": 20, "width": "10", "height": "  10 ", "actual_weight": null, "unit": "lbs"}`

	var req dto.CalculateRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	assert.Equal(t, dto.FieldText("20"), req.Length)
	assert.Equal(t, dto.FieldText("10"), req.Width)
	assert.Equal(t, dto.FieldText("  10 "), req.Height)
	assert.Equal(t, dto.FieldText(""), req.ActualWeight)
	assert.Equal(t, valueobject.Pounds, req.WeightUnit())
}

func TestCalculateRequest_NumberTextIsKeptVerbatim(t *testing.T) {
	var req dto.CalculateRequest
	require.NoError(t, json.Unmarshal([]byte(`{"actual_weight": 2.50}`), &req))
	assert.Equal(t, dto.FieldText("2.50"), req.ActualWeight)
}

func TestCheckbox(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{in: "on", want: true},
		{in: "TRUE", want: true},
		{in: "1", want: true},
		{in: "off", want: false},
		{in: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var c dto.Checkbox
			require.NoError(t, c.UnmarshalText([]byte(tt.in)))
			assert.Equal(t, tt.want, bool(c))
		})
	}

	var req dto.CalculateRequest
	require.NoError(t, json.Unmarshal([]byte(`{"pounds": false, "ounces": "on"}`), &req))
	assert.Equal(t, valueobject.Ounces, req.WeightUnit())
}

func TestCalculateRequest_WeightUnit(t *testing.T) {
	tests := []struct {
		name string
		req  dto.CalculateRequest
		want valueobject.WeightUnit
	}{
		{name: "named unit", req: dto.CalculateRequest{Unit: "ounces"}, want: valueobject.Ounces},
		{name: "named unit wins over checkboxes", req: dto.CalculateRequest{Unit: "pounds", Ounces: true}, want: valueobject.Pounds},
		{name: "pounds checkbox", req: dto.CalculateRequest{Pounds: true}, want: valueobject.Pounds},
		{name: "both checkboxes", req: dto.CalculateRequest{Pounds: true, Ounces: true}, want: ""},
		{name: "nothing selected", req: dto.CalculateRequest{}, want: ""},
		{name: "unknown name", req: dto.CalculateRequest{Unit: "grams"}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.WeightUnit())
		})
	}
}

func TestCalculateRequest_ToInput(t *testing.T) {
	req := dto.CalculateRequest{Length: "20", Width: "10", Height: "10", ActualWeight: "15", Pounds: true}

	in := req.ToInput(" USPS ")
	assert.Equal(t, usecase.CalculateInput{
		LengthText:       "20",
		WidthText:        "10",
		HeightText:       "10",
		ActualWeightText: "15",
		Unit:             valueobject.Pounds,
		Carrier:          entity.CarrierUSPS,
	}, in)
}

func TestNewCarrierResult(t *testing.T) {
	dims := valueobject.Dimensions{Length: 8, Width: 6, Height: 4}
	weight := valueobject.Weight{Value: 2, Unit: valueobject.Pounds}
	carriers := entity.DefaultCarriers()

	ups := dto.NewCarrierResult(carriers[0].Quote(dims, weight))
	require.NotNil(t, ups.DimensionalWeightLbs)
	assert.Equal(t, int64(2), *ups.DimensionalWeightLbs)
	assert.Equal(t, "2 lbs", ups.DimensionalWeight)

	usps := dto.NewCarrierResult(carriers[2].Quote(dims, weight))
	assert.Nil(t, usps.DimensionalWeightLbs)
	assert.Equal(t, "N/A", usps.DimensionalWeight)
	assert.Equal(t, "2 lbs", usps.BilledWeight)

	raw, err := json.Marshal(usps)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"code": "usps",
		"name": "USPS",
		"actual_weight": "2 lbs",
		"dim_weight": "N/A",
		"billed_weight": "2 lbs",
		"billed_weight_lbs": 2
	}`, string(raw))
}

func TestNewPreviewResponse_Invalid(t *testing.T) {
	verr := &usecase.ValidationError{Kind: usecase.ErrMissingUnit, Field: usecase.FieldUnit}
	resp := dto.NewPreviewResponse(&usecase.PreviewResult{
		Echo:    usecase.FieldEcho{Length: "0", Width: "0", Height: "0", ActualWeight: "0"},
		Invalid: verr,
	})

	assert.Nil(t, resp.Result)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "MISSING_UNIT", resp.Error.Code)
	assert.Equal(t, usecase.MessageMissingUnit, resp.Message)
	require.Len(t, resp.Error.ValidationErrors, 1)
	assert.Equal(t, "unit", resp.Error.ValidationErrors[0].Field)
}

func TestNewCalculationErrorResponse(t *testing.T) {
	verr := &usecase.ValidationError{Kind: usecase.ErrInvalidNumber, Field: usecase.FieldActualWeight, Value: "abc"}
	resp := dto.NewCalculationErrorResponse(verr)

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_NUMBER", resp.Error.Code)
	assert.Equal(t, usecase.MessageInvalidNumber, resp.Error.Message)
	assert.Equal(t, "actual-weight", resp.Error.ValidationErrors[0].Field)
	assert.Equal(t, "abc", resp.Error.ValidationErrors[0].Value)
}
