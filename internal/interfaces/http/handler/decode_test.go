package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hapkiduki/dimweight/internal/application/dto"
	"github.com/hapkiduki/dimweight/internal/domain/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRequest(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		want        dto.CalculateRequest
		unit        valueobject.WeightUnit
	}{
		{
			name:        "form with submit button",
			contentType: "application/x-www-form-urlencoded",
			body:        "length=20&width=10&height=10&actual-weight=15&pounds=on&submit=Calculate",
			want:        dto.CalculateRequest{Length: "20", Width: "10", Height: "10", ActualWeight: "15", Pounds: true},
			unit:        valueobject.Pounds,
		},
		{
			name:        "form with unchecked box",
			contentType: "application/x-www-form-urlencoded; charset=utf-8",
			body:        "length=20&width=10&height=10&actual-weight=12abc&pounds=off",
			want:        dto.CalculateRequest{Length: "20", Width: "10", Height: "10", ActualWeight: "12abc"},
			unit:        "",
		},
		{
			name:        "json",
			contentType: "application/json",
			body:        `{"length": 20, "width": "10", "height": "10", "actual_weight": "240", "unit": "oz"}`,
			want:        dto.CalculateRequest{Length: "20", Width: "10", Height: "10", ActualWeight: "240", Unit: "oz"},
			unit:        valueobject.Ounces,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/calculate", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)

			var got dto.CalculateRequest
			require.NoError(t, decodeRequest(req, &got))

			assert.Equal(t, tt.want.Length, got.Length)
			assert.Equal(t, tt.want.Width, got.Width)
			assert.Equal(t, tt.want.Height, got.Height)
			assert.Equal(t, tt.want.ActualWeight, got.ActualWeight)
			assert.Equal(t, tt.unit, got.WeightUnit())
		})
	}
}

func TestDecodeRequest_MalformedJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/calculate", strings.NewReader(`{"length":`))
	req.Header.Set("Content-Type", "application/json")

	var got dto.CalculateRequest
	assert.Error(t, decodeRequest(req, &got))
}
