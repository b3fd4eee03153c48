// Package handler contains the HTTP handlers of the calculator API.
// Handlers decode requests, call the application layer and map results
// and errors to the JSON response envelope.
package handler

import (
	"errors"
	"net/http"

	"github.com/ajg/form"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/hapkiduki/dimweight/internal/application/dto"
	"github.com/hapkiduki/dimweight/internal/application/port"
	"github.com/hapkiduki/dimweight/internal/application/usecase"
	"github.com/hapkiduki/dimweight/internal/domain/entity"
	"github.com/hapkiduki/dimweight/internal/domain/repository"
	"github.com/hapkiduki/dimweight/pkg/logger"
)

// CalculatorHandler serves the calculation, preview and carrier catalog endpoints.
type CalculatorHandler struct {
	calculator *usecase.Calculator
	carriers   repository.CarrierRepository
	logger     port.Logger
	version    string
}

// NewCalculatorHandler creates a new CalculatorHandler.
//
// Parameters:
//   - calculator: the calculation use case
//   - carriers: carrier catalog
//   - log: request logger
//   - version: API version stamped into response metadata
//
// Returns:
//   - *CalculatorHandler: the handler
func NewCalculatorHandler(calculator *usecase.Calculator, carriers repository.CarrierRepository, log port.Logger, version string) *CalculatorHandler {
	if log == nil {
		log = port.NopLogger{}
	}
	return &CalculatorHandler{
		calculator: calculator,
		carriers:   carriers,
		logger:     log,
		version:    version,
	}
}

// Routes registers the handler's routes.
func (h *CalculatorHandler) Routes(r chi.Router) {
	r.Post("/calculate", h.Calculate)
	r.Post("/preview", h.Preview)
	r.Get("/carriers", h.ListCarriers)
	r.Get("/carriers/{code}", h.GetCarrier)
}

// Calculate handles POST /v1/calculate.
// Responds 200 with the carrier table, 422 when the form is invalid,
// 404 for an unknown ?carrier= filter and 400 for an undecodable body.
//
// Each row's dim_weight is "N/A" whenever the carrier bills without it, in
// pounds and ounces mode alike; dim_weight_lbs is then omitted.
func (h *CalculatorHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req dto.CalculateRequest
	if err := decodeRequest(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	result, err := h.calculator.Calculate(r.Context(), req.ToInput(r.URL.Query().Get("carrier")))
	if err != nil {
		h.calculationError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, h.version, dto.NewSuccessResponse(dto.NewCalculateResponse(result)))
}

// Preview handles POST /v1/preview.
// An incomplete or invalid form is still a successful preview.
func (h *CalculatorHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req dto.CalculateRequest
	if err := decodeRequest(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	preview, err := h.calculator.Preview(r.Context(), req.ToInput(r.URL.Query().Get("carrier")))
	if err != nil {
		h.calculationError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, h.version, dto.NewSuccessResponse(dto.NewPreviewResponse(preview)))
}

// ListCarriers handles GET /v1/carriers.
func (h *CalculatorHandler) ListCarriers(w http.ResponseWriter, r *http.Request) {
	carriers, err := h.carriers.List(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, h.version, dto.NewSuccessResponse(dto.NewCarrierProfiles(carriers)))
}

// GetCarrier handles GET /v1/carriers/{code}.
func (h *CalculatorHandler) GetCarrier(w http.ResponseWriter, r *http.Request) {
	code := entity.ParseCarrierCode(chi.URLParam(r, "code"))

	carrier, err := h.carriers.GetByCode(r.Context(), code)
	if err != nil {
		if repository.IsNotFoundError(err) {
			writeJSON(w, r, http.StatusNotFound, h.version, dto.NewErrorResponse[any](dto.CodeNotFound, err.Error()))
			return
		}
		h.internalError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, h.version, dto.NewSuccessResponse(dto.NewCarrierProfiles([]entity.Carrier{carrier})[0]))
}

func (h *CalculatorHandler) calculationError(w http.ResponseWriter, r *http.Request, err error) {
	if verr, ok := usecase.AsValidationError(err); ok {
		writeJSON(w, r, http.StatusUnprocessableEntity, h.version, dto.NewCalculationErrorResponse(verr))
		return
	}
	if repository.IsNotFoundError(err) {
		writeJSON(w, r, http.StatusNotFound, h.version, dto.NewErrorResponse[any](dto.CodeNotFound, err.Error()))
		return
	}
	h.internalError(w, r, err)
}

func (h *CalculatorHandler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSON(w, r, http.StatusRequestEntityTooLarge, h.version,
			dto.NewErrorResponse[any](CodeRequestTooLarge, "Request body is too large"))
		return
	}

	h.logger.WithContext(r.Context()).Debug("Malformed request body", "error", err)
	writeJSON(w, r, http.StatusBadRequest, h.version, dto.NewErrorResponse[any](dto.CodeBadRequest, "Request body could not be decoded"))
}

func (h *CalculatorHandler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.WithContext(r.Context()).Error("Request failed", "path", r.URL.Path, "error", err)
	writeJSON(w, r, http.StatusInternalServerError, h.version, dto.NewErrorResponse[any](dto.CodeInternalError, "An unexpected error occurred"))
}

// writeJSON stamps the response metadata and renders resp with the given status.
func writeJSON[T any](w http.ResponseWriter, r *http.Request, status int, version string, resp dto.APIResponse[T]) {
	resp.Meta = dto.NewResponseMeta(logger.RequestIDFromContext(r.Context()), version)
	render.Status(r, status)
	render.JSON(w, r, resp)
}

// CodeRequestTooLarge is returned when the body exceeds the configured limit.
const CodeRequestTooLarge = "REQUEST_TOO_LARGE"

// decodeRequest decodes a JSON or form-encoded body into v and runs its Bind hook.
// Unknown form keys (e.g., the submit button) are ignored.
func decodeRequest(r *http.Request, v render.Binder) error {
	var err error
	switch render.GetRequestContentType(r) {
	case render.ContentTypeForm:
		dec := form.NewDecoder(r.Body)
		dec.IgnoreUnknownKeys(true)
		err = dec.Decode(v)
	default:
		err = render.DecodeJSON(r.Body, v)
	}
	if err != nil {
		return err
	}
	return v.Bind(r)
}
