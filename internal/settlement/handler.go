package settlement

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/colin-rod/tripthreads/internal/trip"
	"github.com/colin-rod/tripthreads/pkg/response"
	"github.com/colin-rod/tripthreads/pkg/validate"
)

// Handler handles HTTP requests for settlement operations
type Handler struct {
	service *Service
}

// NewHandler creates a new settlement handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for settlement endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Record)
	r.Get("/trip/{tripId}", h.ListByTrip)
	r.Get("/trip/{tripId}/suggestions", h.Suggestions)

	return r
}

// Record handles POST /settlements
// @Summary      Record a settlement
// @Description  Record a repayment between two participants in the trip's base currency
// @Tags         settlements
// @Accept       json
// @Produce      json
// @Param        settlement body RecordSettlementRequest true "Settlement data"
// @Success      201 {object} response.APIResponse{data=Settlement}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /settlements [post]
func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	var req RecordSettlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	settlement, err := h.service.RecordSettlement(r.Context(), &req)
	if err != nil {
		if errors.Is(err, trip.ErrTripNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.BadRequest(w, err.Error())
		return
	}

	response.JSON(w, http.StatusCreated, settlement)
}

// ListByTrip handles GET /settlements/trip/{tripId}
// @Summary      List trip settlements
// @Description  Settlement history for a trip, oldest first
// @Tags         settlements
// @Produce      json
// @Param        tripId path string true "Trip ID"
// @Success      200 {object} response.APIResponse{data=[]SettlementResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /settlements/trip/{tripId} [get]
func (h *Handler) ListByTrip(w http.ResponseWriter, r *http.Request) {
	settlements, err := h.service.ListByTrip(r.Context(), chi.URLParam(r, "tripId"))
	if err != nil {
		if errors.Is(err, trip.ErrTripNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to list settlements")
		return
	}

	response.JSON(w, http.StatusOK, settlements)
}

// Suggestions handles GET /settlements/trip/{tripId}/suggestions
// @Summary      Suggest settlements
// @Description  Proposed transfers that would settle the trip's current balances
// @Tags         settlements
// @Produce      json
// @Param        tripId path string true "Trip ID"
// @Success      200 {object} response.APIResponse{data=[]Suggestion}
// @Failure      404 {object} response.APIResponse
// @Router       /settlements/trip/{tripId}/suggestions [get]
func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.service.SuggestSettlements(r.Context(), chi.URLParam(r, "tripId"))
	if err != nil {
		if errors.Is(err, trip.ErrTripNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to compute suggestions")
		return
	}

	response.JSON(w, http.StatusOK, suggestions)
}
