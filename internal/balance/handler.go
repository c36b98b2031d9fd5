package balance

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/colin-rod/tripthreads/internal/trip"
	"github.com/colin-rod/tripthreads/pkg/response"
)

// Handler handles HTTP requests for balance queries
type Handler struct {
	service *Service
}

// NewHandler creates a new balance handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for balance endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/trip/{tripId}", h.GetByTrip)

	return r
}

// GetByTrip handles GET /balances/trip/{tripId}
// @Summary      Get trip balances
// @Description  Per-user net balances in the trip's base currency, adjusted by recorded settlements. Expenses missing an FX rate are excluded.
// @Tags         balances
// @Produce      json
// @Param        tripId path string true "Trip ID"
// @Success      200 {object} response.APIResponse{data=[]UserBalance}
// @Failure      404 {object} response.APIResponse
// @Router       /balances/trip/{tripId} [get]
func (h *Handler) GetByTrip(w http.ResponseWriter, r *http.Request) {
	balances, err := h.service.TripBalances(r.Context(), chi.URLParam(r, "tripId"))
	if err != nil {
		if errors.Is(err, trip.ErrTripNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to compute balances")
		return
	}

	response.JSON(w, http.StatusOK, balances)
}
