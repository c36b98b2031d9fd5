package trip

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/colin-rod/tripthreads/pkg/response"
	"github.com/colin-rod/tripthreads/pkg/validate"
)

// Handler handles HTTP requests for trip operations
type Handler struct {
	service *Service
}

// NewHandler creates a new trip handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for trip endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/{id}", h.GetByID)
	r.Post("/{id}/participants", h.AddParticipant)
	r.Get("/{id}/participants", h.ListParticipants)

	return r
}

// Create handles POST /trips
// @Summary      Create a new trip
// @Description  Create a trip with a base currency all balances are expressed in
// @Tags         trips
// @Accept       json
// @Produce      json
// @Param        request body CreateTripRequest true "Trip creation request"
// @Success      201 {object} response.APIResponse{data=TripResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /trips [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	trip, err := h.service.CreateTrip(r.Context(), req.Name, req.BaseCurrency)
	if err != nil {
		response.InternalError(w, "Failed to create trip")
		return
	}

	response.JSON(w, http.StatusCreated, trip.ToResponse())
}

// GetByID handles GET /trips/{id}
// @Summary      Get trip by ID
// @Tags         trips
// @Produce      json
// @Param        id path string true "Trip ID"
// @Success      200 {object} response.APIResponse{data=TripResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /trips/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	trip, err := h.service.GetTrip(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrTripNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get trip")
		return
	}

	response.JSON(w, http.StatusOK, trip.ToResponse())
}

// AddParticipant handles POST /trips/{id}/participants
// @Summary      Add a participant to a trip
// @Description  Add a user to the trip roster; expense input is resolved against roster display names
// @Tags         trips
// @Accept       json
// @Produce      json
// @Param        id path string true "Trip ID"
// @Param        request body AddParticipantRequest true "Participant"
// @Success      201 {object} response.APIResponse{data=ParticipantResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /trips/{id}/participants [post]
func (h *Handler) AddParticipant(w http.ResponseWriter, r *http.Request) {
	var req AddParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	participant, err := h.service.AddParticipant(r.Context(), chi.URLParam(r, "id"), req.DisplayName)
	if err != nil {
		if errors.Is(err, ErrTripNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to add participant")
		return
	}

	response.JSON(w, http.StatusCreated, participant.ToResponse())
}

// ListParticipants handles GET /trips/{id}/participants
// @Summary      List trip participants
// @Tags         trips
// @Produce      json
// @Param        id path string true "Trip ID"
// @Success      200 {object} response.APIResponse{data=[]ParticipantResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /trips/{id}/participants [get]
func (h *Handler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	participants, err := h.service.TripParticipants(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrTripNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to list participants")
		return
	}

	resp := make([]*ParticipantResponse, len(participants))
	for i := range participants {
		resp[i] = participants[i].ToResponse()
	}

	response.JSON(w, http.StatusOK, resp)
}
