package trip

// CreateTripRequest represents the request to create a trip
type CreateTripRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=255"`
	BaseCurrency string `json:"base_currency" validate:"required,len=3,uppercase"`
}

// AddParticipantRequest represents the request to add a participant to a trip
type AddParticipantRequest struct {
	DisplayName string `json:"display_name" validate:"required,min=1,max=255"`
}

// TripResponse represents the response for a trip
type TripResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	BaseCurrency string `json:"base_currency"`
	CreatedAt    string `json:"created_at"`
}

// ParticipantResponse represents the response for a roster entry
type ParticipantResponse struct {
	UserID      string `json:"user_id"`
	TripID      string `json:"trip_id"`
	DisplayName string `json:"display_name"`
	JoinedAt    string `json:"joined_at"`
}

// ToResponse converts a Trip model to a TripResponse DTO
func (t *Trip) ToResponse() *TripResponse {
	return &TripResponse{
		ID:           t.ID,
		Name:         t.Name,
		BaseCurrency: t.BaseCurrency,
		CreatedAt:    t.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts a Participant model to a ParticipantResponse DTO
func (p *Participant) ToResponse() *ParticipantResponse {
	return &ParticipantResponse{
		UserID:      p.UserID,
		TripID:      p.TripID,
		DisplayName: p.DisplayName,
		JoinedAt:    p.JoinedAt.Format("2006-01-02T15:04:05Z"),
	}
}
