package settlement

import "time"

// RecordSettlementRequest represents the request body for recording a
// repayment. From and To accept a participant's user ID or display name.
type RecordSettlementRequest struct {
	TripID string `json:"trip_id" validate:"required,uuid"`
	From   string `json:"from" validate:"required"`
	To     string `json:"to" validate:"required"`
	Amount int64  `json:"amount" validate:"required,gt=0"`
	Note   string `json:"note" validate:"omitempty,max=500"`
}

// SettlementResponse represents a settlement in API responses
type SettlementResponse struct {
	ID         string    `json:"id"`
	TripID     string    `json:"trip_id"`
	FromUserID string    `json:"from_user_id"`
	FromName   string    `json:"from_name,omitempty"`
	ToUserID   string    `json:"to_user_id"`
	ToName     string    `json:"to_name,omitempty"`
	Amount     int64     `json:"amount"`
	Currency   string    `json:"currency"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToResponse converts a Settlement to a SettlementResponse, filling display
// names from the trip roster when available.
func ToResponse(s *Settlement, names map[string]string) SettlementResponse {
	return SettlementResponse{
		ID:         s.ID,
		TripID:     s.TripID,
		FromUserID: s.FromUserID,
		FromName:   names[s.FromUserID],
		ToUserID:   s.ToUserID,
		ToName:     names[s.ToUserID],
		Amount:     s.Amount,
		Currency:   s.Currency,
		Note:       s.Note,
		CreatedAt:  s.CreatedAt,
	}
}
