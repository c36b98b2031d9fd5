package settlement

import "time"

// Settlement is a recorded repayment between two trip participants, always
// denominated in the trip's base currency.
type Settlement struct {
	ID         string    `json:"id"`
	TripID     string    `json:"trip_id"`
	FromUserID string    `json:"from_user_id"`
	ToUserID   string    `json:"to_user_id"`
	Amount     int64     `json:"amount"`
	Currency   string    `json:"currency"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Suggestion is a proposed transfer from the debt optimizer. It is not
// persisted; recording one creates a Settlement.
type Suggestion struct {
	FromUserID string `json:"from_user_id"`
	FromName   string `json:"from_name,omitempty"`
	ToUserID   string `json:"to_user_id"`
	ToName     string `json:"to_name,omitempty"`
	Amount     int64  `json:"amount"`
	Currency   string `json:"currency"`
}
