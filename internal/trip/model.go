package trip

import "time"

// Trip represents a trip whose expenses are tracked together.
// BaseCurrency is the single currency all balances and settlements for the
// trip are expressed in.
type Trip struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	BaseCurrency string    `json:"base_currency"`
	CreatedAt    time.Time `json:"created_at"`
}

// Participant represents a user's membership in a trip. The set of
// participants is the roster free-text expense input is resolved against.
type Participant struct {
	UserID      string    `json:"user_id"`
	TripID      string    `json:"trip_id"`
	DisplayName string    `json:"display_name"`
	JoinedAt    time.Time `json:"joined_at"`
}
