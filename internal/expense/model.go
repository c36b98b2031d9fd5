package expense

import (
	"time"

	"github.com/colin-rod/tripthreads/internal/expense/split"
)

// Expense represents a single shared cost on a trip.
// Amount is in minor units of Currency. FxRate is the
// base-currency-per-unit rate resolved at the expense date; it is only set
// when Currency differs from the trip's base currency, and may be nil when
// the lookup failed (such an expense is excluded from balances until a rate
// is backfilled).
type Expense struct {
	ID          string     `json:"id"`
	TripID      string     `json:"trip_id"`
	PayerID     string     `json:"payer_id"`
	Description string     `json:"description"`
	Amount      int64      `json:"amount"`
	Currency    string     `json:"currency"`
	FxRate      *float64   `json:"fx_rate,omitempty"`
	SplitType   split.Type `json:"split_type"`
	ExpenseDate time.Time  `json:"expense_date"`
	CreatedAt   time.Time  `json:"created_at"`

	// Populated via JOIN
	PayerName string `json:"payer_name,omitempty"`

	Shares []Share `json:"shares,omitempty"`
}

// NeedsFxRate reports whether the expense is in a foreign currency without a
// resolved rate, and is therefore excluded from balance aggregation.
func (e *Expense) NeedsFxRate(baseCurrency string) bool {
	return e.Currency != baseCurrency && e.FxRate == nil
}

// Share represents one participant's portion of an expense, materialized at
// creation time and immutable until the expense is edited (an edit re-runs
// the split calculation and replaces all shares atomically).
type Share struct {
	ExpenseID   string     `json:"expense_id"`
	UserID      string     `json:"user_id"`
	ShareAmount int64      `json:"share_amount"`
	ShareType   split.Type `json:"share_type"`
	ShareValue  *float64   `json:"share_value,omitempty"`
	Position    int        `json:"position"`

	// Populated via JOIN
	UserName string `json:"user_name,omitempty"`
}
