// Package balance folds a trip's expenses into per-user net balances in the
// trip's base currency.
package balance

import (
	"github.com/colin-rod/tripthreads/internal/currency"
	"github.com/colin-rod/tripthreads/internal/expense"
)

// UserBalance is a user's derived net position for one trip, in minor units
// of the trip's base currency. Positive means the user is owed money,
// negative means they owe. It is never persisted; callers may cache it.
type UserBalance struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	NetBalance  int64  `json:"net_balance"`
	Currency    string `json:"currency"`
}

// Payment is a recorded peer-to-peer settlement applied on top of the
// expense-derived balances.
type Payment struct {
	FromUserID string `json:"from_user_id"`
	ToUserID   string `json:"to_user_id"`
	Amount     int64  `json:"amount"`
}

// CalculateUserBalances computes each user's net balance across all expenses.
//
// An expense in a foreign currency without a resolved FX rate is excluded
// entirely, so the conservation property (nets summing to zero) holds over
// the remaining set. For rated foreign-currency expenses every share is
// converted independently with the expense's rate rather than by dividing
// the converted total; per-share rounding can therefore leave a residual
// imbalance of a few minor units in mixed-currency trips. That matches how
// historical balances were computed and is kept for parity.
//
// Output order is insertion order of first appearance (payer or
// participant). Users whose credits and debits cancel to zero still appear:
// having transacted is distinct from never appearing.
func CalculateUserBalances(expenses []*expense.Expense, baseCurrency string) []UserBalance {
	byUser := make(map[string]*UserBalance)
	var order []string

	touch := func(userID, displayName string) *UserBalance {
		if b, ok := byUser[userID]; ok {
			if b.DisplayName == "" {
				b.DisplayName = displayName
			}
			return b
		}
		b := &UserBalance{UserID: userID, DisplayName: displayName, Currency: baseCurrency}
		byUser[userID] = b
		order = append(order, userID)
		return b
	}

	for _, e := range expenses {
		if e.NeedsFxRate(baseCurrency) {
			continue
		}

		converted := currency.Convert(e.Amount, e.Currency, e.FxRate, baseCurrency)
		touch(e.PayerID, e.PayerName).NetBalance += converted.Amount

		for i := range e.Shares {
			sh := &e.Shares[i]
			share := currency.Convert(sh.ShareAmount, e.Currency, e.FxRate, baseCurrency)
			touch(sh.UserID, sh.UserName).NetBalance -= share.Amount
		}
	}

	result := make([]UserBalance, 0, len(order))
	for _, id := range order {
		result = append(result, *byUser[id])
	}
	return result
}

// ApplyPayments adjusts balances with recorded settlements: the payer's
// position improves, the receiver's decreases. Users appearing only in
// payments are appended in payment order.
func ApplyPayments(balances []UserBalance, payments []Payment) []UserBalance {
	if len(payments) == 0 {
		return balances
	}

	index := make(map[string]int, len(balances))
	result := make([]UserBalance, len(balances))
	copy(result, balances)
	for i, b := range result {
		index[b.UserID] = i
	}

	var baseCurrency string
	if len(result) > 0 {
		baseCurrency = result[0].Currency
	}

	touch := func(userID string) int {
		if i, ok := index[userID]; ok {
			return i
		}
		result = append(result, UserBalance{UserID: userID, Currency: baseCurrency})
		index[userID] = len(result) - 1
		return len(result) - 1
	}

	for _, p := range payments {
		result[touch(p.FromUserID)].NetBalance += p.Amount
		result[touch(p.ToUserID)].NetBalance -= p.Amount
	}

	return result
}
