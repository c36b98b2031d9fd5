package settlement

import (
	"sort"

	"github.com/colin-rod/tripthreads/internal/balance"
)

// Optimizer turns a set of net balances into a list of transfers that would
// settle them.
type Optimizer interface {
	Optimize(balances []balance.UserBalance) []Suggestion
}

// GreedyOptimizer repeatedly matches the largest debtor with the largest
// creditor. It produces at most n-1 transfers for n non-zero balances, which
// is not always the theoretical minimum but is stable and easy to audit.
type GreedyOptimizer struct{}

// NewGreedyOptimizer creates a new greedy debt optimizer.
func NewGreedyOptimizer() *GreedyOptimizer {
	return &GreedyOptimizer{}
}

type party struct {
	userID    string
	name      string
	remaining int64
}

// Optimize pairs debtors with creditors until one side is exhausted. Input
// balances are not mutated. Balances that do not sum to zero (possible after
// per-share currency rounding) leave a residual that is simply never paired.
func (o *GreedyOptimizer) Optimize(balances []balance.UserBalance) []Suggestion {
	var debtors, creditors []party
	var currency string

	for _, b := range balances {
		if currency == "" {
			currency = b.Currency
		}
		switch {
		case b.NetBalance < 0:
			debtors = append(debtors, party{userID: b.UserID, name: b.DisplayName, remaining: -b.NetBalance})
		case b.NetBalance > 0:
			creditors = append(creditors, party{userID: b.UserID, name: b.DisplayName, remaining: b.NetBalance})
		}
	}

	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].remaining > debtors[j].remaining
	})
	sort.SliceStable(creditors, func(i, j int) bool {
		return creditors[i].remaining > creditors[j].remaining
	})

	var suggestions []Suggestion
	di, ci := 0, 0
	for di < len(debtors) && ci < len(creditors) {
		amount := min64(debtors[di].remaining, creditors[ci].remaining)
		if amount <= 0 {
			break
		}

		suggestions = append(suggestions, Suggestion{
			FromUserID: debtors[di].userID,
			FromName:   debtors[di].name,
			ToUserID:   creditors[ci].userID,
			ToName:     creditors[ci].name,
			Amount:     amount,
			Currency:   currency,
		})

		debtors[di].remaining -= amount
		creditors[ci].remaining -= amount
		if debtors[di].remaining == 0 {
			di++
		}
		if creditors[ci].remaining == 0 {
			ci++
		}
	}

	return suggestions
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
