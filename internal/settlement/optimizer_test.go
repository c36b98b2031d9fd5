package settlement

import (
	"testing"

	"github.com/colin-rod/tripthreads/internal/balance"
)

func bal(userID string, net int64) balance.UserBalance {
	return balance.UserBalance{UserID: userID, NetBalance: net, Currency: "EUR"}
}

// applySuggestions pays every suggested transfer back into the balances and
// returns the resulting nets, so tests can assert everything zeroes out.
func applySuggestions(balances []balance.UserBalance, suggestions []Suggestion) map[string]int64 {
	nets := make(map[string]int64, len(balances))
	for _, b := range balances {
		nets[b.UserID] = b.NetBalance
	}
	for _, s := range suggestions {
		nets[s.FromUserID] += s.Amount
		nets[s.ToUserID] -= s.Amount
	}
	return nets
}

func TestGreedyOptimizerSettlesAllDebts(t *testing.T) {
	tests := []struct {
		name         string
		balances     []balance.UserBalance
		maxTransfers int
	}{
		{
			name: "two users",
			balances: []balance.UserBalance{
				bal("alice", 150),
				bal("bob", -150),
			},
			maxTransfers: 1,
		},
		{
			name: "one creditor three debtors",
			balances: []balance.UserBalance{
				bal("alice", 600),
				bal("bob", -100),
				bal("carol", -200),
				bal("dave", -300),
			},
			maxTransfers: 3,
		},
		{
			name: "mixed chain",
			balances: []balance.UserBalance{
				bal("alice", 500),
				bal("bob", -200),
				bal("carol", 300),
				bal("dave", -600),
			},
			maxTransfers: 3,
		},
		{
			name: "zero balances ignored",
			balances: []balance.UserBalance{
				bal("alice", 150),
				bal("bob", 0),
				bal("carol", -150),
			},
			maxTransfers: 1,
		},
	}

	opt := NewGreedyOptimizer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			suggestions := opt.Optimize(tt.balances)

			if len(suggestions) > tt.maxTransfers {
				t.Errorf("got %d transfers, want at most %d", len(suggestions), tt.maxTransfers)
			}
			for _, s := range suggestions {
				if s.Amount <= 0 {
					t.Errorf("suggestion %s->%s has non-positive amount %d", s.FromUserID, s.ToUserID, s.Amount)
				}
				if s.Currency != "EUR" {
					t.Errorf("suggestion currency = %s, want EUR", s.Currency)
				}
			}
			for userID, net := range applySuggestions(tt.balances, suggestions) {
				if net != 0 {
					t.Errorf("user %s left with net %d after applying suggestions", userID, net)
				}
			}
		})
	}
}

func TestGreedyOptimizerLargestFirst(t *testing.T) {
	balances := []balance.UserBalance{
		bal("small-debtor", -100),
		bal("big-debtor", -500),
		bal("creditor", 600),
	}

	suggestions := NewGreedyOptimizer().Optimize(balances)

	if len(suggestions) != 2 {
		t.Fatalf("got %d suggestions, want 2", len(suggestions))
	}
	if suggestions[0].FromUserID != "big-debtor" || suggestions[0].Amount != 500 {
		t.Errorf("first transfer = %s for %d, want big-debtor for 500",
			suggestions[0].FromUserID, suggestions[0].Amount)
	}
	if suggestions[1].FromUserID != "small-debtor" || suggestions[1].Amount != 100 {
		t.Errorf("second transfer = %s for %d, want small-debtor for 100",
			suggestions[1].FromUserID, suggestions[1].Amount)
	}
}

func TestGreedyOptimizerEdgeCases(t *testing.T) {
	opt := NewGreedyOptimizer()

	if got := opt.Optimize(nil); len(got) != 0 {
		t.Errorf("nil balances: got %d suggestions, want 0", len(got))
	}

	allZero := []balance.UserBalance{bal("alice", 0), bal("bob", 0)}
	if got := opt.Optimize(allZero); len(got) != 0 {
		t.Errorf("all-zero balances: got %d suggestions, want 0", len(got))
	}

	// Rounding residuals can leave only one side populated; nothing to pair.
	oneSided := []balance.UserBalance{bal("alice", 1)}
	if got := opt.Optimize(oneSided); len(got) != 0 {
		t.Errorf("one-sided balances: got %d suggestions, want 0", len(got))
	}
}

func TestGreedyOptimizerDoesNotMutateInput(t *testing.T) {
	balances := []balance.UserBalance{bal("alice", 150), bal("bob", -150)}

	NewGreedyOptimizer().Optimize(balances)

	if balances[0].NetBalance != 150 || balances[1].NetBalance != -150 {
		t.Error("Optimize mutated its input balances")
	}
}
