package settlement

import (
	"context"
	"testing"
	"time"

	"github.com/colin-rod/tripthreads/internal/balance"
	"github.com/colin-rod/tripthreads/internal/trip"
)

const (
	aliceID = "6f1f66e4-9f34-4d9f-8a1b-0c5a4f9d1001"
	bobID   = "6f1f66e4-9f34-4d9f-8a1b-0c5a4f9d1002"
	tripID  = "6f1f66e4-9f34-4d9f-8a1b-0c5a4f9d2001"
)

type fakeStore struct {
	created []*Settlement
}

func (f *fakeStore) Create(_ context.Context, s *Settlement) error {
	s.ID = "settlement-1"
	s.CreatedAt = time.Now()
	f.created = append(f.created, s)
	return nil
}

func (f *fakeStore) ListByTrip(_ context.Context, _ string) ([]*Settlement, error) {
	return f.created, nil
}

type fakeRoster struct{}

func (fakeRoster) GetTrip(_ context.Context, id string) (*trip.Trip, error) {
	if id != tripID {
		return nil, trip.ErrTripNotFound
	}
	return &trip.Trip{ID: tripID, Name: "Lisbon", BaseCurrency: "EUR"}, nil
}

func (fakeRoster) TripParticipants(_ context.Context, _ string) ([]trip.Participant, error) {
	return []trip.Participant{
		{UserID: aliceID, TripID: tripID, DisplayName: "Alice"},
		{UserID: bobID, TripID: tripID, DisplayName: "Bob"},
	}, nil
}

type fakeBalances struct {
	balances      []balance.UserBalance
	invalidations int
}

func (f *fakeBalances) TripBalances(_ context.Context, _ string) ([]balance.UserBalance, error) {
	return f.balances, nil
}

func (f *fakeBalances) InvalidateTrip(_ context.Context, _ string) {
	f.invalidations++
}

func newTestService(balances []balance.UserBalance) (*Service, *fakeStore, *fakeBalances) {
	store := &fakeStore{}
	bals := &fakeBalances{balances: balances}
	svc := NewService(store, fakeRoster{}, bals, NewGreedyOptimizer())
	return svc, store, bals
}

func TestSuggestSettlements(t *testing.T) {
	svc, _, _ := newTestService([]balance.UserBalance{
		{UserID: aliceID, DisplayName: "Alice", NetBalance: 150, Currency: "EUR"},
		{UserID: bobID, DisplayName: "Bob", NetBalance: -150, Currency: "EUR"},
	})

	suggestions, err := svc.SuggestSettlements(context.Background(), tripID)
	if err != nil {
		t.Fatalf("SuggestSettlements: %v", err)
	}

	if len(suggestions) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(suggestions))
	}
	s := suggestions[0]
	if s.FromUserID != bobID || s.ToUserID != aliceID || s.Amount != 150 {
		t.Errorf("suggestion = %s->%s for %d, want Bob->Alice for 150", s.FromName, s.ToName, s.Amount)
	}
}

func TestSuggestSettlementsWhenSettled(t *testing.T) {
	svc, _, _ := newTestService([]balance.UserBalance{
		{UserID: aliceID, DisplayName: "Alice", NetBalance: 0, Currency: "EUR"},
		{UserID: bobID, DisplayName: "Bob", NetBalance: 0, Currency: "EUR"},
	})

	suggestions, err := svc.SuggestSettlements(context.Background(), tripID)
	if err != nil {
		t.Fatalf("SuggestSettlements: %v", err)
	}
	if len(suggestions) != 0 {
		t.Errorf("got %d suggestions, want 0 when settled up", len(suggestions))
	}
}

func TestRecordSettlement(t *testing.T) {
	svc, store, bals := newTestService(nil)

	settlement, err := svc.RecordSettlement(context.Background(), &RecordSettlementRequest{
		TripID: tripID,
		From:   "bob", // resolved case-insensitively against the roster
		To:     "Alice",
		Amount: 150,
		Note:   "dinner payback",
	})
	if err != nil {
		t.Fatalf("RecordSettlement: %v", err)
	}

	if settlement.FromUserID != bobID || settlement.ToUserID != aliceID {
		t.Errorf("resolved %s->%s, want bob->alice IDs", settlement.FromUserID, settlement.ToUserID)
	}
	if settlement.Currency != "EUR" {
		t.Errorf("currency = %s, want the trip's base currency EUR", settlement.Currency)
	}
	if len(store.created) != 1 {
		t.Errorf("persisted %d settlements, want 1", len(store.created))
	}
	if bals.invalidations != 1 {
		t.Errorf("balance cache invalidated %d times, want 1", bals.invalidations)
	}
}

func TestRecordSettlementErrors(t *testing.T) {
	tests := []struct {
		name    string
		req     RecordSettlementRequest
		wantErr string
	}{
		{
			name:    "unknown trip",
			req:     RecordSettlementRequest{TripID: "6f1f66e4-9f34-4d9f-8a1b-0c5a4f9d9999", From: "Alice", To: "Bob", Amount: 100},
			wantErr: trip.ErrTripNotFound.Error(),
		},
		{
			name:    "non-positive amount",
			req:     RecordSettlementRequest{TripID: tripID, From: "Alice", To: "Bob", Amount: 0},
			wantErr: ErrInvalidAmount.Error(),
		},
		{
			name:    "unknown participant",
			req:     RecordSettlementRequest{TripID: tripID, From: "Mallory", To: "Bob", Amount: 100},
			wantErr: `Participant "Mallory" is not in this trip`,
		},
		{
			name:    "self settlement",
			req:     RecordSettlementRequest{TripID: tripID, From: "Alice", To: "alice", Amount: 100},
			wantErr: ErrCannotSettleSelf.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, bals := newTestService(nil)

			_, err := svc.RecordSettlement(context.Background(), &tt.req)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if err.Error() != tt.wantErr {
				t.Errorf("error = %q, want %q", err.Error(), tt.wantErr)
			}
			if len(store.created) != 0 {
				t.Error("failed request should not persist a settlement")
			}
			if bals.invalidations != 0 {
				t.Error("failed request should not invalidate the balance cache")
			}
		})
	}
}
