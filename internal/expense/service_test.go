package expense

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/colin-rod/tripthreads/internal/currency"
	"github.com/colin-rod/tripthreads/internal/expense/split"
	"github.com/colin-rod/tripthreads/internal/trip"
)

const (
	aliceID = "3f2f1f30-9c1a-4b5e-8f3b-1a2b3c4d5e6f"
	bobID   = "7a8b9c0d-1e2f-4a3b-9c8d-7e6f5a4b3c2d"
	tripID  = "11111111-2222-4333-8444-555555555555"
)

type fakeStore struct {
	expenses map[string]*Expense
	deleted  []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{expenses: make(map[string]*Expense)}
}

func (s *fakeStore) CreateExpenseWithShares(_ context.Context, e *Expense) (*Expense, error) {
	if e.ID == "" {
		e.ID = fmt.Sprintf("expense-%d", len(s.expenses)+1)
	}
	e.CreatedAt = time.Now()
	s.expenses[e.ID] = e
	return e, nil
}

func (s *fakeStore) UpdateExpenseWithShares(_ context.Context, e *Expense) (*Expense, error) {
	if _, ok := s.expenses[e.ID]; !ok {
		return nil, nil
	}
	s.expenses[e.ID] = e
	return e, nil
}

func (s *fakeStore) GetExpenseByID(_ context.Context, id string) (*Expense, error) {
	return s.expenses[id], nil
}

func (s *fakeStore) ListByTrip(_ context.Context, tripID string) ([]*Expense, error) {
	var result []*Expense
	for _, e := range s.expenses {
		if e.TripID == tripID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (s *fakeStore) ListByTripPaged(_ context.Context, tripID string, _, _ int) ([]*Expense, int, error) {
	all, _ := s.ListByTrip(nil, tripID)
	return all, len(all), nil
}

func (s *fakeStore) DeleteExpense(_ context.Context, id string) error {
	delete(s.expenses, id)
	s.deleted = append(s.deleted, id)
	return nil
}

type fakeRoster struct {
	trip         *trip.Trip
	participants []trip.Participant
}

func (r *fakeRoster) GetTrip(_ context.Context, id string) (*trip.Trip, error) {
	if r.trip == nil || r.trip.ID != id {
		return nil, trip.ErrTripNotFound
	}
	return r.trip, nil
}

func (r *fakeRoster) TripParticipants(_ context.Context, _ string) ([]trip.Participant, error) {
	return r.participants, nil
}

type spyInvalidator struct {
	trips []string
}

func (s *spyInvalidator) InvalidateTrip(_ context.Context, tripID string) {
	s.trips = append(s.trips, tripID)
}

func newTestService(store Store, rates currency.RateProvider) (*Service, *spyInvalidator) {
	roster := &fakeRoster{
		trip: &trip.Trip{ID: tripID, Name: "Lisbon", BaseCurrency: "EUR"},
		participants: []trip.Participant{
			{UserID: aliceID, TripID: tripID, DisplayName: "Alice"},
			{UserID: bobID, TripID: tripID, DisplayName: "Bob"},
		},
	}
	spy := &spyInvalidator{}
	return NewService(store, roster, rates, split.NewFactory(), spy), spy
}

func TestCreateExpenseEqualSplit(t *testing.T) {
	store := newFakeStore()
	svc, spy := newTestService(store, currency.NewStaticProvider(nil))

	e, err := svc.CreateExpense(context.Background(), &CreateExpenseRequest{
		TripID:      tripID,
		Description: "Dinner",
		Amount:      301,
		Currency:    "EUR",
		Payer:       "alice",
		SplitType:   "EQUAL",
		Participants: []*ParticipantInput{
			{Name: "Alice"},
			{Name: "Bob"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if e.PayerID != aliceID {
		t.Errorf("payer = %q, want alice's ID", e.PayerID)
	}
	if len(e.Shares) != 2 {
		t.Fatalf("got %d shares, want 2", len(e.Shares))
	}
	if e.Shares[0].ShareAmount != 151 || e.Shares[1].ShareAmount != 150 {
		t.Errorf("shares = %d, %d, want 151, 150", e.Shares[0].ShareAmount, e.Shares[1].ShareAmount)
	}
	if e.FxRate != nil {
		t.Error("same-currency expense should not carry an fx rate")
	}
	if len(spy.trips) != 1 || spy.trips[0] != tripID {
		t.Errorf("balance cache invalidations = %v, want [%s]", spy.trips, tripID)
	}
}

func TestCreateExpenseUnresolvableParticipant(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestService(store, currency.NewStaticProvider(nil))

	_, err := svc.CreateExpense(context.Background(), &CreateExpenseRequest{
		TripID:      tripID,
		Description: "Dinner",
		Amount:      301,
		Currency:    "EUR",
		Payer:       "Alice",
		SplitType:   "EQUAL",
		Participants: []*ParticipantInput{
			{Name: "Alice"},
			{Name: "Unknown"},
		},
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	want := `Participant "Unknown" is not in this trip`
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
	if len(store.expenses) != 0 {
		t.Error("nothing should persist when resolution fails")
	}
}

func TestCreateExpenseCustomSumMismatch(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestService(store, currency.NewStaticProvider(nil))

	amount := func(v int64) *int64 { return &v }
	_, err := svc.CreateExpense(context.Background(), &CreateExpenseRequest{
		TripID:      tripID,
		Description: "Museum",
		Amount:      301,
		Currency:    "EUR",
		Payer:       "Alice",
		SplitType:   "CUSTOM",
		Participants: []*ParticipantInput{
			{Name: "Alice", Amount: amount(100)},
			{Name: "Bob", Amount: amount(100)},
		},
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	want := "Participant shares (200) do not sum to expense total (301)"
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
	if len(store.expenses) != 0 {
		t.Error("nothing should persist when split validation fails")
	}
}

func TestCreateExpenseForeignCurrencyStoresRate(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestService(store, currency.NewStaticProvider(map[string]float64{"USD/EUR": 0.92}))

	e, err := svc.CreateExpense(context.Background(), &CreateExpenseRequest{
		TripID:      tripID,
		Description: "Taxi",
		Amount:      1000,
		Currency:    "USD",
		Payer:       "Bob",
		SplitType:   "EQUAL",
		Participants: []*ParticipantInput{
			{Name: "Alice"},
			{Name: "Bob"},
		},
		ExpenseDate: "2025-06-15",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.FxRate == nil || *e.FxRate != 0.92 {
		t.Fatalf("fx rate = %v, want 0.92", e.FxRate)
	}
	// Shares stay in the expense currency; conversion happens at aggregation
	if e.Shares[0].ShareAmount != 500 || e.Shares[1].ShareAmount != 500 {
		t.Errorf("shares = %d, %d, want 500, 500", e.Shares[0].ShareAmount, e.Shares[1].ShareAmount)
	}
}

func TestCreateExpenseFxLookupFailureIsRecoverable(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestService(store, currency.NewStaticProvider(nil)) // no rates configured

	e, err := svc.CreateExpense(context.Background(), &CreateExpenseRequest{
		TripID:      tripID,
		Description: "Taxi",
		Amount:      1000,
		Currency:    "USD",
		Payer:       "Bob",
		SplitType:   "EQUAL",
		Participants: []*ParticipantInput{
			{Name: "Alice"},
			{Name: "Bob"},
		},
	})
	if err != nil {
		t.Fatalf("a failed rate lookup must not fail creation, got: %v", err)
	}
	if e.FxRate != nil {
		t.Errorf("fx rate = %v, want nil after failed lookup", e.FxRate)
	}
}

func TestCreateExpenseNoneSplit(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestService(store, currency.NewStaticProvider(nil))

	e, err := svc.CreateExpense(context.Background(), &CreateExpenseRequest{
		TripID:      tripID,
		Description: "Souvenir",
		Amount:      500,
		Currency:    "EUR",
		Payer:       "Alice",
		SplitType:   "NONE",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(e.Shares) != 0 {
		t.Errorf("got %d shares, want 0 for NONE split", len(e.Shares))
	}
}

func TestDeleteExpenseOnlyPayer(t *testing.T) {
	store := newFakeStore()
	svc, spy := newTestService(store, currency.NewStaticProvider(nil))

	e, err := svc.CreateExpense(context.Background(), &CreateExpenseRequest{
		TripID:      tripID,
		Description: "Dinner",
		Amount:      300,
		Currency:    "EUR",
		Payer:       "Alice",
		SplitType:   "EQUAL",
		Participants: []*ParticipantInput{
			{Name: "Alice"},
			{Name: "Bob"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.DeleteExpense(context.Background(), e.ID, bobID); !errors.Is(err, ErrNotPayer) {
		t.Errorf("delete by non-payer: error = %v, want ErrNotPayer", err)
	}

	if err := svc.DeleteExpense(context.Background(), e.ID, aliceID); err != nil {
		t.Fatalf("delete by payer failed: %v", err)
	}
	if len(store.expenses) != 0 {
		t.Error("expense not deleted")
	}
	if len(spy.trips) != 2 {
		t.Errorf("invalidations = %d, want 2 (create + delete)", len(spy.trips))
	}
}
