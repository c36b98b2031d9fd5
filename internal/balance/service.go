package balance

import (
	"context"

	"github.com/colin-rod/tripthreads/internal/cache"
	"github.com/colin-rod/tripthreads/internal/expense"
	"github.com/colin-rod/tripthreads/internal/trip"
)

// TripReader resolves a trip and its base currency. Implemented by
// trip.Service.
type TripReader interface {
	GetTrip(ctx context.Context, id string) (*trip.Trip, error)
}

// ExpenseLister loads a trip's full expense history with shares.
// Implemented by expense.Repository.
type ExpenseLister interface {
	ListByTrip(ctx context.Context, tripID string) ([]*expense.Expense, error)
}

// PaymentLister loads a trip's recorded settlements. Implemented by
// settlement.Repository.
type PaymentLister interface {
	PaymentsByTrip(ctx context.Context, tripID string) ([]Payment, error)
}

// Service computes (and caches) a trip's current balances.
type Service struct {
	trips    TripReader
	expenses ExpenseLister
	payments PaymentLister
	views    *cache.ViewCache[[]UserBalance]
}

// NewService creates a new balance service. views may be nil when Redis is
// not configured; every read then recomputes from storage.
func NewService(trips TripReader, expenses ExpenseLister, payments PaymentLister, views *cache.ViewCache[[]UserBalance]) *Service {
	return &Service{
		trips:    trips,
		expenses: expenses,
		payments: payments,
		views:    views,
	}
}

func balanceKey(tripID string) string {
	return "trip:" + tripID + ":balances"
}

// TripBalances returns the trip's current per-user balances: the expense
// aggregate adjusted by recorded settlements, served from cache when fresh.
func (s *Service) TripBalances(ctx context.Context, tripID string) ([]UserBalance, error) {
	if cached, ok := s.views.Get(ctx, balanceKey(tripID)); ok {
		return cached, nil
	}

	t, err := s.trips.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	expenses, err := s.expenses.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	balances := CalculateUserBalances(expenses, t.BaseCurrency)

	payments, err := s.payments.PaymentsByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	balances = ApplyPayments(balances, payments)

	s.views.Set(ctx, balanceKey(tripID), balances)
	return balances, nil
}

// InvalidateTrip drops the cached balance view after any expense or
// settlement write for the trip.
func (s *Service) InvalidateTrip(ctx context.Context, tripID string) {
	s.views.Delete(ctx, balanceKey(tripID))
}
