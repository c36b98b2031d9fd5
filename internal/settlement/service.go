package settlement

import (
	"context"
	"errors"
	"fmt"

	"github.com/colin-rod/tripthreads/internal/balance"
	"github.com/colin-rod/tripthreads/internal/trip"
)

// Common errors
var (
	ErrCannotSettleSelf = errors.New("cannot record a settlement with yourself")
	ErrInvalidAmount    = errors.New("settlement amount must be positive")
)

// Store abstracts settlement persistence.
type Store interface {
	Create(ctx context.Context, s *Settlement) error
	ListByTrip(ctx context.Context, tripID string) ([]*Settlement, error)
}

var _ Store = (*Repository)(nil)

// RosterReader resolves trips and their participants. Implemented by
// trip.Service.
type RosterReader interface {
	GetTrip(ctx context.Context, id string) (*trip.Trip, error)
	TripParticipants(ctx context.Context, tripID string) ([]trip.Participant, error)
}

// BalanceSource provides current trip balances and cache invalidation.
// Implemented by balance.Service.
type BalanceSource interface {
	TripBalances(ctx context.Context, tripID string) ([]balance.UserBalance, error)
	InvalidateTrip(ctx context.Context, tripID string)
}

// Service handles settlement business logic
type Service struct {
	repo      Store
	roster    RosterReader
	balances  BalanceSource
	optimizer Optimizer
}

// NewService creates a new settlement service
func NewService(repo Store, roster RosterReader, balances BalanceSource, optimizer Optimizer) *Service {
	return &Service{
		repo:      repo,
		roster:    roster,
		balances:  balances,
		optimizer: optimizer,
	}
}

// SuggestSettlements returns the optimizer's transfer plan for the trip's
// current balances. An empty plan means everyone is settled up.
func (s *Service) SuggestSettlements(ctx context.Context, tripID string) ([]Suggestion, error) {
	balances, err := s.balances.TripBalances(ctx, tripID)
	if err != nil {
		return nil, err
	}
	return s.optimizer.Optimize(balances), nil
}

// RecordSettlement records a repayment between two trip participants. The
// amount is taken as-is in the trip's base currency; partial repayments are
// fine, the next balance read nets them out.
func (s *Service) RecordSettlement(ctx context.Context, req *RecordSettlementRequest) (*Settlement, error) {
	t, err := s.roster.GetTrip(ctx, req.TripID)
	if err != nil {
		return nil, err
	}

	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	roster, err := s.roster.TripParticipants(ctx, req.TripID)
	if err != nil {
		return nil, err
	}

	fromID, ok := trip.Resolve(req.From, roster)
	if !ok {
		return nil, fmt.Errorf("Participant %q is not in this trip", req.From)
	}
	toID, ok := trip.Resolve(req.To, roster)
	if !ok {
		return nil, fmt.Errorf("Participant %q is not in this trip", req.To)
	}
	if fromID == toID {
		return nil, ErrCannotSettleSelf
	}

	settlement := &Settlement{
		TripID:     t.ID,
		FromUserID: fromID,
		ToUserID:   toID,
		Amount:     req.Amount,
		Currency:   t.BaseCurrency,
		Note:       req.Note,
	}
	if err := s.repo.Create(ctx, settlement); err != nil {
		return nil, err
	}

	s.balances.InvalidateTrip(ctx, req.TripID)
	return settlement, nil
}

// ListByTrip returns the trip's settlement history with display names.
func (s *Service) ListByTrip(ctx context.Context, tripID string) ([]SettlementResponse, error) {
	if _, err := s.roster.GetTrip(ctx, tripID); err != nil {
		return nil, err
	}

	settlements, err := s.repo.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	roster, err := s.roster.TripParticipants(ctx, tripID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(roster))
	for _, p := range roster {
		names[p.UserID] = p.DisplayName
	}

	responses := make([]SettlementResponse, 0, len(settlements))
	for _, settlement := range settlements {
		responses = append(responses, ToResponse(settlement, names))
	}
	return responses, nil
}
