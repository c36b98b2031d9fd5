package expense

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/colin-rod/tripthreads/internal/currency"
	"github.com/colin-rod/tripthreads/internal/expense/split"
	"github.com/colin-rod/tripthreads/internal/trip"
)

// Common errors
var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrNotPayer        = errors.New("only the payer can modify this expense")
)

// Store defines the persistence operations the service needs. The
// abstraction keeps the business logic testable without a database;
// *Repository is the Postgres implementation.
type Store interface {
	CreateExpenseWithShares(ctx context.Context, e *Expense) (*Expense, error)
	UpdateExpenseWithShares(ctx context.Context, e *Expense) (*Expense, error)
	GetExpenseByID(ctx context.Context, id string) (*Expense, error)
	ListByTrip(ctx context.Context, tripID string) ([]*Expense, error)
	ListByTripPaged(ctx context.Context, tripID string, limit, offset int) ([]*Expense, int, error)
	DeleteExpense(ctx context.Context, id string) error
}

// Ensure Repository implements Store
var _ Store = (*Repository)(nil)

// RosterReader supplies the trip and roster the expense input is resolved
// against. Implemented by trip.Service.
type RosterReader interface {
	GetTrip(ctx context.Context, id string) (*trip.Trip, error)
	TripParticipants(ctx context.Context, tripID string) ([]trip.Participant, error)
}

// BalanceInvalidator drops cached balance views after a write.
// Implemented by balance.Service.
type BalanceInvalidator interface {
	InvalidateTrip(ctx context.Context, tripID string)
}

// Service handles expense business logic: participant resolution, FX rate
// lookup, split calculation and atomic persistence.
type Service struct {
	repo     Store
	roster   RosterReader
	rates    currency.RateProvider
	splits   *split.Factory
	balances BalanceInvalidator
}

// NewService creates a new expense service with dependencies injected
func NewService(repo Store, roster RosterReader, rates currency.RateProvider, splits *split.Factory, balances BalanceInvalidator) *Service {
	return &Service{
		repo:     repo,
		roster:   roster,
		rates:    rates,
		splits:   splits,
		balances: balances,
	}
}

// CreateExpense resolves participants, looks up the FX rate once if needed,
// computes shares with the requested strategy and persists everything in one
// transaction. Any resolution or validation failure aborts the whole
// operation with nothing persisted.
func (s *Service) CreateExpense(ctx context.Context, req *CreateExpenseRequest) (*Expense, error) {
	t, err := s.roster.GetTrip(ctx, req.TripID)
	if err != nil {
		return nil, err
	}

	e, err := s.buildExpense(ctx, t, req.Payer, req.Description, req.Amount, req.Currency, req.SplitType, req.Participants, req.ExpenseDate)
	if err != nil {
		return nil, err
	}
	e.TripID = t.ID

	created, err := s.repo.CreateExpenseWithShares(ctx, e)
	if err != nil {
		return nil, err
	}

	s.balances.InvalidateTrip(ctx, t.ID)
	slog.Info("expense created",
		"expense_id", created.ID,
		"trip_id", t.ID,
		"amount", created.Amount,
		"currency", created.Currency,
		"split_type", created.SplitType,
		"shares", len(created.Shares),
	)

	return created, nil
}

// UpdateExpense edits an expense. The split calculation is re-run with the
// submitted inputs and all shares are replaced atomically.
func (s *Service) UpdateExpense(ctx context.Context, id string, req *UpdateExpenseRequest) (*Expense, error) {
	existing, err := s.repo.GetExpenseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrExpenseNotFound
	}

	t, err := s.roster.GetTrip(ctx, existing.TripID)
	if err != nil {
		return nil, err
	}

	e, err := s.buildExpense(ctx, t, req.Payer, req.Description, req.Amount, req.Currency, req.SplitType, req.Participants, req.ExpenseDate)
	if err != nil {
		return nil, err
	}
	e.ID = existing.ID
	e.TripID = existing.TripID

	updated, err := s.repo.UpdateExpenseWithShares(ctx, e)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrExpenseNotFound
	}

	s.balances.InvalidateTrip(ctx, t.ID)
	return updated, nil
}

// buildExpense performs the shared creation/edit pipeline up to (but not
// including) persistence: resolve payer and participants, resolve the FX
// rate, compute shares.
func (s *Service) buildExpense(ctx context.Context, t *trip.Trip, payer, description string, amount int64, currencyCode, splitType string, participants []*ParticipantInput, expenseDate string) (*Expense, error) {
	strategy, err := s.splits.CreateFromString(splitType)
	if err != nil {
		return nil, err
	}

	roster, err := s.roster.TripParticipants(ctx, t.ID)
	if err != nil {
		return nil, err
	}

	payerID, ok := trip.Resolve(payer, roster)
	if !ok {
		return nil, fmt.Errorf("Participant %q is not in this trip", payer)
	}

	inputs := make([]split.Input, len(participants))
	for i, p := range participants {
		userID, ok := trip.Resolve(p.Name, roster)
		if !ok {
			return nil, fmt.Errorf("Participant %q is not in this trip", p.Name)
		}
		inputs[i] = split.Input{
			UserID:     userID,
			Percentage: p.Percentage,
			Amount:     p.Amount,
		}
	}

	date, err := parseExpenseDate(expenseDate)
	if err != nil {
		return nil, err
	}

	var fxRate *float64
	if currencyCode != t.BaseCurrency {
		rate, err := s.rates.Lookup(ctx, t.BaseCurrency, currencyCode, date)
		if err != nil {
			// A missing rate is recoverable: the expense is stored without
			// one and excluded from balances until a rate is backfilled.
			slog.Warn("fx rate lookup failed",
				"trip_id", t.ID,
				"base", t.BaseCurrency,
				"target", currencyCode,
				"date", date.Format("2006-01-02"),
				"error", err,
			)
		} else {
			fxRate = &rate
		}
	}

	shares, err := strategy.Calculate(amount, inputs)
	if err != nil {
		return nil, err
	}

	e := &Expense{
		PayerID:     payerID,
		Description: description,
		Amount:      amount,
		Currency:    currencyCode,
		FxRate:      fxRate,
		SplitType:   strategy.Type(),
		ExpenseDate: date,
		Shares:      make([]Share, len(shares)),
	}
	for i, sh := range shares {
		e.Shares[i] = Share{
			UserID:      sh.UserID,
			ShareAmount: sh.Amount,
			ShareType:   sh.Type,
			ShareValue:  sh.Value,
			Position:    i,
		}
	}

	return e, nil
}

func parseExpenseDate(value string) (time.Time, error) {
	if value == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid expense_date %q: use YYYY-MM-DD", value)
	}
	return date, nil
}

// GetExpenseByID retrieves an expense with its shares
func (s *Service) GetExpenseByID(ctx context.Context, id string) (*Expense, error) {
	e, err := s.repo.GetExpenseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrExpenseNotFound
	}
	return e, nil
}

// ListByTrip retrieves a page of a trip's expenses
func (s *Service) ListByTrip(ctx context.Context, tripID string, page, perPage int) ([]*Expense, int, error) {
	if _, err := s.roster.GetTrip(ctx, tripID); err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByTripPaged(ctx, tripID, perPage, offset)
}

// DeleteExpense deletes an expense. Only the payer may delete.
func (s *Service) DeleteExpense(ctx context.Context, id, userID string) error {
	e, err := s.repo.GetExpenseByID(ctx, id)
	if err != nil {
		return err
	}
	if e == nil {
		return ErrExpenseNotFound
	}

	if userID != "" && e.PayerID != userID {
		return ErrNotPayer
	}

	if err := s.repo.DeleteExpense(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrExpenseNotFound
		}
		return err
	}

	s.balances.InvalidateTrip(ctx, e.TripID)
	return nil
}
