package trip

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrTripNotFound = errors.New("trip not found")
)

// Service handles trip business logic
type Service struct {
	repo *Repository
}

// NewService creates a new trip service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// CreateTrip creates a new trip with the given base currency
func (s *Service) CreateTrip(ctx context.Context, name, baseCurrency string) (*Trip, error) {
	return s.repo.CreateTrip(ctx, name, baseCurrency)
}

// GetTrip retrieves a trip by its ID
func (s *Service) GetTrip(ctx context.Context, id string) (*Trip, error) {
	trip, err := s.repo.GetTripByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, ErrTripNotFound
	}
	return trip, nil
}

// AddParticipant adds a user to a trip's roster
func (s *Service) AddParticipant(ctx context.Context, tripID, displayName string) (*Participant, error) {
	if _, err := s.GetTrip(ctx, tripID); err != nil {
		return nil, err
	}
	return s.repo.AddParticipant(ctx, tripID, displayName)
}

// TripParticipants retrieves a trip's roster
func (s *Service) TripParticipants(ctx context.Context, tripID string) ([]Participant, error) {
	if _, err := s.GetTrip(ctx, tripID); err != nil {
		return nil, err
	}
	return s.repo.ListParticipants(ctx, tripID)
}
