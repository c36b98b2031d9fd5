package trip

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// Repository handles trip and participant data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new trip repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateTrip inserts a new trip into the database
func (r *Repository) CreateTrip(ctx context.Context, name, baseCurrency string) (*Trip, error) {
	query := `
		INSERT INTO trips (id, name, base_currency)
		VALUES ($1, $2, $3)
		RETURNING id, name, base_currency, created_at
	`

	trip := &Trip{}
	err := r.db.QueryRowContext(ctx, query, uuid.New().String(), name, baseCurrency).Scan(
		&trip.ID,
		&trip.Name,
		&trip.BaseCurrency,
		&trip.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create trip: %w", err)
	}

	return trip, nil
}

// GetTripByID retrieves a trip by its ID
func (r *Repository) GetTripByID(ctx context.Context, id string) (*Trip, error) {
	query := `
		SELECT id, name, base_currency, created_at
		FROM trips
		WHERE id = $1
	`

	trip := &Trip{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&trip.ID,
		&trip.Name,
		&trip.BaseCurrency,
		&trip.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	return trip, nil
}

// AddParticipant inserts a participant into a trip's roster
func (r *Repository) AddParticipant(ctx context.Context, tripID, displayName string) (*Participant, error) {
	query := `
		INSERT INTO trip_participants (user_id, trip_id, display_name)
		VALUES ($1, $2, $3)
		RETURNING user_id, trip_id, display_name, joined_at
	`

	p := &Participant{}
	err := r.db.QueryRowContext(ctx, query, uuid.New().String(), tripID, displayName).Scan(
		&p.UserID,
		&p.TripID,
		&p.DisplayName,
		&p.JoinedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add participant: %w", err)
	}

	return p, nil
}

// ListParticipants retrieves a trip's full roster in join order
func (r *Repository) ListParticipants(ctx context.Context, tripID string) ([]Participant, error) {
	query := `
		SELECT user_id, trip_id, display_name, joined_at
		FROM trip_participants
		WHERE trip_id = $1
		ORDER BY joined_at
	`

	rows, err := r.db.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	var participants []Participant
	for rows.Next() {
		var p Participant
		if err := rows.Scan(&p.UserID, &p.TripID, &p.DisplayName, &p.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}

	return participants, rows.Err()
}
