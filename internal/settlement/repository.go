package settlement

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/colin-rod/tripthreads/internal/balance"
)

// Repository handles database operations for settlements
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new settlement repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new settlement record
func (r *Repository) Create(ctx context.Context, s *Settlement) error {
	s.ID = uuid.New().String()

	query := `
		INSERT INTO settlements (id, trip_id, from_user_id, to_user_id, amount, currency, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	return r.db.QueryRowContext(ctx, query,
		s.ID, s.TripID, s.FromUserID, s.ToUserID, s.Amount, s.Currency, s.Note,
	).Scan(&s.CreatedAt)
}

// ListByTrip returns all settlements for a trip, oldest first.
func (r *Repository) ListByTrip(ctx context.Context, tripID string) ([]*Settlement, error) {
	query := `
		SELECT id, trip_id, from_user_id, to_user_id, amount, currency, COALESCE(note, ''), created_at
		FROM settlements
		WHERE trip_id = $1
		ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settlements []*Settlement
	for rows.Next() {
		var s Settlement
		if err := rows.Scan(&s.ID, &s.TripID, &s.FromUserID, &s.ToUserID,
			&s.Amount, &s.Currency, &s.Note, &s.CreatedAt); err != nil {
			return nil, err
		}
		settlements = append(settlements, &s)
	}
	return settlements, rows.Err()
}

// PaymentsByTrip returns the trip's settlements as balance adjustments.
// Implements balance.PaymentLister.
func (r *Repository) PaymentsByTrip(ctx context.Context, tripID string) ([]balance.Payment, error) {
	query := `
		SELECT from_user_id, to_user_id, amount
		FROM settlements
		WHERE trip_id = $1
		ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []balance.Payment
	for rows.Next() {
		var p balance.Payment
		if err := rows.Scan(&p.FromUserID, &p.ToUserID, &p.Amount); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
