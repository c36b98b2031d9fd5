package expense

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Repository handles expense and share data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateExpenseWithShares inserts an expense and all its participant shares in
// a single transaction: either both persist or neither.
func (r *Repository) CreateExpenseWithShares(ctx context.Context, e *Expense) (*Expense, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if e.ID == "" {
		e.ID = uuid.New().String()
	}

	query := `
		INSERT INTO expenses (id, trip_id, payer_id, description, amount, currency, fx_rate, split_type, expense_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`
	err = tx.QueryRowContext(ctx, query,
		e.ID,
		e.TripID,
		e.PayerID,
		e.Description,
		e.Amount,
		e.Currency,
		e.FxRate,
		e.SplitType,
		e.ExpenseDate,
	).Scan(&e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	if err := insertShares(ctx, tx, e); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit expense: %w", err)
	}

	return e, nil
}

// UpdateExpenseWithShares replaces an expense and all of its shares in a
// single transaction. Used by the edit flow after re-running the split
// calculation.
func (r *Repository) UpdateExpenseWithShares(ctx context.Context, e *Expense) (*Expense, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE expenses
		SET payer_id = $2, description = $3, amount = $4, currency = $5, fx_rate = $6, split_type = $7, expense_date = $8
		WHERE id = $1
		RETURNING created_at
	`
	err = tx.QueryRowContext(ctx, query,
		e.ID,
		e.PayerID,
		e.Description,
		e.Amount,
		e.Currency,
		e.FxRate,
		e.SplitType,
		e.ExpenseDate,
	).Scan(&e.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM expense_shares WHERE expense_id = $1`, e.ID); err != nil {
		return nil, fmt.Errorf("failed to clear shares: %w", err)
	}

	if err := insertShares(ctx, tx, e); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit expense update: %w", err)
	}

	return e, nil
}

func insertShares(ctx context.Context, tx *sql.Tx, e *Expense) error {
	query := `
		INSERT INTO expense_shares (expense_id, user_id, share_amount, share_type, share_value, position)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for i := range e.Shares {
		s := &e.Shares[i]
		s.ExpenseID = e.ID
		s.Position = i
		if _, err := tx.ExecContext(ctx, query,
			s.ExpenseID,
			s.UserID,
			s.ShareAmount,
			s.ShareType,
			s.ShareValue,
			s.Position,
		); err != nil {
			return fmt.Errorf("failed to create share: %w", err)
		}
	}
	return nil
}

// GetExpenseByID retrieves an expense with its shares
func (r *Repository) GetExpenseByID(ctx context.Context, id string) (*Expense, error) {
	query := `
		SELECT e.id, e.trip_id, e.payer_id, e.description, e.amount, e.currency, e.fx_rate, e.split_type, e.expense_date, e.created_at, COALESCE(p.display_name, '')
		FROM expenses e
		LEFT JOIN trip_participants p ON e.payer_id = p.user_id AND e.trip_id = p.trip_id
		WHERE e.id = $1
	`

	e := &Expense{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&e.ID,
		&e.TripID,
		&e.PayerID,
		&e.Description,
		&e.Amount,
		&e.Currency,
		&e.FxRate,
		&e.SplitType,
		&e.ExpenseDate,
		&e.CreatedAt,
		&e.PayerName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	shares, err := r.sharesByExpenseIDs(ctx, []string{e.ID})
	if err != nil {
		return nil, err
	}
	e.Shares = shares[e.ID]

	return e, nil
}

// ListByTrip retrieves all of a trip's expenses with their shares, oldest
// first. The balance aggregator folds over this full set.
func (r *Repository) ListByTrip(ctx context.Context, tripID string) ([]*Expense, error) {
	query := `
		SELECT e.id, e.trip_id, e.payer_id, e.description, e.amount, e.currency, e.fx_rate, e.split_type, e.expense_date, e.created_at, COALESCE(p.display_name, '')
		FROM expenses e
		LEFT JOIN trip_participants p ON e.payer_id = p.user_id AND e.trip_id = p.trip_id
		WHERE e.trip_id = $1
		ORDER BY e.created_at, e.id
	`

	rows, err := r.db.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	var ids []string
	for rows.Next() {
		e := &Expense{}
		if err := rows.Scan(
			&e.ID,
			&e.TripID,
			&e.PayerID,
			&e.Description,
			&e.Amount,
			&e.Currency,
			&e.FxRate,
			&e.SplitType,
			&e.ExpenseDate,
			&e.CreatedAt,
			&e.PayerName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
		ids = append(ids, e.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	shares, err := r.sharesByExpenseIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, e := range expenses {
		e.Shares = shares[e.ID]
	}

	return expenses, nil
}

// sharesByExpenseIDs loads shares for a batch of expenses, keyed by expense
// ID and ordered by the position they were created in.
func (r *Repository) sharesByExpenseIDs(ctx context.Context, expenseIDs []string) (map[string][]Share, error) {
	result := make(map[string][]Share)
	if len(expenseIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT s.expense_id, s.user_id, s.share_amount, s.share_type, s.share_value, s.position, COALESCE(p.display_name, '')
		FROM expense_shares s
		JOIN expenses e ON s.expense_id = e.id
		LEFT JOIN trip_participants p ON s.user_id = p.user_id AND e.trip_id = p.trip_id
		WHERE s.expense_id = ANY($1)
		ORDER BY s.expense_id, s.position
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(expenseIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to get shares: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s Share
		if err := rows.Scan(
			&s.ExpenseID,
			&s.UserID,
			&s.ShareAmount,
			&s.ShareType,
			&s.ShareValue,
			&s.Position,
			&s.UserName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan share: %w", err)
		}
		result[s.ExpenseID] = append(result[s.ExpenseID], s)
	}

	return result, rows.Err()
}

// ListByTripPaged retrieves a page of a trip's expenses, newest first,
// without shares. Used by the listing endpoint; the balance aggregator uses
// ListByTrip instead.
func (r *Repository) ListByTripPaged(ctx context.Context, tripID string, limit, offset int) ([]*Expense, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM expenses WHERE trip_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, tripID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := `
		SELECT e.id, e.trip_id, e.payer_id, e.description, e.amount, e.currency, e.fx_rate, e.split_type, e.expense_date, e.created_at, COALESCE(p.display_name, '')
		FROM expenses e
		LEFT JOIN trip_participants p ON e.payer_id = p.user_id AND e.trip_id = p.trip_id
		WHERE e.trip_id = $1
		ORDER BY e.created_at DESC, e.id
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, tripID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		e := &Expense{}
		if err := rows.Scan(
			&e.ID,
			&e.TripID,
			&e.PayerID,
			&e.Description,
			&e.Amount,
			&e.Currency,
			&e.FxRate,
			&e.SplitType,
			&e.ExpenseDate,
			&e.CreatedAt,
			&e.PayerName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}

	return expenses, total, rows.Err()
}

// DeleteExpense removes an expense; shares cascade
func (r *Repository) DeleteExpense(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
