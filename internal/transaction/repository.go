package transaction

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles transaction persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new transaction repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new transaction
func (r *Repository) Create(ctx context.Context, userID int64, req *CreateTransactionRequest) (*Transaction, error) {
	query := `
		INSERT INTO transactions (user_id, group_id, t_type, amount, category_id, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, group_id, t_type, amount, category_id, description, created_at
	`

	t := &Transaction{}
	err := r.db.QueryRowContext(ctx, query,
		userID, req.GroupID, req.Type, req.Amount, req.CategoryID, req.Description,
	).Scan(
		&t.ID,
		&t.UserID,
		&t.GroupID,
		&t.Type,
		&t.Amount,
		&t.CategoryID,
		&t.Description,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return t, nil
}

// GetByOwner retrieves a transaction by ID if the user owns it
func (r *Repository) GetByOwner(ctx context.Context, id, userID int64) (*Transaction, error) {
	query := `
		SELECT t.id, t.user_id, t.group_id, t.t_type, t.amount, t.category_id, t.description, t.created_at,
		       COALESCE(c.name, '')
		FROM transactions t
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE t.id = $1 AND t.user_id = $2
	`

	t := &Transaction{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&t.ID,
		&t.UserID,
		&t.GroupID,
		&t.Type,
		&t.Amount,
		&t.CategoryID,
		&t.Description,
		&t.CreatedAt,
		&t.CategoryName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return t, nil
}

// ListByType retrieves the user's transactions of one type, newest first
func (r *Repository) ListByType(ctx context.Context, userID int64, tType Type) ([]*Transaction, error) {
	query := `
		SELECT t.id, t.user_id, t.group_id, t.t_type, t.amount, t.category_id, t.description, t.created_at,
		       COALESCE(c.name, '')
		FROM transactions t
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = $1 AND t.t_type = $2
		ORDER BY t.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, tType)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func scanTransactions(rows *sql.Rows) ([]*Transaction, error) {
	var transactions []*Transaction
	for rows.Next() {
		t := &Transaction{}
		if err := rows.Scan(
			&t.ID,
			&t.UserID,
			&t.GroupID,
			&t.Type,
			&t.Amount,
			&t.CategoryID,
			&t.Description,
			&t.CreatedAt,
			&t.CategoryName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}
