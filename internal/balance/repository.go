package balance

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/frognance/frognance/internal/transaction"
)

// Repository runs the aggregation queries over the transactions table
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new balance repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ListPersonal retrieves the user's personal (group-less) transactions,
// newest first
func (r *Repository) ListPersonal(ctx context.Context, userID int64) ([]*transaction.Transaction, error) {
	query := `
		SELECT t.id, t.user_id, t.group_id, t.t_type, t.amount, t.category_id, t.description, t.created_at,
		       COALESCE(c.name, ''), u.username
		FROM transactions t
		LEFT JOIN categories c ON t.category_id = c.id
		JOIN users u ON t.user_id = u.id
		WHERE t.user_id = $1 AND t.group_id IS NULL
		ORDER BY t.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list personal transactions: %w", err)
	}
	defer rows.Close()

	return scanRows(rows)
}

// ListGroup retrieves all transactions shared with a group across every
// member, newest first
func (r *Repository) ListGroup(ctx context.Context, groupID int64) ([]*transaction.Transaction, error) {
	query := `
		SELECT t.id, t.user_id, t.group_id, t.t_type, t.amount, t.category_id, t.description, t.created_at,
		       COALESCE(c.name, ''), u.username
		FROM transactions t
		LEFT JOIN categories c ON t.category_id = c.id
		JOIN users u ON t.user_id = u.id
		WHERE t.group_id = $1
		ORDER BY t.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group transactions: %w", err)
	}
	defer rows.Close()

	return scanRows(rows)
}

// FirstMembership resolves the user's first group by membership insertion
// order, returning zero values when the user belongs to no group
func (r *Repository) FirstMembership(ctx context.Context, userID int64) (int64, string, error) {
	query := `
		SELECT g.id, g.name
		FROM group_members gm
		JOIN groups g ON gm.group_id = g.id
		WHERE gm.user_id = $1
		ORDER BY gm.id
		LIMIT 1
	`

	var groupID int64
	var name string
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&groupID, &name)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, "", nil
		}
		return 0, "", fmt.Errorf("failed to resolve membership: %w", err)
	}

	return groupID, name, nil
}

func scanRows(rows *sql.Rows) ([]*transaction.Transaction, error) {
	var transactions []*transaction.Transaction
	for rows.Next() {
		t := &transaction.Transaction{}
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
			&t.Username,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}
