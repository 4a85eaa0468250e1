package category

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles category persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new category repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new category owned by the given user
func (r *Repository) Create(ctx context.Context, userID int64, req *CreateCategoryRequest) (*Category, error) {
	query := `
		INSERT INTO categories (user_id, group_id, name, icon, is_income)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, group_id, name, icon, is_income
	`

	category := &Category{}
	err := r.db.QueryRowContext(ctx, query, userID, req.GroupID, req.Name, req.Icon, req.IsIncome).Scan(
		&category.ID,
		&category.UserID,
		&category.GroupID,
		&category.Name,
		&category.Icon,
		&category.IsIncome,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

// GetByID retrieves a category by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Category, error) {
	query := `
		SELECT id, user_id, group_id, name, icon, is_income
		FROM categories
		WHERE id = $1
	`

	category := &Category{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&category.ID,
		&category.UserID,
		&category.GroupID,
		&category.Name,
		&category.Icon,
		&category.IsIncome,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return category, nil
}

// ListVisible retrieves the user's own categories plus the global ones
func (r *Repository) ListVisible(ctx context.Context, userID int64) ([]*Category, error) {
	query := `
		SELECT id, user_id, group_id, name, icon, is_income
		FROM categories
		WHERE user_id = $1 OR user_id IS NULL
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		category := &Category{}
		if err := rows.Scan(
			&category.ID,
			&category.UserID,
			&category.GroupID,
			&category.Name,
			&category.Icon,
			&category.IsIncome,
		); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

// Delete removes a category owned by the user. Transactions referencing it
// keep their rows, the FK nulls the reference.
func (r *Repository) Delete(ctx context.Context, userID, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM categories WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}
