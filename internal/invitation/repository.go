package invitation

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles invitation persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new invitation repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// GroupExists reports whether a group with the given ID exists
func (r *Repository) GroupExists(ctx context.Context, groupID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM groups WHERE id = $1)`, groupID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check group: %w", err)
	}
	return exists, nil
}

// UserIDByUsername resolves a username to a user ID, 0 if unknown
func (r *Repository) UserIDByUsername(ctx context.Context, username string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM users WHERE username = $1`, username,
	).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to resolve username: %w", err)
	}
	return id, nil
}

// IsAdmin reports whether the user holds an admin membership in the group
func (r *Repository) IsAdmin(ctx context.Context, groupID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM group_members WHERE group_id = $1 AND user_id = $2 AND role = 'admin')`,
		groupID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check admin role: %w", err)
	}
	return exists, nil
}

// IsMember reports whether the user belongs to the group
func (r *Repository) IsMember(ctx context.Context, groupID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM group_members WHERE group_id = $1 AND user_id = $2)`,
		groupID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return exists, nil
}

// HasPending reports whether a pending invitation to the user for the group
// exists
func (r *Repository) HasPending(ctx context.Context, groupID, toUserID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM invitations WHERE group_id = $1 AND to_user_id = $2 AND status = 'pending')`,
		groupID, toUserID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check pending invitation: %w", err)
	}
	return exists, nil
}

// Create inserts a pending invitation. The partial unique index on
// (to_user_id, group_id) WHERE status = 'pending' rejects duplicates racing
// past the HasPending check.
func (r *Repository) Create(ctx context.Context, fromUserID, toUserID, groupID int64) (*Invitation, error) {
	query := `
		INSERT INTO invitations (from_user_id, to_user_id, group_id)
		VALUES ($1, $2, $3)
		RETURNING id, from_user_id, to_user_id, group_id, status, created_at
	`

	inv := &Invitation{}
	err := r.db.QueryRowContext(ctx, query, fromUserID, toUserID, groupID).Scan(
		&inv.ID,
		&inv.FromUserID,
		&inv.ToUserID,
		&inv.GroupID,
		&inv.Status,
		&inv.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	return inv, nil
}

// GetByIDForUser retrieves an invitation by ID, restricted to its addressee
func (r *Repository) GetByIDForUser(ctx context.Context, id, toUserID int64) (*Invitation, error) {
	query := `
		SELECT i.id, i.from_user_id, i.to_user_id, i.group_id, i.status, i.created_at, u.username, g.name
		FROM invitations i
		JOIN users u ON i.from_user_id = u.id
		JOIN groups g ON i.group_id = g.id
		WHERE i.id = $1 AND i.to_user_id = $2
	`

	inv := &Invitation{}
	err := r.db.QueryRowContext(ctx, query, id, toUserID).Scan(
		&inv.ID,
		&inv.FromUserID,
		&inv.ToUserID,
		&inv.GroupID,
		&inv.Status,
		&inv.CreatedAt,
		&inv.FromUsername,
		&inv.GroupName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}

	return inv, nil
}

// Accept flips a pending invitation to accepted and creates the member-role
// membership in one transaction. Returns false when the invitation was no
// longer pending, leaving nothing changed.
func (r *Repository) Accept(ctx context.Context, id int64) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var toUserID, groupID int64
	err = tx.QueryRowContext(ctx,
		`UPDATE invitations SET status = 'accepted'
		 WHERE id = $1 AND status = 'pending'
		 RETURNING to_user_id, group_id`,
		id,
	).Scan(&toUserID, &groupID)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to accept invitation: %w", err)
	}

	// The invitee may have joined through another path in the meantime;
	// accepting still succeeds with the existing membership.
	_, err = tx.ExecContext(ctx,
		`INSERT INTO group_members (group_id, user_id, role)
		 VALUES ($1, $2, 'member')
		 ON CONFLICT (group_id, user_id) DO NOTHING`,
		groupID, toUserID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to create membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit acceptance: %w", err)
	}

	return true, nil
}

// Reject flips a pending invitation to rejected. Returns false when the
// invitation was no longer pending.
func (r *Repository) Reject(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE invitations SET status = 'rejected' WHERE id = $1 AND status = 'pending'`,
		id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to reject invitation: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// ListPending retrieves the user's pending invitations, newest first
func (r *Repository) ListPending(ctx context.Context, userID int64) ([]*Invitation, error) {
	query := `
		SELECT i.id, i.from_user_id, i.to_user_id, i.group_id, i.status, i.created_at, u.username, g.name
		FROM invitations i
		JOIN users u ON i.from_user_id = u.id
		JOIN groups g ON i.group_id = g.id
		WHERE i.to_user_id = $1 AND i.status = 'pending'
		ORDER BY i.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	defer rows.Close()

	var invitations []*Invitation
	for rows.Next() {
		inv := &Invitation{}
		if err := rows.Scan(
			&inv.ID,
			&inv.FromUserID,
			&inv.ToUserID,
			&inv.GroupID,
			&inv.Status,
			&inv.CreatedAt,
			&inv.FromUsername,
			&inv.GroupName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan invitation: %w", err)
		}
		invitations = append(invitations, inv)
	}

	return invitations, rows.Err()
}
