package group

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles group and membership persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new group repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateWithAdmin inserts a group and its creator's admin membership in one
// transaction
func (r *Repository) CreateWithAdmin(ctx context.Context, name string, creatorID int64) (*Group, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	group := &Group{}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO groups (name) VALUES ($1) RETURNING id, name, created_at`,
		name,
	).Scan(&group.ID, &group.Name, &group.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO group_members (group_id, user_id, role) VALUES ($1, $2, $3)`,
		group.ID, creatorID, MemberRoleAdmin,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add creator as admin: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit group creation: %w", err)
	}

	return group, nil
}

// GetByID retrieves a group by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Group, error) {
	query := `SELECT id, name, created_at FROM groups WHERE id = $1`

	group := &Group{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&group.ID, &group.Name, &group.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	return group, nil
}

// AddMember inserts a membership row. A unique violation surfaces to the
// caller so concurrent joins can take the no-op path.
func (r *Repository) AddMember(ctx context.Context, groupID, userID int64, role MemberRole) (*Member, error) {
	query := `
		INSERT INTO group_members (group_id, user_id, role)
		VALUES ($1, $2, $3)
		RETURNING id, group_id, user_id, role, joined_at
	`

	member := &Member{}
	err := r.db.QueryRowContext(ctx, query, groupID, userID, role).Scan(
		&member.ID,
		&member.GroupID,
		&member.UserID,
		&member.Role,
		&member.JoinedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	return member, nil
}

// GetMember retrieves a membership by (group, user)
func (r *Repository) GetMember(ctx context.Context, groupID, userID int64) (*Member, error) {
	query := `
		SELECT gm.id, gm.group_id, gm.user_id, gm.role, gm.joined_at, u.username
		FROM group_members gm
		JOIN users u ON gm.user_id = u.id
		WHERE gm.group_id = $1 AND gm.user_id = $2
	`
	return r.scanMember(r.db.QueryRowContext(ctx, query, groupID, userID))
}

// GetMemberByID retrieves a membership by its row ID, scoped to a group
func (r *Repository) GetMemberByID(ctx context.Context, groupID, memberID int64) (*Member, error) {
	query := `
		SELECT gm.id, gm.group_id, gm.user_id, gm.role, gm.joined_at, u.username
		FROM group_members gm
		JOIN users u ON gm.user_id = u.id
		WHERE gm.group_id = $1 AND gm.id = $2
	`
	return r.scanMember(r.db.QueryRowContext(ctx, query, groupID, memberID))
}

// ListMembers retrieves all members of a group, admins first, then by join
// time ascending
func (r *Repository) ListMembers(ctx context.Context, groupID int64) ([]*Member, error) {
	query := `
		SELECT gm.id, gm.group_id, gm.user_id, gm.role, gm.joined_at, u.username
		FROM group_members gm
		JOIN users u ON gm.user_id = u.id
		WHERE gm.group_id = $1
		ORDER BY gm.role, gm.joined_at
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*Member
	for rows.Next() {
		member := &Member{}
		if err := rows.Scan(
			&member.ID,
			&member.GroupID,
			&member.UserID,
			&member.Role,
			&member.JoinedAt,
			&member.Username,
		); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, member)
	}

	return members, rows.Err()
}

// ListMembershipsByUser retrieves the caller's memberships, newest first
func (r *Repository) ListMembershipsByUser(ctx context.Context, userID int64) ([]*Member, error) {
	query := `
		SELECT gm.id, gm.group_id, gm.user_id, gm.role, gm.joined_at, g.name
		FROM group_members gm
		JOIN groups g ON gm.group_id = g.id
		WHERE gm.user_id = $1
		ORDER BY gm.joined_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	defer rows.Close()

	var members []*Member
	for rows.Next() {
		member := &Member{}
		if err := rows.Scan(
			&member.ID,
			&member.GroupID,
			&member.UserID,
			&member.Role,
			&member.JoinedAt,
			&member.GroupName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		members = append(members, member)
	}

	return members, rows.Err()
}

// DeleteMembership removes the (group, user) membership and reports whether
// a row was removed
func (r *Repository) DeleteMembership(ctx context.Context, groupID, userID int64) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM group_members WHERE group_id = $1 AND user_id = $2`,
		groupID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete membership: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// DeleteMemberByID removes a membership by its row ID
func (r *Repository) DeleteMemberByID(ctx context.Context, memberID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM group_members WHERE id = $1`, memberID)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("member not found")
	}

	return nil
}

// CountAdmins counts admin memberships in a group
func (r *Repository) CountAdmins(ctx context.Context, groupID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM group_members WHERE group_id = $1 AND role = $2`,
		groupID, MemberRoleAdmin,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}
	return count, nil
}

func (r *Repository) scanMember(row *sql.Row) (*Member, error) {
	member := &Member{}
	err := row.Scan(
		&member.ID,
		&member.GroupID,
		&member.UserID,
		&member.Role,
		&member.JoinedAt,
		&member.Username,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return member, nil
}
