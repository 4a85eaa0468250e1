package group

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/frognance/frognance/internal/database"
)

// Common errors
var (
	ErrGroupNotFound     = errors.New("group not found")
	ErrMemberNotFound    = errors.New("member not found")
	ErrEmptyGroupName    = errors.New("group name must not be empty")
	ErrNotMember         = errors.New("you are not a member of this group")
	ErrNotAdmin          = errors.New("only an admin can perform this action")
	ErrCannotRemoveAdmin = errors.New("cannot remove an admin")
	ErrCannotRemoveSelf  = errors.New("cannot remove yourself, leave the group instead")
)

// Store is the persistence interface the group service depends on
type Store interface {
	CreateWithAdmin(ctx context.Context, name string, creatorID int64) (*Group, error)
	GetByID(ctx context.Context, id int64) (*Group, error)
	AddMember(ctx context.Context, groupID, userID int64, role MemberRole) (*Member, error)
	GetMember(ctx context.Context, groupID, userID int64) (*Member, error)
	GetMemberByID(ctx context.Context, groupID, memberID int64) (*Member, error)
	ListMembers(ctx context.Context, groupID int64) ([]*Member, error)
	ListMembershipsByUser(ctx context.Context, userID int64) ([]*Member, error)
	DeleteMembership(ctx context.Context, groupID, userID int64) (bool, error)
	DeleteMemberByID(ctx context.Context, memberID int64) error
	CountAdmins(ctx context.Context, groupID int64) (int, error)
}

// Service handles group and membership business logic
type Service struct {
	store Store
}

// NewService creates a new group service
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create creates a group and atomically adds the creator as admin
func (s *Service) Create(ctx context.Context, creatorID int64, req *CreateGroupRequest) (*Group, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyGroupName
	}

	group, err := s.store.CreateWithAdmin(ctx, req.Name, creatorID)
	if err != nil {
		return nil, err
	}

	slog.Info("group created", "group_id", group.ID, "creator_id", creatorID)
	return group, nil
}

// Join adds the caller to a group as a member. Joining a group the caller
// already belongs to is a no-op and returns the group unchanged.
func (s *Service) Join(ctx context.Context, userID, groupID int64) (*Group, error) {
	group, err := s.store.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	existing, err := s.store.GetMember(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return group, nil
	}

	if _, err := s.store.AddMember(ctx, groupID, userID, MemberRoleMember); err != nil {
		// A concurrent join beat us to the insert; same no-op path.
		if database.IsUniqueViolation(err) {
			return group, nil
		}
		return nil, err
	}

	slog.Info("user joined group", "group_id", groupID, "user_id", userID)
	return group, nil
}

// Leave removes the caller's own membership and reports whether a removal
// occurred. An admin may leave like anyone else; no role is reassigned.
func (s *Service) Leave(ctx context.Context, userID, groupID int64) (bool, error) {
	member, err := s.store.GetMember(ctx, groupID, userID)
	if err != nil {
		return false, err
	}
	if member == nil {
		return false, nil
	}

	if member.Role == MemberRoleAdmin {
		admins, err := s.store.CountAdmins(ctx, groupID)
		if err != nil {
			return false, err
		}
		if admins == 1 {
			slog.Warn("last admin leaving group", "group_id", groupID, "user_id", userID)
		}
	}

	removed, err := s.store.DeleteMembership(ctx, groupID, userID)
	if err != nil {
		return false, err
	}

	if removed {
		slog.Info("user left group", "group_id", groupID, "user_id", userID)
	}
	return removed, nil
}

// RemoveMember lets a group admin remove another non-admin member
func (s *Service) RemoveMember(ctx context.Context, actorID, groupID, memberID int64) error {
	group, err := s.store.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if group == nil {
		return ErrGroupNotFound
	}

	actor, err := s.store.GetMember(ctx, groupID, actorID)
	if err != nil {
		return err
	}
	if actor == nil || actor.Role != MemberRoleAdmin {
		return ErrNotAdmin
	}

	target, err := s.store.GetMemberByID(ctx, groupID, memberID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrMemberNotFound
	}
	if target.UserID == actorID {
		return ErrCannotRemoveSelf
	}
	if target.Role == MemberRoleAdmin {
		return ErrCannotRemoveAdmin
	}

	if err := s.store.DeleteMemberByID(ctx, memberID); err != nil {
		return err
	}

	slog.Info("member removed", "group_id", groupID, "member_id", memberID, "actor_id", actorID)
	return nil
}

// Members lists a group's members for a caller who belongs to the group,
// admins first, then by join time
func (s *Service) Members(ctx context.Context, callerID, groupID int64) ([]*Member, error) {
	group, err := s.store.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	caller, err := s.store.GetMember(ctx, groupID, callerID)
	if err != nil {
		return nil, err
	}
	if caller == nil {
		return nil, ErrNotMember
	}

	return s.store.ListMembers(ctx, groupID)
}

// ListByUser lists the caller's own memberships, newest first
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]*Member, error) {
	return s.store.ListMembershipsByUser(ctx, userID)
}
