package invitation

import (
	"context"
	"errors"
	"log/slog"

	"github.com/frognance/frognance/internal/database"
)

// Common errors
var (
	ErrGroupNotFound      = errors.New("group not found")
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrNotAdmin           = errors.New("only an admin can invite")
	ErrUnknownUsername    = errors.New("no user with that username exists")
	ErrAlreadyMember      = errors.New("user is already a member of this group")
	ErrAlreadyInvited     = errors.New("a pending invitation for this user already exists")
	ErrAlreadyProcessed   = errors.New("invitation already processed")
)

// Store is the persistence interface the invitation service depends on
type Store interface {
	GroupExists(ctx context.Context, groupID int64) (bool, error)
	UserIDByUsername(ctx context.Context, username string) (int64, error)
	IsAdmin(ctx context.Context, groupID, userID int64) (bool, error)
	IsMember(ctx context.Context, groupID, userID int64) (bool, error)
	HasPending(ctx context.Context, groupID, toUserID int64) (bool, error)
	Create(ctx context.Context, fromUserID, toUserID, groupID int64) (*Invitation, error)
	GetByIDForUser(ctx context.Context, id, toUserID int64) (*Invitation, error)
	Accept(ctx context.Context, id int64) (bool, error)
	Reject(ctx context.Context, id int64) (bool, error)
	ListPending(ctx context.Context, userID int64) ([]*Invitation, error)
}

// Service handles the invitation workflow
type Service struct {
	store Store
}

// NewService creates a new invitation service
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Invite creates a pending invitation from a group admin to the named user
func (s *Service) Invite(ctx context.Context, actorID int64, req *InviteRequest) (*Invitation, error) {
	exists, err := s.store.GroupExists(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrGroupNotFound
	}

	isAdmin, err := s.store.IsAdmin(ctx, req.GroupID, actorID)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, ErrNotAdmin
	}

	toUserID, err := s.store.UserIDByUsername(ctx, req.ToUsername)
	if err != nil {
		return nil, err
	}
	if toUserID == 0 {
		return nil, ErrUnknownUsername
	}

	isMember, err := s.store.IsMember(ctx, req.GroupID, toUserID)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, ErrAlreadyMember
	}

	hasPending, err := s.store.HasPending(ctx, req.GroupID, toUserID)
	if err != nil {
		return nil, err
	}
	if hasPending {
		return nil, ErrAlreadyInvited
	}

	inv, err := s.store.Create(ctx, actorID, toUserID, req.GroupID)
	if err != nil {
		// Another admin created the same pending invitation concurrently.
		if database.IsUniqueViolation(err) {
			return nil, ErrAlreadyInvited
		}
		return nil, err
	}

	slog.Info("invitation created", "invitation_id", inv.ID, "group_id", req.GroupID, "to_user_id", toUserID)
	return inv, nil
}

// Accept resolves a pending invitation addressed to the caller, creating the
// membership atomically with the status flip
func (s *Service) Accept(ctx context.Context, inviteeID, invitationID int64) (*Invitation, error) {
	inv, err := s.store.GetByIDForUser(ctx, invitationID, inviteeID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, ErrInvitationNotFound
	}
	if inv.Status != StatusPending {
		return nil, ErrAlreadyProcessed
	}

	accepted, err := s.store.Accept(ctx, invitationID)
	if err != nil {
		return nil, err
	}
	if !accepted {
		return nil, ErrAlreadyProcessed
	}

	inv.Status = StatusAccepted
	slog.Info("invitation accepted", "invitation_id", invitationID, "user_id", inviteeID, "group_id", inv.GroupID)
	return inv, nil
}

// Reject resolves a pending invitation addressed to the caller without
// creating a membership
func (s *Service) Reject(ctx context.Context, inviteeID, invitationID int64) (*Invitation, error) {
	inv, err := s.store.GetByIDForUser(ctx, invitationID, inviteeID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, ErrInvitationNotFound
	}
	if inv.Status != StatusPending {
		return nil, ErrAlreadyProcessed
	}

	rejected, err := s.store.Reject(ctx, invitationID)
	if err != nil {
		return nil, err
	}
	if !rejected {
		return nil, ErrAlreadyProcessed
	}

	inv.Status = StatusRejected
	slog.Info("invitation rejected", "invitation_id", invitationID, "user_id", inviteeID)
	return inv, nil
}

// ListPending retrieves the caller's pending invitations, newest first
func (s *Service) ListPending(ctx context.Context, userID int64) ([]*Invitation, error) {
	return s.store.ListPending(ctx, userID)
}
