package invitation

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"
)

// fakeStore is an in-memory Store mirroring the constraints the real
// repository gets from the schema
type fakeStore struct {
	groups      map[int64]bool
	users       map[string]int64
	members     map[int64]map[int64]string // groupID -> userID -> role
	invitations map[int64]*Invitation
	nextID      int64
	now         time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		groups:      make(map[int64]bool),
		users:       make(map[string]int64),
		members:     make(map[int64]map[int64]string),
		invitations: make(map[int64]*Invitation),
		now:         time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakeStore) addGroup(id int64) {
	f.groups[id] = true
	f.members[id] = make(map[int64]string)
}

func (f *fakeStore) addUser(username string, id int64) {
	f.users[username] = id
}

func (f *fakeStore) GroupExists(_ context.Context, groupID int64) (bool, error) {
	return f.groups[groupID], nil
}

func (f *fakeStore) UserIDByUsername(_ context.Context, username string) (int64, error) {
	return f.users[username], nil
}

func (f *fakeStore) IsAdmin(_ context.Context, groupID, userID int64) (bool, error) {
	return f.members[groupID][userID] == "admin", nil
}

func (f *fakeStore) IsMember(_ context.Context, groupID, userID int64) (bool, error) {
	_, ok := f.members[groupID][userID]
	return ok, nil
}

func (f *fakeStore) HasPending(_ context.Context, groupID, toUserID int64) (bool, error) {
	for _, inv := range f.invitations {
		if inv.GroupID == groupID && inv.ToUserID == toUserID && inv.Status == StatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) Create(_ context.Context, fromUserID, toUserID, groupID int64) (*Invitation, error) {
	f.nextID++
	f.now = f.now.Add(time.Minute)
	inv := &Invitation{
		ID:         f.nextID,
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		GroupID:    groupID,
		Status:     StatusPending,
		CreatedAt:  f.now,
	}
	f.invitations[inv.ID] = inv
	return inv, nil
}

func (f *fakeStore) GetByIDForUser(_ context.Context, id, toUserID int64) (*Invitation, error) {
	inv := f.invitations[id]
	if inv == nil || inv.ToUserID != toUserID {
		return nil, nil
	}
	copied := *inv
	return &copied, nil
}

func (f *fakeStore) Accept(_ context.Context, id int64) (bool, error) {
	inv := f.invitations[id]
	if inv == nil || inv.Status != StatusPending {
		return false, nil
	}
	inv.Status = StatusAccepted
	f.members[inv.GroupID][inv.ToUserID] = "member"
	return true, nil
}

func (f *fakeStore) Reject(_ context.Context, id int64) (bool, error) {
	inv := f.invitations[id]
	if inv == nil || inv.Status != StatusPending {
		return false, nil
	}
	inv.Status = StatusRejected
	return true, nil
}

func (f *fakeStore) ListPending(_ context.Context, userID int64) ([]*Invitation, error) {
	var pending []*Invitation
	for _, inv := range f.invitations {
		if inv.ToUserID == userID && inv.Status == StatusPending {
			pending = append(pending, inv)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CreatedAt.After(pending[j].CreatedAt)
	})
	return pending, nil
}

// setup: group 10 with user 1 as admin, user 2 as plain member, user 3
// outside the group
func setup() (*fakeStore, *Service) {
	store := newFakeStore()
	store.addGroup(10)
	store.members[10][1] = "admin"
	store.members[10][2] = "member"
	store.addUser("alice", 1)
	store.addUser("bob", 2)
	store.addUser("carol", 3)
	return store, NewService(store)
}

func TestInvite(t *testing.T) {
	_, svc := setup()

	inv, err := svc.Invite(context.Background(), 1, &InviteRequest{GroupID: 10, ToUsername: "carol"})
	if err != nil {
		t.Fatalf("Invite failed: %v", err)
	}
	if inv.Status != StatusPending {
		t.Errorf("status: expected pending, got %s", inv.Status)
	}
	if inv.ToUserID != 3 || inv.FromUserID != 1 {
		t.Errorf("unexpected parties: from %d to %d", inv.FromUserID, inv.ToUserID)
	}
}

func TestInviteValidation(t *testing.T) {
	_, svc := setup()
	ctx := context.Background()

	tests := []struct {
		name    string
		actorID int64
		req     *InviteRequest
		want    error
	}{
		{"unknown group", 1, &InviteRequest{GroupID: 99, ToUsername: "carol"}, ErrGroupNotFound},
		{"non-admin actor", 2, &InviteRequest{GroupID: 10, ToUsername: "carol"}, ErrNotAdmin},
		{"outsider actor", 3, &InviteRequest{GroupID: 10, ToUsername: "carol"}, ErrNotAdmin},
		{"unknown username", 1, &InviteRequest{GroupID: 10, ToUsername: "nobody"}, ErrUnknownUsername},
		{"already member", 1, &InviteRequest{GroupID: 10, ToUsername: "bob"}, ErrAlreadyMember},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Invite(ctx, tt.actorID, tt.req); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestInviteDuplicatePending(t *testing.T) {
	_, svc := setup()
	ctx := context.Background()

	if _, err := svc.Invite(ctx, 1, &InviteRequest{GroupID: 10, ToUsername: "carol"}); err != nil {
		t.Fatalf("Invite failed: %v", err)
	}
	if _, err := svc.Invite(ctx, 1, &InviteRequest{GroupID: 10, ToUsername: "carol"}); !errors.Is(err, ErrAlreadyInvited) {
		t.Errorf("expected ErrAlreadyInvited, got %v", err)
	}
}

func TestAcceptCreatesMembership(t *testing.T) {
	store, svc := setup()
	ctx := context.Background()

	inv, _ := svc.Invite(ctx, 1, &InviteRequest{GroupID: 10, ToUsername: "carol"})

	accepted, err := svc.Accept(ctx, 3, inv.ID)
	if err != nil {
		t.Fatalf("Accept failed: %v", err)
	}
	if accepted.Status != StatusAccepted {
		t.Errorf("status: expected accepted, got %s", accepted.Status)
	}
	if store.members[10][3] != "member" {
		t.Errorf("expected member-role membership, got %q", store.members[10][3])
	}
}

func TestAcceptIsTerminal(t *testing.T) {
	store, svc := setup()
	ctx := context.Background()

	inv, _ := svc.Invite(ctx, 1, &InviteRequest{GroupID: 10, ToUsername: "carol"})
	if _, err := svc.Accept(ctx, 3, inv.ID); err != nil {
		t.Fatalf("Accept failed: %v", err)
	}

	if _, err := svc.Accept(ctx, 3, inv.ID); !errors.Is(err, ErrAlreadyProcessed) {
		t.Errorf("second accept: expected ErrAlreadyProcessed, got %v", err)
	}
	if _, err := svc.Reject(ctx, 3, inv.ID); !errors.Is(err, ErrAlreadyProcessed) {
		t.Errorf("reject after accept: expected ErrAlreadyProcessed, got %v", err)
	}
	if len(store.members[10]) != 3 {
		t.Errorf("expected no extra memberships, got %d", len(store.members[10]))
	}
}

func TestRejectCreatesNoMembership(t *testing.T) {
	store, svc := setup()
	ctx := context.Background()

	inv, _ := svc.Invite(ctx, 1, &InviteRequest{GroupID: 10, ToUsername: "carol"})

	rejected, err := svc.Reject(ctx, 3, inv.ID)
	if err != nil {
		t.Fatalf("Reject failed: %v", err)
	}
	if rejected.Status != StatusRejected {
		t.Errorf("status: expected rejected, got %s", rejected.Status)
	}
	if _, ok := store.members[10][3]; ok {
		t.Error("reject must not create a membership")
	}

	if _, err := svc.Accept(ctx, 3, inv.ID); !errors.Is(err, ErrAlreadyProcessed) {
		t.Errorf("accept after reject: expected ErrAlreadyProcessed, got %v", err)
	}
}

func TestResolveRequiresAddressee(t *testing.T) {
	_, svc := setup()
	ctx := context.Background()

	inv, _ := svc.Invite(ctx, 1, &InviteRequest{GroupID: 10, ToUsername: "carol"})

	// bob tries to accept carol's invitation
	if _, err := svc.Accept(ctx, 2, inv.ID); !errors.Is(err, ErrInvitationNotFound) {
		t.Errorf("expected ErrInvitationNotFound, got %v", err)
	}
	if _, err := svc.Accept(ctx, 3, 999); !errors.Is(err, ErrInvitationNotFound) {
		t.Errorf("unknown id: expected ErrInvitationNotFound, got %v", err)
	}
}

func TestListPendingNewestFirst(t *testing.T) {
	store, svc := setup()
	ctx := context.Background()

	store.addGroup(11)
	store.members[11][1] = "admin"

	first, _ := svc.Invite(ctx, 1, &InviteRequest{GroupID: 10, ToUsername: "carol"})
	second, _ := svc.Invite(ctx, 1, &InviteRequest{GroupID: 11, ToUsername: "carol"})

	pending, err := svc.ListPending(ctx, 3)
	if err != nil {
		t.Fatalf("ListPending failed: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending, got %d", len(pending))
	}
	if pending[0].ID != second.ID || pending[1].ID != first.ID {
		t.Errorf("expected newest first, got %d then %d", pending[0].ID, pending[1].ID)
	}

	svc.Reject(ctx, 3, first.ID)
	pending, _ = svc.ListPending(ctx, 3)
	if len(pending) != 1 {
		t.Errorf("resolved invitations must not be listed, got %d", len(pending))
	}
}

// The full admission loop: invite, accept, remove, re-invite.
func TestReinviteAfterRemoval(t *testing.T) {
	store, svc := setup()
	ctx := context.Background()

	inv, err := svc.Invite(ctx, 1, &InviteRequest{GroupID: 10, ToUsername: "carol"})
	if err != nil {
		t.Fatalf("Invite failed: %v", err)
	}
	if _, err := svc.Accept(ctx, 3, inv.ID); err != nil {
		t.Fatalf("Accept failed: %v", err)
	}

	// Admin removes carol
	delete(store.members[10], 3)

	// The prior invitation is accepted, not pending, so a fresh one is allowed
	again, err := svc.Invite(ctx, 1, &InviteRequest{GroupID: 10, ToUsername: "carol"})
	if err != nil {
		t.Fatalf("re-invite failed: %v", err)
	}
	if again.ID == inv.ID {
		t.Error("expected a new invitation row")
	}
	if again.Status != StatusPending {
		t.Errorf("status: expected pending, got %s", again.Status)
	}
}
