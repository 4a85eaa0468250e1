package transaction

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/frognance/frognance/internal/category"
	"github.com/frognance/frognance/internal/group"
)

// Common errors
var (
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrAmountNotPositive    = errors.New("amount must be positive")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryTypeMismatch = errors.New("category type does not match transaction type")
	ErrNotGroupMember       = errors.New("you are not a member of this group")
)

// Store is the persistence interface the transaction service depends on
type Store interface {
	Create(ctx context.Context, userID int64, req *CreateTransactionRequest) (*Transaction, error)
	GetByOwner(ctx context.Context, id, userID int64) (*Transaction, error)
	ListByType(ctx context.Context, userID int64, tType Type) ([]*Transaction, error)
}

// CategoryStore resolves category references for validation
type CategoryStore interface {
	GetByID(ctx context.Context, id int64) (*category.Category, error)
}

// MembershipStore checks group membership for shared transactions
type MembershipStore interface {
	GetMember(ctx context.Context, groupID, userID int64) (*group.Member, error)
}

// Service handles transaction business logic
type Service struct {
	store       Store
	categories  CategoryStore
	memberships MembershipStore
}

// NewService creates a new transaction service with dependencies injected
func NewService(store Store, categories CategoryStore, memberships MembershipStore) *Service {
	return &Service{
		store:       store,
		categories:  categories,
		memberships: memberships,
	}
}

// Create records a new transaction for the caller. The category, if set,
// must be visible to the caller and agree with the transaction type; the
// group, if set, must be one the caller belongs to.
func (s *Service) Create(ctx context.Context, userID int64, req *CreateTransactionRequest) (*Transaction, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrAmountNotPositive
	}

	if req.CategoryID != nil {
		cat, err := s.categories.GetByID(ctx, *req.CategoryID)
		if err != nil {
			return nil, err
		}
		if cat == nil || (cat.UserID != nil && *cat.UserID != userID) {
			return nil, ErrCategoryNotFound
		}
		if cat.IsIncome != (req.Type == TypeIncome) {
			return nil, ErrCategoryTypeMismatch
		}
	}

	if req.GroupID != nil {
		member, err := s.memberships.GetMember(ctx, *req.GroupID, userID)
		if err != nil {
			return nil, err
		}
		if member == nil {
			return nil, ErrNotGroupMember
		}
	}

	t, err := s.store.Create(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	slog.Info("transaction recorded",
		"transaction_id", t.ID,
		"user_id", userID,
		"type", t.Type,
		"amount", t.Amount.StringFixed(2),
	)
	return t, nil
}

// GetByID retrieves one of the caller's own transactions
func (s *Service) GetByID(ctx context.Context, userID, id int64) (*Transaction, error) {
	t, err := s.store.GetByOwner(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTransactionNotFound
	}
	return t, nil
}

// ListByType retrieves the caller's transactions of one type with their
// exact total
func (s *Service) ListByType(ctx context.Context, userID int64, tType Type) ([]*Transaction, decimal.Decimal, error) {
	transactions, err := s.store.ListByType(ctx, userID, tType)
	if err != nil {
		return nil, decimal.Zero, err
	}

	total := decimal.Zero
	for _, t := range transactions {
		total = total.Add(t.Amount)
	}

	return transactions, total, nil
}
