package balance

import (
	"context"

	"github.com/frognance/frognance/internal/transaction"
)

// Store is the persistence interface the balance service depends on
type Store interface {
	ListPersonal(ctx context.Context, userID int64) ([]*transaction.Transaction, error)
	ListGroup(ctx context.Context, groupID int64) ([]*transaction.Transaction, error)
	FirstMembership(ctx context.Context, userID int64) (int64, string, error)
}

// Service computes income/expense totals and net balances
type Service struct {
	store Store
}

// NewService creates a new balance service
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Personal aggregates the caller's personal transactions
func (s *Service) Personal(ctx context.Context, userID int64) (*Summary, error) {
	transactions, err := s.store.ListPersonal(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := summarize(transactions)
	return &summary, nil
}

// Group aggregates the transactions of the caller's group, across all of
// its members. When the caller belongs to several groups the first
// membership by insertion order wins; there is no primary-group concept.
// Returns nil when the caller belongs to no group.
func (s *Service) Group(ctx context.Context, userID int64) (*GroupSummary, error) {
	groupID, groupName, err := s.store.FirstMembership(ctx, userID)
	if err != nil {
		return nil, err
	}
	if groupID == 0 {
		return nil, nil
	}

	transactions, err := s.store.ListGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	return &GroupSummary{
		Summary:   summarize(transactions),
		GroupID:   groupID,
		GroupName: groupName,
	}, nil
}
