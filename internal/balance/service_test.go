package balance

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/frognance/frognance/internal/transaction"
)

type membership struct {
	id      int64
	userID  int64
	groupID int64
}

// fakeStore holds transactions and memberships in memory
type fakeStore struct {
	transactions []*transaction.Transaction
	memberships  []membership
	groupNames   map[int64]string
	nextID       int64
	now          time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		groupNames: map[int64]string{},
		now:        time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakeStore) add(userID int64, groupID *int64, tType transaction.Type, amount string) *transaction.Transaction {
	f.nextID++
	f.now = f.now.Add(time.Minute)
	t := &transaction.Transaction{
		ID:        f.nextID,
		UserID:    userID,
		GroupID:   groupID,
		Type:      tType,
		Amount:    decimal.RequireFromString(amount),
		CreatedAt: f.now,
	}
	f.transactions = append(f.transactions, t)
	return t
}

func (f *fakeStore) join(userID, groupID int64, name string) {
	f.memberships = append(f.memberships, membership{
		id:      int64(len(f.memberships) + 1),
		userID:  userID,
		groupID: groupID,
	})
	f.groupNames[groupID] = name
}

func (f *fakeStore) ListPersonal(_ context.Context, userID int64) ([]*transaction.Transaction, error) {
	var out []*transaction.Transaction
	for _, t := range f.transactions {
		if t.UserID == userID && t.GroupID == nil {
			out = append(out, t)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (f *fakeStore) ListGroup(_ context.Context, groupID int64) ([]*transaction.Transaction, error) {
	var out []*transaction.Transaction
	for _, t := range f.transactions {
		if t.GroupID != nil && *t.GroupID == groupID {
			out = append(out, t)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (f *fakeStore) FirstMembership(_ context.Context, userID int64) (int64, string, error) {
	for _, m := range f.memberships {
		if m.userID == userID {
			return m.groupID, f.groupNames[m.groupID], nil
		}
	}
	return 0, "", nil
}

func sortNewestFirst(transactions []*transaction.Transaction) {
	sort.Slice(transactions, func(i, j int) bool {
		return transactions[i].CreatedAt.After(transactions[j].CreatedAt)
	})
}

func groupID(id int64) *int64 { return &id }

func TestPersonalBalanceEmpty(t *testing.T) {
	svc := NewService(newFakeStore())

	summary, err := svc.Personal(context.Background(), 1)
	if err != nil {
		t.Fatalf("Personal failed: %v", err)
	}
	if len(summary.Transactions) != 0 {
		t.Errorf("expected no transactions, got %d", len(summary.Transactions))
	}
	if !summary.Income.IsZero() || !summary.Expense.IsZero() || !summary.Net.IsZero() {
		t.Errorf("expected all-zero totals, got income=%s expense=%s net=%s",
			summary.Income, summary.Expense, summary.Net)
	}
}

func TestPersonalBalanceTotals(t *testing.T) {
	store := newFakeStore()
	store.add(1, nil, transaction.TypeIncome, "100")
	store.add(1, nil, transaction.TypeIncome, "50")
	store.add(1, nil, transaction.TypeExpense, "30")
	svc := NewService(store)

	summary, err := svc.Personal(context.Background(), 1)
	if err != nil {
		t.Fatalf("Personal failed: %v", err)
	}

	if summary.Income.String() != "150" {
		t.Errorf("income: expected 150, got %s", summary.Income)
	}
	if summary.Expense.String() != "30" {
		t.Errorf("expense: expected 30, got %s", summary.Expense)
	}
	if summary.Net.String() != "120" {
		t.Errorf("net: expected 120, got %s", summary.Net)
	}
}

func TestPersonalBalanceExactDecimals(t *testing.T) {
	store := newFakeStore()
	// 0.1 + 0.2 style drift must not appear
	store.add(1, nil, transaction.TypeIncome, "0.10")
	store.add(1, nil, transaction.TypeIncome, "0.20")
	store.add(1, nil, transaction.TypeExpense, "0.30")
	svc := NewService(store)

	summary, _ := svc.Personal(context.Background(), 1)
	if !summary.Net.IsZero() {
		t.Errorf("net: expected exactly 0, got %s", summary.Net)
	}
}

func TestPersonalExcludesGroupTransactions(t *testing.T) {
	store := newFakeStore()
	store.join(1, 10, "Trip")
	store.add(1, nil, transaction.TypeIncome, "100")
	store.add(1, groupID(10), transaction.TypeIncome, "999")
	svc := NewService(store)

	summary, _ := svc.Personal(context.Background(), 1)
	if len(summary.Transactions) != 1 {
		t.Fatalf("expected 1 personal transaction, got %d", len(summary.Transactions))
	}
	if summary.Income.String() != "100" {
		t.Errorf("income: expected 100, got %s", summary.Income)
	}
}

func TestGroupBalanceNoMembership(t *testing.T) {
	svc := NewService(newFakeStore())

	summary, err := svc.Group(context.Background(), 1)
	if err != nil {
		t.Fatalf("Group failed: %v", err)
	}
	if summary != nil {
		t.Errorf("expected nil summary, got %+v", summary)
	}
}

func TestGroupBalanceSpansMembers(t *testing.T) {
	store := newFakeStore()
	store.join(1, 10, "Trip")
	store.join(2, 10, "Trip")
	store.add(1, groupID(10), transaction.TypeIncome, "100")
	store.add(2, groupID(10), transaction.TypeExpense, "40")
	store.add(2, nil, transaction.TypeExpense, "500") // personal, invisible here
	svc := NewService(store)

	for _, userID := range []int64{1, 2} {
		summary, err := svc.Group(context.Background(), userID)
		if err != nil {
			t.Fatalf("Group(%d) failed: %v", userID, err)
		}
		if summary == nil {
			t.Fatalf("Group(%d): expected a summary", userID)
		}
		if summary.GroupID != 10 || summary.GroupName != "Trip" {
			t.Errorf("Group(%d): unexpected group %d %q", userID, summary.GroupID, summary.GroupName)
		}
		if len(summary.Transactions) != 2 {
			t.Errorf("Group(%d): expected 2 transactions, got %d", userID, len(summary.Transactions))
		}
		if summary.Net.String() != "60" {
			t.Errorf("Group(%d): net expected 60, got %s", userID, summary.Net)
		}
	}
}

func TestGroupBalancePicksFirstMembership(t *testing.T) {
	store := newFakeStore()
	store.join(1, 10, "Trip")
	store.join(1, 20, "Flat")
	store.add(1, groupID(20), transaction.TypeIncome, "75")
	svc := NewService(store)

	summary, _ := svc.Group(context.Background(), 1)
	if summary.GroupID != 10 {
		t.Errorf("expected the first membership's group, got %d", summary.GroupID)
	}
}

func TestSummariesNewestFirst(t *testing.T) {
	store := newFakeStore()
	first := store.add(1, nil, transaction.TypeIncome, "1")
	second := store.add(1, nil, transaction.TypeIncome, "2")
	svc := NewService(store)

	summary, _ := svc.Personal(context.Background(), 1)
	if summary.Transactions[0].ID != second.ID || summary.Transactions[1].ID != first.ID {
		t.Errorf("expected newest first, got %d then %d",
			summary.Transactions[0].ID, summary.Transactions[1].ID)
	}
}
