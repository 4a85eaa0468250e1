package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/frognance/frognance/internal/category"
	"github.com/frognance/frognance/internal/group"
)

type fakeStore struct {
	transactions []*Transaction
	nextID       int64
}

func (f *fakeStore) Create(_ context.Context, userID int64, req *CreateTransactionRequest) (*Transaction, error) {
	f.nextID++
	t := &Transaction{
		ID:          f.nextID,
		UserID:      userID,
		GroupID:     req.GroupID,
		Type:        req.Type,
		Amount:      req.Amount,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		CreatedAt:   time.Now(),
	}
	f.transactions = append(f.transactions, t)
	return t, nil
}

func (f *fakeStore) GetByOwner(_ context.Context, id, userID int64) (*Transaction, error) {
	for _, t := range f.transactions {
		if t.ID == id && t.UserID == userID {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ListByType(_ context.Context, userID int64, tType Type) ([]*Transaction, error) {
	var out []*Transaction
	for _, t := range f.transactions {
		if t.UserID == userID && t.Type == tType {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeCategories struct {
	categories map[int64]*category.Category
}

func (f *fakeCategories) GetByID(_ context.Context, id int64) (*category.Category, error) {
	return f.categories[id], nil
}

type fakeMemberships struct {
	members map[int64][]int64 // groupID -> userIDs
}

func (f *fakeMemberships) GetMember(_ context.Context, groupID, userID int64) (*group.Member, error) {
	for _, id := range f.members[groupID] {
		if id == userID {
			return &group.Member{GroupID: groupID, UserID: userID, Role: group.MemberRoleMember}, nil
		}
	}
	return nil, nil
}

func int64Ptr(v int64) *int64 { return &v }

func newService() (*Service, *fakeStore) {
	store := &fakeStore{}
	userID := int64(1)
	categories := &fakeCategories{categories: map[int64]*category.Category{
		100: {ID: 100, UserID: &userID, Name: "Salary", IsIncome: true},
		101: {ID: 101, UserID: &userID, Name: "Food", IsIncome: false},
		102: {ID: 102, Name: "Taxes", IsIncome: false}, // global
		103: {ID: 103, UserID: int64Ptr(2), Name: "Private", IsIncome: false},
	}}
	memberships := &fakeMemberships{members: map[int64][]int64{
		10: {1, 2},
	}}
	return NewService(store, categories, memberships), store
}

func TestCreatePersonal(t *testing.T) {
	svc, _ := newService()

	created, err := svc.Create(context.Background(), 1, &CreateTransactionRequest{
		Type:        TypeIncome,
		Amount:      decimal.RequireFromString("1500.50"),
		CategoryID:  int64Ptr(100),
		Description: "june salary",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.GroupID != nil {
		t.Error("expected a personal transaction")
	}
	if created.Amount.String() != "1500.5" {
		t.Errorf("amount: expected 1500.5, got %s", created.Amount)
	}
}

func TestCreateRejectsNonPositiveAmount(t *testing.T) {
	svc, _ := newService()

	for _, amount := range []string{"0", "-5"} {
		_, err := svc.Create(context.Background(), 1, &CreateTransactionRequest{
			Type:   TypeExpense,
			Amount: decimal.RequireFromString(amount),
		})
		if !errors.Is(err, ErrAmountNotPositive) {
			t.Errorf("amount %s: expected ErrAmountNotPositive, got %v", amount, err)
		}
	}
}

func TestCreateCategoryTypeMismatch(t *testing.T) {
	svc, _ := newService()

	// income category on an expense
	_, err := svc.Create(context.Background(), 1, &CreateTransactionRequest{
		Type:       TypeExpense,
		Amount:     decimal.RequireFromString("10"),
		CategoryID: int64Ptr(100),
	})
	if !errors.Is(err, ErrCategoryTypeMismatch) {
		t.Errorf("expected ErrCategoryTypeMismatch, got %v", err)
	}

	// expense category on an income
	_, err = svc.Create(context.Background(), 1, &CreateTransactionRequest{
		Type:       TypeIncome,
		Amount:     decimal.RequireFromString("10"),
		CategoryID: int64Ptr(101),
	})
	if !errors.Is(err, ErrCategoryTypeMismatch) {
		t.Errorf("expected ErrCategoryTypeMismatch, got %v", err)
	}
}

func TestCreateGlobalCategoryAllowed(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Create(context.Background(), 1, &CreateTransactionRequest{
		Type:       TypeExpense,
		Amount:     decimal.RequireFromString("10"),
		CategoryID: int64Ptr(102),
	})
	if err != nil {
		t.Errorf("global category should be usable, got %v", err)
	}
}

func TestCreateForeignCategoryHidden(t *testing.T) {
	svc, _ := newService()

	// Another user's category reads as not found, not as forbidden
	_, err := svc.Create(context.Background(), 1, &CreateTransactionRequest{
		Type:       TypeExpense,
		Amount:     decimal.RequireFromString("10"),
		CategoryID: int64Ptr(103),
	})
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCreateGroupRequiresMembership(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Create(context.Background(), 3, &CreateTransactionRequest{
		Type:    TypeExpense,
		Amount:  decimal.RequireFromString("10"),
		GroupID: int64Ptr(10),
	})
	if !errors.Is(err, ErrNotGroupMember) {
		t.Errorf("expected ErrNotGroupMember, got %v", err)
	}

	created, err := svc.Create(context.Background(), 1, &CreateTransactionRequest{
		Type:    TypeExpense,
		Amount:  decimal.RequireFromString("10"),
		GroupID: int64Ptr(10),
	})
	if err != nil {
		t.Fatalf("member should be able to share, got %v", err)
	}
	if created.GroupID == nil || *created.GroupID != 10 {
		t.Error("expected the group reference to be stored")
	}
}

func TestGetByIDOwnerOnly(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	created, _ := svc.Create(ctx, 1, &CreateTransactionRequest{
		Type:   TypeIncome,
		Amount: decimal.RequireFromString("10"),
	})

	if _, err := svc.GetByID(ctx, 1, created.ID); err != nil {
		t.Errorf("owner read failed: %v", err)
	}
	if _, err := svc.GetByID(ctx, 2, created.ID); !errors.Is(err, ErrTransactionNotFound) {
		t.Errorf("expected ErrTransactionNotFound for non-owner, got %v", err)
	}
}

func TestListByTypeTotals(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	amounts := []string{"100", "50"}
	for _, a := range amounts {
		svc.Create(ctx, 1, &CreateTransactionRequest{Type: TypeIncome, Amount: decimal.RequireFromString(a)})
	}
	svc.Create(ctx, 1, &CreateTransactionRequest{Type: TypeExpense, Amount: decimal.RequireFromString("30")})

	incomes, total, err := svc.ListByType(ctx, 1, TypeIncome)
	if err != nil {
		t.Fatalf("ListByType failed: %v", err)
	}
	if len(incomes) != 2 {
		t.Errorf("expected 2 incomes, got %d", len(incomes))
	}
	if total.String() != "150" {
		t.Errorf("total: expected 150, got %s", total)
	}
}
