package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

// Type distinguishes incomes from expenses
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Transaction represents a single financial entry. A nil GroupID means the
// entry is personal and visible only to its owner; otherwise it is shared
// with every member of the group.
type Transaction struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	GroupID     *int64          `json:"group_id,omitempty"`
	Type        Type            `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	CategoryID  *int64          `json:"category_id,omitempty"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`

	// Populated from JOIN
	CategoryName string `json:"category_name,omitempty"`
	Username     string `json:"username,omitempty"`
}
