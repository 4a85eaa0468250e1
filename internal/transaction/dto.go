package transaction

import "github.com/shopspring/decimal"

// CreateTransactionRequest represents the request to record a transaction
type CreateTransactionRequest struct {
	Type        Type            `json:"type" validate:"required,oneof=income expense"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	CategoryID  *int64          `json:"category_id,omitempty"`
	Description string          `json:"description,omitempty" validate:"max=1000"`
	GroupID     *int64          `json:"group_id,omitempty"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID           int64  `json:"id"`
	Type         Type   `json:"type"`
	Amount       string `json:"amount"`
	CategoryID   *int64 `json:"category_id,omitempty"`
	CategoryName string `json:"category_name,omitempty"`
	Description  string `json:"description,omitempty"`
	GroupID      *int64 `json:"group_id,omitempty"`
	Username     string `json:"username,omitempty"`
	CreatedAt    string `json:"created_at"`
}

// ListResponse carries a transaction list with its exact total
type ListResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        string                 `json:"total"`
}

// ToResponse converts a Transaction model to a TransactionResponse DTO
func (t *Transaction) ToResponse() *TransactionResponse {
	return &TransactionResponse{
		ID:           t.ID,
		Type:         t.Type,
		Amount:       t.Amount.StringFixed(2),
		CategoryID:   t.CategoryID,
		CategoryName: t.CategoryName,
		Description:  t.Description,
		GroupID:      t.GroupID,
		Username:     t.Username,
		CreatedAt:    t.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
