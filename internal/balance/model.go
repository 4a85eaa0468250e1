package balance

import (
	"github.com/shopspring/decimal"

	"github.com/frognance/frognance/internal/transaction"
)

// Summary is an aggregated view over a materialized transaction set
type Summary struct {
	Transactions []*transaction.Transaction
	Income       decimal.Decimal
	Expense      decimal.Decimal
	Net          decimal.Decimal
}

// GroupSummary is a Summary scoped to a group's transactions
type GroupSummary struct {
	Summary
	GroupID   int64
	GroupName string
}

// summarize folds a transaction list into exact totals
func summarize(transactions []*transaction.Transaction) Summary {
	income := decimal.Zero
	expense := decimal.Zero
	for _, t := range transactions {
		switch t.Type {
		case transaction.TypeIncome:
			income = income.Add(t.Amount)
		case transaction.TypeExpense:
			expense = expense.Add(t.Amount)
		}
	}

	return Summary{
		Transactions: transactions,
		Income:       income,
		Expense:      expense,
		Net:          income.Sub(expense),
	}
}
