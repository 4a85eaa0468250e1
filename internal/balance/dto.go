package balance

import "github.com/frognance/frognance/internal/transaction"

// SummaryResponse represents an aggregated balance in API responses
type SummaryResponse struct {
	Transactions []*transaction.TransactionResponse `json:"transactions"`
	Income       string                             `json:"income"`
	Expense      string                             `json:"expense"`
	Net          string                             `json:"net"`
}

// GroupSummaryResponse is a SummaryResponse with its group attached
type GroupSummaryResponse struct {
	SummaryResponse
	GroupID   int64  `json:"group_id"`
	GroupName string `json:"group_name"`
}

// DashboardResponse is the combined personal and group balance view.
// Group is null when the caller belongs to no group.
type DashboardResponse struct {
	Personal *SummaryResponse      `json:"personal"`
	Group    *GroupSummaryResponse `json:"group"`
}

// ToResponse converts a Summary to its DTO
func (s *Summary) ToResponse() *SummaryResponse {
	transactions := make([]*transaction.TransactionResponse, len(s.Transactions))
	for i, t := range s.Transactions {
		transactions[i] = t.ToResponse()
	}

	return &SummaryResponse{
		Transactions: transactions,
		Income:       s.Income.StringFixed(2),
		Expense:      s.Expense.StringFixed(2),
		Net:          s.Net.StringFixed(2),
	}
}

// ToResponse converts a GroupSummary to its DTO
func (g *GroupSummary) ToResponse() *GroupSummaryResponse {
	return &GroupSummaryResponse{
		SummaryResponse: *g.Summary.ToResponse(),
		GroupID:         g.GroupID,
		GroupName:       g.GroupName,
	}
}
