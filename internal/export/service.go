package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/frognance/frognance/internal/balance"
	"github.com/frognance/frognance/internal/transaction"
)

const (
	personalSheet = "Personal"
	groupSheet    = "Group"
)

var columns = []string{"ID", "Type", "Amount", "Category", "Description", "Date"}

// Balances supplies the aggregated transaction sets fed into the workbook
type Balances interface {
	Personal(ctx context.Context, userID int64) (*balance.Summary, error)
	Group(ctx context.Context, userID int64) (*balance.GroupSummary, error)
}

// Service renders a user's transactions into a spreadsheet
type Service struct {
	balances Balances
}

// NewService creates a new export service
func NewService(balances Balances) *Service {
	return &Service{balances: balances}
}

// BuildWorkbook produces an xlsx with a Personal sheet and, when the user
// has a group, a Group sheet
func (s *Service) BuildWorkbook(ctx context.Context, userID int64) (*bytes.Buffer, error) {
	personal, err := s.balances.Personal(ctx, userID)
	if err != nil {
		return nil, err
	}

	groupSummary, err := s.balances.Group(ctx, userID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), personalSheet)
	if err := writeSheet(f, personalSheet, personal.Transactions); err != nil {
		return nil, err
	}

	if groupSummary != nil {
		if _, err := f.NewSheet(groupSheet); err != nil {
			return nil, err
		}
		if err := writeSheet(f, groupSheet, groupSummary.Transactions); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	return buf, nil
}

func writeSheet(f *excelize.File, sheet string, transactions []*transaction.Transaction) error {
	for col, header := range columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}

	for i, t := range transactions {
		values := []interface{}{
			t.ID,
			string(t.Type),
			t.Amount.InexactFloat64(),
			t.CategoryName,
			t.Description,
			t.CreatedAt.Format("2006-01-02"),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	return nil
}
