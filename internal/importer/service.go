package importer

import (
	"context"
	"io"

	"github.com/MrJamesThe3rd/fleet/internal/expense"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=importer
type ExpenseImporter interface {
	ImportBatch(ctx context.Context, rows []expense.ImportRow) ([]*expense.Expense, error)
}

type Service struct {
	parser   *Parser
	expenses ExpenseImporter
}

func NewService(expenses ExpenseImporter) *Service {
	return &Service{parser: NewParser(), expenses: expenses}
}

// Import parses r and stores every row, or nothing when any row is rejected.
func (s *Service) Import(ctx context.Context, r io.Reader) ([]*expense.Expense, error) {
	rows, err := s.parser.Parse(r)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return []*expense.Expense{}, nil
	}

	return s.expenses.ImportBatch(ctx, rows)
}
