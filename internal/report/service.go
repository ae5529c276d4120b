// Package report builds the dashboard metrics that span several record kinds.
package report

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/fleet/internal/expense"
	"github.com/MrJamesThe3rd/fleet/internal/fleet"
	"github.com/MrJamesThe3rd/fleet/internal/order"
	"github.com/MrJamesThe3rd/fleet/internal/payroll"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=report
type Orders interface {
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) ([]order.StatusCount, error)
}

type Expenses interface {
	SumTotal(ctx context.Context, month *fleet.Month) (decimal.Decimal, error)
	SumByCategory(ctx context.Context) ([]expense.CategoryTotal, error)
}

type Payrolls interface {
	SumNet(ctx context.Context, month *fleet.Month) (decimal.Decimal, error)
	SumByPeriod(ctx context.Context) ([]payroll.PeriodTotal, error)
}

type Service struct {
	orders   Orders
	expenses Expenses
	payrolls Payrolls
}

func NewService(orders Orders, expenses Expenses, payrolls Payrolls) *Service {
	return &Service{orders: orders, expenses: expenses, payrolls: payrolls}
}

// Summary holds three independent all-time aggregates.
type Summary struct {
	TotalOrders   int64
	TotalExpenses decimal.Decimal
	TotalPayroll  decimal.Decimal
}

func (s *Service) Summary(ctx context.Context) (Summary, error) {
	var sum Summary

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		sum.TotalOrders, err = s.orders.Count(gctx)

		return err
	})

	g.Go(func() error {
		var err error
		sum.TotalExpenses, err = s.expenses.SumTotal(gctx, nil)

		return err
	})

	g.Go(func() error {
		var err error
		sum.TotalPayroll, err = s.payrolls.SumNet(gctx, nil)

		return err
	})

	if err := g.Wait(); err != nil {
		return Summary{}, fmt.Errorf("building summary: %w", err)
	}

	return sum, nil
}

func (s *Service) OrdersByStatus(ctx context.Context) ([]order.StatusCount, error) {
	return s.orders.CountByStatus(ctx)
}

func (s *Service) ExpensesByCategory(ctx context.Context) ([]expense.CategoryTotal, error) {
	return s.expenses.SumByCategory(ctx)
}

func (s *Service) PayrollByPeriod(ctx context.Context) ([]payroll.PeriodTotal, error) {
	return s.payrolls.SumByPeriod(ctx)
}
