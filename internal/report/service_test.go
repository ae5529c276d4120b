package report_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/fleet/internal/expense"
	"github.com/MrJamesThe3rd/fleet/internal/payroll"
	"github.com/MrJamesThe3rd/fleet/internal/report"
)

type mocks struct {
	orders   *report.MockOrders
	expenses *report.MockExpenses
	payrolls *report.MockPayrolls
}

func newService(ctrl *gomock.Controller) (*report.Service, mocks) {
	m := mocks{
		orders:   report.NewMockOrders(ctrl),
		expenses: report.NewMockExpenses(ctrl),
		payrolls: report.NewMockPayrolls(ctrl),
	}

	return report.NewService(m.orders, m.expenses, m.payrolls), m
}

func TestService_Summary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)
	m.orders.EXPECT().Count(gomock.Any()).Return(int64(12), nil)
	m.expenses.EXPECT().SumTotal(gomock.Any(), gomock.Nil()).Return(decimal.RequireFromString("4520.75"), nil)
	m.payrolls.EXPECT().SumNet(gomock.Any(), gomock.Nil()).Return(decimal.RequireFromString("9800.00"), nil)

	got, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(12), got.TotalOrders)
	assert.Equal(t, "4520.75", got.TotalExpenses.StringFixed(2))
	assert.Equal(t, "9800.00", got.TotalPayroll.StringFixed(2))
}

func TestService_Summary_EmptyStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)
	m.orders.EXPECT().Count(gomock.Any()).Return(int64(0), nil)
	m.expenses.EXPECT().SumTotal(gomock.Any(), gomock.Nil()).Return(decimal.Zero, nil)
	m.payrolls.EXPECT().SumNet(gomock.Any(), gomock.Nil()).Return(decimal.Zero, nil)

	got, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Zero(t, got.TotalOrders)
	assert.True(t, got.TotalExpenses.IsZero())
	assert.True(t, got.TotalPayroll.IsZero())
}

func TestService_Summary_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)
	m.orders.EXPECT().Count(gomock.Any()).Return(int64(0), errors.New("connection reset")).AnyTimes()
	m.expenses.EXPECT().SumTotal(gomock.Any(), gomock.Nil()).Return(decimal.Zero, nil).AnyTimes()
	m.payrolls.EXPECT().SumNet(gomock.Any(), gomock.Nil()).Return(decimal.Zero, nil).AnyTimes()

	_, err := svc.Summary(context.Background())
	assert.ErrorContains(t, err, "connection reset")
}

func TestService_Groupings(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)

	byCategory := []expense.CategoryTotal{{Category: expense.CategoryFuel, Total: decimal.NewFromInt(300)}}
	m.expenses.EXPECT().SumByCategory(gomock.Any()).Return(byCategory, nil)

	byPeriod := []payroll.PeriodTotal{{Period: new("2025-03"), Total: decimal.NewFromInt(1500)}, {Total: decimal.NewFromInt(80)}}
	m.payrolls.EXPECT().SumByPeriod(gomock.Any()).Return(byPeriod, nil)

	gotCategories, err := svc.ExpensesByCategory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, byCategory, gotCategories)

	gotPeriods, err := svc.PayrollByPeriod(context.Background())
	require.NoError(t, err)
	assert.Equal(t, byPeriod, gotPeriods)
}
