package export_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/fleet/internal/client"
	"github.com/MrJamesThe3rd/fleet/internal/driver"
	"github.com/MrJamesThe3rd/fleet/internal/expense"
	"github.com/MrJamesThe3rd/fleet/internal/export"
	"github.com/MrJamesThe3rd/fleet/internal/fleet"
	"github.com/MrJamesThe3rd/fleet/internal/invoice"
	"github.com/MrJamesThe3rd/fleet/internal/payroll"
	"github.com/MrJamesThe3rd/fleet/internal/truck"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func openRows(t *testing.T, data []byte, sheet string) [][]string {
	t.Helper()

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)

	defer f.Close()

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	require.NoError(t, err)

	return rows
}

func TestService_Workbook(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	expenses := export.NewMockExpenses(ctrl)
	payrolls := export.NewMockPayrolls(ctrl)
	invoices := export.NewMockInvoices(ctrl)
	svc := export.NewService(expenses, payrolls, invoices)

	month := fleet.Month{Year: 2025, Month: time.March}
	day := time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)

	expenses.EXPECT().List(gomock.Any(), expense.ListFilter{Month: &month}).Return([]*expense.Expense{
		{
			ID: 5, TruckID: 1, Truck: &truck.Truck{ID: 1, Plate: "1234ABC"},
			Category: expense.CategoryFuel, Amount: dec("120.50"), Date: day, Comments: new("repostaje"),
		},
	}, nil)
	payrolls.EXPECT().List(gomock.Any(), payroll.ListFilter{Month: &month}).Return([]*payroll.Payroll{
		{
			ID: 2, EmployeeID: 4, Employee: &driver.Driver{ID: 4, FirstName: "Ana", LastName: "Ruiz"},
			BaseSalary: dec("1600.00"), NetTotal: dec("1600.00"), PaymentDate: day, PaymentMethod: payroll.MethodCash,
		},
	}, nil)
	invoices.EXPECT().List(gomock.Any(), invoice.ListFilter{Month: &month}).Return([]*invoice.Invoice{
		{
			ID: 8, ClientID: 3, Client: &client.Client{ID: 3, Name: "Transportes Sur"}, Date: day,
			Service: "Porte", Origin: "Sevilla", Destination: "Cádiz",
			WaitingHours: dec("2.5"), HourlyRate: dec("40.00"), Tolls: dec("12.30"), ListAmount: dec("450.00"),
		},
	}, nil)

	data, err := svc.Workbook(context.Background(), &month)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []string{"Resumen", "Gastos", "Sueldos", "Facturas"}, f.GetSheetList())
	require.NoError(t, f.Close())

	summary := openRows(t, data, "Resumen")
	require.Len(t, summary, 5)
	assert.Equal(t, []string{"Periodo", "2025-03"}, summary[1])
	assert.Equal(t, []string{"Gastos", "1", "120.5"}, summary[2])
	assert.Equal(t, []string{"Facturas", "1", "562.3"}, summary[4])

	exp := openRows(t, data, "Gastos")
	require.Len(t, exp, 2)
	assert.Equal(t, "Monto", exp[0][4])
	assert.Equal(t, []string{"5", "2025-03-14", "1234ABC", "fuel", "120.5", "repostaje"}, exp[1])

	pay := openRows(t, data, "Sueldos")
	require.Len(t, pay, 2)
	assert.Equal(t, "Ana Ruiz", pay[1][1])
	assert.Equal(t, "cash", pay[1][10])

	inv := openRows(t, data, "Facturas")
	require.Len(t, inv, 2)
	assert.Equal(t, "Transportes Sur", inv[1][2])
	assert.Equal(t, "100", inv[1][11])
	assert.Equal(t, "562.3", inv[1][12])
}

func TestService_Workbook_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	expenses := export.NewMockExpenses(ctrl)
	payrolls := export.NewMockPayrolls(ctrl)
	invoices := export.NewMockInvoices(ctrl)
	svc := export.NewService(expenses, payrolls, invoices)

	expenses.EXPECT().List(gomock.Any(), expense.ListFilter{}).Return([]*expense.Expense{}, nil)
	payrolls.EXPECT().List(gomock.Any(), payroll.ListFilter{}).Return([]*payroll.Payroll{}, nil)
	invoices.EXPECT().List(gomock.Any(), invoice.ListFilter{}).Return([]*invoice.Invoice{}, nil)

	data, err := svc.Workbook(context.Background(), nil)
	require.NoError(t, err)

	summary := openRows(t, data, "Resumen")
	assert.Equal(t, []string{"Periodo", "Todos los meses"}, summary[1])
	assert.Equal(t, []string{"Gastos", "0", "0"}, summary[2])

	assert.Len(t, openRows(t, data, "Facturas"), 1)
}

func TestService_Workbook_LoadFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	expenses := export.NewMockExpenses(ctrl)
	payrolls := export.NewMockPayrolls(ctrl)
	invoices := export.NewMockInvoices(ctrl)
	svc := export.NewService(expenses, payrolls, invoices)

	expenses.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))
	payrolls.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*payroll.Payroll{}, nil).AnyTimes()
	invoices.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*invoice.Invoice{}, nil).AnyTimes()

	_, err := svc.Workbook(context.Background(), nil)
	assert.ErrorContains(t, err, "connection reset")
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "reporte_flota.xlsx", export.Filename(nil))
	assert.Equal(t, "reporte_flota_2025-03.xlsx", export.Filename(&fleet.Month{Year: 2025, Month: time.March}))
}
