// Package export renders fleet records as a spreadsheet workbook.
package export

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/fleet/internal/expense"
	"github.com/MrJamesThe3rd/fleet/internal/fleet"
	"github.com/MrJamesThe3rd/fleet/internal/invoice"
	"github.com/MrJamesThe3rd/fleet/internal/payroll"
)

// ContentType is the media type of the generated workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const allMonths = "Todos los meses"

//go:generate mockgen -source=service.go -destination=service_mock.go -package=export
type Expenses interface {
	List(ctx context.Context, filter expense.ListFilter) ([]*expense.Expense, error)
}

type Payrolls interface {
	List(ctx context.Context, filter payroll.ListFilter) ([]*payroll.Payroll, error)
}

type Invoices interface {
	List(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error)
}

type Service struct {
	expenses Expenses
	payrolls Payrolls
	invoices Invoices
}

func NewService(expenses Expenses, payrolls Payrolls, invoices Invoices) *Service {
	return &Service{expenses: expenses, payrolls: payrolls, invoices: invoices}
}

// Filename suggests a download name for the workbook of month.
func Filename(month *fleet.Month) string {
	if month == nil {
		return "reporte_flota.xlsx"
	}

	return fmt.Sprintf("reporte_flota_%s.xlsx", month)
}

// Workbook builds an XLSX file with a summary sheet followed by one sheet per record kind.
// A nil month exports every record.
func (s *Service) Workbook(ctx context.Context, month *fleet.Month) ([]byte, error) {
	var (
		expenses []*expense.Expense
		payrolls []*payroll.Payroll
		invoices []*invoice.Invoice
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		expenses, err = s.expenses.List(gctx, expense.ListFilter{Month: month})

		return err
	})

	g.Go(func() error {
		var err error
		payrolls, err = s.payrolls.List(gctx, payroll.ListFilter{Month: month})

		return err
	})

	g.Go(func() error {
		var err error
		invoices, err = s.invoices.List(gctx, invoice.ListFilter{Month: month})

		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading export data: %w", err)
	}

	sheets := []sheet{
		summarySheet(month, expenses, payrolls, invoices),
		expenseSheet(expenses),
		payrollSheet(payrolls),
		invoiceSheet(invoices),
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, sh := range sheets {
		if err := writeSheet(f, i, sh); err != nil {
			return nil, fmt.Errorf("writing sheet %s: %w", sh.name, err)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func summarySheet(month *fleet.Month, expenses []*expense.Expense, payrolls []*payroll.Payroll, invoices []*invoice.Invoice) sheet {
	period := allMonths
	if month != nil {
		period = month.String()
	}

	var expenseTotal, payrollTotal, invoiceTotal decimal.Decimal

	for _, e := range expenses {
		expenseTotal = expenseTotal.Add(e.Amount)
	}

	for _, p := range payrolls {
		payrollTotal = payrollTotal.Add(p.NetTotal)
	}

	for _, inv := range invoices {
		invoiceTotal = invoiceTotal.Add(inv.Total())
	}

	return sheet{
		name:    "Resumen",
		headers: []string{"Concepto", "Registros", "Total"},
		widths:  []float64{20, 12, 16},
		amounts: []int{2},
		rows: [][]any{
			{"Periodo", period, nil},
			{"Gastos", len(expenses), amount(expenseTotal)},
			{"Sueldos", len(payrolls), amount(payrollTotal)},
			{"Facturas", len(invoices), amount(invoiceTotal)},
		},
	}
}

func expenseSheet(expenses []*expense.Expense) sheet {
	rows := make([][]any, 0, len(expenses))

	for _, e := range expenses {
		var plate string
		if e.Truck != nil {
			plate = e.Truck.Plate
		}

		rows = append(rows, []any{
			e.ID, e.Date.Format(time.DateOnly), plate, string(e.Category), amount(e.Amount), deref(e.Comments),
		})
	}

	return sheet{
		name:    "Gastos",
		headers: []string{"ID", "Fecha", "Placa", "Tipo de gasto", "Monto", "Comentarios"},
		widths:  []float64{8, 12, 12, 16, 14, 40},
		amounts: []int{4},
		rows:    rows,
	}
}

func payrollSheet(payrolls []*payroll.Payroll) sheet {
	rows := make([][]any, 0, len(payrolls))

	for _, p := range payrolls {
		var employee string
		if p.Employee != nil {
			employee = p.Employee.FullName()
		}

		rows = append(rows, []any{
			p.ID, employee, deref(p.PayPeriod),
			amount(p.BaseSalary), amount(p.Bonuses), amount(p.Deductions),
			amount(p.Overtime), amount(p.Advance), amount(p.NetTotal),
			p.PaymentDate.Format(time.DateOnly), string(p.PaymentMethod),
		})
	}

	return sheet{
		name: "Sueldos",
		headers: []string{
			"ID", "Empleado", "Periodo", "Salario base", "Bonos", "Deducciones",
			"Horas extras", "Adelanto", "Total neto", "Fecha de pago", "Método de pago",
		},
		widths:  []float64{8, 28, 14, 14, 12, 14, 14, 12, 14, 14, 16},
		amounts: []int{3, 4, 5, 6, 7, 8},
		rows:    rows,
	}
}

func invoiceSheet(invoices []*invoice.Invoice) sheet {
	rows := make([][]any, 0, len(invoices))

	for _, inv := range invoices {
		var clientName string
		if inv.Client != nil {
			clientName = inv.Client.Name
		}

		var orderID any
		if inv.OrderID != nil {
			orderID = *inv.OrderID
		}

		rows = append(rows, []any{
			inv.ID, inv.Date.Format(time.DateOnly), clientName, orderID,
			inv.Service, inv.Origin, inv.Destination,
			amount(inv.WaitingHours), amount(inv.HourlyRate), amount(inv.Tolls), amount(inv.ListAmount),
			amount(inv.WaitingCost()), amount(inv.Total()),
		})
	}

	return sheet{
		name: "Facturas",
		headers: []string{
			"ID", "Fecha", "Cliente", "Pedido", "Servicio", "Origen", "Destino",
			"Horas espera", "Precio hora", "Peajes", "Importe lista", "Final H", "Importe total",
		},
		widths:  []float64{8, 12, 24, 8, 24, 20, 20, 12, 12, 12, 14, 12, 14},
		amounts: []int{7, 8, 9, 10, 11, 12},
		rows:    rows,
	}
}

// amount rounds half away from zero to cents, matching the JSON rendering.
func amount(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
