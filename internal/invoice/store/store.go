package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fleet/internal/database"
	"github.com/MrJamesThe3rd/fleet/internal/fleet"
	"github.com/MrJamesThe3rd/fleet/internal/invoice"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, client_id, order_id, date, service, origin, destination,
// waiting_hours, hourly_rate, tolls, list_amount
func scanInvoice(s scanner) (*invoice.Invoice, error) {
	var i invoice.Invoice
	if err := s.Scan(
		&i.ID, &i.ClientID, &i.OrderID, &i.Date, &i.Service, &i.Origin, &i.Destination,
		&i.WaitingHours, &i.HourlyRate, &i.Tolls, &i.ListAmount,
	); err != nil {
		return nil, err
	}

	return &i, nil
}

const selectInvoiceColumns = `id, client_id, order_id, date, service, origin, destination,
	waiting_hours, hourly_rate, tolls, list_amount`

// Mirrors invoice.ComputeDerived.
const totalExpr = `waiting_hours * hourly_rate + tolls + list_amount`

func (s *Store) Create(ctx context.Context, i *invoice.Invoice) error {
	query := `
		INSERT INTO invoices (
			client_id, order_id, date, service, origin, destination,
			waiting_hours, hourly_rate, tolls, list_amount
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		i.ClientID,
		i.OrderID,
		i.Date,
		i.Service,
		i.Origin,
		i.Destination,
		i.WaitingHours,
		i.HourlyRate,
		i.Tolls,
		i.ListAmount,
	).Scan(&i.ID)
	if err != nil {
		return fmt.Errorf("creating invoice: %w", database.MapError(err))
	}

	return nil
}

func (s *Store) Get(ctx context.Context, id int64) (*invoice.Invoice, error) {
	i, err := scanInvoice(s.db.QueryRowContext(ctx, `SELECT `+selectInvoiceColumns+` FROM invoices WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fleet.NotFound("invoice", id)
		}

		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	return i, nil
}

func (s *Store) List(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error) {
	var f database.Filter

	if filter.ClientID != nil {
		f.Where("client_id = ?", *filter.ClientID)
	}

	if filter.OrderID != nil {
		f.Where("order_id = ?", *filter.OrderID)
	}

	if filter.Date != nil {
		f.Where("date = ?", *filter.Date)
	}

	if filter.Month != nil {
		start, end := filter.Month.Range()
		f.Where("date >= ? AND date < ?", start, end)
	}

	query := `SELECT ` + selectInvoiceColumns + ` FROM invoices` + f.Clause() + ` ORDER BY date DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, f.Args()...)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	invoices := []*invoice.Invoice{}

	for rows.Next() {
		i, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning invoice: %w", err)
		}

		invoices = append(invoices, i)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoice rows: %w", err)
	}

	return invoices, nil
}

func (s *Store) Update(ctx context.Context, id int64, apply func(i *invoice.Invoice) error) (*invoice.Invoice, error) {
	var i *invoice.Invoice

	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error

		i, err = scanInvoice(tx.QueryRowContext(ctx, `SELECT `+selectInvoiceColumns+` FROM invoices WHERE id = $1 FOR UPDATE`, id))
		if errors.Is(err, sql.ErrNoRows) {
			return fleet.NotFound("invoice", id)
		}

		if err != nil {
			return fmt.Errorf("locking invoice: %w", err)
		}

		if err := apply(i); err != nil {
			return err
		}

		update := `
			UPDATE invoices
			SET client_id = $1, order_id = $2, date = $3, service = $4, origin = $5, destination = $6,
				waiting_hours = $7, hourly_rate = $8, tolls = $9, list_amount = $10
			WHERE id = $11
		`

		_, err = tx.ExecContext(ctx, update,
			i.ClientID, i.OrderID, i.Date, i.Service, i.Origin, i.Destination,
			i.WaitingHours, i.HourlyRate, i.Tolls, i.ListAmount, id,
		)
		if err != nil {
			return fmt.Errorf("updating invoice: %w", database.MapError(err))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return i, nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	found, err := database.DeleteByID(ctx, s.db, "invoices", id)
	if err != nil {
		return fmt.Errorf("deleting invoice: %w", err)
	}

	if !found {
		return fleet.NotFound("invoice", id)
	}

	return nil
}

func (s *Store) SumTotal(ctx context.Context, month *fleet.Month) (decimal.Decimal, error) {
	var f database.Filter

	if month != nil {
		start, end := month.Range()
		f.Where("date >= ? AND date < ?", start, end)
	}

	query := `SELECT COALESCE(SUM(` + totalExpr + `), 0) FROM invoices` + f.Clause()

	var total decimal.Decimal
	if err := s.db.QueryRowContext(ctx, query, f.Args()...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("summing invoices: %w", err)
	}

	return total, nil
}

func (s *Store) MonthlySummary(ctx context.Context) ([]invoice.MonthTotal, error) {
	query := `
		SELECT EXTRACT(YEAR FROM date)::INT AS year, EXTRACT(MONTH FROM date)::INT AS month, SUM(` + totalExpr + `)
		FROM invoices
		GROUP BY year, month
		ORDER BY year, month
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("summarizing invoices: %w", err)
	}
	defer rows.Close()

	totals := []invoice.MonthTotal{}

	for rows.Next() {
		var t invoice.MonthTotal
		if err := rows.Scan(&t.Year, &t.Month, &t.Total); err != nil {
			return nil, fmt.Errorf("scanning month total: %w", err)
		}

		totals = append(totals, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating month totals: %w", err)
	}

	return totals, nil
}
