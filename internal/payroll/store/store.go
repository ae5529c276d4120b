package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fleet/internal/database"
	"github.com/MrJamesThe3rd/fleet/internal/fleet"
	"github.com/MrJamesThe3rd/fleet/internal/payroll"
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

// Expected column order: id, driver_id, pay_period, base_salary, bonuses, deductions, overtime, advance,
// net_total, payment_date, payment_method
func scanPayroll(s scanner) (*payroll.Payroll, error) {
	var p payroll.Payroll

	var method string

	if err := s.Scan(
		&p.ID, &p.EmployeeID, &p.PayPeriod,
		&p.BaseSalary, &p.Bonuses, &p.Deductions, &p.Overtime, &p.Advance, &p.NetTotal,
		&p.PaymentDate, &method,
	); err != nil {
		return nil, err
	}

	p.PaymentMethod = payroll.Method(method)

	return &p, nil
}

const selectPayrollColumns = `id, driver_id, pay_period, base_salary, bonuses, deductions, overtime, advance,
	net_total, payment_date, payment_method`

func (s *Store) Create(ctx context.Context, p *payroll.Payroll) error {
	query := `
		INSERT INTO payrolls (
			driver_id, pay_period, base_salary, bonuses, deductions, overtime, advance,
			net_total, payment_date, payment_method
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		p.EmployeeID,
		p.PayPeriod,
		p.BaseSalary,
		p.Bonuses,
		p.Deductions,
		p.Overtime,
		p.Advance,
		p.NetTotal,
		p.PaymentDate,
		p.PaymentMethod,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("creating payroll: %w", database.MapError(err))
	}

	return nil
}

func (s *Store) Get(ctx context.Context, id int64) (*payroll.Payroll, error) {
	p, err := scanPayroll(s.db.QueryRowContext(ctx, `SELECT `+selectPayrollColumns+` FROM payrolls WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fleet.NotFound("payroll", id)
		}

		return nil, fmt.Errorf("getting payroll: %w", err)
	}

	return p, nil
}

func (s *Store) List(ctx context.Context, filter payroll.ListFilter) ([]*payroll.Payroll, error) {
	var f database.Filter

	if filter.EmployeeID != nil {
		f.Where("driver_id = ?", *filter.EmployeeID)
	}

	if filter.Month != nil {
		start, end := filter.Month.Range()
		f.Where("payment_date >= ? AND payment_date < ?", start, end)
	}

	query := `SELECT ` + selectPayrollColumns + ` FROM payrolls` + f.Clause() + ` ORDER BY payment_date DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, f.Args()...)
	if err != nil {
		return nil, fmt.Errorf("listing payrolls: %w", err)
	}
	defer rows.Close()

	payrolls := []*payroll.Payroll{}

	for rows.Next() {
		p, err := scanPayroll(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning payroll: %w", err)
		}

		payrolls = append(payrolls, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payroll rows: %w", err)
	}

	return payrolls, nil
}

func (s *Store) Update(ctx context.Context, id int64, apply func(p *payroll.Payroll) error) (*payroll.Payroll, error) {
	var p *payroll.Payroll

	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error

		p, err = scanPayroll(tx.QueryRowContext(ctx, `SELECT `+selectPayrollColumns+` FROM payrolls WHERE id = $1 FOR UPDATE`, id))
		if errors.Is(err, sql.ErrNoRows) {
			return fleet.NotFound("payroll", id)
		}

		if err != nil {
			return fmt.Errorf("locking payroll: %w", err)
		}

		if err := apply(p); err != nil {
			return err
		}

		update := `
			UPDATE payrolls
			SET driver_id = $1, pay_period = $2, base_salary = $3, bonuses = $4, deductions = $5,
				overtime = $6, advance = $7, net_total = $8, payment_date = $9, payment_method = $10
			WHERE id = $11
		`

		_, err = tx.ExecContext(ctx, update,
			p.EmployeeID, p.PayPeriod, p.BaseSalary, p.Bonuses, p.Deductions,
			p.Overtime, p.Advance, p.NetTotal, p.PaymentDate, p.PaymentMethod, id,
		)
		if err != nil {
			return fmt.Errorf("updating payroll: %w", database.MapError(err))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	found, err := database.DeleteByID(ctx, s.db, "payrolls", id)
	if err != nil {
		return fmt.Errorf("deleting payroll: %w", err)
	}

	if !found {
		return fleet.NotFound("payroll", id)
	}

	return nil
}

func (s *Store) SumNet(ctx context.Context, month *fleet.Month) (decimal.Decimal, error) {
	var f database.Filter

	if month != nil {
		start, end := month.Range()
		f.Where("payment_date >= ? AND payment_date < ?", start, end)
	}

	var total decimal.Decimal
	if err := s.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(net_total), 0) FROM payrolls`+f.Clause(), f.Args()...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("summing payrolls: %w", err)
	}

	return total, nil
}

func (s *Store) SumByPeriod(ctx context.Context) ([]payroll.PeriodTotal, error) {
	query := `
		SELECT pay_period, SUM(net_total)
		FROM payrolls
		GROUP BY pay_period
		ORDER BY pay_period NULLS LAST
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("summing payrolls by period: %w", err)
	}
	defer rows.Close()

	totals := []payroll.PeriodTotal{}

	for rows.Next() {
		var t payroll.PeriodTotal
		if err := rows.Scan(&t.Period, &t.Total); err != nil {
			return nil, fmt.Errorf("scanning period total: %w", err)
		}

		totals = append(totals, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating period totals: %w", err)
	}

	return totals, nil
}
