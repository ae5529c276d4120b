package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fleet/internal/database"
	"github.com/MrJamesThe3rd/fleet/internal/expense"
	"github.com/MrJamesThe3rd/fleet/internal/fleet"
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

// Expected column order: id, truck_id, category, amount, date, comments
func scanExpense(s scanner) (*expense.Expense, error) {
	var e expense.Expense

	var category string

	if err := s.Scan(&e.ID, &e.TruckID, &category, &e.Amount, &e.Date, &e.Comments); err != nil {
		return nil, err
	}

	e.Category = expense.Category(category)

	return &e, nil
}

const selectExpenseColumns = `id, truck_id, category, amount, date, comments`

const insertExpense = `
	INSERT INTO expenses (truck_id, category, amount, date, comments)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id
`

func (s *Store) Create(ctx context.Context, e *expense.Expense) error {
	err := s.db.QueryRowContext(ctx, insertExpense, e.TruckID, e.Category, e.Amount, e.Date, e.Comments).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("creating expense: %w", database.MapError(err))
	}

	return nil
}

func (s *Store) CreateBatch(ctx context.Context, expenses []*expense.Expense) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, insertExpense)
		if err != nil {
			return fmt.Errorf("preparing expense insert: %w", err)
		}
		defer stmt.Close()

		for _, e := range expenses {
			if err := stmt.QueryRowContext(ctx, e.TruckID, e.Category, e.Amount, e.Date, e.Comments).Scan(&e.ID); err != nil {
				return fmt.Errorf("creating expense: %w", database.MapError(err))
			}
		}

		return nil
	})
}

func (s *Store) Get(ctx context.Context, id int64) (*expense.Expense, error) {
	e, err := scanExpense(s.db.QueryRowContext(ctx, `SELECT `+selectExpenseColumns+` FROM expenses WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fleet.NotFound("expense", id)
		}

		return nil, fmt.Errorf("getting expense: %w", err)
	}

	return e, nil
}

func where(filter expense.ListFilter) *database.Filter {
	f := &database.Filter{}

	if filter.TruckID != nil {
		f.Where("truck_id = ?", *filter.TruckID)
	}

	if filter.Month != nil {
		start, end := filter.Month.Range()
		f.Where("date >= ? AND date < ?", start, end)
	}

	return f
}

func (s *Store) List(ctx context.Context, filter expense.ListFilter) ([]*expense.Expense, error) {
	f := where(filter)
	query := `SELECT ` + selectExpenseColumns + ` FROM expenses` + f.Clause() + ` ORDER BY date DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, f.Args()...)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	expenses := []*expense.Expense{}

	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}

		expenses = append(expenses, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expense rows: %w", err)
	}

	return expenses, nil
}

func (s *Store) Update(ctx context.Context, id int64, apply func(e *expense.Expense) error) (*expense.Expense, error) {
	var e *expense.Expense

	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error

		e, err = scanExpense(tx.QueryRowContext(ctx, `SELECT `+selectExpenseColumns+` FROM expenses WHERE id = $1 FOR UPDATE`, id))
		if errors.Is(err, sql.ErrNoRows) {
			return fleet.NotFound("expense", id)
		}

		if err != nil {
			return fmt.Errorf("locking expense: %w", err)
		}

		if err := apply(e); err != nil {
			return err
		}

		update := `
			UPDATE expenses
			SET truck_id = $1, category = $2, amount = $3, date = $4, comments = $5
			WHERE id = $6
		`

		_, err = tx.ExecContext(ctx, update, e.TruckID, e.Category, e.Amount, e.Date, e.Comments, id)
		if err != nil {
			return fmt.Errorf("updating expense: %w", database.MapError(err))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	found, err := database.DeleteByID(ctx, s.db, "expenses", id)
	if err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}

	if !found {
		return fleet.NotFound("expense", id)
	}

	return nil
}

func (s *Store) Sum(ctx context.Context, filter expense.ListFilter) (decimal.Decimal, error) {
	f := where(filter)

	var total decimal.Decimal
	if err := s.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(amount), 0) FROM expenses`+f.Clause(), f.Args()...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("summing expenses: %w", err)
	}

	return total, nil
}

func (s *Store) SumByCategory(ctx context.Context) ([]expense.CategoryTotal, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT category, SUM(amount) FROM expenses GROUP BY category ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("summing expenses by category: %w", err)
	}
	defer rows.Close()

	totals := []expense.CategoryTotal{}

	for rows.Next() {
		var (
			category string
			total    decimal.Decimal
		)

		if err := rows.Scan(&category, &total); err != nil {
			return nil, fmt.Errorf("scanning category total: %w", err)
		}

		totals = append(totals, expense.CategoryTotal{Category: expense.Category(category), Total: total})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category totals: %w", err)
	}

	return totals, nil
}
