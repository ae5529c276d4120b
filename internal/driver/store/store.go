package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/fleet/internal/database"
	"github.com/MrJamesThe3rd/fleet/internal/driver"
	"github.com/MrJamesThe3rd/fleet/internal/fleet"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, first_name, last_name, license, phone, email, hire_date
func scanDriver(s scanner) (*driver.Driver, error) {
	var d driver.Driver
	if err := s.Scan(&d.ID, &d.FirstName, &d.LastName, &d.License, &d.Phone, &d.Email, &d.HireDate); err != nil {
		return nil, err
	}

	return &d, nil
}

const selectDriverColumns = `id, first_name, last_name, license, phone, email, hire_date`

func (s *Store) Create(ctx context.Context, d *driver.Driver) error {
	query := `
		INSERT INTO drivers (first_name, last_name, license, phone, email)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, hire_date
	`

	err := s.db.QueryRowContext(ctx, query, d.FirstName, d.LastName, d.License, d.Phone, d.Email).
		Scan(&d.ID, &d.HireDate)
	if err != nil {
		return fmt.Errorf("creating driver: %w", database.MapError(err))
	}

	return nil
}

func (s *Store) Get(ctx context.Context, id int64) (*driver.Driver, error) {
	query := `SELECT ` + selectDriverColumns + ` FROM drivers WHERE id = $1`

	d, err := scanDriver(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fleet.NotFound("driver", id)
		}

		return nil, fmt.Errorf("getting driver: %w", err)
	}

	return d, nil
}

func (s *Store) GetMany(ctx context.Context, ids []int64) ([]*driver.Driver, error) {
	query := `SELECT ` + selectDriverColumns + ` FROM drivers WHERE id = ANY($1)`
	return s.query(ctx, query, ids)
}

func (s *Store) List(ctx context.Context) ([]*driver.Driver, error) {
	query := `SELECT ` + selectDriverColumns + ` FROM drivers ORDER BY id`
	return s.query(ctx, query)
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]*driver.Driver, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing drivers: %w", err)
	}
	defer rows.Close()

	drivers := []*driver.Driver{}

	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning driver: %w", err)
		}

		drivers = append(drivers, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating driver rows: %w", err)
	}

	return drivers, nil
}

func (s *Store) Update(ctx context.Context, id int64, apply func(d *driver.Driver) error) (*driver.Driver, error) {
	var d *driver.Driver

	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		query := `SELECT ` + selectDriverColumns + ` FROM drivers WHERE id = $1 FOR UPDATE`

		var err error

		d, err = scanDriver(tx.QueryRowContext(ctx, query, id))
		if errors.Is(err, sql.ErrNoRows) {
			return fleet.NotFound("driver", id)
		}

		if err != nil {
			return fmt.Errorf("locking driver: %w", err)
		}

		if err := apply(d); err != nil {
			return err
		}

		update := `
			UPDATE drivers
			SET first_name = $1, last_name = $2, license = $3, phone = $4, email = $5
			WHERE id = $6
		`
		if _, err := tx.ExecContext(ctx, update, d.FirstName, d.LastName, d.License, d.Phone, d.Email, id); err != nil {
			return fmt.Errorf("updating driver: %w", database.MapError(err))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return d, nil
}

// Delete removes the driver. Trucks and orders keep existing with their driver cleared;
// payroll records of the driver are removed with it.
func (s *Store) Delete(ctx context.Context, id int64) error {
	found, err := database.DeleteByID(ctx, s.db, "drivers", id)
	if err != nil {
		return fmt.Errorf("deleting driver: %w", err)
	}

	if !found {
		return fleet.NotFound("driver", id)
	}

	return nil
}
