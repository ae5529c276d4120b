package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/fleet/internal/database"
	"github.com/MrJamesThe3rd/fleet/internal/fleet"
	"github.com/MrJamesThe3rd/fleet/internal/order"
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

// Expected column order: id, client_id, truck_id, driver_id, description, status, created_at, delivery_date
func scanOrder(s scanner) (*order.Order, error) {
	var o order.Order

	var status string

	if err := s.Scan(
		&o.ID, &o.ClientID, &o.TruckID, &o.DriverID, &o.Description, &status, &o.CreatedAt, &o.DeliveryDate,
	); err != nil {
		return nil, err
	}

	o.Status = order.Status(status)

	return &o, nil
}

const selectOrderColumns = `id, client_id, truck_id, driver_id, description, status, created_at, delivery_date`

func (s *Store) Create(ctx context.Context, o *order.Order) error {
	query := `
		INSERT INTO orders (client_id, truck_id, driver_id, description, status, delivery_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		o.ClientID,
		o.TruckID,
		o.DriverID,
		o.Description,
		o.Status,
		o.DeliveryDate,
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating order: %w", database.MapError(err))
	}

	return nil
}

func (s *Store) Get(ctx context.Context, id int64) (*order.Order, error) {
	o, err := scanOrder(s.db.QueryRowContext(ctx, `SELECT `+selectOrderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fleet.NotFound("order", id)
		}

		return nil, fmt.Errorf("getting order: %w", err)
	}

	return o, nil
}

func (s *Store) GetMany(ctx context.Context, ids []int64) ([]*order.Order, error) {
	return s.query(ctx, `SELECT `+selectOrderColumns+` FROM orders WHERE id = ANY($1)`, ids)
}

func (s *Store) List(ctx context.Context, filter order.ListFilter) ([]*order.Order, error) {
	var f database.Filter

	if filter.ClientID != nil {
		f.Where("client_id = ?", *filter.ClientID)
	}

	if filter.Status != nil {
		f.Where("status = ?", *filter.Status)
	}

	query := `SELECT ` + selectOrderColumns + ` FROM orders` + f.Clause() + ` ORDER BY created_at DESC, id DESC`

	return s.query(ctx, query, f.Args()...)
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]*order.Order, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	defer rows.Close()

	orders := []*order.Order{}

	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}

		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	return orders, nil
}

func (s *Store) Update(ctx context.Context, id int64, apply func(o *order.Order) error) (*order.Order, error) {
	var o *order.Order

	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error

		o, err = scanOrder(tx.QueryRowContext(ctx, `SELECT `+selectOrderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id))
		if errors.Is(err, sql.ErrNoRows) {
			return fleet.NotFound("order", id)
		}

		if err != nil {
			return fmt.Errorf("locking order: %w", err)
		}

		if err := apply(o); err != nil {
			return err
		}

		update := `
			UPDATE orders
			SET client_id = $1, truck_id = $2, driver_id = $3, description = $4, status = $5, delivery_date = $6
			WHERE id = $7
		`

		_, err = tx.ExecContext(ctx, update, o.ClientID, o.TruckID, o.DriverID, o.Description, o.Status, o.DeliveryDate, id)
		if err != nil {
			return fmt.Errorf("updating order: %w", database.MapError(err))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return o, nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	found, err := database.DeleteByID(ctx, s.db, "orders", id)
	if err != nil {
		return fmt.Errorf("deleting order: %w", err)
	}

	if !found {
		return fleet.NotFound("order", id)
	}

	return nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting orders: %w", err)
	}

	return n, nil
}

func (s *Store) CountByStatus(ctx context.Context) ([]order.StatusCount, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status ORDER BY status`)
	if err != nil {
		return nil, fmt.Errorf("counting orders by status: %w", err)
	}
	defer rows.Close()

	counts := []order.StatusCount{}

	for rows.Next() {
		var c order.StatusCount

		var status string

		if err := rows.Scan(&status, &c.Total); err != nil {
			return nil, fmt.Errorf("scanning status count: %w", err)
		}

		c.Status = order.Status(status)
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating status counts: %w", err)
	}

	return counts, nil
}
