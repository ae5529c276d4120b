package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/fleet/internal/database"
	"github.com/MrJamesThe3rd/fleet/internal/fleet"
	"github.com/MrJamesThe3rd/fleet/internal/truck"
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

// Expected column order: id, brand, model, plate, capacity, year, notes, driver_id
func scanTruck(s scanner) (*truck.Truck, error) {
	var t truck.Truck
	if err := s.Scan(&t.ID, &t.Brand, &t.Model, &t.Plate, &t.Capacity, &t.Year, &t.Notes, &t.DriverID); err != nil {
		return nil, err
	}

	return &t, nil
}

const selectTruckColumns = `id, brand, model, plate, capacity, year, notes, driver_id`

func (s *Store) Create(ctx context.Context, t *truck.Truck) error {
	query := `
		INSERT INTO trucks (brand, model, plate, capacity, year, notes, driver_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query, t.Brand, t.Model, t.Plate, t.Capacity, t.Year, t.Notes, t.DriverID).
		Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("creating truck: %w", database.MapError(err))
	}

	return nil
}

func (s *Store) Get(ctx context.Context, id int64) (*truck.Truck, error) {
	query := `SELECT ` + selectTruckColumns + ` FROM trucks WHERE id = $1`

	t, err := scanTruck(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fleet.NotFound("truck", id)
		}

		return nil, fmt.Errorf("getting truck: %w", err)
	}

	return t, nil
}

func (s *Store) GetMany(ctx context.Context, ids []int64) ([]*truck.Truck, error) {
	return s.query(ctx, `SELECT `+selectTruckColumns+` FROM trucks WHERE id = ANY($1)`, ids)
}

func (s *Store) GetByPlates(ctx context.Context, plates []string) ([]*truck.Truck, error) {
	return s.query(ctx, `SELECT `+selectTruckColumns+` FROM trucks WHERE UPPER(plate) = ANY($1)`, plates)
}

func (s *Store) List(ctx context.Context) ([]*truck.Truck, error) {
	return s.query(ctx, `SELECT `+selectTruckColumns+` FROM trucks ORDER BY id`)
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]*truck.Truck, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing trucks: %w", err)
	}
	defer rows.Close()

	trucks := []*truck.Truck{}

	for rows.Next() {
		t, err := scanTruck(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning truck: %w", err)
		}

		trucks = append(trucks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating truck rows: %w", err)
	}

	return trucks, nil
}

func (s *Store) Update(ctx context.Context, id int64, apply func(t *truck.Truck) error) (*truck.Truck, error) {
	var t *truck.Truck

	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error

		t, err = scanTruck(tx.QueryRowContext(ctx, `SELECT `+selectTruckColumns+` FROM trucks WHERE id = $1 FOR UPDATE`, id))
		if errors.Is(err, sql.ErrNoRows) {
			return fleet.NotFound("truck", id)
		}

		if err != nil {
			return fmt.Errorf("locking truck: %w", err)
		}

		if err := apply(t); err != nil {
			return err
		}

		update := `
			UPDATE trucks
			SET brand = $1, model = $2, plate = $3, capacity = $4, year = $5, notes = $6, driver_id = $7
			WHERE id = $8
		`

		_, err = tx.ExecContext(ctx, update, t.Brand, t.Model, t.Plate, t.Capacity, t.Year, t.Notes, t.DriverID, id)
		if err != nil {
			return fmt.Errorf("updating truck: %w", database.MapError(err))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}

// Delete removes the truck together with its expenses and locations.
// Orders that referenced it keep existing with the truck cleared.
func (s *Store) Delete(ctx context.Context, id int64) error {
	found, err := database.DeleteByID(ctx, s.db, "trucks", id)
	if err != nil {
		return fmt.Errorf("deleting truck: %w", err)
	}

	if !found {
		return fleet.NotFound("truck", id)
	}

	return nil
}
