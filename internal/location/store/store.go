package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/fleet/internal/database"
	"github.com/MrJamesThe3rd/fleet/internal/fleet"
	"github.com/MrJamesThe3rd/fleet/internal/location"
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

// Expected column order: id, truck_id, latitude, longitude, recorded_at
func scanLocation(s scanner) (*location.Location, error) {
	var l location.Location
	if err := s.Scan(&l.ID, &l.TruckID, &l.Latitude, &l.Longitude, &l.RecordedAt); err != nil {
		return nil, err
	}

	return &l, nil
}

const selectLocationColumns = `id, truck_id, latitude, longitude, recorded_at`

func (s *Store) Create(ctx context.Context, l *location.Location) error {
	query := `
		INSERT INTO locations (truck_id, latitude, longitude)
		VALUES ($1, $2, $3)
		RETURNING id, recorded_at
	`

	err := s.db.QueryRowContext(ctx, query, l.TruckID, l.Latitude, l.Longitude).Scan(&l.ID, &l.RecordedAt)
	if err != nil {
		return fmt.Errorf("creating location: %w", database.MapError(err))
	}

	return nil
}

func (s *Store) Get(ctx context.Context, id int64) (*location.Location, error) {
	l, err := scanLocation(s.db.QueryRowContext(ctx, `SELECT `+selectLocationColumns+` FROM locations WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fleet.NotFound("location", id)
		}

		return nil, fmt.Errorf("getting location: %w", err)
	}

	return l, nil
}

func (s *Store) Latest(ctx context.Context, truckID int64) (*location.Location, error) {
	query := `
		SELECT ` + selectLocationColumns + `
		FROM locations
		WHERE truck_id = $1
		ORDER BY recorded_at DESC, id DESC
		LIMIT 1
	`

	l, err := scanLocation(s.db.QueryRowContext(ctx, query, truckID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("no location recorded for truck %d: %w", truckID, fleet.ErrNotFound)
		}

		return nil, fmt.Errorf("getting latest location: %w", err)
	}

	return l, nil
}

func (s *Store) List(ctx context.Context, filter location.ListFilter) ([]*location.Location, error) {
	var f database.Filter

	if filter.TruckID != nil {
		f.Where("truck_id = ?", *filter.TruckID)
	}

	query := `SELECT ` + selectLocationColumns + ` FROM locations` + f.Clause() + ` ORDER BY recorded_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, f.Args()...)
	if err != nil {
		return nil, fmt.Errorf("listing locations: %w", err)
	}
	defer rows.Close()

	locations := []*location.Location{}

	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning location: %w", err)
		}

		locations = append(locations, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating location rows: %w", err)
	}

	return locations, nil
}

// Update never touches recorded_at.
func (s *Store) Update(ctx context.Context, id int64, apply func(l *location.Location) error) (*location.Location, error) {
	var l *location.Location

	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error

		l, err = scanLocation(tx.QueryRowContext(ctx, `SELECT `+selectLocationColumns+` FROM locations WHERE id = $1 FOR UPDATE`, id))
		if errors.Is(err, sql.ErrNoRows) {
			return fleet.NotFound("location", id)
		}

		if err != nil {
			return fmt.Errorf("locking location: %w", err)
		}

		if err := apply(l); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE locations SET truck_id = $1, latitude = $2, longitude = $3 WHERE id = $4`,
			l.TruckID, l.Latitude, l.Longitude, id,
		)
		if err != nil {
			return fmt.Errorf("updating location: %w", database.MapError(err))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return l, nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	found, err := database.DeleteByID(ctx, s.db, "locations", id)
	if err != nil {
		return fmt.Errorf("deleting location: %w", err)
	}

	if !found {
		return fleet.NotFound("location", id)
	}

	return nil
}
