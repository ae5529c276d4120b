package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/fleet/internal/client"
	"github.com/MrJamesThe3rd/fleet/internal/database"
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

func scanClient(s scanner) (*client.Client, error) {
	var c client.Client
	if err := s.Scan(&c.ID, &c.Name, &c.Company, &c.Email, &c.Phone, &c.Address, &c.RegisteredAt); err != nil {
		return nil, err
	}

	return &c, nil
}

const selectClientColumns = `id, name, company, email, phone, address, registered_at`

func (s *Store) Create(ctx context.Context, c *client.Client) error {
	query := `
		INSERT INTO clients (name, company, email, phone, address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, registered_at
	`

	err := s.db.QueryRowContext(ctx, query, c.Name, c.Company, c.Email, c.Phone, c.Address).
		Scan(&c.ID, &c.RegisteredAt)
	if err != nil {
		return fmt.Errorf("creating client: %w", database.MapError(err))
	}

	return nil
}

func (s *Store) Get(ctx context.Context, id int64) (*client.Client, error) {
	c, err := scanClient(s.db.QueryRowContext(ctx, `SELECT `+selectClientColumns+` FROM clients WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fleet.NotFound("client", id)
		}

		return nil, fmt.Errorf("getting client: %w", err)
	}

	return c, nil
}

func (s *Store) GetMany(ctx context.Context, ids []int64) ([]*client.Client, error) {
	return s.query(ctx, `SELECT `+selectClientColumns+` FROM clients WHERE id = ANY($1)`, ids)
}

func (s *Store) List(ctx context.Context) ([]*client.Client, error) {
	return s.query(ctx, `SELECT `+selectClientColumns+` FROM clients ORDER BY id`)
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]*client.Client, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	defer rows.Close()

	clients := []*client.Client{}

	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning client: %w", err)
		}

		clients = append(clients, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating client rows: %w", err)
	}

	return clients, nil
}

func (s *Store) Update(ctx context.Context, id int64, apply func(c *client.Client) error) (*client.Client, error) {
	var c *client.Client

	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error

		c, err = scanClient(tx.QueryRowContext(ctx, `SELECT `+selectClientColumns+` FROM clients WHERE id = $1 FOR UPDATE`, id))
		if errors.Is(err, sql.ErrNoRows) {
			return fleet.NotFound("client", id)
		}

		if err != nil {
			return fmt.Errorf("locking client: %w", err)
		}

		if err := apply(c); err != nil {
			return err
		}

		update := `
			UPDATE clients
			SET name = $1, company = $2, email = $3, phone = $4, address = $5
			WHERE id = $6
		`

		_, err = tx.ExecContext(ctx, update, c.Name, c.Company, c.Email, c.Phone, c.Address, id)
		if err != nil {
			return fmt.Errorf("updating client: %w", database.MapError(err))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	found, err := database.DeleteByID(ctx, s.db, "clients", id)
	if err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}

	if !found {
		return fleet.NotFound("client", id)
	}

	return nil
}
