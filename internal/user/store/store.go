package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/fleet/internal/database"
	"github.com/MrJamesThe3rd/fleet/internal/fleet"
	"github.com/MrJamesThe3rd/fleet/internal/user"
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

// Expected column order: id, username, password_hash, first_name, last_name, email, created_at
func scanUser(s scanner) (*user.User, error) {
	var u user.User
	if err := s.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Email, &u.CreatedAt); err != nil {
		return nil, err
	}

	return &u, nil
}

const selectUserColumns = `id, username, password_hash, first_name, last_name, email, created_at`

func (s *Store) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (username, password_hash, first_name, last_name, email)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, u.Username, u.PasswordHash, u.FirstName, u.LastName, u.Email).
		Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating user: %w", database.MapError(err))
	}

	return nil
}

func (s *Store) Get(ctx context.Context, id int64) (*user.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, `SELECT `+selectUserColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fleet.NotFound("user", id)
		}

		return nil, fmt.Errorf("getting user: %w", err)
	}

	return u, nil
}

func (s *Store) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, `SELECT `+selectUserColumns+` FROM users WHERE username = $1`, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %q: %w", username, fleet.ErrNotFound)
		}

		return nil, fmt.Errorf("getting user by username: %w", err)
	}

	return u, nil
}

func (s *Store) Update(ctx context.Context, id int64, apply func(u *user.User) error) (*user.User, error) {
	var u *user.User

	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error

		u, err = scanUser(tx.QueryRowContext(ctx, `SELECT `+selectUserColumns+` FROM users WHERE id = $1 FOR UPDATE`, id))
		if errors.Is(err, sql.ErrNoRows) {
			return fleet.NotFound("user", id)
		}

		if err != nil {
			return fmt.Errorf("locking user: %w", err)
		}

		if err := apply(u); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE users SET first_name = $1, last_name = $2, email = $3 WHERE id = $4`,
			u.FirstName, u.LastName, u.Email, id,
		)
		if err != nil {
			return fmt.Errorf("updating user: %w", database.MapError(err))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return u, nil
}
