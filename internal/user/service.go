package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/MrJamesThe3rd/fleet/internal/fleet"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=user
type Repository interface {
	Create(ctx context.Context, u *User) error
	Get(ctx context.Context, id int64) (*User, error)
	// GetByUsername returns fleet.ErrNotFound when no account has the name.
	GetByUsername(ctx context.Context, username string) (*User, error)
	Update(ctx context.Context, id int64, apply func(u *User) error) (*User, error)
}

var emailCheck = validator.New()

type Service struct {
	repo Repository
	cost int
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, cost: bcrypt.DefaultCost}
}

type CreateParams struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
}

// ProfilePatch is the self-service subset of a user. Nil fields are left unchanged.
type ProfilePatch struct {
	FirstName *string
	LastName  *string
	Email     *string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*User, error) {
	if err := fleet.FirstError(
		fleet.Required("username", params.Username),
		fleet.MaxLen("username", params.Username, 150),
		fleet.Required("password", params.Password),
	); err != nil {
		return nil, err
	}

	// bcrypt ignores everything past 72 bytes.
	if len(params.Password) > 72 {
		return nil, fleet.Invalid("password", "must be at most 72 bytes")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	u := &User{
		Username:     params.Username,
		PasswordHash: string(hash),
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Email:        params.Email,
	}

	if err := validateProfile(u); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// Authenticate returns the user whose credentials match. Unknown users and wrong passwords
// both fail with fleet.ErrUnauthorized.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if errors.Is(err, fleet.ErrNotFound) {
		return nil, fmt.Errorf("invalid credentials: %w", fleet.ErrUnauthorized)
	}

	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", fleet.ErrUnauthorized)
	}

	return u, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) UpdateProfile(ctx context.Context, id int64, patch ProfilePatch) (*User, error) {
	return s.repo.Update(ctx, id, func(u *User) error {
		if patch.FirstName != nil {
			u.FirstName = *patch.FirstName
		}

		if patch.LastName != nil {
			u.LastName = *patch.LastName
		}

		if patch.Email != nil {
			u.Email = *patch.Email
		}

		return validateProfile(u)
	})
}

func validateProfile(u *User) error {
	if err := emailCheck.Var(u.Email, "omitempty,email"); err != nil {
		return fleet.Invalid("email", "enter a valid email address")
	}

	return fleet.FirstError(
		fleet.MaxLen("first_name", u.FirstName, 150),
		fleet.MaxLen("last_name", u.LastName, 150),
		fleet.MaxLen("email", u.Email, 254),
	)
}
