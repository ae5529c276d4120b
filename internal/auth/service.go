package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/fleet/internal/fleet"
	"github.com/MrJamesThe3rd/fleet/internal/user"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=auth
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*user.User, error)
}

type Denylist interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	Revoked(ctx context.Context, jti string) (bool, error)
}

type Service struct {
	users    Authenticator
	issuer   *Issuer
	denylist Denylist
	rotate   bool
}

// NewService builds the token endpoints' logic. With rotate set, every refresh returns a new
// refresh token and revokes the one that was presented.
func NewService(users Authenticator, issuer *Issuer, denylist Denylist, rotate bool) *Service {
	return &Service{users: users, issuer: issuer, denylist: denylist, rotate: rotate}
}

func (s *Service) Login(ctx context.Context, username, password string) (Pair, error) {
	u, err := s.users.Authenticate(ctx, username, password)
	if err != nil {
		return Pair{}, err
	}

	return s.issuer.Pair(Principal{UserID: u.ID, Username: u.Username})
}

func (s *Service) Refresh(ctx context.Context, refresh string) (Pair, error) {
	claims, err := s.issuer.Parse(refresh, TypeRefresh)
	if err != nil {
		return Pair{}, err
	}

	revoked, err := s.denylist.Revoked(ctx, claims.ID)
	if err != nil {
		return Pair{}, err
	}

	if revoked {
		return Pair{}, fmt.Errorf("token is blacklisted: %w", fleet.ErrUnauthorized)
	}

	if !s.rotate {
		access, err := s.issuer.Access(claims.Principal())
		if err != nil {
			return Pair{}, err
		}

		return Pair{Access: access}, nil
	}

	pair, err := s.issuer.Pair(claims.Principal())
	if err != nil {
		return Pair{}, err
	}

	if err := s.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return Pair{}, err
	}

	return pair, nil
}
