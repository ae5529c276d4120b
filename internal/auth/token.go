// Package auth issues and checks the bearer tokens that identify API callers.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fleet/internal/fleet"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Claims is the payload of both token types.
type Claims struct {
	jwt.RegisteredClaims
	TokenType string `json:"token_type"`
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
}

func (c *Claims) Principal() Principal {
	return Principal{UserID: c.UserID, Username: c.Username}
}

// Pair is the result of a login or refresh. Refresh is empty when a refresh did not rotate.
type Pair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// Issuer signs and verifies HS256 tokens with a shared secret.
type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewIssuer(secret string, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (i *Issuer) Access(p Principal) (string, error) {
	return i.sign(p, TypeAccess, i.accessTTL)
}

func (i *Issuer) Refresh(p Principal) (string, error) {
	return i.sign(p, TypeRefresh, i.refreshTTL)
}

func (i *Issuer) Pair(p Principal) (Pair, error) {
	access, err := i.Access(p)
	if err != nil {
		return Pair{}, err
	}

	refresh, err := i.Refresh(p)
	if err != nil {
		return Pair{}, err
	}

	return Pair{Access: access, Refresh: refresh}, nil
}

func (i *Issuer) sign(p Principal, tokenType string, ttl time.Duration) (string, error) {
	now := i.now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   p.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		TokenType: tokenType,
		UserID:    p.UserID,
		Username:  p.Username,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("signing %s token: %w", tokenType, err)
	}

	return signed, nil
}

// Parse verifies the signature, expiry and type of token. Every failure wraps fleet.ErrUnauthorized.
func (i *Issuer) Parse(token, tokenType string) (*Claims, error) {
	var claims Claims

	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("token expired: %w", fleet.ErrUnauthorized)
		}

		return nil, fmt.Errorf("invalid token: %w", fleet.ErrUnauthorized)
	}

	if claims.TokenType != tokenType {
		return nil, fmt.Errorf("token is not an %s token: %w", tokenType, fleet.ErrUnauthorized)
	}

	return &claims, nil
}
