// Package token issues and verifies the bearer tokens handed out at
// registration and login.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TTL is the lifetime of every issued token.
const TTL = 30 * 24 * time.Hour

// ErrInvalidToken is the only error Verify returns. Malformed, tampered,
// foreign-signed and expired tokens are indistinguishable to callers.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the signed payload: {user_id, email, exp}.
type Claims struct {
	UserID uint64 `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type TokenService interface {
	Issue(userID uint64, email string) (string, error)
	Verify(tokenString string) (*Claims, error)
}

type Option func(*jwtTokenService)

// WithClock overrides the time source used for issuing and validating.
func WithClock(now func() time.Time) Option {
	return func(s *jwtTokenService) {
		s.now = now
	}
}

type jwtTokenService struct {
	secret []byte
	now    func() time.Time
}

// NewTokenService returns an HS256 token service bound to secret.
func NewTokenService(secret string, opts ...Option) TokenService {
	s := &jwtTokenService{
		secret: []byte(secret),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *jwtTokenService) Issue(userID uint64, email string) (string, error) {
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(s.now().Add(TTL)),
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func (s *jwtTokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
