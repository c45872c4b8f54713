package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const TokenTypeBearer = "bearer"

var ErrInvalidToken = errors.New("invalid token")

type IssuedToken struct {
	AccessToken string
	TokenID     string
	ExpiresAt   time.Time
	TTL         time.Duration
}

type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (ti *TokenIssuer) TTL() time.Duration {
	return ti.ttl
}

// Issue signs an HS256 token for the username, carrying a unique token id.
func (ti *TokenIssuer) Issue(username string) (IssuedToken, error) {
	now := ti.now()
	expiresAt := now.Add(ti.ttl)
	tokenID := uuid.NewString()

	claims := jwt.RegisteredClaims{
		Subject:   username,
		ID:        tokenID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.secret)
	if err != nil {
		return IssuedToken{}, fmt.Errorf("sign token: %w", err)
	}

	return IssuedToken{
		AccessToken: signed,
		TokenID:     tokenID,
		ExpiresAt:   expiresAt,
		TTL:         ti.ttl,
	}, nil
}

// Parse verifies the signature and expiry, and returns the token claims.
func (ti *TokenIssuer) Parse(rawToken string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(
		rawToken,
		claims,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return ti.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(ti.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
