package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrBadCredentials  = errors.New("incorrect username or password")
	ErrInactiveUser    = errors.New("inactive user")
	ErrTokenRevoked    = errors.New("token revoked")
	ErrAccountNotFound = errors.New("account not found")
)

// Account is the subset of a user record needed to authenticate it.
type Account struct {
	ID             uuid.UUID
	Username       string
	HashedPassword string
	Disabled       bool
	IsAdmin        bool
}

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=auth_test
type accountFinder interface {
	FindAccount(ctx context.Context, username string) (*Account, error)
}

type revocations interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type Service struct {
	accounts    accountFinder
	issuer      *TokenIssuer
	revocations revocations
}

func NewService(accounts accountFinder, issuer *TokenIssuer, revocations revocations) *Service {
	return &Service{
		accounts:    accounts,
		issuer:      issuer,
		revocations: revocations,
	}
}

// Login checks the credentials and issues a new access token.
func (s *Service) Login(ctx context.Context, username, password string) (_ IssuedToken, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.service.login")
	defer func() {
		if errors.Is(err, ErrBadCredentials) {
			span.SetAttributes(attribute.Bool("auth.bad_credentials", true))
			span.End()
			return
		}
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("auth.username", username))

	account, err := s.accounts.FindAccount(ctx, username)
	if errors.Is(err, ErrAccountNotFound) {
		log.Tracef("[login] unknown user: %s", username)
		return IssuedToken{}, ErrBadCredentials
	}
	if err != nil {
		return IssuedToken{}, fmt.Errorf("find account: %w", err)
	}

	if !pkg.CheckPasswordHash(password, account.HashedPassword) {
		log.Tracef("[login] wrong password for user: %s", username)
		return IssuedToken{}, ErrBadCredentials
	}
	if account.Disabled {
		return IssuedToken{}, ErrInactiveUser
	}

	return s.issuer.Issue(account.Username)
}

// Authenticate resolves a bearer token to a principal. The token must be valid,
// not revoked, and belong to an existing enabled user.
func (s *Service) Authenticate(ctx context.Context, rawToken string) (_ *Principal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.service.authenticate")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	claims, err := s.issuer.Parse(rawToken)
	if err != nil {
		return nil, err
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	account, err := s.accounts.FindAccount(ctx, claims.Subject)
	if errors.Is(err, ErrAccountNotFound) {
		return nil, fmt.Errorf("%w: unknown subject", ErrInvalidToken)
	}
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	if account.Disabled {
		return nil, ErrInactiveUser
	}

	p := &Principal{
		UserID:   account.ID,
		Username: account.Username,
		IsAdmin:  account.IsAdmin,
		TokenID:  claims.ID,
	}
	if claims.ExpiresAt != nil {
		p.TokenExpiresAt = claims.ExpiresAt.Time
	}
	span.SetAttributes(attribute.String("auth.username", p.Username))
	return p, nil
}

// Logout revokes the token the principal authenticated with.
func (s *Service) Logout(ctx context.Context, p *Principal) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.service.logout")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if p == nil || p.TokenID == "" {
		return ErrInvalidToken
	}
	return s.revocations.Revoke(ctx, p.TokenID, p.TokenExpiresAt)
}

func (s *Service) TokenTTL() time.Duration {
	return s.issuer.TTL()
}
