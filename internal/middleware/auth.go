package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/2beens/fittrack/internal/auth"
	"github.com/2beens/fittrack/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const MsgNotEnoughPrivileges = "The user doesn't have enough privileges"

//go:generate mockgen -source=$GOFILE -destination=auth_mocks_test.go -package=middleware_test
type authenticator interface {
	Authenticate(ctx context.Context, rawToken string) (*auth.Principal, error)
}

type AuthMiddlewareHandler struct {
	authenticator authenticator
}

func NewAuthMiddlewareHandler(authenticator authenticator) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		authenticator: authenticator,
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", true
	}
	return strings.TrimSpace(token), true
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	http.Error(w, msg, http.StatusUnauthorized)
}

// AuthCheck resolves an optional bearer token into the request principal.
// Requests without the Authorization header continue anonymously, while a present but
// unusable token is rejected.
func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				span.SetStatus(codes.Ok, "options-ok")
				next.ServeHTTP(w, r)
				return
			}

			token, present := bearerToken(r)
			if !present {
				span.SetStatus(codes.Ok, "anonymous")
				next.ServeHTTP(w, r)
				return
			}
			if token == "" {
				log.Tracef("[malformed auth header] [auth middleware] unauthorized => %s", r.URL.Path)
				unauthorized(w, "Could not validate credentials")
				span.SetStatus(codes.Error, "malformed-auth-header")
				return
			}

			principal, err := h.authenticator.Authenticate(ctx, token)
			if err != nil {
				switch {
				case errors.Is(err, auth.ErrInactiveUser):
					log.Tracef("[inactive user] [auth middleware] unauthorized => %s", r.URL.Path)
					unauthorized(w, "Inactive user")
				case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenRevoked):
					log.Tracef("[invalid token] [auth middleware] unauthorized => %s: %s", r.URL.Path, err)
					unauthorized(w, "Could not validate credentials")
				default:
					log.Errorf("[failed auth check] => %s: %s", r.URL.Path, err)
					unauthorized(w, "Could not validate credentials")
				}
				span.SetStatus(codes.Error, "not-authenticated")
				span.RecordError(err)
				return
			}

			span.SetAttributes(attribute.String("auth.username", principal.Username))
			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
		})
	}
}

// RequireUser rejects anonymous requests with 401.
func RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if auth.PrincipalFromContext(r.Context()) == nil {
			unauthorized(w, "Not authenticated")
			return
		}
		next(w, r)
	}
}

// RequireAdmin rejects anonymous requests with 401 and non admins with 403.
func RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return RequireUser(func(w http.ResponseWriter, r *http.Request) {
		if !auth.PrincipalFromContext(r.Context()).Admin() {
			http.Error(w, MsgNotEnoughPrivileges, http.StatusForbidden)
			return
		}
		next(w, r)
	})
}

// RequireUserIf applies RequireUser only when the switch is on.
func RequireUserIf(enabled bool, next http.HandlerFunc) http.HandlerFunc {
	if !enabled {
		return next
	}
	return RequireUser(next)
}
