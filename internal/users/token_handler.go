package users

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/2beens/fittrack/internal/auth"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=token_handler_mocks_test.go -package=users_test

type tokenService interface {
	Login(ctx context.Context, username, password string) (auth.IssuedToken, error)
	Logout(ctx context.Context, p *auth.Principal) error
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleToken accepts the OAuth2 password flow form as well as a JSON body.
func (handler *Handler) HandleToken(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.token")
	defer span.End()

	var loginReq loginRequest
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
			log.Tracef("login, unmarshal json params: %s", err)
			http.Error(w, "error, invalid request body", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			log.Tracef("login failed, parse form error: %s", err)
			http.Error(w, "parse form error", http.StatusBadRequest)
			return
		}
		loginReq = loginRequest{
			Username: r.PostForm.Get("username"),
			Password: r.PostForm.Get("password"),
		}
	}

	if loginReq.Username == "" || loginReq.Password == "" {
		http.Error(w, "error, username and password are required", http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.String("user.username", loginReq.Username))

	token, err := handler.tokens.Login(ctx, loginReq.Username, loginReq.Password)
	switch {
	case errors.Is(err, auth.ErrBadCredentials):
		handler.metricsManager.CounterLoginAttempts.WithLabelValues("bad_credentials").Inc()
		w.Header().Set("WWW-Authenticate", "Bearer")
		http.Error(w, "Incorrect username or password", http.StatusUnauthorized)
		return
	case errors.Is(err, auth.ErrInactiveUser):
		handler.metricsManager.CounterLoginAttempts.WithLabelValues("inactive").Inc()
		http.Error(w, "Inactive user", http.StatusBadRequest)
		return
	case err != nil:
		handler.metricsManager.CounterLoginAttempts.WithLabelValues("error").Inc()
		log.Errorf("login failed, generate token error: %s", err)
		http.Error(w, "generate token error", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterLoginAttempts.WithLabelValues("success").Inc()
	log.Tracef("new login success: %s", loginReq.Username)
	w.Header().Set("Cache-Control", "no-store")
	pkg.WriteJSON(w, TokenResponse{
		AccessToken: token.AccessToken,
		TokenType:   auth.TokenTypeBearer,
		ExpiresIn:   int(token.TTL.Seconds()),
	}, http.StatusOK)
}

func (handler *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.logout")
	defer span.End()

	p := auth.PrincipalFromContext(ctx)
	if err := handler.tokens.Logout(ctx, p); err != nil {
		log.Errorf("logout [%s]: %s", p.Username, err)
		http.Error(w, "logout failed", http.StatusInternalServerError)
		return
	}

	log.Debugf("logout for [%s] success", p.Username)
	pkg.WriteTextResponseOK(w, "logged-out")
}
