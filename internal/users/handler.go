package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/fittrack/internal/auth"
	"github.com/2beens/fittrack/internal/middleware"
	"github.com/2beens/fittrack/internal/telemetry/metrics"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=users_test

type usersRepo interface {
	Add(ctx context.Context, user User) (*User, error)
	Get(ctx context.Context, id uuid.UUID) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, id uuid.UUID, changes Changes) (*User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ownedDataCache caches rows that are removed together with their owning user.
type ownedDataCache interface {
	Clear()
}

type Handler struct {
	repo           usersRepo
	tokens         tokenService
	ownedData      []ownedDataCache
	validator      *validator.Validate
	metricsManager *metrics.Manager
}

func NewHandler(
	repo usersRepo,
	tokens tokenService,
	metricsManager *metrics.Manager,
	ownedData ...ownedDataCache,
) *Handler {
	return &Handler{
		repo:           repo,
		tokens:         tokens,
		ownedData:      ownedData,
		validator:      pkg.NewValidator(),
		metricsManager: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(
	router *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	loginAllowedPerMin int,
	trustProxyHeaders bool,
) {
	loginRateLimit := middleware.RateLimit(rateLimiter, "login", loginAllowedPerMin, trustProxyHeaders, handler.metricsManager)
	router.Handle("/users/token", loginRateLimit(http.HandlerFunc(handler.HandleToken))).
		Methods("POST").Name("users-token")
	router.HandleFunc("/users/logout", middleware.RequireUser(handler.HandleLogout)).
		Methods("POST").Name("users-logout")

	router.HandleFunc("/users", handler.HandleCreate).Methods("POST").Name("users-create")
	router.HandleFunc("/users", middleware.RequireAdmin(handler.HandleList)).Methods("GET").Name("users-list")
	router.HandleFunc("/users/me", middleware.RequireUser(handler.HandleMe)).Methods("GET").Name("users-me")
	router.HandleFunc("/users/{id}", middleware.RequireUser(handler.HandleGet)).Methods("GET").Name("users-get")
	router.HandleFunc("/users/{id}", middleware.RequireUser(handler.HandleUpdate)).Methods("PATCH").Name("users-update")
	router.HandleFunc("/users/{id}", middleware.RequireAdmin(handler.HandleDelete)).Methods("DELETE").Name("users-delete")
}

func writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		http.Error(w, "User not found", http.StatusNotFound)
	case errors.Is(err, ErrUsernameExists):
		http.Error(w, "Username already exists", http.StatusConflict)
	case errors.Is(err, ErrEmailExists):
		http.Error(w, "Email already registered", http.StatusConflict)
	case errors.Is(err, ErrUserReferenced):
		http.Error(w, "User data is referenced by other users' workouts", http.StatusConflict)
	default:
		log.Errorf("%s: %s", op, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func userIDFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := pkg.PathUUID(r, "id")
	if err != nil {
		http.Error(w, "error, invalid user id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.create")
	defer span.End()

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new user, unmarshal json params: %s", err)
		http.Error(w, "error, invalid request body", http.StatusBadRequest)
		return
	}
	req.normalize()
	if err := handler.validator.Struct(req); err != nil {
		http.Error(w, pkg.ValidationErrorMessage(err), http.StatusBadRequest)
		return
	}

	caller := auth.PrincipalFromContext(ctx)
	if req.IsAdmin && !caller.Admin() {
		log.Warnf("non admin tried to create admin user [%s]", req.Username)
		req.IsAdmin = false
	}

	hashedPassword, err := pkg.HashPassword(req.Password)
	if err != nil {
		log.Errorf("hash password: %s", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	added, err := handler.repo.Add(ctx, User{
		ID:             uuid.New(),
		Username:       req.Username,
		Email:          req.Email,
		FullName:       req.FullName,
		HashedPassword: hashedPassword,
		IsAdmin:        req.IsAdmin,
	})
	if err != nil {
		writeError(w, "create user", err)
		return
	}

	handler.metricsManager.CounterUsersCreated.Inc()
	span.SetAttributes(attribute.String("user.id", added.ID.String()))
	log.Debugf("new user added: %s [%s]", added.Username, added.ID)
	pkg.WriteJSON(w, added, http.StatusCreated)
}

func (handler *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.me")
	defer span.End()

	u, err := handler.repo.Get(ctx, auth.PrincipalFromContext(ctx).UserID)
	if err != nil {
		writeError(w, "get current user", err)
		return
	}
	pkg.WriteJSON(w, u, http.StatusOK)
}

// HandleGet serves the user itself and admins. Other callers get 404.
func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.get")
	defer span.End()

	id, ok := userIDFromPath(w, r)
	if !ok {
		return
	}

	caller := auth.PrincipalFromContext(ctx)
	if !caller.Admin() && !caller.Is(id) {
		writeError(w, "get user", ErrUserNotFound)
		return
	}

	u, err := handler.repo.Get(ctx, id)
	if err != nil {
		writeError(w, "get user", err)
		return
	}
	pkg.WriteJSON(w, u, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.list")
	defer span.End()

	users, err := handler.repo.List(ctx)
	if err != nil {
		writeError(w, "list users", err)
		return
	}
	pkg.WriteJSON(w, users, http.StatusOK)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.update")
	defer span.End()

	id, ok := userIDFromPath(w, r)
	if !ok {
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("update user, unmarshal json params: %s", err)
		http.Error(w, "error, invalid request body", http.StatusBadRequest)
		return
	}
	req.normalize()
	if err := handler.validator.Struct(req); err != nil {
		http.Error(w, pkg.ValidationErrorMessage(err), http.StatusBadRequest)
		return
	}

	caller := auth.PrincipalFromContext(ctx)
	if !caller.Admin() {
		if !caller.Is(id) {
			http.Error(w, middleware.MsgNotEnoughPrivileges, http.StatusForbidden)
			return
		}
		if req.privileged() {
			http.Error(w, middleware.MsgNotEnoughPrivileges, http.StatusForbidden)
			return
		}
	}

	changes := Changes{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Disabled: req.Disabled,
		IsAdmin:  req.IsAdmin,
	}
	if req.Password != nil {
		hashedPassword, err := pkg.HashPassword(*req.Password)
		if err != nil {
			log.Errorf("hash password: %s", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		changes.HashedPassword = &hashedPassword
	}

	var (
		updated *User
		err     error
	)
	if changes.Empty() {
		updated, err = handler.repo.Get(ctx, id)
	} else {
		updated, err = handler.repo.Update(ctx, id, changes)
	}
	if err != nil {
		writeError(w, "update user", err)
		return
	}
	pkg.WriteJSON(w, updated, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.delete")
	defer span.End()

	id, ok := userIDFromPath(w, r)
	if !ok {
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil {
		writeError(w, "delete user", err)
		return
	}

	// owned exercises were removed by the cascade
	for _, c := range handler.ownedData {
		c.Clear()
	}

	log.Debugf("user %s deleted", id)
	pkg.WriteJSONResponseOK(w, "true")
}
