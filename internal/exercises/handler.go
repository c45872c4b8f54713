package exercises

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/fittrack/internal/auth"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=exercises_test

type exercisesService interface {
	Create(ctx context.Context, p *auth.Principal, req CreateRequest) (*Exercise, error)
	CreateBatch(ctx context.Context, p *auth.Principal, reqs []CreateRequest) ([]Exercise, error)
	Get(ctx context.Context, p *auth.Principal, id uuid.UUID) (*Exercise, error)
	List(ctx context.Context, p *auth.Principal, params ListParams) ([]Exercise, error)
	Categorized(ctx context.Context, p *auth.Principal) (map[string][]Exercise, error)
	Update(ctx context.Context, p *auth.Principal, id uuid.UUID, req UpdateRequest) (*Exercise, error)
	Delete(ctx context.Context, p *auth.Principal, id uuid.UUID) error
}

type batchCreateRequest struct {
	Exercises []CreateRequest `json:"exercises" validate:"dive"`
}

type Handler struct {
	service   exercisesService
	validator *validator.Validate
}

func NewHandler(service exercisesService) *Handler {
	return &Handler{
		service:   service,
		validator: NewValidator(),
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/api/exercises", handler.HandleCreate).Methods("POST").Name("exercises-create")
	router.HandleFunc("/api/exercises/batch", handler.HandleCreateBatch).Methods("POST").Name("exercises-batch")
	router.HandleFunc("/api/exercises", handler.HandleList).Methods("GET").Name("exercises-list")
	router.HandleFunc("/api/exercises/categorized", handler.HandleCategorized).Methods("GET").Name("exercises-categorized")
	router.HandleFunc("/api/exercises/{id}", handler.HandleGet).Methods("GET").Name("exercises-get")
	router.HandleFunc("/api/exercises/{id}", handler.HandleUpdate).Methods("PATCH").Name("exercises-update")
	router.HandleFunc("/api/exercises/{id}", handler.HandleDelete).Methods("DELETE").Name("exercises-delete")
}

// writeError maps service errors to responses. Unexpected ones are logged and hidden.
func writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrExerciseNotFound):
		http.Error(w, "Exercise not found", http.StatusNotFound)
	case errors.Is(err, ErrExerciseExists):
		http.Error(w, "Exercise already exists", http.StatusConflict)
	case errors.Is(err, ErrExerciseReferenced):
		http.Error(w, "Exercise is referenced by logged workouts", http.StatusConflict)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "Not enough permissions to modify this exercise", http.StatusForbidden)
	default:
		log.Errorf("%s: %s", op, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func exerciseIDFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := pkg.PathUUID(r, "id")
	if err != nil {
		http.Error(w, "error, invalid exercise id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.create")
	defer span.End()

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new exercise, unmarshal json params: %s", err)
		http.Error(w, "error, invalid request body", http.StatusBadRequest)
		return
	}
	req.normalize()
	if err := handler.validator.Struct(req); err != nil {
		http.Error(w, pkg.ValidationErrorMessage(err), http.StatusBadRequest)
		return
	}

	added, err := handler.service.Create(ctx, auth.PrincipalFromContext(ctx), req)
	if err != nil {
		writeError(w, "create exercise", err)
		return
	}

	span.SetAttributes(attribute.String("exercise.id", added.ID.String()))
	log.Debugf("new exercise added: %s [%s]", added.Name, added.ID)
	pkg.WriteJSON(w, added, http.StatusCreated)
}

func (handler *Handler) HandleCreateBatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.batch")
	defer span.End()

	var batch batchCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&batch.Exercises); err != nil {
		log.Tracef("batch exercises, unmarshal json params: %s", err)
		http.Error(w, "error, invalid request body", http.StatusBadRequest)
		return
	}
	for i := range batch.Exercises {
		batch.Exercises[i].normalize()
	}
	if err := handler.validator.Struct(batch); err != nil {
		http.Error(w, pkg.ValidationErrorMessage(err), http.StatusBadRequest)
		return
	}

	created, err := handler.service.CreateBatch(ctx, auth.PrincipalFromContext(ctx), batch.Exercises)
	if err != nil {
		writeError(w, "create exercises batch", err)
		return
	}

	span.SetAttributes(attribute.Int("exercises.created", len(created)))
	pkg.WriteJSON(w, created, http.StatusOK)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.get")
	defer span.End()

	id, ok := exerciseIDFromPath(w, r)
	if !ok {
		return
	}

	ex, err := handler.service.Get(ctx, auth.PrincipalFromContext(ctx), id)
	if err != nil {
		writeError(w, "get exercise", err)
		return
	}

	pkg.WriteJSON(w, ex, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.list")
	defer span.End()

	query := r.URL.Query()
	params := ListParams{
		Name: query.Get("name"),
	}
	if categoryStr := query.Get("category"); categoryStr != "" {
		category, err := ParseCategory(categoryStr)
		if err != nil {
			http.Error(w, "error, invalid category", http.StatusBadRequest)
			return
		}
		params.Category = &category
	}
	if ownerStr := query.Get("owner"); ownerStr != "" {
		ownerID, err := uuid.Parse(ownerStr)
		if err != nil {
			http.Error(w, "error, invalid owner id", http.StatusBadRequest)
			return
		}
		params.OwnerID = &ownerID
	}

	exercises, err := handler.service.List(ctx, auth.PrincipalFromContext(ctx), params)
	if err != nil {
		writeError(w, "list exercises", err)
		return
	}

	span.SetAttributes(attribute.Int("exercises.count", len(exercises)))
	pkg.WriteJSON(w, exercises, http.StatusOK)
}

func (handler *Handler) HandleCategorized(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.categorized")
	defer span.End()

	grouped, err := handler.service.Categorized(ctx, auth.PrincipalFromContext(ctx))
	if err != nil {
		writeError(w, "categorized exercises", err)
		return
	}

	pkg.WriteJSON(w, grouped, http.StatusOK)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.update")
	defer span.End()

	id, ok := exerciseIDFromPath(w, r)
	if !ok {
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("update exercise, unmarshal json params: %s", err)
		http.Error(w, "error, invalid request body", http.StatusBadRequest)
		return
	}
	req.normalize()
	if err := handler.validator.Struct(req); err != nil {
		http.Error(w, pkg.ValidationErrorMessage(err), http.StatusBadRequest)
		return
	}

	updated, err := handler.service.Update(ctx, auth.PrincipalFromContext(ctx), id, req)
	if err != nil {
		writeError(w, "update exercise", err)
		return
	}

	pkg.WriteJSON(w, updated, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.delete")
	defer span.End()

	id, ok := exerciseIDFromPath(w, r)
	if !ok {
		return
	}

	if err := handler.service.Delete(ctx, auth.PrincipalFromContext(ctx), id); err != nil {
		writeError(w, "delete exercise", err)
		return
	}

	log.Debugf("exercise %s deleted", id)
	pkg.WriteJSONResponseOK(w, "true")
}
