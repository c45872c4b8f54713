package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/2beens/fittrack/internal/exercises"
	"github.com/2beens/fittrack/internal/middleware"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/internal/users"
	"github.com/2beens/fittrack/pkg"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=workouts_test

const uuidPattern = `[0-9a-fA-F-]{36}`

type workoutsService interface {
	Create(ctx context.Context, req CreateRequest) (*Workout, error)
	Get(ctx context.Context, id uuid.UUID) (*Workout, error)
	List(ctx context.Context) ([]Workout, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*Workout, error)
	Delete(ctx context.Context, id uuid.UUID) error
	LogExercise(ctx context.Context, workoutID uuid.UUID, req LogRequest) (*LoggedExercise, error)
	Entries(ctx context.Context, workoutID uuid.UUID) ([]LoggedExercise, error)
	RemoveEntries(ctx context.Context, workoutID, exerciseID uuid.UUID) error
	Latest(ctx context.Context, username string, workoutType *exercises.Category) (*Workout, error)
	AllForUser(ctx context.Context, username string) ([]Workout, error)
	Frequency(ctx context.Context, username string) (*Frequency, error)
	CountByType(ctx context.Context, username string, workoutType exercises.Category) (*TypeCount, error)
}

type Handler struct {
	service     workoutsService
	validator   *validator.Validate
	requireAuth bool
}

func NewHandler(service workoutsService, requireAuth bool) *Handler {
	return &Handler{
		service:     service,
		validator:   exercises.NewValidator(),
		requireAuth: requireAuth,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	guard := func(next http.HandlerFunc) http.HandlerFunc {
		return middleware.RequireUserIf(handler.requireAuth, next)
	}

	idPath := "/api/workouts/{id:" + uuidPattern + "}"
	router.HandleFunc("/api/workouts", guard(handler.HandleCreate)).Methods("POST").Name("workouts-create")
	router.HandleFunc("/api/workouts", guard(handler.HandleList)).Methods("GET").Name("workouts-list")
	router.HandleFunc(idPath, guard(handler.HandleGet)).Methods("GET").Name("workouts-get")
	router.HandleFunc(idPath, guard(handler.HandleUpdate)).Methods("PATCH").Name("workouts-update")
	router.HandleFunc(idPath, guard(handler.HandleDelete)).Methods("DELETE").Name("workouts-delete")

	userPath := "/api/workouts/user/{username}"
	router.HandleFunc(userPath+"/latest", guard(handler.HandleLatest)).Methods("GET").Name("workouts-latest")
	router.HandleFunc(userPath+"/latest/{type}", guard(handler.HandleLatest)).Methods("GET").Name("workouts-latest-type")
	router.HandleFunc(userPath+"/all", guard(handler.HandleAllForUser)).Methods("GET").Name("workouts-user-all")
	router.HandleFunc(userPath+"/frequency", guard(handler.HandleFrequency)).Methods("GET").Name("workouts-frequency")
	router.HandleFunc(userPath+"/count/{type}", guard(handler.HandleCountByType)).Methods("GET").Name("workouts-count-type")

	entriesPath := "/logged_exercises/{workout_id:" + uuidPattern + "}"
	router.HandleFunc(entriesPath+"/log", guard(handler.HandleLogExercise)).Methods("POST").Name("logged-exercises-log")
	router.HandleFunc(entriesPath+"/entries", guard(handler.HandleEntries)).Methods("GET").Name("logged-exercises-entries")
	router.HandleFunc(entriesPath+"/entry/{exercise_id:"+uuidPattern+"}", guard(handler.HandleRemoveEntries)).
		Methods("DELETE").Name("logged-exercises-remove")
}

func writeError(w http.ResponseWriter, op string, err error) {
	var unresolved *UnresolvedExerciseError
	switch {
	case errors.As(err, &unresolved):
		http.Error(w, fmt.Sprintf("Exercise '%s' not found", unresolved.Name), http.StatusNotFound)
	case errors.Is(err, exercises.ErrExerciseNotFound):
		http.Error(w, "Exercise not found", http.StatusNotFound)
	case errors.Is(err, users.ErrUserNotFound):
		http.Error(w, "User not found", http.StatusNotFound)
	case errors.Is(err, ErrWorkoutNotFound):
		http.Error(w, "Workout not found", http.StatusNotFound)
	case errors.Is(err, ErrLoggedExerciseNotFound):
		http.Error(w, "Logged exercise not found", http.StatusNotFound)
	case errors.Is(err, ErrNoWorkouts):
		http.Error(w, "No workouts found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidSet):
		http.Error(w, "Invalid set: set_number must be positive, reps and weight not negative", http.StatusBadRequest)
	default:
		log.Errorf("%s: %s", op, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func idFromPath(w http.ResponseWriter, r *http.Request, key string) (uuid.UUID, bool) {
	id, err := pkg.PathUUID(r, key)
	if err != nil {
		http.Error(w, fmt.Sprintf("error, invalid %s", key), http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

// typeFromPath parses the optional {type} path variable.
func typeFromPath(w http.ResponseWriter, r *http.Request) (*exercises.Category, bool) {
	raw, ok := mux.Vars(r)["type"]
	if !ok {
		return nil, true
	}
	category, err := exercises.ParseCategory(raw)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid workout type: %s", raw), http.StatusBadRequest)
		return nil, false
	}
	return &category, true
}

func (handler *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Tracef("%s %s, unmarshal json params: %s", r.Method, r.URL.Path, err)
		http.Error(w, "error, invalid request body", http.StatusBadRequest)
		return false
	}
	if err := handler.validator.Struct(v); err != nil {
		http.Error(w, pkg.ValidationErrorMessage(err), http.StatusBadRequest)
		return false
	}
	return true
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.create")
	defer span.End()

	var req CreateRequest
	if !handler.decodeAndValidate(w, r, &req) {
		return
	}

	created, err := handler.service.Create(ctx, req)
	if err != nil {
		writeError(w, "create workout", err)
		return
	}

	span.SetAttributes(attribute.String("workout.id", created.ID.String()))
	pkg.WriteJSON(w, created, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.get")
	defer span.End()

	id, ok := idFromPath(w, r, "id")
	if !ok {
		return
	}

	workout, err := handler.service.Get(ctx, id)
	if err != nil {
		writeError(w, "get workout", err)
		return
	}
	pkg.WriteJSON(w, workout, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list")
	defer span.End()

	workouts, err := handler.service.List(ctx)
	if err != nil {
		writeError(w, "list workouts", err)
		return
	}
	pkg.WriteJSON(w, workouts, http.StatusOK)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.update")
	defer span.End()

	id, ok := idFromPath(w, r, "id")
	if !ok {
		return
	}

	var req UpdateRequest
	if !handler.decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := handler.service.Update(ctx, id, req)
	if err != nil {
		writeError(w, "update workout", err)
		return
	}
	pkg.WriteJSON(w, updated, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.delete")
	defer span.End()

	id, ok := idFromPath(w, r, "id")
	if !ok {
		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		writeError(w, "delete workout", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (handler *Handler) HandleLatest(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.latest")
	defer span.End()

	workoutType, ok := typeFromPath(w, r)
	if !ok {
		return
	}

	latest, err := handler.service.Latest(ctx, mux.Vars(r)["username"], workoutType)
	if err != nil {
		writeError(w, "latest workout", err)
		return
	}
	pkg.WriteJSON(w, latest, http.StatusOK)
}

func (handler *Handler) HandleAllForUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.userall")
	defer span.End()

	workouts, err := handler.service.AllForUser(ctx, mux.Vars(r)["username"])
	if err != nil {
		writeError(w, "user workouts", err)
		return
	}
	pkg.WriteJSON(w, workouts, http.StatusOK)
}

func (handler *Handler) HandleFrequency(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.frequency")
	defer span.End()

	freq, err := handler.service.Frequency(ctx, mux.Vars(r)["username"])
	if err != nil {
		writeError(w, "workout frequency", err)
		return
	}
	pkg.WriteJSON(w, freq, http.StatusOK)
}

func (handler *Handler) HandleCountByType(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.countbytype")
	defer span.End()

	workoutType, ok := typeFromPath(w, r)
	if !ok {
		return
	}

	count, err := handler.service.CountByType(ctx, mux.Vars(r)["username"], *workoutType)
	if err != nil {
		writeError(w, "count workouts by type", err)
		return
	}
	pkg.WriteJSON(w, count, http.StatusOK)
}

func (handler *Handler) HandleLogExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.logged_exercises.log")
	defer span.End()

	workoutID, ok := idFromPath(w, r, "workout_id")
	if !ok {
		return
	}

	var req LogRequest
	if !handler.decodeAndValidate(w, r, &req) {
		return
	}

	logged, err := handler.service.LogExercise(ctx, workoutID, req)
	if err != nil {
		writeError(w, "log exercise", err)
		return
	}
	pkg.WriteJSON(w, logged, http.StatusCreated)
}

func (handler *Handler) HandleEntries(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.logged_exercises.entries")
	defer span.End()

	workoutID, ok := idFromPath(w, r, "workout_id")
	if !ok {
		return
	}

	entries, err := handler.service.Entries(ctx, workoutID)
	if err != nil {
		writeError(w, "logged exercises", err)
		return
	}
	pkg.WriteJSON(w, entries, http.StatusOK)
}

func (handler *Handler) HandleRemoveEntries(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.logged_exercises.remove")
	defer span.End()

	workoutID, ok := idFromPath(w, r, "workout_id")
	if !ok {
		return
	}
	exerciseID, ok := idFromPath(w, r, "exercise_id")
	if !ok {
		return
	}

	if err := handler.service.RemoveEntries(ctx, workoutID, exerciseID); err != nil {
		writeError(w, "remove logged exercise", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
