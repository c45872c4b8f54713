package workouts

import (
	"context"
	"time"

	"github.com/2beens/fittrack/internal/exercises"
	"github.com/2beens/fittrack/internal/telemetry/metrics"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=workouts_test

type workoutsRepo interface {
	Add(ctx context.Context, req CreateRequest) (*Workout, error)
	Get(ctx context.Context, id uuid.UUID) (*Workout, error)
	List(ctx context.Context) ([]Workout, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*Workout, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ForUser(ctx context.Context, username string, workoutType *exercises.Category, limit int) ([]Workout, error)
	CreatedTimes(ctx context.Context, username string) ([]time.Time, error)
	CountByType(ctx context.Context, username string, workoutType exercises.Category) (int, error)
	LogExercise(ctx context.Context, workoutID, exerciseID uuid.UUID, sets []SetInput) (*LoggedExercise, error)
	Entries(ctx context.Context, workoutID uuid.UUID) ([]LoggedExercise, error)
	RemoveEntries(ctx context.Context, workoutID, exerciseID uuid.UUID) error
}

type Service struct {
	repo           workoutsRepo
	metricsManager *metrics.Manager
}

func NewService(repo workoutsRepo, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:           repo,
		metricsManager: metricsManager,
	}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*Workout, error) {
	req.normalize()
	w, err := s.repo.Add(ctx, req)
	if err != nil {
		return nil, err
	}

	s.metricsManager.CounterWorkoutsCreated.Inc()
	s.metricsManager.CounterLoggedSets.Add(float64(countSets(req.LoggedExercises)))
	log.Debugf("new workout %s for %s with %d logged exercises", w.ID, req.Username, len(w.LoggedExercises))
	return w, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Workout, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Workout, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*Workout, error) {
	req.normalize()
	w, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	if req.LoggedExercises != nil {
		s.metricsManager.CounterLoggedSets.Add(float64(countSets(req.LoggedExercises)))
	}
	return w, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) LogExercise(ctx context.Context, workoutID uuid.UUID, req LogRequest) (*LoggedExercise, error) {
	if req.ExerciseID == uuid.Nil {
		return nil, exercises.ErrExerciseNotFound
	}

	logged, err := s.repo.LogExercise(ctx, workoutID, req.ExerciseID, req.Sets)
	if err != nil {
		return nil, err
	}

	s.metricsManager.CounterLoggedSets.Add(float64(len(req.Sets)))
	return logged, nil
}

func (s *Service) Entries(ctx context.Context, workoutID uuid.UUID) ([]LoggedExercise, error) {
	return s.repo.Entries(ctx, workoutID)
}

func (s *Service) RemoveEntries(ctx context.Context, workoutID, exerciseID uuid.UUID) error {
	return s.repo.RemoveEntries(ctx, workoutID, exerciseID)
}
