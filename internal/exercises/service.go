package exercises

import (
	"context"
	"fmt"
	"strings"

	"github.com/2beens/fittrack/internal/auth"
	"github.com/2beens/fittrack/internal/telemetry/metrics"
	"github.com/2beens/fittrack/internal/telemetry/tracing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=exercises_test

type exercisesRepo interface {
	Add(ctx context.Context, exercise Exercise) (*Exercise, error)
	AddBatch(ctx context.Context, exercises []Exercise) ([]Exercise, error)
	Get(ctx context.Context, id uuid.UUID) (*Exercise, error)
	List(ctx context.Context, params ListParams) ([]Exercise, error)
	Update(ctx context.Context, id uuid.UUID, update UpdateRequest) (*Exercise, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type exerciseCache interface {
	Get(key string) (*Exercise, bool)
	Set(key string, exercise *Exercise)
	Delete(key string)
}

type Service struct {
	repo           exercisesRepo
	cache          exerciseCache
	publicMutable  bool
	metricsManager *metrics.Manager
}

func NewService(
	repo exercisesRepo,
	cache exerciseCache,
	publicMutable bool,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		repo:           repo,
		cache:          cache,
		publicMutable:  publicMutable,
		metricsManager: metricsManager,
	}
}

// ownerFor decides who owns a new exercise: the caller, unless it's anonymous or asked for a public one.
func ownerFor(p *auth.Principal, req CreateRequest) *uuid.UUID {
	if p == nil || req.Public {
		return nil
	}
	owner := p.UserID
	return &owner
}

func (s *Service) Create(ctx context.Context, p *auth.Principal, req CreateRequest) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.exercises.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	added, err := s.repo.Add(ctx, req.toExercise(ownerFor(p, req)))
	if err != nil {
		return nil, err
	}

	s.metricsManager.CounterExercisesCreated.Inc()
	return added, nil
}

// CreateBatch creates the exercises whose names are not taken yet. Repeated names inside
// the request collapse to their first occurrence.
func (s *Service) CreateBatch(ctx context.Context, p *auth.Principal, reqs []CreateRequest) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.exercises.createbatch")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	seen := make(map[string]struct{}, len(reqs))
	toAdd := make([]Exercise, 0, len(reqs))
	for _, req := range reqs {
		ex := req.toExercise(ownerFor(p, req))
		if _, dup := seen[ex.Name]; dup {
			continue
		}
		seen[ex.Name] = struct{}{}
		toAdd = append(toAdd, ex)
	}
	span.SetAttributes(
		attribute.Int("exercises.requested", len(reqs)),
		attribute.Int("exercises.distinct", len(toAdd)),
	)

	created, err := s.repo.AddBatch(ctx, toAdd)
	if err != nil {
		return nil, fmt.Errorf("add batch: %w", err)
	}

	s.metricsManager.CounterExercisesCreated.Add(float64(len(created)))
	return created, nil
}

func (s *Service) cached(ctx context.Context, id uuid.UUID) (*Exercise, error) {
	key := id.String()
	if ex, ok := s.cache.Get(key); ok {
		s.metricsManager.CounterExerciseCache.WithLabelValues("hit").Inc()
		return ex, nil
	}
	s.metricsManager.CounterExerciseCache.WithLabelValues("miss").Inc()

	ex, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, ex)
	return ex, nil
}

func (s *Service) Get(ctx context.Context, p *auth.Principal, id uuid.UUID) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.exercises.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.id", id.String()))

	ex, err := s.cached(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanRead(p, ex) {
		return nil, ErrExerciseNotFound
	}
	return ex, nil
}

func (s *Service) List(ctx context.Context, p *auth.Principal, params ListParams) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.exercises.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	params.Name = strings.TrimSpace(params.Name)
	all, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	return FilterReadable(p, all), nil
}

// Categorized groups the visible exercises by category name.
func (s *Service) Categorized(ctx context.Context, p *auth.Principal) (_ map[string][]Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.exercises.categorized")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	visible, err := s.List(ctx, p, ListParams{})
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]Exercise)
	for _, ex := range visible {
		group := UncategorizedGroup
		if ex.Category != nil {
			group = string(*ex.Category)
		}
		grouped[group] = append(grouped[group], ex)
	}
	return grouped, nil
}

// authorizeWrite loads the exercise bypassing the cache and applies CanWrite.
func (s *Service) authorizeWrite(ctx context.Context, p *auth.Principal, id uuid.UUID) (*Exercise, error) {
	ex, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	switch CanWrite(p, ex, s.publicMutable) {
	case DecisionNotFound:
		return nil, ErrExerciseNotFound
	case DecisionForbidden:
		return nil, ErrForbidden
	default:
		return ex, nil
	}
}

func (s *Service) Update(ctx context.Context, p *auth.Principal, id uuid.UUID, req UpdateRequest) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.exercises.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.id", id.String()))

	current, err := s.authorizeWrite(ctx, p, id)
	if err != nil {
		return nil, err
	}

	req.normalize()
	if req.Empty() {
		return current, nil
	}

	updated, err := s.repo.Update(ctx, id, req)
	s.cache.Delete(id.String())
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, p *auth.Principal, id uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.exercises.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.id", id.String()))

	if _, err := s.authorizeWrite(ctx, p, id); err != nil {
		return err
	}

	err = s.repo.Delete(ctx, id)
	s.cache.Delete(id.String())
	return err
}
