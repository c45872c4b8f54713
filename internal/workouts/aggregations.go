package workouts

import (
	"context"

	"github.com/2beens/fittrack/internal/exercises"
	"github.com/2beens/fittrack/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

// Latest returns the user's newest workout, of the given type when set.
func (s *Service) Latest(ctx context.Context, username string, workoutType *exercises.Category) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.latest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.username", username))

	found, err := s.repo.ForUser(ctx, username, workoutType, 1)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, ErrNoWorkouts
	}
	return &found[0], nil
}

func (s *Service) AllForUser(ctx context.Context, username string) ([]Workout, error) {
	return s.repo.ForUser(ctx, username, nil, 0)
}

func (s *Service) Frequency(ctx context.Context, username string) (_ *Frequency, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.frequency")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.username", username))

	times, err := s.repo.CreatedTimes(ctx, username)
	if err != nil {
		return nil, err
	}

	return &Frequency{
		Username: username,
		Workouts: len(times),
		PerMonth: MonthlyFrequency(times),
	}, nil
}

func (s *Service) CountByType(ctx context.Context, username string, workoutType exercises.Category) (*TypeCount, error) {
	count, err := s.repo.CountByType(ctx, username, workoutType)
	if err != nil {
		return nil, err
	}
	return &TypeCount{
		Username:    username,
		WorkoutType: workoutType,
		Count:       count,
	}, nil
}
