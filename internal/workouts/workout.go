package workouts

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/fittrack/internal/exercises"

	"github.com/google/uuid"
)

var (
	ErrWorkoutNotFound        = errors.New("workout not found")
	ErrLoggedExerciseNotFound = errors.New("logged exercise not found")
	ErrNoWorkouts             = errors.New("no workouts found")
	ErrInvalidSet             = errors.New("invalid set")
)

// UnresolvedExerciseError is returned when a logged exercise name does not match any
// exercise visible to the workout owner.
type UnresolvedExerciseError struct {
	Name string
}

func (e *UnresolvedExerciseError) Error() string {
	return fmt.Sprintf("exercise '%s' not found", e.Name)
}

func (e *UnresolvedExerciseError) Unwrap() error {
	return exercises.ErrExerciseNotFound
}

type Set struct {
	ID               uuid.UUID `json:"id"`
	LoggedExerciseID uuid.UUID `json:"logged_exercise_id"`
	SetNumber        int       `json:"set_number"`
	Reps             int       `json:"reps"`
	Weight           float64   `json:"weight"`
}

type ExerciseSummary struct {
	ID       uuid.UUID           `json:"id"`
	Name     string              `json:"name"`
	Category *exercises.Category `json:"category"`
}

type LoggedExercise struct {
	ID         uuid.UUID       `json:"id"`
	WorkoutID  uuid.UUID       `json:"workout_id"`
	ExerciseID uuid.UUID       `json:"exercise_id"`
	Exercise   ExerciseSummary `json:"exercise"`
	Sets       []Set           `json:"sets"`
}

type Workout struct {
	ID              uuid.UUID           `json:"id"`
	UserID          uuid.UUID           `json:"user_id"`
	CreatedTime     time.Time           `json:"created_time"`
	Notes           *string             `json:"notes"`
	WorkoutType     *exercises.Category `json:"workout_type"`
	LoggedExercises []LoggedExercise    `json:"logged_exercises"`
}

type SetInput struct {
	SetNumber int     `json:"set_number" validate:"min=1"`
	Reps      int     `json:"reps" validate:"min=0"`
	Weight    float64 `json:"weight" validate:"min=0"`
}

type LoggedExerciseInput struct {
	Name string     `json:"name" validate:"required,max=64"`
	Sets []SetInput `json:"sets" validate:"required,min=1,dive"`
}

type CreateRequest struct {
	Username        string                `json:"username" validate:"required,max=64"`
	Notes           *string               `json:"notes" validate:"omitempty,max=5000"`
	WorkoutType     *exercises.Category   `json:"workout_type" validate:"omitempty,category"`
	CreatedTime     *time.Time            `json:"created_time"`
	LoggedExercises []LoggedExerciseInput `json:"logged_exercises" validate:"dive"`
}

func (req *CreateRequest) normalize() {
	req.Username = strings.TrimSpace(req.Username)
	req.LoggedExercises = normalizeEntries(req.LoggedExercises)
}

// UpdateRequest is a partial update. A non-nil LoggedExercises replaces the whole collection.
type UpdateRequest struct {
	Notes           *string               `json:"notes" validate:"omitempty,max=5000"`
	WorkoutType     *exercises.Category   `json:"workout_type" validate:"omitempty,category"`
	CreatedTime     *time.Time            `json:"created_time"`
	LoggedExercises []LoggedExerciseInput `json:"logged_exercises" validate:"dive"`
}

func (req *UpdateRequest) normalize() {
	req.LoggedExercises = normalizeEntries(req.LoggedExercises)
}

type LogRequest struct {
	ExerciseID uuid.UUID  `json:"exercise_id"`
	Sets       []SetInput `json:"sets" validate:"required,min=1,dive"`
}

// normalizeEntries returns a trimmed copy. A non-nil empty input stays non-nil.
func normalizeEntries(entries []LoggedExerciseInput) []LoggedExerciseInput {
	if entries == nil {
		return nil
	}
	normalized := make([]LoggedExerciseInput, len(entries))
	for i, e := range entries {
		e.Name = strings.TrimSpace(e.Name)
		normalized[i] = e
	}
	return normalized
}

// entryNames returns the distinct names in submission order.
func entryNames(entries []LoggedExerciseInput) []string {
	seen := make(map[string]struct{}, len(entries))
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.Name]; ok {
			continue
		}
		seen[e.Name] = struct{}{}
		names = append(names, e.Name)
	}
	return names
}

func countSets(entries []LoggedExerciseInput) int {
	n := 0
	for _, e := range entries {
		n += len(e.Sets)
	}
	return n
}

type Frequency struct {
	Username string  `json:"username"`
	Workouts int     `json:"workouts"`
	PerMonth float64 `json:"per_month"`
}

type TypeCount struct {
	Username    string             `json:"username"`
	WorkoutType exercises.Category `json:"workout_type"`
	Count       int                `json:"count"`
}
