//go:build integration_test || all_tests

package test

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/2beens/fittrack/internal/exercises"
	"github.com/2beens/fittrack/internal/workouts"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func sets(weights ...float64) []workouts.SetInput {
	inputs := make([]workouts.SetInput, 0, len(weights))
	for i, w := range weights {
		inputs = append(inputs, workouts.SetInput{SetNumber: i + 1, Reps: 5, Weight: w})
	}
	return inputs
}

func (s *IntegrationTestSuite) TestWorkouts_Lifecycle() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	adminToken := s.mustLogin(ctx, testAdminUsername, testAdminPassword)
	squat := s.publicExercise(ctx, adminToken, fakeExerciseName("Squat"), exercises.CategoryQuads)
	deadlift := s.publicExercise(ctx, adminToken, fakeExerciseName("Deadlift"), exercises.CategoryHams)
	lunge := s.publicExercise(ctx, adminToken, fakeExerciseName("Lunge"), exercises.CategoryQuads)

	user, token := s.newUser(ctx)

	var workout workouts.Workout
	s.doInto(ctx, http.MethodPost, "/api/workouts", token, workouts.CreateRequest{
		Username:    user.Username,
		Notes:       strPtr("leg day"),
		WorkoutType: categoryPtr(exercises.CategoryLower),
		LoggedExercises: []workouts.LoggedExerciseInput{
			{Name: squat.Name, Sets: sets(100, 110, 120)},
			{Name: deadlift.Name, Sets: sets(140)},
		},
	}, http.StatusCreated, &workout)

	s.Equal(user.ID, workout.UserID)
	s.Require().Len(workout.LoggedExercises, 2)
	s.Equal(squat.ID, workout.LoggedExercises[0].ExerciseID)
	s.Equal(squat.Name, workout.LoggedExercises[0].Exercise.Name)
	s.Require().Len(workout.LoggedExercises[0].Sets, 3)
	s.Equal(120.0, workout.LoggedExercises[0].Sets[2].Weight)
	s.Equal(deadlift.ID, workout.LoggedExercises[1].ExerciseID)

	workoutPath := "/api/workouts/" + workout.ID.String()
	entriesPath := "/logged_exercises/" + workout.ID.String()

	s.Run("requires a token", func() {
		s.Equal(http.StatusUnauthorized, s.do(ctx, http.MethodGet, workoutPath, "", nil).status)
	})

	s.Run("get", func() {
		var fetched workouts.Workout
		s.doInto(ctx, http.MethodGet, workoutPath, token, nil, http.StatusOK, &fetched)
		s.Equal(workout.ID, fetched.ID)
		s.Equal(workout.LoggedExercises, fetched.LoggedExercises)
		s.Require().NotNil(fetched.Notes)
		s.Equal("leg day", *fetched.Notes)
	})

	s.Run("log another exercise", func() {
		var logged workouts.LoggedExercise
		s.doInto(ctx, http.MethodPost, entriesPath+"/log", token, workouts.LogRequest{
			ExerciseID: lunge.ID,
			Sets:       sets(40, 40),
		}, http.StatusCreated, &logged)
		s.Equal(lunge.ID, logged.ExerciseID)
		s.Len(logged.Sets, 2)

		var entries []workouts.LoggedExercise
		s.doInto(ctx, http.MethodGet, entriesPath+"/entries", token, nil, http.StatusOK, &entries)
		s.Require().Len(entries, 3)
		s.Equal(lunge.ID, entries[2].ExerciseID)
	})

	s.Run("remove an exercise from the workout", func() {
		resp := s.do(ctx, http.MethodDelete, entriesPath+"/entry/"+deadlift.ID.String(), token, nil)
		s.Equal(http.StatusNoContent, resp.status)

		var entries []workouts.LoggedExercise
		s.doInto(ctx, http.MethodGet, entriesPath+"/entries", token, nil, http.StatusOK, &entries)
		s.Require().Len(entries, 2)
		s.Equal(squat.ID, entries[0].ExerciseID)
		s.Equal(lunge.ID, entries[1].ExerciseID)

		resp = s.do(ctx, http.MethodDelete, entriesPath+"/entry/"+deadlift.ID.String(), token, nil)
		s.Equal(http.StatusNotFound, resp.status)
		s.Equal("Logged exercise not found", resp.text())
	})

	s.Run("referenced exercise cannot be deleted", func() {
		resp := s.do(ctx, http.MethodDelete, "/api/exercises/"+squat.ID.String(), adminToken, nil)
		s.Equal(http.StatusConflict, resp.status)
	})

	s.Run("replace with an unknown exercise changes nothing", func() {
		var before workouts.Workout
		s.doInto(ctx, http.MethodGet, workoutPath, token, nil, http.StatusOK, &before)

		resp := s.do(ctx, http.MethodPatch, workoutPath, token, workouts.UpdateRequest{
			Notes:       strPtr("should not stick"),
			WorkoutType: categoryPtr(exercises.CategoryUpper),
			LoggedExercises: []workouts.LoggedExerciseInput{
				{Name: deadlift.Name, Sets: sets(150)},
				{Name: "No Such Lift", Sets: sets(10)},
			},
		})
		s.Equal(http.StatusNotFound, resp.status)
		s.Equal("Exercise 'No Such Lift' not found", resp.text())

		var after workouts.Workout
		s.doInto(ctx, http.MethodGet, workoutPath, token, nil, http.StatusOK, &after)
		s.Require().NotNil(after.Notes)
		s.Equal("leg day", *after.Notes)
		s.Equal(exercises.CategoryLower, *after.WorkoutType)
		s.Equal(before.LoggedExercises, after.LoggedExercises)
	})

	var setIDs []string
	s.Run("replace logged exercises", func() {
		var before workouts.Workout
		s.doInto(ctx, http.MethodGet, workoutPath, token, nil, http.StatusOK, &before)
		var oldSetIDs []string
		for _, le := range before.LoggedExercises {
			for _, set := range le.Sets {
				oldSetIDs = append(oldSetIDs, set.ID.String())
			}
		}
		s.Require().NotEmpty(oldSetIDs)

		var updated workouts.Workout
		s.doInto(ctx, http.MethodPatch, workoutPath, token, workouts.UpdateRequest{
			Notes: strPtr("only deadlifts today"),
			LoggedExercises: []workouts.LoggedExerciseInput{
				{Name: deadlift.Name, Sets: sets(150, 160)},
			},
		}, http.StatusOK, &updated)

		s.Require().Len(updated.LoggedExercises, 1)
		s.Equal(deadlift.ID, updated.LoggedExercises[0].ExerciseID)
		s.Len(updated.LoggedExercises[0].Sets, 2)
		for _, set := range updated.LoggedExercises[0].Sets {
			setIDs = append(setIDs, set.ID.String())
		}
		s.Equal(exercises.CategoryLower, *updated.WorkoutType)
		s.Equal(1, s.countRows(`SELECT COUNT(*) FROM logged_exercises WHERE workout_id = $1`, workout.ID))
		s.Equal(0, s.countRows(`SELECT COUNT(*) FROM logged_exercise_sets WHERE id::text = ANY($1)`, pq.Array(oldSetIDs)))
	})

	s.Run("patch without logged exercises keeps them", func() {
		var updated workouts.Workout
		s.doInto(ctx, http.MethodPatch, workoutPath, token, workouts.UpdateRequest{
			WorkoutType: categoryPtr(exercises.CategoryHams),
		}, http.StatusOK, &updated)
		s.Len(updated.LoggedExercises, 1)
		s.Equal(exercises.CategoryHams, *updated.WorkoutType)
	})

	s.Run("delete cascades to logged exercises and sets", func() {
		resp := s.do(ctx, http.MethodDelete, workoutPath, token, nil)
		s.Equal(http.StatusNoContent, resp.status)

		s.Equal(http.StatusNotFound, s.do(ctx, http.MethodGet, workoutPath, token, nil).status)
		s.Equal(0, s.countRows(`SELECT COUNT(*) FROM logged_exercises WHERE workout_id = $1`, workout.ID))
		s.Require().NotEmpty(setIDs)
		s.Equal(0, s.countRows(`SELECT COUNT(*) FROM logged_exercise_sets WHERE id::text = ANY($1)`, pq.Array(setIDs)))

		// exercise is free again
		resp = s.do(ctx, http.MethodDelete, "/api/exercises/"+squat.ID.String(), adminToken, nil)
		s.Equal(http.StatusOK, resp.status)
	})
}

func (s *IntegrationTestSuite) TestWorkouts_Errors() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	user, token := s.newUser(ctx)

	s.Run("unknown exercise name", func() {
		resp := s.do(ctx, http.MethodPost, "/api/workouts", token, workouts.CreateRequest{
			Username: user.Username,
			LoggedExercises: []workouts.LoggedExerciseInput{
				{Name: "No Such Lift", Sets: sets(10)},
			},
		})
		s.Equal(http.StatusNotFound, resp.status)
		s.Equal("Exercise 'No Such Lift' not found", resp.text())
		s.Equal(0, s.countRows(`SELECT COUNT(*) FROM workouts WHERE user_id = $1`, user.ID))
	})

	s.Run("unknown user", func() {
		resp := s.do(ctx, http.MethodPost, "/api/workouts", token, workouts.CreateRequest{
			Username: "nobody_" + uuid.NewString()[:8],
		})
		s.Equal(http.StatusNotFound, resp.status)
		s.Equal("User not found", resp.text())
	})

	s.Run("invalid workout type in path", func() {
		resp := s.do(ctx, http.MethodGet, "/api/workouts/user/"+user.Username+"/latest/Cardio", token, nil)
		s.Equal(http.StatusBadRequest, resp.status)
	})

	s.Run("no workouts yet", func() {
		resp := s.do(ctx, http.MethodGet, "/api/workouts/user/"+user.Username+"/latest", token, nil)
		s.Equal(http.StatusNotFound, resp.status)
		s.Equal("No workouts found", resp.text())
	})

	s.Run("missing workout", func() {
		resp := s.do(ctx, http.MethodGet, "/api/workouts/"+uuid.NewString(), token, nil)
		s.Equal(http.StatusNotFound, resp.status)
		s.Equal("Workout not found", resp.text())
	})

	s.Run("set number must be positive", func() {
		resp := s.do(ctx, http.MethodPost, "/api/workouts", token, workouts.CreateRequest{
			Username: user.Username,
			LoggedExercises: []workouts.LoggedExerciseInput{
				{Name: "Anything", Sets: []workouts.SetInput{{SetNumber: 0, Reps: 1}}},
			},
		})
		s.Equal(http.StatusBadRequest, resp.status)
	})
}

func (s *IntegrationTestSuite) TestWorkouts_Aggregations() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	adminToken := s.mustLogin(ctx, testAdminUsername, testAdminPassword)
	bench := s.publicExercise(ctx, adminToken, fakeExerciseName("Bench"), exercises.CategoryPush)
	user, token := s.newUser(ctx)

	history := []struct {
		at          time.Time
		workoutType exercises.Category
	}{
		{time.Date(2026, time.January, 1, 10, 0, 0, 0, time.UTC), exercises.CategoryPush},
		{time.Date(2026, time.February, 1, 10, 0, 0, 0, time.UTC), exercises.CategoryPull},
		{time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC), exercises.CategoryPush},
	}
	created := make([]workouts.Workout, 0, len(history))
	for _, h := range history {
		var w workouts.Workout
		s.doInto(ctx, http.MethodPost, "/api/workouts", token, workouts.CreateRequest{
			Username:    user.Username,
			WorkoutType: categoryPtr(h.workoutType),
			CreatedTime: timePtr(h.at),
			LoggedExercises: []workouts.LoggedExerciseInput{
				{Name: bench.Name, Sets: sets(60, 70)},
			},
		}, http.StatusCreated, &w)
		created = append(created, w)
	}

	userPath := "/api/workouts/user/" + user.Username

	s.Run("latest", func() {
		var latest workouts.Workout
		s.doInto(ctx, http.MethodGet, userPath+"/latest", token, nil, http.StatusOK, &latest)
		s.Equal(created[2].ID, latest.ID)
	})

	s.Run("latest by type", func() {
		var latest workouts.Workout
		s.doInto(ctx, http.MethodGet, userPath+"/latest/pull", token, nil, http.StatusOK, &latest)
		s.Equal(created[1].ID, latest.ID)

		resp := s.do(ctx, http.MethodGet, userPath+"/latest/Quads", token, nil)
		s.Equal(http.StatusNotFound, resp.status)
	})

	s.Run("all, newest first", func() {
		var all []workouts.Workout
		s.doInto(ctx, http.MethodGet, userPath+"/all", token, nil, http.StatusOK, &all)
		s.Require().Len(all, 3)
		s.Equal(created[2].ID, all[0].ID)
		s.Equal(created[0].ID, all[2].ID)
		s.Len(all[0].LoggedExercises, 1)
	})

	s.Run("frequency", func() {
		var freq workouts.Frequency
		s.doInto(ctx, http.MethodGet, userPath+"/frequency", token, nil, http.StatusOK, &freq)
		s.Equal(user.Username, freq.Username)
		s.Equal(3, freq.Workouts)
		s.InDelta(1.5, freq.PerMonth, 0.0001)
	})

	s.Run("count by type", func() {
		var count workouts.TypeCount
		s.doInto(ctx, http.MethodGet, userPath+"/count/push", token, nil, http.StatusOK, &count)
		s.Equal(2, count.Count)
		s.Equal(exercises.CategoryPush, count.WorkoutType)

		s.doInto(ctx, http.MethodGet, userPath+"/count/Legs", token, nil, http.StatusBadRequest, nil)
	})
}
