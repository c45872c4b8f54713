//go:build integration_test || all_tests

package test

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/2beens/fittrack/internal/exercises"
)

func categoryPtr(c exercises.Category) *exercises.Category {
	return &c
}

// publicExercise creates an exercise without an owner, visible to everyone.
func (s *IntegrationTestSuite) publicExercise(ctx context.Context, adminToken, name string, category exercises.Category) exercises.Exercise {
	var created exercises.Exercise
	s.doInto(ctx, http.MethodPost, "/api/exercises", adminToken, exercises.CreateRequest{
		Name:           name,
		Category:       categoryPtr(category),
		PrimaryMuscles: []string{"legs"},
		Public:         true,
	}, http.StatusCreated, &created)
	return created
}

func (s *IntegrationTestSuite) TestExercises_CRUD() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	adminToken := s.mustLogin(ctx, testAdminUsername, testAdminPassword)

	squat := s.publicExercise(ctx, adminToken, "Squat", exercises.CategoryQuads)
	s.NotEqual(uuid.Nil, squat.ID)
	s.Equal("Squat", squat.Name)
	s.Nil(squat.UserID)
	s.Equal(exercises.CategoryQuads, *squat.Category)

	s.Run("duplicate name", func() {
		resp := s.do(ctx, http.MethodPost, "/api/exercises", adminToken, exercises.CreateRequest{Name: "Squat"})
		s.Equal(http.StatusConflict, resp.status)
		s.Equal("Exercise already exists", resp.text())
	})

	s.Run("get", func() {
		var fetched exercises.Exercise
		s.doInto(ctx, http.MethodGet, "/api/exercises/"+squat.ID.String(), "", nil, http.StatusOK, &fetched)
		s.Equal(squat, fetched)
	})

	s.Run("batch skips existing and repeated names", func() {
		var created []exercises.Exercise
		s.doInto(ctx, http.MethodPost, "/api/exercises/batch", adminToken, []exercises.CreateRequest{
			{Name: "Deadlift", Category: categoryPtr(exercises.CategoryHams), Public: true},
			{Name: "Lunge", Category: categoryPtr(exercises.CategoryQuads), Public: true},
			{Name: "Squat", Public: true},
			{Name: "Lunge", Public: true},
		}, http.StatusOK, &created)

		s.Require().Len(created, 2)
		s.Equal("Deadlift", created[0].Name)
		s.Equal("Lunge", created[1].Name)
	})

	s.Run("list by category", func() {
		var quads []exercises.Exercise
		s.doInto(ctx, http.MethodGet, "/api/exercises?category=quads", "", nil, http.StatusOK, &quads)
		names := make([]string, 0, len(quads))
		for _, ex := range quads {
			names = append(names, ex.Name)
		}
		s.Contains(names, "Squat")
		s.Contains(names, "Lunge")
		s.NotContains(names, "Deadlift")
	})

	s.Run("categorized", func() {
		var grouped map[string][]exercises.Exercise
		s.doInto(ctx, http.MethodGet, "/api/exercises/categorized", "", nil, http.StatusOK, &grouped)
		s.NotEmpty(grouped[string(exercises.CategoryQuads)])
		s.NotEmpty(grouped[string(exercises.CategoryHams)])
	})

	s.Run("public exercises are read only for regular users", func() {
		_, userToken := s.newUser(ctx)
		resp := s.do(ctx, http.MethodPatch, "/api/exercises/"+squat.ID.String(), userToken, exercises.UpdateRequest{
			Description: strPtr("deep"),
		})
		s.Equal(http.StatusForbidden, resp.status)
	})

	s.Run("admin update", func() {
		var updated exercises.Exercise
		s.doInto(ctx, http.MethodPatch, "/api/exercises/"+squat.ID.String(), adminToken, exercises.UpdateRequest{
			Description: strPtr("back squat, high bar"),
		}, http.StatusOK, &updated)
		s.Require().NotNil(updated.Description)
		s.Equal("back squat, high bar", *updated.Description)
		s.Equal("Squat", updated.Name)
	})

	s.Run("missing exercise", func() {
		resp := s.do(ctx, http.MethodGet, "/api/exercises/"+uuid.NewString(), "", nil)
		s.Equal(http.StatusNotFound, resp.status)
		s.Equal("Exercise not found", resp.text())
	})
}

func (s *IntegrationTestSuite) TestExercises_Ownership() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	owner, ownerToken := s.newUser(ctx)
	_, otherToken := s.newUser(ctx)

	var private exercises.Exercise
	s.doInto(ctx, http.MethodPost, "/api/exercises", ownerToken, exercises.CreateRequest{
		Name:     fakeExerciseName("Private"),
		Category: categoryPtr(exercises.CategoryPush),
	}, http.StatusCreated, &private)
	s.Require().NotNil(private.UserID)
	s.Equal(owner.ID, *private.UserID)

	path := "/api/exercises/" + private.ID.String()

	s.Run("hidden from other users", func() {
		s.Equal(http.StatusNotFound, s.do(ctx, http.MethodGet, path, otherToken, nil).status)
		s.Equal(http.StatusNotFound, s.do(ctx, http.MethodGet, path, "", nil).status)
		s.Equal(http.StatusOK, s.do(ctx, http.MethodGet, path, ownerToken, nil).status)
	})

	s.Run("other users cannot delete it", func() {
		resp := s.do(ctx, http.MethodDelete, path, otherToken, nil)
		s.Equal(http.StatusNotFound, resp.status)
	})

	s.Run("owner deletes it", func() {
		resp := s.do(ctx, http.MethodDelete, path, ownerToken, nil)
		s.Equal(http.StatusOK, resp.status)
		s.Equal("true", resp.text())
		s.Equal(0, s.countRows(`SELECT COUNT(*) FROM exercises WHERE id = $1`, private.ID))
	})
}
