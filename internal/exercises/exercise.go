package exercises

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrExerciseNotFound   = errors.New("exercise not found")
	ErrExerciseExists     = errors.New("exercise already exists")
	ErrExerciseReferenced = errors.New("exercise is referenced by logged workouts")
	ErrForbidden          = errors.New("not enough permissions")
	ErrInvalidCategory    = errors.New("invalid category")
)

// Category groups exercises. Workouts use the same values for their type.
type Category string

const (
	CategoryPush     Category = "Push"
	CategoryPull     Category = "Pull"
	CategoryQuads    Category = "Quads"
	CategoryHams     Category = "Hams"
	CategoryFullBody Category = "Full Body"
	CategoryUpper    Category = "Upper"
	CategoryLower    Category = "Lower"
	CategoryCustom   Category = "Custom"
)

const UncategorizedGroup = "Uncategorized"

var AllCategories = []Category{
	CategoryPush,
	CategoryPull,
	CategoryQuads,
	CategoryHams,
	CategoryFullBody,
	CategoryUpper,
	CategoryLower,
	CategoryCustom,
}

func (c Category) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory accepts the canonical names case-insensitively, as they show up in URL paths.
func ParseCategory(s string) (Category, error) {
	for _, known := range AllCategories {
		if strings.EqualFold(s, string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// CategoryFromDB converts a nullable enum text column.
func CategoryFromDB(s *string) *Category {
	if s == nil {
		return nil
	}
	c := Category(*s)
	return &c
}

// CategoryToDB is the counterpart of CategoryFromDB, used for $n::text::exercise_group params.
func CategoryToDB(c *Category) *string {
	if c == nil {
		return nil
	}
	s := string(*c)
	return &s
}

type Exercise struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	Category         *Category  `json:"category"`
	PrimaryMuscles   []string   `json:"primary_muscles"`
	SecondaryMuscles []string   `json:"secondary_muscles"`
	Description      *string    `json:"description"`
	UserID           *uuid.UUID `json:"user_id"`
}

func (ex *Exercise) normalize() {
	if ex.PrimaryMuscles == nil {
		ex.PrimaryMuscles = []string{}
	}
	if ex.SecondaryMuscles == nil {
		ex.SecondaryMuscles = []string{}
	}
}

type CreateRequest struct {
	Name             string    `json:"name" validate:"required,max=64"`
	Category         *Category `json:"category" validate:"omitempty,category"`
	PrimaryMuscles   []string  `json:"primary_muscles" validate:"omitempty,dive,required,max=64"`
	SecondaryMuscles []string  `json:"secondary_muscles" validate:"omitempty,dive,required,max=64"`
	Description      *string   `json:"description" validate:"omitempty,max=2000"`
	// Public creates an exercise without an owner, visible to everyone.
	Public bool `json:"public"`
}

// normalize trims the name so that a blank name fails validation.
func (req *CreateRequest) normalize() {
	req.Name = strings.TrimSpace(req.Name)
}

func (req CreateRequest) toExercise(owner *uuid.UUID) Exercise {
	ex := Exercise{
		ID:               uuid.New(),
		Name:             strings.TrimSpace(req.Name),
		Category:         req.Category,
		PrimaryMuscles:   req.PrimaryMuscles,
		SecondaryMuscles: req.SecondaryMuscles,
		Description:      req.Description,
		UserID:           owner,
	}
	ex.normalize()
	return ex
}

// UpdateRequest holds the optional fields of a partial update. Nil fields stay unchanged.
type UpdateRequest struct {
	Name             *string   `json:"name" validate:"omitnil,min=1,max=64"`
	Category         *Category `json:"category" validate:"omitempty,category"`
	PrimaryMuscles   *[]string `json:"primary_muscles" validate:"omitempty,dive,required,max=64"`
	SecondaryMuscles *[]string `json:"secondary_muscles" validate:"omitempty,dive,required,max=64"`
	Description      *string   `json:"description" validate:"omitempty,max=2000"`
}

func (req *UpdateRequest) normalize() {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}
}

func (req UpdateRequest) Empty() bool {
	return req.Name == nil && req.Category == nil && req.PrimaryMuscles == nil &&
		req.SecondaryMuscles == nil && req.Description == nil
}

type ListParams struct {
	Name     string
	Category *Category
	OwnerID  *uuid.UUID
}
