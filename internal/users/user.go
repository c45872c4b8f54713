package users

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUsernameExists  = errors.New("username already exists")
	ErrEmailExists     = errors.New("email already registered")
	ErrUserReferenced  = errors.New("user data is referenced by other users' workouts")
	ErrNothingToUpdate = errors.New("nothing to update")
)

type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Email          *string   `json:"email"`
	FullName       *string   `json:"full_name"`
	Disabled       bool      `json:"disabled"`
	IsAdmin        bool      `json:"is_admin"`
	CreatedAt      time.Time `json:"created_at"`
	HashedPassword string    `json:"-"`
}

type CreateRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=64,excludesall=/?#%"`
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	FullName *string `json:"full_name" validate:"omitempty,max=128"`
	Password string  `json:"password" validate:"required,min=6,max=72"`
	IsAdmin  bool    `json:"is_admin"`
}

func (req *CreateRequest) normalize() {
	req.Username = strings.TrimSpace(req.Username)
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		req.Email = &email
	}
}

// UpdateRequest is a partial update. Disabled and IsAdmin may only be set by admins.
type UpdateRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=64,excludesall=/?#%"`
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	FullName *string `json:"full_name" validate:"omitempty,max=128"`
	Password *string `json:"password" validate:"omitempty,min=6,max=72"`
	Disabled *bool   `json:"disabled"`
	IsAdmin  *bool   `json:"is_admin"`
}

func (req *UpdateRequest) normalize() {
	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		req.Username = &username
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		req.Email = &email
	}
}

func (req UpdateRequest) privileged() bool {
	return req.Disabled != nil || req.IsAdmin != nil
}

// Changes is what the repo applies. Nil fields stay unchanged.
type Changes struct {
	Username       *string
	Email          *string
	FullName       *string
	HashedPassword *string
	Disabled       *bool
	IsAdmin        *bool
}

func (c Changes) Empty() bool {
	return c.Username == nil && c.Email == nil && c.FullName == nil &&
		c.HashedPassword == nil && c.Disabled == nil && c.IsAdmin == nil
}
