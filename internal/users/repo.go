package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fittrack/internal/auth"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const userColumns = `id, username, email, full_name, disabled, is_admin, created_at, hashed_password`

const (
	constraintUsername = "users_username_key"
	constraintEmail    = "users_email_key"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FullName, &u.Disabled, &u.IsAdmin, &u.CreatedAt, &u.HashedPassword)
	return u, err
}

// uniqueViolation maps a unique index violation to the matching sentinel.
func uniqueViolation(err error) error {
	switch pkg.ViolatedConstraint(err) {
	case constraintUsername:
		return ErrUsernameExists
	case constraintEmail:
		return ErrEmailExists
	default:
		return err
	}
}

func (r *Repo) Add(ctx context.Context, user User) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.username", user.Username))

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	added, err := scanUser(r.db.QueryRow(
		ctx,
		`INSERT INTO users (id, username, email, full_name, hashed_password, disabled, is_admin)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING `+userColumns,
		user.ID, user.Username, user.Email, user.FullName, user.HashedPassword, user.Disabled, user.IsAdmin,
	))
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, uniqueViolation(err)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return &added, nil
}

func (r *Repo) Get(ctx context.Context, id uuid.UUID) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", id.String()))

	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repo) GetByUsername(ctx context.Context, username string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.getbyusername")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.username", username))

	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindAccount serves the auth service lookups.
func (r *Repo) FindAccount(ctx context.Context, username string) (*auth.Account, error) {
	u, err := r.GetByUsername(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		return nil, auth.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &auth.Account{
		ID:             u.ID,
		Username:       u.Username,
		HashedPassword: u.HashedPassword,
		Disabled:       u.Disabled,
		IsAdmin:        u.IsAdmin,
	}, nil
}

func (r *Repo) List(ctx context.Context) (_ []User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY username`)
	if err != nil {
		return nil, err
	}

	users, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (User, error) {
		return scanUser(row)
	})
	if err != nil {
		return nil, fmt.Errorf("collect users: %w", err)
	}

	span.SetAttributes(attribute.Int("users.count", len(users)))
	return users, nil
}

func (r *Repo) Update(ctx context.Context, id uuid.UUID, changes Changes) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", id.String()))

	u, err := scanUser(r.db.QueryRow(
		ctx,
		`UPDATE users SET
				username = COALESCE($2, username),
				email = COALESCE($3, email),
				full_name = COALESCE($4, full_name),
				hashed_password = COALESCE($5, hashed_password),
				disabled = COALESCE($6, disabled),
				is_admin = COALESCE($7, is_admin)
			WHERE id = $1
			RETURNING `+userColumns,
		id, changes.Username, changes.Email, changes.FullName, changes.HashedPassword, changes.Disabled, changes.IsAdmin,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, uniqueViolation(err)
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return &u, nil
}

// Delete removes the user together with its workouts and private exercises.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", id.String()))

	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return ErrUserReferenced
		}
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// EnsureAdmin creates the bootstrap admin when no user with that name exists yet.
// An existing user keeps its privileges untouched.
func (r *Repo) EnsureAdmin(ctx context.Context, username, passwordHash string) (created bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.ensureadmin")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(
		ctx,
		`INSERT INTO users (id, username, hashed_password, is_admin)
			VALUES ($1, $2, $3, TRUE)
			ON CONFLICT (username) DO NOTHING`,
		uuid.New(), username, passwordHash,
	)
	if err != nil {
		return false, fmt.Errorf("insert admin: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}

	existing, err := r.GetByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	if !existing.IsAdmin {
		log.Warnf("bootstrap admin [%s] exists as a regular user, not promoting it", username)
	}
	return false, nil
}
