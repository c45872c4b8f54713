package exercises

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const exerciseColumns = `id, name, category::text, primary_muscles, secondary_muscles, description, user_id`

const insertExerciseSQL = `INSERT INTO exercises
		(id, name, category, primary_muscles, secondary_muscles, description, user_id)
		VALUES ($1, $2, $3::text::exercise_group, $4, $5, $6, $7)`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func scanExercise(row pgx.Row) (Exercise, error) {
	var (
		ex       Exercise
		category *string
	)
	if err := row.Scan(
		&ex.ID, &ex.Name, &category, &ex.PrimaryMuscles, &ex.SecondaryMuscles, &ex.Description, &ex.UserID,
	); err != nil {
		return Exercise{}, err
	}
	ex.Category = CategoryFromDB(category)
	ex.normalize()
	return ex, nil
}

func insertArgs(ex Exercise) []any {
	ex.normalize()
	return []any{
		ex.ID, ex.Name, CategoryToDB(ex.Category), ex.PrimaryMuscles, ex.SecondaryMuscles, ex.Description, ex.UserID,
	}
}

func (r *Repo) Add(ctx context.Context, exercise Exercise) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.name", exercise.Name))

	row := r.db.QueryRow(ctx, insertExerciseSQL+` RETURNING `+exerciseColumns, insertArgs(exercise)...)
	added, err := scanExercise(row)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrExerciseExists
		}
		return nil, fmt.Errorf("insert exercise: %w", err)
	}

	span.SetAttributes(attribute.String("exercise.id", added.ID.String()))
	return &added, nil
}

// AddBatch inserts all exercises in one round trip, silently skipping names that already
// exist. Only the newly created exercises are returned.
func (r *Repo) AddBatch(ctx context.Context, exercises []Exercise) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.addbatch")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("exercises.count", len(exercises)))

	if len(exercises) == 0 {
		return []Exercise{}, nil
	}

	batch := &pgx.Batch{}
	for _, ex := range exercises {
		batch.Queue(
			insertExerciseSQL+` ON CONFLICT (name) DO NOTHING RETURNING `+exerciseColumns,
			insertArgs(ex)...,
		)
	}

	br := r.db.SendBatch(ctx, batch)
	defer func() {
		if closeErr := br.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close batch: %w", closeErr)
		}
	}()

	created := make([]Exercise, 0, len(exercises))
	for range exercises {
		added, err := scanExercise(br.QueryRow())
		if errors.Is(err, pgx.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("batch insert exercise: %w", err)
		}
		created = append(created, added)
	}

	span.SetAttributes(attribute.Int("exercises.created", len(created)))
	return created, nil
}

func (r *Repo) Get(ctx context.Context, id uuid.UUID) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.id", id.String()))

	ex, err := scanExercise(r.db.QueryRow(ctx, `SELECT `+exerciseColumns+` FROM exercises WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrExerciseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ex, nil
}

// List returns exercises matching all the given filters, ordered by name. Visibility is not applied here.
func (r *Repo) List(ctx context.Context, params ListParams) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT `+exerciseColumns+` FROM exercises
			WHERE ($1::text = '' OR name = $1)
			  AND ($2::text IS NULL OR category = $2::text::exercise_group)
			  AND ($3::uuid IS NULL OR user_id = $3)
			ORDER BY name;`,
		params.Name, CategoryToDB(params.Category), params.OwnerID,
	)
	if err != nil {
		return nil, err
	}

	exercises, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Exercise, error) {
		return scanExercise(row)
	})
	if err != nil {
		return nil, fmt.Errorf("collect exercises: %w", err)
	}

	span.SetAttributes(attribute.Int("exercises.count", len(exercises)))
	return exercises, nil
}

func (r *Repo) Update(ctx context.Context, id uuid.UUID, update UpdateRequest) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.id", id.String()))

	row := r.db.QueryRow(
		ctx,
		`UPDATE exercises SET
				name = COALESCE($2, name),
				category = COALESCE($3::text::exercise_group, category),
				primary_muscles = COALESCE($4::text[], primary_muscles),
				secondary_muscles = COALESCE($5::text[], secondary_muscles),
				description = COALESCE($6, description)
			WHERE id = $1
			RETURNING `+exerciseColumns,
		id, update.Name, CategoryToDB(update.Category), update.PrimaryMuscles, update.SecondaryMuscles, update.Description,
	)
	updated, err := scanExercise(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrExerciseNotFound
	}
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrExerciseExists
		}
		return nil, fmt.Errorf("update exercise: %w", err)
	}
	return &updated, nil
}

func (r *Repo) Delete(ctx context.Context, id uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.id", id.String()))

	tag, err := r.db.Exec(ctx, `DELETE FROM exercises WHERE id = $1`, id)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return ErrExerciseReferenced
		}
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}

	return nil
}
