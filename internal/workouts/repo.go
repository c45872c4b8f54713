package workouts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fittrack/internal/exercises"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/internal/users"
	"github.com/2beens/fittrack/pkg"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const workoutColumns = `w.id, w.user_id, w.created_time, w.notes, w.workout_type::text`

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

type newEntry struct {
	exerciseID uuid.UUID
	sets       []SetInput
}

func scanWorkout(row pgx.Row) (Workout, error) {
	var (
		w           Workout
		workoutType *string
	)
	if err := row.Scan(&w.ID, &w.UserID, &w.CreatedTime, &w.Notes, &workoutType); err != nil {
		return Workout{}, err
	}
	w.WorkoutType = exercises.CategoryFromDB(workoutType)
	w.LoggedExercises = []LoggedExercise{}
	return w, nil
}

func userIDByUsername(ctx context.Context, q querier, username string) (uuid.UUID, error) {
	var id uuid.UUID
	err := q.QueryRow(ctx, `SELECT id FROM users WHERE username = $1`, username).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, users.ErrUserNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("find user %s: %w", username, err)
	}
	return id, nil
}

// resolveExercises maps every entry to an exercise visible to the owner: public or owned by them.
func resolveExercises(ctx context.Context, q querier, ownerID uuid.UUID, entries []LoggedExerciseInput) ([]newEntry, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	names := entryNames(entries)
	rows, err := q.Query(
		ctx,
		`SELECT name, id FROM exercises WHERE name = ANY($1) AND (user_id IS NULL OR user_id = $2)`,
		names, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("resolve exercises: %w", err)
	}

	resolved := make(map[string]uuid.UUID, len(names))
	var (
		name string
		id   uuid.UUID
	)
	if _, err := pgx.ForEachRow(rows, []any{&name, &id}, func() error {
		resolved[name] = id
		return nil
	}); err != nil {
		return nil, fmt.Errorf("resolve exercises: %w", err)
	}

	resolvedEntries := make([]newEntry, 0, len(entries))
	for _, e := range entries {
		exerciseID, ok := resolved[e.Name]
		if !ok {
			return nil, &UnresolvedExerciseError{Name: e.Name}
		}
		resolvedEntries = append(resolvedEntries, newEntry{exerciseID: exerciseID, sets: e.Sets})
	}
	return resolvedEntries, nil
}

// insertEntries copies logged exercises and their sets, numbering positions from firstPosition.
func insertEntries(ctx context.Context, q querier, workoutID uuid.UUID, firstPosition int, entries []newEntry) ([]uuid.UUID, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(entries))
	loggedRows := make([][]any, 0, len(entries))
	var setRows [][]any
	for i, e := range entries {
		loggedID := uuid.New()
		ids = append(ids, loggedID)
		loggedRows = append(loggedRows, []any{loggedID, workoutID, e.exerciseID, firstPosition + i})
		for pos, s := range e.sets {
			setRows = append(setRows, []any{uuid.New(), loggedID, s.SetNumber, s.Reps, s.Weight, pos})
		}
	}

	if _, err := q.CopyFrom(
		ctx,
		pgx.Identifier{"logged_exercises"},
		[]string{"id", "workout_id", "exercise_id", "position"},
		pgx.CopyFromRows(loggedRows),
	); err != nil {
		// the exercise was deleted after its name was resolved
		if pkg.IsForeignKeyViolationError(err) && pkg.ViolatedConstraint(err) == "logged_exercises_exercise_id_fkey" {
			return nil, exercises.ErrExerciseNotFound
		}
		return nil, fmt.Errorf("insert logged exercises: %w", err)
	}

	if len(setRows) > 0 {
		if _, err := q.CopyFrom(
			ctx,
			pgx.Identifier{"logged_exercise_sets"},
			[]string{"id", "logged_exercise_id", "set_number", "reps", "weight", "position"},
			pgx.CopyFromRows(setRows),
		); err != nil {
			if pkg.IsCheckViolationError(err) {
				return nil, fmt.Errorf("%w: %s", ErrInvalidSet, pkg.ViolatedConstraint(err))
			}
			return nil, fmt.Errorf("insert logged exercise sets: %w", err)
		}
	}

	return ids, nil
}

// loadEntries returns the logged exercises of the given workouts, by position, with sets by set number.
func loadEntries(ctx context.Context, q querier, workoutIDs []uuid.UUID) (map[uuid.UUID][]LoggedExercise, error) {
	byWorkout := make(map[uuid.UUID][]LoggedExercise, len(workoutIDs))
	if len(workoutIDs) == 0 {
		return byWorkout, nil
	}

	rows, err := q.Query(
		ctx,
		`SELECT le.workout_id, le.id, le.exercise_id, e.name, e.category::text,
				s.id, s.set_number, s.reps, s.weight
			FROM logged_exercises le
			JOIN exercises e ON e.id = le.exercise_id
			LEFT JOIN logged_exercise_sets s ON s.logged_exercise_id = le.id
			WHERE le.workout_id = ANY($1)
			ORDER BY le.workout_id, le.position, le.id, s.set_number, s.position;`,
		workoutIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("load logged exercises: %w", err)
	}

	var (
		workoutID, loggedID, exerciseID uuid.UUID
		exerciseName                    string
		category                        *string
		setID                           *uuid.UUID
		setNumber, reps                 *int
		weight                          *float64
	)
	scans := []any{&workoutID, &loggedID, &exerciseID, &exerciseName, &category, &setID, &setNumber, &reps, &weight}
	if _, err := pgx.ForEachRow(rows, scans, func() error {
		entries := byWorkout[workoutID]
		if n := len(entries); n == 0 || entries[n-1].ID != loggedID {
			entries = append(entries, LoggedExercise{
				ID:         loggedID,
				WorkoutID:  workoutID,
				ExerciseID: exerciseID,
				Exercise: ExerciseSummary{
					ID:       exerciseID,
					Name:     exerciseName,
					Category: exercises.CategoryFromDB(category),
				},
				Sets: []Set{},
			})
		}
		if setID != nil {
			last := &entries[len(entries)-1]
			last.Sets = append(last.Sets, Set{
				ID:               *setID,
				LoggedExerciseID: loggedID,
				SetNumber:        *setNumber,
				Reps:             *reps,
				Weight:           *weight,
			})
		}
		byWorkout[workoutID] = entries
		return nil
	}); err != nil {
		return nil, fmt.Errorf("load logged exercises: %w", err)
	}

	return byWorkout, nil
}

func hydrate(ctx context.Context, q querier, workouts []Workout) error {
	ids := make([]uuid.UUID, 0, len(workouts))
	for _, w := range workouts {
		ids = append(ids, w.ID)
	}

	byWorkout, err := loadEntries(ctx, q, ids)
	if err != nil {
		return err
	}
	for i := range workouts {
		if entries, ok := byWorkout[workouts[i].ID]; ok {
			workouts[i].LoggedExercises = entries
		}
	}
	return nil
}

func (r *Repo) queryWorkouts(ctx context.Context, sql string, args ...any) ([]Workout, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	workouts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Workout, error) {
		return scanWorkout(row)
	})
	if err != nil {
		return nil, fmt.Errorf("collect workouts: %w", err)
	}

	if err := hydrate(ctx, r.db, workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

// Add creates the workout with all its logged exercises and sets in one transaction.
func (r *Repo) Add(ctx context.Context, req CreateRequest) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.username", req.Username))

	id := uuid.New()
	if err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		userID, err := userIDByUsername(ctx, tx, req.Username)
		if err != nil {
			return err
		}

		entries, err := resolveExercises(ctx, tx, userID, req.LoggedExercises)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(
			ctx,
			`INSERT INTO workouts (id, user_id, created_time, notes, workout_type)
				VALUES ($1, $2, COALESCE($3::timestamptz, now()), $4, $5::text::exercise_group)`,
			id, userID, req.CreatedTime, req.Notes, exercises.CategoryToDB(req.WorkoutType),
		); err != nil {
			return fmt.Errorf("insert workout: %w", err)
		}

		_, err = insertEntries(ctx, tx, id, 0, entries)
		return err
	}); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("workout.id", id.String()))
	return r.Get(ctx, id)
}

func (r *Repo) Get(ctx context.Context, id uuid.UUID) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.id", id.String()))

	w, err := scanWorkout(r.db.QueryRow(ctx, `SELECT `+workoutColumns+` FROM workouts w WHERE w.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrWorkoutNotFound
	}
	if err != nil {
		return nil, err
	}

	workouts := []Workout{w}
	if err := hydrate(ctx, r.db, workouts); err != nil {
		return nil, err
	}
	return &workouts[0], nil
}

func (r *Repo) List(ctx context.Context) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	workouts, err := r.queryWorkouts(ctx, `SELECT `+workoutColumns+` FROM workouts w ORDER BY w.created_time DESC, w.id;`)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("workouts.count", len(workouts)))
	return workouts, nil
}

// Update applies the set fields. Non-nil logged exercises replace the previous ones in the same transaction.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("workout.id", id.String()),
		attribute.Bool("workout.replace_entries", req.LoggedExercises != nil),
	)

	if err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var userID uuid.UUID
		err := tx.QueryRow(
			ctx,
			`UPDATE workouts SET
					notes = COALESCE($2, notes),
					workout_type = COALESCE($3::text::exercise_group, workout_type),
					created_time = COALESCE($4::timestamptz, created_time)
				WHERE id = $1
				RETURNING user_id`,
			id, req.Notes, exercises.CategoryToDB(req.WorkoutType), req.CreatedTime,
		).Scan(&userID)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrWorkoutNotFound
		}
		if err != nil {
			return fmt.Errorf("update workout: %w", err)
		}

		if req.LoggedExercises == nil {
			return nil
		}

		entries, err := resolveExercises(ctx, tx, userID, req.LoggedExercises)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM logged_exercises WHERE workout_id = $1`, id); err != nil {
			return fmt.Errorf("clear logged exercises: %w", err)
		}
		_, err = insertEntries(ctx, tx, id, 0, entries)
		return err
	}); err != nil {
		return nil, err
	}

	return r.Get(ctx, id)
}

func (r *Repo) Delete(ctx context.Context, id uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.id", id.String()))

	tag, err := r.db.Exec(ctx, `DELETE FROM workouts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrWorkoutNotFound
	}

	log.Debugf("workout %s deleted", id)
	return nil
}

// ForUser returns the user's workouts newest first, optionally of one type. A zero limit means no limit.
func (r *Repo) ForUser(ctx context.Context, username string, workoutType *exercises.Category, limit int) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.foruser")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.username", username), attribute.Int("limit", limit))

	userID, err := userIDByUsername(ctx, r.db, username)
	if err != nil {
		return nil, err
	}

	return r.queryWorkouts(
		ctx,
		`SELECT `+workoutColumns+` FROM workouts w
			WHERE w.user_id = $1
			  AND ($2::text IS NULL OR w.workout_type = $2::text::exercise_group)
			ORDER BY w.created_time DESC, w.id
			LIMIT NULLIF($3::int, 0);`,
		userID, exercises.CategoryToDB(workoutType), limit,
	)
}

// CreatedTimes returns the creation times of all the user's workouts, newest first.
func (r *Repo) CreatedTimes(ctx context.Context, username string) (_ []time.Time, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.createdtimes")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.username", username))

	userID, err := userIDByUsername(ctx, r.db, username)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `SELECT created_time FROM workouts WHERE user_id = $1 ORDER BY created_time DESC`, userID)
	if err != nil {
		return nil, err
	}
	times, err := pgx.CollectRows(rows, pgx.RowTo[time.Time])
	if err != nil {
		return nil, fmt.Errorf("collect workout times: %w", err)
	}
	return times, nil
}

func (r *Repo) CountByType(ctx context.Context, username string, workoutType exercises.Category) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.countbytype")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.username", username), attribute.String("workout.type", string(workoutType)))

	userID, err := userIDByUsername(ctx, r.db, username)
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.QueryRow(
		ctx,
		`SELECT count(*) FROM workouts WHERE user_id = $1 AND workout_type = $2::text::exercise_group`,
		userID, string(workoutType),
	).Scan(&count); err != nil {
		return 0, fmt.Errorf("count workouts: %w", err)
	}
	return count, nil
}

// LogExercise appends one logged exercise with its sets at the end of the workout.
func (r *Repo) LogExercise(ctx context.Context, workoutID, exerciseID uuid.UUID, sets []SetInput) (_ *LoggedExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.logexercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("workout.id", workoutID.String()),
		attribute.String("exercise.id", exerciseID.String()),
	)

	var loggedID uuid.UUID
	if err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var ownerID uuid.UUID
		err := tx.QueryRow(ctx, `SELECT user_id FROM workouts WHERE id = $1 FOR UPDATE`, workoutID).Scan(&ownerID)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrWorkoutNotFound
		}
		if err != nil {
			return fmt.Errorf("lock workout: %w", err)
		}

		var visible bool
		if err := tx.QueryRow(
			ctx,
			`SELECT EXISTS (SELECT 1 FROM exercises WHERE id = $1 AND (user_id IS NULL OR user_id = $2))`,
			exerciseID, ownerID,
		).Scan(&visible); err != nil {
			return fmt.Errorf("check exercise: %w", err)
		}
		if !visible {
			return exercises.ErrExerciseNotFound
		}

		var next int
		if err := tx.QueryRow(
			ctx,
			`SELECT COALESCE(MAX(position) + 1, 0) FROM logged_exercises WHERE workout_id = $1`,
			workoutID,
		).Scan(&next); err != nil {
			return fmt.Errorf("next position: %w", err)
		}

		ids, err := insertEntries(ctx, tx, workoutID, next, []newEntry{{exerciseID: exerciseID, sets: sets}})
		if err != nil {
			return err
		}
		loggedID = ids[0]
		return nil
	}); err != nil {
		return nil, err
	}

	entries, err := r.Entries(ctx, workoutID)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].ID == loggedID {
			return &entries[i], nil
		}
	}
	return nil, fmt.Errorf("logged exercise %s vanished after insert", loggedID)
}

// Entries lists the workout's logged exercises. A missing workout simply has none.
func (r *Repo) Entries(ctx context.Context, workoutID uuid.UUID) (_ []LoggedExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.entries")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.id", workoutID.String()))

	byWorkout, err := loadEntries(ctx, r.db, []uuid.UUID{workoutID})
	if err != nil {
		return nil, err
	}
	if entries, ok := byWorkout[workoutID]; ok {
		return entries, nil
	}
	return []LoggedExercise{}, nil
}

// RemoveEntries deletes every logged entry of the exercise in the workout, sets included.
func (r *Repo) RemoveEntries(ctx context.Context, workoutID, exerciseID uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.removeentries")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("workout.id", workoutID.String()),
		attribute.String("exercise.id", exerciseID.String()),
	)

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM logged_exercises WHERE workout_id = $1 AND exercise_id = $2`,
		workoutID, exerciseID,
	)
	if err != nil {
		return fmt.Errorf("remove logged exercises: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrLoggedExerciseNotFound
	}

	log.Debugf("removed %d entries of exercise %s from workout %s", tag.RowsAffected(), exerciseID, workoutID)
	return nil
}
