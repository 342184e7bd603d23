package workouts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fitstack/internal/telemetry/tracing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrWorkoutNotFound = errors.New("workout not found")

type ListParams struct {
	UserID uuid.UUID
	From   *time.Time
	To     *time.Time
	Page   int
	Size   int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Add inserts the workout together with its exercises in one transaction.
func (r *Repo) Add(ctx context.Context, workout Workout) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	workout.ID = uuid.New()
	err = tx.QueryRow(ctx, `
		INSERT INTO workouts (id, user_id, name, notes, duration_minutes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`,
		workout.ID, workout.UserID, workout.Name, workout.Notes, workout.DurationMinutes,
	).Scan(&workout.CreatedAt)
	if err != nil {
		return nil, err
	}

	for i := range workout.Exercises {
		we := &workout.Exercises[i]
		we.ID = uuid.New()
		we.WorkoutID = workout.ID
		we.OrderIndex = i
		if _, err = tx.Exec(ctx, `
			INSERT INTO workout_exercises
				(id, workout_id, exercise_id, sets, reps, weight, distance_km, duration_seconds, order_index)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`,
			we.ID, we.WorkoutID, we.ExerciseID, we.Sets, we.Reps, we.Weight,
			we.DistanceKm, we.DurationSeconds, we.OrderIndex,
		); err != nil {
			return nil, fmt.Errorf("insert workout exercise: %w", err)
		}
	}

	span.SetAttributes(attribute.String("workout.id", workout.ID.String()))
	return &workout, nil
}

// Get returns the workout with its exercises. Lookups are owner scoped,
// a foreign workout id comes back as not found.
func (r *Repo) Get(ctx context.Context, userID, id uuid.UUID) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", id.String()))

	workout := &Workout{}
	err = r.db.QueryRow(ctx, `
		SELECT id, user_id, name, notes, duration_minutes, created_at
		FROM workouts
		WHERE id = $1 AND user_id = $2
	`, id, userID).Scan(
		&workout.ID, &workout.UserID, &workout.Name,
		&workout.Notes, &workout.DurationMinutes, &workout.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}

	if workout.Exercises, err = r.exercisesForWorkout(ctx, workout.ID); err != nil {
		return nil, err
	}
	return workout, nil
}

// Update replaces the workout fields and its exercise list in one
// transaction, owner scoped.
func (r *Repo) Update(ctx context.Context, workout *Workout) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", workout.ID.String()))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	tag, err := tx.Exec(ctx, `
		UPDATE workouts
		SET name = $1, notes = $2, duration_minutes = $3
		WHERE id = $4 AND user_id = $5
	`,
		workout.Name, workout.Notes, workout.DurationMinutes,
		workout.ID, workout.UserID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrWorkoutNotFound
	}

	if _, err = tx.Exec(ctx,
		`DELETE FROM workout_exercises WHERE workout_id = $1`, workout.ID,
	); err != nil {
		return err
	}

	for i := range workout.Exercises {
		we := &workout.Exercises[i]
		we.ID = uuid.New()
		we.WorkoutID = workout.ID
		we.OrderIndex = i
		if _, err = tx.Exec(ctx, `
			INSERT INTO workout_exercises
				(id, workout_id, exercise_id, sets, reps, weight, distance_km, duration_seconds, order_index)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`,
			we.ID, we.WorkoutID, we.ExerciseID, we.Sets, we.Reps, we.Weight,
			we.DistanceKm, we.DurationSeconds, we.OrderIndex,
		); err != nil {
			return fmt.Errorf("insert workout exercise: %w", err)
		}
	}

	return nil
}

func (r *Repo) Delete(ctx context.Context, userID, id uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", id.String()))

	tag, err := r.db.Exec(ctx,
		`DELETE FROM workouts WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

// List returns the requested page of workouts, newest first, with the
// total count of workouts matching the filters.
func (r *Repo) List(ctx context.Context, params ListParams) (_ []Workout, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("page", params.Page))
	span.SetAttributes(attribute.Int("size", params.Size))

	if params.Page < 1 {
		return nil, -1, errors.New("page must be greater than 0")
	}
	if params.Size < 1 {
		return nil, -1, errors.New("size must be greater than 0")
	}

	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM workouts
		WHERE user_id = $1
		AND ($2::timestamptz IS NULL OR created_at >= $2)
		AND ($3::timestamptz IS NULL OR created_at <= $3)
	`, params.UserID, params.From, params.To).Scan(&total)
	if err != nil {
		return nil, -1, fmt.Errorf("count: %w", err)
	}

	limit := params.Size
	offset := (params.Page - 1) * params.Size

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, name, notes, duration_minutes, created_at
		FROM workouts
		WHERE user_id = $1
		AND ($2::timestamptz IS NULL OR created_at >= $2)
		AND ($3::timestamptz IS NULL OR created_at <= $3)
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5
	`, params.UserID, params.From, params.To, limit, offset)
	if err != nil {
		return nil, -1, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, -1, fmt.Errorf("rows: %w", err)
	}

	workouts, err := rows2workouts(rows)
	if err != nil {
		return nil, -1, err
	}

	for i := range workouts {
		if workouts[i].Exercises, err = r.exercisesForWorkout(ctx, workouts[i].ID); err != nil {
			return nil, -1, err
		}
	}

	return workouts, total, nil
}

func (r *Repo) Count(ctx context.Context, userID uuid.UUID) (count int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.count")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM workouts WHERE user_id = $1`,
		userID,
	).Scan(&count)
	return count, err
}

func (r *Repo) CountFrom(ctx context.Context, userID uuid.UUID, from time.Time) (count int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.countFrom")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM workouts WHERE user_id = $1 AND created_at >= $2`,
		userID, from,
	).Scan(&count)
	return count, err
}

// AvgDuration averages logged workout durations, 0 when no workout has
// a duration set.
func (r *Repo) AvgDuration(ctx context.Context, userID uuid.UUID) (avg float64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.avgDuration")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(ctx, `
		SELECT COALESCE(AVG(duration_minutes), 0)
		FROM workouts
		WHERE user_id = $1 AND duration_minutes IS NOT NULL
	`, userID).Scan(&avg)
	return avg, err
}

// WorkoutDays returns the distinct calendar days with at least one
// workout, newest first.
func (r *Repo) WorkoutDays(ctx context.Context, userID uuid.UUID) (_ []time.Time, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.workoutDays")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT date_trunc('day', created_at) AS day
		FROM workouts
		WHERE user_id = $1
		ORDER BY day DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	var days []time.Time
	for rows.Next() {
		var day time.Time
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		days = append(days, day)
	}
	return days, nil
}

func (r *Repo) exercisesForWorkout(ctx context.Context, workoutID uuid.UUID) ([]WorkoutExercise, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, workout_id, exercise_id, sets, reps, weight, distance_km, duration_seconds, order_index
		FROM workout_exercises
		WHERE workout_id = $1
		ORDER BY order_index
	`, workoutID)
	if err != nil {
		return nil, fmt.Errorf("query workout exercises: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	var workoutExercises []WorkoutExercise
	for rows.Next() {
		var we WorkoutExercise
		if err := rows.Scan(
			&we.ID, &we.WorkoutID, &we.ExerciseID, &we.Sets, &we.Reps,
			&we.Weight, &we.DistanceKm, &we.DurationSeconds, &we.OrderIndex,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		workoutExercises = append(workoutExercises, we)
	}
	return workoutExercises, nil
}

func rows2workouts(rows pgx.Rows) ([]Workout, error) {
	var workouts []Workout
	for rows.Next() {
		var workout Workout
		if err := rows.Scan(
			&workout.ID, &workout.UserID, &workout.Name,
			&workout.Notes, &workout.DurationMinutes, &workout.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		workouts = append(workouts, workout)
	}
	return workouts, nil
}
