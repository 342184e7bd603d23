package gamify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fitstack/internal/telemetry/tracing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) ListAchievements(ctx context.Context) (_ []Achievement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gamify.listAchievements")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT id, name, description, requirement_type, requirement_value, points_reward
		FROM achievements
		ORDER BY requirement_type, requirement_value
	`)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	var achievements []Achievement
	for rows.Next() {
		var a Achievement
		if err := rows.Scan(
			&a.ID, &a.Name, &a.Description,
			&a.RequirementType, &a.RequirementValue, &a.PointsReward,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		achievements = append(achievements, a)
	}
	return achievements, nil
}

func (r *Repo) EarnedAchievements(ctx context.Context, userID uuid.UUID) (_ []EarnedAchievement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gamify.earnedAchievements")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT a.id, a.name, a.description, a.requirement_type, a.requirement_value, a.points_reward, ua.earned_at
		FROM user_achievements ua
		JOIN achievements a ON a.id = ua.achievement_id
		WHERE ua.user_id = $1
		ORDER BY ua.earned_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	var earned []EarnedAchievement
	for rows.Next() {
		var ea EarnedAchievement
		if err := rows.Scan(
			&ea.ID, &ea.Name, &ea.Description,
			&ea.RequirementType, &ea.RequirementValue, &ea.PointsReward,
			&ea.EarnedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		earned = append(earned, ea)
	}
	return earned, nil
}

func (r *Repo) PersonalBests(ctx context.Context, userID uuid.UUID) (_ []PersonalBest, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gamify.personalBests")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, exercise_id, best_weight_kg, best_reps, best_distance_km, best_duration_seconds, updated_at
		FROM personal_bests
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	var bests []PersonalBest
	for rows.Next() {
		var pb PersonalBest
		if err := rows.Scan(
			&pb.ID, &pb.UserID, &pb.ExerciseID,
			&pb.BestWeightKg, &pb.BestReps, &pb.BestDistanceKm, &pb.BestDurationSeconds,
			&pb.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		bests = append(bests, pb)
	}
	return bests, nil
}

// UpsertPersonalBest merges the candidate into the stored record.
// GREATEST guards each metric so a stored best never decreases, no
// matter what the candidate carries.
func (r *Repo) UpsertPersonalBest(ctx context.Context, pb PersonalBest) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gamify.upsertPersonalBest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.id", pb.ExerciseID.String()))

	_, err = r.db.Exec(ctx, `
		INSERT INTO personal_bests
			(id, user_id, exercise_id, best_weight_kg, best_reps, best_distance_km, best_duration_seconds, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (user_id, exercise_id) DO UPDATE SET
			best_weight_kg = GREATEST(personal_bests.best_weight_kg, EXCLUDED.best_weight_kg),
			best_reps = GREATEST(personal_bests.best_reps, EXCLUDED.best_reps),
			best_distance_km = GREATEST(personal_bests.best_distance_km, EXCLUDED.best_distance_km),
			best_duration_seconds = GREATEST(personal_bests.best_duration_seconds, EXCLUDED.best_duration_seconds),
			updated_at = NOW()
	`,
		uuid.New(), pb.UserID, pb.ExerciseID,
		pb.BestWeightKg, pb.BestReps, pb.BestDistanceKm, pb.BestDurationSeconds,
	)
	return err
}

// GrantAchievement inserts the user achievement and adds the points
// reward in one transaction. The unique constraint makes the grant
// idempotent: when the row already exists no points move and granted
// is false.
func (r *Repo) GrantAchievement(ctx context.Context, userID uuid.UUID, achievement Achievement) (granted bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gamify.grantAchievement")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("achievement", achievement.Name))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, err
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
		INSERT INTO user_achievements (user_id, achievement_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, userID, achievement.ID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	tag, err = tx.Exec(ctx, `
		UPDATE profiles
		SET total_points = total_points + $1
		WHERE id = $2
	`, achievement.PointsReward, userID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, errors.New("profile not found for points update")
	}

	return true, nil
}

// Aggregates collects the user numbers achievements are checked
// against, plus the distinct workout days for the streak.
func (r *Repo) Aggregates(ctx context.Context, userID uuid.UUID) (_ *UserAggregates, workoutDays []time.Time, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gamify.aggregates")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	aggregates := &UserAggregates{}
	err = r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM workouts WHERE user_id = $1),
			(SELECT COUNT(*) FROM personal_bests WHERE user_id = $1),
			(SELECT total_points FROM profiles WHERE id = $1)
	`, userID).Scan(&aggregates.WorkoutsCount, &aggregates.PBCount, &aggregates.PointsTotal)
	if err != nil {
		return nil, nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT date_trunc('day', created_at) AS day
		FROM workouts
		WHERE user_id = $1
		ORDER BY day DESC
	`, userID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	for rows.Next() {
		var day time.Time
		if err := rows.Scan(&day); err != nil {
			return nil, nil, fmt.Errorf("rows scan: %w", err)
		}
		workoutDays = append(workoutDays, day)
	}
	return aggregates, workoutDays, nil
}
