package gamify

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/fitstack/internal/telemetry/metrics"
	"github.com/2beens/fitstack/internal/telemetry/tracing"
	"github.com/2beens/fitstack/internal/workouts"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=gamify_test

type gamifyRepo interface {
	ListAchievements(ctx context.Context) ([]Achievement, error)
	UpsertPersonalBest(ctx context.Context, pb PersonalBest) error
	GrantAchievement(ctx context.Context, userID uuid.UUID, achievement Achievement) (bool, error)
	Aggregates(ctx context.Context, userID uuid.UUID) (*UserAggregates, []time.Time, error)
}

// Service reacts to logged workouts: it updates personal bests and
// evaluates achievements. Wired into the workouts handler.
type Service struct {
	repo           gamifyRepo
	metricsManager *metrics.Manager
	// injectable for deterministic streak tests
	NowFunc func() time.Time
}

func NewService(repo gamifyRepo, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:           repo,
		metricsManager: metricsManager,
		NowFunc:        time.Now,
	}
}

func (s *Service) WorkoutAdded(ctx context.Context, userID uuid.UUID, workout *workouts.Workout) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gamify.workoutAdded")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := s.updatePersonalBests(ctx, userID, workout); err != nil {
		return fmt.Errorf("update personal bests: %w", err)
	}
	if _, err := s.EvaluateAchievements(ctx, userID); err != nil {
		return fmt.Errorf("evaluate achievements: %w", err)
	}
	return nil
}

// updatePersonalBests merges all entries of the same exercise within
// the workout into one candidate, best value per metric, then upserts
// one record per exercise.
func (s *Service) updatePersonalBests(ctx context.Context, userID uuid.UUID, workout *workouts.Workout) error {
	merged := make(map[uuid.UUID]*PersonalBest)
	var exerciseOrder []uuid.UUID
	for i := range workout.Exercises {
		we := &workout.Exercises[i]
		candidate := PersonalBest{
			UserID:       userID,
			ExerciseID:   we.ExerciseID,
			BestWeightKg: we.MaxWeight(),
			BestReps:     we.MaxReps(),
		}
		if we.DistanceKm != nil {
			candidate.BestDistanceKm = *we.DistanceKm
		}
		if we.DurationSeconds != nil {
			candidate.BestDurationSeconds = *we.DurationSeconds
		}

		pb, ok := merged[we.ExerciseID]
		if !ok {
			pb = &PersonalBest{UserID: userID, ExerciseID: we.ExerciseID}
			merged[we.ExerciseID] = pb
			exerciseOrder = append(exerciseOrder, we.ExerciseID)
		}
		pb.Improve(candidate)
	}

	for _, exerciseID := range exerciseOrder {
		if err := s.repo.UpsertPersonalBest(ctx, *merged[exerciseID]); err != nil {
			return err
		}
	}
	return nil
}

// EvaluateAchievements grants every achievement whose requirement the
// user currently meets. Safe to call repeatedly, already earned ones
// are skipped by the repo.
func (s *Service) EvaluateAchievements(ctx context.Context, userID uuid.UUID) (granted int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gamify.evaluateAchievements")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	achievements, err := s.repo.ListAchievements(ctx)
	if err != nil {
		return 0, err
	}

	aggregates, workoutDays, err := s.repo.Aggregates(ctx, userID)
	if err != nil {
		return 0, err
	}
	aggregates.StreakDays = workouts.Streak(workoutDays, s.NowFunc())

	for _, achievement := range achievements {
		if !achievement.MetFor(*aggregates) {
			continue
		}
		wasGranted, err := s.repo.GrantAchievement(ctx, userID, achievement)
		if err != nil {
			return granted, err
		}
		if wasGranted {
			granted++
			log.Debugf("user %s earned achievement [%s]", userID, achievement.Name)
			s.metricsManager.CounterAchievementsEarned.Inc()
			// freshly granted points can unlock points_total achievements
			aggregates.PointsTotal += achievement.PointsReward
		}
	}

	span.SetAttributes(attribute.Int("granted", granted))
	return granted, nil
}
