package workouts

import (
	"context"
	"time"

	"github.com/2beens/fitstack/internal/telemetry/tracing"

	"github.com/google/uuid"
)

type analyzerRepo interface {
	Count(ctx context.Context, userID uuid.UUID) (int, error)
	CountFrom(ctx context.Context, userID uuid.UUID, from time.Time) (int, error)
	AvgDuration(ctx context.Context, userID uuid.UUID) (float64, error)
	WorkoutDays(ctx context.Context, userID uuid.UUID) ([]time.Time, error)
}

type Analyzer struct {
	repo analyzerRepo
	// injectable for deterministic tests
	NowFunc func() time.Time
}

func NewAnalyzer(repo analyzerRepo) *Analyzer {
	return &Analyzer{
		repo:    repo,
		NowFunc: time.Now,
	}
}

func (a *Analyzer) Stats(ctx context.Context, userID uuid.UUID) (_ *WorkoutStats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.workouts.stats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	now := a.NowFunc()

	total, err := a.repo.Count(ctx, userID)
	if err != nil {
		return nil, err
	}

	thisWeek, err := a.repo.CountFrom(ctx, userID, WeekStart(now))
	if err != nil {
		return nil, err
	}

	avgDuration, err := a.repo.AvgDuration(ctx, userID)
	if err != nil {
		return nil, err
	}

	days, err := a.repo.WorkoutDays(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &WorkoutStats{
		TotalWorkouts:      total,
		WorkoutsThisWeek:   thisWeek,
		AvgDurationMinutes: avgDuration,
		StreakDays:         Streak(days, now),
	}, nil
}

// WeekStart returns the most recent Sunday midnight in the local
// timezone of t.
func WeekStart(t time.Time) time.Time {
	year, month, day := t.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	return midnight.AddDate(0, 0, -int(midnight.Weekday()))
}

// Streak counts the consecutive calendar days with at least one
// workout, ending today or yesterday. A streak is not broken before
// the day is over, so a workout-less today still counts yesterday's
// run; a gap of a full day resets it to 0.
func Streak(workoutDays []time.Time, now time.Time) int {
	days := make(map[time.Time]bool, len(workoutDays))
	for _, d := range workoutDays {
		days[dateOnly(d.In(now.Location()))] = true
	}

	current := dateOnly(now)
	if !days[current] {
		current = current.AddDate(0, 0, -1)
	}

	streak := 0
	for days[current] {
		streak++
		current = current.AddDate(0, 0, -1)
	}
	return streak
}

func dateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
