package gamify

import (
	"time"

	"github.com/google/uuid"
)

// Achievement requirement types, matched against UserAggregates.
const (
	RequirementWorkoutsCount = "workouts_count"
	RequirementStreakDays    = "streak_days"
	RequirementPointsTotal   = "points_total"
	RequirementPBCount       = "pb_count"
)

// PersonalBest tracks per-exercise records, one metric independent of
// the other. Values only ever go up.
type PersonalBest struct {
	ID                  uuid.UUID `json:"id"`
	UserID              uuid.UUID `json:"userId"`
	ExerciseID          uuid.UUID `json:"exerciseId"`
	BestWeightKg        float64   `json:"bestWeightKg"`
	BestReps            int       `json:"bestReps"`
	BestDistanceKm      float64   `json:"bestDistanceKm"`
	BestDurationSeconds int       `json:"bestDurationSeconds"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// Achievement is reference data, seeded via scripts/seed.sql.
type Achievement struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description,omitempty"`
	RequirementType  string    `json:"requirementType"`
	RequirementValue int       `json:"requirementValue"`
	PointsReward     int       `json:"pointsReward"`
}

type EarnedAchievement struct {
	Achievement
	EarnedAt time.Time `json:"earnedAt"`
}

// UserAggregates holds the numbers achievement requirements are
// checked against.
type UserAggregates struct {
	WorkoutsCount int
	StreakDays    int
	PointsTotal   int
	PBCount       int
}

// MetFor reports whether the achievement requirement is satisfied by
// the aggregates. Unknown requirement types are never met.
func (a *Achievement) MetFor(aggregates UserAggregates) bool {
	switch a.RequirementType {
	case RequirementWorkoutsCount:
		return aggregates.WorkoutsCount >= a.RequirementValue
	case RequirementStreakDays:
		return aggregates.StreakDays >= a.RequirementValue
	case RequirementPointsTotal:
		return aggregates.PointsTotal >= a.RequirementValue
	case RequirementPBCount:
		return aggregates.PBCount >= a.RequirementValue
	default:
		return false
	}
}

// Improve merges a candidate into the personal best, keeping the
// better value per metric. Returns true when anything improved.
func (pb *PersonalBest) Improve(candidate PersonalBest) (improved bool) {
	if candidate.BestWeightKg > pb.BestWeightKg {
		pb.BestWeightKg = candidate.BestWeightKg
		improved = true
	}
	if candidate.BestReps > pb.BestReps {
		pb.BestReps = candidate.BestReps
		improved = true
	}
	if candidate.BestDistanceKm > pb.BestDistanceKm {
		pb.BestDistanceKm = candidate.BestDistanceKm
		improved = true
	}
	if candidate.BestDurationSeconds > pb.BestDurationSeconds {
		pb.BestDurationSeconds = candidate.BestDurationSeconds
		improved = true
	}
	return improved
}
