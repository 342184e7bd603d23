package workouts

import (
	"time"

	"github.com/google/uuid"
)

type Workout struct {
	ID              uuid.UUID         `json:"id"`
	UserID          uuid.UUID         `json:"userId"`
	Name            string            `json:"name"`
	Notes           string            `json:"notes,omitempty"`
	DurationMinutes *int              `json:"durationMinutes,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	Exercises       []WorkoutExercise `json:"exercises"`
}

// WorkoutExercise holds per-set data as parallel arrays: Reps and
// Weight both have exactly Sets elements.
type WorkoutExercise struct {
	ID              uuid.UUID `json:"id"`
	WorkoutID       uuid.UUID `json:"workoutId"`
	ExerciseID      uuid.UUID `json:"exerciseId"`
	Sets            int       `json:"sets"`
	Reps            []int     `json:"reps"`
	Weight          []float64 `json:"weight"`
	DistanceKm      *float64  `json:"distanceKm,omitempty"`
	DurationSeconds *int      `json:"durationSeconds,omitempty"`
	OrderIndex      int       `json:"orderIndex"`
}

type WorkoutStats struct {
	TotalWorkouts      int     `json:"totalWorkouts"`
	WorkoutsThisWeek   int     `json:"workoutsThisWeek"`
	AvgDurationMinutes float64 `json:"avgDurationMinutes"`
	StreakDays         int     `json:"streakDays"`
}

// MaxWeight returns the heaviest set, 0 when no weight was logged.
func (we *WorkoutExercise) MaxWeight() float64 {
	var best float64
	for _, w := range we.Weight {
		if w > best {
			best = w
		}
	}
	return best
}

// MaxReps returns the highest rep count of a single set.
func (we *WorkoutExercise) MaxReps() int {
	var best int
	for _, r := range we.Reps {
		if r > best {
			best = r
		}
	}
	return best
}
