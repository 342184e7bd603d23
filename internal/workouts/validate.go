package workouts

import (
	"errors"
	"fmt"
)

const (
	maxNameLength      = 100
	maxDurationMinutes = 600
)

// Validate rejects a workout before it reaches the DB, with a
// field-specific message for the client.
func (w *Workout) Validate() error {
	if len(w.Name) == 0 {
		return errors.New("workout name must not be empty")
	}
	if len(w.Name) > maxNameLength {
		return fmt.Errorf("workout name too long, max %d chars", maxNameLength)
	}
	if w.DurationMinutes != nil {
		if *w.DurationMinutes < 1 || *w.DurationMinutes > maxDurationMinutes {
			return fmt.Errorf("duration must be between 1 and %d minutes", maxDurationMinutes)
		}
	}
	for i, we := range w.Exercises {
		if err := we.Validate(); err != nil {
			return fmt.Errorf("exercise %d: %w", i+1, err)
		}
	}
	return nil
}

func (we *WorkoutExercise) Validate() error {
	if we.Sets < 1 {
		return errors.New("sets must be at least 1")
	}
	if len(we.Reps) != we.Sets {
		return fmt.Errorf("reps has %d entries, expected %d (one per set)", len(we.Reps), we.Sets)
	}
	if len(we.Weight) != we.Sets {
		return fmt.Errorf("weight has %d entries, expected %d (one per set)", len(we.Weight), we.Sets)
	}
	for _, reps := range we.Reps {
		if reps < 0 {
			return errors.New("reps must not be negative")
		}
	}
	for _, weight := range we.Weight {
		if weight < 0 {
			return errors.New("weight must not be negative")
		}
	}
	if we.DistanceKm != nil && *we.DistanceKm < 0 {
		return errors.New("distance must not be negative")
	}
	if we.DurationSeconds != nil && *we.DurationSeconds < 0 {
		return errors.New("duration must not be negative")
	}
	return nil
}
