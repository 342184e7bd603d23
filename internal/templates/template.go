package templates

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

type Template struct {
	ID          uuid.UUID          `json:"id"`
	UserID      uuid.UUID          `json:"userId"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Difficulty  string             `json:"difficulty"`
	IsPublic    bool               `json:"isPublic"`
	TimesUsed   int                `json:"timesUsed"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
	Exercises   []TemplateExercise `json:"exercises"`
}

type TemplateExercise struct {
	ID         uuid.UUID `json:"id"`
	TemplateID uuid.UUID `json:"templateId"`
	ExerciseID uuid.UUID `json:"exerciseId"`
	Sets       int       `json:"sets"`
	Reps       []int     `json:"reps"`
	Weight     []float64 `json:"weight"`
	OrderIndex int       `json:"orderIndex"`
}

func (t *Template) Validate() error {
	if len(t.Name) == 0 {
		return errors.New("template name must not be empty")
	}
	if len(t.Name) > 100 {
		return errors.New("template name too long, max 100 chars")
	}
	switch t.Difficulty {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
	default:
		return fmt.Errorf("difficulty must be one of %s, %s, %s",
			DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced)
	}
	for i, te := range t.Exercises {
		if te.Sets < 1 {
			return fmt.Errorf("exercise %d: sets must be at least 1", i+1)
		}
		if len(te.Reps) != te.Sets {
			return fmt.Errorf("exercise %d: reps has %d entries, expected %d (one per set)",
				i+1, len(te.Reps), te.Sets)
		}
		if len(te.Weight) != te.Sets {
			return fmt.Errorf("exercise %d: weight has %d entries, expected %d (one per set)",
				i+1, len(te.Weight), te.Sets)
		}
	}
	return nil
}
