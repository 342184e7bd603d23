package exercises

import (
	"time"

	"github.com/google/uuid"
)

// Exercise is catalog reference data, seeded via scripts/seed.sql
// and never mutated through the API.
type Exercise struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	MuscleGroups []string  `json:"muscleGroups"`
	Equipment    string    `json:"equipment,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
