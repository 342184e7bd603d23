package users

import (
	"time"

	"github.com/google/uuid"
)

const pointsPerLevel = 1000

type Profile struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	FullName    string    `json:"fullName"`
	Age         *int      `json:"age,omitempty"`
	Weight      *float64  `json:"weight,omitempty"`
	TotalPoints int       `json:"totalPoints"`
	Level       int       `json:"level"`
	RankTitle   string    `json:"rankTitle"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// LevelProgress is derived from total points only, so that the level
// shown can never drift away from the points actually earned
type LevelProgress struct {
	Level         int `json:"level"`
	PointsInLevel int `json:"pointsInLevel"`
	PointsToNext  int `json:"pointsToNext"`
}

func ProgressForPoints(totalPoints int) LevelProgress {
	if totalPoints < 0 {
		totalPoints = 0
	}
	inLevel := totalPoints % pointsPerLevel
	return LevelProgress{
		Level:         totalPoints/pointsPerLevel + 1,
		PointsInLevel: inLevel,
		PointsToNext:  pointsPerLevel - inLevel,
	}
}

func RankTitleForPoints(totalPoints int) string {
	switch level := ProgressForPoints(totalPoints).Level; {
	case level >= 10:
		return "Legend"
	case level >= 7:
		return "Elite"
	case level >= 5:
		return "Advanced"
	case level >= 3:
		return "Intermediate"
	default:
		return "Beginner"
	}
}

// Enrich fills in the fields derived from total points
func (p *Profile) Enrich() {
	p.Level = ProgressForPoints(p.TotalPoints).Level
	p.RankTitle = RankTitleForPoints(p.TotalPoints)
}
