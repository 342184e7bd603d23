package measurements

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Measurement struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"userId"`
	WeightKg       *float64  `json:"weightKg,omitempty"`
	HeightCm       *float64  `json:"heightCm,omitempty"`
	BodyFatPercent *float64  `json:"bodyFatPercent,omitempty"`
	MuscleMassKg   *float64  `json:"muscleMassKg,omitempty"`
	WaistCm        *float64  `json:"waistCm,omitempty"`
	ChestCm        *float64  `json:"chestCm,omitempty"`
	HipsCm         *float64  `json:"hipsCm,omitempty"`
	BicepsCm       *float64  `json:"bicepsCm,omitempty"`
	ThighsCm       *float64  `json:"thighsCm,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	MeasuredAt     time.Time `json:"measuredAt"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (m *Measurement) Validate() error {
	if m.WeightKg == nil && m.HeightCm == nil && m.BodyFatPercent == nil &&
		m.MuscleMassKg == nil && m.WaistCm == nil && m.ChestCm == nil &&
		m.HipsCm == nil && m.BicepsCm == nil && m.ThighsCm == nil {
		return errors.New("at least one measurement value is required")
	}
	for name, value := range map[string]*float64{
		"weightKg":     m.WeightKg,
		"heightCm":     m.HeightCm,
		"muscleMassKg": m.MuscleMassKg,
		"waistCm":      m.WaistCm,
		"chestCm":      m.ChestCm,
		"hipsCm":       m.HipsCm,
		"bicepsCm":     m.BicepsCm,
		"thighsCm":     m.ThighsCm,
	} {
		if value != nil && *value <= 0 {
			return errors.New(name + " must be positive")
		}
	}
	if m.BodyFatPercent != nil && (*m.BodyFatPercent <= 0 || *m.BodyFatPercent >= 100) {
		return errors.New("bodyFatPercent must be between 0 and 100")
	}
	return nil
}
