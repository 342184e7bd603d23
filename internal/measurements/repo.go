package measurements

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

var ErrMeasurementNotFound = errors.New("measurement not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, measurement Measurement) (_ *Measurement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.measurements.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	measurement.ID = uuid.New()
	if measurement.MeasuredAt.IsZero() {
		measurement.MeasuredAt = time.Now()
	}

	err = r.db.QueryRow(ctx, `
		INSERT INTO body_measurements
			(id, user_id, weight_kg, height_cm, body_fat_percent, muscle_mass_kg, waist_cm, chest_cm, hips_cm, biceps_cm, thighs_cm, notes, measured_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at
	`,
		measurement.ID, measurement.UserID,
		measurement.WeightKg, measurement.HeightCm, measurement.BodyFatPercent, measurement.MuscleMassKg,
		measurement.WaistCm, measurement.ChestCm, measurement.HipsCm,
		measurement.BicepsCm, measurement.ThighsCm,
		measurement.Notes, measurement.MeasuredAt,
	).Scan(&measurement.CreatedAt)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("measurement.id", measurement.ID.String()))
	return &measurement, nil
}

// List returns the measurement time series for the user, newest first.
func (r *Repo) List(ctx context.Context, userID uuid.UUID) (_ []Measurement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.measurements.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, weight_kg, height_cm, body_fat_percent, muscle_mass_kg, waist_cm, chest_cm, hips_cm, biceps_cm, thighs_cm, notes, measured_at, created_at
		FROM body_measurements
		WHERE user_id = $1
		ORDER BY measured_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	var measurements []Measurement
	for rows.Next() {
		var m Measurement
		if err := rows.Scan(
			&m.ID, &m.UserID, &m.WeightKg, &m.HeightCm, &m.BodyFatPercent, &m.MuscleMassKg,
			&m.WaistCm, &m.ChestCm, &m.HipsCm, &m.BicepsCm, &m.ThighsCm,
			&m.Notes, &m.MeasuredAt, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		measurements = append(measurements, m)
	}
	return measurements, nil
}

func (r *Repo) Delete(ctx context.Context, userID, id uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.measurements.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", id.String()))

	tag, err := r.db.Exec(ctx,
		`DELETE FROM body_measurements WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrMeasurementNotFound
	}
	return nil
}
