package templates

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fitstack/internal/telemetry/tracing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrTemplateNotFound = errors.New("template not found")

// Visibility filter for listing templates.
const (
	VisibilityAll    = "all"
	VisibilityMine   = "mine"
	VisibilityPublic = "public"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Add inserts the template with its ordered exercises in one transaction.
func (r *Repo) Add(ctx context.Context, template Template) (_ *Template, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	template.ID = uuid.New()
	err = tx.QueryRow(ctx, `
		INSERT INTO workout_templates (id, user_id, name, description, difficulty, is_public)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING times_used, created_at, updated_at
	`,
		template.ID, template.UserID, template.Name,
		template.Description, template.Difficulty, template.IsPublic,
	).Scan(&template.TimesUsed, &template.CreatedAt, &template.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err = insertTemplateExercises(ctx, tx, &template); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("template.id", template.ID.String()))
	return &template, nil
}

// Get returns the template if it belongs to the user or is public.
func (r *Repo) Get(ctx context.Context, userID, id uuid.UUID) (_ *Template, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", id.String()))

	template := &Template{}
	err = r.db.QueryRow(ctx, `
		SELECT id, user_id, name, description, difficulty, is_public, times_used, created_at, updated_at
		FROM workout_templates
		WHERE id = $1 AND (user_id = $2 OR is_public)
	`, id, userID).Scan(
		&template.ID, &template.UserID, &template.Name, &template.Description,
		&template.Difficulty, &template.IsPublic, &template.TimesUsed,
		&template.CreatedAt, &template.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}

	if template.Exercises, err = r.exercisesForTemplate(ctx, template.ID); err != nil {
		return nil, err
	}
	return template, nil
}

// List returns templates per visibility: "mine" for own, "public" for
// public ones of others, "all" for both.
func (r *Repo) List(ctx context.Context, userID uuid.UUID, visibility string) (_ []Template, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("visibility", visibility))

	var where string
	switch visibility {
	case VisibilityMine:
		where = "user_id = $1"
	case VisibilityPublic:
		where = "is_public AND user_id != $1"
	case VisibilityAll:
		where = "(user_id = $1 OR is_public)"
	default:
		return nil, fmt.Errorf("invalid visibility: %s", visibility)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, name, description, difficulty, is_public, times_used, created_at, updated_at
		FROM workout_templates
		WHERE `+where+`
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	var templates []Template
	for rows.Next() {
		var t Template
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.Name, &t.Description,
			&t.Difficulty, &t.IsPublic, &t.TimesUsed, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		templates = append(templates, t)
	}

	for i := range templates {
		if templates[i].Exercises, err = r.exercisesForTemplate(ctx, templates[i].ID); err != nil {
			return nil, err
		}
	}
	return templates, nil
}

// Update replaces template fields and exercises, owner scoped.
func (r *Repo) Update(ctx context.Context, template *Template) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", template.ID.String()))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	tag, err := tx.Exec(ctx, `
		UPDATE workout_templates
		SET name = $1, description = $2, difficulty = $3, is_public = $4
		WHERE id = $5 AND user_id = $6
	`,
		template.Name, template.Description, template.Difficulty, template.IsPublic,
		template.ID, template.UserID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTemplateNotFound
	}

	if _, err = tx.Exec(ctx,
		`DELETE FROM template_exercises WHERE template_id = $1`, template.ID,
	); err != nil {
		return err
	}

	return insertTemplateExercises(ctx, tx, template)
}

func (r *Repo) Delete(ctx context.Context, userID, id uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", id.String()))

	tag, err := r.db.Exec(ctx,
		`DELETE FROM workout_templates WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

// MarkUsed bumps the usage counter of a template visible to the user.
func (r *Repo) MarkUsed(ctx context.Context, userID, id uuid.UUID) (timesUsed int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.markUsed")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", id.String()))

	err = r.db.QueryRow(ctx, `
		UPDATE workout_templates
		SET times_used = times_used + 1
		WHERE id = $1 AND (user_id = $2 OR is_public)
		RETURNING times_used
	`, id, userID).Scan(&timesUsed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrTemplateNotFound
		}
		return 0, err
	}
	return timesUsed, nil
}

func (r *Repo) exercisesForTemplate(ctx context.Context, templateID uuid.UUID) ([]TemplateExercise, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, template_id, exercise_id, sets, reps, weight, order_index
		FROM template_exercises
		WHERE template_id = $1
		ORDER BY order_index
	`, templateID)
	if err != nil {
		return nil, fmt.Errorf("query template exercises: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	var templateExercises []TemplateExercise
	for rows.Next() {
		var te TemplateExercise
		if err := rows.Scan(
			&te.ID, &te.TemplateID, &te.ExerciseID, &te.Sets, &te.Reps, &te.Weight, &te.OrderIndex,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		templateExercises = append(templateExercises, te)
	}
	return templateExercises, nil
}

func insertTemplateExercises(ctx context.Context, tx pgx.Tx, template *Template) error {
	for i := range template.Exercises {
		te := &template.Exercises[i]
		te.ID = uuid.New()
		te.TemplateID = template.ID
		te.OrderIndex = i
		if _, err := tx.Exec(ctx, `
			INSERT INTO template_exercises (id, template_id, exercise_id, sets, reps, weight, order_index)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`,
			te.ID, te.TemplateID, te.ExerciseID, te.Sets, te.Reps, te.Weight, te.OrderIndex,
		); err != nil {
			return fmt.Errorf("insert template exercise: %w", err)
		}
	}
	return nil
}
