package users

import (
	"context"
	"errors"

	"github.com/2beens/fitstack/internal/telemetry/tracing"
	"github.com/2beens/fitstack/pkg"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrUsernameTaken   = errors.New("username already taken")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Create(ctx context.Context, username, passwordHash string) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("username", username))

	profile := Profile{
		ID:       uuid.New(),
		Username: username,
	}
	err = r.db.QueryRow(
		ctx,
		`INSERT INTO profiles (id, username, password_hash)
			VALUES ($1, $2, $3)
		RETURNING created_at, updated_at;`,
		profile.ID, username, passwordHash,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	profile.Enrich()
	return &profile, nil
}

func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.getByID")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.getOne(ctx, `
		SELECT id, username, full_name, age, weight, total_points, created_at, updated_at
		FROM profiles
		WHERE id = $1;`, id,
	)
}

func (r *Repo) GetByUsername(ctx context.Context, username string) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.getByUsername")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("username", username))

	return r.getOne(ctx, `
		SELECT id, username, full_name, age, weight, total_points, created_at, updated_at
		FROM profiles
		WHERE username = $1;`, username,
	)
}

// GetCredentials returns the ID and password hash for a username,
// used only by the login flow
func (r *Repo) GetCredentials(ctx context.Context, username string) (id uuid.UUID, passwordHash string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.getCredentials")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(
		ctx,
		`SELECT id, password_hash FROM profiles WHERE username = $1;`,
		username,
	).Scan(&id, &passwordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, "", ErrProfileNotFound
		}
		return uuid.Nil, "", err
	}
	return id, passwordHash, nil
}

func (r *Repo) Update(ctx context.Context, id uuid.UUID, fullName string, age *int, weight *float64) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(
		ctx,
		`UPDATE profiles SET full_name = $1, age = $2, weight = $3, updated_at = NOW() WHERE id = $4;`,
		fullName, age, weight, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// ListTopByPoints returns the top profiles ordered by total points.
// Ties are broken deterministically by profile creation time (older first).
func (r *Repo) ListTopByPoints(ctx context.Context, limit int) (_ []Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.listTopByPoints")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("limit", limit))

	rows, err := r.db.Query(ctx, `
		SELECT id, username, full_name, age, weight, total_points, created_at, updated_at
		FROM profiles
		ORDER BY total_points DESC, created_at ASC
		LIMIT $1;`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rows2profiles(rows)
}

// RankForUser returns the positional leaderboard rank: 1 plus the number
// of profiles strictly ahead under the (points desc, created_at asc) ordering
func (r *Repo) RankForUser(ctx context.Context, id uuid.UUID) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.rankForUser")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var rank int
	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*) + 1
		FROM profiles other, profiles me
		WHERE me.id = $1
		  AND other.id != me.id
		  AND (other.total_points > me.total_points
		    OR (other.total_points = me.total_points AND other.created_at < me.created_at));`,
		id,
	).Scan(&rank)
	if err != nil {
		return 0, err
	}
	return rank, nil
}

func (r *Repo) getOne(ctx context.Context, query string, arg any) (*Profile, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	profiles, err := rows2profiles(rows)
	if err != nil {
		return nil, err
	}
	if len(profiles) != 1 {
		return nil, ErrProfileNotFound
	}
	return &profiles[0], nil
}

func rows2profiles(rows pgx.Rows) ([]Profile, error) {
	profiles := make([]Profile, 0)
	for rows.Next() {
		var p Profile
		var fullName *string
		if err := rows.Scan(
			&p.ID, &p.Username, &fullName, &p.Age, &p.Weight,
			&p.TotalPoints, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if fullName != nil {
			p.FullName = *fullName
		}
		p.Enrich()
		profiles = append(profiles, p)
	}
	return profiles, nil
}
