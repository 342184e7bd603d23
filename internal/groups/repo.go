package groups

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fitstack/internal/telemetry/tracing"
	"github.com/2beens/fitstack/pkg"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrGroupNotFound  = errors.New("group not found")
	ErrAlreadyMember  = errors.New("already a member")
	ErrMemberNotFound = errors.New("member not found")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, group Group) (_ *Group, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.groups.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	group.ID = uuid.New()
	err = r.db.QueryRow(ctx, `
		INSERT INTO coach_groups (id, coach_id, name, description)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, group.ID, group.CoachID, group.Name, group.Description,
	).Scan(&group.CreatedAt)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("group.id", group.ID.String()))
	return &group, nil
}

// Get returns the group with members, visible to the coach and its
// members only.
func (r *Repo) Get(ctx context.Context, userID, id uuid.UUID) (_ *Group, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.groups.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", id.String()))

	group := &Group{}
	err = r.db.QueryRow(ctx, `
		SELECT id, coach_id, name, description, created_at
		FROM coach_groups g
		WHERE id = $1 AND (
			coach_id = $2
			OR EXISTS (SELECT 1 FROM group_members m WHERE m.group_id = g.id AND m.user_id = $2)
		)
	`, id, userID).Scan(
		&group.ID, &group.CoachID, &group.Name, &group.Description, &group.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}

	if group.Members, err = r.members(ctx, group.ID); err != nil {
		return nil, err
	}
	return group, nil
}

// List returns groups the user coaches plus groups they are a member of.
func (r *Repo) List(ctx context.Context, userID uuid.UUID) (_ []Group, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.groups.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT id, coach_id, name, description, created_at
		FROM coach_groups g
		WHERE coach_id = $1
		OR EXISTS (SELECT 1 FROM group_members m WHERE m.group_id = g.id AND m.user_id = $1)
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	var groups []Group
	for rows.Next() {
		var group Group
		if err := rows.Scan(
			&group.ID, &group.CoachID, &group.Name, &group.Description, &group.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// AddMember adds a user to the group, coach only.
func (r *Repo) AddMember(ctx context.Context, coachID, groupID, userID uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.groups.addMember")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("group.id", groupID.String()))

	tag, err := r.db.Exec(ctx, `
		INSERT INTO group_members (group_id, user_id)
		SELECT $1, $2
		WHERE EXISTS (
			SELECT 1 FROM coach_groups WHERE id = $1 AND coach_id = $3
		)
	`, groupID, userID, coachID)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return ErrAlreadyMember
		}
		if pkg.IsForeignKeyViolationError(err) {
			return ErrMemberNotFound
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrGroupNotFound
	}
	return nil
}

// RemoveMember removes a user from the group, coach only.
func (r *Repo) RemoveMember(ctx context.Context, coachID, groupID, userID uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.groups.removeMember")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("group.id", groupID.String()))

	tag, err := r.db.Exec(ctx, `
		DELETE FROM group_members m
		USING coach_groups g
		WHERE m.group_id = g.id
		AND m.group_id = $1 AND m.user_id = $2 AND g.coach_id = $3
	`, groupID, userID, coachID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrMemberNotFound
	}
	return nil
}

func (r *Repo) members(ctx context.Context, groupID uuid.UUID) ([]Member, error) {
	rows, err := r.db.Query(ctx, `
		SELECT m.group_id, m.user_id, p.username, m.joined_at
		FROM group_members m
		JOIN profiles p ON p.id = m.user_id
		WHERE m.group_id = $1
		ORDER BY m.joined_at
	`, groupID)
	if err != nil {
		return nil, fmt.Errorf("query members: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	var members []Member
	for rows.Next() {
		var member Member
		if err := rows.Scan(&member.GroupID, &member.UserID, &member.Username, &member.JoinedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		members = append(members, member)
	}
	return members, nil
}
