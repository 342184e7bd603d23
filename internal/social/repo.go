package social

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
	ErrAlreadyFollowing = errors.New("already following")
	ErrNotFollowing     = errors.New("not following")
	ErrShareNotFound    = errors.New("share not found")
	ErrWorkoutNotFound  = errors.New("workout not found")
)

type FeedParams struct {
	UserID uuid.UUID
	Page   int
	Size   int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Follow(ctx context.Context, followerID, followingID uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.follow")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = r.db.Exec(ctx, `
		INSERT INTO user_follows (follower_id, following_id)
		VALUES ($1, $2)
	`, followerID, followingID)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return ErrAlreadyFollowing
		}
		return err
	}
	return nil
}

func (r *Repo) Unfollow(ctx context.Context, followerID, followingID uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.unfollow")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `
		DELETE FROM user_follows
		WHERE follower_id = $1 AND following_id = $2
	`, followerID, followingID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFollowing
	}
	return nil
}

func (r *Repo) Followers(ctx context.Context, userID uuid.UUID) (_ []FollowEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.followers")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.followEntries(ctx, `
		SELECT p.id, p.username, p.full_name, f.created_at
		FROM user_follows f
		JOIN profiles p ON p.id = f.follower_id
		WHERE f.following_id = $1
		ORDER BY f.created_at DESC
	`, userID)
}

func (r *Repo) Following(ctx context.Context, userID uuid.UUID) (_ []FollowEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.following")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.followEntries(ctx, `
		SELECT p.id, p.username, p.full_name, f.created_at
		FROM user_follows f
		JOIN profiles p ON p.id = f.following_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC
	`, userID)
}

// AddShare publishes a workout to the feed. Only own workouts can be
// shared, a foreign workout id comes back as not found.
func (r *Repo) AddShare(ctx context.Context, share Share) (_ *Share, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.addShare")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	share.ID = uuid.New()
	err = r.db.QueryRow(ctx, `
		INSERT INTO workout_shares (id, user_id, workout_id, caption)
		SELECT $1, $2, $3, $4
		WHERE EXISTS (
			SELECT 1 FROM workouts WHERE id = $3 AND user_id = $2
		)
		RETURNING likes_count, created_at
	`, share.ID, share.UserID, share.WorkoutID, share.Caption,
	).Scan(&share.LikesCount, &share.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}

	span.SetAttributes(attribute.String("share.id", share.ID.String()))
	return &share, nil
}

// Feed returns shares of the user and everyone they follow, newest
// first, with author and workout joined in.
func (r *Repo) Feed(ctx context.Context, params FeedParams) (_ []FeedItem, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.feed")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("page", params.Page))
	span.SetAttributes(attribute.Int("size", params.Size))

	if params.Page < 1 {
		return nil, -1, errors.New("page must be greater than 0")
	}
	if params.Size < 1 {
		return nil, -1, errors.New("size must be greater than 0")
	}

	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM workout_shares s
		WHERE s.user_id = $1
		OR s.user_id IN (SELECT following_id FROM user_follows WHERE follower_id = $1)
	`, params.UserID).Scan(&total)
	if err != nil {
		return nil, -1, fmt.Errorf("count: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT
			s.id, s.user_id, s.workout_id, s.caption, s.likes_count, s.created_at,
			p.username, p.full_name, w.name,
			EXISTS (
				SELECT 1 FROM workout_likes l WHERE l.share_id = s.id AND l.user_id = $1
			) AS liked_by_me
		FROM workout_shares s
		JOIN profiles p ON p.id = s.user_id
		JOIN workouts w ON w.id = s.workout_id
		WHERE s.user_id = $1
		OR s.user_id IN (SELECT following_id FROM user_follows WHERE follower_id = $1)
		ORDER BY s.created_at DESC
		LIMIT $2 OFFSET $3
	`, params.UserID, params.Size, (params.Page-1)*params.Size)
	if err != nil {
		return nil, -1, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, -1, fmt.Errorf("rows: %w", err)
	}

	var feed []FeedItem
	for rows.Next() {
		var item FeedItem
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.WorkoutID, &item.Caption,
			&item.LikesCount, &item.CreatedAt,
			&item.AuthorUsername, &item.AuthorFullName, &item.WorkoutName,
			&item.LikedByMe,
		); err != nil {
			return nil, -1, fmt.Errorf("rows scan: %w", err)
		}
		feed = append(feed, item)
	}
	return feed, total, nil
}

// Like inserts the like row and bumps the share counter in one
// transaction. Liking an already liked share is a no-op.
func (r *Repo) Like(ctx context.Context, userID, shareID uuid.UUID) (likesCount int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.like")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("share.id", shareID.String()))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
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
		INSERT INTO workout_likes (share_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, shareID, userID)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return 0, ErrShareNotFound
		}
		return 0, err
	}

	// counter moves only when the like row actually landed
	if tag.RowsAffected() == 0 {
		err = tx.QueryRow(ctx,
			`SELECT likes_count FROM workout_shares WHERE id = $1`, shareID,
		).Scan(&likesCount)
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrShareNotFound
		}
		return likesCount, err
	}

	err = tx.QueryRow(ctx, `
		UPDATE workout_shares
		SET likes_count = likes_count + 1
		WHERE id = $1
		RETURNING likes_count
	`, shareID).Scan(&likesCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrShareNotFound
		}
		return 0, err
	}
	return likesCount, nil
}

// Unlike removes the like row and decrements the counter in one
// transaction. Unliking a share that was never liked is a no-op.
func (r *Repo) Unlike(ctx context.Context, userID, shareID uuid.UUID) (likesCount int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.unlike")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("share.id", shareID.String()))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
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
		DELETE FROM workout_likes
		WHERE share_id = $1 AND user_id = $2
	`, shareID, userID)
	if err != nil {
		return 0, err
	}

	if tag.RowsAffected() == 0 {
		err = tx.QueryRow(ctx,
			`SELECT likes_count FROM workout_shares WHERE id = $1`, shareID,
		).Scan(&likesCount)
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrShareNotFound
		}
		return likesCount, err
	}

	err = tx.QueryRow(ctx, `
		UPDATE workout_shares
		SET likes_count = likes_count - 1
		WHERE id = $1
		RETURNING likes_count
	`, shareID).Scan(&likesCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrShareNotFound
		}
		return 0, err
	}
	return likesCount, nil
}

func (r *Repo) followEntries(ctx context.Context, query string, userID uuid.UUID) ([]FollowEntry, error) {
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	var entries []FollowEntry
	for rows.Next() {
		var entry FollowEntry
		if err := rows.Scan(&entry.UserID, &entry.Username, &entry.FullName, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
