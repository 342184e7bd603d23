package social

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/2beens/fitstack/internal/auth"
	"github.com/2beens/fitstack/internal/telemetry/metrics"
	"github.com/2beens/fitstack/internal/telemetry/tracing"
	"github.com/2beens/fitstack/pkg"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=social_mocks_test.go -package=social_test

const (
	defaultFeedSize = 20
	maxFeedSize     = 100
)

type socialRepo interface {
	Follow(ctx context.Context, followerID, followingID uuid.UUID) error
	Unfollow(ctx context.Context, followerID, followingID uuid.UUID) error
	Followers(ctx context.Context, userID uuid.UUID) ([]FollowEntry, error)
	Following(ctx context.Context, userID uuid.UUID) ([]FollowEntry, error)
	AddShare(ctx context.Context, share Share) (*Share, error)
	Feed(ctx context.Context, params FeedParams) ([]FeedItem, int, error)
	Like(ctx context.Context, userID, shareID uuid.UUID) (int, error)
	Unlike(ctx context.Context, userID, shareID uuid.UUID) (int, error)
}

type FeedResponse struct {
	Items []FeedItem `json:"items"`
	Total int        `json:"total"`
}

type Handler struct {
	repo           socialRepo
	metricsManager *metrics.Manager
}

func NewHandler(repo socialRepo, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:           repo,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	socialRouter := router.PathPrefix("/social").Subrouter()
	socialRouter.HandleFunc("/follow/{userID}", handler.handleFollow).Methods("POST", "OPTIONS").Name("follow")
	socialRouter.HandleFunc("/follow/{userID}", handler.handleUnfollow).Methods("DELETE", "OPTIONS").Name("unfollow")
	socialRouter.HandleFunc("/followers", handler.handleFollowers).Methods("GET", "OPTIONS").Name("followers")
	socialRouter.HandleFunc("/following", handler.handleFollowing).Methods("GET", "OPTIONS").Name("following")
	socialRouter.HandleFunc("/shares", handler.handleAddShare).Methods("POST", "OPTIONS").Name("add-share")
	socialRouter.HandleFunc("/shares/{id}/like", handler.handleLike).Methods("POST", "OPTIONS").Name("like-share")
	socialRouter.HandleFunc("/shares/{id}/like", handler.handleUnlike).Methods("DELETE", "OPTIONS").Name("unlike-share")
	socialRouter.HandleFunc("/feed", handler.handleFeed).Methods("GET", "OPTIONS").Name("feed")
}

func (handler *Handler) handleFollow(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.follow")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	followingID, err := uuid.Parse(mux.Vars(r)["userID"])
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	if followingID == userID {
		http.Error(w, "cannot follow yourself", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Follow(ctx, userID, followingID); err != nil {
		if errors.Is(err, ErrAlreadyFollowing) {
			http.Error(w, "already following", http.StatusConflict)
			return
		}
		if pkg.IsForeignKeyViolationError(err) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to follow %s -> %s: %s", userID, followingID, err)
		http.Error(w, "follow failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, "followed")
}

func (handler *Handler) handleUnfollow(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.unfollow")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	followingID, err := uuid.Parse(mux.Vars(r)["userID"])
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Unfollow(ctx, userID, followingID); err != nil {
		if errors.Is(err, ErrNotFollowing) {
			http.Error(w, "not following", http.StatusNotFound)
			return
		}
		log.Errorf("failed to unfollow %s -> %s: %s", userID, followingID, err)
		http.Error(w, "unfollow failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, "unfollowed")
}

func (handler *Handler) handleFollowers(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.followers")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	followers, err := handler.repo.Followers(ctx, userID)
	if err != nil {
		log.Errorf("failed to get followers for %s: %s", userID, err)
		http.Error(w, "failed to get followers", http.StatusInternalServerError)
		return
	}

	handler.writeJSON(w, followers)
}

func (handler *Handler) handleFollowing(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.following")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	following, err := handler.repo.Following(ctx, userID)
	if err != nil {
		log.Errorf("failed to get following for %s: %s", userID, err)
		http.Error(w, "failed to get following", http.StatusInternalServerError)
		return
	}

	handler.writeJSON(w, following)
}

type addShareRequest struct {
	WorkoutID uuid.UUID `json:"workoutId"`
	Caption   string    `json:"caption"`
}

func (handler *Handler) handleAddShare(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.addShare")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var req addShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("add share, unmarshal json params: %s", err)
		http.Error(w, "add share failed", http.StatusBadRequest)
		return
	}

	if req.WorkoutID == uuid.Nil {
		http.Error(w, "workoutId is required", http.StatusBadRequest)
		return
	}
	if len(req.Caption) > 280 {
		http.Error(w, "caption too long, max 280 chars", http.StatusBadRequest)
		return
	}

	share, err := handler.repo.AddShare(ctx, Share{
		UserID:    userID,
		WorkoutID: req.WorkoutID,
		Caption:   req.Caption,
	})
	if err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			http.Error(w, "workout not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to add share for %s: %s", userID, err)
		http.Error(w, "add share failed", http.StatusInternalServerError)
		return
	}

	shareJson, err := json.Marshal(share)
	if err != nil {
		log.Errorf("failed to marshal share: %s", err)
		http.Error(w, "add share failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, shareJson, http.StatusCreated)
}

type likeResponse struct {
	LikesCount int `json:"likesCount"`
}

func (handler *Handler) handleLike(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.like")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	shareID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid share id", http.StatusBadRequest)
		return
	}

	likesCount, err := handler.repo.Like(ctx, userID, shareID)
	if err != nil {
		if errors.Is(err, ErrShareNotFound) {
			http.Error(w, "share not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to like share %s: %s", shareID, err)
		http.Error(w, "like failed", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterSharesLiked.Inc()
	handler.writeJSON(w, likeResponse{LikesCount: likesCount})
}

func (handler *Handler) handleUnlike(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.unlike")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	shareID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid share id", http.StatusBadRequest)
		return
	}

	likesCount, err := handler.repo.Unlike(ctx, userID, shareID)
	if err != nil {
		if errors.Is(err, ErrShareNotFound) {
			http.Error(w, "share not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to unlike share %s: %s", shareID, err)
		http.Error(w, "unlike failed", http.StatusInternalServerError)
		return
	}

	handler.writeJSON(w, likeResponse{LikesCount: likesCount})
}

func (handler *Handler) handleFeed(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.feed")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	page := 1
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		parsedPage, err := strconv.Atoi(pageStr)
		if err != nil || parsedPage < 1 {
			http.Error(w, "invalid page parameter", http.StatusBadRequest)
			return
		}
		page = parsedPage
	}
	size := defaultFeedSize
	if sizeStr := r.URL.Query().Get("size"); sizeStr != "" {
		parsedSize, err := strconv.Atoi(sizeStr)
		if err != nil || parsedSize < 1 {
			http.Error(w, "invalid size parameter", http.StatusBadRequest)
			return
		}
		size = parsedSize
	}
	if size > maxFeedSize {
		size = maxFeedSize
	}

	items, total, err := handler.repo.Feed(ctx, FeedParams{
		UserID: userID,
		Page:   page,
		Size:   size,
	})
	if err != nil {
		log.Errorf("failed to get feed for %s: %s", userID, err)
		http.Error(w, "failed to get feed", http.StatusInternalServerError)
		return
	}

	handler.writeJSON(w, FeedResponse{
		Items: items,
		Total: total,
	})
}

func (handler *Handler) writeJSON(w http.ResponseWriter, value any) {
	valueJson, err := json.Marshal(value)
	if err != nil {
		log.Errorf("failed to marshal response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, valueJson)
}
