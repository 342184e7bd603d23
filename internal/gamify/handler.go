package gamify

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/2beens/fitstack/internal/auth"
	"github.com/2beens/fitstack/internal/telemetry/tracing"
	"github.com/2beens/fitstack/pkg"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type gamifyReadRepo interface {
	ListAchievements(ctx context.Context) ([]Achievement, error)
	EarnedAchievements(ctx context.Context, userID uuid.UUID) ([]EarnedAchievement, error)
	PersonalBests(ctx context.Context, userID uuid.UUID) ([]PersonalBest, error)
}

type Handler struct {
	repo gamifyReadRepo
}

func NewHandler(repo gamifyReadRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	gamifyRouter := router.PathPrefix("/gamify").Subrouter()
	gamifyRouter.HandleFunc("/achievements", handler.handleAchievements).Methods("GET", "OPTIONS").Name("achievements")
	gamifyRouter.HandleFunc("/earned", handler.handleEarned).Methods("GET", "OPTIONS").Name("earned-achievements")
	gamifyRouter.HandleFunc("/personalbests", handler.handlePersonalBests).Methods("GET", "OPTIONS").Name("personal-bests")
}

// handleAchievements lists the full achievement catalog, no auth needed.
func (handler *Handler) handleAchievements(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gamify.achievements")
	defer span.End()

	achievements, err := handler.repo.ListAchievements(ctx)
	if err != nil {
		log.Errorf("failed to list achievements: %s", err)
		http.Error(w, "failed to list achievements", http.StatusInternalServerError)
		return
	}

	handler.writeJSON(w, achievements)
}

func (handler *Handler) handleEarned(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gamify.earned")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	earned, err := handler.repo.EarnedAchievements(ctx, userID)
	if err != nil {
		log.Errorf("failed to get earned achievements for %s: %s", userID, err)
		http.Error(w, "failed to get earned achievements", http.StatusInternalServerError)
		return
	}

	handler.writeJSON(w, earned)
}

func (handler *Handler) handlePersonalBests(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gamify.personalBests")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	bests, err := handler.repo.PersonalBests(ctx, userID)
	if err != nil {
		log.Errorf("failed to get personal bests for %s: %s", userID, err)
		http.Error(w, "failed to get personal bests", http.StatusInternalServerError)
		return
	}

	handler.writeJSON(w, bests)
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
