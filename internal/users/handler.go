package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/2beens/fitstack/internal/auth"
	"github.com/2beens/fitstack/internal/middleware"
	"github.com/2beens/fitstack/internal/telemetry/metrics"
	"github.com/2beens/fitstack/internal/telemetry/tracing"
	"github.com/2beens/fitstack/pkg"

	"github.com/coocood/freecache"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=users_mocks_test.go -package=users_test

const (
	defaultLeaderboardLimit = 50
	maxLeaderboardLimit     = 200
)

type usersRepo interface {
	Create(ctx context.Context, username, passwordHash string) (*Profile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	GetByUsername(ctx context.Context, username string) (*Profile, error)
	GetCredentials(ctx context.Context, username string) (uuid.UUID, string, error)
	Update(ctx context.Context, id uuid.UUID, fullName string, age *int, weight *float64) error
	ListTopByPoints(ctx context.Context, limit int) ([]Profile, error)
	RankForUser(ctx context.Context, id uuid.UUID) (int, error)
}

type LeaderboardEntry struct {
	Profile
	Rank int `json:"rank"`
}

type LeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
	Total   int                `json:"total"`
}

type ProgressResponse struct {
	LevelProgress
	TotalPoints int `json:"totalPoints"`
	Rank        int `json:"rank"`
}

type Handler struct {
	repo        usersRepo
	authService *auth.Service

	lbCache           *freecache.Cache
	lbCacheTTLSeconds int
}

func NewHandler(
	repo usersRepo,
	authService *auth.Service,
	lbCache *freecache.Cache,
	lbCacheTTLSeconds int,
) *Handler {
	return &Handler{
		repo:              repo,
		authService:       authService,
		lbCache:           lbCache,
		lbCacheTTLSeconds: lbCacheTTLSeconds,
	}
}

func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	metricsManager *metrics.Manager,
	loginAllowedPerMin int,
) {
	mainRouter.HandleFunc("/me", handler.handleGetMe).Methods("GET", "OPTIONS").Name("get-me")
	mainRouter.HandleFunc("/me", handler.handleUpdateMe).Methods("PUT", "OPTIONS").Name("update-me")
	mainRouter.HandleFunc("/me/progress", handler.handleGetProgress).Methods("GET", "OPTIONS").Name("get-progress")
	mainRouter.HandleFunc("/users/{username}", handler.handleGetProfile).Methods("GET", "OPTIONS").Name("get-profile")
	mainRouter.HandleFunc("/leaderboard", handler.handleLeaderboard).Methods("GET", "OPTIONS").Name("leaderboard")

	loginSubrouter := mainRouter.PathPrefix("/a").Subrouter()
	loginSubrouter.
		HandleFunc("/register", handler.handleRegister).
		Methods("POST", "OPTIONS").Name("register")
	loginSubrouter.
		HandleFunc("/login", handler.handleLogin).
		Methods("POST", "OPTIONS").Name("login")
	loginSubrouter.
		HandleFunc("/logout", handler.handleLogout).
		Methods("GET", "OPTIONS").Name("logout")

	// rate limit the register/login/logout endpoints to prevent abuse
	loginSubrouter.Use(middleware.RateLimit(rateLimiter, "login", loginAllowedPerMin, metricsManager))
	loginSubrouter.Use(middleware.Cors())
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (handler *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.register")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("register, unmarshal json params: %s", err)
		http.Error(w, "register failed", http.StatusBadRequest)
		return
	}

	if err := ValidateUsername(req.Username); err != nil {
		http.Error(w, fmt.Sprintf("invalid username: %s", err), http.StatusBadRequest)
		return
	}
	if err := ValidatePassword(req.Password); err != nil {
		http.Error(w, fmt.Sprintf("invalid password: %s", err), http.StatusBadRequest)
		return
	}

	passwordHash, err := pkg.HashPassword(req.Password)
	if err != nil {
		log.Errorf("register, hash password: %s", err)
		http.Error(w, "register failed", http.StatusInternalServerError)
		return
	}

	profile, err := handler.repo.Create(ctx, req.Username, passwordHash)
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			http.Error(w, "username already taken", http.StatusConflict)
			return
		}
		log.Errorf("failed to register user [%s]: %s", req.Username, err)
		http.Error(w, "register failed", http.StatusInternalServerError)
		return
	}

	profileJson, err := json.Marshal(profile)
	if err != nil {
		log.Errorf("failed to marshal new profile: %s", err)
		http.Error(w, "register failed", http.StatusInternalServerError)
		return
	}

	log.Debugf("new user registered: %s", profile.Username)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, profileJson, http.StatusCreated)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (handler *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.login")
	defer span.End()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("login, unmarshal json params: %s", err)
		http.Error(w, "login failed", http.StatusBadRequest)
		return
	}

	userID, passwordHash, err := handler.repo.GetCredentials(ctx, req.Username)
	if err != nil {
		if !errors.Is(err, ErrProfileNotFound) {
			log.Errorf("login, get credentials for [%s]: %s", req.Username, err)
		}
		http.Error(w, "login failed", http.StatusUnauthorized)
		return
	}

	if !pkg.CheckPasswordHash(req.Password, passwordHash) {
		log.Tracef("login, invalid password for [%s]", req.Username)
		http.Error(w, "login failed", http.StatusUnauthorized)
		return
	}

	token, err := handler.authService.Login(ctx, userID)
	if err != nil {
		log.Errorf("login, create session for [%s]: %s", req.Username, err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	tokenJson, err := json.Marshal(loginResponse{Token: token})
	if err != nil {
		log.Errorf("login, marshal response: %s", err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, tokenJson)
}

func (handler *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.logout")
	defer span.End()

	token := r.Header.Get("X-FITSTACK-TOKEN")
	if token == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	if err := handler.authService.Logout(ctx, token); err != nil {
		log.Errorf("logout: %s", err)
		http.Error(w, "logout failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, "logged-out")
}

func (handler *Handler) handleGetMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.getMe")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	profile, err := handler.repo.GetByID(ctx, userID)
	if err != nil {
		log.Errorf("failed to get profile %s: %s", userID, err)
		http.Error(w, "profile not found", http.StatusNotFound)
		return
	}

	handler.writeProfile(w, profile)
}

type updateProfileRequest struct {
	FullName string   `json:"fullName"`
	Age      *int     `json:"age"`
	Weight   *float64 `json:"weight"`
}

func (handler *Handler) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.updateMe")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("update profile, unmarshal json params: %s", err)
		http.Error(w, "update profile failed", http.StatusBadRequest)
		return
	}

	if err := ValidateProfileUpdate(req.FullName, req.Age, req.Weight); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handler.repo.Update(ctx, userID, req.FullName, req.Age, req.Weight); err != nil {
		log.Errorf("failed to update profile %s: %s", userID, err)
		http.Error(w, "update profile failed", http.StatusInternalServerError)
		return
	}

	profile, err := handler.repo.GetByID(ctx, userID)
	if err != nil {
		log.Errorf("failed to get updated profile %s: %s", userID, err)
		http.Error(w, "update profile failed", http.StatusInternalServerError)
		return
	}

	handler.writeProfile(w, profile)
}

func (handler *Handler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.getProfile")
	defer span.End()

	vars := mux.Vars(r)
	username := vars["username"]
	if username == "" {
		http.Error(w, "error, username empty", http.StatusBadRequest)
		return
	}

	profile, err := handler.repo.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, ErrProfileNotFound) {
			log.Errorf("failed to get profile [%s]: %s", username, err)
		}
		http.Error(w, "profile not found", http.StatusNotFound)
		return
	}

	handler.writeProfile(w, profile)
}

func (handler *Handler) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.getProgress")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	profile, err := handler.repo.GetByID(ctx, userID)
	if err != nil {
		log.Errorf("failed to get profile %s: %s", userID, err)
		http.Error(w, "profile not found", http.StatusNotFound)
		return
	}

	rank, err := handler.repo.RankForUser(ctx, userID)
	if err != nil {
		log.Errorf("failed to get rank for %s: %s", userID, err)
		http.Error(w, "failed to get progress", http.StatusInternalServerError)
		return
	}

	progressJson, err := json.Marshal(ProgressResponse{
		LevelProgress: ProgressForPoints(profile.TotalPoints),
		TotalPoints:   profile.TotalPoints,
		Rank:          rank,
	})
	if err != nil {
		log.Errorf("failed to marshal progress: %s", err)
		http.Error(w, "failed to get progress", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, progressJson)
}

func (handler *Handler) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.leaderboard")
	defer span.End()

	limit := defaultLeaderboardLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsedLimit, err := strconv.Atoi(limitStr)
		if err != nil || parsedLimit < 1 {
			http.Error(w, "invalid limit parameter", http.StatusBadRequest)
			return
		}
		limit = parsedLimit
	}
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}

	cacheKey := []byte(fmt.Sprintf("leaderboard||%d", limit))
	if handler.lbCache != nil {
		if cached, err := handler.lbCache.Get(cacheKey); err == nil {
			pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, cached)
			return
		}
	}

	profiles, err := handler.repo.ListTopByPoints(ctx, limit)
	if err != nil {
		log.Errorf("failed to get leaderboard: %s", err)
		http.Error(w, "failed to get leaderboard", http.StatusInternalServerError)
		return
	}

	entries := make([]LeaderboardEntry, 0, len(profiles))
	for i, p := range profiles {
		entries = append(entries, LeaderboardEntry{
			Profile: p,
			// positional rank, ties already ordered by the repo
			Rank: i + 1,
		})
	}

	leaderboardJson, err := json.Marshal(LeaderboardResponse{
		Entries: entries,
		Total:   len(entries),
	})
	if err != nil {
		log.Errorf("failed to marshal leaderboard: %s", err)
		http.Error(w, "failed to get leaderboard", http.StatusInternalServerError)
		return
	}

	if handler.lbCache != nil {
		if err := handler.lbCache.Set(cacheKey, leaderboardJson, handler.lbCacheTTLSeconds); err != nil {
			log.Warnf("failed to cache leaderboard: %s", err)
		}
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, leaderboardJson)
}

func (handler *Handler) writeProfile(w http.ResponseWriter, profile *Profile) {
	profileJson, err := json.Marshal(profile)
	if err != nil {
		log.Errorf("failed to marshal profile: %s", err)
		http.Error(w, "failed to marshal profile", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, profileJson)
}
