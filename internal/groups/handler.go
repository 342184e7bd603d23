package groups

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/2beens/fitstack/internal/auth"
	"github.com/2beens/fitstack/internal/telemetry/tracing"
	"github.com/2beens/fitstack/pkg"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type groupsRepo interface {
	Add(ctx context.Context, group Group) (*Group, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*Group, error)
	List(ctx context.Context, userID uuid.UUID) ([]Group, error)
	AddMember(ctx context.Context, coachID, groupID, userID uuid.UUID) error
	RemoveMember(ctx context.Context, coachID, groupID, userID uuid.UUID) error
}

type Handler struct {
	repo groupsRepo
}

func NewHandler(repo groupsRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	groupsRouter := router.PathPrefix("/groups").Subrouter()
	groupsRouter.HandleFunc("", handler.handleAdd).Methods("POST", "OPTIONS").Name("add-group")
	groupsRouter.HandleFunc("", handler.handleList).Methods("GET", "OPTIONS").Name("list-groups")
	groupsRouter.HandleFunc("/{id}", handler.handleGet).Methods("GET", "OPTIONS").Name("get-group")
	groupsRouter.HandleFunc("/{id}/members", handler.handleAddMember).Methods("POST", "OPTIONS").Name("add-group-member")
	groupsRouter.HandleFunc("/{id}/members/{userID}", handler.handleRemoveMember).Methods("DELETE", "OPTIONS").Name("remove-group-member")
}

func (handler *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.groups.add")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var group Group
	if err := json.NewDecoder(r.Body).Decode(&group); err != nil {
		log.Tracef("add group, unmarshal json params: %s", err)
		http.Error(w, "add group failed", http.StatusBadRequest)
		return
	}

	group.CoachID = userID
	if err := group.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	added, err := handler.repo.Add(ctx, group)
	if err != nil {
		log.Errorf("failed to add group for %s: %s", userID, err)
		http.Error(w, "add group failed", http.StatusInternalServerError)
		return
	}

	addedJson, err := json.Marshal(added)
	if err != nil {
		log.Errorf("failed to marshal added group: %s", err)
		http.Error(w, "add group failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedJson, http.StatusCreated)
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.groups.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	groups, err := handler.repo.List(ctx, userID)
	if err != nil {
		log.Errorf("failed to list groups for %s: %s", userID, err)
		http.Error(w, "failed to list groups", http.StatusInternalServerError)
		return
	}

	groupsJson, err := json.Marshal(groups)
	if err != nil {
		log.Errorf("failed to marshal groups: %s", err)
		http.Error(w, "failed to list groups", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, groupsJson)
}

func (handler *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.groups.get")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid group id", http.StatusBadRequest)
		return
	}

	group, err := handler.repo.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, ErrGroupNotFound) {
			http.Error(w, "group not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get group %s: %s", id, err)
		http.Error(w, "failed to get group", http.StatusInternalServerError)
		return
	}

	groupJson, err := json.Marshal(group)
	if err != nil {
		log.Errorf("failed to marshal group: %s", err)
		http.Error(w, "failed to get group", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, groupJson)
}

type addMemberRequest struct {
	UserID uuid.UUID `json:"userId"`
}

func (handler *Handler) handleAddMember(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.groups.addMember")
	defer span.End()

	coachID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	groupID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid group id", http.StatusBadRequest)
		return
	}

	var req addMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("add group member, unmarshal json params: %s", err)
		http.Error(w, "add member failed", http.StatusBadRequest)
		return
	}
	if req.UserID == uuid.Nil {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	if err := handler.repo.AddMember(ctx, coachID, groupID, req.UserID); err != nil {
		switch {
		case errors.Is(err, ErrGroupNotFound):
			http.Error(w, "group not found", http.StatusNotFound)
		case errors.Is(err, ErrAlreadyMember):
			http.Error(w, "already a member", http.StatusConflict)
		case errors.Is(err, ErrMemberNotFound):
			http.Error(w, "user not found", http.StatusNotFound)
		default:
			log.Errorf("failed to add member %s to group %s: %s", req.UserID, groupID, err)
			http.Error(w, "add member failed", http.StatusInternalServerError)
		}
		return
	}

	pkg.WriteTextResponseOK(w, "member-added")
}

func (handler *Handler) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.groups.removeMember")
	defer span.End()

	coachID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	groupID, err := uuid.Parse(vars["id"])
	if err != nil {
		http.Error(w, "invalid group id", http.StatusBadRequest)
		return
	}
	userID, err := uuid.Parse(vars["userID"])
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	if err := handler.repo.RemoveMember(ctx, coachID, groupID, userID); err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			http.Error(w, "member not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to remove member %s from group %s: %s", userID, groupID, err)
		http.Error(w, "remove member failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, fmt.Sprintf("member-removed:%s", userID))
}
