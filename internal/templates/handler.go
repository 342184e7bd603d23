package templates

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

type templatesRepo interface {
	Add(ctx context.Context, template Template) (*Template, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*Template, error)
	List(ctx context.Context, userID uuid.UUID, visibility string) ([]Template, error)
	Update(ctx context.Context, template *Template) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	MarkUsed(ctx context.Context, userID, id uuid.UUID) (int, error)
}

type Handler struct {
	repo templatesRepo
}

func NewHandler(repo templatesRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	templatesRouter := router.PathPrefix("/templates").Subrouter()
	templatesRouter.HandleFunc("", handler.handleAdd).Methods("POST", "OPTIONS").Name("add-template")
	templatesRouter.HandleFunc("", handler.handleList).Methods("GET", "OPTIONS").Name("list-templates")
	templatesRouter.HandleFunc("/{id}", handler.handleGet).Methods("GET", "OPTIONS").Name("get-template")
	templatesRouter.HandleFunc("/{id}", handler.handleUpdate).Methods("PUT", "OPTIONS").Name("update-template")
	templatesRouter.HandleFunc("/{id}", handler.handleDelete).Methods("DELETE", "OPTIONS").Name("delete-template")
	templatesRouter.HandleFunc("/{id}/use", handler.handleUse).Methods("POST", "OPTIONS").Name("use-template")
}

func (handler *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.add")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var template Template
	if err := json.NewDecoder(r.Body).Decode(&template); err != nil {
		log.Tracef("add template, unmarshal json params: %s", err)
		http.Error(w, "add template failed", http.StatusBadRequest)
		return
	}

	template.UserID = userID
	if err := template.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	added, err := handler.repo.Add(ctx, template)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			http.Error(w, "unknown exercise", http.StatusConflict)
			return
		}
		log.Errorf("failed to add template for %s: %s", userID, err)
		http.Error(w, "add template failed", http.StatusInternalServerError)
		return
	}

	handler.writeTemplate(w, added, http.StatusCreated)
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	visibility := r.URL.Query().Get("visibility")
	if visibility == "" {
		visibility = VisibilityAll
	}
	switch visibility {
	case VisibilityAll, VisibilityMine, VisibilityPublic:
	default:
		http.Error(w, "invalid visibility parameter", http.StatusBadRequest)
		return
	}

	templates, err := handler.repo.List(ctx, userID, visibility)
	if err != nil {
		log.Errorf("failed to list templates for %s: %s", userID, err)
		http.Error(w, "failed to list templates", http.StatusInternalServerError)
		return
	}

	templatesJson, err := json.Marshal(templates)
	if err != nil {
		log.Errorf("failed to marshal templates: %s", err)
		http.Error(w, "failed to list templates", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, templatesJson)
}

func (handler *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.get")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid template id", http.StatusBadRequest)
		return
	}

	template, err := handler.repo.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, ErrTemplateNotFound) {
			http.Error(w, "template not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get template %s: %s", id, err)
		http.Error(w, "failed to get template", http.StatusInternalServerError)
		return
	}

	handler.writeTemplate(w, template, http.StatusOK)
}

func (handler *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.update")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid template id", http.StatusBadRequest)
		return
	}

	var template Template
	if err := json.NewDecoder(r.Body).Decode(&template); err != nil {
		log.Tracef("update template, unmarshal json params: %s", err)
		http.Error(w, "update template failed", http.StatusBadRequest)
		return
	}

	template.ID = id
	template.UserID = userID
	if err := template.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handler.repo.Update(ctx, &template); err != nil {
		if errors.Is(err, ErrTemplateNotFound) {
			http.Error(w, "template not found", http.StatusNotFound)
			return
		}
		if pkg.IsForeignKeyViolationError(err) {
			http.Error(w, "unknown exercise", http.StatusConflict)
			return
		}
		log.Errorf("failed to update template %s: %s", id, err)
		http.Error(w, "update template failed", http.StatusInternalServerError)
		return
	}

	handler.writeTemplate(w, &template, http.StatusOK)
}

func (handler *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.delete")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid template id", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, ErrTemplateNotFound) {
			http.Error(w, "template not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete template %s: %s", id, err)
		http.Error(w, "delete template failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, fmt.Sprintf("deleted:%s", id))
}

type useResponse struct {
	TimesUsed int `json:"timesUsed"`
}

func (handler *Handler) handleUse(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.use")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid template id", http.StatusBadRequest)
		return
	}

	timesUsed, err := handler.repo.MarkUsed(ctx, userID, id)
	if err != nil {
		if errors.Is(err, ErrTemplateNotFound) {
			http.Error(w, "template not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to mark template %s used: %s", id, err)
		http.Error(w, "use template failed", http.StatusInternalServerError)
		return
	}

	usedJson, err := json.Marshal(useResponse{TimesUsed: timesUsed})
	if err != nil {
		log.Errorf("failed to marshal use response: %s", err)
		http.Error(w, "use template failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, usedJson)
}

func (handler *Handler) writeTemplate(w http.ResponseWriter, template *Template, statusCode int) {
	templateJson, err := json.Marshal(template)
	if err != nil {
		log.Errorf("failed to marshal template: %s", err)
		http.Error(w, "failed to marshal template", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, templateJson, statusCode)
}
