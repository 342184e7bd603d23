package measurements

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

type measurementsRepo interface {
	Add(ctx context.Context, measurement Measurement) (*Measurement, error)
	List(ctx context.Context, userID uuid.UUID) ([]Measurement, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type Handler struct {
	repo measurementsRepo
}

func NewHandler(repo measurementsRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/measurements", handler.handleAdd).Methods("POST", "OPTIONS").Name("add-measurement")
	router.HandleFunc("/measurements", handler.handleList).Methods("GET", "OPTIONS").Name("list-measurements")
	router.HandleFunc("/measurements/{id}", handler.handleDelete).Methods("DELETE", "OPTIONS").Name("delete-measurement")
}

func (handler *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.measurements.add")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var measurement Measurement
	if err := json.NewDecoder(r.Body).Decode(&measurement); err != nil {
		log.Tracef("add measurement, unmarshal json params: %s", err)
		http.Error(w, "add measurement failed", http.StatusBadRequest)
		return
	}

	measurement.UserID = userID
	if err := measurement.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	added, err := handler.repo.Add(ctx, measurement)
	if err != nil {
		log.Errorf("failed to add measurement for %s: %s", userID, err)
		http.Error(w, "add measurement failed", http.StatusInternalServerError)
		return
	}

	addedJson, err := json.Marshal(added)
	if err != nil {
		log.Errorf("failed to marshal added measurement: %s", err)
		http.Error(w, "add measurement failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedJson, http.StatusCreated)
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.measurements.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	measurements, err := handler.repo.List(ctx, userID)
	if err != nil {
		log.Errorf("failed to list measurements for %s: %s", userID, err)
		http.Error(w, "failed to list measurements", http.StatusInternalServerError)
		return
	}

	measurementsJson, err := json.Marshal(measurements)
	if err != nil {
		log.Errorf("failed to marshal measurements: %s", err)
		http.Error(w, "failed to list measurements", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, measurementsJson)
}

func (handler *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.measurements.delete")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid measurement id", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, ErrMeasurementNotFound) {
			http.Error(w, "measurement not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete measurement %s: %s", id, err)
		http.Error(w, "delete measurement failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, fmt.Sprintf("deleted:%s", id))
}
