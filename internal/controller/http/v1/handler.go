package v1

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/kurochkinivan/webpa_collector/internal/domain"
)

type TwinProvider interface {
	Twin(ctx context.Context, deviceID, names string) (map[string]any, error)
}

type SnapshotCollector interface {
	Collect(ctx context.Context, deviceID, names string) (*domain.Snapshot, error)
}

type SnapshotsRepository interface {
	SnapshotsByDevice(ctx context.Context, deviceID string, limit, offset uint64) ([]*domain.Snapshot, int, error)
}

type DevicesHandler struct {
	twinProvider TwinProvider
	collector    SnapshotCollector
	snapshots    SnapshotsRepository
}

func NewDevicesHandler(twinProvider TwinProvider, collector SnapshotCollector, snapshots SnapshotsRepository) *DevicesHandler {
	return &DevicesHandler{
		twinProvider: twinProvider,
		collector:    collector,
		snapshots:    snapshots,
	}
}

func (h *DevicesHandler) GetTwin(w http.ResponseWriter, r *http.Request) {
	deviceID := chi.URLParam(r, "device_id")
	names := r.URL.Query().Get("names")

	tree, err := h.twinProvider.Twin(r.Context(), deviceID, names)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tree)
}

type CollectSnapshotResponse struct {
	Snapshot *domain.Snapshot `json:"snapshot"`
}

func (h *DevicesHandler) CollectSnapshot(w http.ResponseWriter, r *http.Request) {
	deviceID := chi.URLParam(r, "device_id")
	names := r.URL.Query().Get("names")
	if names == "" {
		names = "Device."
	}

	snapshot, err := h.collector.Collect(r.Context(), deviceID, names)
	if err != nil {
		writeError(w, err)
		return
	}

	// parameters travel to the archive, not back to the caller
	snapshot.Parameters = nil

	writeJSON(w, http.StatusCreated, CollectSnapshotResponse{Snapshot: snapshot})
}

type GetSnapshotsResponse struct {
	Snapshots  []*domain.Snapshot `json:"snapshots"`
	Pagination Pagination         `json:"pagination"`
}

func (h *DevicesHandler) GetSnapshots(w http.ResponseWriter, r *http.Request) {
	deviceID := chi.URLParam(r, "device_id")

	page, limit, err := h.parsePagination(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	offset := (page - 1) * limit

	snapshots, total, err := h.snapshots.SnapshotsByDevice(r.Context(), deviceID, limit, offset)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, GetSnapshotsResponse{
		Snapshots:  snapshots,
		Pagination: newPagination(page, limit, total),
	})
}

func (h *DevicesHandler) parsePagination(r *http.Request) (page uint64, limit uint64, err error) {
	page, limit = 1, 10

	if p := r.URL.Query().Get("page"); p != "" {
		page, err = strconv.ParseUint(p, 10, 64)
		if err != nil || page == 0 {
			return 0, 0, errors.New("invalid page")
		}
	}

	if l := r.URL.Query().Get("limit"); l != "" {
		limit, err = strconv.ParseUint(l, 10, 64)
		if err != nil || limit < 1 || limit > 100 {
			return 0, 0, errors.New("invalid limit, must be in [1;100]")
		}
	}

	return page, limit, nil
}

type errorResponse struct {
	Message string `json:"message"`
}

// writeError maps the domain taxonomy onto HTTP statuses: unknown paths
// are the caller's mistake, retrieval failures mean the device is not
// reachable, malformed upstream payloads are a bad gateway.
func writeError(w http.ResponseWriter, err error) {
	var (
		noSuchPath *domain.NoSuchPathError
		retrieval  *domain.RetrievalError
		malformed  *domain.MalformedInputError
	)

	switch {
	case errors.As(err, &noSuchPath):
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: err.Error()})
	case errors.As(err, &retrieval):
		writeJSON(w, http.StatusNotFound, errorResponse{Message: err.Error()})
	case errors.As(err, &malformed):
		writeJSON(w, http.StatusBadGateway, errorResponse{Message: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}
