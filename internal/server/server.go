package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/swiftgentle/jobcost/internal/store"
	"github.com/swiftgentle/jobcost/pkg/budget"
	"github.com/swiftgentle/jobcost/pkg/constants"
	"github.com/swiftgentle/jobcost/pkg/costing"
	"github.com/swiftgentle/jobcost/pkg/roster"
)

// Store is the persistence the API reads and writes. *store.Store
// satisfies it.
type Store interface {
	ListEmployees(ctx context.Context) (costing.WageTable, error)
	UpsertEmployee(ctx context.Context, name string, wage float64) error
	DeleteEmployee(ctx context.Context, name string) error

	LoadBudget(ctx context.Context) (budget.Departments, error)
	AddDepartment(ctx context.Context, dept string) (budget.Departments, error)
	SaveSubcategory(ctx context.Context, dept, sub string, amount float64) error
	DeleteDepartment(ctx context.Context, dept string) error

	SaveJob(ctx context.Context, rec store.JobRecord) (store.JobRecord, error)
	GetJob(ctx context.Context, id string) (store.JobRecord, error)
	ListJobs(ctx context.Context, limit int) ([]store.JobRecord, error)

	ListSnapshots(ctx context.Context, limit int) ([]store.Snapshot, error)

	Ping(ctx context.Context) error
}

type handler struct {
	logger        *zap.Logger
	store         Store
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the job cost API.
func NewHandler(logger *zap.Logger, st Store, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, store: st, maxUploadSize: maxUploadSize, version: trimmedVersion}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(h.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(h.limitBody)

	r.Route("/api", func(r chi.Router) {
		r.Get("/version", h.handleVersion)
		r.Get("/health", h.handleHealth)

		r.Route("/jobs", func(r chi.Router) {
			r.Post("/metrics", h.handleJobMetrics)
			r.Post("/", h.handleSaveJob)
			r.Get("/", h.handleListJobs)
			r.Get("/{id}", h.handleGetJob)
			r.Get("/{id}/export", h.handleExportJob)
		})

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.handleListEmployees)
			r.Put("/{name}", h.handlePutEmployee)
			r.Delete("/{name}", h.handleDeleteEmployee)
		})

		r.Route("/budget", func(r chi.Router) {
			r.Get("/", h.handleGetBudget)
			r.Get("/snapshots", h.handleListSnapshots)
			r.Post("/{department}", h.handleAddDepartment)
			r.Put("/{department}/{subcategory}", h.handlePutBudgetItem)
			r.Delete("/{department}", h.handleDeleteDepartment)
		})
	})

	return r
}

func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		h.logger.Info("request handled",
			zap.String("op", "server.logRequests"),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("requestID", middleware.GetReqID(r.Context())),
		)
	})
}

func (h *handler) limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
		}
		next.ServeHTTP(w, r)
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.respondErrorWithOp(w, http.StatusServiceUnavailable,
			fmt.Sprintf("database unavailable: %v", err), "server.handleHealth")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeJSON reads a JSON request body into v, writing the error response
// itself when it returns false.
func (h *handler) decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}, op string) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", h.maxUploadSize), op)
			return false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return false
	}
	return true
}

// respondStoreError maps store and validation errors onto HTTP statuses.
func (h *handler) respondStoreError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, roster.ErrUnknownEmployee),
		errors.Is(err, budget.ErrUnknownDepartment):
		h.respondErrorWithOp(w, http.StatusNotFound, err.Error(), op)
	case errors.Is(err, roster.ErrDuplicateEmployee),
		errors.Is(err, budget.ErrDuplicateDepartment):
		h.respondErrorWithOp(w, http.StatusConflict, err.Error(), op)
	case errors.Is(err, roster.ErrInvalidName),
		errors.Is(err, roster.ErrInvalidWage),
		errors.Is(err, budget.ErrInvalidName):
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
	default:
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
	}
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("op", op),
			zap.Int("status", status),
			zap.String("error", msg),
		)
	} else {
		h.logger.Warn("request rejected",
			zap.String("op", op),
			zap.Int("status", status),
			zap.String("error", msg),
		)
	}

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

// queryLimit reads the optional limit query parameter. Zero means the store
// default.
func queryLimit(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("limit"))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid limit %q", raw)
	}
	return n, nil
}
