package feedback

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/digital-guidance/guidance-api/internal/platform/httpx"
)

// ServicePort is the behaviour the handler needs from Service.
type ServicePort interface {
	Submit(ctx context.Context, req SubmitRequest) (int64, error)
	Report(ctx context.Context) (Report, error)
	StepRatings(ctx context.Context, serviceID int64) ([]StepRating, error)
	Delete(ctx context.Context, id int64) error
}

// Handler serves feedback endpoints.
type Handler struct {
	logger  *slog.Logger
	service ServicePort
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service ServicePort) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountPublicRoutes registers the submission and rating endpoints.
func (h *Handler) MountPublicRoutes(r chi.Router) {
	r.Post("/", h.submit)
	r.Get("/step-ratings/{serviceID}", h.stepRatings)
}

// MountAdminRoutes registers management endpoints. Callers must guard r.
func (h *Handler) MountAdminRoutes(r chi.Router) {
	r.Get("/", h.report)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, h.logger, err, "Database error")
		return
	}
	id, err := h.service.Submit(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, h.logger, err, "Database error")
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{
		"message":     "Feedback saved successfully!",
		"feedback_id": id,
	})
}

func (h *Handler) stepRatings(w http.ResponseWriter, r *http.Request) {
	serviceID, err := httpx.IDParam(r, "serviceID")
	if err != nil {
		httpx.RespondError(w, h.logger, err, "Database error")
		return
	}
	rows, err := h.service.StepRatings(r.Context(), serviceID)
	if err != nil {
		httpx.RespondError(w, h.logger, err, "Database error")
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Report(r.Context())
	if err != nil {
		httpx.RespondError(w, h.logger, err, "Failed to fetch feedback")
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, h.logger, err, "Database error")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, h.logger, err, "Database error")
		return
	}
	httpx.Message(w, http.StatusOK, "Feedback deleted successfully")
}
