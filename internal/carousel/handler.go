package carousel

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/digital-guidance/guidance-api/internal/platform/httpx"
)

// Handler serves carousel endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountPublicRoutes registers the listing endpoint.
func (h *Handler) MountPublicRoutes(r chi.Router) {
	r.Get("/", h.list)
}

// MountAdminRoutes registers management endpoints. Callers must guard r.
func (h *Handler) MountAdminRoutes(r chi.Router) {
	r.Post("/", h.create)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	images, err := h.service.List(r.Context())
	if err != nil {
		httpx.RespondError(w, h.logger, err, "Database error")
		return
	}
	httpx.JSON(w, http.StatusOK, images)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, h.logger, err, "Upload failed")
		return
	}
	id, err := h.service.Create(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, h.logger, err, "Upload failed")
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{
		"message":  "Uploaded successfully",
		"id":       id,
		"imageUrl": req.Image,
	})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, h.logger, err, "Delete failed")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, h.logger, err, "Delete failed")
		return
	}
	httpx.Message(w, http.StatusOK, "Image deleted successfully")
}
