package services

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/digital-guidance/guidance-api/internal/platform/httpx"
)

// CatalogPort is the behaviour the handler needs from Catalog.
type CatalogPort interface {
	ListPublic(ctx context.Context) ([]Service, error)
	ListAll(ctx context.Context) ([]Service, error)
	Get(ctx context.Context, id int64) (Service, error)
	Create(ctx context.Context, req CreateRequest) (int64, error)
	Update(ctx context.Context, id int64, req UpdateRequest) error
	Delete(ctx context.Context, id int64) error
}

// Handler serves the service catalog endpoints.
type Handler struct {
	logger  *slog.Logger
	catalog CatalogPort
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, catalog CatalogPort) *Handler {
	return &Handler{logger: logger, catalog: catalog}
}

// MountPublicRoutes registers the unauthenticated read endpoints.
func (h *Handler) MountPublicRoutes(r chi.Router) {
	r.Get("/", h.listPublic)
	r.Get("/{id}", h.get)
}

// MountAdminRoutes registers management endpoints. Callers must guard r.
func (h *Handler) MountAdminRoutes(r chi.Router) {
	r.Get("/", h.listAll)
	r.Post("/", h.create)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createdResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"service_id"`
}

func (h *Handler) listPublic(w http.ResponseWriter, r *http.Request) {
	list, err := h.catalog.ListPublic(r.Context())
	if err != nil {
		httpx.RespondError(w, h.logger, err, "Failed to fetch services")
		return
	}
	httpx.JSON(w, http.StatusOK, nonNil(list))
}

func (h *Handler) listAll(w http.ResponseWriter, r *http.Request) {
	list, err := h.catalog.ListAll(r.Context())
	if err != nil {
		httpx.RespondError(w, h.logger, err, "Failed to fetch services")
		return
	}
	httpx.JSON(w, http.StatusOK, nonNil(list))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, h.logger, err, "Failed to fetch service")
		return
	}
	s, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, h.logger, err, "Failed to fetch service")
		return
	}
	httpx.JSON(w, http.StatusOK, s)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, h.logger, err, "Failed to add service")
		return
	}
	id, err := h.catalog.Create(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, h.logger, err, "Failed to add service")
		return
	}
	httpx.JSON(w, http.StatusCreated, createdResponse{Message: "Service added successfully", ID: id})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, h.logger, err, "Failed to update service")
		return
	}
	var req UpdateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, h.logger, err, "Failed to update service")
		return
	}
	if err := h.catalog.Update(r.Context(), id, req); err != nil {
		httpx.RespondError(w, h.logger, err, "Failed to update service")
		return
	}
	httpx.Message(w, http.StatusOK, "Service updated successfully")
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, h.logger, err, "Failed to delete service")
		return
	}
	if err := h.catalog.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, h.logger, err, "Failed to delete service")
		return
	}
	httpx.Message(w, http.StatusOK, "Service deleted successfully")
}

func nonNil(list []Service) []Service {
	if list == nil {
		return []Service{}
	}
	return list
}
