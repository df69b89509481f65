package users

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/digital-guidance/guidance-api/internal/auth"
	"github.com/digital-guidance/guidance-api/internal/platform/httpx"
)

// Handler manages user management endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers user routes under /users. Callers must guard r with
// the resolver and the admin gate.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.listUsers)
	r.Delete("/{id}", h.deleteUser)
	r.Put("/{id}/role", h.changeRole)
	r.Put("/{id}/password", h.changePassword)
}

// MountCreateAdmin registers POST /create-admin on r.
func (h *Handler) MountCreateAdmin(r chi.Router) {
	r.Post("/create-admin", h.createAdmin)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		httpx.RespondError(w, h.logger, err, "Failed to fetch users")
		return
	}
	httpx.JSON(w, http.StatusOK, users)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, h.logger, err, "Database error")
		return
	}
	if err := h.service.DeleteUser(r.Context(), auth.PrincipalFromContext(r.Context()), id); err != nil {
		httpx.RespondError(w, h.logger, err, "Database error")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "message": "User deleted successfully"})
}

func (h *Handler) changeRole(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, h.logger, err, "Database error")
		return
	}
	var req RoleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, h.logger, err, "Database error")
		return
	}
	role, err := h.service.ChangeRole(r.Context(), auth.PrincipalFromContext(r.Context()), id, req)
	if err != nil {
		httpx.RespondError(w, h.logger, err, "Database error")
		return
	}
	h.logger.Info("user role changed", slog.Int64("user_id", id), slog.String("role", string(role)))
	httpx.Message(w, http.StatusOK, "User role updated successfully")
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, h.logger, err, "Database error")
		return
	}
	var req PasswordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, h.logger, err, "Database error")
		return
	}
	if err := h.service.ChangePassword(r.Context(), id, req); err != nil {
		httpx.RespondError(w, h.logger, err, "Database error")
		return
	}
	httpx.Message(w, http.StatusOK, "Password updated successfully")
}

func (h *Handler) createAdmin(w http.ResponseWriter, r *http.Request) {
	var req CreateAdminRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, h.logger, err, "Failed to create admin account")
		return
	}
	id, err := h.service.CreateAdmin(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, h.logger, err, "Failed to create admin account")
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"message": "Admin account created successfully", "user_id": id})
}
