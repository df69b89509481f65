package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler exposes the resolved caller to clients.
type Handler struct {
	logger *slog.Logger
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

// MountRoutes registers GET /me. Callers must guard r with the Resolver.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/me", h.me)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	principal := PrincipalFromContext(r.Context())
	if principal == nil {
		WriteError(w, r, h.logger, &Error{Kind: KindUnauthenticated})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(principal); err != nil && h.logger != nil {
		h.logger.Warn("encode principal", slog.Any("error", err))
	}
}
