package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/digital-guidance/guidance-api/internal/auth"
	"github.com/digital-guidance/guidance-api/internal/carousel"
	"github.com/digital-guidance/guidance-api/internal/feedback"
	"github.com/digital-guidance/guidance-api/internal/observability"
	"github.com/digital-guidance/guidance-api/internal/platform/httpx"
	"github.com/digital-guidance/guidance-api/internal/services"
	"github.com/digital-guidance/guidance-api/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger   *slog.Logger
	Config   *Config
	Resolver *auth.Resolver
	Gate     auth.Gate
	Metrics  *observability.Metrics

	AuthHandler     *auth.Handler
	ServicesHandler *services.Handler
	FeedbackHandler *feedback.Handler
	CarouselHandler *carousel.Handler
	UsersHandler    *users.Handler
}

// NewRouter constructs the chi.Router with API defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		if params.ServicesHandler != nil {
			r.Route("/services", params.ServicesHandler.MountPublicRoutes)
		}
		if params.FeedbackHandler != nil {
			r.Route("/feedback", params.FeedbackHandler.MountPublicRoutes)
		}
		if params.CarouselHandler != nil {
			r.Route("/carousel", params.CarouselHandler.MountPublicRoutes)
		}

		r.Group(func(r chi.Router) {
			r.Use(params.Resolver.Middleware)

			if params.AuthHandler != nil {
				r.Route("/auth", func(r chi.Router) {
					r.Use(params.Gate.RequireRole(auth.RoleAdmin, auth.RoleUser))
					params.AuthHandler.MountRoutes(r)
				})
			}

			r.Route("/admin", func(r chi.Router) {
				r.Use(params.Gate.RequireAdmin())
				if params.ServicesHandler != nil {
					r.Route("/services", params.ServicesHandler.MountAdminRoutes)
				}
				if params.FeedbackHandler != nil {
					r.Route("/feedback", params.FeedbackHandler.MountAdminRoutes)
				}
				if params.CarouselHandler != nil {
					r.Route("/carousel", params.CarouselHandler.MountAdminRoutes)
				}
				if params.UsersHandler != nil {
					r.Route("/users", params.UsersHandler.MountRoutes)
					params.UsersHandler.MountCreateAdmin(r)
				}
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.Message(w, http.StatusNotFound, "Route not found")
	})

	return r
}
