package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/leadforge-labs/leadforge/internal/auth"
)

// NewRouter wires all routes. Everything that touches the spreadsheet sits
// behind the credential middleware; auth bootstrap, health and metrics do
// not, since a caller without tokens must still be able to start the flow.
func NewRouter(h *Handler, authMgr *auth.Manager, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(Metrics)
	r.Use(middleware.Recoverer)

	if len(allowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{
				"Content-Type",
				auth.HeaderAccessToken,
				auth.HeaderRefreshToken,
				auth.HeaderTokenExpiry,
			},
			ExposedHeaders: []string{
				auth.HeaderAccessToken,
				auth.HeaderRefreshToken,
				auth.HeaderTokenExpiry,
			},
		}))
	}

	r.Get("/healthz", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/auth/url", h.AuthURL)
		r.Get("/auth/callback", h.AuthCallback)

		r.Group(func(r chi.Router) {
			r.Use(RequireCredential(authMgr))

			r.Get("/overview", h.Overview)

			r.Get("/projects", h.ListProjects)
			r.Post("/projects", h.CreateProject)
			r.Get("/projects/{id}", h.GetProject)
			r.Patch("/projects/{id}", h.PatchProject)

			r.Get("/leads", h.ListLeads)
			r.Post("/leads", h.CreateLead)
			r.Patch("/leads/{id}", h.PatchLead)
			r.Delete("/leads/{id}", h.DeleteLead)

			r.Get("/templates", h.ListTemplates)
			r.Post("/templates", h.CreateTemplate)
			r.Patch("/templates/{id}", h.PatchTemplate)
			r.Post("/templates/{id}/preview", h.PreviewTemplate)

			r.Get("/campaigns/{id}/rates", h.CampaignRates)
			r.Post("/campaigns/{id}/events", h.IngestCampaignEvents)

			r.Post("/webhook/leads", h.WebhookLead)
		})
	})

	return r
}
