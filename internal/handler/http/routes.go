package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Init builds the router. gatherer backs the /metrics endpoint.
func (h *Handler) Init(gatherer prometheus.Gatherer) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Compress(5, "application/json", "text/csv"))

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/login", h.login)
		r.Get("/api/version", h.getServerVersion)
		r.Method("GET", "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/api/subjects", func(r chi.Router) {
			r.Post("/", h.addSubject)
			r.Get("/", h.listSubjects)
			r.Post("/anonymize", h.anonymizeAll)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.getSubject)
				r.Post("/encrypt", h.encryptSubject)
				r.Post("/decrypt", h.decryptSubject)
				r.Post("/restore", h.restoreSubject)
				r.Put("/retention", h.setRetention)
				r.Put("/consent", h.setConsent)
			})
		})

		r.Route("/api/retention/expired", func(r chi.Router) {
			r.Get("/", h.listExpired)
			r.Delete("/", h.purgeExpired)
		})

		r.Route("/api/audit", func(r chi.Router) {
			r.Get("/", h.getAuditLog)
			r.Get("/export", h.exportAuditLog)
			r.Get("/activity", h.activityStats)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
