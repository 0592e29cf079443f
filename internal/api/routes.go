package api

import (
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

func SetupRoutes(handler *Handler, opts RouteOptions) *chi.Mux {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}

	r := chi.NewRouter()

	// The request timeout leaves headroom over generation.
	for _, middleware := range SetupMiddleware(handler.timeout+5*time.Second, opts.AllowedOrigins) {
		r.Use(middleware)
	}

	// JSON content type
	r.Use(render.SetContentType(render.ContentTypeJSON))

	// Health check endpoint
	r.Get("/health", handler.HealthCheck)

	// API routes
	r.Route("/api/v1/layouts", func(r chi.Router) {
		r.With(ThrottleMiddleware(concurrency)).Post("/", handler.CreateLayout)
		r.Get("/", handler.ListLayouts)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", handler.GetLayout)
			r.Delete("/", handler.DeleteLayout)
			r.Get("/layers/{name}", handler.GetLayer)
		})
	})

	return r
}
