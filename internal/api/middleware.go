package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouteOptions tunes the router. Zero values pick the defaults.
type RouteOptions struct {
	// AllowedOrigins defaults to any origin.
	AllowedOrigins []string
	// Concurrency caps layout generations in flight, default one per CPU.
	Concurrency int
}

// SetupMiddleware returns the stack shared by every route. timeout bounds
// the whole request, generation included.
func SetupMiddleware(timeout time.Duration, origins []string) []func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return []func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		cors.Handler(cors.Options{
			AllowedOrigins:   origins,
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           300,
		}),
		middleware.SetHeader("Content-Type", "application/json"),
		middleware.Timeout(timeout),
	}
}

// ThrottleMiddleware bounds concurrent generation requests; extra requests
// wait in a backlog for up to a minute.
func ThrottleMiddleware(concurrent int) func(http.Handler) http.Handler {
	return middleware.ThrottleBacklog(concurrent, concurrent*2, time.Minute)
}
