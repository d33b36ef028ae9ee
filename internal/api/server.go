/*
server.go - HTTP router and middleware configuration

MIDDLEWARE STACK:
 1. RequestID:  Unique ID per request, echoed into every log line
 2. Logging:    zerolog request logger and access log (internal/logging)
 3. Recoverer:  Panic recovery (500 instead of crash)
 4. CORS:       Cross-origin requests from a calling front end
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/loonengine/payroll-engine/internal/logging"
	"github.com/rs/zerolog"
)

// NewRouter creates a router with all routes configured.
func NewRouter(h *Handler, log zerolog.Logger, allowedOrigins ...string) *chi.Mux {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:5173", "http://localhost:8080"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(logging.Middleware(log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/payroll/calculate", h.Calculate)

		r.Route("/employees/{employeeID}", func(r chi.Router) {
			r.Post("/payroll", h.RecordPayroll)
			r.Get("/payroll", h.ListPayroll)
			r.Get("/ytd", h.YearToDate)
		})

		r.Post("/identifiers/validate", h.ValidateIdentifier)

		r.Route("/ratetables", func(r chi.Router) {
			r.Get("/", h.ListRateTables)
			r.Get("/{year}", h.GetRateTable)
		})
	})

	return r
}
