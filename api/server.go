/*
server.go - HTTP router and middleware configuration

Wires URLs to handlers with chi. Middleware: request ID, zerolog request
logging, panic recovery, CORS for a local frontend. No authentication -
the role workflows in front of this API own login; see the engine package
for what is and is not enforced here.
*/
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// NewRouter creates a router with all routes configured.
func NewRouter(h *Handler, log zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/rooms", func(r chi.Router) {
			r.Get("/", h.ListRooms)
			r.Post("/", h.AddRoom)
			r.Get("/available", h.FindAvailable)
			r.Get("/offers", h.AvailableRoomTypes)
			r.Patch("/{id}", h.UpdateRoom)
			r.Delete("/{id}", h.DeleteRoom)
			r.Post("/{id}/checkout", h.CheckOut)
			r.Post("/{id}/clean", h.MarkRoomCleaned)
			r.Post("/{id}/maintenance/resolve", h.ResolveMaintenance)
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Post("/", h.Reserve)
			r.Post("/walkin", h.WalkIn)
			r.Get("/{id}", h.GetBooking)
			r.Post("/{id}/checkin", h.CheckIn)
			r.Post("/{id}/cancel", h.Cancel)
		})

		r.Route("/guests", func(r chi.Router) {
			r.Post("/", h.RegisterGuest)
			r.Get("/{id}", h.GetGuest)
			r.Patch("/{id}", h.UpdateGuest)
			r.Get("/{id}/bookings", h.ListGuestBookings)
		})

		r.Post("/payments", h.RecordPayment)

		r.Route("/reports", func(r chi.Router) {
			r.Get("/income", h.IncomeReport)
			r.Get("/outstanding", h.OutstandingReport)
			r.Get("/monthly/{month}", h.MonthlySummary)
			r.Get("/summary", h.SystemSummary)
			r.Get("/daily", h.DailyReport)
		})

		r.Get("/housekeeping/schedule", h.CleaningSchedule)
	})

	return r
}

// requestLogger logs one line per request with method, path, status and
// duration.
func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("request")
		})
	}
}
