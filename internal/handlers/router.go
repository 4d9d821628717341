package handlers

import (
	"net/http"
	"time"

	"roofingcity-backend/internal/middleware"
	"roofingcity-backend/internal/transport"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// Routes builds the full API router, middleware stack included.
func (s *Server) Routes() chi.Router {
	jwtManager := s.JWTManager()

	r := chi.NewRouter()
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(s.Log))
	r.Use(middleware.CORS())
	r.Use(chiMiddleware.Timeout(30 * time.Second))

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		transport.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
	})

	window := time.Duration(s.Cfg.RateLimitWindowSec) * time.Second
	appointmentsLimiter := middleware.NewRateLimiter(s.Cfg.RateLimitAppointments, window)
	contactLimiter := middleware.NewRateLimiter(s.Cfg.RateLimitContact, window)

	r.Route("/api", func(api chi.Router) {
		api.Get("/services", s.GetServices)
		api.Get("/testimonials", s.GetTestimonials)
		api.With(contactLimiter.Middleware).Post("/testimonials", s.CreateTestimonial)
		api.Get("/availability", s.GetAvailability)
		api.Get("/availability/next", s.GetNextAvailability)
		api.With(appointmentsLimiter.Middleware).Post("/appointments", s.ScheduleAppointment)
		api.Get("/appointments/{id}", s.GetAppointment)
		api.With(contactLimiter.Middleware).Post("/contact", s.CreateContact)

		api.Route("/admin", func(admin chi.Router) {
			admin.Post("/login", s.AdminLogin)
			admin.Post("/refresh", s.AdminRefresh)
			admin.Post("/logout", s.AdminLogout)

			// chi requires middlewares before route definitions, so the
			// protected endpoints live on a sub-router.
			admin.Group(func(protected chi.Router) {
				protected.Use(middleware.AdminAuth(s.Cfg.AdminAPIKey, jwtManager))
				protected.Get("/appointments", s.AdminListAppointments)
				protected.Patch("/appointments/{id}/status", s.AdminUpdateAppointmentStatus)
				protected.Get("/contacts", s.AdminListContacts)
			})
		})
	})

	return r
}
