package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/limbo/missions/internal/service"
	"github.com/limbo/missions/pkg/cleanup"
	"github.com/limbo/missions/pkg/httputil"
)

const (
	requestTimeout  = 10 * time.Second
	shutdownTimeout = 15 * time.Second
)

type Server struct {
	mx               *chi.Mux
	userService      service.UserServiceI
	missionsService  service.MissionsServiceI
	dashboardService service.DashboardServiceI
	badgesService    service.BadgesServiceI
	rateLimit        int
	allowedOrigins   []string
}

type ServicesList struct {
	UserService      service.UserServiceI
	MissionsService  service.MissionsServiceI
	DashboardService service.DashboardServiceI
	BadgesService    service.BadgesServiceI
	// Requests per minute per user on subscription routes, 0 turns it off
	RateLimitPerMinute int
	AllowedOrigins     []string
}

func New(servicesOptions *ServicesList) *Server {
	s := &Server{
		mx:               chi.NewMux(),
		userService:      servicesOptions.UserService,
		missionsService:  servicesOptions.MissionsService,
		dashboardService: servicesOptions.DashboardService,
		badgesService:    servicesOptions.BadgesService,
		rateLimit:        servicesOptions.RateLimitPerMinute,
		allowedOrigins:   servicesOptions.AllowedOrigins,
	}
	s.mountRoutes()
	return s
}

func (s *Server) mountRoutes() {
	s.mx.Use(s.RequestIDMiddleware, s.SettingUpLoggerMiddleware, chimiddleware.Recoverer)
	if len(s.allowedOrigins) > 0 {
		s.mx.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.allowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", "If-None-Match", UserIDHeader, RequestIDHeader},
			ExposedHeaders: []string{"ETag", "X-Cache", RequestIDHeader},
			MaxAge:         300,
		}))
	}

	s.mx.Handle("/metrics", promhttp.Handler())
	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Post("/users", s.Register)
		r.Get("/missions", s.ListTemplates)

		r.Group(func(r chi.Router) {
			r.Use(s.UserIDMiddleware)
			r.Get("/users/me", s.Me)
			r.Delete("/users/me", s.DeleteMe)
			r.Route("/subscriptions", func(r chi.Router) {
				r.Use(s.rateLimiter())
				r.Post("/", s.StartSubscription)
				r.Get("/", s.GetDashboard)
				r.Delete("/{id}", s.DeleteSubscription)
				r.Post("/{id}/complete-today", s.CompleteToday)
				r.Get("/{id}/due-dates", s.DueDates)
			})
			r.Get("/calendar", s.Calendar)
			r.Get("/badges", s.ListBadges)
			r.Post("/badges/evaluate", s.EvaluateBadges)
		})
	})
}

// rateLimiter limits by user id, falling back to the client ip.
func (s *Server) rateLimiter() func(http.Handler) http.Handler {
	if s.rateLimit <= 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}
	keyByUser := func(r *http.Request) (string, error) {
		uid, err := GetUIDFromContext(r)
		if err != nil {
			return httprate.KeyByIP(r)
		}
		return uid.String(), nil
	}
	return httprate.Limit(s.rateLimit, time.Minute,
		httprate.WithKeyFuncs(keyByUser),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			GetLoggerFromCtx(r.Context()).Warn().Msg("rate limit exceeded")
			httputil.WriteErrorResponse(w, http.StatusTooManyRequests, "too many requests", nil)
		}),
	)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mx.ServeHTTP(w, r)
}

// Run serves until the server is shut down by the cleanup job it registers.
func (s *Server) Run(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mx,
		ReadHeaderTimeout: 5 * time.Second,
	}
	cleanup.Register(&cleanup.Job{
		Name: "shutting down http server",
		F: func() error {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	})
	log.Info().Str("address", addr).Msg("server started")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
