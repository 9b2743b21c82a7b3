package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/argus-sec/argus/pkg/usecase"
	"github.com/argus-sec/argus/pkg/utils/logging"
)

type Server struct {
	router  *chi.Mux
	handler http.Handler
	uc      *usecase.UseCases
	authUC  usecase.AuthUseCaseInterface

	corsOrigins []string
}

type Options func(*Server)

// WithAuth sets the authentication use case guarding the API routes
func WithAuth(authUC usecase.AuthUseCaseInterface) Options {
	return func(s *Server) {
		s.authUC = authUC
	}
}

// WithCORSOrigins sets the allowed CORS origins
func WithCORSOrigins(origins []string) Options {
	return func(s *Server) {
		s.corsOrigins = origins
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:      r,
		uc:          uc,
		corsOrigins: []string{"*"},
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK")) //nolint:errcheck // header already committed
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware(s.authUC))

		r.Post("/parse", s.handleParse)

		r.Route("/reports", func(r chi.Router) {
			r.Get("/", s.handleListReports)
			r.Get("/search", s.handleSearchReports)
			r.Get("/{id}", s.handleGetReport)
			r.Patch("/{id}", s.handleUpdateReport)
			r.Delete("/{id}", s.handleDeleteReport)
		})

		r.Get("/export/csv", s.handleExportCSV)
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   s.corsOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
	})
	s.handler = c.Handler(r)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
