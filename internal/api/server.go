// Package api provides the HTTP server fronting the GraphQL API and, in
// production, the built client bundle.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/shelfwiseapp/shelfwise-server/internal/config"
	"github.com/shelfwiseapp/shelfwise-server/internal/service"
	"github.com/shelfwiseapp/shelfwise-server/internal/store"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store        store.Store
	authService  *service.AuthService
	graphHandler http.Handler
	cfg          *config.Config
	router       *chi.Mux
	logger       *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(store store.Store, authService *service.AuthService, graphHandler http.Handler, cfg *config.Config, logger *slog.Logger) *Server {
	s := &Server{
		store:        store,
		authService:  authService,
		graphHandler: graphHandler,
		cfg:          cfg,
		router:       chi.NewRouter(),
		logger:       logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:           300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	// GraphQL endpoint. Identity is attached when a valid bearer token is
	// present; resolvers decide which operations require it.
	s.router.With(s.withAuthContext).Handle("/graphql", s.graphHandler)

	// In production the server also hosts the built client bundle.
	if s.cfg != nil && s.cfg.App.Environment == "production" {
		s.setupStaticRoutes(s.cfg.Client.BuildPath)
	}
}
