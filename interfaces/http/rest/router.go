// Package rest wires the HTTP surface of the dashboard backend.
package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"obras-backend/application/services"
	"obras-backend/interfaces/http/rest/handlers"
	"obras-backend/interfaces/http/rest/middleware"
	"obras-backend/pkg/auth"
	"obras-backend/pkg/observability"
)

// Router creates and configures the HTTP router
type Router struct {
	projects     *services.ProjectService
	users        *services.UserService
	catalog      *services.CatalogService
	associations *services.AssociationService
	validator    *auth.JWTValidator
	metrics      *observability.Collector
	cors         CORSOptions
	logger       *zap.Logger
}

// CORSOptions narrows the cross-origin policy to the dashboard hosts.
type CORSOptions struct {
	AllowedOrigins []string
}

// NewRouter creates a new router instance
func NewRouter(
	projects *services.ProjectService,
	users *services.UserService,
	catalog *services.CatalogService,
	associations *services.AssociationService,
	validator *auth.JWTValidator,
	metrics *observability.Collector,
	corsOptions CORSOptions,
	logger *zap.Logger,
) *Router {
	return &Router{
		projects:     projects,
		users:        users,
		catalog:      catalog,
		associations: associations,
		validator:    validator,
		metrics:      metrics,
		cors:         corsOptions,
		logger:       logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	router.Use(middleware.Metrics(rt.metrics))

	origins := rt.cors.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)
	router.Method(http.MethodGet, "/metrics", rt.metrics.Handler())

	// API v1 routes
	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.validator, rt.logger))

		// Obra endpoints
		r.Route("/obras", func(r chi.Router) {
			projectHandler := handlers.NewProjectHandler(rt.projects, rt.logger)
			r.Post("/", projectHandler.Create)
			r.Get("/", projectHandler.List)
			r.Get("/{projectID}", projectHandler.Get)
			r.Patch("/{projectID}", projectHandler.Update)
		})

		// Usuário endpoints
		r.Route("/usuarios", func(r chi.Router) {
			userHandler := handlers.NewUserHandler(rt.users, rt.logger)
			r.Post("/", userHandler.Create)
			r.Get("/", userHandler.List)
			r.Get("/{userID}", userHandler.Get)
			r.Patch("/{userID}", userHandler.Update)
		})

		// Vínculo endpoints
		r.Route("/associacoes/{kind}", func(r chi.Router) {
			associationHandler := handlers.NewAssociationHandler(rt.associations, rt.logger)
			r.Post("/", associationHandler.Create)
			r.Delete("/", associationHandler.Delete)
		})

		// Remaining registries share one handler; static routes above take
		// precedence over the entity parameter.
		r.Route("/{entity}", func(r chi.Router) {
			catalogHandler := handlers.NewCatalogHandler(rt.catalog, rt.logger)
			r.Post("/", catalogHandler.Create)
			r.Get("/", catalogHandler.List)
			r.Get("/{itemID}", catalogHandler.Get)
			r.Patch("/{itemID}", catalogHandler.Update)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
