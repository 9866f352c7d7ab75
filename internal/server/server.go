// Package server exposes the catalog over HTTP: a JSON API under /api and a
// server-rendered index page. Authentication is a signed token in an
// HTTP-only cookie; mutating routes additionally require the admin role.
package server

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-datacatalog/internal/store"
	"github.com/goliatone/go-datacatalog/pkg/detail"
	"github.com/goliatone/go-datacatalog/pkg/render"
	"github.com/goliatone/go-datacatalog/pkg/tmpl"
)

// Server holds the handler dependencies.
type Server struct {
	store     *store.Store
	secret    string
	pages     tmpl.Renderer
	renderers *render.Registry
	logger    *log.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithPageRenderer replaces the template engine used for the index page.
func WithPageRenderer(pages tmpl.Renderer) Option {
	return func(s *Server) {
		if pages != nil {
			s.pages = pages
		}
	}
}

// WithRendererRegistry replaces the record renderer registry.
func WithRendererRegistry(registry *render.Registry) Option {
	return func(s *Server) {
		if registry != nil {
			s.renderers = registry
		}
	}
}

// WithLogger replaces the default logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a Server backed by the given store and signing secret.
func New(st *store.Store, secret string, opts ...Option) (*Server, error) {
	pages, err := tmpl.Default()
	if err != nil {
		return nil, err
	}

	s := &Server{
		store:     st,
		secret:    secret,
		pages:     pages,
		renderers: detail.DefaultRegistry(),
		logger:    log.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Router builds the gin engine with every route attached.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.withSession())

	router.GET("/", s.handleIndex)

	api := router.Group("/api")
	{
		api.POST("/login", s.handleLogin)
		api.POST("/logout", s.handleLogout)
		api.GET("/user", s.handleCurrentUser)

		api.GET("/filters", s.handleFilters)
		api.GET("/products", s.handleListProducts)
		api.GET("/products/:id", s.handleGetProduct)
		api.GET("/column-options", s.handleColumnOptions)
		api.GET("/openapi.json", s.handleOpenAPI)

		admin := api.Group("", requireAdmin())
		{
			admin.POST("/products", s.handleCreateProduct)
			admin.PUT("/products/:id", s.handleUpdateProduct)
			admin.DELETE("/products/:id", s.handleDeleteProduct)

			admin.POST("/column-options", s.handleAddColumnOption)
			admin.POST("/column-options/delete", s.handleDeleteColumnOption)

			admin.GET("/users", s.handleListUsers)
			admin.POST("/users", s.handleCreateUser)
			admin.DELETE("/users/:id", s.handleDeleteUser)
		}
	}

	return router
}
