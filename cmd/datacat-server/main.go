// datacat-server runs the catalog HTTP service: JSON API under /api plus the
// server-rendered index page. Configuration comes from the environment; see
// internal/config for the variables.
package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-datacatalog/internal/config"
	"github.com/goliatone/go-datacatalog/internal/oas"
	"github.com/goliatone/go-datacatalog/internal/server"
	"github.com/goliatone/go-datacatalog/internal/store"
)

func main() {
	logger := log.New(log.Writer(), "datacat-server: ", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	st, err := store.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		logger.Fatalf("open store: %v", err)
	}
	if err := st.Migrate(ctx); err != nil {
		logger.Fatalf("migrate: %v", err)
	}
	if err := st.EnsureDefaultUsers(ctx); err != nil {
		logger.Fatalf("default users: %v", err)
	}
	if cfg.SeedFile != "" {
		if err := st.SeedFromFile(ctx, cfg.SeedFile); err != nil {
			logger.Fatalf("seed: %v", err)
		}
		logger.Printf("seeded from %s", cfg.SeedFile)
	}

	version, err := oas.Version(ctx)
	if err != nil {
		logger.Fatalf("openapi document: %v", err)
	}

	srv, err := server.New(st, cfg.SecretKey, server.WithLogger(logger))
	if err != nil {
		logger.Fatalf("construct server: %v", err)
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Printf("catalog API v%s listening on %s (%s/%s)", version, cfg.Addr(), cfg.Env, cfg.DBDriver)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("serve: %v", err)
	}
}
