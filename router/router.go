// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/pokepick/catalog"
	"github.com/danielhkuo/pokepick/cliparse"
	"github.com/danielhkuo/pokepick/handlers"
	"github.com/danielhkuo/pokepick/middleware"
)

func NewRouter(repo *catalog.Repository, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	catalogHandler := handlers.NewCatalogHandler(repo, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Catalog reads (public)
	mux.HandleFunc("GET /api/pokemon/list", middleware.WithLogging(catalogHandler.List))
	mux.HandleFunc("GET /api/pokemon/random", middleware.WithLogging(catalogHandler.Random))
	mux.HandleFunc("GET /api/pokemon/image", middleware.WithLogging(catalogHandler.Image))
	mux.HandleFunc("GET /api/pokemon/{$}", middleware.WithLogging(catalogHandler.Get))

	// Catalog maintenance (admin)
	mux.HandleFunc("POST /api/pokemon/refresh", middleware.WithLogging(catalogHandler.Refresh))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pokepick API v1"))
	})

	return mux
}
