// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the pokepick catalog API server.

pokepick is a browser for a paginated, searchable creature catalog. The
server caches the upstream index in SQL, hydrates stats and types on first
access, and serves pages to the terminal client in cmd/pokepick.

# Starting the Server

With no configuration the server listens on 5328 and caches into a local
SQLite file:

	go run .

Or with flags:

	go run . -p 8080 -t postgres -d "postgres://..." -admin-key secret

# Configuration

Settings (flag, then environment, then .env):

  - PORT (-p): Server port (default: 5328)
  - DATABASE_URL (-d): Connection string (default: file:pokepick.db)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - UPSTREAM_URL (-upstream): Creature data source
  - PAGE_SIZE (-page-size): Creatures per page (default: 20)
  - REFRESH_INTERVAL (-refresh): Index max age (default: 24h)
  - ADMIN_KEY (-admin-key): Enables POST /api/pokemon/refresh

Logs are text on a terminal and JSON otherwise.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers for the catalog
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - catalog: SQL-backed cache with staleness refresh
  - upstream: Rate-limited creature data client
  - models: Request/response types
  - auth: Admin key validation
  - db: Schema creation
  - cliparse: Configuration parsing

The terminal client lives in cmd/pokepick and is built from the selection,
pagination, viewport, fetcher, view and controller packages.

See package documentation for each component.
*/
package main
