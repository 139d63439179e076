// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the pokepick catalog API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(repo, cfg)

# Endpoints

Health:

	GET /health

Catalog (public):

	GET /api/pokemon/list?page=N&filters=Q - One page of creatures
	GET /api/pokemon/?id=N                 - Creature by catalog index
	GET /api/pokemon/random                - Random creature
	GET /api/pokemon/image?name=X          - Artwork URL by name

Maintenance (requires X-Admin-Key):

	POST /api/pokemon/refresh - Re-fetch the upstream index

Every API route is wrapped in middleware.WithLogging, which assigns an
X-Request-ID. The caller wraps the mux in middleware.CORS.
*/
package router
