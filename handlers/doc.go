// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the pokepick catalog API.

# Handler Types

CatalogHandler serves every catalog endpoint. It is built from a
catalog.Repository and the server Config:

	catalogHandler := handlers.NewCatalogHandler(repo, cfg)

# Endpoints

	GET  /api/pokemon/list?page=N&filters=Q → List
	GET  /api/pokemon/?id=N                 → Get
	GET  /api/pokemon/random                → Random
	GET  /api/pokemon/image?name=X          → Image
	POST /api/pokemon/refresh               → Refresh (X-Admin-Key)

List returns a models.PageResult. An unparseable page falls back to 1 and
a page below 1 is rejected with 400. Pages past the end come back with an
empty data array. The filter is a case-insensitive substring match on the
creature name, and num_pages is always count/page_size + 1.

Every read first makes sure the cached index is fresh. When the index is
missing or older than the refresh interval the handler pulls it from
upstream before answering; if that fails the request gets 502.

# Hydration

Entries returned by List, Get and Random always carry types and stats.
Entries missing them are fetched from upstream on first access and stored,
so later requests are answered from the database alone.

# Error Responses

All errors use a consistent JSON format:

	{
	  "error": "Bad Request",
	  "message": "page must be at least 1"
	}

Common status codes:

  - 400: Invalid page, id or name
  - 401: Wrong X-Admin-Key on refresh
  - 404: Refresh disabled, or random pick from an empty catalog
  - 502: Upstream unavailable
*/
package handlers
