// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package catalog is the server-side creature cache.

A Repository copies the upstream index into SQL and serves paged, filtered
reads from it. Stats and types are fetched lazily: a page is hydrated the
first time it is read and the result is stored, so later reads are local.

# Freshness

	repo := catalog.NewRepository(conn, upstream.NewClient(url), 20, 24*time.Hour)
	if err := repo.EnsureFresh(ctx); err != nil { ... }

EnsureFresh re-fetches the index when it is missing or older than the
configured max age. Refresh forces it. Both keep hydrated details for
creatures whose name did not change.

# Reads

  - List(ctx, page, query): case-insensitive substring filter on name,
    NumPages = count/pageSize + 1
  - ByIndex(ctx, idx): one hydrated creature by 1-based position
  - Random(ctx): one hydrated creature at random
  - ImageURL(ctx, name): artwork URL by exact name

Missing rows return ErrNotFound.
*/
package catalog
