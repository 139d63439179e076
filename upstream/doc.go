// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package upstream is a rate-limited client for a PokeAPI-compatible service,
the source the catalog server copies its index and creature details from.

# Usage

	client := upstream.NewClient("https://pokeapi.co/api/v2")
	creatures, err := client.Index(ctx)
	stats, types, err := client.Detail(ctx, creatures[0].URL)

Index makes two calls (count, then the full listing) and returns entries
with Index, Name, URL and ImgURL set. Detail fills in the six stats and the
type tags.

# Rate Limiting and Retries

Requests pass through a golang.org/x/time/rate limiter (20 req/sec by
default). Network errors, HTTP 429 and HTTP 5xx are retried up to three
times with exponential backoff. HTTP 404 returns ErrNotFound immediately.
*/
package upstream
