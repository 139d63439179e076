// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package controller holds the page state of the terminal client.

# State

PageController owns the search draft, the committed query, the page cursor,
the loaded catalog, the loading flag and the selected creature name. Every
transition runs under one mutex and produces a new State with a higher
Version. Subscribers registered with OnChange receive a copy.

# Operations

	ctrl := controller.New(fetcher.New(apiBase), store)
	ctrl.Start(ctx)         // adopt stored selection, fetch page 1
	ctrl.SetDraft("char")   // uncommitted
	ctrl.SubmitSearch()     // commit, page 1, fetch
	ctrl.PageChange(2)      // fetch, ignored if out of range or current
	ctrl.Select("pikachu")  // persist synchronously

# Fetching

Each change of page or committed query starts one fetch on its own
goroutine, tagged with a generation number. When it returns, the result is
applied only if no newer fetch has started since; older responses are
dropped and logged at debug level. Loading stays true until the newest
fetch resolves.

A failed fetch is logged and leaves the previous catalog and total pages in
place. Nothing is retried. Wait blocks until all started fetches finish.
*/
package controller
