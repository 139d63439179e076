// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package controller

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/danielhkuo/pokepick/fetcher"
	"github.com/danielhkuo/pokepick/models"
	"github.com/danielhkuo/pokepick/pagination"
	"github.com/danielhkuo/pokepick/selection"
)

// State is an immutable snapshot of the page. Version increases with
// every transition.
type State struct {
	Version        uint64
	Draft          string
	CommittedQuery string
	Page           int
	TotalPages     int
	Count          int
	Loading        bool
	SelectedName   string
	Catalog        []models.CreatureSummary
}

// PageController owns the search, page cursor, catalog and selection.
type PageController struct {
	lister fetcher.Lister
	store  selection.Store

	mu    sync.Mutex
	ctx   context.Context
	wctx  context.Context
	state State
	gen   uint64
	subs  []func(State)

	inflight sync.WaitGroup
}

// New returns a controller on page 1 with an empty catalog. Nothing is
// fetched until Start.
func New(lister fetcher.Lister, store selection.Store) *PageController {
	return &PageController{
		lister: lister,
		store:  store,
		ctx:    context.Background(),
		wctx:   context.Background(),
		state: State{
			Page:       1,
			TotalPages: 1,
		},
	}
}

// OnChange registers fn to receive a snapshot after each transition.
// Snapshots may arrive out of order across goroutines; compare Version.
func (c *PageController) OnChange(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

// Start adopts the stored selection, writes it straight back and loads
// page 1 with an empty query. ctx bounds every later fetch. Selection
// writes keep its values but not its cancellation.
func (c *PageController) Start(ctx context.Context) {
	name, ok, err := c.store.Get(ctx)
	if err != nil {
		slog.Error("failed to read selection", "error", err)
	}

	c.mu.Lock()
	c.ctx = ctx
	c.wctx = context.WithoutCancel(ctx)
	wctx := c.wctx
	if ok {
		c.state.SelectedName = name
	}
	selected := c.state.SelectedName
	c.mu.Unlock()

	if err := c.store.Set(wctx, selected); err != nil {
		slog.Error("failed to persist selection", "name", selected, "error", err)
	}

	c.mu.Lock()
	c.state.Page = 1
	c.state.CommittedQuery = ""
	c.refetchLocked()
	snap, subs := c.commitLocked()
	c.mu.Unlock()
	notify(subs, snap)
}

// SetDraft updates the uncommitted search text.
func (c *PageController) SetDraft(text string) {
	c.mu.Lock()
	c.state.Draft = text
	snap, subs := c.commitLocked()
	c.mu.Unlock()
	notify(subs, snap)
}

// SubmitSearch commits the draft, resets to page 1 and refetches, even
// when the text is unchanged.
func (c *PageController) SubmitSearch() {
	c.mu.Lock()
	c.state.Page = 1
	c.state.CommittedQuery = c.state.Draft
	c.refetchLocked()
	snap, subs := c.commitLocked()
	c.mu.Unlock()
	notify(subs, snap)
}

// PageChange moves to page n and refetches. Out-of-range pages and the
// current page are ignored; it reports whether the page changed.
func (c *PageController) PageChange(n int) bool {
	c.mu.Lock()
	if n < 1 || n > c.state.TotalPages || n == c.state.Page {
		c.mu.Unlock()
		slog.Debug("ignored page change", "page", n)
		return false
	}
	c.state.Page = n
	c.refetchLocked()
	snap, subs := c.commitLocked()
	c.mu.Unlock()
	notify(subs, snap)
	return true
}

// Select sets and persists the selection. The write completes before
// Select returns and is not abandoned when the Start context ends.
func (c *PageController) Select(name string) error {
	c.mu.Lock()
	c.state.SelectedName = name
	ctx := c.wctx
	c.inflight.Add(1)
	snap, subs := c.commitLocked()
	c.mu.Unlock()
	defer c.inflight.Done()
	notify(subs, snap)

	if err := c.store.Set(ctx, name); err != nil {
		slog.Error("failed to persist selection", "name", name, "error", err)
		return err
	}
	return nil
}

// Pagination returns a pager bound to the current page.
func (c *PageController) Pagination() pagination.Control {
	s := c.Snapshot()
	return pagination.Control{
		Page:         s.Page,
		Total:        s.TotalPages,
		OnPageChange: func(n int) { c.PageChange(n) },
	}
}

// Snapshot returns the current state.
func (c *PageController) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Wait blocks until every started fetch and selection write has resolved.
func (c *PageController) Wait() {
	c.inflight.Wait()
}

// refetchLocked starts a fetch for the current page and query. Only the
// newest fetch may update the catalog.
func (c *PageController) refetchLocked() {
	c.gen++
	gen, page, query, ctx := c.gen, c.state.Page, c.state.CommittedQuery, c.ctx
	c.state.Loading = true

	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()

		result, err := c.lister.Fetch(ctx, page, query)

		c.mu.Lock()
		if gen != c.gen {
			c.mu.Unlock()
			slog.Debug("discarded stale page", "page", page, "query", query, "generation", gen)
			return
		}
		if err != nil {
			slog.Error("failed to fetch page", "page", page, "query", query, "error", err)
		} else {
			c.state.Catalog = result.Data
			c.state.TotalPages = result.NumPages
			c.state.Count = result.Count
		}
		c.state.Loading = false
		snap, subs := c.commitLocked()
		c.mu.Unlock()
		notify(subs, snap)
	}()
}

func (c *PageController) commitLocked() (State, []func(State)) {
	c.state.Version++
	return c.snapshotLocked(), slices.Clone(c.subs)
}

func (c *PageController) snapshotLocked() State {
	s := c.state
	s.Catalog = slices.Clone(c.state.Catalog)
	return s
}

func notify(subs []func(State), s State) {
	for _, fn := range subs {
		fn(s)
	}
}
