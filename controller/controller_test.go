// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/pokepick/models"
	"github.com/danielhkuo/pokepick/selection"
)

type fetchCall struct {
	page  int
	query string
}

// scriptedLister answers synchronously from respond and records calls.
type scriptedLister struct {
	mu      sync.Mutex
	calls   []fetchCall
	respond func(page int, query string) (models.PageResult, error)
}

func (l *scriptedLister) Fetch(ctx context.Context, page int, query string) (models.PageResult, error) {
	l.mu.Lock()
	l.calls = append(l.calls, fetchCall{page, query})
	l.mu.Unlock()
	return l.respond(page, query)
}

func (l *scriptedLister) Calls() []fetchCall {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]fetchCall(nil), l.calls...)
}

// pageOf returns n creatures named after the page and query.
func pageOf(page int, query string, n, numPages int) models.PageResult {
	data := make([]models.CreatureSummary, n)
	for i := range data {
		data[i] = models.CreatureSummary{Name: fmt.Sprintf("%s-p%d-%d", query, page, i)}
	}
	return models.PageResult{Count: n * numPages, NumPages: numPages, Data: data, Page: page, SearchQuery: query}
}

func threePages() *scriptedLister {
	return &scriptedLister{respond: func(page int, query string) (models.PageResult, error) {
		return pageOf(page, query, 12, 3), nil
	}}
}

func startController(t *testing.T, l *scriptedLister, store selection.Store) *PageController {
	t.Helper()
	c := New(l, store)
	c.Start(context.Background())
	c.Wait()
	return c
}

func TestStart_InitialFetchAndWrite(t *testing.T) {
	store := selection.NewMemoryStore()
	l := threePages()

	c := startController(t, l, store)

	calls := l.Calls()
	if len(calls) != 1 || calls[0] != (fetchCall{1, ""}) {
		t.Errorf("expected one startup fetch of page 1 with empty query, got %v", calls)
	}

	s := c.Snapshot()
	if s.Loading {
		t.Error("expected loading to end")
	}
	if s.TotalPages != 3 || len(s.Catalog) != 12 {
		t.Errorf("unexpected state %+v", s)
	}

	// The initial no-op write stores the empty selection
	name, ok, _ := store.Get(context.Background())
	if !ok || name != "" {
		t.Errorf("expected stored empty selection, got %q ok=%v", name, ok)
	}
}

func TestStart_AdoptsStoredSelection(t *testing.T) {
	store := selection.NewMemoryStore()
	store.Set(context.Background(), "bulbasaur")

	c := startController(t, threePages(), store)

	if got := c.Snapshot().SelectedName; got != "bulbasaur" {
		t.Errorf("expected bulbasaur, got %q", got)
	}
	if store.Writes() != 2 {
		t.Errorf("expected the adopted value to be written back, got %d writes", store.Writes())
	}
}

func TestSelect_SurvivesReload(t *testing.T) {
	store := selection.NewMemoryStore()

	first := startController(t, threePages(), store)
	if err := first.Select("pikachu"); err != nil {
		t.Fatal(err)
	}
	if first.Snapshot().SelectedName != "pikachu" {
		t.Error("expected selection in state")
	}

	// Simulated reload with the same durable store
	second := startController(t, threePages(), store)
	if got := second.Snapshot().SelectedName; got != "pikachu" {
		t.Errorf("expected pikachu after reload, got %q", got)
	}
}

func TestSelect_EmptyNameRoundTrips(t *testing.T) {
	store := selection.NewMemoryStore()

	first := startController(t, threePages(), store)
	first.Select("eevee")
	first.Select("")

	second := startController(t, threePages(), store)
	if got := second.Snapshot().SelectedName; got != "" {
		t.Errorf("expected empty selection, got %q", got)
	}
}

func TestSelect_PersistsAfterStartContextEnds(t *testing.T) {
	store := selection.NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())

	c := New(threePages(), store)
	c.Start(ctx)
	c.Wait()
	cancel()

	if err := c.Select("pikachu"); err != nil {
		t.Fatalf("expected the write to succeed after shutdown began, got %v", err)
	}
	name, ok, err := store.Get(context.Background())
	if err != nil || !ok || name != "pikachu" {
		t.Errorf("expected pikachu in store, got %q (ok=%v, err=%v)", name, ok, err)
	}
}

// slowStore holds Set until release is closed.
type slowStore struct {
	*selection.MemoryStore
	entered chan struct{}
	release chan struct{}
}

func (s *slowStore) Set(ctx context.Context, name string) error {
	if name == "" {
		return s.MemoryStore.Set(ctx, name)
	}
	close(s.entered)
	<-s.release
	return s.MemoryStore.Set(ctx, name)
}

func TestWait_CoversSelectionWrite(t *testing.T) {
	store := &slowStore{
		MemoryStore: selection.NewMemoryStore(),
		entered:     make(chan struct{}),
		release:     make(chan struct{}),
	}
	c := startController(t, threePages(), store)

	go c.Select("mew")
	<-store.entered

	waited := make(chan struct{})
	go func() {
		c.Wait()
		close(waited)
	}()

	select {
	case <-waited:
		t.Fatal("Wait returned while a selection write was pending")
	case <-time.After(50 * time.Millisecond):
	}

	close(store.release)
	select {
	case <-waited:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after the write finished")
	}

	if name, _, _ := store.Get(context.Background()); name != "mew" {
		t.Errorf("expected mew in store, got %q", name)
	}
}

func TestSubmitSearch_FireScenario(t *testing.T) {
	l := threePages()
	c := startController(t, l, selection.NewMemoryStore())

	c.SetDraft("fire")
	if s := c.Snapshot(); s.CommittedQuery != "" || s.Draft != "fire" {
		t.Errorf("draft must not commit before submit: %+v", s)
	}

	c.SubmitSearch()
	c.Wait()

	s := c.Snapshot()
	if s.CommittedQuery != "fire" || s.Page != 1 {
		t.Errorf("unexpected state %+v", s)
	}
	if len(s.Catalog) != 12 || s.TotalPages != 3 {
		t.Errorf("expected 12 results over 3 pages, got %d over %d", len(s.Catalog), s.TotalPages)
	}

	pager := c.Pagination()
	if pager.PrevEnabled() || !pager.NextEnabled() {
		t.Errorf("expected only Next enabled, prev=%v next=%v", pager.PrevEnabled(), pager.NextEnabled())
	}

	last := l.Calls()[len(l.Calls())-1]
	if last != (fetchCall{1, "fire"}) {
		t.Errorf("expected fetch of page 1 for fire, got %v", last)
	}
}

func TestSubmitSearch_ResetsPage(t *testing.T) {
	for _, from := range []int{2, 3} {
		t.Run(fmt.Sprintf("from page %d", from), func(t *testing.T) {
			c := startController(t, threePages(), selection.NewMemoryStore())

			if !c.PageChange(from) {
				t.Fatalf("expected move to page %d", from)
			}
			c.Wait()

			c.SetDraft("water")
			c.SubmitSearch()
			if c.Snapshot().Page != 1 {
				t.Errorf("expected page 1 after submit, got %d", c.Snapshot().Page)
			}
			c.Wait()
		})
	}
}

func TestSubmitSearch_SameTextRefetches(t *testing.T) {
	l := threePages()
	c := startController(t, l, selection.NewMemoryStore())

	c.SetDraft("grass")
	c.SubmitSearch()
	c.Wait()
	c.SubmitSearch()
	c.Wait()

	if n := len(l.Calls()); n != 3 {
		t.Errorf("expected startup plus two searches, got %d fetches", n)
	}
}

func TestPageChange_LastPageNext(t *testing.T) {
	l := threePages()
	c := startController(t, l, selection.NewMemoryStore())

	c.PageChange(3)
	c.Wait()
	before := len(l.Calls())

	if c.Pagination().ClickNext() {
		t.Error("Next must be disabled on the last page")
	}
	if c.PageChange(4) {
		t.Error("out-of-range page must be ignored")
	}
	if c.PageChange(3) {
		t.Error("current page must be a no-op")
	}
	if c.PageChange(0) {
		t.Error("page 0 must be ignored")
	}
	c.Wait()

	if c.Snapshot().Page != 3 {
		t.Errorf("expected to stay on page 3, got %d", c.Snapshot().Page)
	}
	if len(l.Calls()) != before {
		t.Errorf("expected no fetch, got %d new", len(l.Calls())-before)
	}
}

func TestPagination_ClickNextFetches(t *testing.T) {
	l := threePages()
	c := startController(t, l, selection.NewMemoryStore())

	if !c.Pagination().ClickNext() {
		t.Fatal("expected Next enabled on page 1")
	}
	c.Wait()

	if s := c.Snapshot(); s.Page != 2 || s.Catalog[0].Name != "-p2-0" {
		t.Errorf("expected page 2 loaded, got page %d first %q", s.Page, s.Catalog[0].Name)
	}
}

func TestFetchFailure_KeepsCatalog(t *testing.T) {
	l := &scriptedLister{respond: func(page int, query string) (models.PageResult, error) {
		if page == 2 {
			return models.PageResult{}, errors.New("connection reset")
		}
		return pageOf(page, query, 12, 3), nil
	}}
	c := startController(t, l, selection.NewMemoryStore())
	before := c.Snapshot().Catalog

	c.PageChange(2)
	c.Wait()

	s := c.Snapshot()
	if s.Loading {
		t.Error("expected loading to end after failure")
	}
	if len(s.Catalog) != len(before) || s.Catalog[0].Name != before[0].Name {
		t.Error("expected the previous catalog to remain")
	}
	if s.TotalPages != 3 {
		t.Errorf("expected total pages unchanged, got %d", s.TotalPages)
	}
	if n := len(l.Calls()); n != 2 {
		t.Errorf("expected no retry, got %d fetches", n)
	}
}

// gatedLister blocks each fetch until the test releases it.
type gatedLister struct {
	started chan *pending
}

type pending struct {
	call  fetchCall
	reply chan error
}

func newGatedLister() *gatedLister {
	return &gatedLister{started: make(chan *pending, 8)}
}

func (l *gatedLister) Fetch(ctx context.Context, page int, query string) (models.PageResult, error) {
	p := &pending{call: fetchCall{page, query}, reply: make(chan error, 1)}
	l.started <- p
	if err := <-p.reply; err != nil {
		return models.PageResult{}, err
	}
	return pageOf(page, query, 5, 4), nil
}

func (l *gatedLister) next(t *testing.T) *pending {
	t.Helper()
	select {
	case p := <-l.started:
		return p
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for fetch")
		return nil
	}
}

func TestStaleResponseDiscarded(t *testing.T) {
	l := newGatedLister()
	c := New(l, selection.NewMemoryStore())

	c.Start(context.Background())
	l.next(t).reply <- nil
	c.Wait()

	c.PageChange(2)
	slow := l.next(t)
	c.PageChange(3)
	fast := l.next(t)

	// Newer request resolves first
	fast.reply <- nil
	for c.Snapshot().Loading {
		time.Sleep(time.Millisecond)
	}
	// Then the older one
	slow.reply <- nil
	c.Wait()

	s := c.Snapshot()
	if s.Page != 3 {
		t.Errorf("expected page 3, got %d", s.Page)
	}
	if s.Catalog[0].Name != "-p3-0" {
		t.Errorf("stale page overwrote newer result: %q", s.Catalog[0].Name)
	}
}

func TestLoadingUntilLatestResolves(t *testing.T) {
	l := newGatedLister()
	c := New(l, selection.NewMemoryStore())

	c.Start(context.Background())
	l.next(t).reply <- nil
	c.Wait()

	c.SetDraft("a")
	c.SubmitSearch()
	older := l.next(t)
	c.SetDraft("ab")
	c.SubmitSearch()
	newer := l.next(t)

	older.reply <- nil
	// Give the stale fetch a chance to land
	time.Sleep(20 * time.Millisecond)
	if !c.Snapshot().Loading {
		t.Error("expected loading while the latest fetch is in flight")
	}

	newer.reply <- errors.New("timeout")
	c.Wait()

	s := c.Snapshot()
	if s.Loading {
		t.Error("expected loading to end")
	}
	if s.CommittedQuery != "ab" {
		t.Errorf("expected committed query ab, got %q", s.CommittedQuery)
	}
	// Neither the stale result nor the failed one replaced the catalog
	if s.Catalog[0].Name != "-p1-0" {
		t.Errorf("unexpected catalog %q", s.Catalog[0].Name)
	}
}

func TestOnChange_VersionsIncrease(t *testing.T) {
	c := New(threePages(), selection.NewMemoryStore())

	var mu sync.Mutex
	var versions []uint64
	c.OnChange(func(s State) {
		mu.Lock()
		versions = append(versions, s.Version)
		mu.Unlock()
	})

	c.Start(context.Background())
	c.Wait()
	c.Select("onix")

	mu.Lock()
	defer mu.Unlock()
	if len(versions) < 3 {
		t.Fatalf("expected at least 3 notifications, got %v", versions)
	}
	seen := map[uint64]bool{}
	for _, v := range versions {
		if seen[v] {
			t.Errorf("duplicate version %d", v)
		}
		seen[v] = true
	}
}

type failingStore struct{}

func (failingStore) Get(context.Context) (string, bool, error) { return "", false, errors.New("disk gone") }
func (failingStore) Set(context.Context, string) error { return errors.New("disk gone") }

func TestStoreFailureIsNotFatal(t *testing.T) {
	c := startController(t, threePages(), failingStore{})

	if len(c.Snapshot().Catalog) != 12 {
		t.Error("expected the catalog to load despite store errors")
	}
	if err := c.Select("mew"); err == nil {
		t.Error("expected the write error to be reported")
	}
	if c.Snapshot().SelectedName != "mew" {
		t.Error("expected the selection to apply in memory")
	}
}
