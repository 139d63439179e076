// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"

	"github.com/danielhkuo/pokepick/models"
)

var ErrNotFound = errors.New("creature not found")

// hydrateLimit bounds concurrent upstream detail calls per page.
const hydrateLimit = 4

// Source supplies the catalog index and per-creature details.
type Source interface {
	Index(ctx context.Context) ([]models.CreatureSummary, error)
	Detail(ctx context.Context, detailURL string) (models.Stats, []string, error)
}

// Repository is the SQL-backed creature cache.
type Repository struct {
	db       *sql.DB
	src      Source
	pageSize int
	maxAge   time.Duration
	now      func() time.Time

	refreshMu sync.Mutex
}

// NewRepository returns a cache over src. The index is refetched once it
// is older than maxAge.
func NewRepository(db *sql.DB, src Source, pageSize int, maxAge time.Duration) *Repository {
	return &Repository{
		db:       db,
		src:      src,
		pageSize: pageSize,
		maxAge:   maxAge,
		now:      time.Now,
	}
}

// SetClock replaces the time source.
func (r *Repository) SetClock(now func() time.Time) {
	r.now = now
}

// Meta returns the upstream count and the time of the last index refresh.
// A catalog that was never refreshed reports ErrNotFound.
func (r *Repository) Meta(ctx context.Context) (int, time.Time, error) {
	var count int
	var updated int64
	err := r.db.QueryRowContext(ctx, `
		SELECT count, updated_at FROM catalog_meta WHERE id = 1
	`).Scan(&count, &updated)
	if err == sql.ErrNoRows {
		return 0, time.Time{}, ErrNotFound
	}
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("query catalog meta: %w", err)
	}
	return count, time.Unix(updated, 0), nil
}

// EnsureFresh refreshes the index when it is missing or older than maxAge.
func (r *Repository) EnsureFresh(ctx context.Context) error {
	r.refreshMu.Lock()
	defer r.refreshMu.Unlock()

	_, updated, err := r.Meta(ctx)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if err == nil && r.now().Sub(updated) < r.maxAge {
		return nil
	}

	_, err = r.refreshLocked(ctx)
	return err
}

// Refresh replaces the index from the source unconditionally. Creatures
// whose name is unchanged keep their hydrated stats and types.
func (r *Repository) Refresh(ctx context.Context) (int, error) {
	r.refreshMu.Lock()
	defer r.refreshMu.Unlock()
	return r.refreshLocked(ctx)
}

func (r *Repository) refreshLocked(ctx context.Context) (int, error) {
	index, err := r.src.Index(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch index: %w", err)
	}

	known, err := r.hydratedByName(ctx)
	if err != nil {
		return 0, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin refresh: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM creature`); err != nil {
		return 0, fmt.Errorf("clear creatures: %w", err)
	}

	for _, c := range index {
		if prev, ok := known[c.Name]; ok {
			c.Stats, c.Types = prev.Stats, prev.Types
		}
		if err := insertCreature(ctx, tx, c); err != nil {
			return 0, err
		}
	}

	now := r.now()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO catalog_meta (id, count, updated_at)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET count = excluded.count, updated_at = excluded.updated_at
	`, len(index), now.Unix())
	if err != nil {
		return 0, fmt.Errorf("update catalog meta: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit refresh: %w", err)
	}

	slog.Info("catalog refreshed",
		"count", humanize.Comma(int64(len(index))),
		"kept_hydrated", len(known),
	)
	return len(index), nil
}

func (r *Repository) hydratedByName(ctx context.Context) (map[string]models.CreatureSummary, error) {
	rows, err := r.db.QueryContext(ctx, selectCreature+` WHERE hydrated = TRUE`)
	if err != nil {
		return nil, fmt.Errorf("query hydrated creatures: %w", err)
	}
	defer rows.Close()

	known := map[string]models.CreatureSummary{}
	for rows.Next() {
		c, err := scanCreature(rows)
		if err != nil {
			return nil, err
		}
		known[c.Name] = c
	}
	return known, rows.Err()
}

// List returns one page of creatures whose name contains query, ignoring
// case. Pages past the end are empty. NumPages is count/pageSize + 1.
func (r *Repository) List(ctx context.Context, page int, query string) (models.PageResult, error) {
	if page < 1 {
		page = 1
	}
	pattern := likePattern(query)

	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM creature WHERE search_name LIKE $1 ESCAPE '\'
	`, pattern).Scan(&count)
	if err != nil {
		return models.PageResult{}, fmt.Errorf("count creatures: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, selectCreature+`
		WHERE search_name LIKE $1 ESCAPE '\'
		ORDER BY idx
		LIMIT $2 OFFSET $3
	`, pattern, r.pageSize, (page-1)*r.pageSize)
	if err != nil {
		return models.PageResult{}, fmt.Errorf("query creatures: %w", err)
	}

	data := []models.CreatureSummary{}
	for rows.Next() {
		c, err := scanCreature(rows)
		if err != nil {
			rows.Close()
			return models.PageResult{}, err
		}
		data = append(data, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return models.PageResult{}, fmt.Errorf("iterate creatures: %w", err)
	}

	if err := r.hydrate(ctx, data); err != nil {
		return models.PageResult{}, err
	}

	return models.PageResult{
		Count:       count,
		NumPages:    count/r.pageSize + 1,
		Data:        data,
		Page:        page,
		SearchQuery: query,
	}, nil
}

// ByIndex returns the hydrated creature at the 1-based catalog position.
func (r *Repository) ByIndex(ctx context.Context, idx int) (models.CreatureSummary, error) {
	row := r.db.QueryRowContext(ctx, selectCreature+` WHERE idx = $1`, idx)
	c, err := scanCreature(row)
	if err == sql.ErrNoRows {
		return models.CreatureSummary{}, ErrNotFound
	}
	if err != nil {
		return models.CreatureSummary{}, err
	}

	one := []models.CreatureSummary{c}
	if err := r.hydrate(ctx, one); err != nil {
		return models.CreatureSummary{}, err
	}
	return one[0], nil
}

// Random returns a uniformly chosen hydrated creature.
func (r *Repository) Random(ctx context.Context) (models.CreatureSummary, error) {
	count, _, err := r.Meta(ctx)
	if err != nil {
		return models.CreatureSummary{}, err
	}
	if count == 0 {
		return models.CreatureSummary{}, ErrNotFound
	}
	return r.ByIndex(ctx, rand.IntN(count)+1)
}

// ImageURL looks up a creature's artwork by exact name.
func (r *Repository) ImageURL(ctx context.Context, name string) (string, error) {
	var url string
	err := r.db.QueryRowContext(ctx, `SELECT img_url FROM creature WHERE name = $1`, name).Scan(&url)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("query image url: %w", err)
	}
	return url, nil
}

// hydrate fills in stats and types for entries that lack them, in place,
// and persists what it fetched.
func (r *Repository) hydrate(ctx context.Context, creatures []models.CreatureSummary) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(hydrateLimit)

	for i := range creatures {
		if creatures[i].Hydrated() {
			continue
		}
		c := &creatures[i]
		g.Go(func() error {
			stats, types, err := r.src.Detail(gctx, c.URL)
			if err != nil {
				return fmt.Errorf("hydrate %s: %w", c.Name, err)
			}
			c.Stats, c.Types = stats, types
			return r.saveDetail(gctx, *c)
		})
	}

	return g.Wait()
}

func (r *Repository) saveDetail(ctx context.Context, c models.CreatureSummary) error {
	types, err := json.Marshal(c.Types)
	if err != nil {
		return fmt.Errorf("marshal types: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		UPDATE creature
		SET types = $1, hp = $2, attack = $3, defense = $4,
		    special_attack = $5, special_defense = $6, speed = $7, hydrated = TRUE
		WHERE idx = $8
	`, string(types), c.Stats.HP, c.Stats.Attack, c.Stats.Defense,
		c.Stats.SpecialAttack, c.Stats.SpecialDefense, c.Stats.Speed, c.Index)
	if err != nil {
		return fmt.Errorf("save creature detail: %w", err)
	}
	return nil
}

const selectCreature = `
	SELECT idx, name, url, img_url, types, hp, attack, defense,
	       special_attack, special_defense, speed
	FROM creature`

type scanner interface {
	Scan(dest ...any) error
}

func scanCreature(s scanner) (models.CreatureSummary, error) {
	var c models.CreatureSummary
	var types string
	err := s.Scan(&c.Index, &c.Name, &c.URL, &c.ImgURL, &types,
		&c.Stats.HP, &c.Stats.Attack, &c.Stats.Defense,
		&c.Stats.SpecialAttack, &c.Stats.SpecialDefense, &c.Stats.Speed)
	if err != nil {
		return c, err
	}
	if err := json.Unmarshal([]byte(types), &c.Types); err != nil {
		return c, fmt.Errorf("decode types for %s: %w", c.Name, err)
	}
	return c, nil
}

func insertCreature(ctx context.Context, tx *sql.Tx, c models.CreatureSummary) error {
	types := c.Types
	if types == nil {
		types = []string{}
	}
	encoded, err := json.Marshal(types)
	if err != nil {
		return fmt.Errorf("marshal types: %w", err)
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO creature (idx, name, search_name, url, img_url, types, hp, attack, defense,
		                      special_attack, special_defense, speed, hydrated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, c.Index, c.Name, foldName(c.Name), c.URL, c.ImgURL, string(encoded),
		c.Stats.HP, c.Stats.Attack, c.Stats.Defense,
		c.Stats.SpecialAttack, c.Stats.SpecialDefense, c.Stats.Speed, len(types) > 0)
	if err != nil {
		return fmt.Errorf("insert creature %s: %w", c.Name, err)
	}
	return nil
}

// foldName is the search form of a name. Both stored names and queries
// go through it so the database never folds case itself.
func foldName(name string) string {
	return cases.Fold().String(name)
}

// likePattern builds a case-folded substring pattern with LIKE wildcards
// in the query escaped.
func likePattern(query string) string {
	q := foldName(query)
	q = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(q)
	return "%" + q + "%"
}
