// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates the catalog cache tables.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	for _, stmt := range catalogSchema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

// CreateSelectionSchema creates the key/value table used by the client's
// SQL selection store.
func CreateSelectionSchema(db *sql.DB) error {
	if _, err := db.Exec(selectionSchema); err != nil {
		return fmt.Errorf("failed to create selection schema: %w", err)
	}

	return nil
}

// One statement per entry; not every driver accepts multi-statement Exec.
var catalogSchema = []string{
	`-- Creatures, in upstream order
CREATE TABLE IF NOT EXISTS creature (
    idx INTEGER PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    search_name TEXT NOT NULL DEFAULT '',
    url TEXT NOT NULL,
    img_url TEXT NOT NULL,
    types TEXT NOT NULL DEFAULT '[]',
    hp INTEGER NOT NULL DEFAULT 0,
    attack INTEGER NOT NULL DEFAULT 0,
    defense INTEGER NOT NULL DEFAULT 0,
    special_attack INTEGER NOT NULL DEFAULT 0,
    special_defense INTEGER NOT NULL DEFAULT 0,
    speed INTEGER NOT NULL DEFAULT 0,
    hydrated BOOLEAN NOT NULL DEFAULT FALSE
)`,
	`CREATE INDEX IF NOT EXISTS idx_creature_name ON creature(name)`,
	`-- Single-row index metadata
CREATE TABLE IF NOT EXISTS catalog_meta (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    count INTEGER NOT NULL,
    updated_at BIGINT NOT NULL
)`,
}

const selectionSchema = `
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
)`
