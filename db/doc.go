// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes the catalog cache used by the server:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

CreateSelectionSchema initializes the key/value table used by the client's
SQL-backed selection store.

Both are safe to call multiple times - every statement uses IF NOT EXISTS.
The SQL is portable between SQLite (modernc.org/sqlite) and PostgreSQL
(lib/pq).

# Tables

  - creature: one row per catalog entry, keyed by its 1-based upstream
    position (idx). Stats and types are zero/empty until hydrated.
  - catalog_meta: single row (id = 1) with the upstream count and the unix
    time of the last index refresh.
  - kv: string key to string value, used for the persisted selection.

# Indexes

  - creature.name (unique, plus lookup index)
*/
package db
