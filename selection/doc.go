// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package selection persists the name of the currently selected creature.

# Stores

Store is a single durable string cell under the fixed key Key:

	name, ok, err := store.Get(ctx)
	err = store.Set(ctx, "pikachu")

Three implementations:

  - BoltStore: bbolt file, the client default (OpenBolt)
  - SQLStore: SQLite kv table (OpenSQLite or NewSQLStore)
  - MemoryStore: in-process, for tests

The empty string is a valid value meaning "no selection". It round-trips
through Get and is distinct from a store that was never written, which
reports ok=false.

Set returns only after the value is committed, so a selection made just
before the client exits is not lost. Both durable stores return ErrClosed
after Close.
*/
package selection
