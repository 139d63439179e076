// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Command pokepick is the terminal client for the catalog API.

It shows one page of creature cards at a time, with a search box, Prev/Next
paging and a persisted "current pick". A fight view shows health bars for
the pick and a random opponent.

# Usage

	pokepick -api http://127.0.0.1:5328

Keys: / search, ←/→ or p/n page, ↑/↓ or j/k move between cards, enter or
space select, f fight, q quit.

# Configuration

Flags override POKEPICK_* environment variables, which override the TOML
config file. See package cliparse. The selection is kept in a bbolt file by
default or in SQLite with -store-type sqlite.

Logs go to a file (-log) because the UI owns the terminal. -debug also logs
dropped out-of-order page responses.
*/
package main
