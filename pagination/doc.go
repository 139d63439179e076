// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package pagination provides the Prev/Next pager. Control is a value built
// fresh from the current page and total; it never calls OnPageChange with a
// page outside 1..Total.
package pagination
