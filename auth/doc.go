// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth guards the catalog server's admin operations.

# Admin Key

The forced refresh endpoint requires the X-Admin-Key header to match the
configured ADMIN_KEY:

	if err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), cfg.AdminKey); err != nil {
		// 401, or 404 when ErrAdminDisabled
	}

Comparison is constant-time. When no key is configured ValidateAdminKey
returns ErrAdminDisabled for every request.

# IP Hashing

HashIP produces a salted 64-bit hex digest of a client IP. Request logs
record this instead of the raw address.
*/
package auth
