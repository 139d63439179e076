// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

var (
	ErrInvalidAdminKey = errors.New("invalid admin key")
	ErrAdminDisabled   = errors.New("admin operations are disabled")
)

// ValidateAdminKey checks a presented key against the configured one.
// An empty configured key disables admin operations entirely.
func ValidateAdminKey(presented, configured string) error {
	if configured == "" {
		return ErrAdminDisabled
	}
	if !hmac.Equal([]byte(presented), []byte(configured)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// HashIP creates a salted one-way hash of an IP address for request logs
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// First 16 hex chars
	return hex.EncodeToString(sum[:8])
}
