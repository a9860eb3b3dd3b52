// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package contract

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

const (
	// DefaultMaxUnitBytes is the baseline size limit for one translation
	// unit dump.
	DefaultMaxUnitBytes = 256 << 20 // 256 MiB

	// MaxUnitBytesEnv overrides DefaultMaxUnitBytes.
	MaxUnitBytesEnv = "SEQDIAG_MAX_UNIT_BYTES"
)

// ErrUnitTooLarge is returned for dumps above MaxUnitBytes.
var ErrUnitTooLarge = errors.New("translation unit dump exceeds size limit")

// MaxUnitBytes returns the active dump size limit.
func MaxUnitBytes() int64 {
	if v := os.Getenv(MaxUnitBytesEnv); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return DefaultMaxUnitBytes
}

type ValidationResult struct {
	OK      bool
	Message string
}

// Err returns nil for a passing result and ErrUnitTooLarge otherwise.
func (r *ValidationResult) Err() error {
	if r.OK {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnitTooLarge, r.Message)
}

// ValidateUnitSize checks a dump of size bytes against MaxUnitBytes.
func ValidateUnitSize(path string, size int64) *ValidationResult {
	if limit := MaxUnitBytes(); size > limit {
		return &ValidationResult{
			OK:      false,
			Message: fmt.Sprintf("%s is %d bytes, limit is %d (set %s to raise it)", path, size, limit, MaxUnitBytesEnv),
		}
	}
	return &ValidationResult{OK: true}
}
