// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package contract

import (
	"os"
	"strconv"
)

const (
	// DefaultMaxFileBytes is the baseline limit for a single fetched
	// file's decoded text.
	DefaultMaxFileBytes = 4 << 20 // 4 MiB

	// MaxOperationNameBytes is the maximum length for a catalogue
	// operation name.
	MaxOperationNameBytes = 128
)

// MaxFileBytes returns the effective limit for fetched file text.
// Controlled via env CODEGRAPH_MAX_FILE_BYTES; falls back to
// DefaultMaxFileBytes.
func MaxFileBytes() int {
	if v := os.Getenv("CODEGRAPH_MAX_FILE_BYTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return DefaultMaxFileBytes
}

// ValidationResult represents the result of a validation check.
type ValidationResult struct {
	OK      bool
	Message string
}

// ValidateFileText checks a fetched file's decoded text against the
// size limit. Oversized files are skipped by the pipeline rather than
// ingested.
func ValidateFileText(text string) *ValidationResult {
	if len(text) > MaxFileBytes() {
		return &ValidationResult{
			OK:      false,
			Message: "file text exceeds size limit",
		}
	}
	return &ValidationResult{OK: true}
}

// ValidateOperationName checks a catalogue operation name length.
func ValidateOperationName(name string) *ValidationResult {
	if name == "" {
		return &ValidationResult{OK: false, Message: "operation name is empty"}
	}
	if len(name) > MaxOperationNameBytes {
		return &ValidationResult{OK: false, Message: "operation name too long"}
	}
	return &ValidationResult{OK: true}
}
