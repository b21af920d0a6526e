// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package graph

import "errors"

// Lookup and write failures surfaced by the writer, the catalogue, and
// the storage engine. All are sentinel errors so callers can branch
// with errors.Is across wrapping.
var (
	// ErrNotFound reports zero matches where exactly one node was
	// required.
	ErrNotFound = errors.New("graph: not found")

	// ErrMultipleMatches reports more than one match where exactly one
	// node was required. Lookups never silently pick the first row a
	// scan happens to yield.
	ErrMultipleMatches = errors.New("graph: multiple matches")

	// ErrParentNotFound reports that a parent locator resolved to zero
	// nodes during a linked create.
	ErrParentNotFound = errors.New("graph: parent not found")

	// ErrAmbiguousParent reports that a parent locator resolved to more
	// than one node during a linked create.
	ErrAmbiguousParent = errors.New("graph: ambiguous parent")

	// ErrRangeViolation reports a decomposition whose segments overlap,
	// are out of order, or escape the parent range.
	ErrRangeViolation = errors.New("graph: range violation")

	// ErrWriteConflict reports that a write transaction could not
	// commit.
	ErrWriteConflict = errors.New("graph: write conflict")

	// ErrDimensionMismatch reports a vector whose dimensionality does
	// not match the store's configured embedding dimension.
	ErrDimensionMismatch = errors.New("graph: dimension mismatch")
)
