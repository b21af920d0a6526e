// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage defines the transactional graph store boundary the
// codegraph core writes through, and an embedded in-memory engine that
// implements it. Durability, on-disk layout, and vector-index
// construction belong to the engine behind this interface, not to the
// core.
package storage

import (
	"context"

	"github.com/kraklabs/codegraph/pkg/graph"
)

// Backend is the interface every graph storage engine must implement.
// It offers single-writer/multiple-reader transactions: any number of
// View calls may run concurrently against committed state, Update
// calls are serialized, and an Update's effects become visible to new
// readers only after its callback returns nil.
type Backend interface {
	// View runs fn inside a read-only transaction observing a
	// consistent snapshot.
	View(ctx context.Context, fn func(tx ReadTx) error) error

	// Update runs fn inside a write transaction. If fn returns an
	// error, every staged change is discarded and nothing becomes
	// visible; otherwise all changes commit atomically.
	Update(ctx context.Context, fn func(tx WriteTx) error) error

	// Close releases any resources held by the backend.
	Close() error
}

// ReadTx is the read side of a transaction handle.
type ReadTx interface {
	// NodeByID resolves a node by identifier. Fails with
	// graph.ErrNotFound if no node carries the identifier.
	NodeByID(id graph.ID) (*graph.Node, error)

	// NodesByKind returns every node of the given kind in creation
	// order.
	NodesByKind(kind graph.Kind) ([]*graph.Node, error)

	// FindNodes scans nodes of the given kind and returns those whose
	// property record matches the filter, in creation order. This is a
	// linear predicate evaluation, not an indexed lookup.
	FindNodes(kind graph.Kind, filter graph.Filter) ([]*graph.Node, error)

	// Out returns the target nodes of the node's outgoing edges of the
	// given kind, in edge creation order.
	Out(id graph.ID, kind graph.EdgeKind) ([]*graph.Node, error)

	// OutEdges returns the node's outgoing edges of the given kind, in
	// creation order.
	OutEdges(id graph.ID, kind graph.EdgeKind) ([]*graph.Edge, error)

	// SearchVector returns the k nearest EmbeddedCode nodes to the
	// query vector by cosine similarity.
	SearchVector(query []float64, k int) ([]VectorMatch, error)
}

// WriteTx is the write side of a transaction handle. Reads through a
// WriteTx observe the transaction's own staged changes.
type WriteTx interface {
	ReadTx

	// AddNode validates the property record and stages a new node.
	// EmbeddedCode vectors are checked against the store's configured
	// embedding dimension and fail with graph.ErrDimensionMismatch on
	// a mismatch.
	AddNode(props graph.Props) (*graph.Node, error)

	// AddEdge stages a new directed edge. Both endpoints must resolve
	// within the transaction.
	AddEdge(kind graph.EdgeKind, from, to graph.ID, props map[string]string) (*graph.Edge, error)
}

// VectorMatch is one result of a nearest-neighbor search.
type VectorMatch struct {
	Node  *graph.Node
	Score float64
}
