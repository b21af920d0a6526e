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

package storage

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/kraklabs/codegraph/pkg/graph"
)

// EmbeddedConfig configures the embedded backend.
type EmbeddedConfig struct {
	// EmbeddingDimensions is the expected vector size for EmbeddedCode
	// nodes. 0 disables the check.
	EmbeddingDimensions int

	// VectorIndex holds HNSW-style tuning knobs. The embedded engine
	// records them but searches brute force; a production engine reads
	// them when building its index.
	VectorIndex VectorIndexConfig
}

// VectorIndexConfig carries opaque vector-index parameters.
type VectorIndexConfig struct {
	M              int `yaml:"m"`
	EfConstruction int `yaml:"ef_construction"`
	EfSearch       int `yaml:"ef_search"`
}

// EmbeddedBackend implements Backend with an in-memory graph. Writers
// stage changes in a transaction-local overlay and commit them under
// an exclusive lock, so readers never observe a partial write.
type EmbeddedBackend struct {
	config EmbeddedConfig

	mu     sync.RWMutex
	closed bool
	nodes  map[graph.ID]*graph.Node
	order  []graph.ID
	edges  map[graph.ID]*graph.Edge
	outs   map[graph.ID][]graph.ID // node -> outgoing edge IDs, creation order
}

// NewEmbeddedBackend creates an empty in-memory backend.
func NewEmbeddedBackend(config EmbeddedConfig) *EmbeddedBackend {
	return &EmbeddedBackend{
		config: config,
		nodes:  make(map[graph.ID]*graph.Node),
		edges:  make(map[graph.ID]*graph.Edge),
		outs:   make(map[graph.ID][]graph.ID),
	}
}

// View runs fn against committed state under a shared lock.
func (b *EmbeddedBackend) View(ctx context.Context, fn func(tx ReadTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return fmt.Errorf("storage: backend is closed")
	}
	return fn(&memTx{backend: b})
}

// Update runs fn with a staged overlay and applies the overlay only if
// fn returns nil. Update calls are serialized by the exclusive lock.
func (b *EmbeddedBackend) Update(ctx context.Context, fn func(tx WriteTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return fmt.Errorf("storage: backend is closed")
	}

	tx := &memTx{
		backend:     b,
		writable:    true,
		stagedNodes: make(map[graph.ID]*graph.Node),
		stagedEdges: make(map[graph.ID]*graph.Edge),
		stagedOuts:  make(map[graph.ID][]graph.ID),
	}
	if err := fn(tx); err != nil {
		return err // overlay discarded, nothing committed
	}

	for _, id := range tx.stagedNodeOrder {
		b.nodes[id] = tx.stagedNodes[id]
		b.order = append(b.order, id)
	}
	for id, e := range tx.stagedEdges {
		b.edges[id] = e
	}
	for from, ids := range tx.stagedOuts {
		b.outs[from] = append(b.outs[from], ids...)
	}
	return nil
}

// Close marks the backend closed. Subsequent transactions fail.
func (b *EmbeddedBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

// memTx is a transaction over the embedded backend. For read-only
// transactions the staged maps are nil and every lookup falls through
// to committed state.
type memTx struct {
	backend  *EmbeddedBackend
	writable bool

	stagedNodes     map[graph.ID]*graph.Node
	stagedNodeOrder []graph.ID
	stagedEdges     map[graph.ID]*graph.Edge
	stagedOuts      map[graph.ID][]graph.ID
}

func (tx *memTx) NodeByID(id graph.ID) (*graph.Node, error) {
	if n, ok := tx.stagedNodes[id]; ok {
		return n, nil
	}
	if n, ok := tx.backend.nodes[id]; ok {
		return n, nil
	}
	return nil, fmt.Errorf("%w: node %s", graph.ErrNotFound, id)
}

func (tx *memTx) NodesByKind(kind graph.Kind) ([]*graph.Node, error) {
	return tx.FindNodes(kind, nil)
}

func (tx *memTx) FindNodes(kind graph.Kind, filter graph.Filter) ([]*graph.Node, error) {
	var out []*graph.Node
	for _, id := range tx.backend.order {
		n := tx.backend.nodes[id]
		if n.Kind() == kind && filter.Matches(n.Props) {
			out = append(out, n)
		}
	}
	for _, id := range tx.stagedNodeOrder {
		n := tx.stagedNodes[id]
		if n.Kind() == kind && filter.Matches(n.Props) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (tx *memTx) Out(id graph.ID, kind graph.EdgeKind) ([]*graph.Node, error) {
	edges, err := tx.OutEdges(id, kind)
	if err != nil {
		return nil, err
	}
	nodes := make([]*graph.Node, 0, len(edges))
	for _, e := range edges {
		n, err := tx.NodeByID(e.To)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func (tx *memTx) OutEdges(id graph.ID, kind graph.EdgeKind) ([]*graph.Edge, error) {
	if _, err := tx.NodeByID(id); err != nil {
		return nil, err
	}
	var out []*graph.Edge
	for _, eid := range tx.backend.outs[id] {
		if e := tx.backend.edges[eid]; e.Kind == kind {
			out = append(out, e)
		}
	}
	for _, eid := range tx.stagedOuts[id] {
		e := tx.stagedEdges[eid]
		if e == nil {
			e = tx.backend.edges[eid]
		}
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out, nil
}

func (tx *memTx) SearchVector(query []float64, k int) ([]VectorMatch, error) {
	if len(query) == 0 || k <= 0 {
		return nil, nil
	}
	embedded, err := tx.NodesByKind(graph.KindEmbeddedCode)
	if err != nil {
		return nil, err
	}
	var matches []VectorMatch
	for _, n := range embedded {
		props, ok := n.Props.(graph.EmbeddedCodeProps)
		if !ok {
			continue
		}
		if len(props.Vector) != len(query) {
			continue
		}
		matches = append(matches, VectorMatch{Node: n, Score: cosine(query, props.Vector)})
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

func (tx *memTx) AddNode(props graph.Props) (*graph.Node, error) {
	if !tx.writable {
		return nil, fmt.Errorf("storage: add node on read-only transaction")
	}
	if err := props.Validate(); err != nil {
		return nil, err
	}
	if ec, ok := props.(graph.EmbeddedCodeProps); ok {
		dim := tx.backend.config.EmbeddingDimensions
		if dim > 0 && len(ec.Vector) != dim {
			return nil, fmt.Errorf("%w: got %d, store expects %d",
				graph.ErrDimensionMismatch, len(ec.Vector), dim)
		}
	}
	n := &graph.Node{ID: graph.ID(uuid.NewString()), Props: props}
	tx.stagedNodes[n.ID] = n
	tx.stagedNodeOrder = append(tx.stagedNodeOrder, n.ID)
	return n, nil
}

func (tx *memTx) AddEdge(kind graph.EdgeKind, from, to graph.ID, props map[string]string) (*graph.Edge, error) {
	if !tx.writable {
		return nil, fmt.Errorf("storage: add edge on read-only transaction")
	}
	if _, err := tx.NodeByID(from); err != nil {
		return nil, fmt.Errorf("edge %s from: %w", kind, err)
	}
	if _, err := tx.NodeByID(to); err != nil {
		return nil, fmt.Errorf("edge %s to: %w", kind, err)
	}
	e := &graph.Edge{ID: graph.ID(uuid.NewString()), Kind: kind, From: from, To: to, Props: props}
	tx.stagedEdges[e.ID] = e
	tx.stagedOuts[from] = append(tx.stagedOuts[from], e.ID)
	return e, nil
}

func cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
