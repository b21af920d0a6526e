// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package graph

import "fmt"

// Tx is the slice of a write transaction the writer needs. The storage
// engine's transaction handle satisfies it.
type Tx interface {
	NodeByID(id ID) (*Node, error)
	FindNodes(kind Kind, filter Filter) ([]*Node, error)
	AddNode(props Props) (*Node, error)
	AddEdge(kind EdgeKind, from, to ID, props map[string]string) (*Edge, error)
}

// Locator resolves an existing node before linking to it: either an
// identifier, or a kind plus a property filter.
type Locator struct {
	ID     ID
	Kind   Kind
	Filter Filter
}

// ByID locates a node by identifier, requiring it to be of the given
// kind.
func ByID(kind Kind, id ID) Locator { return Locator{ID: id, Kind: kind} }

// ByFilter locates a node by kind and property filter.
func ByFilter(kind Kind, filter Filter) Locator {
	return Locator{Kind: kind, Filter: filter}
}

// Resolve evaluates the locator on the transaction. Identifier lookups
// fail with ErrParentNotFound when absent or when the node is not of
// the locator's kind. Filter lookups fail with ErrParentNotFound on
// zero matches and ErrAmbiguousParent on more than one; the writer
// never proceeds with whichever node a scan happens to yield first.
func (l Locator) Resolve(tx Tx) (*Node, error) {
	if l.ID != "" {
		n, err := tx.NodeByID(l.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: id %s", ErrParentNotFound, l.ID)
		}
		if l.Kind != "" && n.Kind() != l.Kind {
			return nil, fmt.Errorf("%w: id %s is a %s, not a %s", ErrParentNotFound, l.ID, n.Kind(), l.Kind)
		}
		return n, nil
	}
	nodes, err := tx.FindNodes(l.Kind, l.Filter)
	if err != nil {
		return nil, err
	}
	switch len(nodes) {
	case 0:
		return nil, fmt.Errorf("%w: no %s matches %v", ErrParentNotFound, l.Kind, l.Filter)
	case 1:
		return nodes[0], nil
	default:
		return nil, fmt.Errorf("%w: %d %s nodes match %v", ErrAmbiguousParent, len(nodes), l.Kind, l.Filter)
	}
}

// CreateLinked resolves the parent, creates the new node, and creates
// the edge from parent to child, all on the given transaction handle.
// The caller owns the transaction, so every step commits together or
// not at all.
func CreateLinked(tx Tx, parent Locator, props Props, edge EdgeKind, edgeProps map[string]string) (*Node, error) {
	parentNode, err := parent.Resolve(tx)
	if err != nil {
		return nil, err
	}
	child, err := tx.AddNode(props)
	if err != nil {
		return nil, err
	}
	if _, err := tx.AddEdge(edge, parentNode.ID, child.ID, edgeProps); err != nil {
		return nil, err
	}
	return child, nil
}
