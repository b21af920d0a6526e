// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package graph

import "strings"

// Op is a filter comparison operator.
type Op string

const (
	// OpEq matches when the property equals the value exactly.
	OpEq Op = "eq"

	// OpContains matches when the property contains the value as a
	// substring.
	OpContains Op = "contains"
)

// Cond is a single declarative filter condition. A missing property
// never matches.
type Cond struct {
	Field string
	Op    Op
	Value string
}

// Filter is a conjunction of conditions evaluated against a node's
// property record. An empty filter matches every node of the target
// kind.
type Filter []Cond

// Where is shorthand for a single equality condition.
func Where(field, value string) Filter {
	return Filter{{Field: field, Op: OpEq, Value: value}}
}

// And appends an equality condition.
func (f Filter) And(field, value string) Filter {
	return append(f, Cond{Field: field, Op: OpEq, Value: value})
}

// Matches reports whether every condition holds for the given record.
// This is the evaluation the storage engine applies during its
// scan-and-filter pass.
func (f Filter) Matches(p Props) bool {
	for _, c := range f {
		got, ok := p.Field(c.Field)
		if !ok {
			return false
		}
		switch c.Op {
		case OpEq:
			if got != c.Value {
				return false
			}
		case OpContains:
			if !strings.Contains(got, c.Value) {
				return false
			}
		default:
			return false
		}
	}
	return true
}
