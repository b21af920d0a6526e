// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package graph defines the codegraph data model: node and edge kinds,
// closed per-kind property records, declarative filters, the
// decomposition contract for splitting source text into entities, and
// the writer that links new nodes to existing parents inside a single
// write transaction.
//
// The hierarchy is User -> Repository -> Folder -> File -> Entity ->
// Entity -> EmbeddedCode. Nodes are created exactly once and never
// mutated; re-embedding adds nodes, it never edits them.
package graph

import (
	"fmt"
	"strconv"
	"time"
)

// ID is an opaque node or edge identifier assigned by the storage
// layer at creation time.
type ID string

// Kind identifies a node type in the graph.
type Kind string

const (
	KindUser         Kind = "User"
	KindRepository   Kind = "Repository"
	KindFolder       Kind = "Folder"
	KindFile         Kind = "File"
	KindEntity       Kind = "Entity"
	KindEmbeddedCode Kind = "EmbeddedCode"
)

// EdgeKind identifies a directed relationship between two node kinds.
type EdgeKind string

const (
	EdgeUserToRepository     EdgeKind = "User_to_Repository"
	EdgeRepositoryToFolder   EdgeKind = "Repository_to_Folder"
	EdgeRepositoryToFile     EdgeKind = "Repository_to_File"
	EdgeFolderToFolder       EdgeKind = "Folder_to_Folder"
	EdgeFolderToFile         EdgeKind = "Folder_to_File"
	EdgeFileToEntity         EdgeKind = "File_to_Entity"
	EdgeEntityToEntity       EdgeKind = "Entity_to_Entity"
	EdgeEntityToEmbeddedCode EdgeKind = "Entity_to_EmbeddedCode"
)

// Props is the closed property record carried by a node. Each node
// kind has its own record type; there is no generic string-keyed bag.
// Field exposes property values by name for filter evaluation by the
// storage engine.
type Props interface {
	// Kind returns the node kind this record belongs to.
	Kind() Kind

	// Validate checks the record's construction-time invariants.
	Validate() error

	// Field returns the named property as a string, and whether the
	// record has a property by that name. Numeric fields are rendered
	// in decimal; time fields in RFC 3339.
	Field(name string) (string, bool)
}

// Node is a graph node: an identifier plus its property record.
type Node struct {
	ID    ID
	Props Props
}

// Kind returns the node's kind.
func (n *Node) Kind() Kind { return n.Props.Kind() }

// Edge is a directed, optionally property-bearing connection between
// two nodes.
type Edge struct {
	ID    ID
	Kind  EdgeKind
	From  ID
	To    ID
	Props map[string]string
}

// UserProps are the properties of a User node. Username is the
// business key by convention only; the store does not enforce
// uniqueness.
type UserProps struct {
	Username    string
	DisplayName string
	CreatedAt   time.Time
}

func (p UserProps) Kind() Kind { return KindUser }

func (p UserProps) Validate() error {
	if p.Username == "" {
		return fmt.Errorf("user: username is required")
	}
	if p.CreatedAt.IsZero() {
		return fmt.Errorf("user: created_at is required")
	}
	return nil
}

func (p UserProps) Field(name string) (string, bool) {
	switch name {
	case "username":
		return p.Username, true
	case "display_name":
		return p.DisplayName, true
	case "created_at":
		return p.CreatedAt.Format(time.RFC3339), true
	}
	return "", false
}

// RepositoryProps are the properties of a Repository node. (Owner,
// Name) is the business key by convention.
type RepositoryProps struct {
	Owner       string
	Name        string
	FullName    string
	Description string
	CreatedAt   time.Time
	ExtractedAt time.Time
}

func (p RepositoryProps) Kind() Kind { return KindRepository }

func (p RepositoryProps) Validate() error {
	if p.Owner == "" || p.Name == "" {
		return fmt.Errorf("repository: owner and name are required")
	}
	if p.CreatedAt.IsZero() || p.ExtractedAt.IsZero() {
		return fmt.Errorf("repository: created_at and extracted_at are required")
	}
	return nil
}

func (p RepositoryProps) Field(name string) (string, bool) {
	switch name {
	case "owner":
		return p.Owner, true
	case "name":
		return p.Name, true
	case "full_name":
		return p.FullName, true
	case "description":
		return p.Description, true
	case "created_at":
		return p.CreatedAt.Format(time.RFC3339), true
	case "extracted_at":
		return p.ExtractedAt.Format(time.RFC3339), true
	}
	return "", false
}

// FolderProps are the properties of a Folder node.
type FolderProps struct {
	Name        string
	ExtractedAt time.Time
}

func (p FolderProps) Kind() Kind { return KindFolder }

func (p FolderProps) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("folder: name is required")
	}
	if p.ExtractedAt.IsZero() {
		return fmt.Errorf("folder: extracted_at is required")
	}
	return nil
}

func (p FolderProps) Field(name string) (string, bool) {
	switch name {
	case "name":
		return p.Name, true
	case "extracted_at":
		return p.ExtractedAt.Format(time.RFC3339), true
	}
	return "", false
}

// FileProps are the properties of a File node. Text holds the full
// source as fetched.
type FileProps struct {
	Name        string
	Extension   string
	Text        string
	ExtractedAt time.Time
}

func (p FileProps) Kind() Kind { return KindFile }

func (p FileProps) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("file: name is required")
	}
	if p.ExtractedAt.IsZero() {
		return fmt.Errorf("file: extracted_at is required")
	}
	return nil
}

func (p FileProps) Field(name string) (string, bool) {
	switch name {
	case "name":
		return p.Name, true
	case "extension":
		return p.Extension, true
	case "text":
		return p.Text, true
	case "extracted_at":
		return p.ExtractedAt.Format(time.RFC3339), true
	}
	return "", false
}

// EntityProps are the properties of an Entity node. StartByte and
// EndByte are half-open offsets into the owning File's text, or into
// the parent Entity's covered range for sub-entities. Order is the
// 0-based sibling rank by ascending StartByte.
type EntityProps struct {
	EntityType  string
	StartByte   int64
	EndByte     int64
	Order       int64
	Text        string
	ExtractedAt time.Time
}

func (p EntityProps) Kind() Kind { return KindEntity }

func (p EntityProps) Validate() error {
	if p.EntityType == "" {
		return fmt.Errorf("entity: entity_type is required")
	}
	if p.StartByte < 0 || p.EndByte < p.StartByte {
		return fmt.Errorf("entity: invalid range [%d, %d)", p.StartByte, p.EndByte)
	}
	if p.Order < 0 {
		return fmt.Errorf("entity: order must be non-negative")
	}
	if int64(len(p.Text)) != p.EndByte-p.StartByte {
		return fmt.Errorf("entity: text length %d does not match range [%d, %d)", len(p.Text), p.StartByte, p.EndByte)
	}
	if p.ExtractedAt.IsZero() {
		return fmt.Errorf("entity: extracted_at is required")
	}
	return nil
}

func (p EntityProps) Field(name string) (string, bool) {
	switch name {
	case "entity_type":
		return p.EntityType, true
	case "start_byte":
		return strconv.FormatInt(p.StartByte, 10), true
	case "end_byte":
		return strconv.FormatInt(p.EndByte, 10), true
	case "order":
		return strconv.FormatInt(p.Order, 10), true
	case "text":
		return p.Text, true
	case "extracted_at":
		return p.ExtractedAt.Format(time.RFC3339), true
	}
	return "", false
}

// EmbeddedCodeProps holds a vector embedding attached to exactly one
// Entity at creation time. Dimensionality validation is delegated to
// the storage engine.
type EmbeddedCodeProps struct {
	Vector []float64
}

func (p EmbeddedCodeProps) Kind() Kind { return KindEmbeddedCode }

func (p EmbeddedCodeProps) Validate() error {
	if len(p.Vector) == 0 {
		return fmt.Errorf("embedded_code: vector is required")
	}
	return nil
}

func (p EmbeddedCodeProps) Field(name string) (string, bool) {
	// Vector components are not addressable by filter; only the
	// dimension is exposed for diagnostics.
	if name == "dimension" {
		return strconv.Itoa(len(p.Vector)), true
	}
	return "", false
}
