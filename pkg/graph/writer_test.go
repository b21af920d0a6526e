// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package graph

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

// fakeTx is an in-memory Tx for writer tests, deliberately simpler
// than the storage engine: no staging, no kind index.
type fakeTx struct {
	nodes []*Node
	edges []*Edge
	next  int
}

func (tx *fakeTx) NodeByID(id ID) (*Node, error) {
	for _, n := range tx.nodes {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, ErrNotFound
}

func (tx *fakeTx) FindNodes(kind Kind, filter Filter) ([]*Node, error) {
	var out []*Node
	for _, n := range tx.nodes {
		if n.Kind() == kind && filter.Matches(n.Props) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (tx *fakeTx) AddNode(props Props) (*Node, error) {
	if err := props.Validate(); err != nil {
		return nil, err
	}
	tx.next++
	n := &Node{ID: ID(fmt.Sprintf("n%d", tx.next)), Props: props}
	tx.nodes = append(tx.nodes, n)
	return n, nil
}

func (tx *fakeTx) AddEdge(kind EdgeKind, from, to ID, props map[string]string) (*Edge, error) {
	e := &Edge{ID: ID(fmt.Sprintf("e%d", len(tx.edges))), Kind: kind, From: from, To: to, Props: props}
	tx.edges = append(tx.edges, e)
	return e, nil
}

func seedUser(t *testing.T, tx *fakeTx, username string) *Node {
	t.Helper()
	n, err := tx.AddNode(UserProps{Username: username, DisplayName: username, CreatedAt: time.Now()})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return n
}

func TestCreateLinkedByFilter(t *testing.T) {
	tx := &fakeTx{}
	user := seedUser(t, tx, "acme")

	repo := RepositoryProps{
		Owner: "acme", Name: "widgets", FullName: "acme/widgets",
		CreatedAt: time.Now(), ExtractedAt: time.Now(),
	}
	child, err := CreateLinked(tx, ByFilter(KindUser, Where("username", "acme")), repo,
		EdgeUserToRepository, map[string]string{"access_type": "owner"})
	if err != nil {
		t.Fatalf("CreateLinked: %v", err)
	}

	if len(tx.edges) != 1 {
		t.Fatalf("got %d edges, want 1", len(tx.edges))
	}
	e := tx.edges[0]
	if e.From != user.ID || e.To != child.ID {
		t.Errorf("edge %s -> %s, want %s -> %s", e.From, e.To, user.ID, child.ID)
	}
	if e.Props["access_type"] != "owner" {
		t.Errorf("edge props = %v", e.Props)
	}
}

func TestCreateLinkedParentNotFound(t *testing.T) {
	tx := &fakeTx{}
	repo := RepositoryProps{
		Owner: "ghost", Name: "x", CreatedAt: time.Now(), ExtractedAt: time.Now(),
	}
	_, err := CreateLinked(tx, ByFilter(KindUser, Where("username", "ghost")), repo,
		EdgeUserToRepository, nil)
	if !errors.Is(err, ErrParentNotFound) {
		t.Fatalf("err = %v, want ErrParentNotFound", err)
	}
	if len(tx.nodes) != 0 || len(tx.edges) != 0 {
		t.Errorf("failed create left %d nodes, %d edges", len(tx.nodes), len(tx.edges))
	}
}

func TestCreateLinkedAmbiguousParent(t *testing.T) {
	tx := &fakeTx{}
	seedUser(t, tx, "acme")
	seedUser(t, tx, "acme")

	repo := RepositoryProps{
		Owner: "acme", Name: "x", CreatedAt: time.Now(), ExtractedAt: time.Now(),
	}
	_, err := CreateLinked(tx, ByFilter(KindUser, Where("username", "acme")), repo,
		EdgeUserToRepository, nil)
	if !errors.Is(err, ErrAmbiguousParent) {
		t.Fatalf("err = %v, want ErrAmbiguousParent", err)
	}
}

func TestCreateLinkedByID(t *testing.T) {
	tx := &fakeTx{}
	user := seedUser(t, tx, "acme")

	repo := RepositoryProps{
		Owner: "acme", Name: "widgets", CreatedAt: time.Now(), ExtractedAt: time.Now(),
	}
	child, err := CreateLinked(tx, ByID(KindUser, user.ID), repo, EdgeUserToRepository, nil)
	if err != nil {
		t.Fatalf("CreateLinked: %v", err)
	}
	if child.Kind() != KindRepository {
		t.Errorf("child kind = %s", child.Kind())
	}

	_, err = CreateLinked(tx, ByID(KindUser, "missing"), repo, EdgeUserToRepository, nil)
	if !errors.Is(err, ErrParentNotFound) {
		t.Errorf("err = %v, want ErrParentNotFound", err)
	}
}

func TestCreateLinkedByIDWrongKind(t *testing.T) {
	tx := &fakeTx{}
	user := seedUser(t, tx, "acme")

	// A valid identifier of the wrong kind must not become a parent.
	folder := FolderProps{Name: "src", ExtractedAt: time.Now()}
	_, err := CreateLinked(tx, ByID(KindFolder, user.ID), folder, EdgeFolderToFolder, nil)
	if !errors.Is(err, ErrParentNotFound) {
		t.Fatalf("err = %v, want ErrParentNotFound", err)
	}
	if len(tx.edges) != 0 {
		t.Errorf("wrong-kind create left %d edges", len(tx.edges))
	}
}

func TestCreateLinkedInvalidProps(t *testing.T) {
	tx := &fakeTx{}
	user := seedUser(t, tx, "acme")

	bad := EntityProps{EntityType: "f", StartByte: 0, EndByte: 4, Text: "xy", ExtractedAt: time.Now()}
	_, err := CreateLinked(tx, ByID(KindUser, user.ID), bad, EdgeFileToEntity, nil)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if len(tx.edges) != 0 {
		t.Errorf("invalid create left %d edges", len(tx.edges))
	}
}
