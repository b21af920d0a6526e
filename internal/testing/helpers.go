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

package testing

import (
	"context"
	"testing"
	"time"

	"github.com/kraklabs/codegraph/pkg/graph"
	"github.com/kraklabs/codegraph/pkg/storage"
)

// SetupTestBackend creates an in-memory graph backend for testing.
// The backend is automatically closed when the test finishes.
//
// Example:
//
//	func TestMyFeature(t *testing.T) {
//	    backend := testing.SetupTestBackend(t)
//	    userID := testing.SeedUser(t, backend, "ada")
//	    // Run your tests...
//	}
func SetupTestBackend(t *testing.T) *storage.EmbeddedBackend {
	t.Helper()

	backend := storage.NewEmbeddedBackend(storage.EmbeddedConfig{})
	t.Cleanup(func() {
		backend.Close()
	})
	return backend
}

// SeedUser adds a User node and returns its ID.
func SeedUser(t *testing.T, backend storage.Backend, username string) graph.ID {
	t.Helper()

	var id graph.ID
	err := backend.Update(context.Background(), func(tx storage.WriteTx) error {
		n, err := tx.AddNode(graph.UserProps{
			Username:    username,
			DisplayName: username,
			CreatedAt:   time.Now().UTC(),
		})
		if err != nil {
			return err
		}
		id = n.ID
		return nil
	})
	if err != nil {
		t.Fatalf("failed to seed user %s: %v", username, err)
	}
	return id
}

// SeedRepository adds a Repository node owned by the given user and
// links it with a User_to_Repository edge. Returns the repository ID.
//
// Example:
//
//	userID := testing.SeedUser(t, backend, "ada")
//	repoID := testing.SeedRepository(t, backend, userID, "ada", "engine")
func SeedRepository(t *testing.T, backend storage.Backend, userID graph.ID, owner, name string) graph.ID {
	t.Helper()

	var id graph.ID
	err := backend.Update(context.Background(), func(tx storage.WriteTx) error {
		now := time.Now().UTC()
		n, err := tx.AddNode(graph.RepositoryProps{
			Owner:       owner,
			Name:        name,
			FullName:    owner + "/" + name,
			CreatedAt:   now,
			ExtractedAt: now,
		})
		if err != nil {
			return err
		}
		if _, err := tx.AddEdge(graph.EdgeUserToRepository, userID, n.ID,
			map[string]string{"access_type": "owner"}); err != nil {
			return err
		}
		id = n.ID
		return nil
	})
	if err != nil {
		t.Fatalf("failed to seed repository %s/%s: %v", owner, name, err)
	}
	return id
}

// SeedFile adds a File node under the repository with a
// Repository_to_File edge. Returns the file ID.
func SeedFile(t *testing.T, backend storage.Backend, repoID graph.ID, name, text string) graph.ID {
	t.Helper()

	var id graph.ID
	err := backend.Update(context.Background(), func(tx storage.WriteTx) error {
		n, err := tx.AddNode(graph.FileProps{
			Name:        name,
			Text:        text,
			ExtractedAt: time.Now().UTC(),
		})
		if err != nil {
			return err
		}
		if _, err := tx.AddEdge(graph.EdgeRepositoryToFile, repoID, n.ID, nil); err != nil {
			return err
		}
		id = n.ID
		return nil
	})
	if err != nil {
		t.Fatalf("failed to seed file %s: %v", name, err)
	}
	return id
}

// SeedEntity adds an Entity node covering text under the file with a
// File_to_Entity edge. Returns the entity ID.
//
// Example:
//
//	fileID := testing.SeedFile(t, backend, repoID, "main.go", "package main\n")
//	entityID := testing.SeedEntity(t, backend, fileID, "package_clause", "package main\n")
func SeedEntity(t *testing.T, backend storage.Backend, fileID graph.ID, entityType, text string) graph.ID {
	t.Helper()

	var id graph.ID
	err := backend.Update(context.Background(), func(tx storage.WriteTx) error {
		n, err := tx.AddNode(graph.EntityProps{
			EntityType:  entityType,
			StartByte:   0,
			EndByte:     int64(len(text)),
			Order:       0,
			Text:        text,
			ExtractedAt: time.Now().UTC(),
		})
		if err != nil {
			return err
		}
		if _, err := tx.AddEdge(graph.EdgeFileToEntity, fileID, n.ID, nil); err != nil {
			return err
		}
		id = n.ID
		return nil
	})
	if err != nil {
		t.Fatalf("failed to seed entity: %v", err)
	}
	return id
}

// CountNodes returns how many committed nodes of the kind exist.
func CountNodes(t *testing.T, backend storage.Backend, kind graph.Kind) int {
	t.Helper()

	var count int
	err := backend.View(context.Background(), func(tx storage.ReadTx) error {
		nodes, err := tx.NodesByKind(kind)
		if err != nil {
			return err
		}
		count = len(nodes)
		return nil
	})
	if err != nil {
		t.Fatalf("failed to count %s nodes: %v", kind, err)
	}
	return count
}

// OutIDs returns the IDs of nodes reachable from id over edges of the
// given kind, in edge creation order.
func OutIDs(t *testing.T, backend storage.Backend, id graph.ID, kind graph.EdgeKind) []graph.ID {
	t.Helper()

	var out []graph.ID
	err := backend.View(context.Background(), func(tx storage.ReadTx) error {
		nodes, err := tx.Out(id, kind)
		if err != nil {
			return err
		}
		for _, n := range nodes {
			out = append(out, n.ID)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("failed to walk %s edges: %v", kind, err)
	}
	return out
}
