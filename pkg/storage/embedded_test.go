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
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/kraklabs/codegraph/pkg/graph"
)

func newUserProps(username string) graph.UserProps {
	return graph.UserProps{Username: username, DisplayName: username, CreatedAt: time.Now().UTC()}
}

func TestUpdateCommitsAtomically(t *testing.T) {
	b := NewEmbeddedBackend(EmbeddedConfig{})
	ctx := context.Background()

	var userID graph.ID
	err := b.Update(ctx, func(tx WriteTx) error {
		u, err := tx.AddNode(newUserProps("ada"))
		if err != nil {
			return err
		}
		userID = u.ID
		r, err := tx.AddNode(graph.RepositoryProps{
			Owner: "ada", Name: "engine", CreatedAt: time.Now(), ExtractedAt: time.Now(),
		})
		if err != nil {
			return err
		}
		_, err = tx.AddEdge(graph.EdgeUserToRepository, u.ID, r.ID, nil)
		return err
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	err = b.View(ctx, func(tx ReadTx) error {
		repos, err := tx.Out(userID, graph.EdgeUserToRepository)
		if err != nil {
			return err
		}
		if len(repos) != 1 {
			t.Errorf("got %d repos, want 1", len(repos))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
}

func TestUpdateRollsBackOnError(t *testing.T) {
	b := NewEmbeddedBackend(EmbeddedConfig{})
	ctx := context.Background()

	boom := errors.New("boom")
	err := b.Update(ctx, func(tx WriteTx) error {
		if _, err := tx.AddNode(newUserProps("ghost")); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Update err = %v, want boom", err)
	}

	err = b.View(ctx, func(tx ReadTx) error {
		users, err := tx.NodesByKind(graph.KindUser)
		if err != nil {
			return err
		}
		if len(users) != 0 {
			t.Errorf("rolled-back write left %d users", len(users))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
}

func TestStagedStateVisibleInsideTransaction(t *testing.T) {
	b := NewEmbeddedBackend(EmbeddedConfig{})
	ctx := context.Background()

	err := b.Update(ctx, func(tx WriteTx) error {
		u, err := tx.AddNode(newUserProps("ada"))
		if err != nil {
			return err
		}
		// Lookups inside the same transaction see the staged node.
		if _, err := tx.NodeByID(u.ID); err != nil {
			t.Errorf("staged node invisible by ID: %v", err)
		}
		found, err := tx.FindNodes(graph.KindUser, graph.Where("username", "ada"))
		if err != nil {
			return err
		}
		if len(found) != 1 {
			t.Errorf("staged node invisible to filter scan: %d matches", len(found))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
}

func TestAddEdgeRequiresEndpoints(t *testing.T) {
	b := NewEmbeddedBackend(EmbeddedConfig{})
	ctx := context.Background()

	err := b.Update(ctx, func(tx WriteTx) error {
		u, err := tx.AddNode(newUserProps("ada"))
		if err != nil {
			return err
		}
		_, err = tx.AddEdge(graph.EdgeUserToRepository, u.ID, "missing", nil)
		if !errors.Is(err, graph.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
}

func TestDimensionMismatch(t *testing.T) {
	b := NewEmbeddedBackend(EmbeddedConfig{EmbeddingDimensions: 4})
	ctx := context.Background()

	err := b.Update(ctx, func(tx WriteTx) error {
		_, err := tx.AddNode(graph.EmbeddedCodeProps{Vector: []float64{1, 2}})
		return err
	})
	if !errors.Is(err, graph.ErrDimensionMismatch) {
		t.Fatalf("err = %v, want ErrDimensionMismatch", err)
	}

	// 0 disables the check.
	loose := NewEmbeddedBackend(EmbeddedConfig{})
	err = loose.Update(ctx, func(tx WriteTx) error {
		_, err := tx.AddNode(graph.EmbeddedCodeProps{Vector: []float64{1, 2}})
		return err
	})
	if err != nil {
		t.Fatalf("unchecked dimensions rejected: %v", err)
	}
}

func TestSearchVectorRanksByCosine(t *testing.T) {
	b := NewEmbeddedBackend(EmbeddedConfig{EmbeddingDimensions: 3})
	ctx := context.Background()

	vectors := [][]float64{
		{1, 0, 0},
		{0, 1, 0},
		{0.9, 0.1, 0},
	}
	err := b.Update(ctx, func(tx WriteTx) error {
		for _, v := range vectors {
			if _, err := tx.AddNode(graph.EmbeddedCodeProps{Vector: v}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	err = b.View(ctx, func(tx ReadTx) error {
		matches, err := tx.SearchVector([]float64{1, 0, 0}, 2)
		if err != nil {
			return err
		}
		if len(matches) != 2 {
			t.Fatalf("got %d matches, want 2", len(matches))
		}
		top := matches[0].Node.Props.(graph.EmbeddedCodeProps)
		if top.Vector[0] != 1 {
			t.Errorf("top match vector = %v", top.Vector)
		}
		if matches[0].Score < matches[1].Score {
			t.Error("matches not sorted by descending score")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
}

func TestConcurrentWritersBothCommit(t *testing.T) {
	b := NewEmbeddedBackend(EmbeddedConfig{})
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = b.Update(ctx, func(tx WriteTx) error {
				_, err := tx.AddNode(newUserProps(fmt.Sprintf("writer-%d", i)))
				return err
			})
		}(i)
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			t.Fatalf("writer %d: %v", i, err)
		}
	}

	err := b.View(ctx, func(tx ReadTx) error {
		users, err := tx.NodesByKind(graph.KindUser)
		if err != nil {
			return err
		}
		if len(users) != 2 {
			t.Errorf("got %d users, want 2", len(users))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
}

func TestClosedBackendRejectsTransactions(t *testing.T) {
	b := NewEmbeddedBackend(EmbeddedConfig{})
	ctx := context.Background()
	if err := b.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := b.View(ctx, func(tx ReadTx) error { return nil }); err == nil {
		t.Error("View on closed backend succeeded")
	}
	if err := b.Update(ctx, func(tx WriteTx) error { return nil }); err == nil {
		t.Error("Update on closed backend succeeded")
	}
}
