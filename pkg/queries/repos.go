// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package queries

import (
	"context"
	"encoding/json"

	"github.com/kraklabs/codegraph/pkg/graph"
	"github.com/kraklabs/codegraph/pkg/storage"
)

type createRepositoryParams struct {
	Username    string `json:"username"`
	RepoName    string `json:"repo_name"`
	FullName    string `json:"full_name"`
	Description string `json:"description"`
}

// createRepository creates a Repository node owned by the named user
// and links it via User_to_Repository, in one transaction. An unknown
// username fails with ErrParentNotFound and commits nothing.
func (c *Catalog) createRepository(ctx context.Context, params json.RawMessage) (Response, error) {
	var p createRepositoryParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	var view RepositoryView
	err := c.backend.Update(ctx, func(tx storage.WriteTx) error {
		now := c.now().UTC()
		node, err := graph.CreateLinked(tx,
			graph.ByFilter(graph.KindUser, graph.Where("username", p.Username)),
			graph.RepositoryProps{
				Owner:       p.Username,
				Name:        p.RepoName,
				FullName:    p.FullName,
				Description: p.Description,
				CreatedAt:   now,
				ExtractedAt: now,
			},
			graph.EdgeUserToRepository,
			map[string]string{"access_type": "owner"},
		)
		if err != nil {
			return err
		}
		view = repositoryView(node)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return Response{"repo": view}, nil
}

type getRepositoryParams struct {
	Owner    string `json:"owner"`
	RepoName string `json:"repo_name"`
}

// getRepository returns the single Repository matching (owner, name).
func (c *Catalog) getRepository(ctx context.Context, params json.RawMessage) (Response, error) {
	var p getRepositoryParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	var view RepositoryView
	err := c.backend.View(ctx, func(tx storage.ReadTx) error {
		node, err := uniqueNode(tx, graph.KindRepository,
			graph.Where("owner", p.Owner).And("name", p.RepoName))
		if err != nil {
			return err
		}
		view = repositoryView(node)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return Response{"repo": view}, nil
}

type getRepositoryByIDParams struct {
	RepoID string `json:"repo_id"`
}

// getRepositoryById resolves a Repository by identifier. An
// identifier belonging to a node of another kind is NotFound, not a
// crash.
func (c *Catalog) getRepositoryByID(ctx context.Context, params json.RawMessage) (Response, error) {
	var p getRepositoryByIDParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	var view RepositoryView
	err := c.backend.View(ctx, func(tx storage.ReadTx) error {
		node, err := nodeOfKind(tx, graph.KindRepository, graph.ID(p.RepoID))
		if err != nil {
			return err
		}
		view = repositoryView(node)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return Response{"repo": view}, nil
}

type getUserRepositoriesParams struct {
	Username string `json:"username"`
}

// getUserRepositories returns the repositories reachable from the
// named user via User_to_Repository, in link creation order.
func (c *Catalog) getUserRepositories(ctx context.Context, params json.RawMessage) (Response, error) {
	var p getUserRepositoriesParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	var views []RepositoryView
	err := c.backend.View(ctx, func(tx storage.ReadTx) error {
		user, err := uniqueNode(tx, graph.KindUser, graph.Where("username", p.Username))
		if err != nil {
			return err
		}
		repos, err := tx.Out(user.ID, graph.EdgeUserToRepository)
		if err != nil {
			return err
		}
		views = repositoryViews(repos)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return Response{"repos": views}, nil
}
