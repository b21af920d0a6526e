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

type createSuperFolderParams struct {
	Owner      string `json:"owner"`
	RepoName   string `json:"repo_name"`
	FolderName string `json:"folder_name"`
}

// createSuperFolder creates a Folder directly under the repository
// matching (owner, repo_name) and links it via Repository_to_Folder.
func (c *Catalog) createSuperFolder(ctx context.Context, params json.RawMessage) (Response, error) {
	var p createSuperFolderParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	var view FolderView
	err := c.backend.Update(ctx, func(tx storage.WriteTx) error {
		node, err := graph.CreateLinked(tx,
			graph.ByFilter(graph.KindRepository,
				graph.Where("owner", p.Owner).And("name", p.RepoName)),
			graph.FolderProps{Name: p.FolderName, ExtractedAt: c.now().UTC()},
			graph.EdgeRepositoryToFolder, nil)
		if err != nil {
			return err
		}
		view = folderView(node)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return Response{"folder": view}, nil
}

type createSubFolderParams struct {
	FolderID string `json:"folder_id"`
	Name     string `json:"name"`
}

// createSubFolder creates a Folder under an existing folder, located
// by identifier, and links it via Folder_to_Folder.
func (c *Catalog) createSubFolder(ctx context.Context, params json.RawMessage) (Response, error) {
	var p createSubFolderParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	var view FolderView
	err := c.backend.Update(ctx, func(tx storage.WriteTx) error {
		node, err := graph.CreateLinked(tx,
			graph.ByID(graph.KindFolder, graph.ID(p.FolderID)),
			graph.FolderProps{Name: p.Name, ExtractedAt: c.now().UTC()},
			graph.EdgeFolderToFolder, nil)
		if err != nil {
			return err
		}
		view = folderView(node)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return Response{"subfolder": view}, nil
}
