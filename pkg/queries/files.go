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

type createSuperFileParams struct {
	Owner     string `json:"owner"`
	RepoName  string `json:"repo_name"`
	FileName  string `json:"file_name"`
	Extension string `json:"extension"`
	Text      string `json:"text"`
}

// createSuperFile creates a File directly under the repository
// matching (owner, repo_name) and links it via Repository_to_File.
func (c *Catalog) createSuperFile(ctx context.Context, params json.RawMessage) (Response, error) {
	var p createSuperFileParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	var view FileView
	err := c.backend.Update(ctx, func(tx storage.WriteTx) error {
		node, err := graph.CreateLinked(tx,
			graph.ByFilter(graph.KindRepository,
				graph.Where("owner", p.Owner).And("name", p.RepoName)),
			graph.FileProps{
				Name:        p.FileName,
				Extension:   p.Extension,
				Text:        p.Text,
				ExtractedAt: c.now().UTC(),
			},
			graph.EdgeRepositoryToFile, nil)
		if err != nil {
			return err
		}
		view = fileView(node)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return Response{"file": view}, nil
}

type createFileParams struct {
	FolderID  string `json:"folder_id"`
	Name      string `json:"name"`
	Extension string `json:"extension"`
	Text      string `json:"text"`
}

// createFile creates a File under an existing folder, located by
// identifier, and links it via Folder_to_File.
func (c *Catalog) createFile(ctx context.Context, params json.RawMessage) (Response, error) {
	var p createFileParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	var view FileView
	err := c.backend.Update(ctx, func(tx storage.WriteTx) error {
		node, err := graph.CreateLinked(tx,
			graph.ByID(graph.KindFolder, graph.ID(p.FolderID)),
			graph.FileProps{
				Name:        p.Name,
				Extension:   p.Extension,
				Text:        p.Text,
				ExtractedAt: c.now().UTC(),
			},
			graph.EdgeFolderToFile, nil)
		if err != nil {
			return err
		}
		view = fileView(node)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return Response{"file": view}, nil
}
