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

type createSuperEntityParams struct {
	FileID     string `json:"file_id"`
	EntityType string `json:"entity_type"`
	StartByte  int64  `json:"start_byte"`
	EndByte    int64  `json:"end_byte"`
	Order      int64  `json:"order"`
	Text       string `json:"text"`
}

// createSuperEntity creates a root Entity under an existing file and
// links it via File_to_Entity. The caller supplies order and range as
// produced by a decomposition; record-level validation (range shape,
// text length) happens at node construction.
func (c *Catalog) createSuperEntity(ctx context.Context, params json.RawMessage) (Response, error) {
	var p createSuperEntityParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	var view EntityView
	err := c.backend.Update(ctx, func(tx storage.WriteTx) error {
		node, err := graph.CreateLinked(tx,
			graph.ByID(graph.KindFile, graph.ID(p.FileID)),
			graph.EntityProps{
				EntityType:  p.EntityType,
				StartByte:   p.StartByte,
				EndByte:     p.EndByte,
				Order:       p.Order,
				Text:        p.Text,
				ExtractedAt: c.now().UTC(),
			},
			graph.EdgeFileToEntity, nil)
		if err != nil {
			return err
		}
		view = entityView(node)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return Response{"entity": view}, nil
}

type createSubEntityParams struct {
	EntityID   string `json:"entity_id"`
	EntityType string `json:"entity_type"`
	StartByte  int64  `json:"start_byte"`
	EndByte    int64  `json:"end_byte"`
	Order      int64  `json:"order"`
	Text       string `json:"text"`
}

// createSubEntity creates an Entity nested under an existing entity
// and links it via Entity_to_Entity.
func (c *Catalog) createSubEntity(ctx context.Context, params json.RawMessage) (Response, error) {
	var p createSubEntityParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	var view EntityView
	err := c.backend.Update(ctx, func(tx storage.WriteTx) error {
		node, err := graph.CreateLinked(tx,
			graph.ByID(graph.KindEntity, graph.ID(p.EntityID)),
			graph.EntityProps{
				EntityType:  p.EntityType,
				StartByte:   p.StartByte,
				EndByte:     p.EndByte,
				Order:       p.Order,
				Text:        p.Text,
				ExtractedAt: c.now().UTC(),
			},
			graph.EdgeEntityToEntity, nil)
		if err != nil {
			return err
		}
		view = entityView(node)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return Response{"entity": view}, nil
}

type embedSuperEntityParams struct {
	EntityID string    `json:"entity_id"`
	Vector   []float64 `json:"vector"`
}

// embedSuperEntity attaches a pre-computed embedding to an existing
// entity: one EmbeddedCode node plus one Entity_to_EmbeddedCode edge,
// in one transaction. Earlier embeddings of the same entity are
// retained untouched; the storage engine may reject the vector with
// ErrDimensionMismatch.
func (c *Catalog) embedSuperEntity(ctx context.Context, params json.RawMessage) (Response, error) {
	var p embedSuperEntityParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	var view EmbeddedCodeView
	err := c.backend.Update(ctx, func(tx storage.WriteTx) error {
		entity, err := nodeOfKind(tx, graph.KindEntity, graph.ID(p.EntityID))
		if err != nil {
			return err
		}
		node, err := tx.AddNode(graph.EmbeddedCodeProps{Vector: p.Vector})
		if err != nil {
			return err
		}
		if _, err := tx.AddEdge(graph.EdgeEntityToEmbeddedCode, entity.ID, node.ID, nil); err != nil {
			return err
		}
		view = embeddedCodeView(node)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return Response{"embedded_code": view}, nil
}
