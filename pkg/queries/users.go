// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package queries

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kraklabs/codegraph/pkg/graph"
	"github.com/kraklabs/codegraph/pkg/storage"
)

type createUserParams struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

// createUser creates a User node. Username uniqueness is not enforced;
// two racing creates both succeed and later lookups surface the
// ambiguity (see DESIGN.md).
func (c *Catalog) createUser(ctx context.Context, params json.RawMessage) (Response, error) {
	var p createUserParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	var view UserView
	err := c.backend.Update(ctx, func(tx storage.WriteTx) error {
		node, err := tx.AddNode(graph.UserProps{
			Username:    p.Username,
			DisplayName: p.DisplayName,
			CreatedAt:   c.now().UTC(),
		})
		if err != nil {
			return err
		}
		view = userView(node)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return Response{"user": view}, nil
}

type getUserParams struct {
	Username string `json:"username"`
}

// getUser returns the single User with the given username. Zero
// matches fail with ErrNotFound, more than one with
// ErrMultipleMatches.
func (c *Catalog) getUser(ctx context.Context, params json.RawMessage) (Response, error) {
	var p getUserParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	var view UserView
	err := c.backend.View(ctx, func(tx storage.ReadTx) error {
		node, err := uniqueNode(tx, graph.KindUser, graph.Where("username", p.Username))
		if err != nil {
			return err
		}
		view = userView(node)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return Response{"user": view}, nil
}

// getAllUsers returns every User node in creation order.
func (c *Catalog) getAllUsers(ctx context.Context, params json.RawMessage) (Response, error) {
	var views []UserView
	err := c.backend.View(ctx, func(tx storage.ReadTx) error {
		nodes, err := tx.NodesByKind(graph.KindUser)
		if err != nil {
			return err
		}
		views = userViews(nodes)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return Response{"users": views}, nil
}

// uniqueNode performs the scan-and-filter lookup shared by the get*
// operations, requiring exactly one match.
func uniqueNode(tx storage.ReadTx, kind graph.Kind, filter graph.Filter) (*graph.Node, error) {
	nodes, err := tx.FindNodes(kind, filter)
	if err != nil {
		return nil, err
	}
	switch len(nodes) {
	case 0:
		return nil, fmt.Errorf("%w: no %s matches %v", graph.ErrNotFound, kind, filter)
	case 1:
		return nodes[0], nil
	default:
		return nil, fmt.Errorf("%w: %d %s nodes match %v", graph.ErrMultipleMatches, len(nodes), kind, filter)
	}
}

// nodeOfKind resolves an identifier and requires the node to be of the
// expected kind, so a wrong-kind identifier is NotFound rather than a
// failed type assertion downstream.
func nodeOfKind(tx storage.ReadTx, kind graph.Kind, id graph.ID) (*graph.Node, error) {
	node, err := tx.NodeByID(id)
	if err != nil {
		return nil, err
	}
	if node.Kind() != kind {
		return nil, fmt.Errorf("%w: id %s is a %s, not a %s", graph.ErrNotFound, id, node.Kind(), kind)
	}
	return node, nil
}
