// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package queries implements the fixed catalogue of named graph
// operations. Each operation takes a JSON parameter record, opens
// exactly one transaction against the storage backend (read-only for
// lookups, read-write for creates), and returns a response mapping its
// return-field name to the created or fetched object. Failures are
// typed errors from pkg/graph, never partial objects.
//
// Operations are registered in an explicit name -> handler map built
// at construction, so each catalogue entry is unit-testable without a
// dispatch framework.
package queries

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/kraklabs/codegraph/pkg/storage"
)

// Response maps a return-field name to the operation's result: a
// single object or an array, per operation.
type Response map[string]any

// Handler executes one catalogue operation.
type Handler func(ctx context.Context, params json.RawMessage) (Response, error)

// Catalog is the query catalogue bound to a storage backend.
type Catalog struct {
	backend  storage.Backend
	logger   *slog.Logger
	now      func() time.Time
	handlers map[string]Handler
}

// New builds the catalogue over the given backend. A nil logger uses
// slog.Default.
func New(backend storage.Backend, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Catalog{
		backend: backend,
		logger:  logger,
		now:     time.Now,
	}
	c.handlers = map[string]Handler{
		"createUser":          c.createUser,
		"getUser":             c.getUser,
		"getAllUsers":         c.getAllUsers,
		"createRepository":    c.createRepository,
		"getRepository":       c.getRepository,
		"getRepositoryById":   c.getRepositoryByID,
		"getUserRepositories": c.getUserRepositories,
		"createSuperFolder":   c.createSuperFolder,
		"createSubFolder":     c.createSubFolder,
		"createSuperFile":     c.createSuperFile,
		"createFile":          c.createFile,
		"createSuperEntity":   c.createSuperEntity,
		"createSubEntity":     c.createSubEntity,
		"embedSuperEntity":    c.embedSuperEntity,
	}
	return c
}

// Operations returns the registered operation names.
func (c *Catalog) Operations() []string {
	names := make([]string, 0, len(c.handlers))
	for name := range c.handlers {
		names = append(names, name)
	}
	return names
}

// Dispatch runs the named operation with the given JSON parameters.
// Unknown names fail without touching the store.
func (c *Catalog) Dispatch(ctx context.Context, name string, params json.RawMessage) (Response, error) {
	handler, ok := c.handlers[name]
	if !ok {
		return nil, fmt.Errorf("queries: unknown operation %q", name)
	}
	start := time.Now()
	resp, err := handler(ctx, params)
	if err != nil {
		c.logger.Debug("queries.dispatch.error", "op", name, "err", err)
		return nil, err
	}
	c.logger.Debug("queries.dispatch.ok", "op", name, "duration", time.Since(start))
	return resp, nil
}

func decode(params json.RawMessage, into any) error {
	if len(params) == 0 {
		params = json.RawMessage("{}")
	}
	if err := json.Unmarshal(params, into); err != nil {
		return fmt.Errorf("queries: bad parameters: %w", err)
	}
	return nil
}
