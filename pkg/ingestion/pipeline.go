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

// Package ingestion fetches a repository from its hosting provider,
// decomposes each file into entities, and writes the resulting
// hierarchy through the query catalogue. The fetcher never calls the
// catalogue directly; the pipeline carries fetch output into catalogue
// parameters.
package ingestion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/kraklabs/codegraph/internal/contract"
	"github.com/kraklabs/codegraph/pkg/graph"
	"github.com/kraklabs/codegraph/pkg/queries"
)

// Fetcher is the hosting-provider read surface the pipeline consumes.
type Fetcher interface {
	ListFiles(ctx context.Context, repo string) ([]TreeEntry, error)
	ReadFile(ctx context.Context, repo, path string) (string, error)
}

// Options configures a Pipeline.
type Options struct {
	// IgnorePatterns are gitignore-style patterns; matching paths are
	// skipped.
	IgnorePatterns []string

	// FetchAttempts bounds per-file fetch attempts on transport
	// errors. Defaults to 3.
	FetchAttempts int

	// Embedder, when set, computes and attaches an embedding for
	// each root entity.
	Embedder EmbeddingProvider

	// Progress receives pipeline milestones. Nil callbacks are
	// skipped.
	Progress Progress

	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// Progress carries optional callbacks for observing a run: OnList
// fires once after the tree listing, OnFile as each listed file is
// taken up (whether it ends up ingested or skipped).
type Progress struct {
	OnList func(total int)
	OnFile func(path string)
}

// Pipeline drives a full repository ingestion.
type Pipeline struct {
	fetcher  Fetcher
	catalog  *queries.Catalog
	splitter Splitter
	embedder EmbeddingProvider
	matcher  *ignore.GitIgnore
	progress Progress
	logger   *slog.Logger
	attempts int
}

// NewPipeline builds an ingestion pipeline over a fetcher, the query
// catalogue, and a segmentation strategy.
func NewPipeline(fetcher Fetcher, catalog *queries.Catalog, splitter Splitter, opts Options) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	attempts := opts.FetchAttempts
	if attempts <= 0 {
		attempts = 3
	}
	var matcher *ignore.GitIgnore
	if len(opts.IgnorePatterns) > 0 {
		matcher = ignore.CompileIgnoreLines(opts.IgnorePatterns...)
	}
	return &Pipeline{
		fetcher:  fetcher,
		catalog:  catalog,
		splitter: splitter,
		embedder: opts.Embedder,
		matcher:  matcher,
		progress: opts.Progress,
		logger:   logger,
		attempts: attempts,
	}
}

// Result summarizes an ingestion run.
type Result struct {
	RepositoryID string `json:"repository_id"`
	FilesListed  int    `json:"files_listed"`
	FilesLoaded  int    `json:"files_loaded"`
	FilesSkipped int    `json:"files_skipped"`
	Folders      int    `json:"folders"`
	Entities     int    `json:"entities"`
	SubEntities  int    `json:"sub_entities"`
	Embedded     int    `json:"embedded"`
}

// Run ingests owner/name: ensures the user exists, creates the
// repository, then walks the tree creating folders, files, entities,
// and (optionally) embeddings through the catalogue. Each catalogue
// call is its own transaction; a file that fails to fetch after the
// bounded retries is skipped, not fatal.
func (p *Pipeline) Run(ctx context.Context, owner, name, description string) (*Result, error) {
	start := time.Now()
	defer func() { observeTotal(time.Since(start).Seconds()) }()

	repo := owner + "/" + name
	p.logger.Info("ingestion.run.start", "repo", repo)

	if err := p.ensureUser(ctx, owner); err != nil {
		return nil, err
	}

	repoView, err := p.ensureRepository(ctx, owner, name, description)
	if err != nil {
		return nil, err
	}

	entries, err := p.fetcher.ListFiles(ctx, repo)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	recordFilesListed(len(entries))
	if p.progress.OnList != nil {
		p.progress.OnList(len(entries))
	}

	result := &Result{RepositoryID: repoView.ID, FilesListed: len(entries)}
	folders := map[string]string{} // directory path -> folder node ID

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if p.progress.OnFile != nil {
			p.progress.OnFile(entry.Path)
		}
		if p.matcher != nil && p.matcher.MatchesPath(entry.Path) {
			recordFileSkipped()
			result.FilesSkipped++
			continue
		}

		text, err := p.fetchWithRetry(ctx, repo, entry.Path)
		if err != nil {
			p.logger.Warn("ingestion.fetch.skip", "path", entry.Path, "err", err)
			recordFileSkipped()
			result.FilesSkipped++
			continue
		}
		if check := contract.ValidateFileText(text); !check.OK {
			p.logger.Warn("ingestion.fetch.skip", "path", entry.Path, "reason", check.Message)
			recordFileSkipped()
			result.FilesSkipped++
			continue
		}
		recordFileFetched()

		if err := p.ingestFile(ctx, owner, name, entry.Path, text, folders, result); err != nil {
			return nil, fmt.Errorf("ingest %s: %w", entry.Path, err)
		}
		result.FilesLoaded++
	}

	result.Folders = len(folders)
	p.logger.Info("ingestion.run.done",
		"repo", repo,
		"files", result.FilesLoaded,
		"entities", result.Entities,
		"embedded", result.Embedded,
		"duration", time.Since(start),
	)
	return result, nil
}

// ensureUser creates the owner's User node unless one already exists.
// An ambiguous username is surfaced, not papered over.
func (p *Pipeline) ensureUser(ctx context.Context, username string) error {
	_, err := p.call(ctx, "getUser", map[string]any{"username": username})
	if err == nil {
		return nil
	}
	if !errors.Is(err, graph.ErrNotFound) {
		return fmt.Errorf("look up user %s: %w", username, err)
	}
	_, err = p.call(ctx, "createUser", map[string]any{
		"username":     username,
		"display_name": username,
	})
	if err != nil {
		return fmt.Errorf("create user %s: %w", username, err)
	}
	return nil
}

// ensureRepository returns the repository node for owner/name,
// creating it when absent. Per-file catalogue operations locate the
// repository by (owner, name), so a rerun must reuse the existing node
// rather than create a second one and make that lookup ambiguous.
func (p *Pipeline) ensureRepository(ctx context.Context, owner, name, description string) (queries.RepositoryView, error) {
	resp, err := p.call(ctx, "getRepository", map[string]any{
		"owner":     owner,
		"repo_name": name,
	})
	if err == nil {
		return resp["repo"].(queries.RepositoryView), nil
	}
	if !errors.Is(err, graph.ErrNotFound) {
		return queries.RepositoryView{}, fmt.Errorf("look up repository %s/%s: %w", owner, name, err)
	}
	resp, err = p.call(ctx, "createRepository", map[string]any{
		"username":    owner,
		"repo_name":   name,
		"full_name":   owner + "/" + name,
		"description": description,
	})
	if err != nil {
		return queries.RepositoryView{}, fmt.Errorf("create repository: %w", err)
	}
	return resp["repo"].(queries.RepositoryView), nil
}

// ingestFile creates the folder chain, the file node, and the entity
// tree for one fetched file.
func (p *Pipeline) ingestFile(ctx context.Context, owner, repoName, filePath, text string, folders map[string]string, result *Result) error {
	dir, base := path.Split(filePath)
	dir = strings.TrimSuffix(dir, "/")

	folderID, err := p.ensureFolders(ctx, owner, repoName, dir, folders)
	if err != nil {
		return err
	}

	writeStart := time.Now()
	var fileResp queries.Response
	if folderID == "" {
		fileResp, err = p.call(ctx, "createSuperFile", map[string]any{
			"owner":     owner,
			"repo_name": repoName,
			"file_name": base,
			"extension": fileExtension(base),
			"text":      text,
		})
	} else {
		fileResp, err = p.call(ctx, "createFile", map[string]any{
			"folder_id": folderID,
			"name":      base,
			"extension": fileExtension(base),
			"text":      text,
		})
	}
	if err != nil {
		return err
	}
	recordFileCreated()
	observeWrite(time.Since(writeStart).Seconds())
	fileView := fileResp["file"].(queries.FileView)

	return p.ingestEntities(ctx, fileView.ID, filePath, text, result)
}

// ensureFolders creates the folder chain for dir and returns the leaf
// folder's ID, or "" for files at the repository root. Created IDs are
// cached so each directory node exists once per run.
func (p *Pipeline) ensureFolders(ctx context.Context, owner, repoName, dir string, folders map[string]string) (string, error) {
	if dir == "" {
		return "", nil
	}
	if id, ok := folders[dir]; ok {
		return id, nil
	}

	parts := strings.Split(dir, "/")
	var prefix string
	var parentID string
	for _, part := range parts {
		if prefix == "" {
			prefix = part
		} else {
			prefix = prefix + "/" + part
		}
		if id, ok := folders[prefix]; ok {
			parentID = id
			continue
		}

		var resp queries.Response
		var err error
		var field string
		if parentID == "" {
			field = "folder"
			resp, err = p.call(ctx, "createSuperFolder", map[string]any{
				"owner":       owner,
				"repo_name":   repoName,
				"folder_name": part,
			})
		} else {
			field = "subfolder"
			resp, err = p.call(ctx, "createSubFolder", map[string]any{
				"folder_id": parentID,
				"name":      part,
			})
		}
		if err != nil {
			return "", fmt.Errorf("create folder %s: %w", prefix, err)
		}
		recordFolderCreated()
		view := resp[field].(queries.FolderView)
		folders[prefix] = view.ID
		parentID = view.ID
	}
	return parentID, nil
}

// ingestEntities decomposes the file text and creates the entity tree:
// root entities under the file, one level of sub-entities under each
// root, and an embedding per root entity when a provider is set.
func (p *Pipeline) ingestEntities(ctx context.Context, fileID, filePath, text string, result *Result) error {
	decomposeStart := time.Now()
	spans, err := p.splitter.Split(filePath, text)
	if err != nil {
		p.logger.Warn("ingestion.split.skip", "path", filePath, "err", err)
		return nil
	}

	// Decompose requires ascending start order, so the splitter's
	// spans are sorted first; roots[i] then corresponds to ordered[i].
	ordered := orderSpans(spans)
	segments := make([]graph.Segment, len(ordered))
	for i, s := range ordered {
		segments[i] = graph.Segment{EntityType: s.EntityType, StartByte: s.StartByte, EndByte: s.EndByte}
	}
	now := time.Now().UTC()
	roots, err := graph.Decompose(text, segments, now)
	if err != nil {
		return err
	}
	observeDecompose(time.Since(decomposeStart).Seconds())

	for i, props := range roots {
		resp, err := p.call(ctx, "createSuperEntity", map[string]any{
			"file_id":     fileID,
			"entity_type": props.EntityType,
			"start_byte":  props.StartByte,
			"end_byte":    props.EndByte,
			"order":       props.Order,
			"text":        props.Text,
		})
		if err != nil {
			return err
		}
		recordEntitiesCreated(1)
		result.Entities++
		entityView := resp["entity"].(queries.EntityView)

		if err := p.ingestChildren(ctx, entityView.ID, props, ordered[i].Children, result); err != nil {
			return err
		}
		if p.embedder != nil {
			if err := p.embedEntity(ctx, entityView.ID, props.Text, result); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Pipeline) ingestChildren(ctx context.Context, parentID string, parent graph.EntityProps, children []Span, result *Result) error {
	if len(children) == 0 {
		return nil
	}
	ordered := orderSpans(children)
	segments := make([]graph.Segment, len(ordered))
	for i, s := range ordered {
		segments[i] = graph.Segment{EntityType: s.EntityType, StartByte: s.StartByte, EndByte: s.EndByte}
	}
	subs, err := graph.DecomposeChild(parent, segments)
	if err != nil {
		return err
	}
	for _, props := range subs {
		if _, err := p.call(ctx, "createSubEntity", map[string]any{
			"entity_id":   parentID,
			"entity_type": props.EntityType,
			"start_byte":  props.StartByte,
			"end_byte":    props.EndByte,
			"order":       props.Order,
			"text":        props.Text,
		}); err != nil {
			return err
		}
		recordSubEntitiesCreated(1)
		result.SubEntities++
	}
	return nil
}

func (p *Pipeline) embedEntity(ctx context.Context, entityID, text string, result *Result) error {
	vector, err := p.embedder.Embed(ctx, text)
	if err != nil {
		// Embedding is best effort; the entity itself is already
		// committed.
		recordEmbedError()
		p.logger.Warn("ingestion.embed.skip", "entity", entityID, "err", err)
		return nil
	}
	if _, err := p.call(ctx, "embedSuperEntity", map[string]any{
		"entity_id": entityID,
		"vector":    vector,
	}); err != nil {
		return err
	}
	recordEmbedComputed()
	result.Embedded++
	return nil
}

// fetchWithRetry retries only on TransportError, with a short linear
// backoff. Every other failure category is permanent for the file.
func (p *Pipeline) fetchWithRetry(ctx context.Context, repo, filePath string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= p.attempts; attempt++ {
		fetchStart := time.Now()
		text, err := p.fetcher.ReadFile(ctx, repo, filePath)
		observeFetch(time.Since(fetchStart).Seconds())
		if err == nil {
			return text, nil
		}
		lastErr = err

		var te *TransportError
		if !errors.As(err, &te) {
			return "", err
		}
		if attempt < p.attempts {
			recordFetchRetry()
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(attempt) * 200 * time.Millisecond):
			}
		}
	}
	recordFetchError()
	return "", lastErr
}

// orderSpans returns the spans in the ascending start order the
// decomposer requires, without mutating the input.
func orderSpans(spans []Span) []Span {
	ordered := make([]Span, len(spans))
	copy(ordered, spans)
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && ordered[j].StartByte < ordered[j-1].StartByte; j-- {
			ordered[j], ordered[j-1] = ordered[j-1], ordered[j]
		}
	}
	return ordered
}

func (p *Pipeline) call(ctx context.Context, op string, params any) (queries.Response, error) {
	raw, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("marshal %s params: %w", op, err)
	}
	return p.catalog.Dispatch(ctx, op, raw)
}
