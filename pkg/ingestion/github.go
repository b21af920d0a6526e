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

package ingestion

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

// Fetch failure taxonomy. TransportError is the only retryable
// category; the fetcher itself never retries, that is the ingestion
// driver's decision.
var (
	// ErrProtocol reports a response that cannot be parsed into the
	// expected tree or content schema.
	ErrProtocol = errors.New("ingestion: protocol error")

	// ErrUnsupportedEncoding reports a content encoding other than
	// base64.
	ErrUnsupportedEncoding = errors.New("ingestion: unsupported encoding")

	// ErrDecode reports base64 content that fails to decode.
	ErrDecode = errors.New("ingestion: decode error")

	// ErrEncoding reports decoded bytes that are not valid UTF-8 text.
	ErrEncoding = errors.New("ingestion: encoding error")
)

// TransportError reports a non-2xx status or a network failure from
// the hosting provider. Status is 0 when the request never completed.
type TransportError struct {
	URL    string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("ingestion: transport error: %s returned %d", e.URL, e.Status)
	}
	return fmt.Sprintf("ingestion: transport error: %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// TreeEntry is one item of a recursive repository tree listing.
type TreeEntry struct {
	Path string `json:"path"`
	Type string `json:"type"` // "blob" for file, "tree" for directory
}

// Client fetches repository trees and file contents from the GitHub
// REST API. The token is read-only configuration; callers bound each
// call with the context.
type Client struct {
	// BaseURL defaults to the public GitHub API.
	BaseURL string

	// Token authenticates requests as a bearer token.
	Token string

	// HTTPClient defaults to a client with a 30 second timeout.
	HTTPClient *http.Client

	// UserAgent is required by the GitHub API.
	UserAgent string
}

// NewClient creates a fetcher for the public GitHub API.
func NewClient(token string) *Client {
	return &Client{
		BaseURL:    "https://api.github.com",
		Token:      token,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		UserAgent:  "codegraph-indexer",
	}
}

type gitTree struct {
	Tree []TreeEntry `json:"tree"`
}

type fileContent struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// ListFiles performs a recursive tree listing of the repository's main
// branch and returns only the blob entries, preserving the provider's
// order. repo is "owner/name".
func (c *Client) ListFiles(ctx context.Context, repo string) ([]TreeEntry, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/git/trees/main?recursive=1", c.BaseURL, repo)
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var tree gitTree
	if err := json.Unmarshal(body, &tree); err != nil {
		return nil, fmt.Errorf("%w: tree listing for %s: %v", ErrProtocol, repo, err)
	}
	if tree.Tree == nil {
		return nil, fmt.Errorf("%w: tree listing for %s has no tree field", ErrProtocol, repo)
	}

	files := make([]TreeEntry, 0, len(tree.Tree))
	for _, item := range tree.Tree {
		if item.Type == "blob" {
			files = append(files, item)
		}
	}
	return files, nil
}

// ReadFile fetches one file's content and decodes it. The provider
// must report base64 encoding; embedded newlines are stripped before
// decoding and the decoded bytes must be valid UTF-8.
func (c *Client) ReadFile(ctx context.Context, repo, path string) (string, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/contents/%s", c.BaseURL, repo, escapePath(path))
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return "", err
	}

	var content fileContent
	if err := json.Unmarshal(body, &content); err != nil {
		return "", fmt.Errorf("%w: content of %s: %v", ErrProtocol, path, err)
	}
	if content.Encoding != "base64" {
		return "", fmt.Errorf("%w: %q for %s", ErrUnsupportedEncoding, content.Encoding, path)
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(content.Content, "\n", ""))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}
	if !utf8.Valid(decoded) {
		return "", fmt.Errorf("%w: %s is not valid UTF-8", ErrEncoding, path)
	}
	return string(decoded), nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &TransportError{URL: endpoint, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &TransportError{URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: endpoint, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{URL: endpoint, Status: resp.StatusCode}
	}
	return body, nil
}

// escapePath escapes each path segment without touching separators.
func escapePath(path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
