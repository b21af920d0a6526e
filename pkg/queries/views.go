// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package queries

import (
	"time"

	"github.com/kraklabs/codegraph/pkg/graph"
)

// JSON views of graph nodes as returned by catalogue operations. Every
// view carries the storage-assigned identifier alongside the node's
// properties.

type UserView struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

type RepositoryView struct {
	ID          string    `json:"id"`
	Owner       string    `json:"owner"`
	Name        string    `json:"name"`
	FullName    string    `json:"full_name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	ExtractedAt time.Time `json:"extracted_at"`
}

type FolderView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ExtractedAt time.Time `json:"extracted_at"`
}

type FileView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Extension   string    `json:"extension"`
	Text        string    `json:"text"`
	ExtractedAt time.Time `json:"extracted_at"`
}

type EntityView struct {
	ID          string    `json:"id"`
	EntityType  string    `json:"entity_type"`
	StartByte   int64     `json:"start_byte"`
	EndByte     int64     `json:"end_byte"`
	Order       int64     `json:"order"`
	Text        string    `json:"text"`
	ExtractedAt time.Time `json:"extracted_at"`
}

type EmbeddedCodeView struct {
	ID     string    `json:"id"`
	Vector []float64 `json:"vector"`
}

func userView(n *graph.Node) UserView {
	p := n.Props.(graph.UserProps)
	return UserView{
		ID:          string(n.ID),
		Username:    p.Username,
		DisplayName: p.DisplayName,
		CreatedAt:   p.CreatedAt,
	}
}

func repositoryView(n *graph.Node) RepositoryView {
	p := n.Props.(graph.RepositoryProps)
	return RepositoryView{
		ID:          string(n.ID),
		Owner:       p.Owner,
		Name:        p.Name,
		FullName:    p.FullName,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		ExtractedAt: p.ExtractedAt,
	}
}

func folderView(n *graph.Node) FolderView {
	p := n.Props.(graph.FolderProps)
	return FolderView{
		ID:          string(n.ID),
		Name:        p.Name,
		ExtractedAt: p.ExtractedAt,
	}
}

func fileView(n *graph.Node) FileView {
	p := n.Props.(graph.FileProps)
	return FileView{
		ID:          string(n.ID),
		Name:        p.Name,
		Extension:   p.Extension,
		Text:        p.Text,
		ExtractedAt: p.ExtractedAt,
	}
}

func entityView(n *graph.Node) EntityView {
	p := n.Props.(graph.EntityProps)
	return EntityView{
		ID:          string(n.ID),
		EntityType:  p.EntityType,
		StartByte:   p.StartByte,
		EndByte:     p.EndByte,
		Order:       p.Order,
		Text:        p.Text,
		ExtractedAt: p.ExtractedAt,
	}
}

func embeddedCodeView(n *graph.Node) EmbeddedCodeView {
	p := n.Props.(graph.EmbeddedCodeProps)
	return EmbeddedCodeView{
		ID:     string(n.ID),
		Vector: p.Vector,
	}
}

func repositoryViews(nodes []*graph.Node) []RepositoryView {
	views := make([]RepositoryView, 0, len(nodes))
	for _, n := range nodes {
		views = append(views, repositoryView(n))
	}
	return views
}

func userViews(nodes []*graph.Node) []UserView {
	views := make([]UserView, 0, len(nodes))
	for _, n := range nodes {
		views = append(views, userView(n))
	}
	return views
}
