// Package common defines the service surface shared by the REST and MCP
// transports.
package common

import (
	"context"
	"errors"
	"time"
)

// Service errors mapped to transport-level failures.
var (
	ErrNotFound   = errors.New("combo not found")
	ErrValidation = errors.New("invalid combo input")
)

// ComboView is the transport representation of one combo.
type ComboView struct {
	ID         string    `json:"id"`
	Keyword    string    `json:"keyword"`
	Name       string    `json:"name"`
	Snippet    string    `json:"snippet"`
	Enabled    bool      `json:"enabled"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

// CreateComboRequest carries the fields for one combo creation.
type CreateComboRequest struct {
	Keyword string `json:"keyword"`
	Name    string `json:"name"`
	Snippet string `json:"snippet"`
	Enabled *bool  `json:"enabled,omitempty"`
}

// UpdateComboRequest carries the replacement fields for one combo update.
type UpdateComboRequest struct {
	Keyword string `json:"keyword"`
	Name    string `json:"name"`
	Snippet string `json:"snippet"`
	Enabled bool   `json:"enabled"`
}

// RenderResult carries one rendered snippet.
type RenderResult struct {
	Keyword  string `json:"keyword"`
	Rendered string `json:"rendered"`
}

// ComboService exposes the combo list to serve-mode transports.
type ComboService interface {
	ListCombos(ctx context.Context) ([]ComboView, error)
	GetCombo(ctx context.Context, id string) (ComboView, error)
	CreateCombo(ctx context.Context, req CreateComboRequest) (ComboView, error)
	UpdateCombo(ctx context.Context, id string, req UpdateComboRequest) (ComboView, error)
	DeleteCombo(ctx context.Context, id string) error
	RenderCombo(ctx context.Context, keyword string) (RenderResult, error)
}
