package common

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kombo/internal/app"
	"kombo/internal/domain"
	"kombo/internal/snippet"
)

// AppServiceAdapter exposes one app.Manager as the shared ComboService. Every
// mutation persists the combo list before returning; a failed write surfaces
// as an error while the in-memory change stays applied.
type AppServiceAdapter struct {
	mgr *app.Manager
}

// NewAppServiceAdapter constructs the adapter around the combo manager.
func NewAppServiceAdapter(mgr *app.Manager) *AppServiceAdapter {
	return &AppServiceAdapter{mgr: mgr}
}

// ListCombos returns every combo in internal order.
func (a *AppServiceAdapter) ListCombos(_ context.Context) ([]ComboView, error) {
	combos := a.mgr.Combos()
	out := make([]ComboView, 0, len(combos))
	for _, c := range combos {
		out = append(out, viewFromCombo(c))
	}
	return out, nil
}

// GetCombo returns the combo with the given ID.
func (a *AppServiceAdapter) GetCombo(_ context.Context, id string) (ComboView, error) {
	combo, err := a.comboByID(id)
	if err != nil {
		return ComboView{}, err
	}
	return viewFromCombo(combo), nil
}

// CreateCombo appends a new combo and persists the list.
func (a *AppServiceAdapter) CreateCombo(_ context.Context, req CreateComboRequest) (ComboView, error) {
	combo, err := a.mgr.NewCombo(req.Keyword, req.Name, req.Snippet)
	if err != nil {
		return ComboView{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	if req.Enabled != nil {
		combo.Enabled = *req.Enabled
	}
	a.mgr.Append(combo)
	if err := a.mgr.SaveComboList(); err != nil {
		return ComboView{}, fmt.Errorf("save combo list: %w", err)
	}
	return viewFromCombo(combo), nil
}

// UpdateCombo replaces the editable fields of one combo and persists the list.
func (a *AppServiceAdapter) UpdateCombo(_ context.Context, id string, req UpdateComboRequest) (ComboView, error) {
	index, ok := a.mgr.IndexOf(id)
	if !ok {
		return ComboView{}, ErrNotFound
	}
	combo, err := a.mgr.Update(index, req.Keyword, req.Name, req.Snippet, req.Enabled)
	if err != nil {
		if errors.Is(err, domain.ErrIndexOutOfRange) {
			return ComboView{}, ErrNotFound
		}
		return ComboView{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	if err := a.mgr.SaveComboList(); err != nil {
		return ComboView{}, fmt.Errorf("save combo list: %w", err)
	}
	return viewFromCombo(combo), nil
}

// DeleteCombo removes one combo and persists the list.
func (a *AppServiceAdapter) DeleteCombo(_ context.Context, id string) error {
	index, ok := a.mgr.IndexOf(id)
	if !ok {
		return ErrNotFound
	}
	if err := a.mgr.Erase(index); err != nil {
		return fmt.Errorf("erase combo: %w", err)
	}
	if err := a.mgr.SaveComboList(); err != nil {
		return fmt.Errorf("save combo list: %w", err)
	}
	return nil
}

// RenderCombo renders the snippet of the enabled combo with the given
// keyword. Interactive input variables stay unexpanded, since there is nobody
// to prompt on this surface.
func (a *AppServiceAdapter) RenderCombo(_ context.Context, keyword string) (RenderResult, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return RenderResult{}, fmt.Errorf("%w: keyword is required", ErrValidation)
	}
	combo, ok := a.mgr.FindByKeyword(keyword)
	if !ok {
		return RenderResult{}, ErrNotFound
	}
	env := snippet.Env{
		LookupCombo: func(name string) (string, bool) {
			ref, found := a.mgr.FindByKeyword(name)
			if !found {
				return "", false
			}
			return ref.Snippet, true
		},
		Prompt: func(description string) (string, bool) {
			return "#{input:" + description + "}", true
		},
	}
	rendered, err := snippet.Render(combo.Snippet, env)
	if err != nil {
		return RenderResult{}, fmt.Errorf("render snippet: %w", err)
	}
	return RenderResult{Keyword: combo.Keyword, Rendered: rendered}, nil
}

func (a *AppServiceAdapter) comboByID(id string) (domain.Combo, error) {
	index, ok := a.mgr.IndexOf(id)
	if !ok {
		return domain.Combo{}, ErrNotFound
	}
	combo, err := a.mgr.At(index)
	if err != nil {
		return domain.Combo{}, ErrNotFound
	}
	return combo, nil
}

func viewFromCombo(c domain.Combo) ComboView {
	return ComboView{
		ID:         c.ID,
		Keyword:    c.Keyword,
		Name:       c.Name,
		Snippet:    c.Snippet,
		Enabled:    c.Enabled,
		CreatedAt:  c.CreatedAt,
		ModifiedAt: c.ModifiedAt,
	}
}
