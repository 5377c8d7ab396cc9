package domain

import (
	"strings"
	"time"
)

// Combo is one text-substitution rule: typing the keyword triggers the snippet.
type Combo struct {
	ID         string
	Keyword    string
	Name       string
	Snippet    string
	Enabled    bool
	CreatedAt  time.Time
	ModifiedAt time.Time
}

// ComboInput carries the caller-supplied fields for a new combo.
type ComboInput struct {
	ID      string
	Keyword string
	Name    string
	Snippet string
	Enabled *bool
}

// NewCombo validates the input and returns a combo with both timestamps set to now.
func NewCombo(in ComboInput, now time.Time) (Combo, error) {
	in.ID = strings.TrimSpace(in.ID)
	in.Keyword = strings.TrimSpace(in.Keyword)
	in.Name = strings.TrimSpace(in.Name)

	if in.ID == "" {
		return Combo{}, ErrInvalidID
	}
	if in.Keyword == "" || strings.ContainsAny(in.Keyword, " \t\n") {
		return Combo{}, ErrInvalidKeyword
	}
	if in.Name == "" {
		in.Name = in.Keyword
	}

	enabled := true
	if in.Enabled != nil {
		enabled = *in.Enabled
	}

	ts := now.UTC()
	return Combo{
		ID:         in.ID,
		Keyword:    in.Keyword,
		Name:       in.Name,
		Snippet:    in.Snippet,
		Enabled:    enabled,
		CreatedAt:  ts,
		ModifiedAt: ts,
	}, nil
}

// Duplicate returns a copy of the combo under a fresh identity. The keyword is
// kept as-is; callers are expected to edit the clone before it goes live.
func (c Combo) Duplicate(id string, now time.Time) (Combo, error) {
	return NewCombo(ComboInput{
		ID:      id,
		Keyword: c.Keyword,
		Name:    c.Name + " (copy)",
		Snippet: c.Snippet,
		Enabled: &c.Enabled,
	}, now)
}

// UpdateDetails replaces the editable fields and bumps ModifiedAt.
func (c *Combo) UpdateDetails(keyword, name, snippet string, enabled bool, now time.Time) error {
	keyword = strings.TrimSpace(keyword)
	name = strings.TrimSpace(name)
	if keyword == "" || strings.ContainsAny(keyword, " \t\n") {
		return ErrInvalidKeyword
	}
	if name == "" {
		name = keyword
	}
	c.Keyword = keyword
	c.Name = name
	c.Snippet = snippet
	c.Enabled = enabled
	c.ModifiedAt = now.UTC()
	return nil
}

// MarkEdited bumps ModifiedAt without touching any other field.
func (c *Combo) MarkEdited(now time.Time) {
	c.ModifiedAt = now.UTC()
}
