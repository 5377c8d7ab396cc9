package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"kombo/internal/domain"
)

// SnapshotVersion defines a package constant value.
const SnapshotVersion = "kombo.combolist.v1"

// Snapshot is the on-disk JSON form of the whole combo library. The same shape
// backs the combo file and the export/import commands.
type Snapshot struct {
	Version    string          `json:"version"`
	ExportedAt time.Time       `json:"exported_at"`
	Combos     []SnapshotCombo `json:"combos"`
}

// SnapshotCombo represents one persisted combo row.
type SnapshotCombo struct {
	ID         string    `json:"id"`
	Keyword    string    `json:"keyword"`
	Name       string    `json:"name"`
	Snippet    string    `json:"snippet"`
	Enabled    bool      `json:"enabled"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

// ExportSnapshot returns the current combo list as a versioned snapshot.
func (m *Manager) ExportSnapshot() Snapshot {
	combos := m.Combos()
	out := make([]SnapshotCombo, 0, len(combos))
	for _, c := range combos {
		out = append(out, SnapshotCombo{
			ID:         c.ID,
			Keyword:    c.Keyword,
			Name:       c.Name,
			Snippet:    c.Snippet,
			Enabled:    c.Enabled,
			CreatedAt:  c.CreatedAt,
			ModifiedAt: c.ModifiedAt,
		})
	}
	return Snapshot{
		Version:    SnapshotVersion,
		ExportedAt: m.clock().UTC(),
		Combos:     out,
	}
}

// ImportSnapshot replaces the combo list with the snapshot contents,
// preserving snapshot order as the new internal order.
func (m *Manager) ImportSnapshot(snap Snapshot) error {
	if snap.Version != "" && snap.Version != SnapshotVersion {
		return fmt.Errorf("unsupported snapshot version %q", snap.Version)
	}
	combos := make([]domain.Combo, 0, len(snap.Combos))
	for i, sc := range snap.Combos {
		c, err := domain.NewCombo(domain.ComboInput{
			ID:      sc.ID,
			Keyword: sc.Keyword,
			Name:    sc.Name,
			Snippet: sc.Snippet,
			Enabled: &sc.Enabled,
		}, sc.CreatedAt)
		if err != nil {
			return fmt.Errorf("snapshot combo %d: %w", i, err)
		}
		if !sc.ModifiedAt.IsZero() {
			c.ModifiedAt = sc.ModifiedAt.UTC()
		}
		combos = append(combos, c)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.list.Replace(combos)
	return nil
}

// SaveComboList writes the combo list to the configured combo file. The write
// goes through a temp file and rename so a failed save never truncates the
// previous file. On failure the in-memory list keeps its mutated state; the
// caller decides how to report it.
func (m *Manager) SaveComboList() error {
	if m.comboFile == "" {
		return errors.New("combo file path is not configured")
	}
	snap := m.ExportSnapshot()
	encoded, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode combo list: %w", err)
	}
	encoded = append(encoded, '\n')

	dir := filepath.Dir(m.comboFile)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create combo dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".combolist-*.json")
	if err != nil {
		return fmt.Errorf("create combo temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(encoded); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write combo file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close combo temp file: %w", err)
	}
	if err := os.Rename(tmpName, m.comboFile); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace combo file: %w", err)
	}
	return nil
}

// LoadComboList reads the combo file into the list. A missing file yields an
// empty list: first run is not an error.
func (m *Manager) LoadComboList() error {
	if m.comboFile == "" {
		return errors.New("combo file path is not configured")
	}
	content, err := os.ReadFile(m.comboFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			m.mu.Lock()
			defer m.mu.Unlock()
			m.list.Replace(nil)
			return nil
		}
		return fmt.Errorf("read combo file: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(content, &snap); err != nil {
		return fmt.Errorf("decode combo file: %w", err)
	}
	if err := m.ImportSnapshot(snap); err != nil {
		return fmt.Errorf("load combo file: %w", err)
	}
	return nil
}
