package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default("/tmp/combos.json")
	if cfg.Combos.Path != "/tmp/combos.json" {
		t.Fatalf("unexpected combos path %q", cfg.Combos.Path)
	}
	if cfg.Table.SortColumn != ColumnKeyword {
		t.Fatalf("unexpected sort column %q", cfg.Table.SortColumn)
	}
	if cfg.Table.SortOrder != SortAscending {
		t.Fatalf("unexpected sort order %q", cfg.Table.SortOrder)
	}
	if !cfg.Table.ConfirmDelete {
		t.Fatal("expected delete confirmation enabled by default")
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging level %q", cfg.Logging.Level)
	}
	if cfg.Server.Addr != "127.0.0.1:7370" {
		t.Fatalf("unexpected server addr %q", cfg.Server.Addr)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	defaults := Default("/tmp/combos.json")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"), defaults)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Combos.Path != defaults.Combos.Path {
		t.Fatalf("expected default combos path, got %q", cfg.Combos.Path)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[combos]
path = "/custom/combos.json"

[table]
sort_column = "name"
sort_order = "descending"
confirm_delete = false
show_snippet = true

[logging]
level = "debug"
file = "/tmp/kombo.log"

[server]
addr = "0.0.0.0:9000"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(path, Default("/tmp/default.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Combos.Path != "/custom/combos.json" {
		t.Fatalf("unexpected combos path %q", cfg.Combos.Path)
	}
	if cfg.Table.SortColumn != ColumnName {
		t.Fatalf("unexpected sort column %q", cfg.Table.SortColumn)
	}
	if cfg.Table.SortOrder != SortDescending {
		t.Fatalf("unexpected sort order %q", cfg.Table.SortOrder)
	}
	if cfg.Table.ConfirmDelete {
		t.Fatal("expected delete confirmation disabled from override")
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging level %q", cfg.Logging.Level)
	}
	if cfg.Logging.File != "/tmp/kombo.log" {
		t.Fatalf("unexpected logging file %q", cfg.Logging.File)
	}
	if cfg.Server.Addr != "0.0.0.0:9000" {
		t.Fatalf("unexpected server addr %q", cfg.Server.Addr)
	}
}

func TestLoadRejectsInvalidSortColumn(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[combos]
path = "/custom/combos.json"

[table]
sort_column = "color"
sort_order = "ascending"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := Load(path, Default("/tmp/default.json")); err == nil {
		t.Fatal("expected invalid sort column to be rejected")
	}
}

func TestLoadRejectsInvalidSortOrder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[table]
sort_order = "sideways"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := Load(path, Default("/tmp/default.json")); err == nil {
		t.Fatal("expected invalid sort order to be rejected")
	}
}

func TestLoadRejectsMissingServerPort(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[server]
addr = "localhost"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := Load(path, Default("/tmp/default.json")); err == nil {
		t.Fatal("expected addr without port to be rejected")
	}
}

func TestEnsureConfigDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")
	if err := EnsureConfigDir(path); err != nil {
		t.Fatalf("EnsureConfigDir() error = %v", err)
	}
	info, err := os.Stat(filepath.Dir(path))
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if !info.IsDir() {
		t.Fatal("expected config dir to exist")
	}
}
