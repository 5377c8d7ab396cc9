package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// SortOrder selects the initial direction of the combo table sort.
type SortOrder string

const (
	SortAscending  SortOrder = "ascending"
	SortDescending SortOrder = "descending"
)

// Column names the table can sort on.
const (
	ColumnKeyword  = "keyword"
	ColumnName     = "name"
	ColumnCreated  = "created"
	ColumnModified = "modified"
)

type Config struct {
	Combos  CombosConfig  `toml:"combos"`
	Table   TableConfig   `toml:"table"`
	Logging LoggingConfig `toml:"logging"`
	Server  ServerConfig  `toml:"server"`
}

type CombosConfig struct {
	// Path of the combo list file.
	Path string `toml:"path"`
}

type TableConfig struct {
	SortColumn    string    `toml:"sort_column"`
	SortOrder     SortOrder `toml:"sort_order"`
	ConfirmDelete bool      `toml:"confirm_delete"`
	ShowSnippet   bool      `toml:"show_snippet"`
}

type LoggingConfig struct {
	Level string `toml:"level"` // debug | info | warn | error
	File  string `toml:"file"`  // optional logfmt sink, empty disables it
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

func Default(comboPath string) Config {
	return Config{
		Combos: CombosConfig{
			Path: comboPath,
		},
		Table: TableConfig{
			SortColumn:    ColumnKeyword,
			SortOrder:     SortAscending,
			ConfirmDelete: true,
			ShowSnippet:   true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:7370",
		},
	}
}

func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Combos.Path) == "" {
		return errors.New("combos path is required")
	}

	switch strings.TrimSpace(strings.ToLower(c.Table.SortColumn)) {
	case ColumnKeyword, ColumnName, ColumnCreated, ColumnModified:
	default:
		return fmt.Errorf("invalid table.sort_column: %q", c.Table.SortColumn)
	}

	switch c.Table.SortOrder {
	case SortAscending, SortDescending:
	default:
		return fmt.Errorf("invalid table.sort_order: %q", c.Table.SortOrder)
	}

	switch strings.TrimSpace(strings.ToLower(c.Logging.Level)) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}

	addr := strings.TrimSpace(c.Server.Addr)
	if addr == "" {
		return errors.New("server addr is required")
	}
	if !strings.Contains(addr, ":") {
		return fmt.Errorf("server addr %q must include a port", addr)
	}

	return nil
}

func EnsureConfigDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
