package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"kombo/internal/adapters/server"
	"kombo/internal/adapters/server/common"
	"kombo/internal/app"
	"kombo/internal/config"
	"kombo/internal/platform"
	"kombo/internal/prefs"
	"kombo/internal/tui"
)

// version is set by the release build; "dev" enables dev-mode paths by default.
var version = "dev"

// program abstracts the Bubble Tea program loop so tests can stub it out.
type program interface {
	Run() (tea.Model, error)
}

// programFactory builds the TUI program; replaced in tests.
var programFactory = func(m tea.Model) program {
	return tea.NewProgram(m)
}

// serveCommandRunner starts the HTTP+MCP serve flow; replaced in tests.
var serveCommandRunner = func(ctx context.Context, cfg server.Config, deps server.Dependencies) error {
	return server.Run(ctx, cfg, deps)
}

func main() {
	root := newRootCommand(os.Stdout, os.Stderr)
	if err := fang.Execute(context.Background(), root, fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

// rootFlags holds the persistent flag state shared by every subcommand.
type rootFlags struct {
	configPath string
	comboPath  string
	appName    string
	devMode    bool
}

// newRootCommand wires the command tree. Environment variables provide flag
// defaults so scripted runs can skip the flags entirely.
func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	flags := &rootFlags{appName: "kombo", devMode: version == "dev"}
	if envApp := strings.TrimSpace(os.Getenv("KOMBO_APP_NAME")); envApp != "" {
		flags.appName = envApp
	}
	if envDev, ok := parseBoolEnv("KOMBO_DEV_MODE"); ok {
		flags.devMode = envDev
	}

	root := &cobra.Command{
		Use:           "kombo",
		Short:         "kombo manages a searchable table of text-expansion combos",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), *flags, stderr)
		},
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config TOML")
	root.PersistentFlags().StringVar(&flags.comboPath, "combos", "", "path to the combo list JSON file")
	root.PersistentFlags().StringVar(&flags.appName, "app", flags.appName, "application name for config/data path resolution")
	root.PersistentFlags().BoolVar(&flags.devMode, "dev", flags.devMode, "use dev mode paths (<app>-dev)")

	root.AddCommand(newPathsCommand(flags, stdout))
	root.AddCommand(newExportCommand(flags, stdout, stderr))
	root.AddCommand(newImportCommand(flags, stderr))
	root.AddCommand(newServeCommand(flags, stderr))
	root.AddCommand(newPrefsCommand(flags, stdout, stderr))
	return root
}

// runtimeState carries everything startup resolves before a command runs.
type runtimeState struct {
	paths      platform.Paths
	configPath string
	cfg        config.Config
	logger     *runtimeLogger
}

// resolveRuntime turns flags and environment into resolved paths, loaded
// config, and a configured logger. Flag overrides beat environment overrides
// beat platform defaults. quietConsole mutes the console sink before the first
// log line so TUI startup never writes to the terminal.
func resolveRuntime(flags rootFlags, stderr io.Writer, quietConsole bool) (*runtimeState, error) {
	paths, err := platform.DefaultPathsWithOptions(platform.Options{
		AppName: flags.appName,
		DevMode: flags.devMode,
	})
	if err != nil {
		return nil, err
	}

	configPath := strings.TrimSpace(flags.configPath)
	if configPath == "" {
		if envPath := strings.TrimSpace(os.Getenv("KOMBO_CONFIG")); envPath != "" {
			configPath = envPath
		} else {
			configPath = paths.ConfigPath
		}
	}
	comboPath := strings.TrimSpace(flags.comboPath)
	comboOverridden := comboPath != ""
	if !comboOverridden {
		if envPath := strings.TrimSpace(os.Getenv("KOMBO_COMBOS")); envPath != "" {
			comboPath = envPath
			comboOverridden = true
		} else {
			comboPath = paths.ComboFilePath
		}
	}

	cfg, err := config.Load(configPath, config.Default(comboPath))
	if err != nil {
		return nil, fmt.Errorf("load config %q: %w", configPath, err)
	}
	if comboOverridden {
		cfg.Combos.Path = comboPath
	}

	logger, err := newRuntimeLogger(stderr, flags.appName, cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("configure runtime logger: %w", err)
	}
	if quietConsole {
		logger.SetConsoleEnabled(false)
	}
	logger.Info("startup configuration resolved", "app", flags.appName, "dev_mode", flags.devMode)
	logger.Debug("runtime paths resolved", "config_path", configPath, "data_dir", paths.DataDir, "combo_path", cfg.Combos.Path)
	if logPath := logger.FilePath(); logPath != "" {
		logger.Info("file logging enabled", "path", logPath)
	}

	return &runtimeState{
		paths:      paths,
		configPath: configPath,
		cfg:        cfg,
		logger:     logger,
	}, nil
}

// openManager loads the combo list from the configured combo file.
func openManager(rt *runtimeState) (*app.Manager, error) {
	mgr := app.NewManager(uuid.NewString, nil, app.ManagerConfig{
		ComboFilePath: rt.cfg.Combos.Path,
	})
	if err := mgr.LoadComboList(); err != nil {
		rt.logger.Error("combo list load failed", "combo_path", rt.cfg.Combos.Path, "err", err)
		return nil, fmt.Errorf("load combo list: %w", err)
	}
	rt.logger.Info("combo list loaded", "combo_path", rt.cfg.Combos.Path, "combos", mgr.Size())
	return mgr, nil
}

// runTUI starts the combo table program loop.
func runTUI(_ context.Context, flags rootFlags, stderr io.Writer) error {
	// Keep TUI rendering clean: runtime logs stay in the file sink while the
	// table is active.
	rt, err := resolveRuntime(flags, stderr, true)
	if err != nil {
		return err
	}
	defer closeLogger(rt.logger, stderr)

	mgr, err := openManager(rt)
	if err != nil {
		return err
	}

	store, err := prefs.OpenPath(rt.paths.PrefsDBPath)
	if err != nil {
		rt.logger.Error("preferences open failed", "prefs_path", rt.paths.PrefsDBPath, "err", err)
		return fmt.Errorf("open preferences: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			rt.logger.Warn("preferences close failed", "prefs_path", rt.paths.PrefsDBPath, "err", closeErr)
		}
	}()

	m := tui.NewModel(
		mgr,
		tui.WithTableConfig(tableConfigFrom(rt.cfg.Table)),
		tui.WithPreferences(store),
	)
	rt.logger.Info("starting tui program loop")
	if _, err := programFactory(m).Run(); err != nil {
		rt.logger.Error("tui program terminated with error", "err", err)
		return fmt.Errorf("run tui program: %w", err)
	}
	rt.logger.Info("command flow complete", "command", "tui")
	return nil
}

// tableConfigFrom maps validated config strings onto table options.
func tableConfigFrom(cfg config.TableConfig) tui.TableConfig {
	column := tui.SortByKeyword
	switch cfg.SortColumn {
	case config.ColumnName:
		column = tui.SortByName
	case config.ColumnCreated:
		column = tui.SortByCreated
	case config.ColumnModified:
		column = tui.SortByModified
	}
	return tui.TableConfig{
		SortColumn:    column,
		SortAscending: cfg.SortOrder != config.SortDescending,
		ConfirmDelete: cfg.ConfirmDelete,
		ShowSnippet:   cfg.ShowSnippet,
	}
}

// newPathsCommand prints the resolved platform paths.
func newPathsCommand(flags *rootFlags, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print the resolved config and data paths",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			paths, err := platform.DefaultPathsWithOptions(platform.Options{
				AppName: flags.appName,
				DevMode: flags.devMode,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(stdout, "app: %s\n", flags.appName)
			_, _ = fmt.Fprintf(stdout, "dev_mode: %t\n", flags.devMode)
			_, _ = fmt.Fprintf(stdout, "config: %s\n", paths.ConfigPath)
			_, _ = fmt.Fprintf(stdout, "data_dir: %s\n", paths.DataDir)
			_, _ = fmt.Fprintf(stdout, "combos: %s\n", paths.ComboFilePath)
			_, _ = fmt.Fprintf(stdout, "prefs: %s\n", paths.PrefsDBPath)
			return nil
		},
	}
}

// newExportCommand writes the combo list as a JSON snapshot.
func newExportCommand(flags *rootFlags, stdout, stderr io.Writer) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the combo list as a JSON snapshot",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			rt, err := resolveRuntime(*flags, stderr, false)
			if err != nil {
				return err
			}
			defer closeLogger(rt.logger, stderr)
			mgr, err := openManager(rt)
			if err != nil {
				return err
			}
			return runExport(mgr, outPath, stdout)
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "-", "output file path ('-' for stdout)")
	return cmd
}

// runExport encodes the snapshot to stdout or a file.
func runExport(mgr *app.Manager, outPath string, stdout io.Writer) error {
	snap := mgr.ExportSnapshot()
	encoded, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot json: %w", err)
	}
	encoded = append(encoded, '\n')

	if outPath == "-" {
		if _, err := stdout.Write(encoded); err != nil {
			return fmt.Errorf("write snapshot to stdout: %w", err)
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create export output dir: %w", err)
	}
	if err := os.WriteFile(outPath, encoded, 0o644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	return nil
}

// newImportCommand replaces the combo list from a JSON snapshot.
func newImportCommand(flags *rootFlags, stderr io.Writer) *cobra.Command {
	var inPath string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a combo list snapshot, replacing the current list",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if strings.TrimSpace(inPath) == "" {
				return fmt.Errorf("--in is required")
			}
			rt, err := resolveRuntime(*flags, stderr, false)
			if err != nil {
				return err
			}
			defer closeLogger(rt.logger, stderr)
			mgr, err := openManager(rt)
			if err != nil {
				return err
			}
			return runImport(mgr, inPath)
		},
	}
	cmd.Flags().StringVar(&inPath, "in", "", "input snapshot JSON file")
	return cmd
}

// runImport decodes a snapshot file, loads it, and persists the result.
func runImport(mgr *app.Manager, inPath string) error {
	content, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("read import file: %w", err)
	}
	var snap app.Snapshot
	if err := json.Unmarshal(content, &snap); err != nil {
		return fmt.Errorf("decode snapshot json: %w", err)
	}
	if err := mgr.ImportSnapshot(snap); err != nil {
		return fmt.Errorf("import snapshot: %w", err)
	}
	if err := mgr.SaveComboList(); err != nil {
		return fmt.Errorf("save combo list: %w", err)
	}
	return nil
}

// newServeCommand exposes the combo list over HTTP REST and MCP.
func newServeCommand(flags *rootFlags, stderr io.Writer) *cobra.Command {
	var (
		httpBind    string
		apiEndpoint string
		mcpEndpoint string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the combo list over HTTP REST and MCP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := resolveRuntime(*flags, stderr, false)
			if err != nil {
				return err
			}
			defer closeLogger(rt.logger, stderr)
			mgr, err := openManager(rt)
			if err != nil {
				return err
			}

			bind := httpBind
			if strings.TrimSpace(bind) == "" {
				bind = rt.cfg.Server.Addr
			}
			rt.logger.Info("command flow start", "command", "serve", "http_bind", bind)
			err = serveCommandRunner(cmd.Context(), server.Config{
				HTTPBind:      bind,
				APIEndpoint:   apiEndpoint,
				MCPEndpoint:   mcpEndpoint,
				ServerName:    flags.appName,
				ServerVersion: version,
			}, server.Dependencies{
				Combos: common.NewAppServiceAdapter(mgr),
			})
			if err != nil {
				rt.logger.Error("command flow failed", "command", "serve", "err", err)
				return fmt.Errorf("run serve command: %w", err)
			}
			rt.logger.Info("command flow complete", "command", "serve")
			return nil
		},
	}
	cmd.Flags().StringVar(&httpBind, "http", "", "HTTP listen address (defaults to server.addr from config)")
	cmd.Flags().StringVar(&apiEndpoint, "api-endpoint", "/api/v1", "HTTP API base endpoint")
	cmd.Flags().StringVar(&mcpEndpoint, "mcp-endpoint", "/mcp", "MCP streamable HTTP endpoint")
	return cmd
}

// newPrefsCommand inspects and resets the preferences store.
func newPrefsCommand(flags *rootFlags, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Inspect or reset stored preferences",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the stored preference values",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return withPrefsStore(*flags, stderr, func(store *prefs.Store) error {
				_, _ = fmt.Fprintf(stdout, "play_sound_on_combo: %t\n", store.PlaySoundOnCombo())
				_, _ = fmt.Fprintf(stdout, "auto_start_at_login: %t\n", store.AutoStartAtLogin())
				if geometry := store.Geometry(); len(geometry) > 0 {
					_, _ = fmt.Fprintf(stdout, "geometry: %s\n", geometry)
				} else {
					_, _ = fmt.Fprintln(stdout, "geometry: (unset)")
				}
				if path := store.InstalledApplicationPath(); path != "" {
					_, _ = fmt.Fprintf(stdout, "installed_app_path: %s\n", path)
				} else {
					_, _ = fmt.Fprintln(stdout, "installed_app_path: (unset)")
				}
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Restore preference flags to their defaults",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return withPrefsStore(*flags, stderr, func(store *prefs.Store) error {
				if err := store.Reset(); err != nil {
					return fmt.Errorf("reset preferences: %w", err)
				}
				_, _ = fmt.Fprintln(stdout, "preferences reset to defaults")
				return nil
			})
		},
	})
	return cmd
}

// withPrefsStore opens the preferences store at the resolved path and hands it
// to fn, closing it afterwards.
func withPrefsStore(flags rootFlags, stderr io.Writer, fn func(*prefs.Store) error) error {
	rt, err := resolveRuntime(flags, stderr, false)
	if err != nil {
		return err
	}
	defer closeLogger(rt.logger, stderr)
	store, err := prefs.OpenPath(rt.paths.PrefsDBPath)
	if err != nil {
		return fmt.Errorf("open preferences: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			rt.logger.Warn("preferences close failed", "prefs_path", rt.paths.PrefsDBPath, "err", closeErr)
		}
	}()
	return fn(store)
}

// closeLogger closes the optional file sink, reporting failures on stderr only
// when console logging is still active.
func closeLogger(logger *runtimeLogger, stderr io.Writer) {
	if closeErr := logger.Close(); closeErr != nil && logger.shouldLogToSink(logger.consoleSink) {
		_, _ = fmt.Fprintf(stderr, "warning: close runtime log sink: %v\n", closeErr)
	}
}

// parseBoolEnv reads a boolean environment variable, reporting whether it was set.
func parseBoolEnv(name string) (bool, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return false, false
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return value, true
}
