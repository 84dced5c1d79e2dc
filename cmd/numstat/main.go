// Package main provides the CLI entrypoint for numstat.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/numstat/internal/config"
	"github.com/verte-zerg/numstat/internal/dataio"
	"github.com/verte-zerg/numstat/internal/model"
	"github.com/verte-zerg/numstat/internal/sample"
	"github.com/verte-zerg/numstat/internal/stats"
	"github.com/verte-zerg/numstat/internal/store"
	"github.com/verte-zerg/numstat/internal/ui"
)

const (
	defaultTheme = "dark"
	defaultChart = "bar"
	maxDecimals  = 12
	historyLimit = 200
)

var configPath string

// viewFlags holds the display flags shared by the interactive and plot commands.
type viewFlags struct {
	zoom     int
	theme    string
	decimals int
	kind     string
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &viewFlags{}
	rootCmd := &cobra.Command{
		Use:           "numstat [file]",
		Short:         "Interactive descriptive statistics for a list of numbers",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractiveCmd(cmd, args, flags)
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/numstat/config.toml)")
	addViewFlags(rootCmd, flags)

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newSummaryCmd())
	rootCmd.AddCommand(newPlotCmd())

	return rootCmd
}

func addViewFlags(cmd *cobra.Command, flags *viewFlags) {
	cmd.Flags().IntVar(&flags.zoom, "zoom", sample.DefaultZoom, "chart zoom percent (10-200)")
	cmd.Flags().StringVar(&flags.theme, "theme", defaultTheme, "color theme (dark or light)")
	cmd.Flags().IntVar(&flags.decimals, "decimals", stats.DefaultDecimals, "decimals shown for statistics")
	cmd.Flags().StringVar(&flags.kind, "kind", defaultChart, "chart kind (bar, line, scatter, histogram)")
}

func runInteractiveCmd(cmd *cobra.Command, args []string, flags *viewFlags) error {
	cfg, err := resolveConfig(cmd, flags)
	if err != nil {
		return err
	}

	s, err := sample.New()
	if err != nil {
		return err
	}
	if len(args) == 1 {
		values, err := dataio.Import(args[0])
		if err != nil {
			return err
		}
		if len(values) == 0 {
			logErrln("no numbers found in", args[0])
		}
		if err := s.Replace(values); err != nil {
			return fmt.Errorf("failed to load %s: %w", args[0], err)
		}
	}

	st, err := store.Open(store.MemoryPath, historyLimit)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close history: %v\n", cerr)
		}
	}()

	m := ui.NewModel(s, st, cfg)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// resolveConfig overlays the config file onto flags the user did not set and
// validates the result.
func resolveConfig(cmd *cobra.Command, flags *viewFlags) (model.Config, error) {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return model.Config{}, err
	}
	applyIntConfig(cmd, "zoom", &flags.zoom, fileCfg.View.Zoom)
	applyStringConfig(cmd, "theme", &flags.theme, fileCfg.View.Theme)
	applyIntConfig(cmd, "decimals", &flags.decimals, fileCfg.View.Decimals)
	applyStringConfig(cmd, "kind", &flags.kind, fileCfg.View.Chart)

	kind, ok := model.ParseChartKind(flags.kind)
	if !ok {
		return model.Config{}, fmt.Errorf("--kind must be one of bar, line, scatter, histogram")
	}
	cfg := model.Config{
		Zoom:     flags.zoom,
		Theme:    strings.ToLower(strings.TrimSpace(flags.theme)),
		Decimals: flags.decimals,
		Chart:    kind,
		XAxis:    fileCfg.Axis.X.ApplyAxis(model.DefaultXAxis()),
		YAxis:    fileCfg.Axis.Y.ApplyAxis(model.DefaultYAxis()),
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func loadFileConfig() (config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(resolveConfigPath())
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	return fileCfg, nil
}

func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultConfigPath()
}

func validateConfig(cfg model.Config) error {
	if cfg.Zoom < sample.MinZoom || cfg.Zoom > sample.MaxZoom {
		return fmt.Errorf("--zoom must be between %d and %d", sample.MinZoom, sample.MaxZoom)
	}
	if cfg.Theme != "dark" && cfg.Theme != "light" {
		return fmt.Errorf("--theme must be dark or light")
	}
	if cfg.Decimals < 0 || cfg.Decimals > maxDecimals {
		return fmt.Errorf("--decimals must be between 0 and %d", maxDecimals)
	}
	for _, axis := range []model.AxisConfig{cfg.XAxis, cfg.YAxis} {
		if axis.TickCount < 2 {
			return fmt.Errorf("axis %q: ticks must be >= 2", axis.Name)
		}
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := resolveConfigPath()
	if err := writeDefaultConfig(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// writeDefaultConfig creates the commented template unless a file already exists.
func writeDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	x, y := model.DefaultXAxis(), model.DefaultYAxis()
	return fmt.Sprintf(`# numstat configuration
# Uncomment a value to enable it. CLI flags override config values.

[view]
# zoom = %d               # Chart zoom percent (10-200)
# theme = %q          # dark or light
# decimals = %d            # Decimals shown for statistics
# chart = %q            # bar, line, scatter or histogram

[axis.x]
# name = %q
# name-rotation = %d
# tick-rotation = %d
# grid = %t
# ticks = %d

[axis.y]
# name = %q
# name-rotation = %d
# tick-rotation = %d
# grid = %t
# ticks = %d
`,
		sample.DefaultZoom,
		defaultTheme,
		stats.DefaultDecimals,
		defaultChart,
		x.Name, x.NameRotation, x.TickRotation, x.ShowGrid, x.TickCount,
		y.Name, y.NameRotation, y.TickRotation, y.ShowGrid, y.TickCount,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
