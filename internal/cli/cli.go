package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindlayout/pkg/buildinfo"
	"github.com/matzehuels/mindlayout/pkg/cache"
	"github.com/matzehuels/mindlayout/pkg/core/tree"
	"github.com/matzehuels/mindlayout/pkg/errors"
	"github.com/matzehuels/mindlayout/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "mindlayout"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	out     io.Writer
	logFile io.Closer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		out:    w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// Close flushes and closes the log file, if one was opened.
func (c *CLI) Close() error {
	if c.logFile != nil {
		return c.logFile.Close()
	}
	return nil
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var logFile string

	root := &cobra.Command{
		Use:          appName,
		Short:        "Mindlayout lays out and renders mind maps",
		Long:         `Mindlayout computes mind map, logical structure and organization chart layouts for tree-shaped content and renders them as SVG, PNG, Graphviz or JSON.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if logFile != "" && c.logFile == nil {
				if err := errors.ValidatePath(logFile); err != nil {
					return err
				}
				c.enableLogFile(logFile)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&logFile, "log-file", "", "also write logs to this file (rotated)")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.themeCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/mindlayout/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Input Helpers
// =============================================================================

// loadTree reads a content tree from a JSON or YAML file.
func loadTree(path string) (*tree.Node, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	return tree.ReadFile(path)
}

// layoutFlags are the flags shared by the commands that run a layout.
type layoutFlags struct {
	strategy  string
	lineStyle string
	themePath string
	width     float64
	height    float64
	noCache   bool
	refresh   bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.strategy, "strategy", "s", pipeline.DefaultStrategy, "layout strategy: mindmap, logical, organization")
	cmd.Flags().StringVar(&f.lineStyle, "line-style", "", "override the theme line style: straight, direct, curve")
	cmd.Flags().StringVar(&f.themePath, "theme", "", "theme file (.toml, .yaml or .json)")
	cmd.Flags().Float64Var(&f.width, "width", pipeline.DefaultWidth, "frame width; the root is centered in the frame")
	cmd.Flags().Float64Var(&f.height, "height", pipeline.DefaultHeight, "frame height")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the layout and artifact cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached results and recompute")

	_ = cmd.RegisterFlagCompletionFunc("strategy", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"mindmap", "logical", "organization"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("line-style", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"straight", "direct", "curve"}, cobra.ShellCompDirectiveNoFileComp
	})
}

func (f *layoutFlags) options() pipeline.Options {
	return pipeline.Options{
		Strategy:  f.strategy,
		LineStyle: f.lineStyle,
		ThemePath: f.themePath,
		Width:     f.width,
		Height:    f.height,
		Refresh:   f.refresh,
	}
}
