package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
)

// Global context passed to subcommands.
type Global struct {
	Logger  *slog.Logger
	Context context.Context
	Stdout  io.Writer
}

func (g *Global) ctx() context.Context {
	if g == nil || g.Context == nil {
		return context.Background()
	}
	return g.Context
}

func (g *Global) out() io.Writer {
	if g == nil || g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (YAML, or TOML by extension)" default:"blog.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build      BuildCmd   `cmd:"" help:"Build the site from the content directory"`
	Init       InitCmd    `cmd:"" help:"Initialize a new configuration file and a sample post"`
	New        NewCmd     `cmd:"" help:"Create a new post with metadata"`
	Serve      ServeCmd   `cmd:"" help:"Build, serve the output and rebuild on change"`
	VersionCmd VersionCmd `cmd:"" name:"version" help:"Print version information"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// SiteFlags are the path overrides shared by build and serve.
type SiteFlags struct {
	Content    string `name:"content" help:"Content directory (overrides content_dir)" type:"path"`
	Output     string `short:"o" name:"output" help:"Output directory (overrides output_dir)" type:"path"`
	Stylesheet string `name:"stylesheet" help:"Custom stylesheet copied to style.css" type:"path"`
}

func (f SiteFlags) overrides() config.Overrides {
	return config.Overrides{ContentDir: f.Content, OutputDir: f.Output, Stylesheet: f.Stylesheet}
}

// LoadConfig loads the configuration named by the global flag. The default
// path may be absent, in which case defaults apply. The default logger is
// replaced with one honoring the file's log settings.
func LoadConfig(root *CLI, flags SiteFlags) (*config.Config, error) {
	cfg, err := config.Load(root.Config, root.Config == config.DefaultPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Apply(flags.overrides()); err != nil {
		return nil, err
	}
	slog.SetDefault(cfg.Log.NewLogger(os.Stderr, root.Verbose))
	return cfg, nil
}
