package preview

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/build"
	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8080"

// Builder runs one build. *build.Builder satisfies it.
type Builder interface {
	Build(ctx context.Context) (*build.Report, error)
}

// Options tune Run.
type Options struct {
	Addr     string
	Debounce time.Duration
	// Metrics is mounted at /metrics when set.
	Metrics http.Handler
}

// Run builds once, serves the output root and rebuilds on change until ctx
// is canceled. A failed build is logged and reported on the status endpoint;
// the previous output keeps being served.
func Run(ctx context.Context, cfg *config.Config, builder Builder, opts Options) error {
	if opts.Addr == "" {
		opts.Addr = DefaultAddr
	}

	status := &Status{}
	rebuild(ctx, builder, status)

	deb := newDebouncer(opts.Debounce)
	defer deb.Stop()

	watcher, err := NewWatcher(WatchPaths{
		ContentDir: cfg.ContentDir,
		Stylesheet: cfg.Stylesheet,
		OutputDir:  cfg.OutputDir,
	}, deb.Trigger)
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()
	go watcher.Run(ctx)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-deb.C:
				slog.Info("Change detected; rebuilding site")
				rebuild(ctx, builder, status)
			}
		}
	}()

	srv := NewServer(cfg.OutputDir, status, opts.Metrics)
	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Start(opts.Addr) }()
	slog.Info("Preview server listening", "addr", opts.Addr, logfields.Output(cfg.OutputDir))

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down preview server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("HTTP server shutdown error", logfields.Error(err))
	}
	return nil
}

func rebuild(ctx context.Context, builder Builder, status *Status) {
	report, err := builder.Build(ctx)
	status.record(report, err)
	if err != nil {
		// Build already logged the failure; keep serving the last good output.
		return
	}
	slog.Info("Site rebuilt", logfields.Count(len(report.Posts)))
}
