package commands

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/blogbuilder/internal/build"
	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	SiteFlags   `embed:""`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus text-format metrics to this file after the build" type:"path"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := LoadConfig(root, b.SiteFlags)
	if err != nil {
		return err
	}
	return RunBuild(g, cfg, b.MetricsFile)
}

// RunBuild executes one build and prints a summary. Metrics are written even
// when the build fails.
func RunBuild(g *Global, cfg *config.Config, metricsFile string) error {
	out := g.out()
	// Provide friendly user-facing messages on stdout.
	_, _ = fmt.Fprintln(out, "Starting blogbuilder build")

	var rec metrics.Recorder = metrics.NoopRecorder{}
	var prom *metrics.PrometheusRecorder
	if metricsFile != "" {
		prom = metrics.NewPrometheusRecorder(prometheus.NewRegistry())
		rec = prom
	}

	builder, err := build.New(cfg, build.WithRecorder(rec))
	if err != nil {
		return err
	}
	report, buildErr := builder.Build(g.ctx())

	if prom != nil {
		if err := prom.WriteTextfile(metricsFile); err != nil {
			slog.Warn("Failed to write metrics file", logfields.Path(metricsFile), logfields.Error(err))
		}
	}
	if buildErr != nil {
		_, _ = fmt.Fprintln(out, "Build failed")
		return buildErr
	}

	_, _ = fmt.Fprintf(out, "Build completed successfully: %s\n", report.Summary())
	_, _ = fmt.Fprintf(out, "Output written to %s\n", cfg.OutputDir)
	return nil
}
