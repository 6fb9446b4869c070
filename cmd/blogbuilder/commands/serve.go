package commands

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/blogbuilder/internal/build"
	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
	"git.home.luguber.info/inful/blogbuilder/internal/preview"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	SiteFlags `embed:""`
	Addr      string        `help:"Listen address" default:":8080"`
	Debounce  time.Duration `help:"Quiet period before rebuilding after a change" default:"300ms"`
}

func (s *ServeCmd) Run(g *Global, root *CLI) error {
	cfg, err := LoadConfig(root, s.SiteFlags)
	if err != nil {
		return err
	}
	rec := metrics.NewPrometheusRecorder(prometheus.NewRegistry())
	builder, err := build.New(cfg, build.WithRecorder(rec))
	if err != nil {
		return err
	}
	return preview.Run(g.ctx(), cfg, builder, preview.Options{
		Addr:     s.Addr,
		Debounce: s.Debounce,
		Metrics:  rec.HTTPHandler(),
	})
}
