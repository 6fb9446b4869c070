package build

import (
	"context"
	stdErrors "errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
	"git.home.luguber.info/inful/blogbuilder/internal/render"
	"git.home.luguber.info/inful/blogbuilder/internal/site"
)

// Stage names used for logging and metrics.
const (
	StageWalk       = "walk"
	StageIndex      = "index"
	StageFeed       = "feed"
	StageStylesheet = "stylesheet"
)

// PageExt is the extension of every generated post page.
const PageExt = ".html"

// sourceExts are the recognized document extensions.
var sourceExts = map[string]bool{
	".txt": true,
	".md":  true,
}

var errNotDirectory = stdErrors.New("not a directory")

// Builder executes builds for one configuration.
type Builder struct {
	cfg      *config.Config
	renderer *render.Renderer
	recorder metrics.Recorder
}

// Option customizes a Builder.
type Option func(*Builder)

// WithRecorder sets the metrics recorder. Nil keeps the no-op recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(b *Builder) {
		if r != nil {
			b.recorder = r
		}
	}
}

// New creates a Builder for cfg.
func New(cfg *config.Config, opts ...Option) (*Builder, error) {
	if cfg == nil {
		return nil, errors.New(errors.CategoryConfig, errors.SeverityFatal, "config required")
	}
	r, err := render.New()
	if err != nil {
		return nil, errors.InternalError("create renderer", err)
	}
	b := &Builder{cfg: cfg, renderer: r, recorder: metrics.NoopRecorder{}}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Build runs one full pass. The returned report is never nil; on failure it
// carries the posts written before the error.
func (b *Builder) Build(ctx context.Context) (*Report, error) {
	report := &Report{StartTime: time.Now(), OutputDir: b.cfg.OutputDir}

	err := b.run(ctx, report)
	switch {
	case err == nil:
		report.finish(metrics.OutcomeSuccess)
		b.recorder.ObserveBuildDuration(report.Duration)
		slog.Info("Build completed",
			logfields.Count(len(report.Posts)),
			logfields.Output(b.cfg.OutputDir),
			logfields.DurationMS(float64(report.Duration.Microseconds())/1000))
	case stdErrors.Is(err, context.Canceled), stdErrors.Is(err, context.DeadlineExceeded):
		report.finish(metrics.OutcomeCanceled)
		slog.Warn("Build canceled", logfields.Count(len(report.Posts)))
	default:
		report.finish(metrics.OutcomeFailed)
		slog.Error("Build failed", logfields.Error(err))
	}
	b.recorder.IncBuildOutcome(report.Outcome)
	return report, err
}

func (b *Builder) run(ctx context.Context, report *Report) error {
	if err := os.MkdirAll(b.cfg.OutputDir, 0o755); err != nil {
		return errors.IOFailure("create output directory", b.cfg.OutputDir, err)
	}
	if err := checkDir(b.cfg.ContentDir); err != nil {
		return err
	}

	posts := post.NewCollection()
	err := b.stage(StageWalk, func() error {
		return b.walk(ctx, posts, report)
	})
	if err != nil {
		return err
	}
	b.recorder.SetPostCount(posts.Len())

	assembler := site.NewAssembler(site.Info{
		Title:       b.cfg.Site.Title,
		BaseURL:     b.cfg.Site.BaseURL,
		Description: b.cfg.Site.Description,
		Author:      b.cfg.Site.Author,
	}, b.cfg.OutputDir)

	if err := b.stage(StageIndex, func() error {
		_, err := assembler.Index(posts)
		return err
	}); err != nil {
		return err
	}
	if err := b.stage(StageFeed, func() error {
		_, err := assembler.Feed(posts)
		return err
	}); err != nil {
		return err
	}
	return b.stage(StageStylesheet, func() error {
		src, err := assembler.Stylesheet(b.cfg.Stylesheet)
		if err != nil {
			return err
		}
		report.Stylesheet = src
		b.recorder.IncStylesheet(string(src))
		return nil
	})
}

func (b *Builder) stage(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	b.recorder.ObserveStageDuration(name, time.Since(start))
	if err != nil {
		b.recorder.IncStageResult(name, metrics.ResultFailed)
		return err
	}
	b.recorder.IncStageResult(name, metrics.ResultSuccess)
	slog.Debug("Stage complete", logfields.Stage(name), logfields.Elapsed(start))
	return nil
}

func (b *Builder) walk(ctx context.Context, posts *post.Collection, report *Report) error {
	root := b.cfg.ContentDir
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return errors.IOFailure("walk content", path, walkErr)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return errors.InternalError("relative path", err).WithContext("path", path)
		}
		if rel != "." && b.excluded(rel) {
			slog.Debug("Excluded", logfields.Path(path))
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !sourceExts[filepath.Ext(path)] {
			return nil
		}

		p, err := b.processFile(path, rel)
		if err != nil {
			return err
		}
		if err := posts.Add(p); err != nil {
			return err
		}
		b.recorder.IncPostRendered(p.Category)
		report.Posts = append(report.Posts, PostEntry{
			Source:      p.SourcePath,
			Output:      p.OutputPath,
			Category:    p.Category,
			Fingerprint: p.Fingerprint,
		})
		return nil
	})
}

// processFile loads and renders one document and writes its page below the
// output root at the mirrored location.
func (b *Builder) processFile(path, rel string) (*post.Post, error) {
	p, err := post.Load(path)
	if err != nil {
		return nil, err
	}
	page, err := b.renderer.Render(p)
	if err != nil {
		return nil, errors.InternalError("render page", err).WithContext("path", path)
	}

	outRel := OutputPath(rel)
	dest := filepath.Join(b.cfg.OutputDir, filepath.FromSlash(outRel))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return nil, errors.IOFailure("create directory", filepath.Dir(dest), err)
	}
	if err := os.WriteFile(dest, page.HTML, 0o644); err != nil {
		return nil, errors.IOFailure("write page", dest, err)
	}

	p.OutputPath = outRel
	p.Content = page.Content
	slog.Debug("Rendered post",
		logfields.Path(path),
		logfields.Output(outRel),
		logfields.Category(p.Category))
	return p, nil
}

func (b *Builder) excluded(rel string) bool {
	slashed := filepath.ToSlash(rel)
	for _, pattern := range b.cfg.Exclude {
		if ok, _ := doublestar.Match(pattern, slashed); ok {
			return true
		}
	}
	return false
}

// OutputPath maps a source path relative to the content root to the page
// path relative to the output root, in slash form.
func OutputPath(rel string) string {
	return filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)) + PageExt)
}

func checkDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.IOFailure("open content root", path, err)
	}
	if !info.IsDir() {
		return errors.IOFailure("open content root", path, errNotDirectory)
	}
	return nil
}
