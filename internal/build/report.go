package build

import (
	"fmt"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
	"git.home.luguber.info/inful/blogbuilder/internal/site"
)

// PostEntry describes one page written by a build.
type PostEntry struct {
	Source      string `json:"source"`
	Output      string `json:"output"`
	Category    string `json:"category"`
	Fingerprint string `json:"fingerprint"`
}

// Report contains the outcome of a build execution.
type Report struct {
	Outcome    metrics.BuildOutcomeLabel `json:"outcome"`
	Posts      []PostEntry               `json:"posts"`
	Stylesheet site.StylesheetSource     `json:"stylesheet,omitempty"`
	OutputDir  string                    `json:"output_dir"`
	StartTime  time.Time                 `json:"start_time"`
	EndTime    time.Time                 `json:"end_time"`
	Duration   time.Duration             `json:"duration"`
}

// Categories returns the number of distinct categories seen.
func (r *Report) Categories() int {
	seen := make(map[string]struct{}, len(r.Posts))
	for _, p := range r.Posts {
		seen[p.Category] = struct{}{}
	}
	return len(seen)
}

// Summary returns a one-line human readable description.
func (r *Report) Summary() string {
	return fmt.Sprintf("outcome=%s posts=%d categories=%d stylesheet=%s duration=%s",
		r.Outcome, len(r.Posts), r.Categories(), r.Stylesheet, r.Duration.Round(time.Millisecond))
}

func (r *Report) finish(outcome metrics.BuildOutcomeLabel) {
	r.Outcome = outcome
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)
}
