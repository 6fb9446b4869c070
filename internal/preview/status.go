package preview

import (
	"sync"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/build"
)

// Status tracks the outcome of the most recent build for the status endpoint.
type Status struct {
	mu           sync.RWMutex
	lastError    error
	lastBuild    time.Time
	posts        int
	builds       int
	hasGoodBuild bool // true if at least one successful build exists
}

// StatusSnapshot is the JSON view of Status.
type StatusSnapshot struct {
	OK           bool      `json:"ok"`
	Error        string    `json:"error,omitempty"`
	HasGoodBuild bool      `json:"has_good_build"`
	Builds       int       `json:"builds"`
	Posts        int       `json:"posts"`
	LastBuild    time.Time `json:"last_build"`
}

func (s *Status) record(report *build.Report, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.builds++
	s.lastBuild = time.Now()
	s.lastError = err
	if err == nil {
		s.hasGoodBuild = true
		if report != nil {
			s.posts = len(report.Posts)
		}
	}
}

// Snapshot returns a consistent copy of the current status.
func (s *Status) Snapshot() StatusSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := StatusSnapshot{
		OK:           s.lastError == nil,
		HasGoodBuild: s.hasGoodBuild,
		Builds:       s.builds,
		Posts:        s.posts,
		LastBuild:    s.lastBuild,
	}
	if s.lastError != nil {
		snap.Error = s.lastError.Error()
	}
	return snap
}
