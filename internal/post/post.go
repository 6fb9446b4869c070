// Package post loads source documents into Post records and keeps the
// in-memory collection that index and feed assembly read from.
package post

import (
	"html/template"
	"time"
)

// Metadata is the validated metadata of a post.
type Metadata struct {
	Title string
	Date  time.Time
	// Extra holds every key other than title and date, untouched.
	Extra map[string]any
}

// Fields returns the metadata as a plain key/value map, the inverse of
// decoding. Extra keys are copied; title and date always win.
func (m Metadata) Fields() map[string]any {
	out := make(map[string]any, len(m.Extra)+2)
	for k, v := range m.Extra {
		out[k] = v
	}
	out[keyTitle] = m.Title
	out[keyDate] = m.Date
	return out
}

// Post is one content item discovered under the content root.
type Post struct {
	Body     []byte
	Metadata Metadata
	// Category is the basename of the directory containing the source file.
	Category   string
	SourcePath string
	// Fingerprint is a content hash over metadata and body.
	Fingerprint string

	// OutputPath is the slash-separated page path relative to the output
	// root. It stays empty until the page has been written.
	OutputPath string
	// Content is the rendered body, set together with OutputPath.
	Content template.HTML
}

// Rendered reports whether the post's page has been written.
func (p *Post) Rendered() bool {
	return p.OutputPath != ""
}
