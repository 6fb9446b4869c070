// Package render turns a post body into HTML and wraps it in the page shell.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/yuin/goldmark"

	"git.home.luguber.info/inful/blogbuilder/internal/post"
)

// StylesheetHref is the site-root path every page links its stylesheet from.
const StylesheetHref = "/style.css"

//go:embed templates/*.tmpl
var templateFS embed.FS

// Funcs are the template helpers shared by every page template.
var Funcs = template.FuncMap{
	"isoDate":   func(t time.Time) string { return t.Format(time.RFC3339) },
	"longDate":  func(t time.Time) string { return t.Format("January 02, 2006") },
	"shortDate": func(t time.Time) string { return t.Format("2006-01-02") },
}

// Renderer converts posts to complete HTML pages.
type Renderer struct {
	md   goldmark.Markdown
	page *template.Template
}

// Page is the output of rendering one post.
type Page struct {
	HTML    []byte
	Content template.HTML
}

type pageData struct {
	Title       string
	Date        time.Time
	Category    string
	Description string
	Fingerprint string
	Stylesheet  string
	Content     template.HTML
}

// New parses the embedded page template.
func New() (*Renderer, error) {
	tmpl, err := template.New("page.html.tmpl").Funcs(Funcs).ParseFS(templateFS, "templates/page.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	return &Renderer{md: newMarkdown(), page: tmpl}, nil
}

// Render converts the post body and embeds it into the page shell. The post
// is expected to carry validated metadata.
func (r *Renderer) Render(p *post.Post) (Page, error) {
	content, err := r.Markdown(p.Body)
	if err != nil {
		return Page{}, fmt.Errorf("convert markdown: %w", err)
	}

	var buf bytes.Buffer
	err = r.page.Execute(&buf, pageData{
		Title:       p.Metadata.Title,
		Date:        p.Metadata.Date,
		Category:    p.Category,
		Description: Summarize(content),
		Fingerprint: p.Fingerprint,
		Stylesheet:  StylesheetHref,
		Content:     content,
	})
	if err != nil {
		return Page{}, fmt.Errorf("execute page template: %w", err)
	}
	return Page{HTML: buf.Bytes(), Content: content}, nil
}
