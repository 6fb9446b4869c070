package render

import (
	"bytes"
	"html/template"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogbuilder/internal/post"
)

func samplePost(title, category, body string) *post.Post {
	return &post.Post{
		Body:        []byte(body),
		Metadata:    post.Metadata{Title: title, Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		Category:    category,
		SourcePath:  "posts/" + category + "/x.md",
		Fingerprint: "sha256:abc",
	}
}

func TestRender_PageShell(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	page, err := r.Render(samplePost("Hello", "life", "Some *intro* text.\n\n## Section\n"))
	require.NoError(t, err)

	html := string(page.HTML)
	require.Contains(t, html, "<h1>Hello</h1>")
	require.Contains(t, html, `<time datetime="2024-01-01T00:00:00Z">January 01, 2024</time>`)
	require.Contains(t, html, `<link rel="stylesheet" href="/style.css">`)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page.HTML))
	require.NoError(t, err)
	require.Equal(t, "Hello", doc.Find("title").Text())
	require.Equal(t, "life", doc.Find("div.category").Text())
	require.Equal(t, "Some intro text.", doc.Find(`meta[name="description"]`).AttrOr("content", ""))
	require.Equal(t, "sha256:abc", doc.Find(`meta[name="fingerprint"]`).AttrOr("content", ""))
	require.Equal(t, "intro", doc.Find("article em").Text())
	require.Equal(t, "section", doc.Find("article h2").AttrOr("id", ""))
}

func TestRender_EscapesMetadata(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	page, err := r.Render(samplePost("<script>alert(1)</script>", "a&b", "body"))
	require.NoError(t, err)

	html := string(page.HTML)
	require.NotContains(t, html, "<script>alert(1)</script>")
	require.Contains(t, html, "&lt;script&gt;alert(1)&lt;/script&gt;")
	require.Contains(t, html, `<div class="category">a&amp;b</div>`)
}

func TestRender_ContentMatchesMarkdown(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	p := samplePost("T", "c", "| a | b |\n|---|---|\n| 1 | 2 |\n\n~~gone~~\n")
	page, err := r.Render(p)
	require.NoError(t, err)

	direct, err := r.Markdown(p.Body)
	require.NoError(t, err)
	require.Equal(t, direct, page.Content)
	require.Contains(t, string(page.Content), "<table>")
	require.Contains(t, string(page.Content), "<del>gone</del>")
}

func TestMarkdown_IsDeterministic(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	src := []byte("# Title\n\n```go\nfunc main() {}\n```\n\n- [x] done\n")
	a, err := r.Markdown(src)
	require.NoError(t, err)
	b, err := r.Markdown(src)
	require.NoError(t, err)
	require.Equal(t, a, b)
	require.Contains(t, string(a), `<h1 id="title">Title</h1>`)
}

func TestSummarize(t *testing.T) {
	require.Equal(t, "", Summarize("<h1>No paragraph</h1>"))
	require.Equal(t, "one two", Summarize("<p>one\n   two</p><p>three</p>"))

	long := "<p>" + strings.Repeat("word ", 100) + "</p>"
	got := Summarize(template.HTML(long))
	require.True(t, strings.HasSuffix(got, "…"))
	require.LessOrEqual(t, len([]rune(got)), maxDescription)
}
