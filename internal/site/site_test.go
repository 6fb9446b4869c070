package site

import (
	"bytes"
	"encoding/xml"
	"html/template"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
)

var testInfo = Info{
	Title:       "My Blog",
	BaseURL:     "http://example.com",
	Description: "My Blog Feed",
}

func renderedPost(src, out, title, category string, date time.Time) *post.Post {
	return &post.Post{
		SourcePath: src,
		OutputPath: out,
		Category:   category,
		Metadata:   post.Metadata{Title: title, Date: date},
		Content:    template.HTML("<p>body of " + title + "</p>"),
	}
}

func collectionOf(t *testing.T, posts ...*post.Post) *post.Collection {
	t.Helper()
	c := post.NewCollection()
	for _, p := range posts {
		require.NoError(t, c.Add(p))
	}
	return c
}

func TestIndex_ListsPostsNewestFirst(t *testing.T) {
	root := t.TempDir()
	c := collectionOf(t,
		renderedPost("c/life/old.md", "life/old.html", "Old", "life", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		renderedPost("c/tech/new.md", "tech/new.html", "New & Shiny", "tech", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)),
	)

	path, err := NewAssembler(testInfo, root).Index(c)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, IndexFile), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	require.NoError(t, err)

	require.Equal(t, "My Blog", doc.Find("h1").Text())
	require.Equal(t, "/feed.xml", doc.Find(`link[rel="alternate"]`).AttrOr("href", ""))

	items := doc.Find("ul.post-list li")
	require.Equal(t, 2, items.Length())
	first := items.Eq(0)
	require.Equal(t, "tech/new.html", first.Find("a").AttrOr("href", ""))
	require.Equal(t, "New & Shiny", first.Find("a").Text())
	require.Equal(t, "2024-02-01", first.Find("time").Text())
	require.Equal(t, "tech", first.Find("span.category").Text())
	require.Equal(t, "life/old.html", items.Eq(1).Find("a").AttrOr("href", ""))
}

func TestIndex_RejectsUnrenderedPost(t *testing.T) {
	c := collectionOf(t, &post.Post{SourcePath: "a.md", Metadata: post.Metadata{Title: "A"}})

	_, err := NewAssembler(testInfo, t.TempDir()).Index(c)
	require.Error(t, err)
	require.True(t, errors.IsCategory(err, errors.CategoryInternal))
}

func TestIndex_Empty(t *testing.T) {
	data, err := RenderIndex(testInfo, nil)
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 1, doc.Find("ul.post-list").Length())
	require.Equal(t, 0, doc.Find("ul.post-list li").Length())
}

type parsedFeed struct {
	Channel struct {
		Title       string `xml:"title"`
		Link        string `xml:"link"`
		Description string `xml:"description"`
		Items       []struct {
			Title       string `xml:"title"`
			Link        string `xml:"link"`
			Description string `xml:"description"`
			PubDate     string `xml:"pubDate"`
			GUID        string `xml:"guid"`
		} `xml:"item"`
	} `xml:"channel"`
}

func TestFeed_OrderAndFields(t *testing.T) {
	root := t.TempDir()
	c := collectionOf(t,
		renderedPost("c/a/jan.md", "a/jan.html", "January", "a", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		renderedPost("c/a/feb.md", "a/feb.html", "February", "a", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)),
	)

	path, err := NewAssembler(testInfo, root).Feed(c)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var feed parsedFeed
	require.NoError(t, xml.Unmarshal(data, &feed))
	require.Equal(t, "My Blog", feed.Channel.Title)
	require.Equal(t, "http://example.com", feed.Channel.Link)
	require.Equal(t, "My Blog Feed", feed.Channel.Description)

	require.Len(t, feed.Channel.Items, 2)
	require.Equal(t, "February", feed.Channel.Items[0].Title)
	require.Equal(t, "January", feed.Channel.Items[1].Title)
	require.Equal(t, "http://example.com/a/feb.html", feed.Channel.Items[0].Link)
	require.Equal(t, "<p>body of February</p>", feed.Channel.Items[0].Description)
	require.Equal(t, "Thu, 01 Feb 2024 00:00:00 +0000", feed.Channel.Items[0].PubDate)
	require.NotEqual(t, feed.Channel.Items[0].GUID, feed.Channel.Items[1].GUID)
}

func TestFeed_GUIDStableAcrossBuilds(t *testing.T) {
	p := renderedPost("c/a/x.md", "a/x.html", "X", "a", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	one, err := RenderFeed(testInfo, []*post.Post{p})
	require.NoError(t, err)
	two, err := RenderFeed(testInfo, []*post.Post{p})
	require.NoError(t, err)
	require.Equal(t, one, two)
}

func TestFeed_Empty(t *testing.T) {
	data, err := RenderFeed(testInfo, nil)
	require.NoError(t, err)
	var feed parsedFeed
	require.NoError(t, xml.Unmarshal(data, &feed))
	require.Empty(t, feed.Channel.Items)
	require.Equal(t, "My Blog", feed.Channel.Title)
}

func TestItemLink(t *testing.T) {
	link, err := ItemLink("https://blog.example.org/sub/", "life/hello world.html")
	require.NoError(t, err)
	require.Equal(t, "https://blog.example.org/sub/life/hello%20world.html", link)
}

func TestStylesheet_CopiesCustomVerbatim(t *testing.T) {
	root := t.TempDir()
	custom := filepath.Join(t.TempDir(), "theme.css")
	css := []byte("body { color: red; }\r\n/* ünïcode */")
	require.NoError(t, os.WriteFile(custom, css, 0o644))

	src, err := NewAssembler(testInfo, root).Stylesheet(custom)
	require.NoError(t, err)
	require.Equal(t, StylesheetCustom, src)

	got, err := os.ReadFile(filepath.Join(root, StylesheetFile))
	require.NoError(t, err)
	require.Equal(t, css, got)
}

func TestStylesheet_FallsBackToDefault(t *testing.T) {
	cases := map[string]func(t *testing.T) string{
		"not configured": func(t *testing.T) string { return "" },
		"missing file":   func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.css") },
		"directory":      func(t *testing.T) string { return t.TempDir() },
	}
	for name, custom := range cases {
		t.Run(name, func(t *testing.T) {
			root := t.TempDir()
			src, err := NewAssembler(testInfo, root).Stylesheet(custom(t))
			require.NoError(t, err)
			require.Equal(t, StylesheetDefault, src)

			got, err := os.ReadFile(filepath.Join(root, StylesheetFile))
			require.NoError(t, err)
			require.Equal(t, DefaultStylesheet(), got)
		})
	}
}

func TestStylesheet_UnwritableOutput(t *testing.T) {
	_, err := NewAssembler(testInfo, filepath.Join(t.TempDir(), "missing")).Stylesheet("")
	require.Error(t, err)
	require.True(t, errors.IsCategory(err, errors.CategoryIO))
}
