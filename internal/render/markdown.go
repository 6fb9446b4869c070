package render

import (
	"bytes"
	"html/template"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// maxDescription bounds the page description length in runes.
const maxDescription = 160

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			// Raw HTML in posts is passed through.
			html.WithUnsafe(),
		),
	)
}

// Markdown converts a post body to HTML. The conversion is a pure function of
// its input.
func (r *Renderer) Markdown(body []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(body, &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// Summarize returns the text of the first paragraph of rendered HTML,
// whitespace-collapsed and cut to a meta description length.
func Summarize(content template.HTML) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(content)))
	if err != nil {
		return ""
	}
	text := strings.Join(strings.Fields(doc.Find("p").First().Text()), " ")
	if utf8.RuneCountInString(text) <= maxDescription {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:maxDescription-1])) + "…"
}
