package site

import (
	"bytes"
	"html/template"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
	"git.home.luguber.info/inful/blogbuilder/internal/render"
)

var indexTemplate = template.Must(
	template.New("index.html.tmpl").Funcs(render.Funcs).ParseFS(siteFS, "templates/index.html.tmpl"),
)

type indexData struct {
	Title      string
	Stylesheet string
	Feed       string
	Posts      []*post.Post
}

// RenderIndex renders the listing page for posts already in display order.
func RenderIndex(info Info, posts []*post.Post) ([]byte, error) {
	var buf bytes.Buffer
	err := indexTemplate.Execute(&buf, indexData{
		Title:      info.Title,
		Stylesheet: render.StylesheetHref,
		Feed:       "/" + FeedFile,
		Posts:      posts,
	})
	if err != nil {
		return nil, errors.InternalError("execute index template", err)
	}
	return buf.Bytes(), nil
}

// Index writes index.html listing every post newest first. Every post must
// already have its output path.
func (a *Assembler) Index(posts *post.Collection) (string, error) {
	if err := posts.RequireRendered(); err != nil {
		return "", err
	}
	data, err := RenderIndex(a.info, posts.Sorted())
	if err != nil {
		return "", err
	}
	return a.write(IndexFile, data)
}
