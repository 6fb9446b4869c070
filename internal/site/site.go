// Package site assembles the site-level artifacts of a build: the index page,
// the RSS feed and the stylesheet.
package site

import (
	"embed"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
)

// Fixed artifact names under the output root.
const (
	IndexFile      = "index.html"
	FeedFile       = "feed.xml"
	StylesheetFile = "style.css"
)

//go:embed templates/*.tmpl assets/*
var siteFS embed.FS

// Info describes the site as a whole.
type Info struct {
	Title       string
	BaseURL     string
	Description string
	Author      string
}

// Assembler writes site artifacts into an output root.
type Assembler struct {
	info Info
	root string
}

// NewAssembler returns an Assembler writing below outputRoot.
func NewAssembler(info Info, outputRoot string) *Assembler {
	return &Assembler{info: info, root: outputRoot}
}

func (a *Assembler) write(name string, data []byte) (string, error) {
	path := filepath.Join(a.root, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.IOFailure("write "+name, path, err)
	}
	return path, nil
}
