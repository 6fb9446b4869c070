package commands

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
)

// NewCmd implements the 'new' command.
type NewCmd struct {
	Path  string `arg:"" name:"path" help:"Post location as category/slug"`
	Title string `short:"t" help:"Post title (defaults to the slug)"`
	Force bool   `help:"Overwrite an existing post"`
}

func (n *NewCmd) Run(g *Global, root *CLI) error {
	cfg, err := LoadConfig(root, SiteFlags{})
	if err != nil {
		return err
	}
	category, slug, err := ParsePostPath(n.Path)
	if err != nil {
		return err
	}
	title := n.Title
	if title == "" {
		title = strings.TrimSuffix(slug, path.Ext(slug))
	}
	if path.Ext(slug) == "" {
		slug += ".md"
	}

	dest := filepath.Join(cfg.ContentDir, category, slug)
	if err := writePost(dest, title, time.Now().UTC().Truncate(time.Second), []byte("\n"), n.Force); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.out(), "Created %s\n", dest)
	return nil
}

// ParsePostPath splits "category/slug" and rejects anything else.
func ParsePostPath(p string) (category, slug string, err error) {
	category, slug, ok := strings.Cut(filepath.ToSlash(p), "/")
	if !ok || category == "" || slug == "" || strings.Contains(slug, "/") ||
		category == "." || category == ".." || slug == "." || slug == ".." {
		return "", "", errors.ConfigInvalid("path", "must have the form category/slug")
	}
	if ext := path.Ext(slug); ext != "" && ext != ".md" && ext != ".txt" {
		return "", "", errors.ConfigInvalid("path", "extension must be .md or .txt")
	}
	return category, slug, nil
}
