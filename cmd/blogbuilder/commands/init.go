package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/frontmatter"
)

// SamplePost is the post created by init, relative to the content directory.
var SamplePost = filepath.Join("general", "hello-world.md")

const sampleBody = `Welcome to your new blog.

Posts live below the content directory, one directory per category. Each
file starts with a metadata block holding its title and date:

` + "```yaml" + `
title: Hello, World
date: 2024-01-01
` + "```" + `

Run ` + "`blogbuilder build`" + ` to render the site or ` + "`blogbuilder serve`" + ` to preview it.
`

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file and sample post"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	return RunInit(g.out(), root.Config, i.Force)
}

func RunInit(out io.Writer, configPath string, force bool) error {
	// Provide friendly user-facing messages on stdout.
	_, _ = fmt.Fprintln(out, "Initializing blogbuilder project")
	_, _ = fmt.Fprintf(out, "Writing configuration to %s\n", configPath)
	if err := config.Init(configPath, force); err != nil {
		_, _ = fmt.Fprintln(out, "Initialization failed")
		return err
	}

	cfg := config.Default()
	path := filepath.Join(cfg.ContentDir, SamplePost)
	if err := writePost(path, "Hello, World", time.Now().UTC().Truncate(time.Second), []byte(sampleBody), force); err != nil {
		_, _ = fmt.Fprintln(out, "Initialization failed")
		return err
	}
	_, _ = fmt.Fprintf(out, "Created sample post %s\n", path)
	_, _ = fmt.Fprintln(out, "initialized successfully")
	return nil
}

// writePost composes a document with title and date metadata and writes it,
// creating the category directory. Existing files are kept unless force.
func writePost(path, title string, date time.Time, body []byte, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("post already exists: %s (use --force to overwrite)", path)
	}
	doc, err := frontmatter.Compose(map[string]any{
		"title": title,
		"date":  date,
	}, body)
	if err != nil {
		return errors.InternalError("compose post", err).WithContext("path", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.IOFailure("create directory", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return errors.IOFailure("write post", path, err)
	}
	return nil
}
