package site

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
)

// StylesheetSource records which stylesheet a build emitted.
type StylesheetSource string

const (
	StylesheetCustom  StylesheetSource = "custom"
	StylesheetDefault StylesheetSource = "default"
)

// DefaultStylesheet returns the built-in stylesheet.
func DefaultStylesheet() []byte {
	css, err := siteFS.ReadFile("assets/default.css")
	if err != nil {
		// The file is embedded at compile time.
		panic(err)
	}
	return css
}

// Stylesheet writes style.css. A configured stylesheet that exists as a
// regular file is copied verbatim; otherwise the built-in default is written.
func (a *Assembler) Stylesheet(customPath string) (StylesheetSource, error) {
	if customPath != "" {
		info, err := os.Stat(customPath)
		switch {
		case err == nil && info.Mode().IsRegular():
			if err := a.copyStylesheet(customPath); err != nil {
				return "", err
			}
			return StylesheetCustom, nil
		case err == nil:
			slog.Warn("Stylesheet is not a regular file, using default", logfields.Path(customPath))
		default:
			slog.Warn("Stylesheet not found, using default", logfields.Path(customPath), logfields.Error(err))
		}
	}

	if _, err := a.write(StylesheetFile, DefaultStylesheet()); err != nil {
		return "", err
	}
	return StylesheetDefault, nil
}

func (a *Assembler) copyStylesheet(src string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.IOFailure("open stylesheet", src, err)
	}
	defer func() {
		_ = in.Close()
	}()

	dst := filepath.Join(a.root, StylesheetFile)
	out, err := os.Create(dst)
	if err != nil {
		return errors.IOFailure("create stylesheet", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return errors.IOFailure("copy stylesheet", dst, err)
	}
	if err := out.Close(); err != nil {
		return errors.IOFailure("close stylesheet", dst, err)
	}
	return nil
}
