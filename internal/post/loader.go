package post

import (
	stdErrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/frontmatter"
)

// Load reads a source document and returns a Post with body, metadata,
// category and source path set.
//
// Documents without a metadata block get the file's base name (without
// extension) as title and its modification time as date.
func Load(path string) (*Post, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.IOFailure("read document", path, err)
	}

	doc, err := frontmatter.Split(content)
	if err != nil {
		return nil, errors.ParseFailure(path, err)
	}

	var md Metadata
	if doc.HasFrontmatter {
		fields, err := frontmatter.ParseYAML(doc.Frontmatter)
		if err != nil {
			return nil, errors.ParseFailure(path, err)
		}
		md, err = DecodeMetadata(fields)
		if err != nil {
			var fe *fieldError
			if stdErrors.As(err, &fe) {
				return nil, errors.DataInvalid(path, fe.field, fe.reason)
			}
			return nil, errors.DataInvalid(path, "metadata", err.Error())
		}
	} else {
		info, err := os.Stat(path)
		if err != nil {
			return nil, errors.IOFailure("stat document", path, err)
		}
		md = Metadata{
			Title: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
			Date:  info.ModTime(),
			Extra: map[string]any{},
		}
	}

	fp, err := Fingerprint(md, doc.Body)
	if err != nil {
		return nil, errors.InternalError("fingerprint document", err).WithContext("path", path)
	}

	return &Post{
		Body:        doc.Body,
		Metadata:    md,
		Category:    filepath.Base(filepath.Dir(path)),
		SourcePath:  path,
		Fingerprint: fp,
	}, nil
}

// Fingerprint computes the canonical content fingerprint for a post: the
// serialized metadata (LF newlines, single trailing newline trimmed) hashed
// together with the body.
func Fingerprint(md Metadata, body []byte) (string, error) {
	serialized, err := frontmatter.SerializeYAML(md.Fields(), "\n")
	if err != nil {
		return "", err
	}
	fm := strings.TrimSuffix(string(serialized), "\n")
	return mdfp.CalculateFingerprintFromParts(fm, string(body)), nil
}
