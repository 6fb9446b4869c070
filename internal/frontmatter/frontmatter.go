// Package frontmatter splits documents into a `---` delimited YAML metadata
// block and a body, and serializes metadata back into that form.
package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// Delimiter is the line that opens and closes a metadata block.
const Delimiter = "---"

// ErrMissingClosingDelimiter indicates the document started with a metadata
// delimiter but did not contain a closing delimiter line.
var ErrMissingClosingDelimiter = errors.New("metadata block start delimiter found but closing delimiter is missing")

// Document is the result of splitting a source file.
type Document struct {
	// Frontmatter is the raw YAML between the delimiter lines (nil when absent).
	Frontmatter []byte
	Body        []byte
	// HasFrontmatter reports whether the document opened with a delimiter line.
	HasFrontmatter bool
	Newline        string
}

// Split separates the metadata block from the body.
//
// A block is recognized only when the very first line is the delimiter. The
// block ends at the next line consisting solely of the delimiter; everything
// after that line is the body. A document whose first line is the delimiter
// but which never closes the block yields ErrMissingClosingDelimiter.
func Split(content []byte) (Document, error) {
	nl := detectNewline(content)
	doc := Document{Body: content, Newline: nl}

	first, rest, found := cutLine(content)
	if string(first) != Delimiter {
		return doc, nil
	}
	if !found {
		// "---" with nothing after it never closes.
		return Document{Newline: nl}, ErrMissingClosingDelimiter
	}

	offset := 0
	for offset <= len(rest) {
		line, tail, more := cutLine(rest[offset:])
		if string(line) == Delimiter {
			return Document{
				Frontmatter:    rest[:offset],
				Body:           tail,
				HasFrontmatter: true,
				Newline:        nl,
			}, nil
		}
		if !more {
			break
		}
		offset = len(rest) - len(tail)
	}
	return Document{Newline: nl}, ErrMissingClosingDelimiter
}

// Join reassembles a document from raw frontmatter and body.
//
// If the document had no frontmatter, Join returns the body as-is.
func Join(doc Document) []byte {
	if !doc.HasFrontmatter {
		return doc.Body
	}
	nl := doc.Newline
	if nl == "" {
		nl = "\n"
	}

	var buf bytes.Buffer
	buf.Grow(2*(len(Delimiter)+len(nl)) + len(doc.Frontmatter) + len(doc.Body))
	buf.WriteString(Delimiter + nl)
	buf.Write(doc.Frontmatter)
	buf.WriteString(Delimiter + nl)
	buf.Write(doc.Body)
	return buf.Bytes()
}

// ParseYAML parses raw YAML frontmatter (without delimiters) into a map.
func ParseYAML(frontmatter []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(frontmatter)) == 0 {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(frontmatter, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// cutLine returns the first line of b without its terminator, the remainder
// after the terminator, and whether a terminator was found.
func cutLine(b []byte) (line, rest []byte, found bool) {
	i := bytes.IndexByte(b, '\n')
	if i < 0 {
		return bytes.TrimSuffix(b, []byte("\r")), nil, false
	}
	return bytes.TrimSuffix(b[:i], []byte("\r")), b[i+1:], true
}

func detectNewline(content []byte) string {
	i := bytes.IndexByte(content, '\n')
	if i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
