package frontmatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	doc, err := Split(input)
	require.NoError(t, err)
	require.False(t, doc.HasFrontmatter)
	require.Empty(t, doc.Frontmatter)
	require.Equal(t, input, doc.Body)
}

func TestSplit_YAMLFrontmatter_SplitsFrontmatterAndBody(t *testing.T) {
	input := []byte("---\ntitle: Hello\ndate: 2024-01-01\n---\n# Title\n")

	doc, err := Split(input)
	require.NoError(t, err)
	require.True(t, doc.HasFrontmatter)
	require.Equal(t, "title: Hello\ndate: 2024-01-01\n", string(doc.Frontmatter))
	require.Equal(t, "# Title\n", string(doc.Body))
}

func TestSplit_SecondDelimiterInBody_IsKeptInBody(t *testing.T) {
	input := []byte("---\ntitle: A\n---\nintro\n---\nmore\n")

	doc, err := Split(input)
	require.NoError(t, err)
	require.Equal(t, "title: A\n", string(doc.Frontmatter))
	require.Equal(t, "intro\n---\nmore\n", string(doc.Body))
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	cases := map[string]string{
		"no closing line":   "---\nkey: value\n# Title\n",
		"only opening line": "---\n",
		"opening no eol":    "---",
		"dashes not a line": "---\ntitle: x\n----\nbody\n",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			doc, err := Split([]byte(input))
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrMissingClosingDelimiter))
			require.False(t, doc.HasFrontmatter)
		})
	}
}

func TestSplit_DelimiterNotOnFirstLine_IsBody(t *testing.T) {
	input := []byte("\n---\ntitle: x\n---\n")

	doc, err := Split(input)
	require.NoError(t, err)
	require.False(t, doc.HasFrontmatter)
	require.Equal(t, input, doc.Body)
}

func TestSplit_CRLF_SplitsFrontmatterAndBody(t *testing.T) {
	input := []byte("---\r\nkey: value\r\n---\r\n# Title\r\n")

	doc, err := Split(input)
	require.NoError(t, err)
	require.True(t, doc.HasFrontmatter)
	require.Equal(t, "\r\n", doc.Newline)
	require.Equal(t, []byte("key: value\r\n"), doc.Frontmatter)
	require.Equal(t, []byte("# Title\r\n"), doc.Body)
}

func TestSplit_EmptyFrontmatterBlock_SplitsAsHadWithEmptyFrontmatter(t *testing.T) {
	doc, err := Split([]byte("---\n---\n# Title\n"))
	require.NoError(t, err)
	require.True(t, doc.HasFrontmatter)
	require.Empty(t, doc.Frontmatter)
	require.Equal(t, []byte("# Title\n"), doc.Body)
}

func TestSplit_ClosingDelimiterAtEOF_EmptyBody(t *testing.T) {
	doc, err := Split([]byte("---\ntitle: x\n---"))
	require.NoError(t, err)
	require.True(t, doc.HasFrontmatter)
	require.Equal(t, "title: x\n", string(doc.Frontmatter))
	require.Empty(t, doc.Body)
}

func TestJoin_RoundTrip_ReconstructsOriginalBytes(t *testing.T) {
	cases := [][]byte{
		[]byte("# Title\n\nHello\n"),
		[]byte("---\nkey: value\n---\n# Title\n"),
		[]byte("---\n---\n# Title\n"),
		[]byte("---\r\nkey: value\r\n---\r\n# Title\r\n"),
	}

	for _, input := range cases {
		doc, err := Split(input)
		require.NoError(t, err)
		require.Equal(t, input, Join(doc))
	}
}

func TestParseYAML_ValidYAML_ReturnsMap(t *testing.T) {
	fields, err := ParseYAML([]byte("title: Hello\ntags:\n  - one\n"))
	require.NoError(t, err)
	require.Equal(t, "Hello", fields["title"])
	require.Equal(t, []any{"one"}, fields["tags"])
}

func TestParseYAML_Empty_ReturnsEmptyMap(t *testing.T) {
	fields, err := ParseYAML(nil)
	require.NoError(t, err)
	require.Empty(t, fields)
}

func TestParseYAML_InvalidYAML_ReturnsError(t *testing.T) {
	_, err := ParseYAML([]byte(": not yaml"))
	require.Error(t, err)
}

func TestParseYAML_NonMapping_ReturnsError(t *testing.T) {
	_, err := ParseYAML([]byte("- just\n- a list\n"))
	require.Error(t, err)
}
