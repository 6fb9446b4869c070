package frontmatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSerializeYAML_EmptyMap_ReturnsEmpty(t *testing.T) {
	out, err := SerializeYAML(map[string]any{}, "\n")
	require.NoError(t, err)
	require.Equal(t, "", string(out))
}

func TestSerializeYAML_DeterministicOrderAndTrailingNewline(t *testing.T) {
	fields := map[string]any{
		"b": "two",
		"a": "one",
		"c": 3,
	}

	out1, err := SerializeYAML(fields, "\n")
	require.NoError(t, err)
	out2, err := SerializeYAML(fields, "\n")
	require.NoError(t, err)
	require.Equal(t, string(out1), string(out2))
	require.Equal(t, "a: one\nb: two\nc: 3\n", string(out1))
}

func TestSerializeYAML_NewlineStyle_CRLF(t *testing.T) {
	out, err := SerializeYAML(map[string]any{"a": "one"}, "\r\n")
	require.NoError(t, err)
	require.Equal(t, "a: one\r\n", string(out))
}

func TestSerializeYAML_NestedMap_SortsKeysRecursively(t *testing.T) {
	fields := map[string]any{
		"outer": map[string]any{
			"b": 2,
			"a": 1,
		},
	}

	out, err := SerializeYAML(fields, "\n")
	require.NoError(t, err)
	require.Equal(t, "outer:\n  a: 1\n  b: 2\n", string(out))
}

func TestSerializeYAML_Time_WritesRFC3339(t *testing.T) {
	d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out, err := SerializeYAML(map[string]any{"date": d}, "\n")
	require.NoError(t, err)
	require.Equal(t, "date: 2024-01-01T00:00:00Z\n", string(out))
}

func TestCompose_SplitsBackIntoSameParts(t *testing.T) {
	fields := map[string]any{"title": "Hello", "draft": false}
	doc, err := Compose(fields, []byte("Body text\n"))
	require.NoError(t, err)

	parts, err := Split(doc)
	require.NoError(t, err)
	require.True(t, parts.HasFrontmatter)
	require.Equal(t, "Body text\n", string(parts.Body))

	parsed, err := ParseYAML(parts.Frontmatter)
	require.NoError(t, err)
	require.Equal(t, fields, parsed)
}
