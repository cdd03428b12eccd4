package managed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const block = "Host github.com-work\n    HostName github.com\n"

func TestRenderPlacesBlockFirst(t *testing.T) {
	existing := "Host myserver\n    User admin\n"
	out := Render(existing, block)

	require.True(t, strings.HasPrefix(out, StartMarker+"\n"), "managed block must come first")
	assert.Contains(t, out, EndMarker+"\n")
	assert.True(t, strings.Contains(out, existing), "user content must survive")

	// User content sits after the end marker
	assert.Less(t, strings.Index(out, EndMarker), strings.Index(out, "Host myserver"))
}

func TestRenderIdempotent(t *testing.T) {
	tests := []struct {
		name     string
		existing string
	}{
		{"empty file", ""},
		{"user content only", "Host myserver\n    User admin\n"},
		{"leading blank lines", "\n\n\nHost myserver\n"},
		{"stale managed block", StartMarker + "\nold stuff\n" + EndMarker + "\n\nHost myserver\n"},
		{"block not at top", "Host myserver\n" + StartMarker + "\nold\n" + EndMarker + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := Render(tt.existing, block)
			twice := Render(once, block)
			assert.Equal(t, once, twice)
		})
	}
}

func TestRenderPreservesUserContent(t *testing.T) {
	existing := "# my notes\n\nHost jump\n    Port 2222\n"
	out := Render(existing, block)
	assert.Contains(t, out, "# my notes\n\nHost jump\n    Port 2222\n")

	// Unchanged through repeated merges with different blocks
	out = Render(out, "something else\n")
	out = Render(out, block)
	assert.Contains(t, out, "# my notes\n\nHost jump\n    Port 2222\n")
}

func TestRenderReplacesOldBlockContent(t *testing.T) {
	out := Render("", "old content\n")
	out = Render(out, "new content\n")

	assert.NotContains(t, out, "old content")
	assert.Contains(t, out, "new content")
}

func TestUnmanaged(t *testing.T) {
	existing := StartMarker + "\ngenerated\n" + EndMarker + "\n\nuser line\n"
	assert.Equal(t, "user line\n", Unmanaged(existing))

	assert.Equal(t, "", Unmanaged(""))
	assert.Equal(t, "only user\n", Unmanaged("only user\n"))

	// Markers are matched ignoring surrounding whitespace
	indented := "  " + StartMarker + "  \nhidden\n  " + EndMarker + "\nkept\n"
	assert.Equal(t, "kept\n", Unmanaged(indented))
}

func TestUnmanagedNoTrailingNewline(t *testing.T) {
	// A final user line without a newline comes back exactly as written
	assert.Equal(t, "user line", Unmanaged("user line"))
	assert.Equal(t, "first\nlast", Unmanaged("first\nlast"))

	withBlock := StartMarker + "\ngenerated\n" + EndMarker + "\n\nuser line"
	assert.Equal(t, "user line", Unmanaged(withBlock))

	// When the unterminated final line belongs to the managed section, the
	// earlier user lines keep their newlines
	truncated := "user line\n" + StartMarker + "\ngenerated\n" + EndMarker
	assert.Equal(t, "user line\n", Unmanaged(truncated))

	out := Render("user line", block)
	assert.True(t, strings.HasSuffix(out, "\nuser line"))
	assert.Equal(t, out, Render(out, block))
}

func TestMergeWritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config")

	require.NoError(t, Merge(path, block))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Render("", block), string(content))

	// Second merge with identical block is byte-identical
	require.NoError(t, Merge(path, block))
	again, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(content), string(again))
}

func TestMergeKeepsExistingContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")
	require.NoError(t, os.WriteFile(path, []byte("Host mine\n"), 0600))

	require.NoError(t, Merge(path, block))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Host mine\n")
	assert.True(t, strings.HasPrefix(string(content), StartMarker))
}
