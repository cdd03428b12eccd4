// Package managed injects generated content into files gitid does not own.
// Generated lines live between two sentinel marker lines; everything outside
// the markers belongs to the user and is preserved byte-for-byte.
package managed

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/byterings/gitid/internal/platform"
)

const (
	StartMarker = "# ---- BEGIN GITID MANAGED ----"
	EndMarker   = "# ---- END GITID MANAGED ----"
)

// Render computes the merged file content: the managed block first, then a
// blank line and the user's unmanaged content. The block goes first because
// the SSH client applies first-match-wins semantics across Host stanzas; a
// block below user content could be shadowed by a conflicting user stanza.
//
// Applying Render twice with the same block yields identical output.
func Render(existing, block string) string {
	preserved := Unmanaged(existing)

	var b strings.Builder
	b.WriteString(StartMarker + "\n")
	b.WriteString(block)
	if block != "" && !strings.HasSuffix(block, "\n") {
		b.WriteString("\n")
	}
	b.WriteString(EndMarker + "\n")

	if preserved != "" {
		b.WriteString("\n")
		b.WriteString(preserved)
	}

	return b.String()
}

// Unmanaged returns the content of existing that lies outside the managed
// block markers, with leading blank lines stripped. Stripping is what keeps
// repeated merges from accumulating blank lines.
func Unmanaged(existing string) string {
	scanner := bufio.NewScanner(strings.NewReader(existing))
	var result strings.Builder
	inside := false
	lastLineKept := false

	for scanner.Scan() {
		line := scanner.Text()
		lastLineKept = false
		switch strings.TrimSpace(line) {
		case StartMarker:
			inside = true
			continue
		case EndMarker:
			inside = false
			continue
		}
		if !inside {
			result.WriteString(line)
			result.WriteString("\n")
			lastLineKept = true
		}
	}

	preserved := strings.TrimLeft(result.String(), "\n")

	// The scanner drops line terminators, so a kept final line without one
	// would gain a newline here. Trim it back off so preservation stays
	// byte-for-byte on files missing a trailing newline.
	if lastLineKept && !strings.HasSuffix(existing, "\n") {
		preserved = strings.TrimSuffix(preserved, "\n")
	}

	return preserved
}

// Merge rewrites path so that its managed block holds exactly block,
// creating the file and its parent directory if needed. The file is
// replaced whole in a single atomic write.
func Merge(path, block string) error {
	existing := ""
	content, err := os.ReadFile(path)
	if err == nil {
		existing = string(content)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := platform.MkdirSecure(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	if err := platform.WriteFileAtomic(path, []byte(Render(existing, block))); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
