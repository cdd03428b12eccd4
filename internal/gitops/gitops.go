// Package gitops shells out to the git binary for the repository operations
// gitid needs: remote enumeration and mutation, and repository discovery.
package gitops

import (
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Ops is the set of external git capabilities the remote updater consumes.
// Tests substitute a fake; Git runs the real binary.
type Ops interface {
	FindRepos(base string) ([]string, error)
	ListRemotes(repo string) ([]string, error)
	RemoteURL(repo, name string) (string, error)
	SetRemoteURL(repo, name, url string) error
}

// Git implements Ops against the installed git binary
type Git struct{}

// IsInstalled checks if git is installed
func IsInstalled() bool {
	cmd := exec.Command("git", "--version")
	return cmd.Run() == nil
}

// FindRepos walks base and returns every directory containing a .git
// directory. Nested repositories inside a found repository are not visited.
func (Git) FindRepos(base string) ([]string, error) {
	var repos []string

	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsPermission(err) {
				return fs.SkipDir
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if _, statErr := os.Stat(filepath.Join(path, ".git")); statErr == nil {
			repos = append(repos, path)
			return fs.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", base, err)
	}

	return repos, nil
}

// ListRemotes returns the remote names configured in repo
func (Git) ListRemotes(repo string) ([]string, error) {
	cmd := exec.Command("git", "-C", repo, "remote")
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git remote failed in %s: %w", repo, err)
	}

	var remotes []string
	for _, line := range strings.Split(strings.TrimSpace(string(output)), "\n") {
		if line != "" {
			remotes = append(remotes, line)
		}
	}
	return remotes, nil
}

// RemoteURL returns the raw configured URL of a remote, not the effective
// URL after insteadOf rewriting. 'git remote get-url' applies insteadOf
// rules, so reading the config key directly is the only way to see what is
// actually stored; comparing against the rewritten URL would hide remotes
// that still need fixing once rewrite rules are installed.
func (Git) RemoteURL(repo, name string) (string, error) {
	cmd := exec.Command("git", "-C", repo, "config", "--get", "remote."+name+".url")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to read remote.%s.url in %s: %w", name, repo, err)
	}
	return strings.TrimSpace(string(output)), nil
}

// SetRemoteURL points a remote at a new URL
func (Git) SetRemoteURL(repo, name, url string) error {
	cmd := exec.Command("git", "-C", repo, "remote", "set-url", name, url)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git remote set-url failed: %s: %w", strings.TrimSpace(string(output)), err)
	}
	return nil
}

// FindGitRoot walks up from path to find the enclosing repository root
func FindGitRoot(path string) string {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return ""
	}

	current := absPath
	for {
		gitDir := filepath.Join(current, ".git")
		if info, err := os.Stat(gitDir); err == nil && info.IsDir() {
			return current
		}

		parent := filepath.Dir(current)
		if parent == current {
			return ""
		}
		current = parent
	}
}
