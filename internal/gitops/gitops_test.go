package gitops

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkRepo(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(path, ".git"), 0755))
}

// initRepo creates a real repository with the git binary, skipping the test
// when git is not available.
func initRepo(t *testing.T) string {
	t.Helper()
	if !IsInstalled() {
		t.Skip("git binary not available")
	}
	repo := t.TempDir()
	runGit(t, repo, "init", "--quiet")
	return repo
}

func runGit(t *testing.T, repo string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", append([]string{"-C", repo}, args...)...)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, output)
}

func TestFindRepos(t *testing.T) {
	base := t.TempDir()
	mkRepo(t, filepath.Join(base, "alpha"))
	mkRepo(t, filepath.Join(base, "nested", "beta"))
	require.NoError(t, os.MkdirAll(filepath.Join(base, "not-a-repo"), 0755))
	// A repository inside a repository is not reported separately
	mkRepo(t, filepath.Join(base, "alpha", "vendor", "inner"))

	repos, err := Git{}.FindRepos(base)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(base, "alpha"),
		filepath.Join(base, "nested", "beta"),
	}, repos)
}

func TestFindReposEmptyBase(t *testing.T) {
	repos, err := Git{}.FindRepos(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, repos)
}

func TestRemoteURLReturnsRawURL(t *testing.T) {
	repo := initRepo(t)
	runGit(t, repo, "remote", "add", "origin", "git@github.com:org/repo.git")

	url, err := Git{}.RemoteURL(repo, "origin")
	require.NoError(t, err)
	assert.Equal(t, "git@github.com:org/repo.git", url)

	// An installed rewrite rule must not leak into the reported URL, or an
	// unfixed remote would look identical to its aliased target.
	runGit(t, repo, "config", "url.git@github.com-work:.insteadOf", "git@github.com:")

	url, err = Git{}.RemoteURL(repo, "origin")
	require.NoError(t, err)
	assert.Equal(t, "git@github.com:org/repo.git", url)
}

func TestRemoteURLMissingRemote(t *testing.T) {
	repo := initRepo(t)

	_, err := Git{}.RemoteURL(repo, "origin")
	assert.Error(t, err)
}

func TestSetRemoteURL(t *testing.T) {
	repo := initRepo(t)
	runGit(t, repo, "remote", "add", "origin", "git@github.com:org/repo.git")

	require.NoError(t, Git{}.SetRemoteURL(repo, "origin", "git@github.com-work:org/repo.git"))

	url, err := Git{}.RemoteURL(repo, "origin")
	require.NoError(t, err)
	assert.Equal(t, "git@github.com-work:org/repo.git", url)

	remotes, err := Git{}.ListRemotes(repo)
	require.NoError(t, err)
	assert.Equal(t, []string{"origin"}, remotes)
}

func TestFindGitRoot(t *testing.T) {
	base := t.TempDir()
	repo := filepath.Join(base, "project")
	mkRepo(t, repo)
	deep := filepath.Join(repo, "src", "pkg")
	require.NoError(t, os.MkdirAll(deep, 0755))

	assert.Equal(t, repo, FindGitRoot(deep))
	assert.Equal(t, repo, FindGitRoot(repo))
	assert.Empty(t, FindGitRoot(base))
}
