package apply

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/byterings/gitid/internal/identity"
	"github.com/byterings/gitid/internal/managed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioModel(t *testing.T) *identity.Model {
	t.Helper()
	m := identity.NewModel()
	require.NoError(t, m.Add(identity.Identity{
		Label:      "personal",
		Name:       "Jane",
		Email:      "jane@home.net",
		SSHKeyPath: "~/.ssh/gitid_personal",
		Hosts:      []string{"github.com"},
		Paths:      []string{"~/oss"},
	}))
	require.NoError(t, m.Add(identity.Identity{
		Label:      "work",
		Name:       "Jane Doe",
		Email:      "jane@work.com",
		SSHKeyPath: "~/.ssh/gitid_work",
		Hosts:      []string{"github.com"},
		Paths:      []string{"~/company"},
	}))
	m.Default = "personal"
	return m
}

func options(t *testing.T, m *identity.Model) Options {
	t.Helper()
	dir := t.TempDir()
	fragments := filepath.Join(dir, "git")
	return Options{
		Model:     m,
		SSHConfig: filepath.Join(dir, "ssh_config"),
		GitConfig: filepath.Join(dir, "gitconfig"),
		FragmentPath: func(label string) string {
			return filepath.Join(fragments, label+".gitconfig")
		},
		Out: &bytes.Buffer{},
	}
}

func TestRunScenario(t *testing.T) {
	opts := options(t, scenarioModel(t))

	report, err := Run(opts)
	require.NoError(t, err)
	require.Empty(t, report.Errors)
	assert.Empty(t, report.Warnings)

	sshConfig, err := os.ReadFile(opts.SSHConfig)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(sshConfig), managed.StartMarker), "managed block must lead the SSH config")
	assert.Contains(t, string(sshConfig), "Host github.com\n")
	assert.Contains(t, string(sshConfig), "Host github.com-personal\n")
	assert.Contains(t, string(sshConfig), "Host github.com-work\n")

	// work is non-default: its fragment carries the rewrite
	workFragment, err := os.ReadFile(opts.FragmentPath("work"))
	require.NoError(t, err)
	assert.Contains(t, string(workFragment), "insteadOf = git@github.com:")

	// personal is default: no rewrite
	personalFragment, err := os.ReadFile(opts.FragmentPath("personal"))
	require.NoError(t, err)
	assert.NotContains(t, string(personalFragment), "insteadOf")

	gitConfig, err := os.ReadFile(opts.GitConfig)
	require.NoError(t, err)
	assert.Contains(t, string(gitConfig), "name = Jane\n")
	assert.Equal(t, 2, strings.Count(string(gitConfig), "[includeIf"))
	assert.Contains(t, string(gitConfig), opts.FragmentPath("personal"))
	assert.Contains(t, string(gitConfig), opts.FragmentPath("work"))
}

func TestRunIdempotent(t *testing.T) {
	opts := options(t, scenarioModel(t))

	_, err := Run(opts)
	require.NoError(t, err)
	first, err := os.ReadFile(opts.SSHConfig)
	require.NoError(t, err)
	firstGit, err := os.ReadFile(opts.GitConfig)
	require.NoError(t, err)

	_, err = Run(opts)
	require.NoError(t, err)
	second, err := os.ReadFile(opts.SSHConfig)
	require.NoError(t, err)
	secondGit, err := os.ReadFile(opts.GitConfig)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
	assert.Equal(t, string(firstGit), string(secondGit))
}

func TestRunPreservesUserContent(t *testing.T) {
	opts := options(t, scenarioModel(t))
	userContent := "Host jump\n    Port 2222\n"
	require.NoError(t, os.WriteFile(opts.SSHConfig, []byte(userContent), 0600))

	_, err := Run(opts)
	require.NoError(t, err)

	sshConfig, err := os.ReadFile(opts.SSHConfig)
	require.NoError(t, err)
	assert.Contains(t, string(sshConfig), userContent)
}

func TestRunWarnsOnShadowedHosts(t *testing.T) {
	opts := options(t, scenarioModel(t))
	require.NoError(t, os.WriteFile(opts.SSHConfig, []byte("Host github.com\n    User admin\n"), 0600))

	report, err := Run(opts)
	require.NoError(t, err)
	require.NotEmpty(t, report.Warnings)
	assert.Contains(t, report.Warnings[0], "github.com")
}

func TestRunDryRunWritesNothing(t *testing.T) {
	var out bytes.Buffer
	opts := options(t, scenarioModel(t))
	opts.DryRun = true
	opts.Out = &out

	report, err := Run(opts)
	require.NoError(t, err)
	assert.Empty(t, report.Errors)

	_, err = os.Stat(opts.SSHConfig)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(opts.GitConfig)
	assert.True(t, os.IsNotExist(err))

	assert.Contains(t, out.String(), "Host github.com-work")
	assert.Contains(t, out.String(), "[includeIf")
}

func TestRunDryRunPreviewsMerge(t *testing.T) {
	var out bytes.Buffer
	opts := options(t, scenarioModel(t))
	userContent := "Host jump\n    Port 2222\n"
	require.NoError(t, os.WriteFile(opts.SSHConfig, []byte(userContent), 0600))
	opts.DryRun = true
	opts.Out = &out

	_, err := Run(opts)
	require.NoError(t, err)

	// The preview shows the merge result, existing user content included,
	// while the file itself stays untouched
	assert.Contains(t, out.String(), userContent)

	sshConfig, err := os.ReadFile(opts.SSHConfig)
	require.NoError(t, err)
	assert.Equal(t, userContent, string(sshConfig))
}

func TestRunRejectsEmptyModel(t *testing.T) {
	_, err := Run(Options{Model: identity.NewModel()})
	require.Error(t, err)
}

func TestRunSkipsEmptyFragments(t *testing.T) {
	m := identity.NewModel()
	require.NoError(t, m.Add(identity.Identity{Label: "def", Name: "D", SSHKeyPath: "~/.ssh/k", Hosts: []string{"github.com"}}))
	require.NoError(t, m.Add(identity.Identity{Label: "blank"}))
	m.Default = "def"

	opts := options(t, m)
	report, err := Run(opts)
	require.NoError(t, err)
	require.Empty(t, report.Errors)

	_, err = os.Stat(opts.FragmentPath("blank"))
	assert.True(t, os.IsNotExist(err))
}
