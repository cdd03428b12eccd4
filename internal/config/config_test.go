package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/byterings/gitid/internal/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestSaveAndLoadModel(t *testing.T) {
	setHome(t)

	model := identity.NewModel()
	require.NoError(t, model.Add(identity.Identity{
		Label: "work",
		Name:  "Jane Doe",
		Email: "jane@work.com",
		Hosts: []string{"github.com"},
		Paths: []string{"~/company"},
	}))
	model.Default = "work"

	require.NoError(t, SaveModel(model))

	loaded, warnings, err := LoadModel()
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, "work", loaded.Default)
	require.Len(t, loaded.Identities, 1)
	assert.Equal(t, "Jane Doe", loaded.Identities[0].Name)
}

func TestSaveModelRefusesEmptyModel(t *testing.T) {
	setHome(t)

	model := identity.NewModel()
	require.NoError(t, model.Add(identity.Identity{Label: "solo", Email: "solo@example.com"}))
	model.Default = "solo"
	require.NoError(t, SaveModel(model))

	// Emptying the model must not clobber a loadable file on disk
	model.Remove("solo")
	err := SaveModel(model)
	require.Error(t, err)
	var cfgErr *identity.ConfigError
	assert.True(t, errors.As(err, &cfgErr))

	loaded, _, err := LoadModel()
	require.NoError(t, err)
	assert.Equal(t, "solo", loaded.Default)
}

func TestLoadModelMissingFile(t *testing.T) {
	setHome(t)

	_, _, err := LoadModel()
	require.Error(t, err)
	var cfgErr *identity.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestLoadSettingsDefaults(t *testing.T) {
	home := setHome(t)

	settings, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".ssh", "config"), settings.SSHConfig)
	assert.Equal(t, filepath.Join(home, ".gitconfig"), settings.GitConfig)
	assert.Equal(t, filepath.Join(home, ".gitid", "git"), settings.FragmentsDir)
	assert.Equal(t, filepath.Join(home, ".gitid", "git", "work.gitconfig"), settings.FragmentPath("work"))
}

func TestLoadSettingsOverrides(t *testing.T) {
	home := setHome(t)
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".gitid"), 0700))
	override := "ssh_config = \"/etc/ssh/alt_config\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, ".gitid", "settings.toml"), []byte(override), 0600))

	settings, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "/etc/ssh/alt_config", settings.SSHConfig)
	// Unset fields still default
	assert.Equal(t, filepath.Join(home, ".gitconfig"), settings.GitConfig)
}

func TestSaveSettingsRoundTrip(t *testing.T) {
	setHome(t)

	settings := &Settings{Version: "1", SSHConfig: "/alt/ssh", GitConfig: "/alt/git", FragmentsDir: "/alt/frags"}
	require.NoError(t, SaveSettings(settings))

	loaded, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, settings, loaded)
}
