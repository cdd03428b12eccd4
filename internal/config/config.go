// Package config manages the gitid config directory: the identities file in
// its own text format, and tool settings in TOML.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/byterings/gitid/internal/identity"
	"github.com/byterings/gitid/internal/platform"
)

const (
	IdentitiesFileName = "identities.conf"
	SettingsFileName   = "settings.toml"
	FragmentsDirName   = "git"
)

// Settings are optional overrides for where gitid writes generated
// configuration. Empty fields fall back to the standard locations.
type Settings struct {
	Version      string `toml:"version"`
	SSHConfig    string `toml:"ssh_config"`    // target for the managed SSH block
	GitConfig    string `toml:"git_config"`    // target for the managed gitconfig block
	FragmentsDir string `toml:"fragments_dir"` // directory for per-identity fragments
}

// GetConfigDir returns the path to the gitid config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, platform.GetConfigDirName()), nil
}

// GetIdentitiesPath returns the path to the identities file
func GetIdentitiesPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, IdentitiesFileName), nil
}

// GetSettingsPath returns the path to the settings file
func GetSettingsPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, SettingsFileName), nil
}

// CreateConfigDir creates the gitid config directory
func CreateConfigDir() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}
	return platform.MkdirSecure(configDir)
}

// IdentitiesExist checks if the identities file exists
func IdentitiesExist() (bool, error) {
	path, err := GetIdentitiesPath()
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// LoadModel reads and parses the identities file. Parse warnings are
// returned for the caller to report; a missing or empty file is fatal.
func LoadModel() (*identity.Model, []string, error) {
	path, err := GetIdentitiesPath()
	if err != nil {
		return nil, nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, &identity.ConfigError{Reason: fmt.Sprintf("%s not found, run 'gitid setup' first", platform.ShortenPath(path))}
		}
		return nil, nil, &identity.ConfigError{Reason: "unreadable identities file", Err: err}
	}

	return identity.Parse(data)
}

// SaveModel serializes the model back to the identities file. An empty
// model is refused: the file it would produce cannot be loaded back.
func SaveModel(m *identity.Model) error {
	if len(m.Identities) == 0 {
		return &identity.ConfigError{Reason: "refusing to write an identities file with no identities"}
	}
	if err := CreateConfigDir(); err != nil {
		return err
	}
	path, err := GetIdentitiesPath()
	if err != nil {
		return err
	}
	if err := platform.WriteFileAtomic(path, m.Marshal()); err != nil {
		return fmt.Errorf("failed to write identities file: %w", err)
	}
	return nil
}

// LoadSettings reads settings.toml, filling defaults for anything unset.
// A missing file yields pure defaults.
func LoadSettings() (*Settings, error) {
	settings := &Settings{Version: "1"}

	path, err := GetSettingsPath()
	if err != nil {
		return nil, err
	}

	if _, err := toml.DecodeFile(path, settings); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}

	if settings.SSHConfig == "" {
		settings.SSHConfig, err = platform.GetSSHConfigPath()
		if err != nil {
			return nil, err
		}
	}
	if settings.GitConfig == "" {
		settings.GitConfig, err = platform.GetGitConfigPath()
		if err != nil {
			return nil, err
		}
	}
	if settings.FragmentsDir == "" {
		configDir, err := GetConfigDir()
		if err != nil {
			return nil, err
		}
		settings.FragmentsDir = filepath.Join(configDir, FragmentsDirName)
	}

	return settings, nil
}

// SaveSettings writes settings.toml
func SaveSettings(settings *Settings) error {
	if err := CreateConfigDir(); err != nil {
		return err
	}
	path, err := GetSettingsPath()
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open settings file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(settings); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	return nil
}

// FragmentPath returns the per-identity gitconfig fragment path for a label
func (s *Settings) FragmentPath(label string) string {
	return filepath.Join(s.FragmentsDir, label+".gitconfig")
}
