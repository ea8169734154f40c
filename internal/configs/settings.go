package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/PolarWolf314/sealedconf/internal/configsource"
	"github.com/PolarWolf314/sealedconf/internal/keyring"
	"github.com/PolarWolf314/sealedconf/internal/secretfiles"
)

// SettingsFileName is looked up in the working directory.
const SettingsFileName = ".sealedconf.toml"

// EnvPlaceholder in a base file name expands to the environment name.
const EnvPlaceholder = "{env}"

// Environment variables naming the active environment, in priority order
// around the settings file.
const (
	EnvironmentVariable       = "SEALEDCONF_ENVIRONMENT"
	LegacyEnvironmentVariable = "ASPNETCORE_ENVIRONMENT"
)

type Settings struct {
	Environment      string   `toml:"environment"`
	BaseFiles        []string `toml:"base_files"`
	SecretsFile      string   `toml:"secrets_file"`
	Optional         bool     `toml:"optional"`
	ReloadOnChange   bool     `toml:"reload_on_change"`
	SecretSection    string   `toml:"secret_section"`
	EnvPrefix        string   `toml:"env_prefix"`
	ConnectionString string   `toml:"connection_string"`
	Salt             string   `toml:"salt,omitempty"`
}

// DefaultSettings mirrors the conventional appsettings layout.
func DefaultSettings() Settings {
	return Settings{
		BaseFiles:        []string{"appsettings.json", "appsettings." + EnvPlaceholder + ".json"},
		SecretsFile:      configsource.DefaultSecretsFile,
		Optional:         true,
		ReloadOnChange:   true,
		SecretSection:    secretfiles.DefaultSection,
		ConnectionString: "SampleDatabase",
	}
}

// LoadSettings reads dir/.sealedconf.toml over DefaultSettings. A missing
// file yields the defaults.
func LoadSettings(dir string) (Settings, error) {
	s := DefaultSettings()
	path := filepath.Join(dir, SettingsFileName)

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err := LoadTOML(path, &s); err != nil {
		return Settings{}, fmt.Errorf("failed to load settings from %s: %w", path, err)
	}
	if s.Salt != "" {
		if err := keyring.ValidateSalt(s.Salt); err != nil {
			return Settings{}, fmt.Errorf("settings %s: %w", path, err)
		}
	}
	return s, nil
}

// SaveSettings writes s to dir/.sealedconf.toml.
func SaveSettings(dir string, s Settings) error {
	path := filepath.Join(dir, SettingsFileName)
	if err := SaveTOML(path, s); err != nil {
		return fmt.Errorf("failed to save settings to %s: %w", path, err)
	}
	return nil
}

// ResolveEnvironment returns the active environment name. lookup is
// normally os.LookupEnv.
func (s Settings) ResolveEnvironment(lookup func(string) (string, bool)) string {
	if v, ok := lookup(EnvironmentVariable); ok && v != "" {
		return v
	}
	if s.Environment != "" {
		return s.Environment
	}
	v, _ := lookup(LegacyEnvironmentVariable)
	return v
}

// BasePaths expands BaseFiles for environment, relative to dir.
func (s Settings) BasePaths(dir, environment string) []string {
	var paths []string
	for _, name := range s.BaseFiles {
		if strings.Contains(name, EnvPlaceholder) {
			if environment == "" {
				continue
			}
			name = strings.ReplaceAll(name, EnvPlaceholder, environment)
		}
		paths = append(paths, resolve(dir, name))
	}
	return paths
}

// SecretsPath returns the secrets file path relative to dir.
func (s Settings) SecretsPath(dir string) string {
	if s.SecretsFile == "" {
		return ""
	}
	return resolve(dir, s.SecretsFile)
}

func resolve(dir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}
