package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// EnvConfigDir overrides the directory config.toml is read from.
const EnvConfigDir = "ASCIIDRAW_CONFIG_DIR"

type mergeOverlay struct {
	Bindings []BindingConfig `toml:"bindings"`
}

func getConfigFilePath() string {
	var configDirs []string

	// useful during development or other non-standard setups.
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		if s, err := os.Stat(dir); err == nil && s.IsDir() {
			return filepath.Join(dir, "config.toml")
		}
	}

	// os.UserConfigDir() already does this for linux leaving darwin to handle
	if runtime.GOOS == "darwin" {
		configDirs = append(configDirs, path.Join(os.Getenv("HOME"), ".config"))
		xdgConfigDir := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigDir != "" {
			configDirs = append(configDirs, xdgConfigDir)
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		configDirs = append(configDirs, configDir)
	}

	for _, dir := range configDirs {
		configPath := filepath.Join(dir, "asciidraw", "config.toml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
	}

	if len(configDirs) > 0 {
		return filepath.Join(configDirs[0], "asciidraw", "config.toml")
	}
	return ""
}

// GetConfigFilePath returns where the user config is read from, whether or
// not the file exists.
func GetConfigFilePath() string {
	return getConfigFilePath()
}

func loadDefaultConfig() *Config {
	config := &Config{}
	for _, name := range []string{"default/config.toml", "default/bindings.toml"} {
		data, err := configFS.ReadFile(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Fatal: no embedded %s found: %v\n", name, err)
			os.Exit(1)
		}
		if _, err := config.Load(string(data)); err != nil {
			fmt.Fprintf(os.Stderr, "Fatal: failed to load embedded %s: %v\n", name, err)
			os.Exit(1)
		}
	}
	return config
}

// Load overlays data onto c. User bindings shadow existing ones per scope and
// key. It returns the keys of data that no config field consumed.
func (c *Config) Load(data string) ([]string, error) {
	baseBindings := append([]BindingConfig(nil), c.Bindings...)

	metadata, err := toml.Decode(data, c)
	if err != nil {
		return nil, err
	}

	// Decode only merge-managed array/table fields into a fresh struct so these
	// collections are always read from file content, without carrying prior state.
	overlay := &mergeOverlay{}
	if _, err := toml.Decode(data, overlay); err != nil {
		return nil, err
	}

	if metadata.IsDefined("bindings") {
		c.Bindings = mergeBindings(baseBindings, overlay.Bindings)
	}

	var unknown []string
	for _, key := range metadata.Undecoded() {
		unknown = append(unknown, key.String())
	}
	return unknown, c.ValidateBindings()
}

// LoadConfigFile reads the user config. A missing file is not an error and
// yields nil data.
func LoadConfigFile() ([]byte, error) {
	configFile := getConfigFilePath()
	if configFile == "" {
		return nil, nil
	}
	data, err := os.ReadFile(configFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Init builds Current from the embedded defaults and the user config file.
// Warnings describe config keys that were ignored.
func Init() (warnings []string, err error) {
	cfg := loadDefaultConfig()
	data, err := LoadConfigFile()
	if err != nil {
		return nil, err
	}
	if data != nil {
		unknown, err := cfg.Load(string(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", getConfigFilePath(), err)
		}
		for _, key := range unknown {
			warnings = append(warnings, fmt.Sprintf("%s: unknown key %q ignored", getConfigFilePath(), key))
		}
	}
	if err := cfg.Validate(); err != nil {
		return warnings, fmt.Errorf("%s: %w", getConfigFilePath(), err)
	}
	Current = cfg
	return warnings, nil
}

// DefaultConfigTOML returns the embedded default config, used by
// "asciidraw config init".
func DefaultConfigTOML() []byte {
	data, _ := configFS.ReadFile("default/config.toml")
	return data
}
