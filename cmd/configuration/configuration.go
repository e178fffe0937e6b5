package configuration

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	defaultConfigFileName = "config"
	// HyperlinksHomeDir is the per-user directory holding the optional
	// configuration file.
	HyperlinksHomeDir = ".hyperlinks"
)

// Loader loads the user configuration.
type Loader interface {
	Load() (*Config, error)
}

// DefaultLoader reads the configuration from $HYPERLINKSCONFIG or, when
// unset, from ~/.hyperlinks/config. A missing file yields the zero Config.
type DefaultLoader struct{}

// Load implements Loader.
func (d *DefaultLoader) Load() (*Config, error) {
	if configFilePath, found := os.LookupEnv("HYPERLINKSCONFIG"); found {
		if configFilePath == "" {
			return nil, fmt.Errorf("the provided environment variable HYPERLINKSCONFIG is set to empty string")
		}
		return load(configFilePath)
	}

	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %v", err)
	}

	return load(filepath.Join(userHomeDir, HyperlinksHomeDir, defaultConfigFileName))
}

func load(configFilePath string) (*Config, error) {
	stat, err := os.Stat(configFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to get file info for configuration file path %s: %v", configFilePath, err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("the config file path %s is a directory, instead of a file", configFilePath)
	}
	configFile, err := os.ReadFile(configFilePath)
	if err != nil {
		return nil, err
	}

	config := &Config{}
	if err := yaml.Unmarshal(configFile, config); err != nil {
		return nil, err
	}
	return config, nil
}
