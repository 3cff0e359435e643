package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/tidwall/jsonc"
)

type DepTreeConfig struct {
	ConfigVersion string   `json:"configVersion"`
	TsConfig      string   `json:"tsconfig,omitempty"`
	Extensions    []string `json:"extensions,omitempty"`
	Exclude       []string `json:"exclude,omitempty"`
}

var configFileName = "dep-tree.config.json"

var currentConfigVersion = semver.MustParse("1.0.0")

const supportedConfigVersionConstraint = "~1"

// LoadConfig reads the config at configPath, which can be the file itself
// or a directory holding dep-tree.config.json.
func LoadConfig(configPath string) (DepTreeConfig, error) {
	fileInfo, err := os.Stat(configPath)
	if err != nil {
		return DepTreeConfig{}, err
	}

	actualPath := configPath
	if fileInfo.IsDir() {
		actualPath = filepath.Join(configPath, configFileName)
	}

	content, err := os.ReadFile(actualPath)
	if err != nil {
		return DepTreeConfig{}, err
	}

	return ParseConfig(content)
}

func ParseConfig(content []byte) (DepTreeConfig, error) {
	var config DepTreeConfig
	if err := json.Unmarshal(jsonc.ToJSON(content), &config); err != nil {
		return DepTreeConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if config.ConfigVersion == "" {
		config.ConfigVersion = currentConfigVersion.Original()
	}
	if err := validateConfigVersion(config.ConfigVersion); err != nil {
		return DepTreeConfig{}, err
	}

	for i, ext := range config.Extensions {
		if ext != "" && ext[0] != '.' {
			return DepTreeConfig{}, fmt.Errorf("extensions[%d]: '%s' must start with '.'", i, ext)
		}
	}
	for i, pattern := range config.Exclude {
		if err := validatePattern(pattern); err != nil {
			return DepTreeConfig{}, fmt.Errorf("exclude[%d]: %w", i, err)
		}
	}

	return config, nil
}

func validateConfigVersion(version string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid configVersion '%s': %w", version, err)
	}
	constraint, err := semver.NewConstraint(supportedConfigVersionConstraint)
	if err != nil {
		return err
	}
	if !constraint.Check(v) {
		return fmt.Errorf("unsupported configVersion '%s', supported: %s", version, supportedConfigVersionConstraint)
	}
	return nil
}

func validatePattern(pattern string) error {
	if len(pattern) >= 2 && pattern[0] == '.' && (pattern[1] == '/' || pattern[1] == '\\') {
		return fmt.Errorf("pattern '%s' starts with './' or '.\\', which is not allowed. Use paths that starts with file or directory name", pattern)
	}
	if len(pattern) >= 3 && pattern[0] == '.' && pattern[1] == '.' && (pattern[2] == '/' || pattern[2] == '\\') {
		return fmt.Errorf("pattern '%s' starts with '../' or '..\\', which is not allowed. Use paths that starts with file or directory name", pattern)
	}
	return nil
}
