package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// LoadAliasConfig reads the alias configuration at configPath. YAML files
// (.yaml, .yml) hold top level baseUrl and paths keys. Anything else is read
// as a tsconfig (JSON or JSONC) using compilerOptions.baseUrl and
// compilerOptions.paths, following "extends". Key order of paths is kept as
// it defines match precedence.
func LoadAliasConfig(configPath string) (AliasConfig, error) {
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return AliasConfig{}, err
	}

	var config AliasConfig
	switch strings.ToLower(filepath.Ext(absPath)) {
	case ".yaml", ".yml":
		config, err = parseYamlAliasConfig(absPath)
	default:
		config, err = parseTsConfigAliases(absPath)
	}
	if err != nil {
		return AliasConfig{}, err
	}

	if err := config.Validate(); err != nil {
		return AliasConfig{}, fmt.Errorf("invalid alias config '%s': %w", configPath, err)
	}
	return config, nil
}

type tsConfigFile struct {
	Extends         extendsField `json:"extends"`
	CompilerOptions struct {
		BaseUrl *string      `json:"baseUrl"`
		Paths   orderedPaths `json:"paths"`
	} `json:"compilerOptions"`
}

// extendsField accepts both the string and the array form of "extends".
type extendsField []string

func (e *extendsField) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if strings.TrimSpace(single) != "" {
			*e = extendsField{single}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("extends must be a string or an array of strings")
	}
	*e = many
	return nil
}

// orderedPaths decodes a JSON object of pattern -> targets keeping key order.
type orderedPaths []AliasPattern

func (p *orderedPaths) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("paths must be an object")
	}

	patterns := orderedPaths{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key := keyTok.(string)
		var targets []string
		if err := dec.Decode(&targets); err != nil {
			return fmt.Errorf("paths['%s'] must be an array of strings", key)
		}
		patterns = append(patterns, AliasPattern{Key: key, Targets: targets})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	*p = patterns
	return nil
}

// tsConfigLayer is a tsconfig merged with everything it extends. Targets in
// patterns are relative to anchor.
type tsConfigLayer struct {
	baseUrl  string
	anchor   string
	patterns []AliasPattern
	// hasPaths is set when the file itself declares compilerOptions.paths
	hasPaths bool
}

func parseTsConfigAliases(tsconfigPath string) (AliasConfig, error) {
	layer, err := loadTsConfigLayer(tsconfigPath, map[string]bool{})
	if err != nil {
		return AliasConfig{}, err
	}
	return AliasConfig{
		BaseDirectory: layer.anchor,
		Patterns:      layer.patterns,
	}, nil
}

func readTsConfigFile(tsconfigPath string) (tsConfigFile, error) {
	var parsed tsConfigFile
	content, err := os.ReadFile(tsconfigPath)
	if err != nil {
		return parsed, err
	}
	if err := json.Unmarshal(jsonc.ToJSON(content), &parsed); err != nil {
		return parsed, fmt.Errorf("failed to unmarshal tsconfig '%s': %w", tsconfigPath, err)
	}
	return parsed, nil
}

func loadTsConfigLayer(tsconfigPath string, seen map[string]bool) (tsConfigLayer, error) {
	seen[tsconfigPath] = true
	dir := filepath.Dir(tsconfigPath)

	parsed, err := readTsConfigFile(tsconfigPath)
	if err != nil {
		return tsConfigLayer{}, err
	}

	// later entries of an extends array override earlier ones
	var base *tsConfigLayer
	for _, ext := range parsed.Extends {
		basePath := findExtendedTsConfig(ext, dir)
		if basePath == "" {
			logWarning("could not find config '%s' extended by '%s'", ext, tsconfigPath)
			continue
		}
		if seen[basePath] {
			continue
		}
		extended, err := loadTsConfigLayer(basePath, seen)
		if err != nil {
			return tsConfigLayer{}, err
		}
		if base == nil {
			base = &extended
			continue
		}
		baseUrl := extended.baseUrl
		if baseUrl == "" {
			baseUrl = base.baseUrl
		}
		merged := mergeTsConfigLayers(*base, extended, baseUrl)
		base = &merged
	}

	own := tsConfigLayer{
		anchor:   dir,
		patterns: []AliasPattern(parsed.CompilerOptions.Paths),
		hasPaths: parsed.CompilerOptions.Paths != nil,
	}
	if parsed.CompilerOptions.BaseUrl != nil {
		own.baseUrl = JoinWithDir(dir, *parsed.CompilerOptions.BaseUrl)
		own.anchor = own.baseUrl
	}

	if base == nil {
		return own, nil
	}

	// paths are relative to baseUrl, inherited one included
	if own.baseUrl == "" && base.baseUrl != "" {
		own.anchor = base.baseUrl
		return mergeTsConfigLayers(*base, own, base.baseUrl), nil
	}
	return mergeTsConfigLayers(*base, own, own.baseUrl), nil
}

// mergeTsConfigLayers overlays child onto base. paths is not merged key by
// key: a child declaring paths replaces the base table, otherwise the base
// table is inherited with targets rebased to the merged anchor.
func mergeTsConfigLayers(base tsConfigLayer, child tsConfigLayer, baseUrl string) tsConfigLayer {
	anchor := child.anchor
	if baseUrl != "" {
		anchor = baseUrl
	}

	merged := tsConfigLayer{baseUrl: baseUrl, anchor: anchor, hasPaths: child.hasPaths || base.hasPaths}
	source := base
	if child.hasPaths {
		source = child
	}
	for _, pattern := range source.patterns {
		merged.patterns = append(merged.patterns, rebaseAliasPattern(pattern, source.anchor, anchor))
	}
	return merged
}

// rebaseAliasPattern rewrites relative targets so that they point correctly
// from toDir instead of fromDir.
func rebaseAliasPattern(pattern AliasPattern, fromDir string, toDir string) AliasPattern {
	if fromDir == toDir {
		return pattern
	}
	targets := make([]string, 0, len(pattern.Targets))
	for _, target := range pattern.Targets {
		if filepath.IsAbs(target) {
			targets = append(targets, target)
			continue
		}
		abs := filepath.Join(fromDir, target)
		rel, err := filepath.Rel(toDir, abs)
		if err != nil {
			targets = append(targets, abs)
		} else {
			targets = append(targets, filepath.ToSlash(rel))
		}
	}
	return AliasPattern{Key: pattern.Key, Targets: targets}
}

func findExtendedTsConfig(ext string, baseDir string) string {
	candidates := []string{}

	if filepath.IsAbs(ext) || strings.HasPrefix(ext, ".") {
		p := JoinWithDir(baseDir, ext)
		candidates = append(candidates, p, p+".json")
	} else {
		// tsconfigs published as packages
		candidates = append(candidates,
			filepath.Join(baseDir, "node_modules", ext),
			filepath.Join(baseDir, "node_modules", ext, "tsconfig.json"),
			filepath.Join(baseDir, "node_modules", ext+".json"),
		)
	}

	for _, candidate := range candidates {
		if fileExists(candidate) {
			return candidate
		}
	}
	return ""
}

func parseYamlAliasConfig(configPath string) (AliasConfig, error) {
	content, err := os.ReadFile(configPath)
	if err != nil {
		return AliasConfig{}, err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return AliasConfig{}, fmt.Errorf("failed to parse alias config '%s': %w", configPath, err)
	}

	dir := filepath.Dir(configPath)
	config := AliasConfig{BaseDirectory: dir, Patterns: []AliasPattern{}}
	if len(doc.Content) == 0 {
		return config, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return AliasConfig{}, fmt.Errorf("alias config '%s' must be a mapping", configPath)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		switch key.Value {
		case "baseUrl":
			var baseUrl string
			if err := value.Decode(&baseUrl); err != nil {
				return AliasConfig{}, fmt.Errorf("%s:%d: baseUrl must be a string", configPath, value.Line)
			}
			config.BaseDirectory = JoinWithDir(dir, baseUrl)
		case "paths":
			if value.Kind != yaml.MappingNode {
				return AliasConfig{}, fmt.Errorf("%s:%d: paths must be a mapping", configPath, value.Line)
			}
			for j := 0; j+1 < len(value.Content); j += 2 {
				pattern := value.Content[j].Value
				var targets []string
				if err := value.Content[j+1].Decode(&targets); err != nil {
					return AliasConfig{}, fmt.Errorf("%s:%d: paths['%s'] must be a list of strings", configPath, value.Content[j+1].Line, pattern)
				}
				config.Patterns = append(config.Patterns, AliasPattern{Key: pattern, Targets: targets})
			}
		}
	}

	return config, nil
}
