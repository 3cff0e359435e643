package main

import (
	"path/filepath"
	"strings"
	"testing"
)

func patternKeys(config AliasConfig) string {
	keys := make([]string, 0, len(config.Patterns))
	for _, pattern := range config.Patterns {
		keys = append(keys, pattern.Key+"="+strings.Join(pattern.Targets, "|"))
	}
	return strings.Join(keys, ", ")
}

func TestLoadAliasConfig_KeepsPathsOrder(t *testing.T) {
	tmp := t.TempDir()
	createFiles(t, tmp, map[string]string{
		"tsconfig.json": `{
			"compilerOptions": {
				"baseUrl": "./src",
				"paths": {
					"z/*": ["z/*"],
					"@app/components/*": ["ui/*", "legacy/ui/*"],
					"@app/*": ["app/*"],
					"a": ["a/index"]
				}
			}
		}`,
	})

	config, err := LoadAliasConfig(filepath.Join(tmp, "tsconfig.json"))
	if err != nil {
		t.Fatalf("LoadAliasConfig error: %v", err)
	}

	if config.BaseDirectory != filepath.Join(tmp, "src") {
		t.Errorf("expected base directory %s, got %s", filepath.Join(tmp, "src"), config.BaseDirectory)
	}

	expected := "z/*=z/*, @app/components/*=ui/*|legacy/ui/*, @app/*=app/*, a=a/index"
	if got := patternKeys(config); got != expected {
		t.Errorf("patterns = %s, want %s", got, expected)
	}
}

func TestLoadAliasConfig_Jsonc(t *testing.T) {
	tmp := t.TempDir()
	createFiles(t, tmp, map[string]string{
		"tsconfig.json": `{
			// comment
			"compilerOptions": {
				/* block comment */
				"paths": {
					"@/*": ["src/*"],
				},
			},
		}`,
	})

	config, err := LoadAliasConfig(filepath.Join(tmp, "tsconfig.json"))
	if err != nil {
		t.Fatalf("LoadAliasConfig error: %v", err)
	}
	if got := patternKeys(config); got != "@/*=src/*" {
		t.Errorf("patterns = %s", got)
	}
}

func TestLoadAliasConfig_WithoutBaseUrlUsesConfigDir(t *testing.T) {
	tmp := t.TempDir()
	createFiles(t, tmp, map[string]string{
		"packages/app/tsconfig.json": `{ "compilerOptions": { "paths": { "@/*": ["./src/*"] } } }`,
	})

	config, err := LoadAliasConfig(filepath.Join(tmp, "packages", "app", "tsconfig.json"))
	if err != nil {
		t.Fatalf("LoadAliasConfig error: %v", err)
	}
	if config.BaseDirectory != filepath.Join(tmp, "packages", "app") {
		t.Errorf("expected config dir as base directory, got %s", config.BaseDirectory)
	}
}

func TestLoadAliasConfig_EmptyConfig(t *testing.T) {
	tmp := t.TempDir()
	createFiles(t, tmp, map[string]string{"tsconfig.json": `{}`})

	config, err := LoadAliasConfig(filepath.Join(tmp, "tsconfig.json"))
	if err != nil {
		t.Fatalf("LoadAliasConfig error: %v", err)
	}
	if len(config.Patterns) != 0 {
		t.Errorf("expected no patterns, got %s", patternKeys(config))
	}
}

func TestLoadAliasConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed", `{ "compilerOptions": `},
		{"paths not object", `{ "compilerOptions": { "paths": ["a"] } }`},
		{"targets not array", `{ "compilerOptions": { "paths": { "@/*": "src/*" } } }`},
		{"two wildcards in key", `{ "compilerOptions": { "paths": { "@/*/*": ["src/*"] } } }`},
		{"two wildcards in target", `{ "compilerOptions": { "paths": { "@/*": ["*/src/*"] } } }`},
		{"bad extends", `{ "extends": 1 }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmp := t.TempDir()
			createFiles(t, tmp, map[string]string{"tsconfig.json": tt.content})

			if _, err := LoadAliasConfig(filepath.Join(tmp, "tsconfig.json")); err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
		})
	}

	if _, err := LoadAliasConfig(filepath.Join(t.TempDir(), "tsconfig.json")); err == nil {
		t.Errorf("expected error for missing file")
	}
}

func TestLoadAliasConfig_Extends(t *testing.T) {
	tmp := t.TempDir()
	createFiles(t, tmp, map[string]string{
		"configs/base.json": `{
			"compilerOptions": {
				"paths": {
					"@lib/*": ["../lib/*"],
					"@app/*": ["../old/*"]
				}
			}
		}`,
		"tsconfig.json": `{
			"extends": "./configs/base.json",
			"compilerOptions": {
				"baseUrl": ".",
				"paths": { "@app/*": ["src/app/*"] }
			}
		}`,
	})

	config, err := LoadAliasConfig(filepath.Join(tmp, "tsconfig.json"))
	if err != nil {
		t.Fatalf("LoadAliasConfig error: %v", err)
	}

	if config.BaseDirectory != tmp {
		t.Errorf("expected base directory %s, got %s", tmp, config.BaseDirectory)
	}
	// paths of the child replace the inherited table
	expected := "@app/*=src/app/*"
	if got := patternKeys(config); got != expected {
		t.Errorf("patterns = %s, want %s", got, expected)
	}
}

func TestLoadAliasConfig_InheritsPathsWhenChildHasNone(t *testing.T) {
	tmp := t.TempDir()
	createFiles(t, tmp, map[string]string{
		"configs/base.json":   `{ "compilerOptions": { "paths": { "@lib/*": ["../lib/*"], "@app/*": ["../app/*"] } } }`,
		"tsconfig.json":       `{ "extends": "./configs/base.json", "compilerOptions": { "baseUrl": "." } }`,
		"empty/tsconfig.json": `{ "extends": "../configs/base.json", "compilerOptions": { "paths": {} } }`,
	})

	config, err := LoadAliasConfig(filepath.Join(tmp, "tsconfig.json"))
	if err != nil {
		t.Fatalf("LoadAliasConfig error: %v", err)
	}
	expected := "@lib/*=lib/*, @app/*=app/*"
	if got := patternKeys(config); got != expected {
		t.Errorf("patterns = %s, want %s", got, expected)
	}

	config, err = LoadAliasConfig(filepath.Join(tmp, "empty", "tsconfig.json"))
	if err != nil {
		t.Fatalf("LoadAliasConfig error: %v", err)
	}
	if len(config.Patterns) != 0 {
		t.Errorf("expected empty paths to replace the inherited table, got %s", patternKeys(config))
	}
}

func TestLoadAliasConfig_InheritsBaseUrl(t *testing.T) {
	tmp := t.TempDir()
	createFiles(t, tmp, map[string]string{
		"tsconfig.base.json": `{ "compilerOptions": { "baseUrl": "./src" } }`,
		"tsconfig.json": `{
			"extends": "./tsconfig.base",
			"compilerOptions": { "paths": { "@/*": ["*"] } }
		}`,
	})

	config, err := LoadAliasConfig(filepath.Join(tmp, "tsconfig.json"))
	if err != nil {
		t.Fatalf("LoadAliasConfig error: %v", err)
	}
	if config.BaseDirectory != filepath.Join(tmp, "src") {
		t.Errorf("expected inherited baseUrl, got %s", config.BaseDirectory)
	}
	if got := patternKeys(config); got != "@/*=*" {
		t.Errorf("patterns = %s", got)
	}
}

func TestLoadAliasConfig_ExtendsPackage(t *testing.T) {
	tmp := t.TempDir()
	createFiles(t, tmp, map[string]string{
		"node_modules/@company/tsconfig/tsconfig.json": `{
			"compilerOptions": { "baseUrl": ".", "paths": { "@shared/*": ["shared/*"] } }
		}`,
		"tsconfig.json": `{ "extends": "@company/tsconfig", "compilerOptions": { "baseUrl": "." } }`,
	})

	config, err := LoadAliasConfig(filepath.Join(tmp, "tsconfig.json"))
	if err != nil {
		t.Fatalf("LoadAliasConfig error: %v", err)
	}

	expected := "@shared/*=node_modules/@company/tsconfig/shared/*"
	if got := patternKeys(config); got != expected {
		t.Errorf("patterns = %s, want %s", got, expected)
	}
}

func TestLoadAliasConfig_ExtendsArray(t *testing.T) {
	tmp := t.TempDir()
	createFiles(t, tmp, map[string]string{
		"a.json": `{ "compilerOptions": { "paths": { "x/*": ["from-a/*"], "y/*": ["from-a/*"] } } }`,
		"b.json": `{ "compilerOptions": { "paths": { "y/*": ["from-b/*"] } } }`,
		"tsconfig.json": `{ "extends": ["./a.json", "./b.json"] }`,
	})

	config, err := LoadAliasConfig(filepath.Join(tmp, "tsconfig.json"))
	if err != nil {
		t.Fatalf("LoadAliasConfig error: %v", err)
	}

	expected := "y/*=from-b/*"
	if got := patternKeys(config); got != expected {
		t.Errorf("patterns = %s, want %s", got, expected)
	}
}

func TestLoadAliasConfig_ExtendsMissingOrCyclic(t *testing.T) {
	tmp := t.TempDir()
	createFiles(t, tmp, map[string]string{
		"missing/tsconfig.json": `{ "extends": "./nope.json", "compilerOptions": { "paths": { "a": ["a"] } } }`,
		"cycle/a.json":          `{ "extends": "./b.json", "compilerOptions": { "paths": { "a": ["a"] } } }`,
		"cycle/b.json":          `{ "extends": "./a.json", "compilerOptions": { "paths": { "b": ["b"] } } }`,
	})

	config, err := LoadAliasConfig(filepath.Join(tmp, "missing", "tsconfig.json"))
	if err != nil {
		t.Fatalf("missing extends should be ignored, got %v", err)
	}
	if got := patternKeys(config); got != "a=a" {
		t.Errorf("patterns = %s", got)
	}

	config, err = LoadAliasConfig(filepath.Join(tmp, "cycle", "a.json"))
	if err != nil {
		t.Fatalf("cyclic extends should be ignored, got %v", err)
	}
	if got := patternKeys(config); got != "a=a" {
		t.Errorf("patterns = %s", got)
	}
}

func TestLoadAliasConfig_Yaml(t *testing.T) {
	tmp := t.TempDir()
	createFiles(t, tmp, map[string]string{
		"aliases.yaml": `baseUrl: ./src
paths:
  "~/*": [app/*]
  "@ui/*":
    - components/*
    - legacy/*
  env: [config/env]
`,
		"bad.yml":   "paths:\n  - a\n",
		"empty.yml": "",
	})

	config, err := LoadAliasConfig(filepath.Join(tmp, "aliases.yaml"))
	if err != nil {
		t.Fatalf("LoadAliasConfig error: %v", err)
	}
	if config.BaseDirectory != filepath.Join(tmp, "src") {
		t.Errorf("expected base directory %s, got %s", filepath.Join(tmp, "src"), config.BaseDirectory)
	}
	expected := "~/*=app/*, @ui/*=components/*|legacy/*, env=config/env"
	if got := patternKeys(config); got != expected {
		t.Errorf("patterns = %s, want %s", got, expected)
	}

	if _, err := LoadAliasConfig(filepath.Join(tmp, "bad.yml")); err == nil {
		t.Errorf("expected error for paths given as a list")
	}

	config, err = LoadAliasConfig(filepath.Join(tmp, "empty.yml"))
	if err != nil || config.BaseDirectory != tmp || len(config.Patterns) != 0 {
		t.Errorf("expected empty yaml to give an empty table at its dir, got %+v, %v", config, err)
	}
}
