package main

import (
	"os"
	"path/filepath"
)

var defaultExtensions = []string{".ts", ".tsx", ".js", ".jsx"}

// Resolver maps requests to files through an AliasConfig. It holds no
// mutable state and can be shared between goroutines.
type Resolver struct {
	config     AliasConfig
	extensions []string
}

// NewResolver creates a resolver probing extensions in the given order. An
// empty string in extensions tries the candidate path as written.
func NewResolver(config AliasConfig, extensions []string) *Resolver {
	return &Resolver{
		config:     config,
		extensions: extensions,
	}
}

// NewResolverFromFile loads the alias configuration at configPath. Any load
// failure aborts construction.
func NewResolverFromFile(configPath string, extensions []string) (*Resolver, error) {
	config, err := LoadAliasConfig(configPath)
	if err != nil {
		return nil, err
	}
	return NewResolver(config, extensions), nil
}

func (r *Resolver) Config() AliasConfig {
	return r.config
}

func (r *Resolver) Resolve(dep Dependency) (string, bool) {
	return r.ResolveRequest(dep.Request())
}

// ResolveRequest returns the absolute path of the first existing file the
// request maps to. Requests outside the alias table, bare package names and
// dangling aliases all report false. An empty request is a caller error and
// panics.
func (r *Resolver) ResolveRequest(request string) (string, bool) {
	if request == "" {
		panic("ResolveRequest: expected request to be non-empty")
	}

	pattern, capture, ok := r.config.Match(request)
	if !ok {
		return "", false
	}

	for _, target := range pattern.Targets {
		target = substituteCapture(target, capture)
		candidate := JoinWithDir(r.config.BaseDirectory, target)
		if path, ok := r.probe(candidate); ok {
			return path, true
		}
	}
	return "", false
}

// probe tries candidate with every extension, then candidate as a directory
// holding an index file.
func (r *Resolver) probe(candidate string) (string, bool) {
	for _, ext := range r.extensions {
		if path := candidate + ext; fileExists(path) {
			return NormalizePathForInternal(path), true
		}
	}
	for _, ext := range r.extensions {
		if path := filepath.Join(candidate, "index"+ext); fileExists(path) {
			return NormalizePathForInternal(path), true
		}
	}
	return "", false
}

func fileExists(path string) bool {
	info, err := os.Stat(DenormalizePathForOS(path))
	return err == nil && !info.IsDir()
}
