package main

import (
	"fmt"
	"path/filepath"
	"strings"
)

// AliasPattern maps a request pattern such as "@app/*" to the targets tried
// for it, in order. Key and targets hold at most one "*".
type AliasPattern struct {
	Key     string
	Targets []string
}

// AliasConfig is the base directory plus the ordered alias table. Order is
// precedence: the first matching pattern wins.
type AliasConfig struct {
	BaseDirectory string
	Patterns      []AliasPattern
}

func (c AliasConfig) Validate() error {
	if !filepath.IsAbs(c.BaseDirectory) {
		return fmt.Errorf("base directory '%s' is not absolute", c.BaseDirectory)
	}
	for _, pattern := range c.Patterns {
		if strings.Count(pattern.Key, "*") > 1 {
			return fmt.Errorf("pattern '%s' can have at most one '*' character", pattern.Key)
		}
		for _, target := range pattern.Targets {
			if strings.Count(target, "*") > 1 {
				return fmt.Errorf("target '%s' of pattern '%s' can have at most one '*' character", target, pattern.Key)
			}
		}
	}
	return nil
}

// Match returns the first pattern matching request together with the text
// captured by its wildcard.
func (c AliasConfig) Match(request string) (pattern AliasPattern, capture string, ok bool) {
	for _, pattern := range c.Patterns {
		if capture, ok := matchAliasKey(pattern.Key, request); ok {
			return pattern, capture, true
		}
	}
	return AliasPattern{}, "", false
}

func matchAliasKey(key string, request string) (string, bool) {
	prefix, suffix, hasStar := strings.Cut(key, "*")
	if !hasStar {
		return "", key == request
	}
	// the wildcard has to capture at least one character
	if len(request) <= len(prefix)+len(suffix) {
		return "", false
	}
	if !strings.HasPrefix(request, prefix) || !strings.HasSuffix(request, suffix) {
		return "", false
	}
	return request[len(prefix) : len(request)-len(suffix)], true
}

// substituteCapture replaces the wildcard of target with capture. Targets
// of exact keys are passed an empty capture, dropping a stray "*".
func substituteCapture(target string, capture string) string {
	return strings.Replace(target, "*", capture, 1)
}
