package main

import (
	"strings"
)

// FormatPaths removes pathPrefix from every path for cleaner output. Paths
// outside of pathPrefix are kept as they are.
func FormatPaths(paths []string, pathPrefix string) []string {
	cleanPaths := make([]string, len(paths))
	for i, p := range paths {
		cleanPaths[i] = FormatPath(p, pathPrefix)
	}
	return cleanPaths
}

func FormatPath(path string, pathPrefix string) string {
	if pathPrefix != "" && strings.HasPrefix(path, pathPrefix) {
		return strings.TrimPrefix(path, pathPrefix)
	}
	return path
}
