package main

import (
	"path/filepath"
	"runtime"
	"strings"
)

// NormalizePathForInternal converts an OS path into the internal form using
// forward slashes. A no-op outside windows.
// - "C:\\project\\src\\file.ts" -> "C:/project/src/file.ts"
func NormalizePathForInternal(p string) string {
	if runtime.GOOS != "windows" {
		return p
	}
	if p == "" {
		return ""
	}
	s := filepath.ToSlash(filepath.Clean(p))
	// keep the slash of roots like "/" or "C:/"
	if len(s) > 1 && strings.HasSuffix(s, "/") {
		s = strings.TrimRight(s, "/")
	}
	return s
}

// DenormalizePathForOS converts an internal forward-slash path back to the
// OS-native representation for os.* calls.
func DenormalizePathForOS(internal string) string {
	if runtime.GOOS != "windows" {
		return internal
	}
	if internal == "" {
		return ""
	}
	return filepath.FromSlash(internal)
}

// NormalizeGlobPattern normalizes glob pattern separators to forward slashes.
func NormalizeGlobPattern(pattern string) string {
	if runtime.GOOS != "windows" {
		return pattern
	}
	return strings.ReplaceAll(pattern, "\\", "/")
}

// JoinWithDir resolves p against dir unless p is already absolute.
func JoinWithDir(dir string, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(dir, p)
}
