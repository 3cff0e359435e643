package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func hasCorrectExtension(name string, extensions []string) bool {
	for _, ext := range extensions {
		if ext != "" && strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

func parseGitIgnore(fileContent string, dirPath string) []GlobMatcher {
	lines := strings.Split(fileContent, "\n")

	sanitizedLines := []string{}

	for _, line := range lines {
		trimmedLined := strings.TrimSpace(line)
		// negations are not supported
		if len(trimmedLined) > 0 && !strings.HasPrefix(trimmedLined, "#") && !strings.HasPrefix(trimmedLined, "!") {
			sanitizedLines = append(sanitizedLines, trimmedLined)
		}
	}

	return CreateGlobMatchers(sanitizedLines, dirPath)
}

func FindAndProcessGitIgnoreFilesUpToRepoRoot(dirPath string) []GlobMatcher {
	globMatchers := []GlobMatcher{}
	dir := filepath.Clean(dirPath)
	for {
		gitignoreFile, gitignoreError := os.ReadFile(filepath.Join(dir, ".gitignore"))
		if gitignoreError == nil {
			globMatchers = append(globMatchers, parseGitIgnore(string(gitignoreFile), dir)...)
		}

		gitDir, gitDirReadErr := os.Stat(filepath.Join(dir, ".git"))
		if gitDirReadErr == nil && gitDir.IsDir() {
			// found git root
			return globMatchers
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return globMatchers
		}
		dir = parent
	}
}

// GetFiles appends every file under directory with one of extensions,
// skipping paths matched by parentGlobMatchers or nested .gitignore files.
func GetFiles(directory string, existingFiles []string, parentGlobMatchers []GlobMatcher, extensions []string) []string {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return existingFiles
	}

	for _, entry := range entries {
		entryName := entry.Name()
		entryFilePath := filepath.Join(directory, entryName)

		if entry.IsDir() {
			if entryName == ".git" || entryName == "node_modules" || MatchesAnyGlobMatcher(entryFilePath, parentGlobMatchers) {
				continue
			}

			// the cwd .gitignore is already part of parentGlobMatchers
			ignoreGlobs := parentGlobMatchers
			gitignoreFile, gitignoreError := os.ReadFile(filepath.Join(entryFilePath, ".gitignore"))
			if gitignoreError == nil {
				nested := parseGitIgnore(string(gitignoreFile), entryFilePath)
				ignoreGlobs = append(append([]GlobMatcher{}, parentGlobMatchers...), nested...)
			}

			existingFiles = GetFiles(entryFilePath, existingFiles, ignoreGlobs, extensions)
			continue
		}

		if hasCorrectExtension(entryName, extensions) && !MatchesAnyGlobMatcher(entryFilePath, parentGlobMatchers) {
			existingFiles = append(existingFiles, NormalizePathForInternal(entryFilePath))
		}
	}

	return existingFiles
}

// ExpandEntryPoints turns entries relative to cwd into a deduplicated list of
// files. Directories are walked, honoring .gitignore files up to the
// repository root and the exclude globs.
func ExpandEntryPoints(cwd string, entries []string, exclude []string, extensions []string) ([]string, error) {
	userMatchers := CreateGlobMatchers(exclude, cwd)
	excludeMatchers := append(append([]GlobMatcher{}, userMatchers...), FindAndProcessGitIgnoreFilesUpToRepoRoot(cwd)...)

	seen := map[string]bool{}
	files := []string{}
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, entry := range entries {
		absPath := JoinWithDir(cwd, entry)
		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("entry point '%s': %w", entry, err)
		}

		if !info.IsDir() {
			// explicitly named files bypass gitignore but not user excludes
			if !MatchesAnyGlobMatcher(absPath, userMatchers) {
				add(NormalizePathForInternal(absPath))
			}
			continue
		}

		for _, file := range GetFiles(absPath, []string{}, excludeMatchers, extensions) {
			add(file)
		}
	}

	return files, nil
}
