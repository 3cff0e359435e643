package main

import (
	"strings"

	"github.com/gobwas/glob"
)

type GlobMatcher struct {
	globPattern                        glob.Glob
	inputString                        string
	shouldMatchAnyFileOrDirWithPattern bool
	patternRoot                        string
}

// CreateGlobMatchers compiles gitignore-like patterns relative to
// patternsRoot. Patterns that fail to compile are skipped with a warning.
func CreateGlobMatchers(patterns []string, patternsRoot string) []GlobMatcher {
	globMatchers := []GlobMatcher{}
	patternRootNorm := NormalizePathForInternal(patternsRoot)
	if patternRootNorm != "" && !strings.HasSuffix(patternRootNorm, "/") {
		patternRootNorm = patternRootNorm + "/"
	}

	for _, excludePattern := range patterns {
		// plain names without `/` or `*` match files or directories with that exact name, as in .gitignore
		shouldMatchAnyFileOrDirWithPattern := !strings.Contains(excludePattern, "/") && !strings.Contains(excludePattern, "*")

		if strings.HasSuffix(excludePattern, "/") && !strings.Contains(excludePattern, "*") {
			// `dir/` matches the whole directory recursively
			excludePattern = "**" + excludePattern + "**"
		}
		// leading `/` anchors the pattern at the root
		excludePattern = strings.TrimPrefix(excludePattern, "/")

		patternNorm := NormalizeGlobPattern(excludePattern)
		compiled, err := glob.Compile(patternNorm)
		if err != nil {
			logWarning("invalid glob pattern '%s': %v", patternNorm, err)
			continue
		}

		globMatchers = append(globMatchers, GlobMatcher{
			globPattern:                        compiled,
			inputString:                        patternNorm,
			patternRoot:                        patternRootNorm,
			shouldMatchAnyFileOrDirWithPattern: shouldMatchAnyFileOrDirWithPattern,
		})

		// `**/` requires at least one directory with this library, so `**/*.log` would not match `file.log`
		if strings.HasPrefix(patternNorm, "**/") {
			additionalPattern := strings.Replace(patternNorm, "**/", "", 1)
			if additional, err := glob.Compile(additionalPattern); err == nil {
				globMatchers = append(globMatchers, GlobMatcher{
					globPattern: additional,
					inputString: additionalPattern,
					patternRoot: patternRootNorm,
				})
			}
		}
	}
	return globMatchers
}

func MatchesAnyGlobMatcher(filePath string, matchers []GlobMatcher) bool {
	fileInternal := NormalizePathForInternal(filePath)
	for _, matcher := range matchers {
		fileWithoutPrefix := strings.TrimPrefix(fileInternal, matcher.patternRoot)
		if matcher.globPattern.Match(fileWithoutPrefix) {
			return true
		}
		if !matcher.shouldMatchAnyFileOrDirWithPattern {
			continue
		}
		// file named exactly as the pattern
		if strings.HasSuffix(fileWithoutPrefix, "/"+matcher.inputString) || fileWithoutPrefix == matcher.inputString {
			return true
		}
		// directory named exactly as the pattern
		if strings.Contains(fileWithoutPrefix, "/"+matcher.inputString+"/") || strings.HasPrefix(fileWithoutPrefix, matcher.inputString+"/") {
			return true
		}
	}
	return false
}
