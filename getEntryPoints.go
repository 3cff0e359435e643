package main

import "slices"

// GetEntryPoints returns the files of fileImportsArr that no other file of
// the set imports through a resolved alias. resultInclude, when not empty,
// limits the result; resultExclude removes from it.
func GetEntryPoints(fileImportsArr []FileImports, resultExclude []string, resultInclude []string, cwd string) []string {
	referencedFiles := map[string]bool{}

	for _, fileImports := range fileImportsArr {
		for _, imp := range fileImports.Imports {
			// a file importing itself is still an entry point
			if imp.IsResolved() && imp.Path != fileImports.FilePath {
				referencedFiles[imp.Path] = true
			}
		}
	}

	excludeGlobs := CreateGlobMatchers(resultExclude, cwd)
	includeGlobs := CreateGlobMatchers(resultInclude, cwd)

	notReferencedFiles := []string{}
	for _, fileImports := range fileImportsArr {
		filePath := fileImports.FilePath
		if referencedFiles[filePath] {
			continue
		}
		if len(includeGlobs) > 0 && !MatchesAnyGlobMatcher(filePath, includeGlobs) {
			continue
		}
		if MatchesAnyGlobMatcher(filePath, excludeGlobs) {
			continue
		}
		notReferencedFiles = append(notReferencedFiles, filePath)
	}

	slices.Sort(notReferencedFiles)
	return slices.Compact(notReferencedFiles)
}
