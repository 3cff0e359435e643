package main

import (
	"runtime"
	"slices"
	"sync"
)

type FileImports struct {
	FilePath string           `json:"filePath"`
	Imports  []ResolvedImport `json:"imports"`
}

// FindTreeForFiles resolves the direct dependencies of every file and
// returns the distinct resolved paths, sorted. Discovered files are not
// followed. Fails when any file cannot be read.
func FindTreeForFiles(files []string, resolver *Resolver) ([]string, error) {
	fileImportsArr, err := GetImportedFilesForFiles(files, resolver)
	if err != nil {
		return nil, err
	}
	return CollectResolvedPaths(fileImportsArr), nil
}

// CollectResolvedPaths returns the distinct resolved paths, sorted.
func CollectResolvedPaths(fileImportsArr []FileImports) []string {
	resolved := map[string]bool{}
	for _, fileImports := range fileImportsArr {
		for _, imp := range fileImports.Imports {
			if imp.IsResolved() {
				resolved[imp.Path] = true
			}
		}
	}

	result := make([]string, 0, len(resolved))
	for path := range resolved {
		result = append(result, path)
	}
	slices.Sort(result)
	return result
}

// GetImportedFilesForFiles runs single file extraction for every file
// concurrently. Results keep the order of files.
func GetImportedFilesForFiles(files []string, resolver *Resolver) ([]FileImports, error) {
	results := make([]FileImports, len(files))
	var mu sync.Mutex
	var wg sync.WaitGroup
	var firstErr error // guarded by mu

	// Limit concurrency to avoid memory spikes
	maxConcurrency := runtime.GOMAXPROCS(0) * 2
	sem := make(chan struct{}, maxConcurrency)

	for idx, filePath := range files {
		wg.Add(1)
		sem <- struct{}{}

		go func(idx int, path string) {
			defer wg.Done()
			defer func() { <-sem }()

			imports, err := GetImportedFilesFromDisk(path, resolver)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}

			results[idx] = FileImports{
				FilePath: path,
				Imports:  imports,
			}
		}(idx, filePath)
	}

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}
