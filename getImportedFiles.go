package main

import (
	"fmt"
	"os"
)

type ResolvedImportType uint8

const (
	UserModule ResolvedImportType = iota
	NotResolvedModule
)

func (t ResolvedImportType) String() string {
	if t == UserModule {
		return "user-module"
	}
	return "not-resolved"
}

func (t ResolvedImportType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// ResolvedImport is the outcome of resolving one Dependency. Path is empty
// when ResolvedType is NotResolvedModule.
type ResolvedImport struct {
	Request      string             `json:"request"`
	Line         int                `json:"line"`
	Path         string             `json:"path,omitempty"`
	ResolvedType ResolvedImportType `json:"resolvedType"`
}

func (i ResolvedImport) IsResolved() bool {
	return i.ResolvedType == UserModule
}

// GetImportedFiles returns one entry per dependency found in content, in
// source order. Unresolved entries are kept.
func GetImportedFiles(filePath string, content []byte, resolver *Resolver) []ResolvedImport {
	deps := Parse(Lex(NewSource(filePath, string(content))))

	imports := make([]ResolvedImport, 0, len(deps))
	for _, dep := range deps {
		imp := ResolvedImport{
			Request:      dep.Request(),
			Line:         dep.Path.Line,
			ResolvedType: NotResolvedModule,
		}
		// `from ''` carries nothing to resolve
		if imp.Request != "" {
			if path, ok := resolver.Resolve(dep); ok {
				imp.Path = path
				imp.ResolvedType = UserModule
			}
		}
		imports = append(imports, imp)
	}
	return imports
}

func GetImportedFilesFromDisk(filePath string, resolver *Resolver) ([]ResolvedImport, error) {
	content, err := os.ReadFile(DenormalizePathForOS(filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to read '%s': %w", filePath, err)
	}
	return GetImportedFiles(filePath, content, resolver), nil
}
