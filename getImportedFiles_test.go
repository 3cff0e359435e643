package main

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func newTestResolver(t *testing.T, root string) *Resolver {
	t.Helper()
	return NewResolver(AliasConfig{
		BaseDirectory: root,
		Patterns: []AliasPattern{
			{Key: "@/*", Targets: []string{"src/*"}},
			{Key: "shared", Targets: []string{"lib/shared"}},
		},
	}, defaultExtensions)
}

func TestGetImportedFiles(t *testing.T) {
	tmp := t.TempDir()
	createFiles(t, tmp, map[string]string{
		"src/a.ts":            "",
		"src/b/index.tsx":     "",
		"lib/shared/index.js": "",
	})
	resolver := newTestResolver(t, tmp)

	content := `import a from '@/a'
import { b } from "@/b"
import React from 'react'
export * as s from 'shared'
const lazy = import('@/missing')
`

	imports := GetImportedFiles(filepath.Join(tmp, "entry.ts"), []byte(content), resolver)

	expected := []ResolvedImport{
		{Request: "@/a", Line: 1, Path: filepath.Join(tmp, "src", "a.ts"), ResolvedType: UserModule},
		{Request: "@/b", Line: 2, Path: filepath.Join(tmp, "src", "b", "index.tsx"), ResolvedType: UserModule},
		{Request: "react", Line: 3, ResolvedType: NotResolvedModule},
		{Request: "shared", Line: 4, Path: filepath.Join(tmp, "lib", "shared", "index.js"), ResolvedType: UserModule},
		{Request: "@/missing", Line: 5, ResolvedType: NotResolvedModule},
	}

	if len(imports) != len(expected) {
		t.Fatalf("expected %d imports, got %d: %+v", len(expected), len(imports), imports)
	}
	for i, exp := range expected {
		if imports[i] != exp {
			t.Errorf("import %d: expected %+v, got %+v", i, exp, imports[i])
		}
	}
}

func TestGetImportedFiles_EmptyRequest(t *testing.T) {
	tmp := t.TempDir()
	resolver := newTestResolver(t, tmp)

	imports := GetImportedFiles("entry.ts", []byte(`import x from ''`), resolver)

	if len(imports) != 1 {
		t.Fatalf("expected 1 import, got %d", len(imports))
	}
	if imports[0].IsResolved() || imports[0].Request != "" {
		t.Errorf("expected unresolved empty request, got %+v", imports[0])
	}
}

func TestGetImportedFiles_NoDependencies(t *testing.T) {
	resolver := newTestResolver(t, t.TempDir())

	imports := GetImportedFiles("entry.ts", []byte("const a = 1;\nfunction f() { return a }\n"), resolver)
	if imports == nil || len(imports) != 0 {
		t.Errorf("expected empty non-nil result, got %#v", imports)
	}
}

func TestGetImportedFilesFromDisk(t *testing.T) {
	tmp := t.TempDir()
	createFiles(t, tmp, map[string]string{
		"src/entry.ts": "import x from './x'\nimport { u } from '@/util'\n",
		"src/util.ts":  "",
	})
	resolver := newTestResolver(t, tmp)

	imports, err := GetImportedFilesFromDisk(filepath.Join(tmp, "src", "entry.ts"), resolver)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(imports) != 2 {
		t.Fatalf("expected 2 imports, got %+v", imports)
	}
	if imports[0].IsResolved() {
		t.Errorf("relative requests are not aliased, got %+v", imports[0])
	}
	if imports[1].Path != filepath.Join(tmp, "src", "util.ts") {
		t.Errorf("expected util.ts, got %+v", imports[1])
	}

	_, err = GetImportedFilesFromDisk(filepath.Join(tmp, "nope.ts"), resolver)
	if err == nil || !strings.Contains(err.Error(), "nope.ts") {
		t.Errorf("expected read error naming the file, got %v", err)
	}
}

func TestResolvedImportJSON(t *testing.T) {
	out, err := json.Marshal([]ResolvedImport{
		{Request: "@/a", Line: 1, Path: "/p/a.ts", ResolvedType: UserModule},
		{Request: "b", Line: 2, ResolvedType: NotResolvedModule},
	})
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}

	expected := `[{"request":"@/a","line":1,"path":"/p/a.ts","resolvedType":"user-module"},{"request":"b","line":2,"resolvedType":"not-resolved"}]`
	if string(out) != expected {
		t.Errorf("got %s, want %s", out, expected)
	}
}
