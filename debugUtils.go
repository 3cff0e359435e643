package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// StringifyTokens renders one token per line as `line kind [start,end) text`.
func StringifyTokens(tokens []Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(fmt.Sprintf("%4d %-10s [%d,%d)", tok.Line, tok.Kind, tok.Span.Start, tok.Span.End))
		if tok.Kind == String {
			b.WriteString(fmt.Sprintf(" %q", tok.Lexeme))
		} else if tok.Kind == Identifier {
			b.WriteString(" ")
			b.WriteString(tok.Text())
		}
		b.WriteString("\n")
	}
	return b.String()
}

// StringifyAliasConfig returns the alias table in match order.
func StringifyAliasConfig(config AliasConfig) string {
	var b strings.Builder
	b.WriteString("baseDirectory: ")
	b.WriteString(config.BaseDirectory)
	b.WriteString("\n")
	if len(config.Patterns) == 0 {
		b.WriteString("  (no paths)\n")
		return b.String()
	}
	for _, pattern := range config.Patterns {
		b.WriteString("  ")
		b.WriteString(pattern.Key)
		b.WriteString(" -> ")
		b.WriteString(strings.Join(pattern.Targets, ", "))
		b.WriteString("\n")
	}
	return b.String()
}

func StringifyFileImportsArr(fileImportsArr []FileImports) []byte {
	sorted := make([]FileImports, len(fileImportsArr))
	copy(sorted, fileImportsArr)

	// Sort for deterministic output
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].FilePath < sorted[j].FilePath
	})

	jsonData, _ := json.MarshalIndent(sorted, "", "  ")
	return jsonData
}
