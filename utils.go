package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
)

var osSeparator = string(os.PathSeparator)

func StandardiseDirPath(cwd string) string {
	if cwd == "" || string(cwd[len(cwd)-1]) == osSeparator {
		return cwd
	}
	return cwd + osSeparator
}

func ResolveAbsoluteCwd(cwd string) string {
	if filepath.IsAbs(cwd) {
		return StandardiseDirPath(cwd)
	}
	binaryExecDir, _ := os.Getwd()
	return StandardiseDirPath(filepath.Join(binaryExecDir, cwd))
}

var warningColor = color.New(color.FgYellow)

// logWarning prints to stderr so command output stays parseable.
func logWarning(format string, args ...any) {
	warningColor.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
}

func PadRight(text string, char byte, length int) string {
	if len(text) >= length {
		return text
	}
	padding := make([]byte, length-len(text))
	for i := range padding {
		padding[i] = char
	}
	return text + string(padding)
}

func formatLocation(filePath string, line int) string {
	return fmt.Sprintf("%s:%d", filePath, line)
}
