package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

const Version = "0.1.0"

var (
	currentDir, _ = os.Getwd()
	rootCmd       = &cobra.Command{
		Use:   "dep-tree",
		Short: "Find files statically imported by JavaScript/TypeScript files",
		Long: `Extracts import and export specifiers from JavaScript and TypeScript files
and resolves them to files through tsconfig "baseUrl" and "paths" aliases.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

var docsCmd = &cobra.Command{
	Use:   "doc-gen",
	Short: "Generate CLI documentation",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := os.MkdirAll("./docs", 0755); err != nil {
			return err
		}
		return doc.GenMarkdownTree(rootCmd, "./docs")
	},
}

// ---------------- shared flags ----------------

var (
	sharedCwd          string
	tsconfigJsonPath   string
	configPath         string
	resolvedExtensions []string
)

func addSharedFlags(command *cobra.Command) {
	command.Flags().StringVarP(&sharedCwd, "cwd", "c", currentDir,
		"Working directory for the command")
	command.Flags().StringVar(&tsconfigJsonPath, "tsconfig-json", "",
		"Path to tsconfig.json or a YAML alias file (default: ./tsconfig.json)")
	command.Flags().StringVar(&configPath, "config", "",
		"Path to "+configFileName+" (default: ./"+configFileName+" when present)")
	command.Flags().StringSliceVarP(&resolvedExtensions, "extensions", "e", defaultExtensions,
		"Extensions probed when resolving, in order. Pass an empty entry to try paths as written")
}

type commandSettings struct {
	cwd          string
	tsconfigPath string
	extensions   []string
	exclude      []string
}

// getCommandSettings merges flags over the project config file. Flags win.
func getCommandSettings(cmd *cobra.Command) (commandSettings, error) {
	settings := commandSettings{
		cwd:        ResolveAbsoluteCwd(sharedCwd),
		extensions: defaultExtensions,
	}

	config, hasConfig, err := findConfig(settings.cwd)
	if err != nil {
		return settings, err
	}

	tsconfig := "tsconfig.json"
	if hasConfig {
		if config.TsConfig != "" {
			tsconfig = config.TsConfig
		}
		if len(config.Extensions) > 0 {
			settings.extensions = config.Extensions
		}
		settings.exclude = config.Exclude
	}

	if tsconfigJsonPath != "" {
		tsconfig = tsconfigJsonPath
	}
	if cmd.Flags().Changed("extensions") {
		settings.extensions = resolvedExtensions
	}

	settings.tsconfigPath = JoinWithDir(settings.cwd, tsconfig)
	return settings, nil
}

func findConfig(cwd string) (DepTreeConfig, bool, error) {
	if configPath != "" {
		config, err := LoadConfig(JoinWithDir(cwd, configPath))
		if err != nil {
			return DepTreeConfig{}, false, fmt.Errorf("failed to load config: %w", err)
		}
		return config, true, nil
	}

	defaultPath := filepath.Join(cwd, configFileName)
	if !fileExists(defaultPath) {
		return DepTreeConfig{}, false, nil
	}
	config, err := LoadConfig(defaultPath)
	if err != nil {
		return DepTreeConfig{}, false, fmt.Errorf("failed to load config: %w", err)
	}
	return config, true, nil
}

func createResolver(settings commandSettings) (*Resolver, error) {
	resolver, err := NewResolverFromFile(settings.tsconfigPath, settings.extensions)
	if err != nil {
		return nil, fmt.Errorf("error when parsing alias config: %w", err)
	}
	return resolver, nil
}

// ---------------- imports ----------------

var importsJson bool

var importsCmd = &cobra.Command{
	Use:     "imports <file>",
	Short:   "List the imports of a single file with their resolved paths",
	Example: "dep-tree imports src/index.ts",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := getCommandSettings(cmd)
		if err != nil {
			return err
		}
		resolver, err := createResolver(settings)
		if err != nil {
			return err
		}

		filePath := NormalizePathForInternal(JoinWithDir(settings.cwd, args[0]))
		imports, err := GetImportedFilesFromDisk(filePath, resolver)
		if err != nil {
			return err
		}

		if importsJson {
			out, err := json.MarshalIndent(imports, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		maxRequestLen := 0
		for _, imp := range imports {
			maxRequestLen = max(maxRequestLen, len(imp.Request))
		}
		for _, imp := range imports {
			target := "(unresolved)"
			if imp.IsResolved() {
				target = FormatPath(imp.Path, settings.cwd)
			}
			fmt.Println(PadRight(imp.Request, ' ', maxRequestLen), "->", target)
		}
		return nil
	},
}

// ---------------- tree ----------------

var (
	treeExclude []string
	treeCount   bool
	treeJson    bool
	treeVerbose bool
	treeByFile  bool
)

var treeCmd = &cobra.Command{
	Use:   "tree <entry-points...>",
	Short: "List the distinct files directly imported by the entry points",
	Long: `Resolves the direct imports of every entry point and prints each resolved
file once. Directories are expanded to the files they contain.`,
	Example: "dep-tree tree src/index.ts src/worker.ts",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := getCommandSettings(cmd)
		if err != nil {
			return err
		}
		resolver, err := createResolver(settings)
		if err != nil {
			return err
		}

		exclude := append(append([]string{}, settings.exclude...), treeExclude...)
		files, err := ExpandEntryPoints(settings.cwd, args, exclude, settings.extensions)
		if err != nil {
			return err
		}

		fileImportsArr, err := GetImportedFilesForFiles(files, resolver)
		if err != nil {
			return err
		}

		if treeVerbose {
			for _, fileImports := range fileImportsArr {
				for _, imp := range fileImports.Imports {
					if !imp.IsResolved() {
						logWarning("import '%s' in '%s' could not be resolved to a file", imp.Request, formatLocation(fileImports.FilePath, imp.Line))
					}
				}
			}
		}

		if treeByFile {
			fmt.Println(string(StringifyFileImportsArr(fileImportsArr)))
			return nil
		}

		tree := CollectResolvedPaths(fileImportsArr)

		if treeCount {
			fmt.Println(len(tree))
			return nil
		}

		if treeJson {
			out, err := json.MarshalIndent(tree, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		for _, filePath := range FormatPaths(tree, settings.cwd) {
			fmt.Println(filePath)
		}
		return nil
	},
}

// ---------------- entry-points ----------------

var (
	entryPointsCount         bool
	entryPointsResultExclude []string
	entryPointsResultInclude []string
)

var entryPointsCmd = &cobra.Command{
	Use:   "entry-points [dirs...]",
	Short: "List files that no other file in the given directories imports",
	Long: `Expands the given directories (default: cwd) to files and prints those not
imported by any other of them through an alias. Relative and package imports
are not resolved, so they never mark a file as referenced.`,
	Example: "dep-tree entry-points src --result-exclude '**/*.test.ts'",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := getCommandSettings(cmd)
		if err != nil {
			return err
		}
		resolver, err := createResolver(settings)
		if err != nil {
			return err
		}

		if len(args) == 0 {
			args = []string{"."}
		}
		files, err := ExpandEntryPoints(settings.cwd, args, settings.exclude, settings.extensions)
		if err != nil {
			return err
		}

		fileImportsArr, err := GetImportedFilesForFiles(files, resolver)
		if err != nil {
			return err
		}

		notReferencedFiles := GetEntryPoints(fileImportsArr, entryPointsResultExclude, entryPointsResultInclude, settings.cwd)

		if entryPointsCount {
			fmt.Println(len(notReferencedFiles))
			return nil
		}
		for _, filePath := range FormatPaths(notReferencedFiles, settings.cwd) {
			fmt.Println(filePath)
		}
		return nil
	},
}

// ---------------- tokens ----------------

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Debug: show the token stream and the statements the parser dropped",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd := ResolveAbsoluteCwd(sharedCwd)
		filePath := JoinWithDir(cwd, args[0])
		content, err := os.ReadFile(filePath)
		if err != nil {
			return err
		}

		tokens := Lex(NewSource(filePath, string(content)))
		fmt.Print(StringifyTokens(tokens))
		fmt.Println()

		deps := ParseWithFailures(tokens, func(line int, err error) {
			logWarning("%s: %v", formatLocation(filePath, line), err)
		})
		for _, dep := range deps {
			fmt.Printf("%s %q\n", formatLocation(filePath, dep.Path.Line), dep.Request())
		}
		return nil
	},
}

// ---------------- aliases ----------------

var aliasesCmd = &cobra.Command{
	Use:   "aliases",
	Short: "Print the alias table in the order it is matched",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := getCommandSettings(cmd)
		if err != nil {
			return err
		}
		resolver, err := createResolver(settings)
		if err != nil {
			return err
		}
		fmt.Print(StringifyAliasConfig(resolver.Config()))
		return nil
	},
}

func init() {
	addSharedFlags(importsCmd)
	importsCmd.Flags().BoolVar(&importsJson, "json", false,
		"Print imports as JSON")

	addSharedFlags(treeCmd)
	treeCmd.Flags().StringSliceVar(&treeExclude, "exclude", []string{},
		"Glob patterns of files to skip when expanding directories")
	treeCmd.Flags().BoolVarP(&treeCount, "count", "n", false,
		"Only print the number of resolved files")
	treeCmd.Flags().BoolVar(&treeJson, "json", false,
		"Print resolved files as a JSON array")
	treeCmd.Flags().BoolVarP(&treeVerbose, "verbose", "v", false,
		"Warn about imports that could not be resolved")
	treeCmd.Flags().BoolVar(&treeByFile, "group-by-file", false,
		"Print every import of every file as JSON, unresolved ones included")

	tokensCmd.Flags().StringVarP(&sharedCwd, "cwd", "c", currentDir,
		"Working directory for the command")

	addSharedFlags(entryPointsCmd)
	entryPointsCmd.Flags().BoolVarP(&entryPointsCount, "count", "n", false,
		"Only print the number of entry points")
	entryPointsCmd.Flags().StringSliceVar(&entryPointsResultExclude, "result-exclude", []string{},
		"Glob patterns of files to leave out of the result")
	entryPointsCmd.Flags().StringSliceVar(&entryPointsResultInclude, "result-include", []string{},
		"Glob patterns limiting the result to matching files")

	addSharedFlags(aliasesCmd)

	rootCmd.AddCommand(importsCmd, treeCmd, entryPointsCmd, tokensCmd, aliasesCmd, docsCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatal(err)
	}
}
