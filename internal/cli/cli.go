// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/plantocode/ptc/internal/config"
	"github.com/plantocode/ptc/internal/output"
	"github.com/plantocode/ptc/internal/services/clipboard"
	"github.com/plantocode/ptc/internal/tokenizer"
	"github.com/plantocode/ptc/internal/utils"
)

const (
	exclusionFlagName   = "e"
	noGitignoreFlagName = "no-gitignore"
	noIgnoreFlagName    = "no-ignore"
	includeGitFlagName  = "git"
	formatFlagName      = "format"
	tokensFlagName      = "tokens"
	modelFlagName       = "model"
	copyFlagName        = "copy"
	configFlagName      = "config"
	versionFlagName     = "version"
	versionTemplate     = "ptc version: %s\n"
	defaultPath         = "."
	rootUse             = "ptc"
	rootShort           = "ptc command line interface"
	rootLong            = `ptc assembles AI prompt context from a project directory.
It renders directory trees, gathers file content, estimates token counts,
and sends assembled context to the Gemini API. Use --format to select raw
or json output, and --version to print the application version.`

	versionFlagDescription = "display application version"

	treeUse              = "tree [paths...]"
	contentUse           = "content [paths...]"
	estimateUse          = "estimate [paths...]"
	askUse               = "ask <instructions>"
	treeAlias            = "t"
	contentAlias         = "c"
	estimateAlias        = "e"
	askAlias             = "a"
	treeShortDescription = "display directory tree (" + treeAlias + ")"
	// contentShortDescription summarizes the content command.
	contentShortDescription  = "show file contents (" + contentAlias + ")"
	estimateShortDescription = "estimate token counts (" + estimateAlias + ")"
	askShortDescription      = "ask Gemini with project context (" + askAlias + ")"

	// treeLongDescription provides detailed help for the tree command.
	treeLongDescription = `Render the non-ignored files of one or more paths as a tree diagram.
Use --format to select raw or json output.`
	// treeUsageExample demonstrates tree command usage.
	treeUsageExample = `  # Render the current project tree
  ptc tree

  # Exclude the vendor directory and copy the diagram
  ptc tree -e vendor --copy .`

	// contentLongDescription provides detailed help for the content command.
	contentLongDescription = `Collect file content for the provided paths, framed for prompt embedding.
Use --tokens to include token counts and --format to select raw or json output.`
	// contentUsageExample demonstrates content command usage.
	contentUsageExample = `  # Show project files with token counts
  ptc content --tokens .

  # Display a single file in raw format
  ptc content --format raw main.go`

	// estimateLongDescription provides detailed help for the estimate command.
	estimateLongDescription = `Estimate LLM token usage for the provided paths.
The default heuristic model approximates four characters per token; pass an
OpenAI model name via --model for exact tiktoken counts.`
	// estimateUsageExample demonstrates estimate command usage.
	estimateUsageExample = `  # Estimate the current project with the heuristic model
  ptc estimate

  # Exact counts for gpt-4o across two directories
  ptc estimate --model gpt-4o ./cmd ./internal`

	// askLongDescription provides detailed help for the ask command.
	askLongDescription = `Assemble project context and send it with your instructions to Gemini.
The project tree is always included; add --content to embed file bodies.
The API key is read from GEMINI_API_KEY (a local .env file is honored).`
	// askUsageExample demonstrates ask command usage.
	askUsageExample = `  # Ask about the current project
  ptc ask "where is the configuration loaded?"

  # Include file contents and cap the prompt size
  ptc ask --content --budget 100000 "review the error handling"`

	pathFlagName      = "path"
	contentFlagName   = "content"
	budgetFlagName    = "budget"
	dryRunFlagName    = "dry-run"
	jsonReplyFlagName = "json"
	systemFlagName    = "system"

	exclusionFlagDescription        = "exclude path pattern"
	disableGitignoreFlagDescription = "do not use .gitignore"
	disableIgnoreFlagDescription    = "do not use .ignore"
	includeGitFlagDescription       = "include git directory"
	formatFlagDescription           = "output format"
	tokensFlagDescription           = "include token counts"
	modelFlagDescription            = "tokenizer model to use for token counting"
	copyFlagDescription             = "copy output to the system clipboard"
	configFlagDescription           = "path to configuration file"
	pathFlagDescription             = "project root to build context from"
	contentFlagDescription          = "embed file contents in the prompt"
	budgetFlagDescription           = "maximum prompt tokens; zero disables the check"
	dryRunFlagDescription           = "print the assembled prompt instead of querying the model"
	jsonReplyFlagDescription        = "request an application/json reply"
	geminiModelFlagDescription      = "gemini model to query"
	systemFlagDescription           = "override the system prompt"

	defaultTokenizerModelName = "gpt-4o"

	invalidFormatMessage        = "invalid format value '%s'"
	unsupportedCommandMessage   = "unsupported command"
	warningSkipPathFormat       = "Warning: skipping %s: %v\n"
	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	clipboardCopyErrorFormat    = "copy output to clipboard: %w"
	// errorAbsolutePathFormat reports failure to resolve an absolute path.
	errorAbsolutePathFormat = "abs failed for '%s': %w"
	// errorPathMissingFormat reports a missing path.
	errorPathMissingFormat = "path '%s' does not exist"
	// errorStatFormat reports failure to retrieve file statistics.
	errorStatFormat = "stat failed for '%s': %w"
	// errorNoValidPaths indicates that all paths are invalid.
	errorNoValidPaths = "no valid paths"
)

// clipboardService is swappable in tests.
var clipboardService clipboard.Copier = clipboard.NewService()

// Execute runs the ptc application.
func Execute() error {
	rootCommand := createRootCommand()
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand() *cobra.Command {
	var showVersion bool
	var configFilePath string

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShort,
		Long:         rootLong,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.PersistentFlags().StringVar(&configFilePath, configFlagName, "", configFlagDescription)
	rootCommand.AddCommand(
		createTreeCommand(&configFilePath),
		createContentCommand(&configFilePath),
		createEstimateCommand(&configFilePath),
		createAskCommand(&configFilePath),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// pathOptions stores configuration for path-related flags.
type pathOptions struct {
	exclusionPatterns []string
	disableGitignore  bool
	disableIgnoreFile bool
	includeGit        bool
}

// addPathFlags registers path-related flags on the command.
func addPathFlags(command *cobra.Command, options *pathOptions) {
	command.Flags().StringArrayVarP(&options.exclusionPatterns, exclusionFlagName, exclusionFlagName, nil, exclusionFlagDescription)
	command.Flags().BoolVar(&options.disableGitignore, noGitignoreFlagName, false, disableGitignoreFlagDescription)
	command.Flags().BoolVar(&options.disableIgnoreFile, noIgnoreFlagName, false, disableIgnoreFlagDescription)
	command.Flags().BoolVar(&options.includeGit, includeGitFlagName, false, includeGitFlagDescription)
}

// applyPathConfiguration overlays config file defaults onto flags the user did
// not set explicitly.
func applyPathConfiguration(command *cobra.Command, options *pathOptions, pathConfiguration config.PathConfiguration) {
	if !command.Flags().Changed(noGitignoreFlagName) && pathConfiguration.UseGitignore != nil {
		options.disableGitignore = !*pathConfiguration.UseGitignore
	}
	if !command.Flags().Changed(noIgnoreFlagName) && pathConfiguration.UseIgnoreFile != nil {
		options.disableIgnoreFile = !*pathConfiguration.UseIgnoreFile
	}
	if !command.Flags().Changed(includeGitFlagName) && pathConfiguration.IncludeGit != nil {
		options.includeGit = *pathConfiguration.IncludeGit
	}
	if len(pathConfiguration.Exclude) > 0 {
		options.exclusionPatterns = append(append([]string(nil), pathConfiguration.Exclude...), options.exclusionPatterns...)
	}
}

// tokenOptions stores configuration for token counting flags.
type tokenOptions struct {
	enabled bool
	model   string
}

func (options tokenOptions) newCounter() (tokenizer.Counter, string, error) {
	if !options.enabled {
		return nil, "", nil
	}
	return tokenizer.NewCounter(tokenizer.Config{Model: options.model})
}

// applyTokenConfiguration overlays config file token defaults onto unset flags.
func applyTokenConfiguration(command *cobra.Command, options *tokenOptions, tokenConfiguration config.TokenConfiguration) {
	if !command.Flags().Changed(tokensFlagName) && tokenConfiguration.Enabled != nil {
		options.enabled = *tokenConfiguration.Enabled
	}
	if !command.Flags().Changed(modelFlagName) && tokenConfiguration.Model != "" {
		options.model = tokenConfiguration.Model
	}
}

// loadConfiguration loads the merged application configuration for a command.
func loadConfiguration(configFilePath string) (config.ApplicationConfiguration, error) {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return config.ApplicationConfiguration{}, fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}
	return config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: configFilePath,
	})
}

// resolveFormat validates the requested output format, preferring the explicit
// flag over the configured default.
func resolveFormat(command *cobra.Command, flagValue string, configuredValue string) (string, error) {
	formatValue := strings.ToLower(flagValue)
	if !command.Flags().Changed(formatFlagName) && configuredValue != "" {
		formatValue = strings.ToLower(configuredValue)
	}
	if !output.IsSupportedFormat(formatValue) {
		return "", fmt.Errorf(invalidFormatMessage, formatValue)
	}
	return formatValue, nil
}

// emitOutput prints the rendered text and optionally copies it to the clipboard.
func emitOutput(renderedText string, copyToClipboard bool) error {
	fmt.Println(renderedText)
	if copyToClipboard {
		if copyError := clipboardService.Copy(renderedText); copyError != nil {
			return fmt.Errorf(clipboardCopyErrorFormat, copyError)
		}
	}
	return nil
}

// validatedPath is an absolute input path that already passed existence checks.
type validatedPath struct {
	AbsolutePath string
	IsDir        bool
}

// resolveAndValidatePaths converts input paths to absolute form, validates
// their existence, and removes duplicates.
func resolveAndValidatePaths(inputs []string) ([]validatedPath, error) {
	seenPaths := make(map[string]struct{})
	var result []validatedPath
	for _, inputPath := range inputs {
		absolutePath, absolutePathError := filepath.Abs(inputPath)
		if absolutePathError != nil {
			return nil, fmt.Errorf(errorAbsolutePathFormat, inputPath, absolutePathError)
		}
		cleanPath := filepath.Clean(absolutePath)
		if _, alreadySeen := seenPaths[cleanPath]; alreadySeen {
			continue
		}
		pathInfo, statError := os.Stat(cleanPath)
		if statError != nil {
			if os.IsNotExist(statError) {
				return nil, fmt.Errorf(errorPathMissingFormat, inputPath)
			}
			return nil, fmt.Errorf(errorStatFormat, inputPath, statError)
		}
		seenPaths[cleanPath] = struct{}{}
		result = append(result, validatedPath{AbsolutePath: cleanPath, IsDir: pathInfo.IsDir()})
	}
	if len(result) == 0 {
		return nil, fmt.Errorf(errorNoValidPaths)
	}
	return result, nil
}
