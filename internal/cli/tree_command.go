package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/plantocode/ptc/internal/config"
	"github.com/plantocode/ptc/internal/output"
	"github.com/plantocode/ptc/internal/scan"
	"github.com/plantocode/ptc/internal/tree"
)

// createTreeCommand returns the tree subcommand.
func createTreeCommand(configFilePath *string) *cobra.Command {
	var pathConfiguration pathOptions
	var outputFormat string = output.FormatRaw
	var copyToClipboard bool

	treeCommand := &cobra.Command{
		Use:     treeUse,
		Aliases: []string{treeAlias},
		Short:   treeShortDescription,
		Long:    treeLongDescription,
		Example: treeUsageExample,
		Args:    cobra.ArbitraryArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			if len(arguments) == 0 {
				arguments = []string{defaultPath}
			}
			applicationConfiguration, configurationError := loadConfiguration(*configFilePath)
			if configurationError != nil {
				return configurationError
			}
			applyPathConfiguration(command, &pathConfiguration, applicationConfiguration.Tree.Paths)
			resolvedFormat, formatError := resolveFormat(command, outputFormat, applicationConfiguration.Tree.Format)
			if formatError != nil {
				return formatError
			}
			if !command.Flags().Changed(copyFlagName) {
				copyToClipboard = config.BoolOrDefault(applicationConfiguration.Tree.Clipboard, false)
			}
			return runTreeCommand(arguments, pathConfiguration, resolvedFormat, copyToClipboard)
		},
	}

	addPathFlags(treeCommand, &pathConfiguration)
	treeCommand.Flags().StringVar(&outputFormat, formatFlagName, output.FormatRaw, formatFlagDescription)
	treeCommand.Flags().BoolVar(&copyToClipboard, copyFlagName, false, copyFlagDescription)
	return treeCommand
}

// runTreeCommand renders tree diagrams for the requested paths.
func runTreeCommand(paths []string, pathConfiguration pathOptions, format string, copyToClipboard bool) error {
	validatedPaths, validationError := resolveAndValidatePaths(paths)
	if validationError != nil {
		return validationError
	}

	scanOptions := scan.Options{
		UseGitignore:      !pathConfiguration.disableGitignore,
		UseIgnoreFile:     !pathConfiguration.disableIgnoreFile,
		IncludeGit:        pathConfiguration.includeGit,
		ExclusionPatterns: pathConfiguration.exclusionPatterns,
	}

	var treeResults []output.TreeResult
	for _, pathInformation := range validatedPaths {
		treeResult, resultError := buildTreeResult(pathInformation, scanOptions)
		if resultError != nil {
			fmt.Fprintf(os.Stderr, warningSkipPathFormat, pathInformation.AbsolutePath, resultError)
			continue
		}
		treeResults = append(treeResults, treeResult)
	}

	if format == output.FormatJSON {
		renderedJSON, renderError := output.RenderJSON(treeResults)
		if renderError != nil {
			return renderError
		}
		return emitOutput(renderedJSON, copyToClipboard)
	}
	return emitOutput(output.RenderTreeRaw(treeResults), copyToClipboard)
}

// buildTreeResult produces the diagram and file list for a single path.
func buildTreeResult(pathInformation validatedPath, scanOptions scan.Options) (output.TreeResult, error) {
	if !pathInformation.IsDir {
		fileName := filepath.Base(pathInformation.AbsolutePath)
		fileNode := tree.Build([]string{fileName})
		return output.TreeResult{
			Path:    pathInformation.AbsolutePath,
			Files:   []string{fileName},
			Diagram: strings.TrimSpace(tree.Render(fileNode)),
		}, nil
	}

	scanResult, scanError := scan.NonIgnoredFiles(pathInformation.AbsolutePath, scanOptions)
	if scanError != nil {
		return output.TreeResult{}, scanError
	}
	rootNode := tree.Build(scanResult.Files)
	return output.TreeResult{
		Path:    pathInformation.AbsolutePath,
		Files:   scanResult.Files,
		Diagram: strings.TrimSpace(tree.Render(rootNode)),
	}, nil
}
