package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/plantocode/ptc/internal/config"
	"github.com/plantocode/ptc/internal/content"
	"github.com/plantocode/ptc/internal/output"
	"github.com/plantocode/ptc/internal/scan"
	"github.com/plantocode/ptc/internal/tokenizer"
	"github.com/plantocode/ptc/internal/utils"
)

// createContentCommand returns the content subcommand.
func createContentCommand(configFilePath *string) *cobra.Command {
	var pathConfiguration pathOptions
	var outputFormat string = output.FormatJSON
	var copyToClipboard bool
	var tokenConfiguration tokenOptions
	tokenConfiguration.model = defaultTokenizerModelName

	contentCommand := &cobra.Command{
		Use:     contentUse,
		Aliases: []string{contentAlias},
		Short:   contentShortDescription,
		Long:    contentLongDescription,
		Example: contentUsageExample,
		Args:    cobra.ArbitraryArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			if len(arguments) == 0 {
				arguments = []string{defaultPath}
			}
			applicationConfiguration, configurationError := loadConfiguration(*configFilePath)
			if configurationError != nil {
				return configurationError
			}
			applyPathConfiguration(command, &pathConfiguration, applicationConfiguration.Content.Paths)
			applyTokenConfiguration(command, &tokenConfiguration, applicationConfiguration.Content.Tokens)
			resolvedFormat, formatError := resolveFormat(command, outputFormat, applicationConfiguration.Content.Format)
			if formatError != nil {
				return formatError
			}
			if !command.Flags().Changed(copyFlagName) {
				copyToClipboard = config.BoolOrDefault(applicationConfiguration.Content.Clipboard, false)
			}
			return runContentCommand(command.Context(), arguments, pathConfiguration, tokenConfiguration, resolvedFormat, copyToClipboard)
		},
	}

	addPathFlags(contentCommand, &pathConfiguration)
	contentCommand.Flags().StringVar(&outputFormat, formatFlagName, output.FormatJSON, formatFlagDescription)
	contentCommand.Flags().BoolVar(&tokenConfiguration.enabled, tokensFlagName, false, tokensFlagDescription)
	contentCommand.Flags().StringVar(&tokenConfiguration.model, modelFlagName, defaultTokenizerModelName, modelFlagDescription)
	contentCommand.Flags().BoolVar(&copyToClipboard, copyFlagName, false, copyFlagDescription)
	return contentCommand
}

// runContentCommand collects and renders file content for the requested paths.
func runContentCommand(
	ctx context.Context,
	paths []string,
	pathConfiguration pathOptions,
	tokenConfiguration tokenOptions,
	format string,
	copyToClipboard bool,
) error {
	validatedPaths, validationError := resolveAndValidatePaths(paths)
	if validationError != nil {
		return validationError
	}

	tokenCounter, tokenModel, counterError := tokenConfiguration.newCounter()
	if counterError != nil {
		return counterError
	}

	collector := &content.Collector{
		ScanOptions: scan.Options{
			UseGitignore:      !pathConfiguration.disableGitignore,
			UseIgnoreFile:     !pathConfiguration.disableIgnoreFile,
			IncludeGit:        pathConfiguration.includeGit,
			ExclusionPatterns: pathConfiguration.exclusionPatterns,
		},
		TokenCounter: tokenCounter,
		TokenModel:   tokenModel,
	}

	var contentResults []output.ContentResult
	for _, pathInformation := range validatedPaths {
		var collectedFiles []content.File
		var collectError error
		if pathInformation.IsDir {
			collectedFiles, collectError = collector.Collect(ctx, pathInformation.AbsolutePath)
		} else {
			collectedFiles, collectError = collectSingleFile(pathInformation.AbsolutePath, tokenCounter, tokenModel)
		}
		if collectError != nil {
			fmt.Fprintf(os.Stderr, warningSkipPathFormat, pathInformation.AbsolutePath, collectError)
			continue
		}
		contentResults = append(contentResults, output.ContentResult{
			Path:    pathInformation.AbsolutePath,
			Files:   collectedFiles,
			Summary: content.Summarize(collectedFiles, tokenModel),
		})
	}

	if format == output.FormatJSON {
		renderedJSON, renderError := output.RenderJSON(contentResults)
		if renderError != nil {
			return renderError
		}
		return emitOutput(renderedJSON, copyToClipboard)
	}
	return emitOutput(output.RenderContentRaw(contentResults), copyToClipboard)
}

// collectSingleFile prepares the content record for one explicitly named file.
func collectSingleFile(absoluteFilePath string, tokenCounter tokenizer.Counter, tokenModel string) ([]content.File, error) {
	fileBytes, readError := os.ReadFile(absoluteFilePath)
	if readError != nil {
		return nil, readError
	}

	collectedFile := content.File{
		Path:         absoluteFilePath,
		RelativePath: filepath.Base(absoluteFilePath),
		Type:         content.TypeFile,
		MimeType:     utils.DetectMimeType(absoluteFilePath),
		SizeBytes:    int64(len(fileBytes)),
		Size:         utils.FormatFileSize(int64(len(fileBytes))),
	}
	if fileInfo, statError := os.Stat(absoluteFilePath); statError == nil {
		collectedFile.LastModified = utils.FormatTimestamp(fileInfo.ModTime())
	}
	if utils.IsBinary(fileBytes) {
		collectedFile.Type = content.TypeBinary
	} else {
		collectedFile.Content = string(fileBytes)
		collectedFile.ContentEncoding = content.EncodingUTF8
	}

	if tokenCounter != nil && collectedFile.Type != content.TypeBinary {
		countResult, countError := tokenizer.CountBytes(tokenCounter, fileBytes)
		if countError == nil && countResult.Counted {
			collectedFile.Tokens = countResult.Tokens
			if collectedFile.Tokens > 0 && tokenModel != "" {
				collectedFile.Model = tokenModel
			}
		}
	}

	return []content.File{collectedFile}, nil
}
