package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plantocode/ptc/internal/config"
	"github.com/plantocode/ptc/internal/content"
	"github.com/plantocode/ptc/internal/output"
	"github.com/plantocode/ptc/internal/scan"
	"github.com/plantocode/ptc/internal/tokenizer"
	"github.com/plantocode/ptc/internal/utils"
)

// createEstimateCommand returns the estimate subcommand.
func createEstimateCommand(configFilePath *string) *cobra.Command {
	var pathConfiguration pathOptions
	var outputFormat string = output.FormatRaw
	var copyToClipboard bool
	var tokenizerModel string = tokenizer.HeuristicModelName

	estimateCommand := &cobra.Command{
		Use:     estimateUse,
		Aliases: []string{estimateAlias},
		Short:   estimateShortDescription,
		Long:    estimateLongDescription,
		Example: estimateUsageExample,
		Args:    cobra.ArbitraryArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			if len(arguments) == 0 {
				arguments = []string{defaultPath}
			}
			applicationConfiguration, configurationError := loadConfiguration(*configFilePath)
			if configurationError != nil {
				return configurationError
			}
			applyPathConfiguration(command, &pathConfiguration, applicationConfiguration.Estimate.Paths)
			if !command.Flags().Changed(modelFlagName) && applicationConfiguration.Estimate.Tokens.Model != "" {
				tokenizerModel = applicationConfiguration.Estimate.Tokens.Model
			}
			resolvedFormat, formatError := resolveFormat(command, outputFormat, applicationConfiguration.Estimate.Format)
			if formatError != nil {
				return formatError
			}
			if !command.Flags().Changed(copyFlagName) {
				copyToClipboard = config.BoolOrDefault(applicationConfiguration.Estimate.Clipboard, false)
			}
			return runEstimateCommand(command.Context(), arguments, pathConfiguration, tokenizerModel, resolvedFormat, copyToClipboard)
		},
	}

	addPathFlags(estimateCommand, &pathConfiguration)
	estimateCommand.Flags().StringVar(&outputFormat, formatFlagName, output.FormatRaw, formatFlagDescription)
	estimateCommand.Flags().StringVar(&tokenizerModel, modelFlagName, tokenizer.HeuristicModelName, modelFlagDescription)
	estimateCommand.Flags().BoolVar(&copyToClipboard, copyFlagName, false, copyFlagDescription)
	return estimateCommand
}

// runEstimateCommand reports token estimates for the requested paths.
func runEstimateCommand(
	ctx context.Context,
	paths []string,
	pathConfiguration pathOptions,
	tokenizerModel string,
	format string,
	copyToClipboard bool,
) error {
	validatedPaths, validationError := resolveAndValidatePaths(paths)
	if validationError != nil {
		return validationError
	}

	tokenCounter, resolvedModel, counterError := tokenizer.NewCounter(tokenizer.Config{Model: tokenizerModel})
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
		TokenModel:   resolvedModel,
	}

	var estimateResults []output.EstimateResult
	grandTotal := output.EstimateResult{}
	var grandTotalBytes int64

	for _, pathInformation := range validatedPaths {
		var collectedFiles []content.File
		var collectError error
		if pathInformation.IsDir {
			collectedFiles, collectError = collector.Collect(ctx, pathInformation.AbsolutePath)
		} else {
			collectedFiles, collectError = collectSingleFile(pathInformation.AbsolutePath, tokenCounter, resolvedModel)
		}
		if collectError != nil {
			fmt.Fprintf(os.Stderr, warningSkipPathFormat, pathInformation.AbsolutePath, collectError)
			continue
		}

		pathSummary := content.Summarize(collectedFiles, resolvedModel)
		estimateResults = append(estimateResults, output.EstimateResult{
			Path:        pathInformation.AbsolutePath,
			TotalFiles:  pathSummary.TotalFiles,
			TotalSize:   pathSummary.TotalSize,
			TotalTokens: pathSummary.TotalTokens,
			Model:       resolvedModel,
		})

		grandTotal.TotalFiles += pathSummary.TotalFiles
		grandTotal.TotalTokens += pathSummary.TotalTokens
		for _, collectedFile := range collectedFiles {
			grandTotalBytes += collectedFile.SizeBytes
		}
	}
	grandTotal.TotalSize = utils.FormatFileSize(grandTotalBytes)
	grandTotal.Model = resolvedModel

	if format == output.FormatJSON {
		renderedJSON, renderError := output.RenderJSON(estimateResults)
		if renderError != nil {
			return renderError
		}
		return emitOutput(renderedJSON, copyToClipboard)
	}
	return emitOutput(output.RenderEstimateRaw(estimateResults, grandTotal), copyToClipboard)
}
