package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/plantocode/ptc/internal/content"
	"github.com/plantocode/ptc/internal/llm"
	"github.com/plantocode/ptc/internal/output"
	"github.com/plantocode/ptc/internal/prompt"
	"github.com/plantocode/ptc/internal/scan"
	"github.com/plantocode/ptc/internal/tokenizer"
	"github.com/plantocode/ptc/internal/tree"
	"github.com/plantocode/ptc/internal/utils"
)

// askOptions stores configuration for the ask command flags.
type askOptions struct {
	projectRoot    string
	includeContent bool
	tokenBudget    int
	geminiModel    string
	systemPrompt   string
	dryRun         bool
	jsonReply      bool
	copyReply      bool
}

// createAskCommand returns the ask subcommand.
func createAskCommand(configFilePath *string) *cobra.Command {
	var pathConfiguration pathOptions
	var options askOptions

	askCommand := &cobra.Command{
		Use:     askUse,
		Aliases: []string{askAlias},
		Short:   askShortDescription,
		Long:    askLongDescription,
		Example: askUsageExample,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			applicationConfiguration, configurationError := loadConfiguration(*configFilePath)
			if configurationError != nil {
				return configurationError
			}
			applyPathConfiguration(command, &pathConfiguration, applicationConfiguration.Ask.Paths)
			if !command.Flags().Changed(modelFlagName) && applicationConfiguration.Ask.Model != "" {
				options.geminiModel = applicationConfiguration.Ask.Model
			}
			if !command.Flags().Changed(contentFlagName) && applicationConfiguration.Ask.IncludeContent != nil {
				options.includeContent = *applicationConfiguration.Ask.IncludeContent
			}
			if !command.Flags().Changed(budgetFlagName) && applicationConfiguration.Ask.TokenBudget != nil {
				options.tokenBudget = *applicationConfiguration.Ask.TokenBudget
			}
			instructions := strings.Join(arguments, " ")
			return runAskCommand(command.Context(), instructions, pathConfiguration, options)
		},
	}

	addPathFlags(askCommand, &pathConfiguration)
	askCommand.Flags().StringVar(&options.projectRoot, pathFlagName, defaultPath, pathFlagDescription)
	askCommand.Flags().BoolVar(&options.includeContent, contentFlagName, false, contentFlagDescription)
	askCommand.Flags().IntVar(&options.tokenBudget, budgetFlagName, 0, budgetFlagDescription)
	askCommand.Flags().StringVar(&options.geminiModel, modelFlagName, llm.DefaultModel, geminiModelFlagDescription)
	askCommand.Flags().StringVar(&options.systemPrompt, systemFlagName, "", systemFlagDescription)
	askCommand.Flags().BoolVar(&options.dryRun, dryRunFlagName, false, dryRunFlagDescription)
	askCommand.Flags().BoolVar(&options.jsonReply, jsonReplyFlagName, false, jsonReplyFlagDescription)
	askCommand.Flags().BoolVar(&options.copyReply, copyFlagName, false, copyFlagDescription)
	return askCommand
}

// runAskCommand assembles project context and queries Gemini.
func runAskCommand(ctx context.Context, instructions string, pathConfiguration pathOptions, options askOptions) error {
	// Missing .env files are fine; the environment may already carry the key.
	_ = godotenv.Load()

	validatedPaths, validationError := resolveAndValidatePaths([]string{options.projectRoot})
	if validationError != nil {
		return validationError
	}
	projectRoot := validatedPaths[0].AbsolutePath

	applicationLogger, loggerError := utils.NewApplicationLogger()
	if loggerError != nil {
		return fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerError)
	}
	defer applicationLogger.Sync()

	scanOptions := scan.Options{
		UseGitignore:      !pathConfiguration.disableGitignore,
		UseIgnoreFile:     !pathConfiguration.disableIgnoreFile,
		IncludeGit:        pathConfiguration.includeGit,
		ExclusionPatterns: pathConfiguration.exclusionPatterns,
	}

	treeGenerator := tree.NewGenerator(scanOptions, applicationLogger)
	treeDiagram := treeGenerator.Generate(projectRoot)

	var collectedFiles []content.File
	if options.includeContent {
		collector := &content.Collector{ScanOptions: scanOptions}
		files, collectError := collector.Collect(ctx, projectRoot)
		if collectError != nil {
			return collectError
		}
		collectedFiles = files
	}

	promptBuilder := &prompt.Builder{
		SystemPrompt: options.systemPrompt,
		TokenCounter: tokenizer.HeuristicCounter{},
		TokenBudget:  options.tokenBudget,
	}
	assembledPrompt, buildError := promptBuilder.Build(treeDiagram, collectedFiles, instructions)
	if buildError != nil {
		return buildError
	}

	if options.dryRun {
		return emitOutput(assembledPrompt.UserPrompt, options.copyReply)
	}

	geminiClient, clientError := llm.NewGeminiClient(ctx, options.geminiModel)
	if clientError != nil {
		return clientError
	}

	if options.jsonReply {
		rawReply, generateError := geminiClient.GenerateJSON(ctx, assembledPrompt.SystemPrompt, assembledPrompt.UserPrompt)
		if generateError != nil {
			return generateError
		}
		renderedReply, renderError := output.RenderJSON(rawReply)
		if renderError != nil {
			return renderError
		}
		return emitOutput(renderedReply, options.copyReply)
	}

	replyText, generateError := geminiClient.Generate(ctx, assembledPrompt.SystemPrompt, assembledPrompt.UserPrompt)
	if generateError != nil {
		return generateError
	}
	return emitOutput(replyText, options.copyReply)
}
