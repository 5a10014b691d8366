// Package config loads application configuration defaults from yaml files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/plantocode/ptc/internal/ignore"
)

const (
	// ConfigFileName is the name of the per-project configuration file.
	ConfigFileName = "ptc.yaml"
	// GlobalConfigDirectoryName is the directory under $HOME holding global configuration.
	GlobalConfigDirectoryName = ".ptc"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds command-specific configuration defaults.
type ApplicationConfiguration struct {
	Tree     CommandConfiguration `mapstructure:"tree"`
	Content  CommandConfiguration `mapstructure:"content"`
	Estimate CommandConfiguration `mapstructure:"estimate"`
	Ask      AskConfiguration     `mapstructure:"ask"`
}

// CommandConfiguration defines options shared by the tree, content, and
// estimate commands.
type CommandConfiguration struct {
	Format    string             `mapstructure:"format"`
	Tokens    TokenConfiguration `mapstructure:"tokens"`
	Paths     PathConfiguration  `mapstructure:"paths"`
	Clipboard *bool              `mapstructure:"clipboard"`
}

// TokenConfiguration controls token counting defaults.
type TokenConfiguration struct {
	Enabled *bool  `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
}

// PathConfiguration configures inclusion and exclusion rules for path traversal.
type PathConfiguration struct {
	Exclude       []string `mapstructure:"exclude"`
	UseGitignore  *bool    `mapstructure:"use_gitignore"`
	UseIgnoreFile *bool    `mapstructure:"use_ignore"`
	IncludeGit    *bool    `mapstructure:"include_git"`
}

// AskConfiguration defines defaults for the ask command.
type AskConfiguration struct {
	Model          string            `mapstructure:"model"`
	IncludeContent *bool             `mapstructure:"content"`
	TokenBudget    *int              `mapstructure:"token_budget"`
	Paths          PathConfiguration `mapstructure:"paths"`
}

// LoadApplicationConfiguration loads and merges configuration from the global
// file under $HOME and the local file in the working directory. Missing files
// contribute nothing.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, homeDirectoryError := os.UserHomeDir(); homeDirectoryError == nil && homeDirectory != "" {
		globalConfigPath := filepath.Join(homeDirectory, GlobalConfigDirectoryName, ConfigFileName)
		globalConfiguration, loadError := loadConfigurationFromPath(globalConfigPath)
		if loadError != nil {
			return ApplicationConfiguration{}, loadError
		}
		merged = merged.Merge(globalConfiguration)
	}

	localConfigPath, resolveError := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if resolveError != nil {
		return ApplicationConfiguration{}, resolveError
	}
	if localConfigPath != "" {
		localConfiguration, loadError := loadConfigurationFromPath(localConfigPath)
		if loadError != nil {
			return ApplicationConfiguration{}, loadError
		}
		merged = merged.Merge(localConfiguration)
	}

	merged.Tree.Paths.Exclude = ignore.Deduplicate(merged.Tree.Paths.Exclude)
	merged.Content.Paths.Exclude = ignore.Deduplicate(merged.Content.Paths.Exclude)
	merged.Estimate.Paths.Exclude = ignore.Deduplicate(merged.Estimate.Paths.Exclude)
	merged.Ask.Paths.Exclude = ignore.Deduplicate(merged.Ask.Paths.Exclude)

	return merged, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) (string, error) {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath, nil
		}
		if workingDirectory == "" {
			absolutePath, absolutePathError := filepath.Abs(explicitPath)
			if absolutePathError != nil {
				return "", fmt.Errorf("resolve configuration path %s: %w", explicitPath, absolutePathError)
			}
			return absolutePath, nil
		}
		return filepath.Join(workingDirectory, explicitPath), nil
	}
	if workingDirectory == "" {
		return "", nil
	}
	return filepath.Join(workingDirectory, ConfigFileName), nil
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	if path == "" {
		return ApplicationConfiguration{}, nil
	}
	pathInfo, statError := os.Stat(path)
	if statError != nil {
		if os.IsNotExist(statError) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statError)
	}
	if pathInfo.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	configReader := viper.New()
	configReader.SetConfigFile(path)
	if readError := configReader.ReadInConfig(); readError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readError)
	}
	var loadedConfiguration ApplicationConfiguration
	if decodeError := configReader.Unmarshal(&loadedConfiguration); decodeError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeError)
	}
	return loadedConfiguration, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (configuration ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := configuration
	result.Tree = result.Tree.merge(override.Tree)
	result.Content = result.Content.merge(override.Content)
	result.Estimate = result.Estimate.merge(override.Estimate)
	result.Ask = result.Ask.merge(override.Ask)
	return result
}

func (configuration CommandConfiguration) merge(override CommandConfiguration) CommandConfiguration {
	result := configuration
	if override.Format != "" {
		result.Format = override.Format
	}
	result.Tokens = result.Tokens.merge(override.Tokens)
	result.Paths = result.Paths.merge(override.Paths)
	if override.Clipboard != nil {
		result.Clipboard = cloneBool(override.Clipboard)
	}
	return result
}

func (configuration TokenConfiguration) merge(override TokenConfiguration) TokenConfiguration {
	result := configuration
	if override.Enabled != nil {
		result.Enabled = cloneBool(override.Enabled)
	}
	if override.Model != "" {
		result.Model = override.Model
	}
	return result
}

func (configuration PathConfiguration) merge(override PathConfiguration) PathConfiguration {
	result := configuration
	if len(override.Exclude) > 0 {
		result.Exclude = append([]string(nil), override.Exclude...)
	}
	if override.UseGitignore != nil {
		result.UseGitignore = cloneBool(override.UseGitignore)
	}
	if override.UseIgnoreFile != nil {
		result.UseIgnoreFile = cloneBool(override.UseIgnoreFile)
	}
	if override.IncludeGit != nil {
		result.IncludeGit = cloneBool(override.IncludeGit)
	}
	return result
}

func (configuration AskConfiguration) merge(override AskConfiguration) AskConfiguration {
	result := configuration
	if override.Model != "" {
		result.Model = override.Model
	}
	if override.IncludeContent != nil {
		result.IncludeContent = cloneBool(override.IncludeContent)
	}
	if override.TokenBudget != nil {
		budgetValue := *override.TokenBudget
		result.TokenBudget = &budgetValue
	}
	result.Paths = result.Paths.merge(override.Paths)
	return result
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

// BoolOrDefault dereferences an optional boolean falling back to defaultValue.
func BoolOrDefault(value *bool, defaultValue bool) bool {
	if value == nil {
		return defaultValue
	}
	return *value
}
