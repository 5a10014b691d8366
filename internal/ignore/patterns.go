// Package ignore loads and evaluates ignore patterns that decide which
// project files participate in prompt context generation.
package ignore

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/plantocode/ptc/internal/utils"
)

const (
	// IgnoreFileName is the name of the tool-specific ignore file.
	IgnoreFileName = ".ignore"
	// GitIgnoreFileName is the name of the Git ignore file.
	GitIgnoreFileName = ".gitignore"
	// ExclusionPrefix marks patterns that exclude root-level directories from processing.
	ExclusionPrefix = "EXCL:"

	// gitDirectoryPattern matches the Git metadata directory.
	gitDirectoryPattern = utils.GitDirectoryName + "/"
	// binarySectionHeader identifies the ignore-file section listing binary content patterns.
	binarySectionHeader = "[binary]"
	// ignoreSectionHeader identifies the ignore-file section listing ignore patterns.
	ignoreSectionHeader = "[ignore]"
)

// ParseIgnoreFile reads the ignore file at ignoreFilePath and returns its ignore
// patterns and binary content patterns. A missing file yields empty results.
//
// #nosec G304
func ParseIgnoreFile(ignoreFilePath string) ([]string, []string, error) {
	fileHandle, openFileError := os.Open(ignoreFilePath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return nil, nil, nil
		}
		return nil, nil, openFileError
	}
	defer func() {
		closeError := fileHandle.Close()
		if closeError != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close %s: %v\n", ignoreFilePath, closeError)
		}
	}()

	var ignorePatterns []string
	var binaryContentPatterns []string
	currentSectionHeader := ignoreSectionHeader
	lineScanner := bufio.NewScanner(fileHandle)
	for lineScanner.Scan() {
		trimmedLine := strings.TrimSpace(lineScanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, "#") {
			continue
		}
		if strings.EqualFold(trimmedLine, binarySectionHeader) {
			currentSectionHeader = binarySectionHeader
			continue
		}
		if strings.EqualFold(trimmedLine, ignoreSectionHeader) {
			currentSectionHeader = ignoreSectionHeader
			continue
		}
		if currentSectionHeader == binarySectionHeader {
			binaryContentPatterns = append(binaryContentPatterns, trimmedLine)
			continue
		}
		ignorePatterns = append(ignorePatterns, trimmedLine)
	}
	if scanError := lineScanner.Err(); scanError != nil {
		return nil, nil, scanError
	}
	return ignorePatterns, binaryContentPatterns, nil
}

// LoadOptions controls which ignore sources contribute patterns.
type LoadOptions struct {
	UseGitignore      bool
	UseIgnoreFile     bool
	IncludeGit        bool
	ExclusionPatterns []string
}

// LoadRecursivePatterns walks rootDirectoryPath and aggregates ignore patterns and
// binary content patterns from every nested ignore file. Patterns declared in a
// nested directory are prefixed with that directory's path relative to the root,
// so a pattern in a child's .gitignore only applies beneath that child. The Git
// metadata directory is excluded unless options.IncludeGit is set, and any
// options.ExclusionPatterns are appended to the result.
func LoadRecursivePatterns(rootDirectoryPath string, options LoadOptions) ([]string, []string, error) {
	var aggregatedPatterns []string
	var aggregatedBinaryPatterns []string

	walkFunction := func(currentDirectoryPath string, directoryEntry fs.DirEntry, walkError error) error {
		if walkError != nil {
			return walkError
		}
		if !directoryEntry.IsDir() {
			return nil
		}
		if !options.IncludeGit && directoryEntry.Name() == utils.GitDirectoryName {
			return filepath.SkipDir
		}

		relativeDirectory := RelativePathOrSelf(currentDirectoryPath, rootDirectoryPath)
		directoryPrefix := ""
		if relativeDirectory != "." {
			directoryPrefix = relativeDirectory + "/"
		}

		if options.UseIgnoreFile {
			ignoreFilePath := filepath.Join(currentDirectoryPath, IgnoreFileName)
			ignorePatterns, binaryPatterns, parseError := ParseIgnoreFile(ignoreFilePath)
			if parseError != nil {
				return fmt.Errorf("loading %s from %s: %w", IgnoreFileName, currentDirectoryPath, parseError)
			}
			for _, pattern := range ignorePatterns {
				aggregatedPatterns = append(aggregatedPatterns, directoryPrefix+pattern)
			}
			for _, binaryPattern := range binaryPatterns {
				aggregatedBinaryPatterns = append(aggregatedBinaryPatterns, directoryPrefix+binaryPattern)
			}
		}

		if options.UseGitignore {
			gitIgnoreFilePath := filepath.Join(currentDirectoryPath, GitIgnoreFileName)
			gitIgnorePatterns, _, parseError := ParseIgnoreFile(gitIgnoreFilePath)
			if parseError != nil {
				return fmt.Errorf("loading %s from %s: %w", GitIgnoreFileName, currentDirectoryPath, parseError)
			}
			for _, pattern := range gitIgnorePatterns {
				aggregatedPatterns = append(aggregatedPatterns, directoryPrefix+pattern)
			}
		}

		return nil
	}

	if walkError := filepath.WalkDir(rootDirectoryPath, walkFunction); walkError != nil {
		return nil, nil, walkError
	}

	if !options.IncludeGit {
		aggregatedPatterns = append(aggregatedPatterns, gitDirectoryPattern)
	}

	deduplicatedPatterns := Deduplicate(aggregatedPatterns)
	deduplicatedBinaryPatterns := Deduplicate(aggregatedBinaryPatterns)

	for _, exclusionPattern := range options.ExclusionPatterns {
		trimmedPattern := strings.TrimSpace(exclusionPattern)
		if trimmedPattern == "" {
			continue
		}
		if !containsString(deduplicatedPatterns, trimmedPattern) {
			deduplicatedPatterns = append(deduplicatedPatterns, trimmedPattern)
		}
	}

	return deduplicatedPatterns, deduplicatedBinaryPatterns, nil
}

// Deduplicate removes duplicate patterns while preserving first-occurrence order.
func Deduplicate(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	deduplicated := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, alreadySeen := encounteredPatterns[pattern]; !alreadySeen {
			encounteredPatterns[pattern] = struct{}{}
			deduplicated = append(deduplicated, pattern)
		}
	}
	return deduplicated
}

func containsString(stringSlice []string, targetString string) bool {
	for _, currentString := range stringSlice {
		if currentString == targetString {
			return true
		}
	}
	return false
}
