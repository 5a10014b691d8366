// Package scan enumerates the project files that participate in prompt
// context generation, honoring ignore rules loaded from the project.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/plantocode/ptc/internal/ignore"
)

const (
	warningAccessPathFormat = "Warning: error accessing path %s: %v\n"

	errorAbsolutePathFormat = "getting absolute path for %s: %w"
	errorWalkFormat         = "walking %s: %w"
)

// Options configures a project scan.
type Options struct {
	UseGitignore      bool
	UseIgnoreFile     bool
	IncludeGit        bool
	ExclusionPatterns []string
}

// DefaultOptions returns scan options with both ignore sources enabled.
func DefaultOptions() Options {
	return Options{UseGitignore: true, UseIgnoreFile: true}
}

// Result holds the outcome of a project scan.
type Result struct {
	// Files lists project-relative forward-slash paths of non-ignored files, sorted.
	Files []string
	// IgnorePatterns are the aggregated ignore patterns that were applied.
	IgnorePatterns []string
	// BinaryContentPatterns are patterns that allow binary content to be revealed.
	BinaryContentPatterns []string
}

// NonIgnoredFiles walks rootDirectoryPath and returns every file not excluded by
// the aggregated ignore patterns. Inaccessible subdirectories are skipped with a
// warning on stderr rather than failing the whole scan.
func NonIgnoredFiles(rootDirectoryPath string, options Options) (Result, error) {
	absoluteRootPath, absolutePathError := filepath.Abs(rootDirectoryPath)
	if absolutePathError != nil {
		return Result{}, fmt.Errorf(errorAbsolutePathFormat, rootDirectoryPath, absolutePathError)
	}
	cleanedRootPath := filepath.Clean(absoluteRootPath)

	ignorePatterns, binaryContentPatterns, loadError := ignore.LoadRecursivePatterns(cleanedRootPath, ignore.LoadOptions{
		UseGitignore:      options.UseGitignore,
		UseIgnoreFile:     options.UseIgnoreFile,
		IncludeGit:        options.IncludeGit,
		ExclusionPatterns: options.ExclusionPatterns,
	})
	if loadError != nil {
		return Result{}, loadError
	}

	var relativeFilePaths []string

	walkError := filepath.WalkDir(cleanedRootPath, func(walkedPath string, directoryEntry os.DirEntry, accessError error) error {
		if accessError != nil {
			fmt.Fprintf(os.Stderr, warningAccessPathFormat, walkedPath, accessError)
			if directoryEntry != nil && directoryEntry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relativePath := ignore.RelativePathOrSelf(walkedPath, cleanedRootPath)
		if relativePath == "." {
			return nil
		}
		if ignore.MatchesPath(relativePath, ignorePatterns) {
			if directoryEntry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if directoryEntry.IsDir() {
			return nil
		}

		relativeFilePaths = append(relativeFilePaths, relativePath)
		return nil
	})
	if walkError != nil {
		return Result{}, fmt.Errorf(errorWalkFormat, rootDirectoryPath, walkError)
	}

	sort.Strings(relativeFilePaths)

	return Result{
		Files:                 relativeFilePaths,
		IgnorePatterns:        ignorePatterns,
		BinaryContentPatterns: binaryContentPatterns,
	}, nil
}
