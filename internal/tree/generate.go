package tree

import (
	"strings"

	"go.uber.org/zap"

	"github.com/plantocode/ptc/internal/scan"
)

const generationFailedMessage = "directory tree generation failed"

// Enumerator returns the project-relative forward-slash paths of all
// non-ignored files beneath the given root directory.
type Enumerator func(rootDirectoryPath string) ([]string, error)

// Generator produces prompt-ready directory tree text for a project root.
type Generator struct {
	Enumerate Enumerator
	Logger    *zap.Logger
}

// NewGenerator constructs a Generator backed by the project scanner.
func NewGenerator(scanOptions scan.Options, logger *zap.Logger) *Generator {
	return &Generator{
		Enumerate: func(rootDirectoryPath string) ([]string, error) {
			scanResult, scanError := scan.NonIgnoredFiles(rootDirectoryPath, scanOptions)
			if scanError != nil {
				return nil, scanError
			}
			return scanResult.Files, nil
		},
		Logger: logger,
	}
}

// Generate returns the trimmed text diagram of the non-ignored files beneath
// rootDirectoryPath. A blank root or any enumeration failure degrades to an
// empty string; failures are logged, never propagated.
func (generator *Generator) Generate(rootDirectoryPath string) string {
	if strings.TrimSpace(rootDirectoryPath) == "" {
		return ""
	}

	relativeFilePaths, enumerationError := generator.Enumerate(rootDirectoryPath)
	if enumerationError != nil {
		if generator.Logger != nil {
			generator.Logger.Error(generationFailedMessage,
				zap.String("root", rootDirectoryPath),
				zap.Error(enumerationError))
		}
		return ""
	}

	rootNode := Build(relativeFilePaths)
	return strings.TrimSpace(Render(rootNode))
}
