// Package content collects file bodies and metadata for prompt assembly.
package content

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/plantocode/ptc/internal/ignore"
	"github.com/plantocode/ptc/internal/scan"
	"github.com/plantocode/ptc/internal/tokenizer"
	"github.com/plantocode/ptc/internal/utils"
)

const (
	// TypeFile marks textual files whose content is embedded directly.
	TypeFile = "file"
	// TypeBinary marks binary files whose content is omitted unless matched
	// by a binary content pattern.
	TypeBinary = "binary"

	// EncodingUTF8 labels content embedded as plain text.
	EncodingUTF8 = "utf-8"
	// EncodingBase64 labels binary content revealed via base64.
	EncodingBase64 = "base64"

	warningFileReadFormat   = "Warning: failed to read file %s: %v\n"
	warningTokenCountFormat = "Warning: failed to count tokens for %s: %v\n"

	errorAbsolutePathFormat = "getting absolute path for %s: %w"
)

// File is one collected file prepared for prompt embedding.
type File struct {
	Path            string `json:"path"`
	RelativePath    string `json:"relativePath"`
	Type            string `json:"type"`
	Content         string `json:"content"`
	ContentEncoding string `json:"contentEncoding,omitempty"`
	Size            string `json:"size,omitempty"`
	SizeBytes       int64  `json:"-"`
	LastModified    string `json:"lastModified,omitempty"`
	MimeType        string `json:"mimeType,omitempty"`
	Tokens          int    `json:"tokens,omitempty"`
	Model           string `json:"model,omitempty"`
}

// Summary aggregates collected files.
type Summary struct {
	TotalFiles  int    `json:"totalFiles"`
	TotalSize   string `json:"totalSize"`
	TotalTokens int    `json:"totalTokens,omitempty"`
	Model       string `json:"model,omitempty"`
}

// Collector gathers prompt-ready file content beneath a project root.
type Collector struct {
	ScanOptions  scan.Options
	TokenCounter tokenizer.Counter
	TokenModel   string
	// Concurrency bounds parallel file reads; zero means one worker per CPU.
	Concurrency int
}

// Collect scans rootDirectoryPath and returns one File per non-ignored file in
// scan order. Files are read and token-counted concurrently; unreadable files
// are skipped with a warning on stderr.
func (collector *Collector) Collect(ctx context.Context, rootDirectoryPath string) ([]File, error) {
	absoluteRootPath, absolutePathError := filepath.Abs(rootDirectoryPath)
	if absolutePathError != nil {
		return nil, fmt.Errorf(errorAbsolutePathFormat, rootDirectoryPath, absolutePathError)
	}

	scanResult, scanError := scan.NonIgnoredFiles(absoluteRootPath, collector.ScanOptions)
	if scanError != nil {
		return nil, scanError
	}

	collectedFiles := make([]*File, len(scanResult.Files))

	workerGroup, groupCtx := errgroup.WithContext(ctx)
	workerLimit := collector.Concurrency
	if workerLimit <= 0 {
		workerLimit = runtime.NumCPU()
	}
	workerGroup.SetLimit(workerLimit)

	for fileIndex, relativeFilePath := range scanResult.Files {
		workerGroup.Go(func() error {
			if groupCtx.Err() != nil {
				return groupCtx.Err()
			}
			collectedFiles[fileIndex] = collector.collectFile(absoluteRootPath, relativeFilePath, scanResult.BinaryContentPatterns)
			return nil
		})
	}

	if waitError := workerGroup.Wait(); waitError != nil {
		return nil, waitError
	}

	orderedFiles := make([]File, 0, len(collectedFiles))
	for _, collectedFile := range collectedFiles {
		if collectedFile != nil {
			orderedFiles = append(orderedFiles, *collectedFile)
		}
	}
	return orderedFiles, nil
}

// collectFile reads a single file and prepares its prompt record. A read
// failure returns nil after warning on stderr.
func (collector *Collector) collectFile(absoluteRootPath string, relativeFilePath string, binaryContentPatterns []string) *File {
	absoluteFilePath := filepath.Join(absoluteRootPath, filepath.FromSlash(relativeFilePath))

	fileBytes, readError := os.ReadFile(absoluteFilePath)
	if readError != nil {
		fmt.Fprintf(os.Stderr, warningFileReadFormat, absoluteFilePath, readError)
		return nil
	}

	collectedFile := &File{
		Path:         absoluteFilePath,
		RelativePath: relativeFilePath,
		Type:         TypeFile,
		MimeType:     utils.DetectMimeType(absoluteFilePath),
		SizeBytes:    int64(len(fileBytes)),
		Size:         utils.FormatFileSize(int64(len(fileBytes))),
	}
	if fileInfo, statError := os.Stat(absoluteFilePath); statError == nil {
		collectedFile.LastModified = utils.FormatTimestamp(fileInfo.ModTime())
	}

	if utils.IsBinary(fileBytes) {
		collectedFile.Type = TypeBinary
		if ignore.MatchesBinaryContent(relativeFilePath, binaryContentPatterns) {
			collectedFile.Content = base64.StdEncoding.EncodeToString(fileBytes)
			collectedFile.ContentEncoding = EncodingBase64
		}
	} else {
		collectedFile.Content = string(fileBytes)
		collectedFile.ContentEncoding = EncodingUTF8
	}

	if collector.TokenCounter != nil && collectedFile.Type != TypeBinary {
		countResult, countError := tokenizer.CountBytes(collector.TokenCounter, fileBytes)
		if countError != nil {
			fmt.Fprintf(os.Stderr, warningTokenCountFormat, absoluteFilePath, countError)
		} else if countResult.Counted {
			collectedFile.Tokens = countResult.Tokens
			if collectedFile.Tokens > 0 && collector.TokenModel != "" {
				collectedFile.Model = collector.TokenModel
			}
		}
	}

	return collectedFile
}

// Summarize aggregates file counts, sizes, and token totals for the collection.
func Summarize(collectedFiles []File, tokenModel string) Summary {
	var totalBytes int64
	var totalTokens int
	for _, collectedFile := range collectedFiles {
		totalBytes += collectedFile.SizeBytes
		totalTokens += collectedFile.Tokens
	}
	summary := Summary{
		TotalFiles: len(collectedFiles),
		TotalSize:  utils.FormatFileSize(totalBytes),
	}
	if totalTokens > 0 {
		summary.TotalTokens = totalTokens
		summary.Model = tokenModel
	}
	return summary
}
