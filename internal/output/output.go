// Package output renders collected results as raw text or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/plantocode/ptc/internal/content"
)

const (
	// FormatRaw selects plain text output.
	FormatRaw = "raw"
	// FormatJSON selects indented JSON output.
	FormatJSON = "json"

	contentSeparator = "----------------------------------------"

	treeHeaderFormat  = "--- Directory Tree: %s ---\n"
	fileHeaderFormat  = "File: %s\n"
	fileTrailerFormat = "End of file: %s\n"

	estimateLineFormat  = "%s: %d files, %s, %d tokens (%s)\n"
	estimateTotalFormat = "total: %d files, %s, %d tokens\n"
)

// IsSupportedFormat reports whether the provided format name is recognized.
func IsSupportedFormat(format string) bool {
	switch format {
	case FormatRaw, FormatJSON:
		return true
	default:
		return false
	}
}

// RenderJSON marshals value as indented JSON.
func RenderJSON(value any) (string, error) {
	jsonData, marshalError := json.MarshalIndent(value, "", "  ")
	if marshalError != nil {
		return "", fmt.Errorf("failed to marshal results to JSON: %w", marshalError)
	}
	return string(jsonData), nil
}

// TreeResult pairs a root path with its rendered diagram and file list.
type TreeResult struct {
	Path    string   `json:"path"`
	Files   []string `json:"files"`
	Diagram string   `json:"diagram"`
}

// RenderTreeRaw renders one tree diagram per root path.
func RenderTreeRaw(treeResults []TreeResult) string {
	var rawBuilder strings.Builder
	for resultIndex, treeResult := range treeResults {
		if len(treeResults) > 1 {
			if resultIndex > 0 {
				rawBuilder.WriteString("\n")
			}
			fmt.Fprintf(&rawBuilder, treeHeaderFormat, treeResult.Path)
		}
		rawBuilder.WriteString(treeResult.Diagram)
		rawBuilder.WriteString("\n")
	}
	return strings.TrimRight(rawBuilder.String(), "\n")
}

// ContentResult pairs a root path with its collected files and summary.
type ContentResult struct {
	Path    string          `json:"path"`
	Files   []content.File  `json:"files"`
	Summary content.Summary `json:"summary"`
}

// RenderContentRaw renders collected file bodies framed with file markers.
func RenderContentRaw(contentResults []ContentResult) string {
	var rawBuilder strings.Builder
	for _, contentResult := range contentResults {
		for _, collectedFile := range contentResult.Files {
			if collectedFile.Type == content.TypeBinary && collectedFile.Content == "" {
				continue
			}
			fmt.Fprintf(&rawBuilder, fileHeaderFormat, collectedFile.Path)
			rawBuilder.WriteString(collectedFile.Content)
			if !strings.HasSuffix(collectedFile.Content, "\n") {
				rawBuilder.WriteString("\n")
			}
			fmt.Fprintf(&rawBuilder, fileTrailerFormat, collectedFile.Path)
			rawBuilder.WriteString(contentSeparator)
			rawBuilder.WriteString("\n")
		}
	}
	return strings.TrimRight(rawBuilder.String(), "\n")
}

// EstimateResult reports the token estimate for one root path.
type EstimateResult struct {
	Path        string `json:"path"`
	TotalFiles  int    `json:"totalFiles"`
	TotalSize   string `json:"totalSize"`
	TotalTokens int    `json:"totalTokens"`
	Model       string `json:"model,omitempty"`
}

// RenderEstimateRaw renders per-path token estimates with a grand total when
// more than one path was estimated.
func RenderEstimateRaw(estimateResults []EstimateResult, grandTotal EstimateResult) string {
	var rawBuilder strings.Builder
	for _, estimateResult := range estimateResults {
		fmt.Fprintf(&rawBuilder, estimateLineFormat,
			estimateResult.Path, estimateResult.TotalFiles, estimateResult.TotalSize,
			estimateResult.TotalTokens, estimateResult.Model)
	}
	if len(estimateResults) > 1 {
		fmt.Fprintf(&rawBuilder, estimateTotalFormat,
			grandTotal.TotalFiles, grandTotal.TotalSize, grandTotal.TotalTokens)
	}
	return strings.TrimRight(rawBuilder.String(), "\n")
}
