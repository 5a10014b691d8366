// Package tree converts flat file path lists into directory trees and renders
// them as text diagrams suitable for embedding in AI prompts.
package tree

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Node is a vertex of the directory tree. The synthetic root carries an empty
// name and is always a directory.
type Node struct {
	Name        string  `json:"name"`
	Children    []*Node `json:"children,omitempty"`
	IsDirectory bool    `json:"isDirectory"`
}

const pathSegmentSeparator = "/"

// Build constructs a directory tree from relative slash-delimited file paths.
// Paths sharing a directory prefix merge into one subtree regardless of input
// order because children are looked up by name at each level. After every
// insertion the sibling list is re-sorted so directories precede files and each
// group is ordered alphabetically using locale-aware comparison.
func Build(relativeFilePaths []string) *Node {
	rootNode := &Node{Name: "", IsDirectory: true}
	nameCollator := collate.New(language.Und, collate.IgnoreCase)

	for _, relativeFilePath := range relativeFilePaths {
		pathSegments := strings.Split(relativeFilePath, pathSegmentSeparator)
		currentNode := rootNode
		for segmentIndex, pathSegment := range pathSegments {
			isFinalSegment := segmentIndex == len(pathSegments)-1
			childNode := findChildByName(currentNode, pathSegment)
			if childNode == nil {
				childNode = &Node{Name: pathSegment, IsDirectory: !isFinalSegment}
				currentNode.Children = append(currentNode.Children, childNode)
				sortChildren(currentNode, nameCollator)
			}
			currentNode = childNode
		}
	}

	return rootNode
}

// findChildByName returns the child of parentNode with the given name, or nil.
func findChildByName(parentNode *Node, childName string) *Node {
	for _, childNode := range parentNode.Children {
		if childNode.Name == childName {
			return childNode
		}
	}
	return nil
}

// sortChildren orders a node's children so that directories precede files and
// entries within each group sort alphabetically by name.
func sortChildren(parentNode *Node, nameCollator *collate.Collator) {
	sort.SliceStable(parentNode.Children, func(leftIndex, rightIndex int) bool {
		return childLess(parentNode.Children[leftIndex], parentNode.Children[rightIndex], nameCollator)
	})
}

// childLess reports whether left orders before right: directories before files,
// then locale-aware alphabetical comparison of names.
func childLess(left, right *Node, nameCollator *collate.Collator) bool {
	if left.IsDirectory != right.IsDirectory {
		return left.IsDirectory
	}
	return nameCollator.CompareString(left.Name, right.Name) < 0
}
