package tree

import "strings"

const (
	middleChildConnector = "├── "
	lastChildConnector   = "└── "
	continuationIndent   = "│   "
	terminalIndent       = "    "
)

// Render produces the text diagram for the tree rooted at rootNode using the
// conventional tree-command connector style. Traversal is depth-first pre-order
// in the order established by Build, so identical trees always render
// identically. The synthetic root's empty name is not printed; callers trim
// trailing whitespace from the result.
func Render(rootNode *Node) string {
	if rootNode == nil {
		return ""
	}
	var diagramBuilder strings.Builder
	renderNode(&diagramBuilder, rootNode, "", true)
	return diagramBuilder.String()
}

// renderNode appends the line for currentNode and recurses into its children.
// ancestorPrefix accumulates the indentation contributed by ancestors; isLast
// reports whether currentNode is the final sibling at its level.
func renderNode(diagramBuilder *strings.Builder, currentNode *Node, ancestorPrefix string, isLast bool) {
	childPrefix := ancestorPrefix
	if currentNode.Name != "" {
		connector := middleChildConnector
		descendantIndent := continuationIndent
		if isLast {
			connector = lastChildConnector
			descendantIndent = terminalIndent
		}
		diagramBuilder.WriteString(ancestorPrefix)
		diagramBuilder.WriteString(connector)
		diagramBuilder.WriteString(currentNode.Name)
		diagramBuilder.WriteString("\n")
		childPrefix = ancestorPrefix + descendantIndent
	}

	for childIndex, childNode := range currentNode.Children {
		renderNode(diagramBuilder, childNode, childPrefix, childIndex == len(currentNode.Children)-1)
	}
}
