package markup

import (
	"regexp"
	"strings"
)

// Kind identifies how a rendered line is displayed.
type Kind string

const (
	Heading1     Kind = "heading1"
	Heading2     Kind = "heading2"
	Emphasis     Kind = "emphasis"
	NumberedItem Kind = "numbered"
	Bullet       Kind = "bullet"
	Blank        Kind = "blank"
	Paragraph    Kind = "paragraph"
)

// Node is the display form of exactly one input line.
// NumberedItem uses Label (bold) and Body; every other kind uses Text.
type Node struct {
	Kind  Kind   `json:"kind"`
	Text  string `json:"text,omitempty"`
	Label string `json:"label,omitempty"`
	Body  string `json:"body,omitempty"`
}

var (
	numberedPattern = regexp.MustCompile(`^[\s\p{Zs}]*\d+\.[\s\p{Zs}]`)
	headingRun      = regexp.MustCompile(`#+[\s\p{Zs}]*`)
)

type rule struct {
	match func(line string) bool
	build func(line string) Node
}

// rules are tried in order; the first match wins. "# " must come before "## "
// and both before the deeper-heading fold.
var rules = []rule{
	{
		match: func(l string) bool { return strings.HasPrefix(l, "# ") },
		build: func(l string) Node { return Node{Kind: Heading1, Text: l[2:]} },
	},
	{
		match: func(l string) bool { return strings.HasPrefix(l, "## ") },
		build: func(l string) Node { return Node{Kind: Heading2, Text: l[3:]} },
	},
	{
		match: func(l string) bool { return strings.HasPrefix(strings.TrimSpace(l), "###") },
		build: func(l string) Node {
			trimmed := strings.TrimSpace(l)
			loc := headingRun.FindStringIndex(trimmed)
			return Node{Kind: Emphasis, Text: trimmed[:loc[0]] + trimmed[loc[1]:]}
		},
	},
	{
		match: numberedPattern.MatchString,
		build: numberedNode,
	},
	{
		match: func(l string) bool { return strings.HasPrefix(l, "* ") || strings.HasPrefix(l, "- ") },
		build: func(l string) Node { return Node{Kind: Bullet, Text: l[2:]} },
	},
	{
		match: func(l string) bool { return strings.TrimSpace(l) == "" },
		build: func(string) Node { return Node{Kind: Blank} },
	},
}

// Render converts the supported markdown subset into one node per line.
// Emphasis markers ("**") are dropped everywhere rather than rendered.
func Render(text string) []Node {
	lines := strings.Split(text, "\n")
	nodes := make([]Node, 0, len(lines))
	for _, line := range lines {
		nodes = append(nodes, classify(strings.ReplaceAll(line, "**", "")))
	}
	return nodes
}

func classify(line string) Node {
	for _, r := range rules {
		if r.match(line) {
			return r.build(line)
		}
	}
	return Node{Kind: Paragraph, Text: line}
}

func numberedNode(line string) Node {
	trimmed := strings.TrimSpace(line)
	if i := strings.Index(trimmed, ":"); i >= 0 {
		return Node{Kind: NumberedItem, Label: trimmed[:i+1], Body: trimmed[i+1:]}
	}
	return Node{Kind: NumberedItem, Label: trimmed}
}
