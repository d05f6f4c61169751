package cli

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/eartask-go/internal/domain/search"
)

// treeNode is one line of a rendered tree
type treeNode struct {
	label    string
	children []*treeNode
}

// TreeFormatter renders the search profile as an indented tree
type TreeFormatter struct {
	useColors bool
}

// NewTreeFormatter creates a new tree formatter
func NewTreeFormatter(useColors bool) *TreeFormatter {
	return &TreeFormatter{useColors: useColors}
}

// FormatProfile renders quota, output and workers of a search profile
func (f *TreeFormatter) FormatProfile(p *search.Profile) string {
	if p == nil {
		return "(no search profile)"
	}

	root := &treeNode{
		label: fmt.Sprintf("Free searches: %d left (%d/%d used today)",
			p.Remaining(), p.TodayUsedSearchNum, p.TodayFreeSearchNum),
	}

	root.children = append(root.children, &treeNode{
		label: fmt.Sprintf("Tickets: %d", p.TicketNum),
	})

	if p.OutputName != "" {
		output := fmt.Sprintf("Output: %s %s (today %s",
			p.OutputName, formatAmount(p.Output), formatAmount(p.OutputToday))
		if p.Addition > 0 {
			output += ", bonus +" + search.FormatPercent(p.Addition)
		}
		root.children = append(root.children, &treeNode{label: output + ")"})
	}

	workers := &treeNode{label: fmt.Sprintf("Workers (%d)", len(p.Workers))}
	for _, w := range p.Workers {
		workers.children = append(workers.children, &treeNode{label: f.workerLabel(w)})
	}
	root.children = append(root.children, workers)

	var builder strings.Builder
	f.formatNode(&builder, root, "", true, true)
	return builder.String()
}

func (f *TreeFormatter) workerLabel(w search.Worker) string {
	name := w.Name
	if w.Title != "" {
		name += ", " + w.Title
	}

	label := fmt.Sprintf("%s (%s)", name, w.Occupation.DisplayName())
	if bonus := w.BonusText(); bonus != "" {
		label += " " + bonus
	}

	if w.Working {
		return f.color("\033[32m") + "[working] " + f.colorReset() + label
	}
	return label
}

// formatNode recursively formats a node and its children
func (f *TreeFormatter) formatNode(builder *strings.Builder, node *treeNode, prefix string, isLast bool, isRoot bool) {
	var linePrefix string
	if isRoot {
		linePrefix = ""
	} else if isLast {
		linePrefix = prefix + "└── "
	} else {
		linePrefix = prefix + "├── "
	}

	builder.WriteString(linePrefix + node.label + "\n")

	var childPrefix string
	if isRoot {
		childPrefix = ""
	} else if isLast {
		childPrefix = prefix + "    "
	} else {
		childPrefix = prefix + "│   "
	}

	for i, child := range node.children {
		f.formatNode(builder, child, childPrefix, i == len(node.children)-1, false)
	}
}

func (f *TreeFormatter) color(code string) string {
	if !f.useColors {
		return ""
	}
	return code
}

// colorReset returns ANSI reset code
func (f *TreeFormatter) colorReset() string {
	if !f.useColors {
		return ""
	}
	return "\033[0m"
}
