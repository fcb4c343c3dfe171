package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/attlookup/pkg/domain"
)

// GenerateDOT produces a Graphviz digraph of an automaton, in the same
// label conventions as GenerateMermaid.
func GenerateDOT(a *domain.Automaton, opts Options) string {
	var sb strings.Builder
	sb.WriteString("digraph fst {\n")
	sb.WriteString("    rankdir=LR;\n")
	sb.WriteString("    node [shape=circle];\n")

	start, ok := a.Start()
	if ok {
		sb.WriteString("    __start [shape=point];\n")
		sb.WriteString(fmt.Sprintf("    __start -> %d;\n", start))
	}

	states, truncated := visible(a, opts.MaxStates)
	shown := make(map[int]bool, len(states))
	for _, s := range states {
		shown[s.ID] = true
	}
	highlight := make(map[int]bool, len(opts.Highlight))
	for _, id := range opts.Highlight {
		highlight[id] = true
	}

	for _, s := range states {
		var attrs []string
		if s.Final {
			attrs = append(attrs, "shape=doublecircle")
			if s.FinalWeight != 0 {
				attrs = append(attrs, fmt.Sprintf("label=%s", dotQuote(fmt.Sprintf("%d/%s", s.ID, formatWeight(s.FinalWeight)))))
			}
		}
		if highlight[s.ID] {
			attrs = append(attrs, "style=filled", "fillcolor=\"#ffeb3b\"")
		}
		if len(attrs) > 0 {
			sb.WriteString(fmt.Sprintf("    %d [%s];\n", s.ID, strings.Join(attrs, ", ")))
		}
	}

	for _, s := range states {
		for _, arc := range s.Arcs() {
			if !shown[arc.Target] {
				continue
			}
			sb.WriteString(fmt.Sprintf("    %d -> %d [label=%s];\n", s.ID, arc.Target, dotQuote(arcLabel(arc))))
		}
	}

	if truncated > 0 {
		sb.WriteString(fmt.Sprintf("    // %d more states not shown\n", truncated))
	}
	sb.WriteString("}\n")
	return sb.String()
}

func dotQuote(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return "\"" + s + "\""
}
