package graph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/attlookup/pkg/domain"
)

const epsilonLabel = "\u03b5"

// Options bounds and decorates an export.
type Options struct {
	// MaxStates stops the export after this many states (lowest ids first). Zero exports all.
	MaxStates int
	// Highlight lists states to emphasize, e.g. the states on a path of interest.
	Highlight []int
}

// GenerateMermaid produces a Mermaid flowchart of an automaton.
// Shapes:
// - Start: ((Circle))
// - Final: (((Double circle)))
// - Default: [Rectangle]
// Edge labels are "in:out" ("in" alone when both sides agree), epsilon shown as ε,
// and the weight after a slash when it is not zero.
func GenerateMermaid(a *domain.Automaton, opts Options) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	start, _ := a.Start()
	states, truncated := visible(a, opts.MaxStates)
	shown := make(map[int]bool, len(states))
	for _, s := range states {
		shown[s.ID] = true
	}

	for _, s := range states {
		opener, closer := "[", "]"
		switch {
		case s.Final:
			opener, closer = "(((", ")))"
		case s.ID == start:
			opener, closer = "((", "))"
		}

		label := strconv.Itoa(s.ID)
		if s.Final && s.FinalWeight != 0 {
			label = fmt.Sprintf("%d/%s", s.ID, formatWeight(s.FinalWeight))
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", mermaidID(s.ID), opener, label, closer))

		for _, arc := range s.Arcs() {
			if !shown[arc.Target] {
				continue
			}
			text := strings.ReplaceAll(arcLabel(arc), "\"", "'")
			sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", mermaidID(s.ID), text, mermaidID(arc.Target)))
		}
	}

	if truncated > 0 {
		sb.WriteString(fmt.Sprintf("    %%%% %d more states not shown\n", truncated))
	}

	if len(opts.Highlight) > 0 {
		sb.WriteString("\n    %% Highlight\n")
		sb.WriteString("    classDef highlight fill:#ffeb3b,stroke:#fbc02d,stroke-width:3px,color:#000;\n")
		done := make(map[int]bool)
		for _, id := range opts.Highlight {
			if shown[id] && !done[id] {
				done[id] = true
				sb.WriteString(fmt.Sprintf("    class %s highlight;\n", mermaidID(id)))
			}
		}
	}

	return sb.String()
}

func mermaidID(id int) string {
	return "s" + strconv.Itoa(id)
}

func visible(a *domain.Automaton, max int) ([]*domain.State, int) {
	states := a.States()
	if max <= 0 || len(states) <= max {
		return states, 0
	}
	return states[:max], len(states) - max
}

func arcLabel(arc domain.Arc) string {
	in, out := arc.Input, arc.Output
	if in == "" {
		in = epsilonLabel
	}
	if out == "" {
		out = epsilonLabel
	}
	label := in
	if in != out {
		label = in + ":" + out
	}
	if arc.Weight != 0 {
		label += "/" + formatWeight(arc.Weight)
	}
	return label
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'g', -1, 64)
}
