package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/attlookup/pkg/domain"
)

// Summary describes an automaton as markdown for the inspect command.
// At most maxSymbols alphabet entries are listed (all when maxSymbols <= 0).
func Summary(name string, a *domain.Automaton, maxSymbols int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", name)

	start, ok := a.Start()
	startText := "none"
	if ok {
		startText = fmt.Sprintf("%d", start)
	}

	sb.WriteString("| Property | Value |\n|---|---|\n")
	fmt.Fprintf(&sb, "| States | %d |\n", a.NumStates())
	fmt.Fprintf(&sb, "| Arcs | %d |\n", a.NumArcs())
	fmt.Fprintf(&sb, "| Final states | %d |\n", a.NumFinals())
	fmt.Fprintf(&sb, "| Start state | %s |\n", startText)
	fmt.Fprintf(&sb, "| Weighted | %t |\n", a.IsWeighted())

	alphabet := a.Alphabet()
	fmt.Fprintf(&sb, "| Alphabet size | %d |\n\n", len(alphabet))

	sym := a.Symbols()
	sb.WriteString("## Markers\n\n")
	fmt.Fprintf(&sb, "- epsilon: `%s`\n", sym.Epsilon)
	fmt.Fprintf(&sb, "- identity: `%s`\n", sym.Identity)
	fmt.Fprintf(&sb, "- unknown: `%s`\n", sym.Unknown)
	fmt.Fprintf(&sb, "- placeholder: `%s`\n\n", sym.Placeholder)

	sb.WriteString("## Alphabet\n\n")
	shown := alphabet
	if maxSymbols > 0 && len(shown) > maxSymbols {
		shown = shown[:maxSymbols]
	}
	quoted := make([]string, len(shown))
	for i, s := range shown {
		quoted[i] = "`" + s + "`"
	}
	sb.WriteString(strings.Join(quoted, " "))
	if len(shown) < len(alphabet) {
		fmt.Fprintf(&sb, " ... (%d more)", len(alphabet)-len(shown))
	}
	sb.WriteString("\n")
	return sb.String()
}
