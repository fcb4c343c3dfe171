package compiler

import (
	"bufio"
	"io"
	"strconv"

	"github.com/aretw0/attlookup/pkg/domain"
)

// Write serializes a in AT&T form: every arc grouped by source state,
// then one line per final state. Zero weights are omitted and the empty
// label is written back as the automaton's epsilon literal.
func Write(w io.Writer, a *domain.Automaton) error {
	bw := bufio.NewWriter(w)
	eps := a.Symbols().Epsilon
	label := func(s string) string {
		if s == "" {
			return eps
		}
		return s
	}

	for _, s := range a.States() {
		for _, arc := range s.Arcs() {
			bw.WriteString(strconv.Itoa(arc.Source))
			bw.WriteByte('\t')
			bw.WriteString(strconv.Itoa(arc.Target))
			bw.WriteByte('\t')
			bw.WriteString(label(arc.Input))
			bw.WriteByte('\t')
			bw.WriteString(label(arc.Output))
			if arc.Weight != 0 {
				bw.WriteByte('\t')
				bw.WriteString(formatWeight(arc.Weight))
			}
			bw.WriteByte('\n')
		}
	}
	for _, s := range a.States() {
		if !s.Final {
			continue
		}
		bw.WriteString(strconv.Itoa(s.ID))
		if s.FinalWeight != 0 {
			bw.WriteByte('\t')
			bw.WriteString(formatWeight(s.FinalWeight))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}
