package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/attlookup/internal/compiler"
	"github.com/aretw0/attlookup/internal/presentation/graph"
	"github.com/aretw0/attlookup/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catTable = "0\t1\tc\tc\n" +
	"1\t2\ta\ta\n" +
	"2\t3\tt\tt\n" +
	"3\t4\t+Sg\t@0@\n" +
	"3\t5\t+Pl\ts\t0.5\n" +
	"4\n" +
	"5\t0.25\n"

func catAutomaton(t *testing.T) *domain.Automaton {
	t.Helper()
	a, err := compiler.NewParser().Parse(strings.NewReader(catTable))
	require.NoError(t, err)
	return a
}

func TestGenerateMermaid(t *testing.T) {
	out := graph.GenerateMermaid(catAutomaton(t), graph.Options{})

	assert.True(t, strings.HasPrefix(out, "graph LR\n"))
	for _, want := range []string{
		`s0(("0"))`,
		`s1["1"]`,
		`s4((("4")))`,
		`s5((("5/0.25")))`,
		`s0 -- "c" --> s1`,
		"s3 -- \"+Sg:ε\" --> s4",
		`s3 -- "+Pl:s/0.5" --> s5`,
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "classDef")
}

func TestGenerateMermaid_Options(t *testing.T) {
	out := graph.GenerateMermaid(catAutomaton(t), graph.Options{MaxStates: 3, Highlight: []int{1, 1, 5}})

	assert.Contains(t, out, `s1 -- "a" --> s2`)
	assert.NotContains(t, out, "s2 -- \"t\" --> s3", "arcs into hidden states are dropped")
	assert.Contains(t, out, "%% 3 more states not shown")
	assert.Equal(t, 1, strings.Count(out, "class s1 highlight;"))
	assert.NotContains(t, out, "class s5", "hidden states are not highlighted")
}

func TestGenerateMermaid_QuotesInLabels(t *testing.T) {
	a, err := compiler.NewParser().Parse(strings.NewReader("0\t1\t\"\t\"\n1\n"))
	require.NoError(t, err)
	assert.Contains(t, graph.GenerateMermaid(a, graph.Options{}), `s0 -- "'" --> s1`)
}

func TestGenerateDOT(t *testing.T) {
	out := graph.GenerateDOT(catAutomaton(t), graph.Options{Highlight: []int{3}})

	assert.True(t, strings.HasPrefix(out, "digraph fst {\n"))
	assert.True(t, strings.HasSuffix(out, "}\n"))
	for _, want := range []string{
		"__start -> 0;",
		"4 [shape=doublecircle];",
		`5 [shape=doublecircle, label="5/0.25"];`,
		`3 [style=filled, fillcolor="#ffeb3b"];`,
		`0 -> 1 [label="c"];`,
		`3 -> 5 [label="+Pl:s/0.5"];`,
	} {
		assert.Contains(t, out, want)
	}
}

func TestGenerateDOT_EscapesQuotes(t *testing.T) {
	a, err := compiler.NewParser().Parse(strings.NewReader("0\t1\t\"\ta\n1\n"))
	require.NoError(t, err)
	assert.Contains(t, graph.GenerateDOT(a, graph.Options{}), `0 -> 1 [label="\":a"];`)
}

func TestGenerate_EmptyAutomaton(t *testing.T) {
	a, err := compiler.NewParser().Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, "graph LR\n", graph.GenerateMermaid(a, graph.Options{}))
	assert.Equal(t, "digraph fst {\n    rankdir=LR;\n    node [shape=circle];\n}\n", graph.GenerateDOT(a, graph.Options{}))
}
