package cli_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/attlookup"
	"github.com/aretw0/attlookup/internal/cli"
	"github.com/aretw0/attlookup/internal/compiler"
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

func parse(t *testing.T, table string) *domain.Automaton {
	t.Helper()
	a, err := compiler.NewParser().Parse(strings.NewReader(table))
	require.NoError(t, err)
	return a
}

func run(t *testing.T, l *cli.Lookup, input string) string {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, l.Run(context.Background(), strings.NewReader(input), &out))
	return out.String()
}

func TestLookup_Analysis(t *testing.T) {
	l := cli.NewLookup([]*domain.Automaton{parse(t, catTable)}, cli.LookupOptions{})
	got := run(t, l, "cats\ncat\r\ndog\n")
	assert.Equal(t, "cats\tcat+Pl\n\ncat\tcat+Sg\n\ndog\t+?\n\n", got)
}

func TestLookup_InverseNoEchoWeights(t *testing.T) {
	l := cli.NewLookup([]*domain.Automaton{parse(t, catTable)}, cli.LookupOptions{
		Inverse: true,
		NoEcho:  true,
		Weights: true,
	})
	assert.Equal(t, "cats\t0.75\n\n+?\n\n", run(t, l, "cat+Pl\nxyz\n"))
}

func TestLookup_Separators(t *testing.T) {
	l := cli.NewLookup([]*domain.Automaton{parse(t, catTable)}, cli.LookupOptions{
		Separator:     " => ",
		WordSeparator: "--\n",
	})
	assert.Equal(t, "cats => cat+Pl\n--\n", run(t, l, "cats"))
}

func TestLookup_ChainComposes(t *testing.T) {
	upper := parse(t, "0\t1\ta\tb\t1\n1\n")
	lower := parse(t, "0\t1\tb\tc\t2\n0\t1\tb\td\t4\n1\n")
	chain := []*domain.Automaton{upper, lower}

	down := cli.NewLookup(chain, cli.LookupOptions{Inverse: true, Weights: true})
	assert.Equal(t, "a\tc\t3\na\td\t5\n\n", run(t, down, "a\n"))

	up := cli.NewLookup(chain, cli.LookupOptions{Weights: true})
	assert.Equal(t, "d\ta\t5\n\n", run(t, up, "d\n"))
}

func TestLookup_Alternates(t *testing.T) {
	lexicon := parse(t, "0\t1\tx\tX\n1\n")
	guesser := parse(t, "0\t0\t@_IDENTITY_SYMBOL_@\t@_IDENTITY_SYMBOL_@\n0\n")
	l := cli.NewLookup([]*domain.Automaton{lexicon, guesser}, cli.LookupOptions{Alternates: true, Inverse: true})

	assert.Equal(t, "x\tX\n\nq\tq\n\n", run(t, l, "x\nq\n"))
}

func TestLookup_Limit(t *testing.T) {
	a := parse(t, "0\t1\ta\tx\t3\n0\t1\ta\ty\t1\n0\t1\ta\tz\t2\n1\n")
	l := cli.NewLookup([]*domain.Automaton{a}, cli.LookupOptions{Inverse: true, NoEcho: true, Limit: 2})
	assert.Equal(t, "y\nz\n\n", run(t, l, "a\n"))
}

func TestLookup_BudgetPrintsPartialResults(t *testing.T) {
	a := parse(t, "0\t0\t@0@\t@0@\n0\n")
	l := cli.NewLookup([]*domain.Automaton{a}, cli.LookupOptions{
		Search: attlookup.SearchDefaults{MaxExpansions: 4},
		Limit:  1,
	})
	results, err := l.Apply(context.Background(), "")
	require.Len(t, results, 1)
	assert.NoError(t, err, "the limit was reached before the budget")

	l = cli.NewLookup([]*domain.Automaton{a}, cli.LookupOptions{Search: attlookup.SearchDefaults{MaxExpansions: 4}})
	_, err = l.Apply(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrExpansionLimit)
}

func TestLookup_CanceledContext(t *testing.T) {
	l := cli.NewLookup([]*domain.Automaton{parse(t, catTable)}, cli.LookupOptions{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := l.Run(ctx, strings.NewReader("cats\n"), &bytes.Buffer{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLookup_CancelStopsStuckWord(t *testing.T) {
	// The epsilon loop emits on every turn and nothing accepts "b", so only
	// cancellation ends the search.
	a := parse(t, "0\t0\t@0@\tx\n0\t1\ta\ta\n1\n")
	l := cli.NewLookup([]*domain.Automaton{a}, cli.LookupOptions{
		Inverse: true,
		Search:  attlookup.SearchDefaults{Dedup: true},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- l.Run(ctx, strings.NewReader("b\n"), io.Discard) }()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(5 * time.Second):
		t.Fatal("lookup kept searching after its context was done")
	}
}

func TestLookup_NoAutomata(t *testing.T) {
	l := cli.NewLookup(nil, cli.LookupOptions{NoEcho: true})
	assert.Equal(t, "+?\n\n", run(t, l, "a\n"))
}
