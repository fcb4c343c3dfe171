package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/aretw0/attlookup"
	"github.com/aretw0/attlookup/internal/presentation/tui"
	"github.com/aretw0/attlookup/internal/runtime"
	"github.com/aretw0/attlookup/pkg/domain"
	"github.com/aretw0/attlookup/pkg/tokenizer"
)

// NoResult is printed for a word without any transduction.
const NoResult = "+?"

// LookupOptions mirrors the flags of the lookup command.
type LookupOptions struct {
	// Inverse applies down (generation) instead of up (analysis).
	Inverse bool
	// Alternates tries the automata in order and stops at the first that answers.
	// Without it the automata are chained, each output feeding the next.
	Alternates bool
	// NoEcho omits the input word before each result.
	NoEcho bool
	// Separator goes between the echoed input and the result (default tab).
	Separator string
	// WordSeparator is written after the results of each input word (default newline).
	WordSeparator string
	// Unbuffered flushes after every input word.
	Unbuffered bool
	// Limit caps the results per word. Zero prints all of them.
	Limit int
	// Weights appends the cost of each result.
	Weights bool
	// Search is the termination policy for every cursor.
	Search attlookup.SearchDefaults
	// Styles colours the output. The zero value prints plain text.
	Styles tui.Styles
}

// Lookup applies words read line by line to one or more automata.
type Lookup struct {
	automata   []*domain.Automaton
	tokenizers []tokenizer.Tokenizer
	opts       LookupOptions
	dir        domain.Direction
}

// NewLookup prepares a lookup over automata, in the order they were given.
// Chained analysis (up) runs the last automaton first, as composition demands.
func NewLookup(automata []*domain.Automaton, opts LookupOptions) *Lookup {
	if opts.Separator == "" {
		opts.Separator = "\t"
	}
	if opts.WordSeparator == "" {
		opts.WordSeparator = "\n"
	}
	l := &Lookup{opts: opts, dir: domain.Up}
	if opts.Inverse {
		l.dir = domain.Down
	}

	l.automata = slices.Clone(automata)
	if l.dir == domain.Up && !opts.Alternates {
		slices.Reverse(l.automata)
	}
	for _, a := range l.automata {
		l.tokenizers = append(l.tokenizers, tokenizer.FromAutomaton(a))
	}
	return l
}

func (l *Lookup) cursor(ctx context.Context, i int, word string) runtime.Sequence {
	return runtime.NewCursor(l.automata[i], word, runtime.Options{
		Direction:     l.dir,
		Tokenizer:     l.tokenizers[i],
		MaxExpansions: l.opts.Search.MaxExpansions,
		Dedup:         l.opts.Search.Dedup,
		Context:       ctx,
	})
}

// Sequence builds the lazy result stream for one word. Its searches stop
// once ctx is done.
func (l *Lookup) Sequence(ctx context.Context, word string) runtime.Sequence {
	if len(l.automata) == 0 {
		return runtime.Alternates()
	}
	if l.opts.Alternates {
		seqs := make([]runtime.Sequence, len(l.automata))
		for i := range l.automata {
			seqs[i] = l.cursor(ctx, i, word)
		}
		return runtime.Alternates(seqs...)
	}
	stages := make([]runtime.Stage, 0, len(l.automata)-1)
	for i := 1; i < len(l.automata); i++ {
		stages = append(stages, func(w string) runtime.Sequence {
			return l.cursor(ctx, i, w)
		})
	}
	return runtime.Cascade(l.cursor(ctx, 0, word), stages...)
}

// Apply returns the results for one word and the error that stopped its search early, if any.
func (l *Lookup) Apply(ctx context.Context, word string) ([]domain.Result, error) {
	seq := l.Sequence(ctx, word)
	results := runtime.Take(seq, l.opts.Limit)
	return results, seq.Err()
}

// Run reads words from in until EOF or ctx is done and writes results to out.
// A word whose search hit the expansion budget still prints what was found.
func (l *Lookup) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	w := bufio.NewWriter(out)
	defer w.Flush()

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		word := strings.TrimSuffix(scanner.Text(), "\r")
		results, _ := l.Apply(ctx, word)
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := l.print(w, word, results); err != nil {
			return err
		}
		if l.opts.Unbuffered {
			if err := w.Flush(); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return w.Flush()
}

func (l *Lookup) print(w io.Writer, word string, results []domain.Result) error {
	s := l.opts.Styles
	prefix := ""
	if !l.opts.NoEcho {
		prefix = s.Input(word) + l.opts.Separator
	}

	if len(results) == 0 {
		if _, err := fmt.Fprintf(w, "%s%s\n", prefix, s.Miss(NoResult)); err != nil {
			return err
		}
	}
	for _, r := range results {
		line := prefix + s.Output(r.Output)
		if l.opts.Weights {
			line += l.opts.Separator + s.Cost(r.Cost)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, l.opts.WordSeparator)
	return err
}
