package attlookup

import (
	"context"
	"io"
	"log/slog"

	"github.com/aretw0/attlookup/internal/compiler"
	"github.com/aretw0/attlookup/internal/runtime"
	"github.com/aretw0/attlookup/pkg/domain"
	"github.com/aretw0/attlookup/pkg/tokenizer"
)

// Cursor is a lazy, cost-ordered enumeration of one word's transductions.
type Cursor = runtime.Cursor

// Sequence is any pull-based stream of results (a Cursor, a cascade, alternates).
type Sequence = runtime.Sequence

// LoadOption configures how a table is read.
type LoadOption = compiler.Option

// WithSymbols overrides the epsilon, identity, unknown and placeholder markers.
func WithSymbols(symbols domain.Symbols) LoadOption { return compiler.WithSymbols(symbols) }

// WithStrict makes three-field lines a format error instead of ignoring them.
func WithStrict(strict bool) LoadOption { return compiler.WithStrict(strict) }

// WithLoadLogger sets the logger used while reading tables.
func WithLoadLogger(logger *slog.Logger) LoadOption { return compiler.WithLogger(logger) }

// Load reads an AT&T table (plain, gzip or zstd) from path.
func Load(path string, opts ...LoadOption) (*domain.Automaton, error) {
	return compiler.NewParser(opts...).ParseFile(path)
}

// Parse reads an AT&T table from r.
func Parse(r io.Reader, opts ...LoadOption) (*domain.Automaton, error) {
	return compiler.NewParser(opts...).Parse(r)
}

// Write serializes a back to the AT&T format.
func Write(w io.Writer, a *domain.Automaton) error {
	return compiler.Write(w, a)
}

// ApplyOption configures a single apply.
type ApplyOption func(*runtime.Options)

// WithDirection selects generation (domain.Down) or analysis (domain.Up).
func WithDirection(dir domain.Direction) ApplyOption {
	return func(o *runtime.Options) {
		o.Direction = dir
	}
}

// WithTokenizer replaces the default longest-match segmentation.
func WithTokenizer(t tokenizer.Tokenizer) ApplyOption {
	return func(o *runtime.Options) {
		o.Tokenizer = t
	}
}

// WithKeepTokens keeps the emitted symbols of each result next to the joined output.
func WithKeepTokens(keep bool) ApplyOption {
	return func(o *runtime.Options) {
		o.KeepTokens = keep
	}
}

// WithMaxExpansions stops the search after n expansions. Zero, the default for
// Apply, means unbounded.
func WithMaxExpansions(n int) ApplyOption {
	return func(o *runtime.Options) {
		o.MaxExpansions = n
	}
}

// WithDedup drops search nodes identical to one already queued.
// It bounds zero-weight epsilon cycles that emit nothing. Cycles that emit
// output need WithMaxExpansions, or a cursor that is simply no longer pulled.
func WithDedup(dedup bool) ApplyOption {
	return func(o *runtime.Options) {
		o.Dedup = dedup
	}
}

// WithContext stops the search once ctx is done. The cursor's Err then
// returns ctx.Err().
func WithContext(ctx context.Context) ApplyOption {
	return func(o *runtime.Options) {
		o.Context = ctx
	}
}

func applyOptions(opts []ApplyOption) runtime.Options {
	o := runtime.Options{Dedup: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Apply starts a lazy search of word through a. Nothing is expanded until the
// cursor is pulled. Dedup is on unless disabled with WithDedup(false).
func Apply(a *domain.Automaton, word string, opts ...ApplyOption) *Cursor {
	return runtime.NewCursor(a, word, applyOptions(opts))
}

// Cascade feeds every output of automata[i] as the input word of automata[i+1].
// Costs add across stages and results stay cheapest first.
// A custom tokenizer applies to every stage.
func Cascade(word string, automata []*domain.Automaton, opts ...ApplyOption) Sequence {
	if len(automata) == 0 {
		return runtime.Alternates()
	}
	o := applyOptions(opts)
	stages := make([]runtime.Stage, 0, len(automata)-1)
	for _, a := range automata[1:] {
		stages = append(stages, func(w string) runtime.Sequence {
			return runtime.NewCursor(a, w, o)
		})
	}
	return runtime.Cascade(runtime.NewCursor(automata[0], word, o), stages...)
}

// Alternates tries each automaton in order and yields the results of the first
// one that produces any.
func Alternates(word string, automata []*domain.Automaton, opts ...ApplyOption) Sequence {
	o := applyOptions(opts)
	seqs := make([]runtime.Sequence, len(automata))
	for i, a := range automata {
		seqs[i] = runtime.NewCursor(a, word, o)
	}
	return runtime.Alternates(seqs...)
}

// Take pulls up to n results from seq. n <= 0 drains it.
func Take(seq Sequence, n int) []domain.Result {
	return runtime.Take(seq, n)
}
