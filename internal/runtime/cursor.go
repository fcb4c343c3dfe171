package runtime

import (
	"container/heap"
	"context"
	"iter"
	"strings"

	"github.com/aretw0/attlookup/pkg/domain"
	"github.com/aretw0/attlookup/pkg/tokenizer"
)

// Options controls a single apply.
type Options struct {
	// Direction selects generation (Down) or analysis (Up).
	Direction domain.Direction

	// Tokenizer segments the word. Nil means longest match over the automaton alphabet.
	Tokenizer tokenizer.Tokenizer

	// KeepTokens fills Result.Tokens in addition to the joined Output.
	KeepTokens bool

	// MaxExpansions bounds the number of frontier pops. Zero means unbounded.
	MaxExpansions int

	// Dedup skips pushing a node equal in state, position, cost, finality and
	// output to one pushed earlier. It makes a zero-weight epsilon cycle finite
	// only when the cycle emits nothing: a cycle that emits output produces a new
	// output on every turn and needs MaxExpansions or Context to stop.
	Dedup bool

	// Context, when set, stops the search once it is done. Err then returns
	// the context's error.
	Context context.Context
}

// Sequence is a pull-based stream of results.
type Sequence interface {
	// Next returns the next result, or false once the stream is exhausted.
	Next() (domain.Result, bool)
	// Err reports why the stream stopped early, if it did.
	Err() error
}

// Cursor is a lazy uniform-cost search over one automaton for one input.
// Results come out in non-decreasing cost order as long as weights are non-negative.
// A Cursor is not safe for concurrent use; the automaton it reads is.
type Cursor struct {
	a      *domain.Automaton
	dir    domain.Direction
	tokens []string
	known  []bool

	symbols    domain.Symbols
	keepTokens bool

	frontier frontier
	outs     *outputs
	seen     map[nodeKey]struct{}
	seq      uint64
	ctx      context.Context

	expansions int
	limit      int
	err        error
}

// NewCursor tokenizes word and seeds a cursor at the automaton's start state.
func NewCursor(a *domain.Automaton, word string, opts Options) *Cursor {
	tok := opts.Tokenizer
	if tok == nil {
		tok = tokenizer.FromAutomaton(a)
	}
	return NewCursorTokens(a, tok.Tokenize(word), opts)
}

// NewCursorTokens seeds a cursor for an already tokenized input.
func NewCursorTokens(a *domain.Automaton, tokens []string, opts Options) *Cursor {
	c := &Cursor{
		a:          a,
		dir:        opts.Direction,
		tokens:     tokens,
		known:      make([]bool, len(tokens)),
		symbols:    a.Symbols(),
		keepTokens: opts.KeepTokens,
		limit:      opts.MaxExpansions,
		outs:       newOutputs(),
		ctx:        opts.Context,
	}
	for i, t := range tokens {
		c.known[i] = a.InAlphabet(t)
	}
	if opts.Dedup {
		c.seen = make(map[nodeKey]struct{})
	}
	if start, ok := a.Start(); ok {
		c.push(&node{state: start, output: emptyOutput})
	}
	return c
}

func (c *Cursor) push(n *node) {
	if c.seen != nil {
		k := keyOf(n)
		if _, dup := c.seen[k]; dup {
			return
		}
		c.seen[k] = struct{}{}
	}
	n.seq = c.seq
	c.seq++
	heap.Push(&c.frontier, n)
}

// Tokens returns the segmented input the cursor is matching.
func (c *Cursor) Tokens() []string { return c.tokens }

// Pending returns the number of nodes waiting in the frontier.
func (c *Cursor) Pending() int { return len(c.frontier) }

// Expansions returns the number of nodes popped so far.
func (c *Cursor) Expansions() int { return c.expansions }

// Done reports whether the search can produce nothing more.
func (c *Cursor) Done() bool { return len(c.frontier) == 0 }

// Err returns domain.ErrExpansionLimit if the budget stopped the search, or the
// context's error if Options.Context was done.
func (c *Cursor) Err() error { return c.err }

// Step pops the cheapest node and expands it once.
// It returns a result only when the popped node already had its final weight folded in.
func (c *Cursor) Step() (domain.Result, bool) {
	if c.Done() {
		return domain.Result{}, false
	}
	if c.limit > 0 && c.expansions >= c.limit {
		c.stop(domain.ErrExpansionLimit)
		return domain.Result{}, false
	}
	if c.ctx != nil {
		if err := c.ctx.Err(); err != nil {
			c.stop(err)
			return domain.Result{}, false
		}
	}

	n := heap.Pop(&c.frontier).(*node)
	c.expansions++

	if n.final {
		return c.result(n), true
	}

	if n.consumed == len(c.tokens) {
		c.expandEpsilons(n)
		// Re-queued instead of returned so a cheaper pending path still wins.
		if s, ok := c.a.State(n.state); ok && s.Final {
			c.push(&node{
				cost:     n.cost + s.FinalWeight,
				consumed: n.consumed,
				output:   n.output,
				state:    n.state,
				final:    true,
			})
		}
		return domain.Result{}, false
	}

	tok := c.tokens[n.consumed]
	keys := []string{tok}
	if !c.known[n.consumed] {
		keys = []string{c.symbols.Unknown, c.symbols.Identity}
	}
	for _, key := range keys {
		for _, arc := range c.a.Arcs(n.state, key, c.dir) {
			out := arc.Emit(c.dir)
			switch out {
			case c.symbols.Identity:
				out = tok
			case c.symbols.Unknown:
				out = c.symbols.Placeholder
			}
			c.push(&node{
				cost:     n.cost + arc.Weight,
				consumed: n.consumed + 1,
				output:   c.outs.extend(n.output, out),
				state:    arc.Target,
			})
		}
	}
	c.expandEpsilons(n)
	return domain.Result{}, false
}

func (c *Cursor) expandEpsilons(n *node) {
	for _, arc := range c.a.Epsilons(n.state, c.dir) {
		c.push(&node{
			cost:     n.cost + arc.Weight,
			consumed: n.consumed,
			output:   c.outs.extend(n.output, arc.Emit(c.dir)),
			state:    arc.Target,
		})
	}
}

func (c *Cursor) stop(err error) {
	c.err = err
	c.frontier = nil
	c.seen = nil
}

func (c *Cursor) result(n *node) domain.Result {
	syms := c.outs.symbols(n.output)
	r := domain.Result{
		Output: strings.Join(syms, ""),
		Cost:   n.cost,
	}
	if c.keepTokens {
		r.Tokens = syms
	}
	return r
}

// Next steps until a result is produced or the search is exhausted.
func (c *Cursor) Next() (domain.Result, bool) {
	for !c.Done() {
		if r, ok := c.Step(); ok {
			return r, true
		}
	}
	return domain.Result{}, false
}

// Results exposes the cursor as a range-over-func iterator.
// Check Err after the loop to tell exhaustion from a budget stop.
func (c *Cursor) Results() iter.Seq[domain.Result] {
	return Collect(c)
}

// Take pulls at most n results; n <= 0 pulls everything.
func (c *Cursor) Take(n int) []domain.Result {
	return Take(c, n)
}

// Collect adapts any Sequence to an iterator.
func Collect(s Sequence) iter.Seq[domain.Result] {
	return func(yield func(domain.Result) bool) {
		for {
			r, ok := s.Next()
			if !ok || !yield(r) {
				return
			}
		}
	}
}

// Take pulls at most n results from s; n <= 0 pulls everything.
func Take(s Sequence, n int) []domain.Result {
	var out []domain.Result
	for n <= 0 || len(out) < n {
		r, ok := s.Next()
		if !ok {
			break
		}
		out = append(out, r)
	}
	return out
}
