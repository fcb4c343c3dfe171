package domain

import "sort"

// State is a node of the automaton.
// The two arc indices are kept private so every arc is guaranteed to sit in both.
type State struct {
	ID          int
	Final       bool
	FinalWeight float64

	arcs     []Arc
	byInput  map[string][]Arc
	byOutput map[string][]Arc
}

func newState(id int) *State {
	return &State{
		ID:       id,
		byInput:  make(map[string][]Arc),
		byOutput: make(map[string][]Arc),
	}
}

// Arcs returns the outgoing arcs in the order they were added.
func (s *State) Arcs() []Arc {
	out := make([]Arc, len(s.arcs))
	copy(out, s.arcs)
	return out
}

func (s *State) index(dir Direction) map[string][]Arc {
	if dir == Up {
		return s.byOutput
	}
	return s.byInput
}

// Automaton is an immutable weighted transducer graph.
// It is safe for concurrent readers; build it with a Builder.
type Automaton struct {
	states   map[int]*State
	ids      []int
	alphabet map[string]struct{}
	numArcs  int
	symbols  Symbols
}

// Start returns the initial state id, the lowest-numbered state referenced.
// ok is false for an automaton without states.
func (a *Automaton) Start() (id int, ok bool) {
	if len(a.ids) == 0 {
		return 0, false
	}
	return a.ids[0], true
}

// State returns the state with the given id.
func (a *Automaton) State(id int) (*State, bool) {
	s, ok := a.states[id]
	return s, ok
}

// States returns every state ordered by id.
func (a *Automaton) States() []*State {
	out := make([]*State, 0, len(a.ids))
	for _, id := range a.ids {
		out = append(out, a.states[id])
	}
	return out
}

// NumStates returns the number of states.
func (a *Automaton) NumStates() int { return len(a.ids) }

// NumArcs returns the number of arcs.
func (a *Automaton) NumArcs() int { return a.numArcs }

// NumFinals returns the number of accepting states.
func (a *Automaton) NumFinals() int {
	n := 0
	for _, s := range a.states {
		if s.Final {
			n++
		}
	}
	return n
}

// Symbols returns the reserved literals the automaton was read with.
func (a *Automaton) Symbols() Symbols { return a.symbols }

// InAlphabet reports whether sym labels at least one arc on either side.
func (a *Automaton) InAlphabet(sym string) bool {
	_, ok := a.alphabet[sym]
	return ok
}

// Alphabet returns the sorted alphabet, markers included, epsilon excluded.
func (a *Automaton) Alphabet() []string {
	out := make([]string, 0, len(a.alphabet))
	for sym := range a.alphabet {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}

// Arcs returns the arcs leaving state whose matched side in dir equals symbol.
// The empty symbol selects epsilon arcs. The returned slice must not be modified.
func (a *Automaton) Arcs(state int, symbol string, dir Direction) []Arc {
	s, ok := a.states[state]
	if !ok {
		return nil
	}
	return s.index(dir)[symbol]
}

// Epsilons returns the arcs leaving state that consume nothing in dir.
func (a *Automaton) Epsilons(state int, dir Direction) []Arc {
	return a.Arcs(state, "", dir)
}

// IsWeighted reports whether any arc or final state carries a non-zero weight.
func (a *Automaton) IsWeighted() bool {
	for _, s := range a.states {
		if s.Final && s.FinalWeight != 0 {
			return true
		}
		for _, arc := range s.arcs {
			if arc.Weight != 0 {
				return true
			}
		}
	}
	return false
}

// Builder accumulates arcs and final declarations into an Automaton.
type Builder struct {
	a *Automaton
}

// NewBuilder creates a builder for an automaton read with the given symbols.
func NewBuilder(symbols Symbols) *Builder {
	b := &Builder{}
	b.reset(symbols)
	return b
}

func (b *Builder) reset(symbols Symbols) {
	b.a = &Automaton{
		states:   make(map[int]*State),
		alphabet: make(map[string]struct{}),
		symbols:  symbols,
	}
}

func (b *Builder) state(id int) *State {
	s, ok := b.a.states[id]
	if !ok {
		s = newState(id)
		b.a.states[id] = s
	}
	return s
}

// AddArc records an arc in both the input and the output index of its source state.
// Both endpoints become known states.
func (b *Builder) AddArc(arc Arc) {
	src := b.state(arc.Source)
	b.state(arc.Target)

	src.arcs = append(src.arcs, arc)
	src.byInput[arc.Input] = append(src.byInput[arc.Input], arc)
	src.byOutput[arc.Output] = append(src.byOutput[arc.Output], arc)
	b.a.numArcs++

	if arc.Input != "" {
		b.a.alphabet[arc.Input] = struct{}{}
	}
	if arc.Output != "" {
		b.a.alphabet[arc.Output] = struct{}{}
	}
}

// SetFinal marks a state as accepting with the given final weight.
func (b *Builder) SetFinal(id int, weight float64) {
	s := b.state(id)
	s.Final = true
	s.FinalWeight = weight
}

// Build returns the finished automaton and leaves the builder empty.
func (b *Builder) Build() *Automaton {
	a := b.a
	a.ids = make([]int, 0, len(a.states))
	for id := range a.states {
		a.ids = append(a.ids, id)
	}
	sort.Ints(a.ids)
	b.reset(a.symbols)
	return a
}
