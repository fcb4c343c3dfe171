package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/aretw0/attlookup/internal/compiler"
	"github.com/aretw0/attlookup/pkg/domain"
)

// Loader implements ports.AutomatonLoader over in-memory AT&T tables.
// Tables are parsed on first use and kept afterwards.
type Loader struct {
	mu       sync.Mutex
	tables   map[string]string
	automata map[string]*domain.Automaton
	parser   *compiler.Parser
}

// NewLoader creates a loader from raw AT&T tables keyed by name.
func NewLoader(tables map[string]string, opts ...compiler.Option) *Loader {
	copied := make(map[string]string, len(tables))
	for k, v := range tables {
		copied[k] = v
	}
	return &Loader{
		tables:   copied,
		automata: make(map[string]*domain.Automaton),
		parser:   compiler.NewParser(opts...),
	}
}

// NewFromAutomata creates a loader serving already built automata.
// This improves DX for tests and for the single-file CLI mode.
func NewFromAutomata(automata map[string]*domain.Automaton) *Loader {
	l := NewLoader(nil)
	for name, a := range automata {
		l.automata[name] = a
	}
	return l
}

// Load parses (once) and returns the named automaton.
func (l *Loader) Load(ctx context.Context, name string) (*domain.Automaton, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if a, ok := l.automata[name]; ok {
		return a, nil
	}
	table, ok := l.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAutomatonNotFound, name)
	}
	a, err := l.parser.Parse(strings.NewReader(table))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	l.automata[name] = a
	return a, nil
}

// List returns all available automaton names.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	seen := make(map[string]struct{}, len(l.tables)+len(l.automata))
	for k := range l.tables {
		seen[k] = struct{}{}
	}
	for k := range l.automata {
		seen[k] = struct{}{}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}
