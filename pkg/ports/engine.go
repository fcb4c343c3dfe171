package ports

import (
	"context"

	"github.com/aretw0/attlookup/pkg/domain"
)

// Transducer is the lookup surface adapters (HTTP, MCP) talk to.
type Transducer interface {
	// Lookup applies a word to a named automaton.
	Lookup(ctx context.Context, req domain.LookupRequest) (*domain.LookupResult, error)

	// Tokenize segments a word with the named automaton's alphabet.
	Tokenize(ctx context.Context, name, word string) ([]string, error)

	// Automaton returns the loaded automaton for introspection.
	Automaton(ctx context.Context, name string) (*domain.Automaton, error)

	// List returns the available automaton names.
	List(ctx context.Context) ([]string, error)
}
