package ports

import (
	"context"

	"github.com/aretw0/attlookup/pkg/domain"
)

// AutomatonLoader defines how the engine retrieves automata by name.
type AutomatonLoader interface {
	// Load returns the automaton registered under name.
	// It returns domain.ErrAutomatonNotFound if there is none.
	Load(ctx context.Context, name string) (*domain.Automaton, error)

	// List returns the names of every available automaton, sorted.
	List(ctx context.Context) ([]string, error)
}
