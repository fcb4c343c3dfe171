/*
Package domain contains the core types of the attlookup engine.

It defines the read-only automaton graph that the format reader produces and the search
engine walks, together with the reserved symbol configuration, the result type handed back
to callers and the sentinel errors shared by every layer. The package is kept pure and free
of I/O, following the same hexagonal split as the rest of the module.

# Key Entities

  - Symbols: the reserved epsilon, identity and unknown literals for one load.
  - Arc: a weighted transition between two states.
  - State: a node of the graph with its final weight and dual arc indices.
  - Automaton: the immutable graph, built once through a Builder.
  - Result: one transduction (output and accumulated cost).
*/
package domain
