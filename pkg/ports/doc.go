/*
Package ports defines the driven ports (interfaces) for the attlookup engine.

These interfaces decouple the lookup core from where automata come from and where
results are memoized, so the same engine runs from a directory of tables, an in-memory
fixture set, or behind a shared Redis cache.

# Key Interfaces

  - AutomatonLoader: resolves an automaton by name (file directory, memory).
  - ResultCache: stores finished lookup results by key (memory, Redis).
  - Transducer: the lookup surface consumed by the HTTP and MCP adapters.
*/
package ports
