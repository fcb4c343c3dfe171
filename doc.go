/*
Package attlookup loads weighted finite-state transducers written in the AT&T
tabular format and enumerates their transductions of an input word, cheapest
first.

# Concept

An automaton is read once into an immutable graph indexed by both input and
output label, so the same table serves generation (Down: input side to output
side) and analysis (Up: the reverse). Applying a word tokenizes it by longest
match against the automaton alphabet and starts a lazy uniform-cost search.
Results are produced on demand; a caller that wants only the best analysis pays
only for the part of the search needed to find it.

# Key Features

  - Lazy, cost-ordered results with a deterministic tie-break.
  - Identity and unknown markers for input outside the alphabet.
  - Plain, gzip and zstd framed tables.
  - Cascades (the output of one automaton feeds the next) and alternates.
  - An Engine facade with pluggable loaders, result caches and lifecycle hooks,
    served over HTTP, MCP and a flookup-style command line.

# Usage

	a, err := attlookup.Load("cat.att")
	if err != nil {
		log.Fatal(err)
	}
	for r := range attlookup.Apply(a, "cats", attlookup.WithDirection(domain.Up)).Results() {
		fmt.Println(r.Output, r.Cost)
	}

For named automata behind a loader and cache, use the Engine:

	eng, err := attlookup.New("./automata", attlookup.WithCache(memory.NewCache()))
	if err != nil {
		log.Fatal(err)
	}
	res, err := eng.Lookup(ctx, domain.LookupRequest{Automaton: "es", Word: "casas", Direction: domain.Up})
*/
package attlookup
