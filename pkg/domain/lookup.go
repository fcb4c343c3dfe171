package domain

// LookupRequest names an automaton and the word to apply to it.
type LookupRequest struct {
	Automaton  string    `json:"automaton"`
	Word       string    `json:"word"`
	Direction  Direction `json:"direction"`
	Limit      int       `json:"limit,omitempty"`
	KeepTokens bool      `json:"tokens,omitempty"`
}

// LookupResult carries the results of one lookup, cheapest first.
type LookupResult struct {
	Results    []Result `json:"results"`
	Truncated  bool     `json:"truncated,omitempty"`
	Cached     bool     `json:"cached,omitempty"`
	Expansions int      `json:"expansions"`
}
