package domain

// Result is one transduction produced by the apply engine.
type Result struct {
	// Output is the concatenation of Tokens.
	Output string `json:"output"`
	// Tokens holds the emitted symbols, one per traversed arc that produced output.
	Tokens []string `json:"tokens,omitempty"`
	// Cost is the sum of arc weights along the path plus the final weight.
	Cost float64 `json:"cost"`
}
