package domain

// Arc is a weighted transition of the automaton.
// Labels are stored after epsilon normalization, so an epsilon side is the empty string.
type Arc struct {
	Source int     `json:"source"`
	Target int     `json:"target"`
	Input  string  `json:"input"`
	Output string  `json:"output"`
	Weight float64 `json:"weight"`
}

// Match returns the label that is compared against the input token when applying in dir.
func (a Arc) Match(dir Direction) string {
	if dir == Up {
		return a.Output
	}
	return a.Input
}

// Emit returns the label that is written to the output when applying in dir.
func (a Arc) Emit(dir Direction) string {
	if dir == Up {
		return a.Input
	}
	return a.Output
}

// IsEpsilon reports whether the arc consumes nothing in dir.
func (a Arc) IsEpsilon(dir Direction) bool {
	return a.Match(dir) == ""
}
