package domain

// Reserved symbol literals written by the foma toolchain with "write att".
const (
	DefaultEpsilon     = "@0@"
	DefaultIdentity    = "@_IDENTITY_SYMBOL_@"
	DefaultUnknown     = "@_UNKNOWN_SYMBOL_@"
	DefaultPlaceholder = "?"
)

// Symbols holds the reserved literals used while reading an automaton.
// Epsilon is normalized to the empty string on load, Identity and Unknown
// are kept verbatim as arc labels and resolved during apply.
type Symbols struct {
	Epsilon  string `yaml:"epsilon" json:"epsilon" mapstructure:"epsilon"`
	Identity string `yaml:"identity" json:"identity" mapstructure:"identity"`
	Unknown  string `yaml:"unknown" json:"unknown" mapstructure:"unknown"`

	// Placeholder is emitted in place of the unknown marker on the output side.
	Placeholder string `yaml:"placeholder" json:"placeholder" mapstructure:"placeholder"`
}

// DefaultSymbols returns the literals foma uses when writing AT&T files.
func DefaultSymbols() Symbols {
	return Symbols{
		Epsilon:     DefaultEpsilon,
		Identity:    DefaultIdentity,
		Unknown:     DefaultUnknown,
		Placeholder: DefaultPlaceholder,
	}
}

// WithDefaults fills every empty field with its default literal.
func (s Symbols) WithDefaults() Symbols {
	d := DefaultSymbols()
	if s.Epsilon == "" {
		s.Epsilon = d.Epsilon
	}
	if s.Identity == "" {
		s.Identity = d.Identity
	}
	if s.Unknown == "" {
		s.Unknown = d.Unknown
	}
	if s.Placeholder == "" {
		s.Placeholder = d.Placeholder
	}
	return s
}
