package tui

import (
	"strconv"

	"github.com/muesli/termenv"
)

// Styles colours lookup output. The zero value prints plain text.
type Styles struct {
	colored bool
	profile termenv.Profile
}

// NewStyles detects the colour profile of stdout.
func NewStyles() Styles {
	return WithProfile(termenv.ColorProfile())
}

// Plain returns styles that never emit escape sequences.
func Plain() Styles {
	return Styles{}
}

// WithProfile returns styles for an explicit profile.
func WithProfile(p termenv.Profile) Styles {
	return Styles{colored: p != termenv.Ascii, profile: p}
}

func (s Styles) paint(text, hex string) string {
	if !s.colored {
		return text
	}
	return s.profile.String(text).Foreground(s.profile.Color(hex)).String()
}

// Input styles the echoed input word.
func (s Styles) Input(text string) string {
	return s.paint(text, "#818cf8")
}

// Output styles a transduction result.
func (s Styles) Output(text string) string {
	if !s.colored {
		return text
	}
	return s.profile.String(text).Bold().String()
}

// Cost styles a result weight.
func (s Styles) Cost(cost float64) string {
	return s.paint(strconv.FormatFloat(cost, 'f', -1, 64), "#a78bfa")
}

// Miss styles the no-result marker.
func (s Styles) Miss(text string) string {
	return s.paint(text, "#fb7185")
}

// Token styles one segment of a tokenized word.
func (s Styles) Token(text string) string {
	return s.paint(text, "#c084fc")
}
