package domain

import (
	"fmt"
	"strings"
)

// Direction selects which side of the transducer is matched against the input.
type Direction int

const (
	// Down matches input labels and emits output labels (generation).
	Down Direction = iota
	// Up matches output labels and emits input labels (analysis).
	Up
)

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

// Inverse returns the opposite direction.
func (d Direction) Inverse() Direction {
	if d == Up {
		return Down
	}
	return Up
}

// ParseDirection accepts "down"/"up" (case-insensitive) and the short forms "d"/"u".
// An empty string yields Down.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "down", "d", "generate":
		return Down, nil
	case "up", "u", "analyze", "analyse":
		return Up, nil
	}
	return Down, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(b []byte) error {
	parsed, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
