package domain

import (
	"errors"
	"fmt"
)

// ErrAutomatonNotFound is returned when a loader has no automaton under the requested name.
var ErrAutomatonNotFound = errors.New("automaton not found")

// ErrCacheMiss is returned by a ResultCache when no entry exists for a key.
var ErrCacheMiss = errors.New("cache miss")

// ErrExpansionLimit is reported by a cursor that stopped because its expansion budget ran out.
// Results produced before the limit are still valid and cost-ordered.
var ErrExpansionLimit = errors.New("expansion limit reached")

// ErrInvalidDirection is returned when a direction name cannot be parsed.
var ErrInvalidDirection = errors.New("invalid direction")

// FormatError reports a line of an AT&T table that could not be read.
// A load that hits a FormatError produces no automaton at all.
type FormatError struct {
	Line   int    // 1-based line number
	Text   string // Raw line content
	Reason string // Human-readable reason
	Err    error  // Underlying parse error, if any
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d: %s: %v (%q)", e.Line, e.Reason, e.Err, e.Text)
	}
	return fmt.Sprintf("line %d: %s (%q)", e.Line, e.Reason, e.Text)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
