package compiler

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/aretw0/attlookup/pkg/domain"
)

// Kind tags the shape of one line of an AT&T table.
type Kind int

const (
	// KindIgnored covers blank lines and lines with exactly three fields.
	KindIgnored Kind = iota
	// KindTransition is "source target input output [weight]".
	KindTransition
	// KindFinal is "state [finalweight]".
	KindFinal
	// KindMalformed is a line that must abort the load.
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindTransition:
		return "transition"
	case KindFinal:
		return "final"
	case KindMalformed:
		return "malformed"
	default:
		return "ignored"
	}
}

var errNonFiniteWeight = errors.New("weight is not a finite number")

// Line is the classified form of one table line.
// Arc labels are raw: epsilon normalization happens in the Parser.
type Line struct {
	Kind Kind

	Arc domain.Arc // KindTransition

	State       int     // KindFinal
	FinalWeight float64 // KindFinal

	Reason string // KindMalformed
	Err    error  // KindMalformed
}

// Classify tags a single line (without its line terminator) by field count.
// In strict mode a three-field line is malformed instead of ignored.
func Classify(text string, strict bool) Line {
	if strings.TrimSpace(text) == "" {
		return Line{Kind: KindIgnored}
	}

	fields := strings.Split(text, "\t")
	switch n := len(fields); {
	case n >= 4:
		return classifyTransition(fields)
	case n <= 2:
		return classifyFinal(fields)
	case strict:
		return malformed("wrong field count", nil)
	default:
		return Line{Kind: KindIgnored}
	}
}

func classifyTransition(fields []string) Line {
	src, err := parseID(fields[0])
	if err != nil {
		return malformed("invalid source state", err)
	}
	dst, err := parseID(fields[1])
	if err != nil {
		return malformed("invalid target state", err)
	}

	var weight float64
	if len(fields) > 4 {
		if weight, err = parseWeight(fields[4]); err != nil {
			return malformed("invalid arc weight", err)
		}
	}

	return Line{
		Kind: KindTransition,
		Arc: domain.Arc{
			Source: src,
			Target: dst,
			Input:  fields[2],
			Output: fields[3],
			Weight: weight,
		},
	}
}

func classifyFinal(fields []string) Line {
	id, err := parseID(fields[0])
	if err != nil {
		return malformed("invalid final state", err)
	}

	var weight float64
	if len(fields) > 1 {
		if weight, err = parseWeight(fields[1]); err != nil {
			return malformed("invalid final weight", err)
		}
	}

	return Line{Kind: KindFinal, State: id, FinalWeight: weight}
}

func malformed(reason string, err error) Line {
	return Line{Kind: KindMalformed, Reason: reason, Err: err}
}

func parseID(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

func parseWeight(s string) (float64, error) {
	w, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return 0, errNonFiniteWeight
	}
	return w, nil
}
