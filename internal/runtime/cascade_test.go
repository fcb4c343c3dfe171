package runtime_test

import (
	"errors"
	"testing"

	"github.com/aretw0/attlookup/internal/runtime"
	"github.com/aretw0/attlookup/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestCascade_CostsAddAndStayOrdered(t *testing.T) {
	first := mustParse(t,
		"0\t1\ta\tb\t1",
		"0\t1\ta\tc\t2",
		"1",
	)
	second := mustParse(t,
		"0\t1\tb\tx\t5",
		"0\t1\tc\ty",
		"1",
	)
	stage := func(word string) runtime.Sequence {
		return runtime.NewCursor(second, word, runtime.Options{})
	}

	seq := runtime.Cascade(runtime.NewCursor(first, "a", runtime.Options{}), stage)
	got := runtime.Take(seq, 0)
	assert.Equal(t, []domain.Result{{Output: "y", Cost: 2}, {Output: "x", Cost: 6}}, got)
	assert.NoError(t, seq.Err())
}

func TestCascade_IsLazy(t *testing.T) {
	first := catAutomaton(t)
	upstream := runtime.NewCursor(first, "cat+Pl", runtime.Options{})
	calls := 0
	stage := func(word string) runtime.Sequence {
		calls++
		return runtime.NewCursor(first, word, runtime.Options{Direction: domain.Up})
	}

	seq := runtime.Cascade(upstream, stage)
	assert.Zero(t, upstream.Expansions(), "building the cascade must not search")
	assert.Zero(t, calls)

	r, ok := seq.Next()
	assert.True(t, ok)
	assert.Equal(t, "cat+Pl", r.Output)
	assert.Positive(t, upstream.Expansions())
	assert.Equal(t, 1, calls)
}

func TestCascade_DeadEndsVanish(t *testing.T) {
	first := catAutomaton(t)
	second := mustParse(t, "0\t1\tz\tz", "1")
	stage := func(word string) runtime.Sequence {
		return runtime.NewCursor(second, word, runtime.Options{})
	}
	seq := runtime.Cascade(runtime.NewCursor(first, "cat+Pl", runtime.Options{}), stage)
	assert.Empty(t, runtime.Take(seq, 0))
}

func TestAlternates(t *testing.T) {
	empty := mustParse(t, "0\t1\tq\tq", "1")
	cat := catAutomaton(t)

	seq := runtime.Alternates(
		runtime.NewCursor(empty, "cat+Pl", runtime.Options{}),
		runtime.NewCursor(cat, "cat+Pl", runtime.Options{}),
		runtime.NewCursor(cat, "cat+Pl", runtime.Options{}),
	)
	got := runtime.Take(seq, 0)
	assert.Equal(t, []string{"cats"}, outputs(got), "only the first answering sequence contributes")
}

type failingSeq struct{}

func (failingSeq) Next() (domain.Result, bool) { return domain.Result{}, false }
func (failingSeq) Err() error                  { return errors.New("boom") }

func TestAlternates_KeepsFirstError(t *testing.T) {
	seq := runtime.Alternates(failingSeq{}, failingSeq{})
	assert.Empty(t, runtime.Take(seq, 0))
	assert.EqualError(t, seq.Err(), "boom")
}
