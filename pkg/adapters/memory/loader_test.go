package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/attlookup/pkg/adapters/memory"
	"github.com/aretw0/attlookup/pkg/domain"
	contract "github.com/aretw0/attlookup/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryLoader_Contract(t *testing.T) {
	loader := memory.NewLoader(map[string]string{
		"cat":  "0\t1\tc\tc\n1\t2\ta\ta\n2\t3\tt\tt\n3\n",
		"copy": "0\t0\t@_IDENTITY_SYMBOL_@\t@_IDENTITY_SYMBOL_@\n0\n",
	})

	contract.LoaderContractTest(t, loader, map[string]int{"cat": 3, "copy": 1})
}

func TestInMemoryLoader_FromAutomata(t *testing.T) {
	b := domain.NewBuilder(domain.DefaultSymbols())
	b.AddArc(domain.Arc{Source: 0, Target: 1, Input: "a", Output: "b"})
	loader := memory.NewFromAutomata(map[string]*domain.Automaton{"ab": b.Build()})

	contract.LoaderContractTest(t, loader, map[string]int{"ab": 1})
}

func TestInMemoryLoader_BadTable(t *testing.T) {
	loader := memory.NewLoader(map[string]string{"bad": "0\tx\ta\tb\n"})

	_, err := loader.Load(context.Background(), "bad")
	var fe *domain.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 1, fe.Line)
}
