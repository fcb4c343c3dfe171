package compiler_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/attlookup/internal/compiler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite_RoundTrip(t *testing.T) {
	a, err := compiler.NewParser().Parse(strings.NewReader(catTable))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, compiler.Write(&buf, a))
	assert.Equal(t, catTable, buf.String())

	b, err := compiler.NewParser().Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, a.NumStates(), b.NumStates())
	assert.Equal(t, a.NumArcs(), b.NumArcs())
	assert.Equal(t, a.Alphabet(), b.Alphabet())
	for _, s := range a.States() {
		other, ok := b.State(s.ID)
		require.True(t, ok)
		assert.Equal(t, s.Arcs(), other.Arcs())
		assert.Equal(t, s.Final, other.Final)
		assert.Equal(t, s.FinalWeight, other.FinalWeight)
	}
}

func TestWrite_Compressed(t *testing.T) {
	a, err := compiler.NewParser().Parse(strings.NewReader(catTable))
	require.NoError(t, err)

	for _, name := range []string{"none", "gzip", "zstd"} {
		t.Run(name, func(t *testing.T) {
			c, err := compiler.ParseCompression(name)
			require.NoError(t, err)

			var buf bytes.Buffer
			zw, err := compiler.Compress(&buf, c)
			require.NoError(t, err)
			require.NoError(t, compiler.Write(zw, a))
			require.NoError(t, zw.Close())

			plain, got := compiler.Decompress(buf.Bytes())
			assert.Equal(t, c, got)
			assert.Equal(t, catTable, string(plain))
		})
	}

	_, err = compiler.ParseCompression("lz4")
	assert.Error(t, err)
}
