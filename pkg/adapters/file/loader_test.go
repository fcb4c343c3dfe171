package file_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aretw0/attlookup/pkg/adapters/file"
	"github.com/aretw0/attlookup/pkg/domain"
	contract "github.com/aretw0/attlookup/pkg/ports/tests"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catTable = "0\t1\tc\tc\n1\t2\ta\ta\n2\t3\tt\tt\n3\n"

func writeDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cat.att"), []byte(catTable), 0o644))

	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	_, err := zw.Write([]byte("0\t1\ta\tb\n1\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ab.att.gz"), gz.Bytes(), 0o644))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("not a table"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.att"), 0o755))
	return dir
}

func TestFileLoader_Contract(t *testing.T) {
	loader := file.NewLoader(writeDir(t))
	contract.LoaderContractTest(t, loader, map[string]int{"cat": 3, "ab": 1})
}

func TestFileLoader_RejectsPathEscapes(t *testing.T) {
	loader := file.NewLoader(writeDir(t))
	for _, name := range []string{"../cat", "sub/cat", ".hidden", ""} {
		_, err := loader.Load(context.Background(), name)
		assert.ErrorIs(t, err, domain.ErrAutomatonNotFound, name)
	}
}

func TestFileLoader_FormatError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.att"), []byte("0\t1\ta\tb\tx\n"), 0o644))

	_, err := file.NewLoader(dir).Load(context.Background(), "bad")
	var fe *domain.FormatError
	assert.ErrorAs(t, err, &fe)
}

func TestFileLoader_ConcurrentLoadsShareResult(t *testing.T) {
	loader := file.NewLoader(writeDir(t))

	var wg sync.WaitGroup
	got := make([]*domain.Automaton, 8)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, err := loader.Load(context.Background(), "cat")
			assert.NoError(t, err)
			got[i] = a
		}(i)
	}
	wg.Wait()

	first, err := loader.Load(context.Background(), "cat")
	require.NoError(t, err)
	for _, a := range got {
		assert.Same(t, first, a)
	}
}

func TestTrimExtension(t *testing.T) {
	name, ok := file.TrimExtension("es.att.gz")
	assert.True(t, ok)
	assert.Equal(t, "es", name)

	_, ok = file.TrimExtension(".att")
	assert.False(t, ok)
	_, ok = file.TrimExtension("notes.txt")
	assert.False(t, ok)
}
