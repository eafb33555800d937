package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("int x;\n"), 0o644))
}

func TestScanFiltersByExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.c"))
	writeFile(t, filepath.Join(dir, "main.h"))
	writeFile(t, filepath.Join(dir, "notes.txt"))
	writeFile(t, filepath.Join(dir, "sub", "util.c"))

	files, err := New(dir, ".c", ".h").Scan()
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "main.c"),
		filepath.Join(dir, "main.h"),
		filepath.Join(dir, "sub", "util.c"),
	}, files)
}

func TestScanWithoutExtensionsTakesEverything(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.c"))
	writeFile(t, filepath.Join(dir, "b.txt"))

	files, err := New(dir).Scan()
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestScanMissingRoot(t *testing.T) {
	t.Parallel()

	_, err := New(filepath.Join(t.TempDir(), "nope")).Scan()
	assert.Error(t, err)
}
