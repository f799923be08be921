package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeJoin_StaysInsideBase(t *testing.T) {
	base := t.TempDir()

	got, err := SafeJoin(base, "sub/name.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "sub", "name.txt"), got)
}

func TestSafeJoin_RejectsEscape(t *testing.T) {
	base := t.TempDir()

	_, err := SafeJoin(base, "../outside.txt")
	assert.Error(t, err)

	_, err = SafeJoin(base, "sub/../../outside.txt")
	assert.Error(t, err)
}

func TestSafeJoin_AllowsBaseItself(t *testing.T) {
	base := t.TempDir()

	got, err := SafeJoin(base, ".")
	require.NoError(t, err)
	assert.Equal(t, base, got)
}

func TestTailLines_MissingFileIsEmpty(t *testing.T) {
	got, err := TailLines(filepath.Join(t.TempDir(), "nope.log"), 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTailLines_ShortFileReturnedVerbatim(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.log")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\n"), 0o644))

	got, err := TailLines(path, 10)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", got)
}

func TestTailLines_ReturnsLastN(t *testing.T) {
	path := filepath.Join(t.TempDir(), "long.log")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\nc\nd\ne\n"), 0o644))

	got, err := TailLines(path, 2)
	require.NoError(t, err)
	assert.Equal(t, "d\ne", got)
}
