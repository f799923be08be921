package sentences

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLedger_StartsEmptyWhenFileMissing(t *testing.T) {
	ledger, err := OpenFileLedger(filepath.Join(t.TempDir(), "processed.txt"))
	require.NoError(t, err)
	assert.False(t, ledger.Contains("/some/file.txt"))
}

func TestFileLedger_AddPersistsOnePathPerLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed.txt")
	ledger, err := OpenFileLedger(path)
	require.NoError(t, err)

	require.NoError(t, ledger.Add("/in/a.txt"))
	require.NoError(t, ledger.Add("/in/b.txt"))

	assert.True(t, ledger.Contains("/in/a.txt"))
	assert.True(t, ledger.Contains("/in/b.txt"))
	assert.False(t, ledger.Contains("/in/c.txt"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/in/a.txt\n/in/b.txt\n", string(data))
}

func TestFileLedger_AddIsIdempotentOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed.txt")
	ledger, err := OpenFileLedger(path)
	require.NoError(t, err)

	require.NoError(t, ledger.Add("/in/a.txt"))
	require.NoError(t, ledger.Add("/in/a.txt"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "/in/a.txt"))
}

func TestFileLedger_ReloadsExistingEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed.txt")
	require.NoError(t, os.WriteFile(path, []byte("/in/a.txt\n\n/in/b.txt\n"), 0o644))

	ledger, err := OpenFileLedger(path)
	require.NoError(t, err)
	assert.True(t, ledger.Contains("/in/a.txt"))
	assert.True(t, ledger.Contains("/in/b.txt"))
}
