package library

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rameshbaboov/french-vocabs/internal/sentences"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestList_WalksRecursivelyAndSortsByPath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "french_B1_b.txt"), "un\ndeux\n")
	writeFile(t, filepath.Join(dir, "french_A1_a.txt"), "chat\n")
	writeFile(t, filepath.Join(dir, "nested", "french_A2_c.txt"), "chien\n")
	writeFile(t, filepath.Join(dir, "ignore.docx"), "not text")

	lister := NewLister()
	files, err := lister.List(dir, ".txt")
	require.NoError(t, err)

	require.Len(t, files, 3)
	assert.Equal(t, "french_A1_a.txt", files[0].RelPath)
	assert.Equal(t, "french_B1_b.txt", files[1].RelPath)
	assert.Equal(t, "nested/french_A2_c.txt", files[2].RelPath)
	assert.Equal(t, "french_A2_c.txt", files[2].Name)
	assert.Equal(t, int64(1), files[0].SizeKB)
	assert.False(t, files[0].ModTime.IsZero())
}

func TestList_MissingDirectoryYieldsEmptyList(t *testing.T) {
	lister := NewLister()
	files, err := lister.List(filepath.Join(t.TempDir(), "nope"), ".txt")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestList_CachesUntilInvalidated(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "chat\n")

	lister := NewLister(WithCacheTTL(time.Hour))
	files, err := lister.List(dir, ".txt")
	require.NoError(t, err)
	require.Len(t, files, 1)

	writeFile(t, filepath.Join(dir, "b.txt"), "chien\n")

	files, err = lister.List(dir, ".txt")
	require.NoError(t, err)
	assert.Len(t, files, 1, "cached listing should not see the new file yet")

	lister.Invalidate()
	files, err = lister.List(dir, ".txt")
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestPreviewText_ReturnsContent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "french_A1.txt"), "chat\nchien\n")

	got, err := PreviewText(dir, "french_A1.txt")
	require.NoError(t, err)
	assert.Equal(t, "chat\nchien\n", got)
}

func TestPreviewText_RejectsPathEscape(t *testing.T) {
	dir := t.TempDir()

	_, err := PreviewText(dir, "../outside.txt")
	require.Error(t, err)
}

func TestPreviewDocx_ExtractsParagraphs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words", "words_part001.docx")
	lines := []string{
		"Word: chat | Meaning: cat",
		"",
		"1. Le chat dort.",
		"2. J'aime mon chat.",
	}
	require.NoError(t, sentences.WriteDocx(path, lines))

	got, err := PreviewDocx(dir, "words/words_part001.docx")
	require.NoError(t, err)
	assert.Equal(t, "Word: chat | Meaning: cat\n1. Le chat dort.\n2. J'aime mon chat.", got)
}
