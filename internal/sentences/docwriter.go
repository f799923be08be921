package sentences

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fumiama/go-docx"
)

// WriteDocx renders the assembled lines into a DOCX file at path.
// Styling follows the line content: word/meaning headers are bold,
// meaning-marker lines are italic, blank lines become empty paragraphs.
func WriteDocx(path string, lines []string) error {
	w := docx.New().WithDefaultTheme()

	for _, line := range lines {
		para := w.AddParagraph()
		switch {
		case strings.TrimSpace(line) == "":
			// empty paragraph
		case strings.HasPrefix(line, "Word:"):
			para.AddText(line).Bold()
		case strings.HasPrefix(line, "Meaning:") || strings.Contains(line, "| Meaning:"):
			para.AddText(line).Italic()
		default:
			para.AddText(line)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := w.WriteTo(f); err != nil {
		return err
	}
	return nil
}
