package library

import (
	"fmt"
	"os"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/rameshbaboov/french-vocabs/pkg/file"
)

const maxPreviewParagraphs = 80

// Resolve joins rel onto baseDir, refusing paths that escape it.
func Resolve(baseDir, rel string) (string, error) {
	return file.SafeJoin(baseDir, rel)
}

// PreviewText returns the raw content of a text file under baseDir.
func PreviewText(baseDir, rel string) (string, error) {
	path, err := Resolve(baseDir, rel)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// PreviewDocx extracts the first non-blank paragraphs of a DOCX file
// under baseDir as plain text, one paragraph per line.
func PreviewDocx(baseDir, rel string) (string, error) {
	path, err := Resolve(baseDir, rel)
	if err != nil {
		return "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}
	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return "", fmt.Errorf("parse docx %s: %w", rel, err)
	}

	lines := make([]string, 0, maxPreviewParagraphs)
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := strings.TrimSpace(para.String())
		if text == "" {
			continue
		}
		lines = append(lines, text)
		if len(lines) >= maxPreviewParagraphs {
			break
		}
	}
	return strings.Join(lines, "\n"), nil
}
