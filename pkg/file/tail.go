package file

import (
	"os"
	"strings"
)

// TailLines returns up to the last maxLines lines of the file at path.
// A missing file yields empty text, not an error.
func TailLines(path string, maxLines int) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}

	text := string(data)
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if maxLines <= 0 || len(lines) <= maxLines {
		return text, nil
	}
	return strings.Join(lines[len(lines)-maxLines:], "\n"), nil
}
