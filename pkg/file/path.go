package file

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SafeJoin resolves rel against base and rejects any result that would
// escape base. Both the returned path and base are absolute.
func SafeJoin(base, rel string) (string, error) {
	baseAbs, err := filepath.Abs(base)
	if err != nil {
		return "", err
	}

	full, err := filepath.Abs(filepath.Join(baseAbs, rel))
	if err != nil {
		return "", err
	}

	if full != baseAbs && !strings.HasPrefix(full, baseAbs+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes base directory", rel)
	}
	return full, nil
}
