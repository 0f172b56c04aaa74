package util

import (
	"errors"
	"strings"
)

// ErrInvalidFileName is returned for names that are empty or try to escape their directory.
var ErrInvalidFileName = errors.New("invalid file name")

// CleanFileName flattens path separators and rejects traversal patterns.
func CleanFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalidFileName
	}
	s := strings.TrimSpace(name)
	s = strings.NewReplacer("/", "_", "\\", "_").Replace(s)
	if s == "" {
		return "", ErrInvalidFileName
	}
	return s, nil
}
