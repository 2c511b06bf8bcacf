// Package filex holds the file primitives behind the record stores:
// directory setup, line reads and crash-safe whole-file rewrites.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureSubdDir creates dirName under the current working directory if it is
// missing and returns its absolute path.
func EnsureSubdDir(dirName string) (string, error) {
	if filepath.IsAbs(dirName) {
		return EnsureDir(dirName)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}
	return EnsureDir(filepath.Join(cwd, dirName))
}

// EnsureDir creates dir (and parents) with 0770 permissions.
func EnsureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return dir, nil
}

// ReadLines returns the file split on '\n'. A trailing newline does not
// produce an empty last line. A '\r' before the newline stays in the line so
// rewrites copy unparsed lines verbatim. Errors from os.ReadFile are returned
// unwrapped so callers can test for fs.ErrNotExist.
func ReadLines(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, nil
	}
	return strings.Split(strings.TrimSuffix(string(b), "\n"), "\n"), nil
}

// JoinLines renders lines with a newline after each one. Lines that already
// end in '\r' keep their CRLF ending.
func JoinLines(lines []string) []byte {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}
