package testhelper

import (
	"regexp"
	"strings"
	"testing"
)

var leadingSpace = regexp.MustCompile(`^[ \t]*`)

// Dedent removes the first line break and the indentation shared by all
// non-blank lines, so test inputs can be written as indented raw strings.
func Dedent(t *testing.T, src string) string {
	t.Helper()

	lines := strings.Split(strings.TrimPrefix(src, "\n"), "\n")

	indent := ""
	found := false

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		prefix := leadingSpace.FindString(line)
		if !found || len(prefix) < len(indent) {
			indent = prefix
			found = true
		}
	}

	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, indent)
	}

	return strings.TrimRight(strings.Join(lines, "\n"), " \t")
}
