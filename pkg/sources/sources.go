// Package sources loads the source URL list consumed by the engine.
package sources

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/lepinkainen/config-forge/pkg/urlutils"
)

// Entry is one source URL from the input list, in input order.
type Entry struct {
	URL   string
	Index int // position in the input list, used for deterministic tie-breaks
}

// LoadURLList reads a plain-text file with one source URL per line.
// Blank lines and lines starting with '#' are ignored. Lines that do not
// parse as absolute URLs are rejected. An empty result is an error: the
// caller treats it as fatal.
func LoadURLList(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source list %s: %w", path, err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !urlutils.IsValidURL(line) {
			return nil, fmt.Errorf("invalid source URL on line %d: %q", lineNo, line)
		}

		entries = append(entries, Entry{URL: line, Index: len(entries)})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read source list %s: %w", path, err)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("no usable URLs in source list %s", path)
	}

	return entries, nil
}
