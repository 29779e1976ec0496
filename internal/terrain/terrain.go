// Package terrain loads the altitude sequence h the core operates on. This
// is the "loader" upstream collaborator spec.md §6 mentions but leaves
// unspecified; command-line parsing and tokenization are explicitly out of
// the core's scope (spec.md §1), so this package is deliberately thin.
package terrain

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Load reads a whitespace-separated sequence of integer altitudes from r and
// returns it as h. It rejects a sequence shorter than two points, matching
// spec.md §3's requirement that N >= 2.
func Load(r io.Reader) ([]int, error) {
	var h []int

	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		tok := strings.TrimSpace(scanner.Text())
		if tok == "" {
			continue
		}
		v, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("terrain: invalid altitude %q: %w", tok, err)
		}
		h = append(h, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("terrain: read failed: %w", err)
	}

	if len(h) < 2 {
		return nil, fmt.Errorf("terrain: need at least 2 altitudes, got %d", len(h))
	}
	return h, nil
}
