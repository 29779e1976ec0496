// Package emit is the downstream collaborator of spec.md §6: given the
// visibility vector R and its length N, it renders the observer (index 0)
// as "_" and every other point as "v" (visible) or "u" (not visible). The
// wire format is this module's choice, not a spec requirement — CSV is the
// idiomatic default for this shape of output in Go.
package emit

import (
	"encoding/csv"
	"fmt"
	"io"
)

// CSV writes R as a single comma-separated line of "_"/"v"/"u" tokens.
func CSV(w io.Writer, r []bool) error {
	if len(r) == 0 {
		return fmt.Errorf("emit: R must be non-empty")
	}

	record := make([]string, len(r))
	record[0] = "_"
	for i := 1; i < len(r); i++ {
		if r[i] {
			record[i] = "v"
		} else {
			record[i] = "u"
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(record); err != nil {
		return fmt.Errorf("emit: write failed: %w", err)
	}
	cw.Flush()
	return cw.Error()
}
