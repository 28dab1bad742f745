package sobi

import (
	"fmt"
	"time"
)

// fileNameLayout is the required SOBI file naming contract,
// e.g. SOBI.D130323.T065432.TXT.
const fileNameLayout = "SOBI.D060102.T150405.TXT"

// ParseFileDate extracts the effective timestamp encoded in a SOBI file
// name. The name must match the contract exactly; files with unparsable
// names are skipped by the pipeline.
func ParseFileDate(name string) (time.Time, error) {
	t, err := time.Parse(fileNameLayout, name)
	if err != nil {
		return time.Time{}, fmt.Errorf("file name %q does not match %s: %w", name, fileNameLayout, err)
	}
	return t, nil
}
