package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"supplierboard/internal"
)

// How many leading rows are scanned for the header. Real exports often
// carry a title block above the column titles, but never a deep one.
const headerScanRows = 5

const headerMarker = "vendor"

var ErrHeaderNotFound = errors.New("header row not found")

// LocateHeader returns the index of the first row within the scan
// window in which any cell contains "Vendor", case-insensitively.
// There is no fallback guess: misattributing numeric columns is worse
// than refusing the file.
func LocateHeader(grid internal.RawGrid) (int, error) {
	limit := len(grid)
	if limit > headerScanRows {
		limit = headerScanRows
	}

	for i := 0; i < limit; i++ {
		for _, cell := range grid[i] {
			if strings.Contains(strings.ToLower(cell), headerMarker) {
				return i, nil
			}
		}
	}

	return -1, fmt.Errorf("no cell containing %q in the first %d rows: %w", "Vendor", limit, ErrHeaderNotFound)
}
