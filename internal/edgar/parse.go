package edgar

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// ErrMissingColumn reports a required column absent from a tab-separated dump.
var ErrMissingColumn = eris.New("edgar: required column missing")

// mapColumns builds a case-insensitive column name to index map.
func mapColumns(header []string) map[string]int {
	m := make(map[string]int, len(header))
	for i, col := range header {
		m[strings.ToLower(strings.TrimSpace(col))] = i
	}
	return m
}

// requireColumns verifies every named column exists in the header map.
func requireColumns(colIdx map[string]int, file string, names ...string) error {
	for _, name := range names {
		if _, ok := colIdx[name]; !ok {
			return eris.Wrapf(ErrMissingColumn, "edgar: %s column %q", file, name)
		}
	}
	return nil
}

// getCol gets a column value by name from a record, returning empty string if not found.
func getCol(record []string, colIdx map[string]int, name string) string {
	idx, ok := colIdx[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// parseIntOr parses a string as an integer, returning def if parsing fails.
func parseIntOr(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	// sub.txt writes numeric columns as floats ("2019.0") in some vintages.
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return int(v)
	}
	return def
}

// parseBool01 returns true for "1" (the detail flag encoding in sub.txt).
func parseBool01(s string) bool {
	return strings.TrimSpace(s) == "1"
}
