// Package output renders feed pages, listings, stats and the top-centers
// chart in table, YAML or JSON form.
package output

import (
	"fmt"
	"strings"
)

// Format represents the output format type.
type Format string

const (
	// FormatTable is the default human-readable terminal output.
	FormatTable Format = "table"

	// FormatYAML is YAML output for scripted use.
	FormatYAML Format = "yaml"

	// FormatJSON is JSON output for scripted use.
	FormatJSON Format = "json"
)

// ParseFormat parses a format string into a Format value.
// Accepts: "table", "yaml", "json" (case-insensitive).
// Returns an error for invalid format values.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "table", "":
		return FormatTable, nil
	case "yaml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("invalid format: %q (expected table, yaml, or json)", s)
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}
