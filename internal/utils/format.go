package utils

import (
	"strconv"
	"time"
)

// FormatFixed renders a float with a fixed number of decimals, matching the
// precision contract of the exported design tables.
func FormatFixed(value float64, decimals int) string {
	if decimals < 0 {
		decimals = 4
	}
	return strconv.FormatFloat(value, 'f', decimals, 64)
}

// RunID derives a sortable run identifier from a timestamp.
func RunID(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}
