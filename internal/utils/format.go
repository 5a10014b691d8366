// Package utils contains general helper functions shared across the ptc tool.
package utils

import (
	"fmt"
	"strings"
	"time"
)

const timestampLayout = "2006-01-02 15:04"

// FormatFileSize converts a byte length into a human-readable lower-case unit string.
func FormatFileSize(byteCount int64) string {
	if byteCount < 0 {
		return "0b"
	}
	unitSuffixes := []string{"b", "kb", "mb", "gb", "tb", "pb"}
	value := float64(byteCount)
	unitIndex := 0
	for value >= 1024 && unitIndex < len(unitSuffixes)-1 {
		value /= 1024
		unitIndex++
	}
	if unitIndex == 0 {
		return fmt.Sprintf("%db", byteCount)
	}
	if value < 10 {
		formattedValue := strings.TrimSuffix(fmt.Sprintf("%.1f", value), ".0")
		return formattedValue + unitSuffixes[unitIndex]
	}
	return fmt.Sprintf("%.0f%s", value, unitSuffixes[unitIndex])
}

// FormatTimestamp renders the provided time in the local time zone with minute precision.
// The zero time renders as an empty string.
func FormatTimestamp(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.In(time.Local).Format(timestampLayout)
}
