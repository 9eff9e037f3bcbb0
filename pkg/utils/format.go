// Package utils holds small formatting helpers shared by the CLI and
// API layers.
package utils

import (
	"fmt"
	"math"
)

// FormatValue renders a metric value for terminal output, abbreviating
// large magnitudes ($391.04B, 15.55B shares).
func FormatValue(v float64, unit string) string {
	n := Abbreviate(v)
	if unit == "USD" {
		return "$" + n
	}
	if unit != "" {
		return n + " " + unit
	}
	return n
}

// Abbreviate shortens a number with T/B/M/K suffixes.
func Abbreviate(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1e12:
		return fmt.Sprintf("%.2fT", v/1e12)
	case abs >= 1e9:
		return fmt.Sprintf("%.2fB", v/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%.2fM", v/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%.2fK", v/1e3)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

// FormatPct renders an optional percentage, using a dash for undefined
// values.
func FormatPct(pct *float64) string {
	if pct == nil {
		return "—"
	}
	return fmt.Sprintf("%+.1f%%", *pct)
}
