package logger

import (
	"fmt"
	"strings"
)

// PercentBar renders a percentage as a fixed-width ASCII bar.
type PercentBar struct {
	width       int
	enableColor bool
}

// NewPercentBar creates a bar of the given width. Widths below 1 fall back to 10.
func NewPercentBar(width int, enableColor bool) *PercentBar {
	if width < 1 {
		width = 10
	}
	return &PercentBar{width: width, enableColor: enableColor}
}

// clampPercent limits pct to 0..100.
func clampPercent(pct int) int {
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// Render generates the bar, e.g. "[=====     ] 50%".
// Out-of-range percentages are clamped for drawing; the label keeps the raw value.
func (pb *PercentBar) Render(pct int) string {
	clamped := clampPercent(pct)
	filled := (clamped * pb.width) / 100

	bar := "[" + strings.Repeat("=", filled) + strings.Repeat(" ", pb.width-filled) + "]"
	result := fmt.Sprintf("%s %d%%", bar, pct)

	if pb.enableColor && clamped < 100 {
		result = fmt.Sprintf("\033[36m%s\033[0m", result) // Cyan for in-progress
	} else if pb.enableColor {
		result = fmt.Sprintf("\033[32m%s\033[0m", result) // Green for complete
	}

	return result
}
