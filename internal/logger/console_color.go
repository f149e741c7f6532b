package logger

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harrison/claudestream/internal/models"
)

// highCostUSD is the per-invocation cost above which cost is shown as a warning.
const highCostUSD = 1.0

// colorScheme defines consistent colors for record fields.
// A nil scheme renders plain text.
type colorScheme struct {
	success *color.Color
	fail    *color.Color
	warn    *color.Color
	label   *color.Color
	value   *color.Color
}

// newColorScheme creates the standard color scheme.
func newColorScheme() *colorScheme {
	return &colorScheme{
		success: color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		warn:    color.New(color.FgYellow),
		label:   color.New(color.FgCyan),
		value:   color.New(color.FgWhite),
	}
}

// metric formats "label=value".
func (s *colorScheme) metric(label string, value interface{}) string {
	if s == nil {
		return fmt.Sprintf("%s=%v", label, value)
	}
	return fmt.Sprintf("%s=%s", s.label.Sprint(label), s.value.Sprintf("%v", value))
}

// cost formats the USD cost, yellow when above highCostUSD.
func (s *colorScheme) cost(usd float64) string {
	text := fmt.Sprintf("$%.4f", usd)
	if s == nil {
		return "cost=" + text
	}
	if usd > highCostUSD {
		return s.label.Sprint("cost") + "=" + s.warn.Sprint(text)
	}
	return s.label.Sprint("cost") + "=" + s.value.Sprint(text)
}

func (s *colorScheme) failure(text string) string {
	if s == nil {
		return text
	}
	return s.fail.Sprint(text)
}

// typeName colours the update type: red for errors, yellow for unknown
// types, green for results.
func (s *colorScheme) typeName(t models.UpdateType) string {
	name := string(t)
	if name == "" {
		name = "<untyped>"
	}
	if s == nil {
		return name
	}
	switch {
	case t == models.UpdateError:
		return s.fail.Sprint(name)
	case !t.IsKnown():
		return s.warn.Sprint(name)
	case t == models.UpdateResult:
		return s.success.Sprint(name)
	default:
		return s.label.Sprint(name)
	}
}
