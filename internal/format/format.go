package format

import "strings"

// ForDisplay turns raw model output into the markup the display layer
// renders: newlines become <br> and every "**" is dropped. The removal is a
// plain substring replace, not markdown parsing.
func ForDisplay(raw string) string {
	formatted := strings.ReplaceAll(raw, "\n", "<br>")
	return strings.ReplaceAll(formatted, "**", "")
}
