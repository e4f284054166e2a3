package format

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Percent formats a whole percentage, e.g. "80%".
func Percent(n int) string {
	return fmt.Sprintf("%d%%", n)
}

// LayerDots draws one dot per layer: filled for excavated layers.
func LayerDots(done []bool) string {
	var b strings.Builder
	for _, d := range done {
		if d {
			b.WriteString("●")
		} else {
			b.WriteString("○")
		}
	}
	return b.String()
}

// Truncate shortens s to at most width terminal cells, ending in "...".
func Truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "...")
}

// Mark returns "✓" for true and "✗" for false.
func Mark(v bool) string {
	if v {
		return "✓"
	}
	return "✗"
}
