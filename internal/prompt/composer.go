// Package prompt renders the weather snapshot into the text prompt sent to
// the generation service. The style-instruction block is editorial content,
// kept as a separate asset rather than mixed into code.
package prompt

import (
	_ "embed"
	"fmt"
	"strings"

	"fogcast/internal/weather"
)

//go:embed style.txt
var defaultStyle string

// Composer renders snapshots into prompts with a fixed style-instruction
// block appended.
type Composer struct {
	style string
}

// NewComposer returns a Composer using the embedded style instructions.
func NewComposer() *Composer {
	return &Composer{style: defaultStyle}
}

// NewComposerWithStyle returns a Composer using the given style block
// instead of the embedded one.
func NewComposerWithStyle(style string) *Composer {
	return &Composer{style: style}
}

// Compose renders the forecast periods, the current local time, and the
// style block into a single prompt. The rendering is deterministic: the
// same snapshot and time always produce the same prompt.
func (c *Composer) Compose(snap weather.Snapshot, localTime string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Below is the weather forecast for %s, %s: \n", snap.Location.Name, snap.Location.State)
	for _, p := range snap.Forecast {
		fmt.Fprintf(&b, "\n - %s: %s", p.Name, p.DetailedForecast)
	}
	fmt.Fprintf(&b, "\n\nCurrent local time: %s", localTime)
	b.WriteString("\n\n")
	b.WriteString(c.style)

	return b.String()
}
