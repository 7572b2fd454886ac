// Package output builds termenv outputs with the colour rules shared by the
// logger and the text report.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// Palette of the CLI.
var (
	Slate  = termenv.RGBColor("#667085")
	Green  = termenv.RGBColor("#22A06B")
	Red    = termenv.RGBColor("#D93025")
	Yellow = termenv.RGBColor("#F59E0B")
	Iris   = termenv.RGBColor("#8B5CF6")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
	Circle  = "○"
)

// ColorProfile returns the colour profile of the environment.
// NO_COLOR forces plain output.
func ColorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// New creates a termenv.Output for w, defaulting to stderr.
func New(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	opts = append(opts,
		termenv.WithProfile(ColorProfile()),
		termenv.WithTTY(true),
	)

	return termenv.NewOutput(w, opts...)
}
