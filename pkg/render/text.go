package render

import (
	"bufio"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/switchpuzzle/pkg/route"
)

// TextOptions configures [Text].
type TextOptions struct {
	// Glyphs adds the shape form of arrangements and operations.
	Glyphs bool

	// OnlyReached skips routes that miss the goal.
	OnlyReached bool

	// Style colours glyphs and verdicts with ANSI escapes.
	Style bool
}

const (
	verdictReached = "✓ reached"
	verdictMissed  = "✗ missed"
)

var (
	styleReached = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	styleMissed  = lipgloss.NewStyle().Foreground(lipgloss.Color("167"))
	styleTrail   = lipgloss.NewStyle().Bold(true)
)

// Text writes the terminal report:
//
//	Initial: 1234 (▲ ✚ ● ■)   Goal: 2314 (✚ ● ▲ ■)
//
//	Route: 2134 (1) -> 1324 (1)
//	  ✚ ▲ ● ■ -> ▲ ● ✚ ■
//	  => 2314 ✓ reached
//
// The glyph line and the parenthesised shapes are written only with
// opts.Glyphs.
func Text(w io.Writer, in route.Input, reports []route.Report, opts TextOptions) error {
	bw := bufio.NewWriter(w)
	g := glyphs{styled: opts.Style}

	if opts.Glyphs {
		fmt.Fprintf(bw, "Initial: %s (%s)   Goal: %s (%s)\n\n",
			in.Initial, g.arrangement(in.Initial), in.Goal, g.arrangement(in.Goal))
	} else {
		fmt.Fprintf(bw, "Initial: %s   Goal: %s\n\n", in.Initial, in.Goal)
	}

	for _, r := range reports {
		if opts.OnlyReached && !r.Reached {
			continue
		}
		trail := r.Trail()
		if opts.Style {
			trail = styleTrail.Render(trail)
		}
		fmt.Fprintf(bw, "Route: %s\n", trail)

		if opts.Glyphs {
			for i, op := range r.Ops {
				if i > 0 {
					bw.WriteString(route.TrailSeparator)
				} else {
					bw.WriteString("  ")
				}
				bw.WriteString(g.operation(op, in.Initial))
			}
			bw.WriteString("\n")
		}

		fmt.Fprintf(bw, "  => %s %s\n\n", r.Result, verdict(r.Reached, opts.Style))
	}
	return bw.Flush()
}

func verdict(reached, styled bool) string {
	switch {
	case reached && styled:
		return styleReached.Render(verdictReached)
	case reached:
		return verdictReached
	case styled:
		return styleMissed.Render(verdictMissed)
	}
	return verdictMissed
}

// SummaryLine formats a summary as "3 of 12 routes reach the goal".
func SummaryLine(s route.Summary) string {
	line := fmt.Sprintf("%d of %d routes reach the goal", s.Reached, s.Emitted)
	if s.Partial {
		line += fmt.Sprintf(" (stopped after %d of %d)", s.Emitted, s.Total)
	}
	return line
}
