package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/switchpuzzle/pkg/render"
	"github.com/matzehuels/switchpuzzle/pkg/route"
)

// Render generates output artifacts in the requested formats.
//
// With opts.OnlyReached, reports that miss the goal are left out of every
// artifact; the summary still counts them.
func Render(ctx context.Context, in route.Input, reports []route.Report, summary route.Summary, opts Options) (map[string][]byte, error) {
	if opts.OnlyReached {
		reports = Reached(reports)
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var buf bytes.Buffer
		var err error

		switch format {
		case FormatText:
			err = render.Text(&buf, in, reports, render.TextOptions{Glyphs: opts.Glyphs, Style: opts.Style})
		case FormatJSON:
			err = render.JSON(&buf, in, reports, summary)
		case FormatDOT:
			var dot string
			if dot, err = render.DOT(in, reports); err == nil {
				buf.WriteString(dot)
			}
		case FormatSVG:
			var svg []byte
			if svg, err = render.SVG(ctx, in, reports); err == nil {
				buf.Write(svg)
			}
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = buf.Bytes()
	}

	return artifacts, nil
}

// Reached returns the reports that reach the goal, in order.
func Reached(reports []route.Report) []route.Report {
	out := make([]route.Report, 0, len(reports))
	for _, r := range reports {
		if r.Reached {
			out = append(out, r)
		}
	}
	return out
}
