// Package render turns route reports into output for people and machines.
//
// # Overview
//
// Three renderers share the same inputs, a validated [route.Input] and the
// reports produced for it:
//
//   - [Text]: the terminal report, one block per route with the trail, an
//     optional glyph trail and whether the goal was reached
//   - [JSON]: a machine-readable [Document] that can be decoded back into
//     reports with [Document.RouteReports]
//   - [DOT] and [SVG]: the route tree, rooted at the initial arrangement with
//     one level per stage, rendered with Graphviz
//
// # Glyphs
//
// Symbols 1 to 4 are drawn as ▲ ✚ ● ■ (yellow, blue, green, red), the shapes
// of the physical puzzle. Larger symbols fall back to their number.
//
//	render.Text(os.Stdout, in, reports, render.TextOptions{Glyphs: true})
//
// [route.Input]: github.com/matzehuels/switchpuzzle/pkg/route.Input
package render
