package render

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	perrors "github.com/matzehuels/switchpuzzle/pkg/errors"
	"github.com/matzehuels/switchpuzzle/pkg/route"
)

// MaxTreeRoutes bounds the number of reports DOT will draw.
const MaxTreeRoutes = 4096

// DOT returns the route tree as a Graphviz digraph.
//
// The root is the initial arrangement. Each stage adds one level; a node is
// the arrangement after the choices on its path and an edge is labelled with
// the operation taken. Nodes are keyed by menu slot, so two slots holding the
// same remapping under different labels get separate branches. Routes sharing a prefix share the nodes of that
// prefix. Leaves are green when they reach the goal and grey otherwise.
func DOT(in route.Input, reports []route.Report) (string, error) {
	if len(reports) > MaxTreeRoutes {
		return "", perrors.New(perrors.ErrCodeUnsupported,
			"route tree limited to %d routes, have %d (use --limit or --only-reached)", MaxTreeRoutes, len(reports))
	}

	var buf bytes.Buffer
	buf.WriteString("digraph Routes {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=14, shape=box, style=\"filled,rounded\", fillcolor=white];\n")
	buf.WriteString("  edge [fontname=\"SF Mono, Menlo, monospace\", fontsize=11];\n")
	fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n\n", "goal "+in.Goal.String())

	fmt.Fprintf(&buf, "  n [label=%q, shape=ellipse];\n", in.Initial.String())

	seen := make(map[string]bool)
	for _, r := range reports {
		slots := in.Slots(r.Index)
		parent := "n"
		for s, c := range r.Choices {
			id := parent + "_" + strconv.Itoa(slots[s]+1)
			if !seen[id] {
				seen[id] = true
				attrs := []string{fmt.Sprintf("label=%q", r.Steps[s].String())}
				if s == len(r.Choices)-1 {
					if r.Reached {
						attrs = append(attrs, "fillcolor=\"#9be39b\"", "penwidth=2")
					} else {
						attrs = append(attrs, "fillcolor=lightgrey", "fontcolor=\"#555555\"")
					}
				}
				fmt.Fprintf(&buf, "  %s [%s];\n", id, strings.Join(attrs, ", "))
				fmt.Fprintf(&buf, "  %s -> %s [label=%q];\n", parent, id, c.String())
			}
			parent = id
		}
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

// SVG renders the route tree with Graphviz.
func SVG(ctx context.Context, in route.Input, reports []route.Report) ([]byte, error) {
	dot, err := DOT(in, reports)
	if err != nil {
		return nil, err
	}
	return RenderSVG(ctx, dot)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
