package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/switchpuzzle/pkg/perm"
)

// Glyph pairs a shape with its colour.
type Glyph struct {
	Shape string
	Color lipgloss.Color
}

// Glyphs lists the shapes of symbols 1 to 4.
var Glyphs = []Glyph{
	{"▲", lipgloss.Color("220")}, // yellow
	{"✚", lipgloss.Color("75")},  // blue
	{"●", lipgloss.Color("35")},  // green
	{"■", lipgloss.Color("167")}, // red
}

// glyphs renders symbols as shapes, optionally coloured.
type glyphs struct {
	styled bool
}

// symbol renders one symbol.
func (g glyphs) symbol(s int) string {
	if s < 1 || s > len(Glyphs) {
		return strconv.Itoa(s)
	}
	gl := Glyphs[s-1]
	if !g.styled {
		return gl.Shape
	}
	return lipgloss.NewStyle().Foreground(gl.Color).Render(gl.Shape)
}

// arrangement renders every symbol of a, space separated.
func (g glyphs) arrangement(a perm.Arrangement) string {
	parts := make([]string, a.Len())
	for i := range parts {
		parts[i] = g.symbol(a.At(i + 1))
	}
	return strings.Join(parts, " ")
}

// operation renders op as the symbols it picks from initial: index k is
// drawn as the shape initially at position k.
func (g glyphs) operation(op perm.Operation, initial perm.Arrangement) string {
	idx := op.Indices()
	parts := make([]string, len(idx))
	for i, k := range idx {
		parts[i] = g.symbol(initial.At(k))
	}
	return strings.Join(parts, " ")
}

// Symbols renders a as glyphs, coloured when styled is set.
func Symbols(a perm.Arrangement, styled bool) string {
	return glyphs{styled: styled}.arrangement(a)
}
