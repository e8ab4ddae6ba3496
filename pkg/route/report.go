package route

import (
	"fmt"
	"strings"

	"github.com/matzehuels/switchpuzzle/pkg/perm"
)

// TrailSeparator joins the per-stage choices of a trail.
const TrailSeparator = " -> "

// Choice records which operation a route picked from one stage.
type Choice struct {
	Label    string // operation label
	Position int    // 1-based position within the stage menu
}

// String formats the choice as "<label> (<position>)".
func (c Choice) String() string {
	return fmt.Sprintf("%s (%d)", c.Label, c.Position)
}

// Report is the outcome of evaluating one route.
type Report struct {
	// Index is the 0-based position of the route in enumeration order.
	Index int

	// Choices holds one entry per stage, in stage order.
	Choices []Choice

	// Ops are the chosen operations, in stage order.
	Ops []perm.Operation

	// Steps holds the arrangement after each stage. The last step is Result.
	Steps []perm.Arrangement

	// Result is the arrangement after every chosen operation was applied.
	Result perm.Arrangement

	// Reached reports whether Result equals the goal position by position.
	Reached bool
}

// Trail renders the choices as "2134 (1) -> 1324 (1)".
func (r Report) Trail() string {
	parts := make([]string, len(r.Choices))
	for i, c := range r.Choices {
		parts[i] = c.String()
	}
	return strings.Join(parts, TrailSeparator)
}

// Summary counts the reports of one evaluation.
type Summary struct {
	Total   int  `json:"total"`   // routes in the full product
	Emitted int  `json:"emitted"` // reports actually produced
	Reached int  `json:"reached"` // reports whose Result equals the goal
	Partial bool `json:"partial"` // emission stopped before Total
}

// Summarize counts reached reports. total is the size of the full product,
// normally Count(in.Stages).
func Summarize(reports []Report, total int) Summary {
	s := Summary{Total: total, Emitted: len(reports)}
	for _, r := range reports {
		if r.Reached {
			s.Reached++
		}
	}
	s.Partial = s.Emitted < s.Total
	return s
}

// StageName returns the i-th (0-based) stage's name, or its default.
func (in Input) StageName(i int) string {
	return stageName(in.Stages[i], i)
}
