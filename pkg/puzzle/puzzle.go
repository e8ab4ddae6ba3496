// Package puzzle reads and writes puzzle definitions: an initial arrangement,
// a goal arrangement and an ordered list of stages, each with its menu of
// candidate operations.
//
// Puzzles are authored as TOML, HCL or JSON files:
//
//	initial = "1234"
//	goal    = "2314"
//
//	[[stage]]
//	name  = "Path 1"
//	count = 1
//	ops   = ["2134"]
//
//	[[stage]]
//	name  = "Path 2"
//	count = 2
//	ops   = ["1324", "1234"]
//
// [Puzzle.Build] turns a definition into a validated [route.Input].
package puzzle

import (
	"strings"

	perrors "github.com/matzehuels/switchpuzzle/pkg/errors"
	"github.com/matzehuels/switchpuzzle/pkg/perm"
	"github.com/matzehuels/switchpuzzle/pkg/route"
)

// Wildcard expands to every operation of the puzzle's arity.
const Wildcard = "*"

// MaxWildcardArity bounds the arity for which Wildcard may be used
// (8! = 40320 operations per stage).
const MaxWildcardArity = 8

// Puzzle is an authored puzzle definition. Fields hold raw text; nothing is
// validated until Build.
type Puzzle struct {
	Initial string     `toml:"initial" json:"initial"`
	Goal    string     `toml:"goal" json:"goal"`
	Stages  []StageDef `toml:"stage" json:"stages"`
}

// StageDef is one authored stage.
type StageDef struct {
	// Name is optional; Build assigns "Path <n>" when empty.
	Name string `toml:"name,omitempty" json:"name,omitempty"`

	// Count is the number of operations the author declared. When positive,
	// it must equal the number of non-blank entries in Ops.
	Count int `toml:"count,omitempty" json:"count,omitempty"`

	// Ops lists operations in digit or comma form. Blank entries are ignored.
	Ops []string `toml:"ops" json:"ops"`
}

// Build parses and validates the puzzle.
//
// Errors carry the code of the first violation found: INVALID_ARRANGEMENT,
// INVALID_OPERATION, EMPTY_STAGE_LIST, EMPTY_STAGE_MENU, STAGE_COUNT_MISMATCH
// or INVALID_PUZZLE.
func (p *Puzzle) Build() (route.Input, error) {
	initial, err := perm.ParseArrangement(p.Initial)
	if err != nil {
		return route.Input{}, perrors.Wrap(perrors.ErrCodeInvalidArrangement, err, "initial")
	}
	goal, err := perm.ParseArrangement(p.Goal)
	if err != nil {
		return route.Input{}, perrors.Wrap(perrors.ErrCodeInvalidArrangement, err, "goal")
	}

	in := route.Input{
		Initial: initial,
		Goal:    goal,
		Stages:  make([]route.Stage, 0, len(p.Stages)),
	}
	n := initial.Len()
	for i, def := range p.Stages {
		stage, err := def.build(i, n)
		if err != nil {
			return route.Input{}, err
		}
		in.Stages = append(in.Stages, stage)
	}

	if err := route.Validate(in); err != nil {
		return route.Input{}, err
	}
	return in, nil
}

func (def StageDef) build(i, arity int) (route.Stage, error) {
	if err := perrors.ValidateStageName(def.Name); err != nil {
		return route.Stage{}, perrors.Wrap(perrors.ErrCodeInvalidPuzzle, err, "stage %d", i+1)
	}
	name := def.Name
	if name == "" {
		name = route.DefaultStageName(i)
	}

	entries := make([]string, 0, len(def.Ops))
	for _, raw := range def.Ops {
		if s := strings.TrimSpace(raw); s != "" {
			entries = append(entries, s)
		}
	}
	if def.Count > 0 && def.Count != len(entries) {
		return route.Stage{}, perrors.New(perrors.ErrCodeStageCountMismatch,
			"stage %d (%s) declares %d operations but lists %d", i+1, name, def.Count, len(entries))
	}
	if def.Count < 0 {
		return route.Stage{}, perrors.New(perrors.ErrCodeInvalidPuzzle, "stage %d (%s) has negative count %d", i+1, name, def.Count)
	}

	ops := make([]perm.Operation, 0, len(entries))
	for j, s := range entries {
		if s == Wildcard {
			if arity > MaxWildcardArity {
				return route.Stage{}, perrors.New(perrors.ErrCodeInvalidPuzzle,
					"stage %d (%s): wildcard needs arity <= %d, have %d", i+1, name, MaxWildcardArity, arity)
			}
			ops = append(ops, perm.All(arity)...)
			continue
		}
		op, err := perm.ParseOperation(s)
		if err != nil {
			return route.Stage{}, perrors.Wrap(perrors.ErrCodeInvalidOperation, err, "stage %d (%s) operation %d", i+1, name, j+1)
		}
		ops = append(ops, op)
	}
	return route.NewStage(name, ops...), nil
}

// Template returns a starter puzzle of the given arity with the given number
// of stages. Each stage offers the identity operation; the goal is the
// reversed initial arrangement.
func Template(arity, stages int) *Puzzle {
	arity = max(arity, 1)
	stages = max(stages, 1)

	id := perm.Identity(arity)
	rev := id.Indices()
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	goal, _ := perm.NewArrangement(rev)

	p := &Puzzle{
		Initial: id.String(),
		Goal:    goal.String(),
		Stages:  make([]StageDef, stages),
	}
	for i := range p.Stages {
		p.Stages[i] = StageDef{
			Name:  route.DefaultStageName(i),
			Count: 1,
			Ops:   []string{id.String()},
		}
	}
	return p
}

// FromInput converts a validated input back into a definition. Operations
// keep their labels and counts are filled in.
func FromInput(in route.Input) *Puzzle {
	p := &Puzzle{
		Initial: in.Initial.String(),
		Goal:    in.Goal.String(),
		Stages:  make([]StageDef, len(in.Stages)),
	}
	for i, s := range in.Stages {
		def := StageDef{Name: s.Name, Count: len(s.Ops), Ops: make([]string, len(s.Ops))}
		for j, op := range s.Ops {
			def.Ops[j] = op.Label()
		}
		p.Stages[i] = def
	}
	return p
}
