package route

import (
	"math"
	"slices"
	"strconv"

	perrors "github.com/matzehuels/switchpuzzle/pkg/errors"
	"github.com/matzehuels/switchpuzzle/pkg/perm"
)

// Stage is an ordered menu of candidate operations. Exactly one of them is
// chosen for every route.
type Stage struct {
	Name string
	Ops  []perm.Operation
}

// NewStage returns a stage holding a copy of ops.
func NewStage(name string, ops ...perm.Operation) Stage {
	return Stage{Name: name, Ops: slices.Clone(ops)}
}

// Len returns the menu size.
func (s Stage) Len() int { return len(s.Ops) }

// Position returns the 1-based index of the first operation in the menu
// equal to op, or 0 if the menu does not contain it. Duplicates resolve to
// the lowest index.
func (s Stage) Position(op perm.Operation) int {
	for i, o := range s.Ops {
		if o.Equal(op) {
			return i + 1
		}
	}
	return 0
}

// positions maps every menu slot to its reported position in one pass over
// the menu.
func (s Stage) positions() []int {
	first := make(map[string]int, len(s.Ops))
	pos := make([]int, len(s.Ops))
	for i, op := range s.Ops {
		key := op.String()
		p, ok := first[key]
		if !ok {
			p = i + 1
			first[key] = p
		}
		pos[i] = p
	}
	return pos
}

// Input is everything the engine needs to evaluate a puzzle.
type Input struct {
	Initial perm.Arrangement
	Goal    perm.Arrangement
	Stages  []Stage
}

// Arity returns the arity of the initial arrangement.
func (in Input) Arity() int { return in.Initial.Len() }

// Validate checks every precondition of evaluation.
//
// Checks run in order: initial arrangement, goal arrangement (including a
// matching arity), a non-empty stage list, each stage's menu and operations,
// and finally that the number of routes fits in an int. The first violation
// is returned.
func Validate(in Input) error {
	if err := in.Initial.Validate(); err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidArrangement, err, "initial")
	}
	if err := in.Goal.Validate(); err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidArrangement, err, "goal")
	}
	n := in.Initial.Len()
	if in.Goal.Len() != n {
		return perrors.New(perrors.ErrCodeInvalidArrangement,
			"goal %s has arity %d, initial %s has arity %d", in.Goal, in.Goal.Len(), in.Initial, n)
	}

	if len(in.Stages) == 0 {
		return perrors.New(perrors.ErrCodeEmptyStageList, "no stages to evaluate")
	}
	for i, s := range in.Stages {
		if len(s.Ops) == 0 {
			return perrors.New(perrors.ErrCodeEmptyStageMenu, "stage %d (%s) has no operations", i+1, stageName(s, i))
		}
		for j, op := range s.Ops {
			if op.Arity() == 0 {
				return perrors.New(perrors.ErrCodeInvalidOperation,
					"stage %d (%s) operation %d is empty", i+1, stageName(s, i), j+1)
			}
			if op.Arity() != n {
				return perrors.New(perrors.ErrCodeInvalidOperation,
					"stage %d (%s) operation %d (%s) has arity %d, want %d", i+1, stageName(s, i), j+1, op.Label(), op.Arity(), n)
			}
		}
	}

	if _, ok := count(in.Stages); !ok {
		return perrors.New(perrors.ErrCodeTooManyRoutes,
			"%d stages have more routes than can be enumerated", len(in.Stages))
	}
	return nil
}

// Count returns the number of routes through stages: the product of the menu
// sizes, or 0 for an empty stage list. Inputs accepted by Validate never
// overflow; for others Count saturates at math.MaxInt.
func Count(stages []Stage) int {
	total, ok := count(stages)
	if !ok {
		return math.MaxInt
	}
	return total
}

// count returns the exact product of the menu sizes and false on overflow.
func count(stages []Stage) (int, bool) {
	if len(stages) == 0 {
		return 0, true
	}
	total := 1
	for _, s := range stages {
		m := len(s.Ops)
		if m == 0 {
			return 0, true
		}
		if total > math.MaxInt/m {
			return 0, false
		}
		total *= m
	}
	return total, true
}

// Slots decodes route index k into the 0-based menu slot chosen at each
// stage, with the last stage varying fastest.
func (in Input) Slots(k int) []int {
	slots := make([]int, len(in.Stages))
	for s := len(in.Stages) - 1; s >= 0; s-- {
		m := len(in.Stages[s].Ops)
		if m == 0 {
			continue
		}
		slots[s] = k % m
		k /= m
	}
	return slots
}

func stageName(s Stage, i int) string {
	if s.Name != "" {
		return s.Name
	}
	return DefaultStageName(i)
}

// DefaultStageName returns the display name of the i-th (0-based) stage when
// the caller did not name it.
func DefaultStageName(i int) string {
	return "Path " + strconv.Itoa(i+1)
}
