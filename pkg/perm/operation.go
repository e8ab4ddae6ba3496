package perm

import (
	"slices"
	"strings"

	perrors "github.com/matzehuels/switchpuzzle/pkg/errors"
)

// Operation is a permutation of {1..N} used as a position-remapping rule.
//
// Each operation carries a label, normally its literal digit-string form, that
// reports use to identify it. Two operations are Equal when they remap
// positions identically, regardless of label.
type Operation struct {
	label   string
	indices []int
}

// NewOperation validates indices and returns an Operation with the given
// label. An empty label defaults to the canonical textual form.
func NewOperation(label string, indices []int) (Operation, error) {
	if err := checkPermutation(indices); err != nil {
		return Operation{}, perrors.Wrap(perrors.ErrCodeInvalidOperation, err, "invalid operation %s", formatInts(indices))
	}
	if label == "" {
		label = formatInts(indices)
	}
	return Operation{label: label, indices: slices.Clone(indices)}, nil
}

// ParseOperation parses the digit or comma-separated form of an operation.
// The literal input, trimmed, becomes the label.
func ParseOperation(s string) (Operation, error) {
	vals, err := parseInts(s)
	if err != nil {
		return Operation{}, perrors.Wrap(perrors.ErrCodeInvalidOperation, err, "invalid operation %q", s)
	}
	if err := checkPermutation(vals); err != nil {
		return Operation{}, perrors.Wrap(perrors.ErrCodeInvalidOperation, err, "invalid operation %q", s)
	}
	return Operation{label: strings.TrimSpace(s), indices: vals}, nil
}

// MustParseOperation is like ParseOperation but panics on error.
func MustParseOperation(s string) Operation {
	op, err := ParseOperation(s)
	if err != nil {
		panic(err)
	}
	return op
}

// Identity returns the operation 1,2,...,n.
func Identity(n int) Operation {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i + 1
	}
	return Operation{label: formatInts(indices), indices: indices}
}

// Label returns the caller-supplied label.
func (o Operation) Label() string { return o.label }

// Arity returns N.
func (o Operation) Arity() int { return len(o.indices) }

// Indices returns a copy of the remapping: output position i reads input
// position Indices()[i-1].
func (o Operation) Indices() []int { return slices.Clone(o.indices) }

// Equal reports whether o and p remap positions identically.
func (o Operation) Equal(p Operation) bool { return slices.Equal(o.indices, p.indices) }

// IsIdentity reports whether o leaves every arrangement unchanged.
func (o Operation) IsIdentity() bool {
	for i, v := range o.indices {
		if v != i+1 {
			return false
		}
	}
	return len(o.indices) > 0
}

// String returns the canonical textual form, which may differ from Label.
func (o Operation) String() string { return formatInts(o.indices) }

// WithLabel returns a copy of o carrying a different label.
func (o Operation) WithLabel(label string) Operation {
	return Operation{label: label, indices: o.indices}
}

// Apply rearranges a by op: out[i] = a[op[i]-1].
//
// Apply fails with INVALID_OPERATION when op is the zero Operation or its
// arity differs from a's, and with INVALID_ARRANGEMENT when a is the zero
// Arrangement. It has no side effects.
func Apply(op Operation, a Arrangement) (Arrangement, error) {
	if a.IsZero() {
		return Arrangement{}, perrors.New(perrors.ErrCodeInvalidArrangement, "empty arrangement")
	}
	if op.Arity() == 0 {
		return Arrangement{}, perrors.New(perrors.ErrCodeInvalidOperation, "empty operation")
	}
	if op.Arity() != a.Len() {
		return Arrangement{}, perrors.New(perrors.ErrCodeInvalidOperation,
			"operation %s has arity %d, arrangement %s has arity %d", op.label, op.Arity(), a, a.Len())
	}
	return Arrangement{syms: remap(op.indices, a.syms)}, nil
}

// remap assumes equal, validated lengths.
func remap(indices, syms []int) []int {
	out := make([]int, len(indices))
	for i, src := range indices {
		out[i] = syms[src-1]
	}
	return out
}
