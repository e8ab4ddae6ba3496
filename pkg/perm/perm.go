package perm

import (
	"slices"

	perrors "github.com/matzehuels/switchpuzzle/pkg/errors"
)

// Seq returns a slice containing the sequence [0, 1, 2, ..., n-1].
//
// For n <= 0, Seq returns an empty slice.
func Seq(n int) []int {
	if n <= 0 {
		return []int{}
	}
	result := make([]int, n)
	for i := range result {
		result[i] = i
	}
	return result
}

// Factorial returns n! (n factorial), the product 1 × 2 × ... × n.
// For n <= 1, Factorial returns 1.
//
// Note that factorials grow extremely fast: 13! = 6,227,020,800 exceeds 32-bit int.
func Factorial(n int) int {
	result := 1
	for i := 2; i <= n; i++ {
		result *= i
	}
	return result
}

// Generate returns permutations of [0, 1, ..., n-1] using Heap's algorithm.
//
// If limit > 0, Generate returns at most limit permutations.
// If limit <= 0, Generate returns all n! permutations.
//
// Each returned slice is a separate allocation, safe to modify without affecting others.
//
// Heap's algorithm generates permutations in a non-lexicographic order, but
// efficiently produces each permutation exactly once. Use [All] for a sorted,
// 1-based listing.
func Generate(n, limit int) [][]int {
	if n == 0 {
		return [][]int{{}}
	}
	if n == 1 {
		return [][]int{{0}}
	}

	perm := Seq(n)
	state := make([]int, n)

	capacity := limit
	if capacity <= 0 || n <= 12 {
		capacity = Factorial(min(n, 12))
	}
	result := make([][]int, 0, capacity)
	result = append(result, slices.Clone(perm))

	for i := 0; i < n && (limit <= 0 || len(result) < limit); {
		if state[i] < i {
			if i&1 == 0 {
				perm[0], perm[i] = perm[i], perm[0]
			} else {
				perm[state[i]], perm[i] = perm[i], perm[state[i]]
			}
			result = append(result, slices.Clone(perm))
			state[i]++
			i = 0
		} else {
			state[i] = 0
			i++
		}
	}
	return result
}

// All returns every operation of arity n in lexicographic order, each
// labelled with its canonical form. All(4) starts with 1234, 1243, 1324.
//
// For n < 1, All returns nil.
func All(n int) []Operation {
	if n < 1 {
		return nil
	}
	raw := Generate(n, 0)
	for _, p := range raw {
		for i := range p {
			p[i]++
		}
	}
	slices.SortFunc(raw, func(a, b []int) int { return slices.Compare(a, b) })

	ops := make([]Operation, len(raw))
	for i, p := range raw {
		ops[i] = Operation{label: formatInts(p), indices: p}
	}
	return ops
}

// Compose returns the single operation equivalent to applying first and then
// second: Apply(Compose(f, s), a) == Apply(s, Apply(f, a)).
func Compose(first, second Operation) (Operation, error) {
	if first.Arity() == 0 || first.Arity() != second.Arity() {
		return Operation{}, perrors.New(perrors.ErrCodeInvalidOperation,
			"cannot compose %s (arity %d) with %s (arity %d)", first.label, first.Arity(), second.label, second.Arity())
	}
	indices := remap(second.indices, first.indices)
	return Operation{label: formatInts(indices), indices: indices}, nil
}

// Inverse returns the operation that undoes op.
func Inverse(op Operation) Operation {
	inv := make([]int, len(op.indices))
	for i, src := range op.indices {
		inv[src-1] = i + 1
	}
	return Operation{label: formatInts(inv), indices: inv}
}

// Solve returns the unique operation taking initial to goal in one step.
// Both arrangements must share an arity.
func Solve(initial, goal Arrangement) (Operation, error) {
	if initial.IsZero() || goal.IsZero() {
		return Operation{}, perrors.New(perrors.ErrCodeInvalidArrangement, "empty arrangement")
	}
	if initial.Len() != goal.Len() {
		return Operation{}, perrors.New(perrors.ErrCodeInvalidArrangement,
			"arrangement %s has arity %d, %s has arity %d", initial, initial.Len(), goal, goal.Len())
	}

	pos := make([]int, initial.Len()+1)
	for i, s := range initial.syms {
		pos[s] = i + 1
	}
	indices := make([]int, goal.Len())
	for i, s := range goal.syms {
		indices[i] = pos[s]
	}
	return Operation{label: formatInts(indices), indices: indices}, nil
}
