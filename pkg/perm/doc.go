// Package perm models arrangements of symbols and the permutation operations
// that rearrange them.
//
// # Overview
//
// An [Arrangement] is an ordered sequence of N distinct symbols drawn from
// {1..N}. An [Operation] is itself a permutation of {1..N}, read as a
// position-remapping rule: applying operation O to arrangement A produces an
// arrangement whose symbol at position i is the symbol A held at position
// O[i].
//
//	a, _ := perm.ParseArrangement("1234")
//	op, _ := perm.ParseOperation("2314")
//	out, _ := perm.Apply(op, a) // 2314
//
// Both types are immutable values. Accessors return copies, so a value can be
// shared freely between goroutines.
//
// # Textual Form
//
// For N <= 9 both types are conventionally written as a string of N digits
// ("2314"). Any arity can be written as a comma-separated list
// ("10,1,2,3,4,5,6,7,8,9"). [ParseArrangement] and [ParseOperation] accept
// both forms; String renders the digit form whenever it is unambiguous.
//
// # Errors
//
// Invalid arrangements fail with INVALID_ARRANGEMENT and invalid operations
// (including arity mismatches in [Apply]) with INVALID_OPERATION. See the
// errors package for the code definitions.
//
// # Helpers
//
// [Compose], [Inverse] and [Solve] treat operations as elements of the
// symmetric group. [All] lists every operation of a given arity, and [Seq],
// [Factorial] and [Generate] are the low-level building blocks it uses.
package perm
