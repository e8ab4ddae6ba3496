// Package route enumerates every stage-by-stage route through an ordered list
// of stages and reports which routes transform an initial arrangement into a
// goal arrangement.
//
// # Model
//
// A [Stage] is an ordered, non-empty menu of candidate [perm.Operation]
// values. A route picks exactly one operation from every stage, in stage
// order. Evaluating a route applies its operations left to right, starting
// from the initial arrangement and carrying each result into the next stage.
//
// # Enumeration Order
//
// Routes are visited in lexicographic Cartesian-product order: the first
// stage's choice varies slowest and the last stage's varies fastest. The
// number of routes is the product of the menu sizes. Every route is
// reported, matching or not; nothing is deduplicated or pruned.
//
//	in := route.Input{
//	    Initial: perm.MustParseArrangement("1234"),
//	    Goal:    perm.MustParseArrangement("2314"),
//	    Stages: []route.Stage{
//	        route.NewStage("Path 1", perm.MustParseOperation("2134")),
//	        route.NewStage("Path 2", perm.MustParseOperation("1324"), perm.MustParseOperation("1234")),
//	    },
//	}
//	reports, err := route.Evaluate(in)
//	// reports[0].Trail() == "2134 (1) -> 1324 (1)", reports[0].Reached == true
//
// # Concurrency
//
// [Engine] evaluates routes on several goroutines in fixed-size batches and
// still emits reports strictly in enumeration order. The output of an
// Engine does not depend on its worker count.
//
// # Errors
//
// Invalid input fails before any route is evaluated, with one of the codes
// INVALID_ARRANGEMENT, INVALID_OPERATION, EMPTY_STAGE_LIST or EMPTY_STAGE_MENU.
// The package never logs.
package route
