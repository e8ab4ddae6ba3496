package route_test

import (
	"fmt"

	"github.com/matzehuels/switchpuzzle/pkg/perm"
	"github.com/matzehuels/switchpuzzle/pkg/route"
)

func ExampleEvaluate() {
	in := route.Input{
		Initial: perm.MustParseArrangement("1234"),
		Goal:    perm.MustParseArrangement("2314"),
		Stages: []route.Stage{
			route.NewStage("Path 1", perm.MustParseOperation("2134")),
			route.NewStage("Path 2", perm.MustParseOperation("1324"), perm.MustParseOperation("1234")),
		},
	}

	reports, err := route.Evaluate(in)
	if err != nil {
		panic(err)
	}
	for _, r := range reports {
		fmt.Println(r.Trail(), "=>", r.Result, r.Reached)
	}
	// Output:
	// 2134 (1) -> 1324 (1) => 2314 true
	// 2134 (1) -> 1234 (2) => 2134 false
}

func ExampleEvaluate_emptyStages() {
	_, err := route.Evaluate(route.Input{
		Initial: perm.MustParseArrangement("1234"),
		Goal:    perm.MustParseArrangement("1234"),
	})
	fmt.Println(err)
	// Output:
	// EMPTY_STAGE_LIST: no stages to evaluate
}
