// Package pkg provides the core libraries for switchpuzzle.
//
// # Overview
//
// Switchpuzzle answers one question about a staged switch puzzle: starting
// from an initial arrangement of symbols, which routes (one operation chosen
// per stage) end at the goal arrangement? The pkg directory is organized as:
//
//  1. [perm] - Arrangements, operations and their algebra
//  2. [route] - Stages, route enumeration and the evaluation engine
//  3. [puzzle] - TOML, HCL and JSON puzzle files
//  4. [render] - Text, JSON, DOT and SVG output
//  5. [cache] - Report caching (file, Redis, null)
//  6. [pipeline] - Orchestration (load → evaluate → render)
//
// # Architecture
//
// The typical data flow through switchpuzzle:
//
//	Puzzle file (TOML/HCL/JSON)
//	         ↓
//	    [puzzle] package (decode + validate)
//	         ↓
//	    [route] package (evaluate every route)
//	         ↓
//	    [render] package (text, JSON, DOT, SVG)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/switchpuzzle/pkg/perm"
//	    "github.com/matzehuels/switchpuzzle/pkg/route"
//	)
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
//
// [perm]: https://pkg.go.dev/github.com/matzehuels/switchpuzzle/pkg/perm
// [route]: https://pkg.go.dev/github.com/matzehuels/switchpuzzle/pkg/route
// [puzzle]: https://pkg.go.dev/github.com/matzehuels/switchpuzzle/pkg/puzzle
// [render]: https://pkg.go.dev/github.com/matzehuels/switchpuzzle/pkg/render
// [cache]: https://pkg.go.dev/github.com/matzehuels/switchpuzzle/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/switchpuzzle/pkg/pipeline
package pkg
