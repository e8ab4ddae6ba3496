package route

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/switchpuzzle/pkg/perm"
)

// ErrStop may be returned by an emit callback to end a stream early.
// Stream then returns nil.
var ErrStop = errors.New("route: stop emitting")

// DefaultBatchSize is the number of routes evaluated between emissions when
// Engine.BatchSize is unset.
const DefaultBatchSize = 1024

// Engine evaluates routes, optionally in parallel.
//
// The zero value evaluates on GOMAXPROCS workers. An Engine holds no state
// between calls and is safe for concurrent use.
type Engine struct {
	// Workers is the number of goroutines evaluating a batch.
	// Values <= 0 use runtime.GOMAXPROCS(0).
	Workers int

	// BatchSize is the number of routes evaluated before the batch is emitted.
	// Values <= 0 use DefaultBatchSize.
	BatchSize int
}

// Evaluate validates in and returns a report for every route, in enumeration
// order, using a single worker.
func Evaluate(in Input) ([]Report, error) {
	return Engine{Workers: 1}.Evaluate(context.Background(), in)
}

// Evaluate collects the full report sequence.
func (e Engine) Evaluate(ctx context.Context, in Input) ([]Report, error) {
	reports := make([]Report, 0, min(Count(in.Stages), 1<<16))
	err := e.Stream(ctx, in, func(r Report) error {
		reports = append(reports, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reports, nil
}

// Stream validates in and calls emit once per route in enumeration order.
//
// Routes are evaluated in batches; within a batch the work is split across
// the engine's workers, and the batch is emitted in order once it is
// complete. If emit returns ErrStop, Stream stops and returns nil. Any other
// emit error is returned as-is. Cancelling ctx stops Stream with ctx.Err()
// before the current batch is emitted. Validation errors are returned before emit is ever called.
func (e Engine) Stream(ctx context.Context, in Input, emit func(Report) error) error {
	if err := Validate(in); err != nil {
		return err
	}

	plan := newPlan(in)
	workers := e.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	batch := e.BatchSize
	if batch <= 0 {
		batch = DefaultBatchSize
	}

	buf := make([]Report, min(batch, plan.total))
	for start := 0; start < plan.total; {
		if err := ctx.Err(); err != nil {
			return err
		}

		n := min(batch, plan.total-start)
		results := buf[:n]
		if err := plan.evaluateBatch(ctx, start, results, workers); err != nil {
			return err
		}

		for _, r := range results {
			if err := emit(r); err != nil {
				if errors.Is(err, ErrStop) {
					return nil
				}
				return err
			}
		}
		start += n
	}
	return nil
}

// plan is the validated, precomputed form of an Input.
type plan struct {
	in        Input
	total     int
	positions [][]int
}

func newPlan(in Input) *plan {
	p := &plan{
		in:        in,
		total:     Count(in.Stages),
		positions: make([][]int, len(in.Stages)),
	}
	for i, s := range in.Stages {
		p.positions[i] = s.positions()
	}
	return p
}

func (p *plan) evaluateBatch(ctx context.Context, start int, out []Report, workers int) error {
	if workers == 1 || len(out) == 1 {
		for i := range out {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := p.evaluate(start + i)
			if err != nil {
				return err
			}
			out[i] = r
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	chunk := (len(out) + workers - 1) / workers
	for lo := 0; lo < len(out); lo += chunk {
		hi := min(lo+chunk, len(out))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				r, err := p.evaluate(start + i)
				if err != nil {
					return err
				}
				out[i] = r
			}
			return nil
		})
	}
	return g.Wait()
}

// evaluate decodes route index k (last stage fastest) and applies its
// operations in stage order.
func (p *plan) evaluate(k int) (Report, error) {
	stages := p.in.Stages
	picks := p.in.Slots(k)

	r := Report{
		Index:   k,
		Choices: make([]Choice, len(stages)),
		Ops:     make([]perm.Operation, len(stages)),
		Steps:   make([]perm.Arrangement, len(stages)),
	}
	cur := p.in.Initial
	for s, j := range picks {
		op := stages[s].Ops[j]
		next, err := perm.Apply(op, cur)
		if err != nil {
			return Report{}, fmt.Errorf("route %d stage %d: %w", k, s+1, err)
		}
		r.Choices[s] = Choice{Label: op.Label(), Position: p.positions[s][j]}
		r.Ops[s] = op
		r.Steps[s] = next
		cur = next
	}
	r.Result = cur
	r.Reached = cur.Equal(p.in.Goal)
	return r, nil
}
