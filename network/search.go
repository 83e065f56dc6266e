package network

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/hexaflex/intcode/arch"
)

// Search builds a network for every ordering of settings, runs each with
// the given input signal and returns the strongest output along with the
// ordering which produced it.
func Search(ctx context.Context, program arch.Program, topology Topology, settings []int64, signal int64) (int64, []int64, error) {
	orders := permutations(settings)
	results := make([]int64, len(orders))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, order := range orders {
		i, order := i, order
		g.Go(func() error {
			v, err := New(program, topology, order, nil).Run(ctx, signal)
			if err != nil {
				return errors.Wrapf(err, "settings %v", order)
			}
			results[i] = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, nil, err
	}

	best := 0
	for i := range results {
		if results[i] > results[best] {
			best = i
		}
	}

	return results[best], orders[best], nil
}

// permutations returns every ordering of values.
func permutations(values []int64) [][]int64 {
	var out [][]int64

	work := append([]int64(nil), values...)

	var permute func(k int)
	permute = func(k int) {
		if k == len(work) {
			out = append(out, append([]int64(nil), work...))
			return
		}

		for i := k; i < len(work); i++ {
			work[k], work[i] = work[i], work[k]
			permute(k + 1)
			work[k], work[i] = work[i], work[k]
		}
	}

	permute(0)
	return out
}
