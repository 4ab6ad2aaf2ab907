package segment

import (
	"github.com/ajroetker/go-highway/hwy"
	"github.com/ajroetker/go-highway/hwy/contrib/workerpool"

	"github.com/akhenakh/vecreduce/reduce"
)

// ParallelReduce behaves exactly like Reduce but distributes segments across
// pool. Each segment writes its own row of out, so workers need no
// synchronization beyond the pool's completion barrier; results are
// identical to the sequential path for every kind. A nil pool falls back to
// Reduce.
func ParallelReduce[T hwy.Floats](pool *workerpool.Pool, kind reduce.Kind, out, data []T, rowWidth int, lengths []int, initial *T) error {
	if pool == nil {
		return Reduce(kind, out, data, rowWidth, lengths, initial)
	}
	op, err := reduce.New[T](kind)
	if err != nil {
		return err
	}
	if _, err := checkShape(rowWidth, len(out), len(data), lengths); err != nil {
		return err
	}

	offsets := make([]int, len(lengths))
	row := 0
	for s, n := range lengths {
		offsets[s] = row
		row += n
	}

	start := op.IdentityOr(initial)
	pool.ParallelFor(len(lengths), func(lo, hi int) {
		for s := lo; s < hi; s++ {
			n := lengths[s]
			first := offsets[s]
			acc := out[s*rowWidth : (s+1)*rowWidth]
			reduceSegment(op, acc, data[first*rowWidth:(first+n)*rowWidth], rowWidth, n, start)
		}
	})
	return nil
}
