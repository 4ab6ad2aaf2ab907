// Package segment implements contiguous segment reduction: consecutive rows
// of a data buffer are grouped into segments by a lengths vector, and each
// segment reduces into one row of the output under any reduction kind.
//
// Segments write disjoint output rows, which makes the work embarrassingly
// parallel; ParallelReduce distributes segments across a worker pool with no
// further synchronization. Half-precision storage is handled by the
// ReduceFloat16 and ReduceBFloat16 adapters, which accumulate in float32.
package segment

import (
	"github.com/ajroetker/go-highway/hwy"
	"github.com/pkg/errors"

	"github.com/akhenakh/vecreduce/reduce"
)

// Reduce reduces the rows of every segment into the matching row of out
// under kind. data is row-major with rowWidth values per row; segment s
// spans lengths[s] consecutive rows, in order, and reduces into row s of
// out. out must hold exactly one row per segment.
//
// initial optionally overrides the reduction identity as every segment's
// starting value; nil keeps the canonical identity. An empty segment leaves
// its out row at that starting value, and Mean's division is skipped for it,
// so an empty mean stays 0 rather than becoming 0/0.
//
// Shapes are validated before any write; a failed call returns a descriptive
// error with out untouched.
func Reduce[T hwy.Floats](kind reduce.Kind, out, data []T, rowWidth int, lengths []int, initial *T) error {
	op, err := reduce.New[T](kind)
	if err != nil {
		return err
	}
	if _, err := checkShape(rowWidth, len(out), len(data), lengths); err != nil {
		return err
	}

	start := op.IdentityOr(initial)
	row := 0
	for s, n := range lengths {
		acc := out[s*rowWidth : (s+1)*rowWidth]
		reduceSegment(op, acc, data[row*rowWidth:(row+n)*rowWidth], rowWidth, n, start)
		row += n
	}
	return nil
}

// reduceSegment folds n rows into acc, starting from start. Single-column
// segments fold through the scalar combiner instead of paying vector
// dispatch per element.
func reduceSegment[T hwy.Floats](op reduce.Op[T], acc, rows []T, rowWidth, n int, start T) {
	if rowWidth == 1 {
		v := start
		for r := 0; r < n; r++ {
			v = op.Combine(v, rows[r])
		}
		acc[0] = v
		op.Finalize(acc, n)
		return
	}

	op.InitValue(acc, start)
	for r := 0; r < n; r++ {
		op.Update(acc, rows[r*rowWidth:(r+1)*rowWidth])
	}
	op.Finalize(acc, n)
}

// checkShape validates the row geometry shared by all Reduce variants and
// returns the total number of data rows.
func checkShape(rowWidth, outLen, dataLen int, lengths []int) (int, error) {
	if rowWidth < 1 {
		return 0, errors.Errorf("segment: row width %d, want >= 1", rowWidth)
	}
	total := 0
	for s, n := range lengths {
		if n < 0 {
			return 0, errors.Errorf("segment: lengths[%d] = %d, want >= 0", s, n)
		}
		total += n
	}
	if dataLen != total*rowWidth {
		return 0, errors.Errorf("segment: data length %d, want %d rows of width %d", dataLen, total, rowWidth)
	}
	if outLen != len(lengths)*rowWidth {
		return 0, errors.Errorf("segment: out length %d, want %d rows of width %d", outLen, len(lengths), rowWidth)
	}
	return total, nil
}
