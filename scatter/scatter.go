// Package scatter implements index-directed reduction: each row of a source
// buffer merges into the destination row named by an index vector, under any
// reduction kind. It is the canonical consumer of the include-self
// initialization mode, where a destination's existing contents count as one
// more contribution instead of being overwritten.
package scatter

import (
	"github.com/ajroetker/go-highway/hwy"
	"github.com/pkg/errors"

	"github.com/akhenakh/vecreduce/reduce"
)

// Reduce merges row i of src into row index[i] of out under kind, for every
// i in order. Buffers are row-major with rowWidth values per row: out holds
// len(out)/rowWidth rows and src must hold exactly len(index) rows.
//
// With includeSelf true the existing contents of every targeted row take
// part in the reduction. With includeSelf false a targeted row starts from
// the reduction identity; rows never named by index keep their previous
// contents either way. For Mean each targeted row is divided by its number
// of contributions, counting the row itself as one when includeSelf.
//
// Validation happens before any write: an invalid kind, a non-positive
// rowWidth, buffer lengths that do not divide into rows, or an index out of
// range leave out untouched and return a descriptive error. Rows of out may
// be named by several indices, so the call is single-threaded by contract;
// concurrent calls on disjoint out buffers are safe.
func Reduce[T hwy.Floats](kind reduce.Kind, out, src []T, rowWidth int, index []int, includeSelf bool) error {
	op, err := reduce.New[T](kind)
	if err != nil {
		return err
	}
	if rowWidth < 1 {
		return errors.Errorf("scatter: row width %d, want >= 1", rowWidth)
	}
	if len(out)%rowWidth != 0 {
		return errors.Errorf("scatter: out length %d is not a multiple of row width %d", len(out), rowWidth)
	}
	if len(src) != len(index)*rowWidth {
		return errors.Errorf("scatter: src length %d, want %d rows of width %d", len(src), len(index), rowWidth)
	}
	outRows := len(out) / rowWidth
	for i, r := range index {
		if r < 0 || r >= outRows {
			return errors.Errorf("scatter: index[%d] = %d outside %d output rows", i, r, outRows)
		}
	}

	counts := make([]int, outRows)
	for _, r := range index {
		counts[r]++
	}

	// Rows about to receive contributions either keep their contents as the
	// starting point or are reset to the identity. Untargeted rows are never
	// touched.
	for r, c := range counts {
		if c > 0 {
			op.InitIncludeSelf(out[r*rowWidth:(r+1)*rowWidth], includeSelf)
		}
	}

	if rowWidth == 1 {
		for i, r := range index {
			out[r] = op.Combine(out[r], src[i])
		}
	} else {
		for i, r := range index {
			op.Update(out[r*rowWidth:(r+1)*rowWidth], src[i*rowWidth:(i+1)*rowWidth])
		}
	}

	if kind == reduce.Mean {
		self := 0
		if includeSelf {
			self = 1
		}
		for r, c := range counts {
			if c > 0 {
				op.Finalize(out[r*rowWidth:(r+1)*rowWidth], self+c)
			}
		}
	}
	return nil
}
