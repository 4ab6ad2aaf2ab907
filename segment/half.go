package segment

import (
	"github.com/ajroetker/go-highway/hwy"

	"github.com/akhenakh/vecreduce/reduce"
)

// Half-precision storage adapters. Float16 and BFloat16 rows are widened to
// float32 before combining and narrowed once per segment after finalization,
// so repeated accumulation never rounds through 16 bits. NaN survives both
// conversions.

// ReduceFloat16 reduces half-precision rows exactly like Reduce, carrying
// the accumulation in float32. initial, when non-nil, is given in float32.
func ReduceFloat16(kind reduce.Kind, out, data []hwy.Float16, rowWidth int, lengths []int, initial *float32) error {
	op, err := reduce.New[float32](kind)
	if err != nil {
		return err
	}
	if _, err := checkShape(rowWidth, len(out), len(data), lengths); err != nil {
		return err
	}

	acc := make([]float32, rowWidth)
	rowBuf := make([]float32, rowWidth)
	start := op.IdentityOr(initial)

	row := 0
	for s, n := range lengths {
		op.InitValue(acc, start)
		for r := 0; r < n; r++ {
			src := data[row*rowWidth : (row+1)*rowWidth]
			for i, h := range src {
				rowBuf[i] = hwy.Float16ToFloat32(h)
			}
			op.Update(acc, rowBuf)
			row++
		}
		op.Finalize(acc, n)
		dst := out[s*rowWidth : (s+1)*rowWidth]
		for i, f := range acc {
			dst[i] = hwy.Float32ToFloat16(f)
		}
	}
	return nil
}

// ReduceBFloat16 is ReduceFloat16 for bfloat16 storage.
func ReduceBFloat16(kind reduce.Kind, out, data []hwy.BFloat16, rowWidth int, lengths []int, initial *float32) error {
	op, err := reduce.New[float32](kind)
	if err != nil {
		return err
	}
	if _, err := checkShape(rowWidth, len(out), len(data), lengths); err != nil {
		return err
	}

	acc := make([]float32, rowWidth)
	rowBuf := make([]float32, rowWidth)
	start := op.IdentityOr(initial)

	row := 0
	for s, n := range lengths {
		op.InitValue(acc, start)
		for r := 0; r < n; r++ {
			src := data[row*rowWidth : (row+1)*rowWidth]
			for i, b := range src {
				rowBuf[i] = hwy.BFloat16ToFloat32(b)
			}
			op.Update(acc, rowBuf)
			row++
		}
		op.Finalize(acc, n)
		dst := out[s*rowWidth : (s+1)*rowWidth]
		for i, f := range acc {
			dst[i] = hwy.Float32ToBFloat16(f)
		}
	}
	return nil
}
