package reduce

//go:generate hwygen -input $GOFILE -output . -targets avx2,fallback

import (
	"github.com/ajroetker/go-highway/hwy"
)

// Accumulation kernels: each merges in[i] into acc[i] for every i under one
// reduction rule. Min and Max select through a comparison mask widened with
// an IsNaN test on the incoming lane, so a NaN contribution replaces the
// accumulator even though NaN compares false against everything.

// BaseAccumulateAdd adds each element of in to the matching element of acc.
func BaseAccumulateAdd[T hwy.Floats](acc, in []T) {
	size := min(len(acc), len(in))

	hwy.ProcessWithTail[T](size,
		func(offset int) {
			x := hwy.Load(acc[offset:])
			y := hwy.Load(in[offset:])
			hwy.Store(hwy.Add(x, y), acc[offset:])
		},
		func(offset, count int) {
			mask := hwy.TailMask[T](count)
			x := hwy.MaskLoad(mask, acc[offset:])
			y := hwy.MaskLoad(mask, in[offset:])
			hwy.MaskStore(mask, hwy.Add(x, y), acc[offset:])
		},
	)
}

// BaseAccumulateMul multiplies each element of acc by the matching element
// of in.
func BaseAccumulateMul[T hwy.Floats](acc, in []T) {
	size := min(len(acc), len(in))

	hwy.ProcessWithTail[T](size,
		func(offset int) {
			x := hwy.Load(acc[offset:])
			y := hwy.Load(in[offset:])
			hwy.Store(hwy.Mul(x, y), acc[offset:])
		},
		func(offset, count int) {
			mask := hwy.TailMask[T](count)
			x := hwy.MaskLoad(mask, acc[offset:])
			y := hwy.MaskLoad(mask, in[offset:])
			hwy.MaskStore(mask, hwy.Mul(x, y), acc[offset:])
		},
	)
}

// BaseAccumulateMax keeps the larger of acc[i] and in[i] per lane. The
// select mask is (in > acc) OR isnan(in), so an incoming NaN wins the lane
// and an already-NaN accumulator is never displaced by the comparison.
func BaseAccumulateMax[T hwy.Floats](acc, in []T) {
	size := min(len(acc), len(in))

	hwy.ProcessWithTail[T](size,
		func(offset int) {
			x := hwy.Load(acc[offset:])
			y := hwy.Load(in[offset:])
			take := hwy.MaskOr(hwy.GreaterThan(y, x), hwy.IsNaN(y))
			hwy.Store(hwy.IfThenElse(take, y, x), acc[offset:])
		},
		func(offset, count int) {
			mask := hwy.TailMask[T](count)
			x := hwy.MaskLoad(mask, acc[offset:])
			y := hwy.MaskLoad(mask, in[offset:])
			take := hwy.MaskOr(hwy.GreaterThan(y, x), hwy.IsNaN(y))
			hwy.MaskStore(mask, hwy.IfThenElse(take, y, x), acc[offset:])
		},
	)
}

// BaseAccumulateMin keeps the smaller of acc[i] and in[i] per lane, with the
// same NaN-wins select as BaseAccumulateMax.
func BaseAccumulateMin[T hwy.Floats](acc, in []T) {
	size := min(len(acc), len(in))

	hwy.ProcessWithTail[T](size,
		func(offset int) {
			x := hwy.Load(acc[offset:])
			y := hwy.Load(in[offset:])
			take := hwy.MaskOr(hwy.LessThan(y, x), hwy.IsNaN(y))
			hwy.Store(hwy.IfThenElse(take, y, x), acc[offset:])
		},
		func(offset, count int) {
			mask := hwy.TailMask[T](count)
			x := hwy.MaskLoad(mask, acc[offset:])
			y := hwy.MaskLoad(mask, in[offset:])
			take := hwy.MaskOr(hwy.LessThan(y, x), hwy.IsNaN(y))
			hwy.MaskStore(mask, hwy.IfThenElse(take, y, x), acc[offset:])
		},
	)
}
