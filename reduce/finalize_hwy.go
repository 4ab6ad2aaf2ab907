package reduce

//go:generate hwygen -input $GOFILE -output . -targets avx2,fallback

import (
	"github.com/ajroetker/go-highway/hwy"
)

// BaseDivideBy divides every element of acc by n in place. True division,
// not a reciprocal multiply: mean results must match the scalar x/n exactly.
func BaseDivideBy[T hwy.Floats](acc []T, n T) {
	if len(acc) == 0 {
		return
	}

	vn := hwy.Set(n)

	hwy.ProcessWithTail[T](len(acc),
		func(offset int) {
			x := hwy.Load(acc[offset:])
			hwy.Store(hwy.Div(x, vn), acc[offset:])
		},
		func(offset, count int) {
			mask := hwy.TailMask[T](count)
			x := hwy.MaskLoad(mask, acc[offset:])
			hwy.MaskStore(mask, hwy.Div(x, vn), acc[offset:])
		},
	)
}
