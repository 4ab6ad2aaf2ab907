package reduce

//go:generate hwygen -input $GOFILE -output . -targets avx2,fallback

import (
	"github.com/ajroetker/go-highway/hwy"
)

// BaseFill sets every element of dst to v, one lane batch at a time.
func BaseFill[T hwy.Floats](dst []T, v T) {
	if len(dst) == 0 {
		return
	}

	vv := hwy.Set(v)

	hwy.ProcessWithTail[T](len(dst),
		func(offset int) {
			hwy.Store(vv, dst[offset:])
		},
		func(offset, count int) {
			mask := hwy.TailMask[T](count)
			hwy.MaskStore(mask, vv, dst[offset:])
		},
	)
}
