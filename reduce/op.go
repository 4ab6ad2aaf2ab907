package reduce

import (
	"math"

	"github.com/ajroetker/go-highway/hwy"
	"github.com/pkg/errors"
)

// Op is a reduction strategy resolved for accumulator type T. The zero Op
// behaves as Sum; obtain one from New so invalid kinds are rejected before
// any buffer is touched.
//
// An accumulator buffer moves through Init (exactly once), Update (zero or
// more times) and Finalize (exactly once). Sequencing is the caller's
// contract and is not checked here.
type Op[T hwy.Floats] struct {
	kind Kind
}

// New resolves kind into an Op for accumulator type T. A kind outside the
// supported set fails here, at configuration time, with ErrUnsupportedKind.
func New[T hwy.Floats](kind Kind) (Op[T], error) {
	if !kind.Valid() {
		return Op[T]{}, errors.Wrapf(ErrUnsupportedKind, "kind %d", int(kind))
	}
	return Op[T]{kind: kind}, nil
}

// Kind returns the reduction kind o was resolved for.
func (o Op[T]) Kind() Kind { return o.kind }

// Identity returns the canonical starting value for o's kind: 0 for Sum and
// Mean, 1 for Prod, +Inf for Min and -Inf for Max, chosen so that combining
// the identity with any real value yields that value.
func (o Op[T]) Identity() T {
	switch o.kind {
	case Prod:
		return 1
	case Min:
		return T(math.Inf(1))
	case Max:
		return T(math.Inf(-1))
	}
	return 0
}

// IdentityOr returns *initial when initial is non-nil, else the canonical
// identity. A caller-supplied starting value wins for every kind.
func (o Op[T]) IdentityOr(initial *T) T {
	if initial != nil {
		return *initial
	}
	return o.Identity()
}

// InitValue fills acc with v, lane-vectorized.
func (o Op[T]) InitValue(acc []T, v T) {
	BaseFill(acc, v)
}

// Init fills acc with the identity resolved against an optional override
// (nil keeps the canonical identity).
func (o Op[T]) Init(acc []T, initial *T) {
	BaseFill(acc, o.IdentityOr(initial))
}

// InitIncludeSelf prepares acc for accumulation. With includeSelf false the
// buffer is reset to the canonical identity; with includeSelf true it is
// left untouched so its current contents absorb later updates. Scatter-style
// callers use the latter when the destination already holds a value that
// must count as the starting point.
func (o Op[T]) InitIncludeSelf(acc []T, includeSelf bool) {
	if !includeSelf {
		BaseFill(acc, o.Identity())
	}
}

// Combine merges y into x under o's kind and returns the result. For Min and
// Max a NaN operand wins regardless of order, so one NaN contribution
// poisons the result permanently instead of being suppressed by the
// comparison.
func (o Op[T]) Combine(x, y T) T {
	switch o.kind {
	case Prod:
		return x * y
	case Max:
		if y > x || math.IsNaN(float64(y)) {
			return y
		}
		return x
	case Min:
		if y < x || math.IsNaN(float64(y)) {
			return y
		}
		return x
	}
	return x + y
}

// Update combines in into acc element-by-element, lane-vectorized with a
// masked tail. The two slices describe the same output slot and must have
// equal length; the caller guarantees it. The kind is resolved once per
// call, outside the lane loop.
func (o Op[T]) Update(acc, in []T) {
	switch o.kind {
	case Prod:
		BaseAccumulateMul(acc, in)
	case Max:
		BaseAccumulateMax(acc, in)
	case Min:
		BaseAccumulateMin(acc, in)
	default:
		BaseAccumulateAdd(acc, in)
	}
}

// Finalize post-processes acc after all updates are applied. Only Mean
// mutates anything: every element is divided by count. A count of zero is a
// deliberate no-op, leaving an accumulator that saw no contributions at its
// identity of 0 rather than producing 0/0.
func (o Op[T]) Finalize(acc []T, count int) {
	if o.kind != Mean || count <= 0 {
		return
	}
	BaseDivideBy(acc, T(count))
}
