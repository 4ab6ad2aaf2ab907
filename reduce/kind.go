// Package reduce implements vectorized reduction-accumulation primitives:
// initialize, combine, and finalize numeric accumulator buffers under sum,
// mean, min, max or product semantics, processing SIMD-width lanes per step.
//
// The package is the inner kernel for segmented and scattered reductions.
// Callers own the buffers, decide which output slot each input row belongs
// to, and drive one accumulator per slot through Init, zero or more Update
// calls, and a single Finalize. Nothing here allocates, blocks or keeps
// state between calls, so invocations on disjoint buffers are safe from any
// number of goroutines without synchronization.
package reduce

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind selects the reduction semantics applied by an Op.
type Kind int

const (
	// Sum accumulates lane-wise addition.
	Sum Kind = iota
	// Mean accumulates like Sum and divides by the observed count at
	// finalization.
	Mean
	// Min keeps the smaller operand, with NaN winning over any value.
	Min
	// Max keeps the larger operand, with NaN winning over any value.
	Max
	// Prod accumulates lane-wise multiplication.
	Prod

	numKinds
)

// ErrUnsupportedKind reports a reduction kind outside the supported set.
// It is returned at configuration time, before any buffer is touched.
var ErrUnsupportedKind = errors.New("unsupported reduction kind")

var kindNames = [numKinds]string{
	Sum:  "sum",
	Mean: "mean",
	Min:  "min",
	Max:  "max",
	Prod: "prod",
}

// Valid reports whether k is one of the five supported kinds.
func (k Kind) Valid() bool { return k >= 0 && k < numKinds }

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind maps a textual reduction name to its Kind. Besides the canonical
// lowercase names it accepts "add" for sum, "mul" and "multiply" for prod,
// and "amin"/"amax" for min/max. Unknown names fail with ErrUnsupportedKind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "sum", "add":
		return Sum, nil
	case "mean":
		return Mean, nil
	case "min", "amin":
		return Min, nil
	case "max", "amax":
		return Max, nil
	case "prod", "mul", "multiply":
		return Prod, nil
	}
	return 0, errors.Wrapf(ErrUnsupportedKind, "parse %q", s)
}
