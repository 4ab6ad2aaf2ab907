package segment

import (
	"math"
	"math/rand"
	"testing"

	"github.com/ajroetker/go-highway/hwy"

	"github.com/akhenakh/vecreduce/reduce"
)

func f16s(vals ...float32) []hwy.Float16 {
	out := make([]hwy.Float16, len(vals))
	for i, v := range vals {
		out[i] = hwy.Float32ToFloat16(v)
	}
	return out
}

func bf16s(vals ...float32) []hwy.BFloat16 {
	out := make([]hwy.BFloat16, len(vals))
	for i, v := range vals {
		out[i] = hwy.Float32ToBFloat16(v)
	}
	return out
}

func TestReduceFloat16Golden(t *testing.T) {
	// Small integers are exact in half precision, so results compare exactly.
	data := f16s(1, 2, 3, 10, 20)
	out := make([]hwy.Float16, 3)
	if err := ReduceFloat16(reduce.Sum, out, data, 1, []int{3, 0, 2}, nil); err != nil {
		t.Fatalf("ReduceFloat16: %v", err)
	}
	for i, want := range []float32{6, 0, 30} {
		if got := out[i].Float32(); got != want {
			t.Errorf("out[%d] = %v, want %v", i, got, want)
		}
	}
}

func TestReduceFloat16Mean(t *testing.T) {
	data := f16s(9, 6, 3, 5)
	out := make([]hwy.Float16, 2)
	if err := ReduceFloat16(reduce.Mean, out, data, 1, []int{3, 1}, nil); err != nil {
		t.Fatalf("ReduceFloat16: %v", err)
	}
	for i, want := range []float32{6, 5} {
		if got := out[i].Float32(); got != want {
			t.Errorf("out[%d] = %v, want %v", i, got, want)
		}
	}
}

func TestReduceFloat16WideAccumulation(t *testing.T) {
	// 4096 ones: a half-precision accumulator saturates at 2048 (2048+1
	// rounds back to 2048), so only the float32 accumulation path can reach
	// the true sum.
	const n = 4096
	data := make([]hwy.Float16, n)
	one := hwy.Float32ToFloat16(1)
	for i := range data {
		data[i] = one
	}
	out := make([]hwy.Float16, 1)
	if err := ReduceFloat16(reduce.Sum, out, data, 1, []int{n}, nil); err != nil {
		t.Fatalf("ReduceFloat16: %v", err)
	}
	if got := out[0].Float32(); got != n {
		t.Errorf("sum of %d ones = %v, want %d", n, got, n)
	}
}

func TestReduceFloat16NaN(t *testing.T) {
	data := f16s(1, float32(math.NaN()), 3)
	out := make([]hwy.Float16, 1)
	if err := ReduceFloat16(reduce.Max, out, data, 1, []int{3}, nil); err != nil {
		t.Fatalf("ReduceFloat16: %v", err)
	}
	if !out[0].IsNaN() {
		t.Errorf("out[0] = %v, want NaN surviving promote and demote", out[0].Float32())
	}
}

func TestReduceFloat16MatchesFloat32(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	lengths := []int{3, 0, 9, 1, 17}
	const rowWidth = 4
	total := 0
	for _, n := range lengths {
		total += n
	}

	data16 := make([]hwy.Float16, total*rowWidth)
	data32 := make([]float32, total*rowWidth)
	for i := range data16 {
		data16[i] = hwy.Float32ToFloat16(float32(rng.Float64()*4 - 2))
		data32[i] = data16[i].Float32()
	}

	for _, kind := range allKinds {
		t.Run(kind.String(), func(t *testing.T) {
			out16 := make([]hwy.Float16, len(lengths)*rowWidth)
			if err := ReduceFloat16(kind, out16, data16, rowWidth, lengths, nil); err != nil {
				t.Fatalf("ReduceFloat16: %v", err)
			}
			out32 := make([]float32, len(lengths)*rowWidth)
			if err := Reduce(kind, out32, data32, rowWidth, lengths, nil); err != nil {
				t.Fatalf("Reduce: %v", err)
			}
			for i := range out16 {
				want := hwy.Float32ToFloat16(out32[i])
				if out16[i].Bits() != want.Bits() {
					t.Errorf("out[%d] = %04x, want %04x (float32 path %v)",
						i, out16[i].Bits(), want.Bits(), out32[i])
				}
			}
		})
	}
}

func TestReduceBFloat16Golden(t *testing.T) {
	// Small integers stay exact in bfloat16's 8-bit mantissa.
	data := bf16s(2, 3, 4)
	out := make([]hwy.BFloat16, 2)
	if err := ReduceBFloat16(reduce.Prod, out, data, 1, []int{2, 1}, nil); err != nil {
		t.Fatalf("ReduceBFloat16: %v", err)
	}
	for i, want := range []float32{6, 4} {
		if got := out[i].Float32(); got != want {
			t.Errorf("out[%d] = %v, want %v", i, got, want)
		}
	}
}

func TestReduceBFloat16NaN(t *testing.T) {
	data := bf16s(5, float32(math.NaN()))
	out := make([]hwy.BFloat16, 1)
	if err := ReduceBFloat16(reduce.Min, out, data, 1, []int{2}, nil); err != nil {
		t.Fatalf("ReduceBFloat16: %v", err)
	}
	if !out[0].IsNaN() {
		t.Errorf("out[0] = %v, want NaN surviving promote and demote", out[0].Float32())
	}
}

func TestReduceFloat16Errors(t *testing.T) {
	out := make([]hwy.Float16, 1)
	if err := ReduceFloat16(reduce.Kind(42), out, f16s(1), 1, []int{1}, nil); err == nil {
		t.Error("invalid kind accepted")
	}
	if err := ReduceFloat16(reduce.Sum, out, f16s(1, 2), 1, []int{1}, nil); err == nil {
		t.Error("data length mismatch accepted")
	}
}
