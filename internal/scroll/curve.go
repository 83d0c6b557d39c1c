package scroll

import (
	"fmt"
	"math"
)

// Curve is a piecewise-linear mapping clamped at both ends: inputs below the
// first point yield the first output, inputs above the last point yield the
// last output. It never extrapolates.
type Curve struct {
	in  []float64
	out []float64
}

// NewCurve builds a curve from matching input and output points. Inputs must
// be finite and non-decreasing; there must be at least two points.
func NewCurve(in, out []float64) (Curve, error) {
	if len(in) < 2 {
		return Curve{}, fmt.Errorf("curve needs at least 2 points, got %d", len(in))
	}
	if len(in) != len(out) {
		return Curve{}, fmt.Errorf("curve has %d inputs but %d outputs", len(in), len(out))
	}
	for i := range in {
		if !isFinite(in[i]) || !isFinite(out[i]) {
			return Curve{}, fmt.Errorf("curve point %d is not finite", i)
		}
		if i > 0 && in[i] < in[i-1] {
			return Curve{}, fmt.Errorf("curve inputs must be non-decreasing: %g after %g", in[i], in[i-1])
		}
	}
	return Curve{
		in:  append([]float64(nil), in...),
		out: append([]float64(nil), out...),
	}, nil
}

// mustCurve is for curves built from already validated bounds.
func mustCurve(in, out []float64) Curve {
	c, err := NewCurve(in, out)
	if err != nil {
		panic(err)
	}
	return c
}

// At evaluates the curve. NaN evaluates as the start of the range.
func (c Curve) At(x float64) float64 {
	last := len(c.in) - 1
	if math.IsNaN(x) || x <= c.in[0] {
		return c.out[0]
	}
	if x >= c.in[last] {
		return c.out[last]
	}
	// Zero-width segments (equal inputs) are skipped by the strict compare.
	for i := 1; i <= last; i++ {
		if x < c.in[i] {
			x0, x1 := c.in[i-1], c.in[i]
			y0, y1 := c.out[i-1], c.out[i]
			t := (x - x0) / (x1 - x0)
			return y0 + t*(y1-y0)
		}
	}
	return c.out[last]
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
