// Package scanmath provides the value primitives of the scanner
// protocol: quantized ranges in the SANE style and the 16.16 fixed-point
// representation used for physical (millimeter) window bounds.
package scanmath

// Range is an inclusive interval with an optional quantization step.
// Quant == 0 means the range is continuous (unconstrained). A step of 1
// carries no information and is normalized to 0.
type Range struct {
	Min   int
	Max   int
	Quant int
}

// Normalize folds the no-op quantization step 1 into 0.
func (r Range) Normalize() Range {
	if r.Quant == 1 {
		r.Quant = 0
	}
	return r
}

// Valid reports whether the range is well-formed.
func (r Range) Valid() bool {
	return r.Min <= r.Max
}

// Fit clamps wanted into the range and, for quantized ranges, rounds to
// the nearest value of the form Min + n*Quant that still lies within the
// bounds.
func (r Range) Fit(wanted int) int {
	if wanted < r.Min {
		return r.Min
	}
	if wanted > r.Max {
		return r.Max
	}
	if r.Quant == 0 {
		return wanted
	}

	steps := (wanted - r.Min + r.Quant/2) / r.Quant
	fitted := r.Min + steps*r.Quant
	// Max is always a legal value, even when it is off the grid.
	if fitted > r.Max {
		fitted = r.Max
	}
	return fitted
}

// Merge combines the per-axis ranges x and y into a single range. The
// two ranges must be equal after step normalization; any divergence
// between the axes is rejected rather than silently preferring one.
func Merge(x, y Range) (Range, bool) {
	x = x.Normalize()
	y = y.Normalize()
	if x != y {
		return Range{}, false
	}
	return x, true
}
