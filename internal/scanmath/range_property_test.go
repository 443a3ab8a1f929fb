package scanmath

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genRange generates a valid, possibly quantized range.
func genRange() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(1, 1200),
		gen.IntRange(0, 2400),
		gen.IntRange(0, 100),
	).Map(func(vals []interface{}) Range {
		min := vals[0].(int)
		return Range{Min: min, Max: min + vals[1].(int), Quant: vals[2].(int)}.Normalize()
	})
}

// TestFit_ResultWithinBounds verifies Fit never escapes [Min, Max].
func TestFit_ResultWithinBounds(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("fitted value lies within the range", prop.ForAll(
		func(r Range, wanted int) bool {
			fitted := r.Fit(wanted)
			return fitted >= r.Min && fitted <= r.Max
		},
		genRange(),
		gen.IntRange(-5000, 5000),
	))

	properties.TestingRun(t)
}

// TestFit_ResultOnQuantizationGrid verifies quantized results sit on
// Min + n*Quant.
func TestFit_ResultOnQuantizationGrid(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("fitted value is a valid quantization step", prop.ForAll(
		func(r Range, wanted int) bool {
			if r.Quant == 0 {
				return true
			}
			fitted := r.Fit(wanted)
			// Min and Max are always legal, even off the grid.
			if fitted == r.Min || fitted == r.Max {
				return true
			}
			return (fitted-r.Min)%r.Quant == 0
		},
		genRange(),
		gen.IntRange(-5000, 5000),
	))

	properties.TestingRun(t)
}

// TestFit_InRangeWantedIsStable verifies an already-valid wanted value
// is returned unchanged for continuous ranges.
func TestFit_InRangeWantedIsStable(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("continuous ranges keep in-bounds values", prop.ForAll(
		func(r Range, wanted int) bool {
			if r.Quant != 0 || wanted < r.Min || wanted > r.Max {
				return true
			}
			return r.Fit(wanted) == wanted
		},
		genRange(),
		gen.IntRange(0, 3600),
	))

	properties.TestingRun(t)
}
