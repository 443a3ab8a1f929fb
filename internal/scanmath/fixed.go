package scanmath

import (
	"fmt"
	"math"
)

// Fixed is a signed 16.16 fixed-point number, the representation SANE
// uses for physical lengths.
type Fixed int32

// ReferenceDPI is the resolution at which eSCL devices express pixel
// dimensions in their capability advertisement.
const ReferenceDPI = 300

// mmPerInch converts inches to millimeters.
const mmPerInch = 25.4

// FixedFromFloat converts a floating-point value to 16.16 fixed point.
func FixedFromFloat(v float64) Fixed {
	return Fixed(math.Round(v * 65536))
}

// Float converts a fixed-point value back to floating point.
func (f Fixed) Float() float64 {
	return float64(f) / 65536
}

// String renders the value with millimeter-grade precision.
func (f Fixed) String() string {
	return fmt.Sprintf("%.2f", f.Float())
}

// MillimetersFromPixels converts a pixel count at the 300 DPI reference
// resolution to millimeters in fixed point.
func MillimetersFromPixels(px int) Fixed {
	return FixedFromFloat(float64(px) * mmPerInch / ReferenceDPI)
}

// FixedRange is an inclusive fixed-point interval, used for the derived
// physical scan window.
type FixedRange struct {
	Min Fixed
	Max Fixed
}
