// Package devcaps builds a validated, queryable capability record from a
// device's eSCL ScannerCapabilities document and selects scan
// resolutions against it.
package devcaps

import (
	"github.com/MeKo-Tech/escl/internal/scanmath"
)

// SourceID identifies one scan input of the device.
type SourceID int

const (
	// SourcePlaten is the flatbed glass.
	SourcePlaten SourceID = iota
	// SourceADFSimplex is the document feeder, single-sided.
	SourceADFSimplex
	// SourceADFDuplex is the document feeder, double-sided.
	SourceADFDuplex
)

func (id SourceID) String() string {
	switch id {
	case SourcePlaten:
		return "Flatbed"
	case SourceADFSimplex:
		return "ADF"
	case SourceADFDuplex:
		return "ADF Duplex"
	}
	return "Unknown"
}

// Source describes the capabilities of a single scan source.
type Source struct {
	// Pixel bounds at the 300 DPI reference resolution.
	MinWidth  int
	MaxWidth  int
	MinHeight int
	MaxHeight int

	// Physical window bounds in millimeters, derived from the pixel
	// bounds. Valid only when Flags has FlagHasSize.
	WindowX scanmath.FixedRange
	WindowY scanmath.FixedRange

	// Resolutions is the sorted discrete resolution list. Valid only
	// when Flags has FlagResolutionDiscrete.
	Resolutions []int

	// ResRange is the merged X/Y resolution range. Valid only when
	// Flags has FlagResolutionRange. The two representations are
	// mutually exclusive.
	ResRange scanmath.Range

	ColorModes ColorModeSet
	Formats    FormatSet
	Flags      SourceFlags
}

// Capabilities is the validated capability record of one device.
type Capabilities struct {
	Vendor string
	Model  string

	// Sources lists the present sources in fixed precedence order:
	// platen, ADF simplex, ADF duplex.
	Sources []SourceID

	Platen     *Source
	ADFSimplex *Source
	ADFDuplex  *Source
}

// Source returns the capability record for the given source, or nil
// when the device does not have it.
func (c *Capabilities) Source(id SourceID) *Source {
	switch id {
	case SourcePlaten:
		return c.Platen
	case SourceADFSimplex:
		return c.ADFSimplex
	case SourceADFDuplex:
		return c.ADFDuplex
	}
	return nil
}

// ChooseResolution picks the supported resolution closest to wanted.
// For discrete sources the nearest list entry wins, with ties resolved
// toward the smaller value; for range sources wanted is fitted into the
// range. The result is always a valid resolution of the source.
func (s *Source) ChooseResolution(wanted int) int {
	if !s.Flags.Has(FlagResolutionDiscrete) {
		return s.ResRange.Fit(wanted)
	}

	best := s.Resolutions[0]
	delta := abs(wanted - best)
	for _, res := range s.Resolutions[1:] {
		if d := abs(wanted - res); d < delta {
			best, delta = res, d
		}
	}
	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
