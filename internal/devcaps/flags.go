package devcaps

import "strings"

// ColorMode is one color mode a scan source can produce.
type ColorMode uint8

const (
	// ColorModeMono1 is 1-bit black and white.
	ColorModeMono1 ColorMode = 1 << iota
	// ColorModeGray8 is 8-bit grayscale.
	ColorModeGray8
	// ColorModeRGB24 is 24-bit color.
	ColorModeRGB24
)

// ColorModeSet is a set of color modes.
type ColorModeSet uint8

// Add adds a mode to the set.
func (s *ColorModeSet) Add(m ColorMode) { *s |= ColorModeSet(m) }

// Has reports whether the set contains the mode.
func (s ColorModeSet) Has(m ColorMode) bool { return s&ColorModeSet(m) != 0 }

// Empty reports whether no mode is set.
func (s ColorModeSet) Empty() bool { return s == 0 }

func (s ColorModeSet) String() string {
	var names []string
	if s.Has(ColorModeMono1) {
		names = append(names, "BlackAndWhite1")
	}
	if s.Has(ColorModeGray8) {
		names = append(names, "Grayscale8")
	}
	if s.Has(ColorModeRGB24) {
		names = append(names, "RGB24")
	}
	return strings.Join(names, ",")
}

// Format is one document format a scan source can return.
type Format uint8

const (
	// FormatJPEG is image/jpeg.
	FormatJPEG Format = 1 << iota
	// FormatPNG is image/png.
	FormatPNG
	// FormatPDF is application/pdf.
	FormatPDF
)

// FormatSet is a set of document formats.
type FormatSet uint8

// Add adds a format to the set.
func (s *FormatSet) Add(f Format) { *s |= FormatSet(f) }

// Has reports whether the set contains the format.
func (s FormatSet) Has(f Format) bool { return s&FormatSet(f) != 0 }

// Empty reports whether no format is set.
func (s FormatSet) Empty() bool { return s == 0 }

func (s FormatSet) String() string {
	var names []string
	if s.Has(FormatJPEG) {
		names = append(names, "image/jpeg")
	}
	if s.Has(FormatPNG) {
		names = append(names, "image/png")
	}
	if s.Has(FormatPDF) {
		names = append(names, "application/pdf")
	}
	return strings.Join(names, ",")
}

// SourceFlags records which optional source attributes were actually
// parsed out of the capability document.
type SourceFlags uint8

const (
	// FlagResolutionDiscrete is set when the source advertises an
	// enumerated resolution list.
	FlagResolutionDiscrete SourceFlags = 1 << iota
	// FlagResolutionRange is set when the source advertises a
	// continuous resolution range.
	FlagResolutionRange
	// FlagHasSize is set when the physical window bounds were derived.
	FlagHasSize
)

// Has reports whether all given flags are set.
func (f SourceFlags) Has(mask SourceFlags) bool { return f&mask == mask }
