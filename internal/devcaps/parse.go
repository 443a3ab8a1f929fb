package devcaps

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"unicode"

	"github.com/MeKo-Tech/escl/internal/scanmath"
	"github.com/MeKo-Tech/escl/internal/xmltree"
)

// ParseError describes a fatal defect in a capability document. Any
// ParseError aborts the whole build; callers never see a partially
// populated record.
type ParseError struct {
	Element string // offending element, when known
	Reason  string
}

func (e *ParseError) Error() string {
	if e.Element == "" {
		return "capabilities: " + e.Reason
	}
	return fmt.Sprintf("capabilities: %s: %s", e.Element, e.Reason)
}

// Parse builds a capability record from a parsed ScannerCapabilities
// document. Parsing is all-or-nothing: on error the returned record is
// nil and nothing of the failed build survives.
func Parse(root *xmltree.Node) (*Capabilities, error) {
	if root == nil || root.Name != "scan:ScannerCapabilities" {
		return nil, &ParseError{Element: "scan:ScannerCapabilities", Reason: "element missing"}
	}

	caps := &Capabilities{}
	var model, makeAndModel string

	cur := xmltree.NewCursor(root)
	cur.Enter()
	for ; !cur.End(); cur.Next() {
		var err error

		switch cur.Name() {
		case "pwg:ModelName":
			model = cur.Text()
		case "pwg:MakeAndModel":
			makeAndModel = cur.Text()
		case "scan:Platen":
			cur.Enter()
			for ; err == nil && !cur.End(); cur.Next() {
				if cur.Name() == "scan:PlatenInputCaps" {
					err = parseSource(cur, SourcePlaten, &caps.Platen)
				}
			}
			cur.Leave()
		case "scan:Adf":
			cur.Enter()
			for ; err == nil && !cur.End(); cur.Next() {
				switch cur.Name() {
				case "scan:AdfSimplexInputCaps":
					err = parseSource(cur, SourceADFSimplex, &caps.ADFSimplex)
				case "scan:AdfDuplexInputCaps":
					err = parseSource(cur, SourceADFDuplex, &caps.ADFDuplex)
				}
			}
			cur.Leave()
		}

		if err != nil {
			return nil, err
		}
	}

	caps.Vendor, caps.Model = identity(model, makeAndModel)

	for _, id := range []SourceID{SourcePlaten, SourceADFSimplex, SourceADFDuplex} {
		if caps.Source(id) != nil {
			caps.Sources = append(caps.Sources, id)
		}
	}

	return caps, nil
}

// identity derives the vendor and model strings. The vendor is the
// make-and-model string with the model stripped off its tail; when that
// does not match, the vendor is unknown.
func identity(model, makeAndModel string) (vendor, outModel string) {
	if model != "" && len(makeAndModel) > len(model) &&
		strings.HasSuffix(makeAndModel, model) {
		vendor = strings.TrimRightFunc(
			makeAndModel[:len(makeAndModel)-len(model)], unicode.IsSpace)
	}
	if vendor == "" {
		vendor = "Unknown"
	}

	outModel = model
	if outModel == "" {
		outModel = makeAndModel
	}
	return vendor, outModel
}

// parseSource parses one *InputCaps section into its slot. A section
// for an already-filled slot is silently dropped; the first definition
// wins and the duplicate is not an error.
func parseSource(cur *xmltree.Cursor, id SourceID, slot **Source) error {
	src := &Source{}

	cur.Enter()
	var err error
	for ; err == nil && !cur.End(); cur.Next() {
		switch cur.Name() {
		case "scan:MinWidth":
			src.MinWidth, err = uintField(cur)
		case "scan:MaxWidth":
			src.MaxWidth, err = uintField(cur)
		case "scan:MinHeight":
			src.MinHeight, err = uintField(cur)
		case "scan:MaxHeight":
			src.MaxHeight, err = uintField(cur)
		case "scan:SettingProfiles":
			err = parseSettingProfiles(cur, src)
		}
	}
	cur.Leave()

	if err != nil {
		return err
	}

	// Discrete wins when a source advertises both representations.
	if src.Flags.Has(FlagResolutionDiscrete) {
		src.Flags &^= FlagResolutionRange
	}
	if !src.Flags.Has(FlagResolutionDiscrete) && !src.Flags.Has(FlagResolutionRange) {
		return &ParseError{Element: "scan:SupportedResolutions",
			Reason: "source resolutions are not defined"}
	}

	if err := deriveWindow(src); err != nil {
		return err
	}

	if *slot == nil {
		*slot = src
	} else {
		slog.Debug("devcaps: duplicate source definition ignored", "source", id.String())
	}
	return nil
}

// deriveWindow validates the pixel bounds and computes the physical
// window at the 300 DPI reference resolution.
func deriveWindow(src *Source) error {
	if src.MaxWidth == 0 || src.MaxHeight == 0 {
		return nil
	}

	if src.MinWidth >= src.MaxWidth {
		return &ParseError{Element: "scan:MinWidth",
			Reason: "invalid scan:MinWidth or scan:MaxWidth"}
	}
	if src.MinHeight >= src.MaxHeight {
		return &ParseError{Element: "scan:MinHeight",
			Reason: "invalid scan:MinHeight or scan:MaxHeight"}
	}

	src.Flags |= FlagHasSize
	src.WindowX = scanmath.FixedRange{
		Min: scanmath.MillimetersFromPixels(src.MinWidth),
		Max: scanmath.MillimetersFromPixels(src.MaxWidth),
	}
	src.WindowY = scanmath.FixedRange{
		Min: scanmath.MillimetersFromPixels(src.MinHeight),
		Max: scanmath.MillimetersFromPixels(src.MaxHeight),
	}
	return nil
}

// parseSettingProfiles accumulates color modes, document formats and
// resolutions across all profiles of the source. Profiles union; a
// later profile never overwrites an earlier one.
func parseSettingProfiles(cur *xmltree.Cursor, src *Source) error {
	var err error

	cur.Enter()
	for ; err == nil && !cur.End(); cur.Next() {
		if cur.Name() != "scan:SettingProfile" {
			continue
		}
		cur.Enter()
		for ; err == nil && !cur.End(); cur.Next() {
			switch cur.Name() {
			case "scan:ColorModes":
				parseColorModes(cur, src)
			case "scan:DocumentFormats":
				parseDocumentFormats(cur, src)
			case "scan:SupportedResolutions":
				err = parseResolutions(cur, src)
			}
		}
		cur.Leave()
	}
	cur.Leave()

	return err
}

// parseColorModes handles scan:ColorModes. Unknown modes are skipped.
func parseColorModes(cur *xmltree.Cursor, src *Source) {
	cur.Enter()
	for ; !cur.End(); cur.Next() {
		if cur.Name() != "scan:ColorMode" {
			continue
		}
		switch cur.Text() {
		case "BlackAndWhite1":
			src.ColorModes.Add(ColorModeMono1)
		case "Grayscale8":
			src.ColorModes.Add(ColorModeGray8)
		case "RGB24":
			src.ColorModes.Add(ColorModeRGB24)
		}
	}
	cur.Leave()
}

// parseDocumentFormats handles scan:DocumentFormats. MIME types match
// case-insensitively; unknown formats are skipped.
func parseDocumentFormats(cur *xmltree.Cursor, src *Source) {
	cur.Enter()
	for ; !cur.End(); cur.Next() {
		if cur.Name() != "pwg:DocumentFormat" && cur.Name() != "scan:DocumentFormatExt" {
			continue
		}
		switch strings.ToLower(cur.Text()) {
		case "image/jpeg":
			src.Formats.Add(FormatJPEG)
		case "image/png":
			src.Formats.Add(FormatPNG)
		case "application/pdf":
			src.Formats.Add(FormatPDF)
		}
	}
	cur.Leave()
}

// parseResolutions handles scan:SupportedResolutions.
func parseResolutions(cur *xmltree.Cursor, src *Source) error {
	var err error

	cur.Enter()
	for ; err == nil && !cur.End(); cur.Next() {
		switch cur.Name() {
		case "scan:DiscreteResolutions":
			err = parseDiscreteResolutions(cur, src)
		case "scan:ResolutionRange":
			err = parseResolutionRange(cur, src)
		}
	}
	cur.Leave()

	return err
}

// parseDiscreteResolutions collects the enumerated resolution list. An
// entry counts only when its X and Y values are both present, non-zero
// and equal.
func parseDiscreteResolutions(cur *xmltree.Cursor, src *Source) error {
	var err error

	cur.Enter()
	for ; err == nil && !cur.End(); cur.Next() {
		if cur.Name() != "scan:DiscreteResolution" {
			continue
		}

		var x, y int
		cur.Enter()
		for ; err == nil && !cur.End(); cur.Next() {
			switch cur.Name() {
			case "scan:XResolution":
				x, err = uintField(cur)
			case "scan:YResolution":
				y, err = uintField(cur)
			}
		}
		cur.Leave()

		if err == nil && x != 0 && y != 0 && x == y {
			src.Resolutions = append(src.Resolutions, x)
		}
	}
	cur.Leave()

	if err == nil && len(src.Resolutions) > 0 {
		sort.Ints(src.Resolutions)
		src.Flags |= FlagResolutionDiscrete
	}
	return err
}

// parseResolutionRange reads the X and Y ranges independently and merges
// them. The axes must agree after step normalization; a divergence is a
// document defect, not a pick-one situation.
func parseResolutionRange(cur *xmltree.Cursor, src *Source) error {
	var err error
	var rangeX, rangeY scanmath.Range

	cur.Enter()
	for ; err == nil && !cur.End(); cur.Next() {
		var axis *scanmath.Range
		switch cur.Name() {
		case "scan:XResolution":
			axis = &rangeX
		case "scan:YResolution":
			axis = &rangeY
		}
		if axis == nil {
			continue
		}

		cur.Enter()
		for ; err == nil && !cur.End(); cur.Next() {
			switch cur.Name() {
			case "scan:Min":
				axis.Min, err = uintField(cur)
			case "scan:Max":
				axis.Max, err = uintField(cur)
			case "scan:Step":
				axis.Quant, err = uintField(cur)
			}
		}
		cur.Leave()
	}
	cur.Leave()

	if err != nil {
		return err
	}

	if !rangeX.Valid() {
		return &ParseError{Element: "scan:XResolution", Reason: "invalid range"}
	}
	if !rangeY.Valid() {
		return &ParseError{Element: "scan:YResolution", Reason: "invalid range"}
	}

	merged, ok := scanmath.Merge(rangeX, rangeY)
	if !ok {
		return &ParseError{Element: "scan:ResolutionRange",
			Reason: "incompatible scan:XResolution and scan:YResolution ranges"}
	}

	src.ResRange = merged
	src.Flags |= FlagResolutionRange
	return nil
}

// uintField reads the current element's numeric value, reporting the
// offending element on failure.
func uintField(cur *xmltree.Cursor) (int, error) {
	v, err := cur.Uint()
	if err != nil {
		return 0, &ParseError{Element: cur.Name(),
			Reason: fmt.Sprintf("invalid value %q", cur.Text())}
	}
	return v, nil
}
