package devcaps

import (
	"fmt"
	"io"
)

// Dump renders the record as free-form text for troubleshooting. The
// output is not a machine-readable contract.
func (c *Capabilities) Dump(w io.Writer) {
	fmt.Fprintln(w, "===== device capabilities =====")
	fmt.Fprintf(w, "  Model: %s\n", c.Model)
	fmt.Fprintf(w, "  Vendor: %s\n", c.Vendor)

	fmt.Fprintf(w, "  Sources:")
	for _, id := range c.Sources {
		fmt.Fprintf(w, " %q", id.String())
	}
	fmt.Fprintln(w)

	for _, id := range c.Sources {
		src := c.Source(id)
		fmt.Fprintf(w, "  %s:\n", id)
		fmt.Fprintf(w, "    Min Width/Height: %d/%d\n", src.MinWidth, src.MinHeight)
		fmt.Fprintf(w, "    Max Width/Height: %d/%d\n", src.MaxWidth, src.MaxHeight)

		if src.Flags.Has(FlagHasSize) {
			fmt.Fprintf(w, "    Window, mm: %s-%s x %s-%s\n",
				src.WindowX.Min, src.WindowX.Max,
				src.WindowY.Min, src.WindowY.Max)
		}

		if src.Flags.Has(FlagResolutionDiscrete) {
			fmt.Fprintf(w, "    Resolutions:")
			for _, res := range src.Resolutions {
				fmt.Fprintf(w, " %d", res)
			}
			fmt.Fprintln(w)
		}
		if src.Flags.Has(FlagResolutionRange) {
			fmt.Fprintf(w, "    Resolution range: %d-%d", src.ResRange.Min, src.ResRange.Max)
			if src.ResRange.Quant != 0 {
				fmt.Fprintf(w, " step %d", src.ResRange.Quant)
			}
			fmt.Fprintln(w)
		}

		if !src.ColorModes.Empty() {
			fmt.Fprintf(w, "    Color modes: %s\n", src.ColorModes)
		}
		if !src.Formats.Empty() {
			fmt.Fprintf(w, "    Formats: %s\n", src.Formats)
		}
	}
}
