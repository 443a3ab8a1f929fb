package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/MeKo-Tech/escl/internal/devcaps"
	"github.com/MeKo-Tech/escl/internal/xmltree"
	"github.com/spf13/cobra"
)

// capsCmd represents the caps command.
var capsCmd = &cobra.Command{
	Use:   "caps <capabilities.xml>",
	Short: "Parse and dump a device ScannerCapabilities document",
	Long: `Parse a ScannerCapabilities document as returned by an eSCL device
and dump the resulting capability record.

With --resolution, additionally report the resolution the backend would
select for each source.

Examples:
  escl caps capabilities.xml
  escl caps capabilities.xml --resolution 400`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		wanted, _ := cmd.Flags().GetInt("resolution")

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()

		root, err := xmltree.Parse(f)
		if err != nil {
			return err
		}

		caps, err := devcaps.Parse(root)
		if err != nil {
			return err
		}
		slog.Debug("parsed capabilities",
			"vendor", caps.Vendor, "model", caps.Model, "sources", len(caps.Sources))

		out := cmd.OutOrStdout()
		caps.Dump(out)

		if wanted > 0 {
			if len(caps.Sources) == 0 {
				return errors.New("device advertises no scan sources")
			}
			for _, id := range caps.Sources {
				chosen := caps.Source(id).ChooseResolution(wanted)
				fmt.Fprintf(out, "%s: wanted %d dpi, selected %d dpi\n", id, wanted, chosen)
			}
		}
		return nil
	},
}

func init() {
	capsCmd.Flags().Int("resolution", 0, "report the selected resolution for this wanted value")
	rootCmd.AddCommand(capsCmd)
}
