package cmd

import (
	"fmt"
	"image"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/MeKo-Tech/escl/internal/imgdecode"
	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
)

// decodeCmd represents the decode command.
var decodeCmd = &cobra.Command{
	Use:   "decode <image file>",
	Short: "Decode a device-returned image through the scanline pipeline",
	Long: `Decode a compressed image the way the backend does during a scan:
select a decoder by content type, pull the image line by line and report
the decoded parameters.

The content type is taken from --type, or guessed from the file
extension and content.

Examples:
  escl decode page.jpg
  escl decode page.pdf --output page.png`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		contentType, _ := cmd.Flags().GetString("type")
		output, _ := cmd.Flags().GetString("output")

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		if contentType == "" {
			contentType = guessContentType(args[0], data)
		}

		dec, err := imgdecode.NewDecoder(contentType)
		if err != nil {
			return err
		}
		defer dec.Close()

		if err := dec.Begin(data); err != nil {
			return err
		}

		params := dec.Params()
		win, err := dec.SetWindow(imgdecode.Window{Width: params.PixelsPerLine, Height: params.Lines})
		if err != nil {
			return err
		}
		slog.Debug("decode session started",
			"type", contentType, "width", win.Width, "height", win.Height,
			"format", params.Format.String())

		img, err := pullScanlines(dec, params)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s: %dx%d, %d bytes/pixel, %s\n",
			args[0], params.PixelsPerLine, params.Lines, dec.BytesPerPixel(),
			params.Format)

		if output != "" {
			if err := imaging.Save(img, output); err != nil {
				return fmt.Errorf("saving %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", output)
		}
		return nil
	},
}

// pullScanlines drains the decoder one line at a time and reassembles
// the frame, the same pull loop the image-reception pipeline runs.
func pullScanlines(dec imgdecode.Decoder, params imgdecode.Params) (image.Image, error) {
	line := make([]byte, params.BytesPerLine)

	if params.Format == imgdecode.FrameGray {
		img := image.NewGray(image.Rect(0, 0, params.PixelsPerLine, params.Lines))
		for y := 0; y < params.Lines; y++ {
			if err := dec.ReadLine(line); err != nil {
				return nil, err
			}
			copy(img.Pix[y*img.Stride:], line[:params.BytesPerLine])
		}
		return img, nil
	}

	img := image.NewNRGBA(image.Rect(0, 0, params.PixelsPerLine, params.Lines))
	for y := 0; y < params.Lines; y++ {
		if err := dec.ReadLine(line); err != nil {
			return nil, err
		}
		for x := 0; x < params.PixelsPerLine; x++ {
			off := y*img.Stride + x*4
			img.Pix[off] = line[x*3]
			img.Pix[off+1] = line[x*3+1]
			img.Pix[off+2] = line[x*3+2]
			img.Pix[off+3] = 0xff
		}
	}
	return img, nil
}

// guessContentType maps the file to one of the protocol's wire formats.
func guessContentType(path string, data []byte) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".pdf":
		return "application/pdf"
	}
	return http.DetectContentType(data)
}

func init() {
	decodeCmd.Flags().String("type", "", "MIME content type of the input (default: guessed)")
	decodeCmd.Flags().String("output", "", "write the decoded frame to this file")
	rootCmd.AddCommand(decodeCmd)
}
