package imgdecode

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
)

// pngDecoder decodes image/png with the same session contract as the
// JPEG variant.
type pngDecoder struct {
	frame frame
}

// NewPNG creates a PNG decoder.
func NewPNG() Decoder {
	return &pngDecoder{}
}

func (d *pngDecoder) ContentType() string { return "image/png" }

func (d *pngDecoder) Begin(data []byte) error {
	d.frame.reset()

	return capture("PNG", func() error {
		cfg, err := png.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("PNG: invalid header: %w", err)
		}

		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("PNG: %w", err)
		}

		// Scanlines are 8-bit; deep grayscale collapses to one byte
		// per pixel rather than widening to RGB.
		if cfg.ColorModel == color.GrayModel || cfg.ColorModel == color.Gray16Model {
			d.frame.bind(grayFrom(img))
		} else {
			d.frame.bind(img)
		}
		return nil
	})
}

func (d *pngDecoder) BytesPerPixel() int {
	return d.frame.components
}

func (d *pngDecoder) Params() Params {
	return d.frame.params()
}

func (d *pngDecoder) SetWindow(win Window) (Window, error) {
	return d.frame.fullWindow(), nil
}

func (d *pngDecoder) ReadLine(buf []byte) error {
	return capture("PNG", func() error {
		return d.frame.readLine(buf)
	})
}

func (d *pngDecoder) Reset() {
	d.frame.reset()
}

func (d *pngDecoder) Close() {
	d.frame.reset()
}
