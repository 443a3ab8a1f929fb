package imgdecode

import (
	"bytes"
	"fmt"
	"image/jpeg"
)

// jpegDecoder decodes image/jpeg, the format every eSCL device is
// required to support. The Go JPEG engine decodes whole frames, so the
// image is decoded at Begin and ReadLine serves rows out of it; the
// engine cannot crop, so SetWindow answers with the full-image bounds.
type jpegDecoder struct {
	frame frame
}

// NewJPEG creates a JPEG decoder.
func NewJPEG() Decoder {
	return &jpegDecoder{}
}

func (d *jpegDecoder) ContentType() string { return "image/jpeg" }

func (d *jpegDecoder) Begin(data []byte) error {
	d.frame.reset()

	return capture("JPEG", func() error {
		if _, err := jpeg.DecodeConfig(bytes.NewReader(data)); err != nil {
			return fmt.Errorf("JPEG: invalid header: %w", err)
		}

		img, err := jpeg.Decode(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("JPEG: %w", err)
		}

		// The engine hands grayscale frames back as packed gray and
		// everything else as YCbCr/CMYK; bind normalizes the latter
		// to RGB, matching the component count from the header.
		d.frame.bind(img)
		return nil
	})
}

func (d *jpegDecoder) BytesPerPixel() int {
	return d.frame.components
}

func (d *jpegDecoder) Params() Params {
	return d.frame.params()
}

func (d *jpegDecoder) SetWindow(win Window) (Window, error) {
	return d.frame.fullWindow(), nil
}

func (d *jpegDecoder) ReadLine(buf []byte) error {
	return capture("JPEG", func() error {
		return d.frame.readLine(buf)
	})
}

func (d *jpegDecoder) Reset() {
	d.frame.reset()
}

func (d *jpegDecoder) Close() {
	d.frame.reset()
}
