// Package imgdecode turns device-returned compressed images into
// scanlines. Each supported wire format implements the Decoder contract;
// instances are selected by MIME content type and drive exactly one
// in-memory image per Begin/ReadLine session.
package imgdecode

import (
	"errors"
	"fmt"
	"strings"
)

// ColorFormat is the pixel layout of decoded scanlines.
type ColorFormat int

const (
	// FrameGray is one byte per pixel.
	FrameGray ColorFormat = iota
	// FrameRGB is three bytes per pixel, R G B order.
	FrameRGB
)

func (f ColorFormat) String() string {
	if f == FrameGray {
		return "Gray"
	}
	return "RGB"
}

// Params describes the decoded image, derived purely from its header.
type Params struct {
	PixelsPerLine int
	Lines         int
	BytesPerLine  int
	Depth         int
	Format        ColorFormat
	LastFrame     bool
}

// Window is a crop request in pixels.
type Window struct {
	XOff   int
	YOff   int
	Width  int
	Height int
}

// ErrEndOfImage is returned by ReadLine once every scanline of the
// current image has been consumed.
var ErrEndOfImage = errors.New("imgdecode: end of image")

// Decoder decodes one compressed image per session into scanlines.
//
// The session starts with Begin and ends when ReadLine returns
// ErrEndOfImage, or earlier via Reset. A failed Begin, SetWindow or
// ReadLine leaves the instance valid: Reset returns it to the
// pre-Begin state and a new session may start. A single instance must
// not be driven from multiple goroutines; independent instances are
// fully independent.
type Decoder interface {
	// ContentType returns the MIME type this decoder handles.
	ContentType() string

	// Begin binds one complete compressed image and parses its header.
	Begin(data []byte) error

	// BytesPerPixel returns the component count detected from the
	// header: 1 for grayscale, 3 for color. Valid after Begin.
	BytesPerPixel() int

	// Params returns the image parameters. Valid after Begin.
	Params() Params

	// SetWindow requests a crop. The implementation may answer with
	// the full-image bounds instead; the returned window, not the
	// requested one, is authoritative.
	SetWindow(win Window) (Window, error)

	// ReadLine writes the next scanline, in the layout Params
	// reports, into buf. Returns ErrEndOfImage past the last line.
	ReadLine(buf []byte) error

	// Reset aborts the session and returns to the pre-Begin state.
	// Safe at any time, including right after a fault.
	Reset()

	// Close releases the decoder. The instance is unusable afterward.
	Close()
}

// NewDecoder returns a fresh decoder for the given MIME content type.
// Type parameters (e.g. "; charset=...") are ignored.
func NewDecoder(contentType string) (Decoder, error) {
	mime := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}

	switch mime {
	case "image/jpeg":
		return NewJPEG(), nil
	case "image/png":
		return NewPNG(), nil
	case "application/pdf":
		return NewPDF(), nil
	}
	return nil, fmt.Errorf("imgdecode: unsupported content type %q", contentType)
}
