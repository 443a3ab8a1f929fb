package imgdecode

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grayJPEG(t *testing.T, w, h int, v uint8) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func colorJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func grayPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(y * 10)})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestJPEGGrayscaleSession(t *testing.T) {
	dec := NewJPEG()
	defer dec.Close()

	require.NoError(t, dec.Begin(grayJPEG(t, 17, 5, 128)))

	assert.Equal(t, 1, dec.BytesPerPixel())
	params := dec.Params()
	assert.Equal(t, 17, params.PixelsPerLine)
	assert.Equal(t, 5, params.Lines)
	assert.Equal(t, 17, params.BytesPerLine)
	assert.Equal(t, 8, params.Depth)
	assert.Equal(t, FrameGray, params.Format)
	assert.True(t, params.LastFrame)

	buf := make([]byte, params.BytesPerLine)
	for i := 0; i < params.Lines; i++ {
		require.NoError(t, dec.ReadLine(buf))
		// JPEG is lossy; a flat field survives within a small delta.
		assert.InDelta(t, 128, int(buf[0]), 3)
	}

	err := dec.ReadLine(buf)
	assert.ErrorIs(t, err, ErrEndOfImage)
}

func TestJPEGColorSession(t *testing.T) {
	dec := NewJPEG()
	defer dec.Close()

	require.NoError(t, dec.Begin(colorJPEG(t, 8, 4)))

	assert.Equal(t, 3, dec.BytesPerPixel())
	params := dec.Params()
	assert.Equal(t, FrameRGB, params.Format)
	assert.Equal(t, 24, params.BytesPerLine)

	buf := make([]byte, params.BytesPerLine)
	require.NoError(t, dec.ReadLine(buf))
	assert.InDelta(t, 200, int(buf[0]), 8)
	assert.InDelta(t, 100, int(buf[1]), 8)
	assert.InDelta(t, 50, int(buf[2]), 8)
}

func TestJPEGInvalidHeader(t *testing.T) {
	dec := NewJPEG()
	defer dec.Close()

	err := dec.Begin([]byte("not a jpeg at all"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JPEG")

	// The decoder stays usable after a failed Begin.
	dec.Reset()
	require.NoError(t, dec.Begin(grayJPEG(t, 4, 4, 77)))
	assert.Equal(t, 1, dec.BytesPerPixel())
}

func TestJPEGTruncatedBody(t *testing.T) {
	full := grayJPEG(t, 64, 64, 90)

	dec := NewJPEG()
	defer dec.Close()

	err := dec.Begin(full[:len(full)/2])
	require.Error(t, err)

	// Reset after the fault, then a clean retry.
	dec.Reset()
	require.NoError(t, dec.Begin(full))
}

func TestJPEGSetWindowReturnsFullBounds(t *testing.T) {
	dec := NewJPEG()
	defer dec.Close()
	require.NoError(t, dec.Begin(grayJPEG(t, 20, 10, 1)))

	// The engine cannot crop; the returned window is authoritative.
	win, err := dec.SetWindow(Window{XOff: 5, YOff: 5, Width: 4, Height: 2})
	require.NoError(t, err)
	assert.Equal(t, Window{XOff: 0, YOff: 0, Width: 20, Height: 10}, win)
}

func TestJPEGReadLineShortBuffer(t *testing.T) {
	dec := NewJPEG()
	defer dec.Close()
	require.NoError(t, dec.Begin(grayJPEG(t, 16, 2, 1)))

	err := dec.ReadLine(make([]byte, 3))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEndOfImage)
}

func TestJPEGResetMidSession(t *testing.T) {
	dec := NewJPEG()
	defer dec.Close()
	require.NoError(t, dec.Begin(grayJPEG(t, 4, 4, 10)))

	buf := make([]byte, 4)
	require.NoError(t, dec.ReadLine(buf))
	dec.Reset()

	// Post-Reset the instance is back to the pre-Begin state.
	assert.Equal(t, 0, dec.BytesPerPixel())
	require.NoError(t, dec.Begin(grayJPEG(t, 4, 4, 10)))
	for i := 0; i < 4; i++ {
		require.NoError(t, dec.ReadLine(buf))
	}
	assert.ErrorIs(t, dec.ReadLine(buf), ErrEndOfImage)
}

func TestPNGGrayscaleExactLines(t *testing.T) {
	dec := NewPNG()
	defer dec.Close()

	require.NoError(t, dec.Begin(grayPNG(t, 6, 3)))
	assert.Equal(t, 1, dec.BytesPerPixel())

	params := dec.Params()
	buf := make([]byte, params.BytesPerLine)
	for y := 0; y < 3; y++ {
		require.NoError(t, dec.ReadLine(buf))
		// PNG is lossless; rows come back exactly.
		assert.Equal(t, byte(y*10), buf[0])
		assert.Equal(t, byte(y*10), buf[5])
	}
	assert.ErrorIs(t, dec.ReadLine(buf), ErrEndOfImage)
}

func TestPNGColor(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	img.Set(1, 0, color.NRGBA{R: 4, G: 5, B: 6, A: 255})
	var encoded bytes.Buffer
	require.NoError(t, png.Encode(&encoded, img))

	dec := NewPNG()
	defer dec.Close()
	require.NoError(t, dec.Begin(encoded.Bytes()))

	assert.Equal(t, 3, dec.BytesPerPixel())
	buf := make([]byte, 6)
	require.NoError(t, dec.ReadLine(buf))
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, buf)
}

func TestPNGInvalidHeader(t *testing.T) {
	dec := NewPNG()
	defer dec.Close()

	err := dec.Begin([]byte{0x89, 'P', 'N'})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PNG")
	dec.Reset()
}

func TestPDFInvalidDocument(t *testing.T) {
	dec := NewPDF()
	defer dec.Close()

	err := dec.Begin([]byte("%PDF-1.4 truncated garbage"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PDF")

	// Still resettable and closable after the failure.
	dec.Reset()
	assert.Equal(t, 0, dec.BytesPerPixel())
}

func TestNewDecoderByContentType(t *testing.T) {
	tests := []struct {
		contentType string
		want        string
	}{
		{"image/jpeg", "image/jpeg"},
		{"IMAGE/JPEG", "image/jpeg"},
		{"image/jpeg; some=param", "image/jpeg"},
		{"image/png", "image/png"},
		{"application/pdf", "application/pdf"},
	}
	for _, tt := range tests {
		dec, err := NewDecoder(tt.contentType)
		require.NoError(t, err, tt.contentType)
		assert.Equal(t, tt.want, dec.ContentType())
		dec.Close()
	}

	_, err := NewDecoder("image/tiff")
	assert.Error(t, err)
}

func TestIndependentInstances(t *testing.T) {
	gray := grayJPEG(t, 4, 2, 60)
	rgb := colorJPEG(t, 4, 2)

	a := NewJPEG()
	b := NewJPEG()
	defer a.Close()
	defer b.Close()

	require.NoError(t, a.Begin(gray))
	require.NoError(t, b.Begin(rgb))

	// Driving one instance does not disturb the other.
	buf := make([]byte, 12)
	require.NoError(t, a.ReadLine(buf))
	assert.Equal(t, 1, a.BytesPerPixel())
	assert.Equal(t, 3, b.BytesPerPixel())
}

func TestEngineErrorMessage(t *testing.T) {
	err := capture("JPEG", func() error {
		panic("quantization table overflow")
	})

	var engineErr *EngineError
	require.ErrorAs(t, err, &engineErr)
	assert.Equal(t, "JPEG", engineErr.Op)
	assert.Contains(t, err.Error(), "quantization table overflow")
}
