package imgdecode

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/disintegration/imaging"
)

// frame holds one decoded image and the scanline read position. It is
// the state shared by every raster-backed decoder variant.
type frame struct {
	width      int
	height     int
	components int

	gray *image.Gray  // 1-component frames
	rgb  *image.NRGBA // 3-component frames

	linesLeft int
	nextLine  int
}

// bind normalizes the decoded image into scanline-friendly storage.
// Grayscale frames keep one byte per pixel; everything else becomes
// NRGBA with the alpha channel dropped on read.
func (f *frame) bind(img image.Image) {
	bounds := img.Bounds()
	f.width = bounds.Dx()
	f.height = bounds.Dy()
	f.linesLeft = f.height
	f.nextLine = 0

	if g, ok := img.(*image.Gray); ok {
		f.components = 1
		f.gray = g
		f.rgb = nil
		return
	}

	f.components = 3
	f.gray = nil
	f.rgb = imaging.Clone(img)
}

// active reports whether an image is bound.
func (f *frame) active() bool {
	return f.gray != nil || f.rgb != nil
}

func (f *frame) params() Params {
	p := Params{
		PixelsPerLine: f.width,
		Lines:         f.height,
		Depth:         8,
		LastFrame:     true,
	}
	if f.components == 1 {
		p.Format = FrameGray
		p.BytesPerLine = f.width
	} else {
		p.Format = FrameRGB
		p.BytesPerLine = f.width * 3
	}
	return p
}

func (f *frame) fullWindow() Window {
	return Window{Width: f.width, Height: f.height}
}

// readLine copies the next scanline into buf.
func (f *frame) readLine(buf []byte) error {
	if f.linesLeft == 0 {
		return ErrEndOfImage
	}

	bytesPerLine := f.width * f.components
	if len(buf) < bytesPerLine {
		return fmt.Errorf("imgdecode: line buffer too small: %d < %d",
			len(buf), bytesPerLine)
	}

	row := f.nextLine
	if f.gray != nil {
		off := row * f.gray.Stride
		copy(buf, f.gray.Pix[off:off+f.width])
	} else {
		off := row * f.rgb.Stride
		src := f.rgb.Pix[off : off+f.width*4]
		for x := 0; x < f.width; x++ {
			buf[x*3] = src[x*4]
			buf[x*3+1] = src[x*4+1]
			buf[x*3+2] = src[x*4+2]
		}
	}

	f.nextLine++
	f.linesLeft--
	return nil
}

// reset drops the bound image and read position.
func (f *frame) reset() {
	*f = frame{}
}

// grayFrom converts an arbitrary decoded image to packed 8-bit gray.
func grayFrom(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	bounds := img.Bounds()
	g := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(g, g.Bounds(), img, bounds.Min, draw.Src)
	return g
}
