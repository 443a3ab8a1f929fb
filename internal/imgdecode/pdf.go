package imgdecode

import (
	"fmt"
	"image"
	_ "image/jpeg" // raster formats pdfcpu extracts to
	_ "image/png"
	"os"
	"path/filepath"
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	_ "golang.org/x/image/tiff" // pdfcpu extracts CCITT images as TIFF
)

// pdfDecoder decodes application/pdf. Scanners that return PDF wrap one
// raster image per page, so the first page's embedded image is the
// scanned frame; pdfcpu extracts it and the scanline contract is then
// served the same way as for the raw raster formats.
type pdfDecoder struct {
	frame frame
}

// NewPDF creates a PDF decoder.
func NewPDF() Decoder {
	return &pdfDecoder{}
}

func (d *pdfDecoder) ContentType() string { return "application/pdf" }

func (d *pdfDecoder) Begin(data []byte) error {
	d.frame.reset()

	return capture("PDF", func() error {
		img, err := extractPageImage(data)
		if err != nil {
			return err
		}
		d.frame.bind(img)
		return nil
	})
}

// extractPageImage pulls the first embedded image of page 1 out of the
// document. pdfcpu's extraction API works on files, so the buffer goes
// through a temp directory that is removed before returning.
func extractPageImage(data []byte) (image.Image, error) {
	tempDir, err := os.MkdirTemp("", "escl-pdf-*")
	if err != nil {
		return nil, fmt.Errorf("PDF: %w", err)
	}
	defer func() { _ = os.RemoveAll(tempDir) }()

	pdfFile := filepath.Join(tempDir, "page.pdf")
	if err := os.WriteFile(pdfFile, data, 0o600); err != nil {
		return nil, fmt.Errorf("PDF: %w", err)
	}

	if err := api.ExtractImagesFile(pdfFile, tempDir, []string{"1"}, nil); err != nil {
		return nil, fmt.Errorf("PDF: invalid document: %w", err)
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		return nil, fmt.Errorf("PDF: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && e.Name() != "page.pdf" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		f, err := os.Open(filepath.Join(tempDir, name))
		if err != nil {
			continue
		}
		img, _, err := image.Decode(f)
		_ = f.Close()
		if err == nil {
			return img, nil
		}
	}

	return nil, fmt.Errorf("PDF: no decodable page image")
}

func (d *pdfDecoder) BytesPerPixel() int {
	return d.frame.components
}

func (d *pdfDecoder) Params() Params {
	return d.frame.params()
}

func (d *pdfDecoder) SetWindow(win Window) (Window, error) {
	return d.frame.fullWindow(), nil
}

func (d *pdfDecoder) ReadLine(buf []byte) error {
	return capture("PDF", func() error {
		return d.frame.readLine(buf)
	})
}

func (d *pdfDecoder) Reset() {
	d.frame.reset()
}

func (d *pdfDecoder) Close() {
	d.frame.reset()
}
