/*
Package image implements a sigma image decoder and encoder.

A sigma file is plain text made of exactly two lines. The first line holds the
image height and width separated by whitespace, in that order. The second line
is a comma separated list of bracketed pixel tuples, one per non-transparent
pixel:

	<height> <width>
	[R,G,B,A,x,y],[R,G,B,A,x,y],...

Channel values are 8-bit and use straight (non-premultiplied) alpha. Fully
transparent pixels are never written. The whole file may be wrapped in a gzip
stream, which is detected on read.

Parsing is strict about structure and forgiving about pixels: a missing pixel
line or a bad dimensions line is an error, while malformed pixel tuples are
dropped.
*/
package image

import (
	"errors"
	"image"
	"image/color"
)

var (
	// ErrNoPixelData is returned when the input has fewer than two lines.
	ErrNoPixelData = errors.New("sigma: no pixel data found")
	// ErrInvalidDimensions is returned when the first line does not hold
	// exactly two non-negative integers.
	ErrInvalidDimensions = errors.New("sigma: invalid dimensions")
	// ErrTooLarge is returned when materializing an image would exceed
	// MaxPixels.
	ErrTooLarge = errors.New("sigma: image too large")
)

// MaxPixels is the largest grid, in pixels, that Image and Canvas will
// allocate. At four bytes per pixel this is 1 GiB.
const MaxPixels = 1 << 28

func newGrid(w, h int) (*image.NRGBA, error) {
	if w < 0 || h < 0 || (h > 0 && w > MaxPixels/h) {
		return nil, ErrTooLarge
	}
	return image.NewNRGBA(image.Rect(0, 0, w, h)), nil
}

// Pixel is a single decoded pixel tuple.
type Pixel struct {
	R, G, B, A uint8
	X, Y       int
}

// Color returns the pixel colour.
func (p Pixel) Color() color.NRGBA {
	return color.NRGBA{p.R, p.G, p.B, p.A}
}

// Dimensions are the image dimensions declared by the first line.
type Dimensions struct {
	Height, Width int
}

// Document is a parsed sigma file. Pixels are kept in the order they were
// found in the file, including any with zero alpha.
type Document struct {
	Dimensions
	Pixels []Pixel
}

// Image materializes the document into a grid sized by the declared
// dimensions. Pixels with zero alpha or coordinates outside the grid are
// dropped. It fails with ErrTooLarge if the grid would exceed MaxPixels.
func (d *Document) Image() (*image.NRGBA, error) {
	m, err := newGrid(d.Width, d.Height)
	if err != nil {
		return nil, err
	}
	for _, p := range d.Pixels {
		if p.A == 0 {
			continue
		}
		if p.X < 0 || p.X >= d.Width || p.Y < 0 || p.Y >= d.Height {
			continue
		}
		m.SetNRGBA(p.X, p.Y, p.Color())
	}
	return m, nil
}

// Canvas materializes the document into a grid just large enough to hold the
// largest x and y coordinate found in the pixels. The declared dimensions are
// ignored and every pixel is written, later pixels overwriting earlier ones.
// It returns nil for a document without pixels, and fails with ErrTooLarge if
// the canvas would exceed MaxPixels.
func (d *Document) Canvas() (*image.NRGBA, error) {
	if len(d.Pixels) == 0 {
		return nil, nil
	}

	var w, h int
	for _, p := range d.Pixels {
		if p.X+1 > w {
			w = p.X + 1
		}
		if p.Y+1 > h {
			h = p.Y + 1
		}
	}

	m, err := newGrid(w, h)
	if err != nil {
		return nil, err
	}
	for _, p := range d.Pixels {
		m.SetNRGBA(p.X, p.Y, p.Color())
	}
	return m, nil
}
