package image

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"strconv"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/klauspost/compress/gzip"
)

const maxColors = 256

// Options are the encoding parameters.
type Options struct {
	// Compress wraps the output in a gzip stream.
	Compress bool
	// Level is the gzip compression level, zero selects
	// gzip.BestCompression.
	Level int
	// Colors, if non-zero, reduces the image to at most this many colors
	// before encoding. Pixel alpha is always taken from the source image.
	Colors int
}

var defaultOptions = Options{
	Compress: true,
	Level:    gzip.BestCompression,
}

type encoder struct {
	w   *bufio.Writer
	buf []byte
}

func (e *encoder) writePixel(first bool, c color.NRGBA, x, y int) error {
	e.buf = e.buf[:0]
	if !first {
		e.buf = append(e.buf, ',')
	}
	e.buf = append(e.buf, '[')
	for _, v := range [...]int{int(c.R), int(c.G), int(c.B), int(c.A), x} {
		e.buf = strconv.AppendInt(e.buf, int64(v), 10)
		e.buf = append(e.buf, ',')
	}
	e.buf = strconv.AppendInt(e.buf, int64(y), 10)
	e.buf = append(e.buf, ']')
	_, err := e.w.Write(e.buf)
	return err
}

func nrgbaAt(m image.Image, x, y int) color.NRGBA {
	if nm, ok := m.(*image.NRGBA); ok {
		return nm.NRGBAAt(x, y)
	}
	return color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
}

func reduceColors(m image.Image, colors int) *image.Paletted {
	b := m.Bounds()
	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, colors), m))
	draw.Draw(pm, b, m, b.Min, draw.Src)
	return pm
}

func (e *encoder) encode(m image.Image, pm *image.Paletted) error {
	b := m.Bounds()

	// Height comes first
	if _, err := fmt.Fprintf(e.w, "%d %d\n", b.Dy(), b.Dx()); err != nil {
		return err
	}

	first := true
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := nrgbaAt(m, x, y)
			if c.A == 0 {
				continue
			}
			if pm != nil {
				a := c.A
				c = nrgbaAt(pm, x, y)
				c.A = a
			}
			if err := e.writePixel(first, c, x-b.Min.X, y-b.Min.Y); err != nil {
				return err
			}
			first = false
		}
	}

	return e.w.Flush()
}

// Encode writes the Image m to w in sigma format. Coordinates are written
// relative to the top-left corner of m. If o is nil the output is compressed
// at gzip.BestCompression.
func Encode(w io.Writer, m image.Image, o *Options) error {
	if o == nil {
		o = &defaultOptions
	}

	if o.Colors < 0 || o.Colors > maxColors {
		return fmt.Errorf("sigma: colors must be between 1 and %d", maxColors)
	}

	var pm *image.Paletted
	if o.Colors > 0 {
		pm = reduceColors(m, o.Colors)
	}

	if !o.Compress {
		e := encoder{w: bufio.NewWriter(w)}
		return e.encode(m, pm)
	}

	level := o.Level
	if level == 0 {
		level = gzip.BestCompression
	}
	zw, err := gzip.NewWriterLevel(w, level)
	if err != nil {
		return err
	}

	e := encoder{w: bufio.NewWriter(zw)}
	if err := e.encode(m, pm); err != nil {
		return errors.Join(err, zw.Close())
	}
	return zw.Close()
}
