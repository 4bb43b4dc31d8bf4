package image

import (
	"bytes"
	"image"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
)

const (
	pixelSeparator = "],["
	pixelValues    = 6
)

// Decompress attempts to gunzip b in full. It returns the decompressed bytes
// and true on success, or nil and false if b is not a complete gzip stream.
func Decompress(b []byte) ([]byte, bool) {
	zr, err := gzip.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, false
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, false
	}
	return out, true
}

// IsCompressed reports whether b is a complete gzip stream.
func IsCompressed(b []byte) bool {
	_, ok := Decompress(b)
	return ok
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	// A trailing newline terminates the last line rather than starting one
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i := range lines {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}
	return lines
}

func parseDimensions(line string) (Dimensions, error) {
	var values []int
	for _, field := range strings.Fields(line) {
		v, err := strconv.ParseUint(field, 10, 32)
		if err != nil {
			continue
		}
		values = append(values, int(v))
	}
	if len(values) != 2 {
		return Dimensions{}, ErrInvalidDimensions
	}
	return Dimensions{Height: values[0], Width: values[1]}, nil
}

func parsePixel(s string) (Pixel, bool) {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "[]")
	s = strings.TrimSpace(s)
	if s == "" {
		return Pixel{}, false
	}

	values := make([]uint64, 0, pixelValues)
	for _, token := range strings.Split(s, ",") {
		v, err := strconv.ParseUint(strings.TrimSpace(token), 10, 32)
		if err != nil {
			continue
		}
		values = append(values, v)
		if len(values) == pixelValues {
			break
		}
	}
	if len(values) < pixelValues {
		return Pixel{}, false
	}

	for _, v := range values[:4] {
		if v > 0xff {
			return Pixel{}, false
		}
	}

	return Pixel{
		R: uint8(values[0]),
		G: uint8(values[1]),
		B: uint8(values[2]),
		A: uint8(values[3]),
		X: int(values[4]),
		Y: int(values[5]),
	}, true
}

// Parse parses uncompressed sigma text.
func Parse(text []byte) (*Document, error) {
	lines := splitLines(string(text))
	if len(lines) < 2 {
		return nil, ErrNoPixelData
	}

	dim, err := parseDimensions(lines[0])
	if err != nil {
		return nil, err
	}

	d := &Document{Dimensions: dim}
	for _, s := range strings.Split(lines[1], pixelSeparator) {
		if p, ok := parsePixel(s); ok {
			d.Pixels = append(d.Pixels, p)
		}
	}

	return d, nil
}

// Groups returns the number of pixel groups on the pixel line of text,
// including malformed ones that Parse would drop.
func Groups(text []byte) int {
	lines := splitLines(string(text))
	if len(lines) < 2 {
		return 0
	}
	return strings.Count(lines[1], pixelSeparator) + 1
}

// DecodeDocument reads a whole sigma file from r, decompressing it if it is
// gzip compressed, and parses it. The returned bool reports whether the input
// was compressed.
func DecodeDocument(r io.Reader) (*Document, bool, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, false, err
	}

	text, compressed := Decompress(b)
	if !compressed {
		text = b
	}

	d, err := Parse(text)
	if err != nil {
		return nil, compressed, err
	}
	return d, compressed, nil
}

// Decode reads a sigma file from r and returns it as an image.Image sized by
// the declared dimensions.
func Decode(r io.Reader) (image.Image, error) {
	d, _, err := DecodeDocument(r)
	if err != nil {
		return nil, err
	}
	return d.Image()
}

// DecodeConfig returns the color model and declared dimensions of a sigma
// file without materializing the image.
func DecodeConfig(r io.Reader) (image.Config, error) {
	d, _, err := DecodeDocument(r)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      d.Width,
		Height:     d.Height,
	}, nil
}
