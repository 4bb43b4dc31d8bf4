package sigma

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

func toNRGBA(m image.Image) *image.NRGBA {
	if nm, ok := m.(*image.NRGBA); ok && nm.Rect.Min == (image.Point{}) {
		return nm
	}

	b := m.Bounds()
	nm := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			nm.SetNRGBA(x-b.Min.X, y-b.Min.Y, color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA))
		}
	}
	return nm
}

// LoadPNG reads the PNG file at path into an RGBA grid with straight alpha
// and its top-left corner at (0, 0).
func LoadPNG(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Kind: KindIO, Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	m, err := png.Decode(f)
	if err != nil {
		return nil, &Error{Kind: KindDecode, Op: "decode", Path: path, Err: err}
	}

	return toNRGBA(m), nil
}

// SavePNG writes m to path as a PNG file, replacing any existing file.
func SavePNG(path string, m image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return &Error{Kind: KindIO, Op: "create", Path: path, Err: err}
	}

	if err := png.Encode(f, m); err != nil {
		f.Close()
		return &Error{Kind: KindDecode, Op: "encode", Path: path, Err: err}
	}

	if err := f.Close(); err != nil {
		return &Error{Kind: KindIO, Op: "close", Path: path, Err: err}
	}

	return nil
}
