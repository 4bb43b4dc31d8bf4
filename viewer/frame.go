package viewer

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/KononK/resize"
)

var background = image.NewUniform(color.RGBA{0x1b, 0x1b, 0x1b, 0xff})

// fit shrinks m with nearest-neighbour sampling so it fits within size,
// keeping its aspect ratio. Images that already fit are returned as is.
func fit(m image.Image, size image.Point) image.Image {
	b := m.Bounds()
	if b.Dx() <= size.X && b.Dy() <= size.Y {
		return m
	}

	scale := float64(size.X) / float64(b.Dx())
	if s := float64(size.Y) / float64(b.Dy()); s < scale {
		scale = s
	}

	w, h := int(float64(b.Dx())*scale), int(float64(b.Dy())*scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	return resize.Resize(uint(w), uint(h), m, resize.NearestNeighbor)
}

// Frame composes a single window frame of the given size with m centered on
// a white backing rectangle. A nil m gives an empty frame.
func Frame(m image.Image, size image.Point) *image.RGBA {
	dst := image.NewRGBA(image.Rectangle{Max: size})
	draw.Draw(dst, dst.Bounds(), background, image.Point{}, draw.Src)

	if m == nil || m.Bounds().Empty() {
		return dst
	}

	m = fit(m, size)
	b := m.Bounds()

	off := size.Sub(b.Size()).Div(2)
	r := image.Rectangle{Min: off, Max: off.Add(b.Size())}

	draw.Draw(dst, r, image.White, image.Point{}, draw.Src)
	draw.Draw(dst, r, m, b.Min, draw.Over)

	return dst
}
