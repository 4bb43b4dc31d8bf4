/*
Package viewer shows a single image in a desktop window.

The window only displays the image, centered, until it is closed or Escape is
pressed. There is no panning or zooming; images larger than the window are
shrunk to fit.
*/
package viewer

import (
	"image"
	"image/draw"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
)

// Options configure the window.
type Options struct {
	Title  string
	Width  int
	Height int
}

var defaultOptions = Options{
	Title:  "sigma previewer",
	Width:  800,
	Height: 600,
}

// Show opens a window displaying m and blocks until it is closed. It must be
// called from the main goroutine.
func Show(m image.Image, o *Options) error {
	if o == nil {
		o = &defaultOptions
	}

	var err error
	driver.Main(func(s screen.Screen) {
		err = run(s, m, o)
	})
	return err
}

func newBuffer(s screen.Screen, m image.Image, sz image.Point) (screen.Buffer, error) {
	b, err := s.NewBuffer(sz)
	if err != nil {
		return nil, err
	}
	draw.Draw(b.RGBA(), b.Bounds(), Frame(m, sz), image.Point{}, draw.Src)
	return b, nil
}

func run(s screen.Screen, m image.Image, o *Options) error {
	w, err := s.NewWindow(&screen.NewWindowOptions{
		Title:  o.Title,
		Width:  o.Width,
		Height: o.Height,
	})
	if err != nil {
		return err
	}
	defer w.Release()

	b, err := newBuffer(s, m, image.Point{o.Width, o.Height})
	if err != nil {
		return err
	}
	defer func() {
		b.Release()
	}()

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return nil
			}

		case key.Event:
			if e.Code == key.CodeEscape && e.Direction == key.DirPress {
				return nil
			}

		case paint.Event:
			w.Upload(image.Point{}, b, b.Bounds())
			w.Publish()

		case size.Event:
			// Zero sized buffers crash the driver
			sz := e.Size()
			if sz.X < 1 || sz.Y < 1 || sz == b.Size() {
				continue
			}
			nb, err := newBuffer(s, m, sz)
			if err != nil {
				return err
			}
			b.Release()
			b = nb
			w.Send(paint.Event{})

		case error:
			return e
		}
	}
}
