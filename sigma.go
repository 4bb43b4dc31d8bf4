/*
Package sigma converts images between PNG and the sigma pixel list format.

The sigma format itself is implemented by the image subpackage. This package
handles the files on either side of it and reports progress through an
injected logger.
*/
package sigma

import (
	"image"
	"io"
	"os"

	"github.com/charmbracelet/log"
	sigmaimage "github.com/lncvrt/sigma/image"
)

// Converter runs conversions between PNG and sigma files.
type Converter struct {
	logger *log.Logger
}

// New returns a Converter that reports warnings and progress to logger. A nil
// logger discards everything.
func New(logger *log.Logger) *Converter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Converter{
		logger: logger,
	}
}

// PNGToSigma converts the PNG file in to a sigma file out.
func (c *Converter) PNGToSigma(in, out string, o *sigmaimage.Options) error {
	m, err := LoadPNG(in)
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return &Error{Kind: KindIO, Op: "create", Path: out, Err: err}
	}

	if err := sigmaimage.Encode(f, m, o); err != nil {
		f.Close()
		return &Error{Kind: KindIO, Op: "write", Path: out, Err: err}
	}

	if err := f.Close(); err != nil {
		return &Error{Kind: KindIO, Op: "close", Path: out, Err: err}
	}

	if o != nil && !o.Compress {
		c.logger.Warn("It is recommended to keep compression enabled, this feature may not be updated in the future")
	}
	c.logger.Infof("Converted the PNG file to sigma %s", out)

	return nil
}

func (c *Converter) read(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Kind: KindIO, Op: "read", Path: path, Err: err}
	}

	text, ok := sigmaimage.Decompress(b)
	if !ok {
		c.logger.Warn("File is not compressed. Continuing without decompression...", "path", path)
		return b, nil
	}
	return text, nil
}

func (c *Converter) parse(path string) ([]byte, *sigmaimage.Document, error) {
	text, err := c.read(path)
	if err != nil {
		return nil, nil, err
	}

	d, err := sigmaimage.Parse(text)
	if err != nil {
		return nil, nil, parseError(path, err)
	}
	return text, d, nil
}

// Load reads and parses the sigma file at path, compressed or not.
func (c *Converter) Load(path string) (*sigmaimage.Document, error) {
	_, d, err := c.parse(path)
	return d, err
}

// Canvas loads the sigma file at path and materializes it sized by the
// extent of its pixel data, ignoring the declared dimensions. It returns nil
// for a file without pixels.
func (c *Converter) Canvas(path string) (*image.NRGBA, error) {
	d, err := c.Load(path)
	if err != nil {
		return nil, err
	}

	m, err := d.Canvas()
	if err != nil {
		return nil, renderError(path, err)
	}
	return m, nil
}

// SigmaToPNG converts the sigma file in to a PNG file out. The PNG has the
// dimensions declared in the sigma file; pixels outside of them are dropped.
func (c *Converter) SigmaToPNG(in, out string) error {
	text, d, err := c.parse(in)
	if err != nil {
		return err
	}

	c.logger.Debugf("Converting the sigma file to PNG: %d pixels to process", sigmaimage.Groups(text))

	m, err := d.Image()
	if err != nil {
		return renderError(in, err)
	}

	if err := SavePNG(out, m); err != nil {
		return err
	}
	c.logger.Infof("Converted the sigma file to PNG: %s", out)

	return nil
}
