package sigma

import (
	"errors"
	"fmt"

	sigmaimage "github.com/lncvrt/sigma/image"
)

// Kind classifies a conversion failure.
type Kind int

const (
	// KindStructural is a sigma file that is missing its pixel line, has a
	// bad dimensions line or describes an image too large to materialize.
	KindStructural Kind = iota + 1
	// KindIO is a file that could not be read or written.
	KindIO
	// KindDecode is a PNG that could not be decoded or encoded.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindStructural:
		return "structural"
	case KindIO:
		return "io"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error records a failed conversion step and the file it concerned.
type Error struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of the first *Error in err's chain, or zero.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func parseError(path string, err error) error {
	return sigmaError("parse", path, err)
}

func renderError(path string, err error) error {
	return sigmaError("render", path, err)
}

func sigmaError(op, path string, err error) error {
	kind := KindIO
	if isStructural(err) {
		kind = KindStructural
	}
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

func isStructural(err error) bool {
	return errors.Is(err, sigmaimage.ErrNoPixelData) ||
		errors.Is(err, sigmaimage.ErrInvalidDimensions) ||
		errors.Is(err, sigmaimage.ErrTooLarge)
}
