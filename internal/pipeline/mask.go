package pipeline

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/blur"
)

// Option configures an ExtractMask call.
type Option func(*config)

type config struct {
	blurRadius float64
}

// WithBlur smooths the projected grayscale buffer with a Gaussian blur of
// the given radius before thresholding. Smoothing suppresses sensor noise
// and speckle on real photographs at the cost of softening the mask
// outline. A radius <= 0 disables the step, which is also the default.
func WithBlur(radius float64) Option {
	return func(c *config) {
		c.blurRadius = radius
	}
}

// ExtractMask converts an RGB image into a binary foreground mask: the
// selected channel is projected to grayscale, binarized with an Otsu
// threshold (light pixels are the object), and interior holes are filled.
//
// This is the single authoritative entry point for mask extraction; every
// downstream consumer of a mask must call it rather than re-running any of
// the stages itself. The returned mask has the same bounds as img, holds
// only Foreground/Background cells, and is owned by the caller.
//
// Errors: ErrInvalidChannel if ch is unrecognized and ErrInvalidImage if
// img is nil or has non-positive dimensions, both detected before pixel
// work. Any other stage failure is wrapped in a StageError naming the
// stage. Identical inputs always produce bit-identical masks.
func ExtractMask(img image.Image, ch Channel, opts ...Option) (*image.Gray, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	gray, err := Project(img, ch)
	if err != nil {
		return nil, err
	}
	if cfg.blurRadius > 0 {
		gray, err = runStage("blur", func() *image.Gray { return blurGray(gray, cfg.blurRadius) })
		if err != nil {
			return nil, err
		}
	}
	mask, err := runStage("threshold", func() *image.Gray { return Otsu(gray, LightIsObject) })
	if err != nil {
		return nil, err
	}
	return runStage("fill", func() *image.Gray { return FillHoles(mask) })
}

// runStage executes one pure pipeline stage, converting a panic (the only
// way a pure computation can fail, e.g. allocation exhaustion on an
// oversized buffer) into a StageError. A batch driver processing sibling
// images can then skip the offending file instead of terminating.
func runStage(name string, stage func() *image.Gray) (out *image.Gray, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &StageError{Stage: name, Err: fmt.Errorf("%v", r)}
		}
	}()
	return stage(), nil
}

// blurGray applies a Gaussian blur to a grayscale buffer. bild operates on
// RGBA, so the blurred red channel (identical to green and blue for gray
// input) is projected back out.
func blurGray(gray *image.Gray, radius float64) *image.Gray {
	blurred := blur.Gaussian(gray, radius)
	bounds := gray.Bounds()
	out := image.NewGray(bounds)
	for y := 0; y < bounds.Dy(); y++ {
		dst := y * out.Stride
		src := y * blurred.Stride
		for x := 0; x < bounds.Dx(); x++ {
			out.Pix[dst+x] = blurred.Pix[src+x*4]
		}
	}
	return out
}
