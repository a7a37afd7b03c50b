package pipeline

import (
	"fmt"
	"image"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Channel identifies one channel of one supported colorspace. The ten
// recognized codes cover Lab (l, a, b), HSV (h, s, v), and CMYK (c, m, y, k).
//
// Channel is a closed enumeration: every recognized code has an exhaustive
// mapping to a conversion in Value, and anything else is rejected up front
// with ErrInvalidChannel rather than falling through to a default.
type Channel string

// Recognized channel selectors.
const (
	ChannelLightness    Channel = "l" // Lab lightness
	ChannelGreenMagenta Channel = "a" // Lab green-magenta axis
	ChannelBlueYellow   Channel = "b" // Lab blue-yellow axis
	ChannelHue          Channel = "h" // HSV hue
	ChannelSaturation   Channel = "s" // HSV saturation
	ChannelValue        Channel = "v" // HSV value
	ChannelCyan         Channel = "c" // CMYK cyan
	ChannelMagenta      Channel = "m" // CMYK magenta
	ChannelYellow       Channel = "y" // CMYK yellow
	ChannelKey          Channel = "k" // CMYK key (black)
)

// DefaultChannel is the selector used when the caller does not pick one.
// The Lab blue-yellow axis separates green plant tissue from soil and
// background particularly well.
const DefaultChannel = ChannelBlueYellow

// Valid reports whether ch is one of the ten recognized selectors.
func (ch Channel) Valid() bool {
	switch ch {
	case ChannelLightness, ChannelGreenMagenta, ChannelBlueYellow,
		ChannelHue, ChannelSaturation, ChannelValue,
		ChannelCyan, ChannelMagenta, ChannelYellow, ChannelKey:
		return true
	}
	return false
}

// Value projects a single 8-bit RGB pixel onto the channel, normalized into
// 0-255.
//
// # Normalization
//
// Colorspace-native ranges are mapped onto the 8-bit grayscale scale:
//   - Lab lightness 0-1 -> 0-255
//   - Lab a/b axes, clamped to [-1, 1] -> 0-255 centered at 128
//   - HSV hue 0-360 degrees -> 0-255
//   - HSV saturation/value 0-1 -> 0-255
//   - CMYK components are natively 0-255
//
// Calling Value on an unrecognized channel returns 0; callers are expected
// to have validated the selector first (Project and ExtractMask do).
func (ch Channel) Value(r, g, b uint8) uint8 {
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}

	switch ch {
	case ChannelLightness:
		l, _, _ := c.Lab()
		return scaleUnit(l)
	case ChannelGreenMagenta:
		_, a, _ := c.Lab()
		return scaleAxis(a)
	case ChannelBlueYellow:
		_, _, bb := c.Lab()
		return scaleAxis(bb)
	case ChannelHue:
		h, _, _ := c.Hsv()
		return scaleUnit(h / 360)
	case ChannelSaturation:
		_, s, _ := c.Hsv()
		return scaleUnit(s)
	case ChannelValue:
		_, _, v := c.Hsv()
		return scaleUnit(v)
	case ChannelCyan:
		cc, _, _, _ := color.RGBToCMYK(r, g, b)
		return cc
	case ChannelMagenta:
		_, m, _, _ := color.RGBToCMYK(r, g, b)
		return m
	case ChannelYellow:
		_, _, y, _ := color.RGBToCMYK(r, g, b)
		return y
	case ChannelKey:
		_, _, _, k := color.RGBToCMYK(r, g, b)
		return k
	}
	return 0
}

// Project converts an RGB image into a single-channel grayscale buffer by
// extracting the named channel, pixel by pixel. The output has the same
// bounds as the input.
//
// Returns ErrInvalidChannel if ch is not a recognized selector; the check
// happens before any conversion work. Project never mutates img.
func Project(img image.Image, ch Channel) (*image.Gray, error) {
	if !ch.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidChannel, ch)
	}
	if err := validateImage(img); err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			gray.SetGray(x, y, color.Gray{Y: ch.Value(uint8(r>>8), uint8(g>>8), uint8(b>>8))})
		}
	}
	return gray, nil
}

// validateImage rejects nil or degenerate images at pipeline entry.
func validateImage(img image.Image) error {
	if img == nil {
		return ErrInvalidImage
	}
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return ErrInvalidImage
	}
	return nil
}

// scaleUnit maps a 0-1 value onto 0-255 with clamping.
func scaleUnit(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// scaleAxis maps a signed Lab axis value, clamped to [-1, 1], onto 0-255
// centered at 128. Neutral gray therefore projects to 128 on both axes.
func scaleAxis(v float64) uint8 {
	if v < -1 {
		v = -1
	}
	if v > 1 {
		v = 1
	}
	return uint8((v+1)/2*255 + 0.5)
}
